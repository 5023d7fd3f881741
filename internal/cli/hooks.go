package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks logs every export and renderer event at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("hook")}
}

func (h *logHooks) OnExportStart(_ context.Context, runID, prefix string) {
	h.logger.Debug("export start", "run", runID, "prefix", prefix)
}

func (h *logHooks) OnPassStart(_ context.Context, pass string) {
	h.logger.Debug("pass start", "pass", pass)
}

func (h *logHooks) OnPassComplete(_ context.Context, pass string, records int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("pass failed", "pass", pass, "records", records, "duration", d, "err", err)
		return
	}
	h.logger.Debug("pass complete", "pass", pass, "records", records, "duration", d)
}

func (h *logHooks) OnElementSkipped(_ context.Context, object, reason string) {
	h.logger.Debug("element skipped", "object", object, "reason", reason)
}

func (h *logHooks) OnFrame(_ context.Context, frame int) {
	h.logger.Debug("frame", "frame", frame)
}

func (h *logHooks) OnLaunch(_ context.Context, path string, args []string) {
	h.logger.Debug("renderer launch", "path", path, "args", args)
}

func (h *logHooks) OnExit(_ context.Context, path string, d time.Duration, err error) {
	h.logger.Debug("renderer exit", "path", path, "duration", d, "err", err)
}
