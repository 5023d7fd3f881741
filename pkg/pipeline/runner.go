package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/export"
	"github.com/matzehuels/rtexport/pkg/renderer"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// Runner executes pipelines with a shared logger.
//
// The Runner is stateless except for the logger: it doesn't store pipeline
// results. A host is not safe for concurrent exports, so callers sharing one
// host across goroutines must serialize Execute themselves.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the export and, if requested, the render stage.
func (r *Runner) Execute(ctx context.Context, host scene.Host, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Export
	res, err := r.Export(ctx, host, opts)
	result.Export = res
	if res != nil {
		result.Stats.ExportTime = res.Stats.Duration
	}
	if err != nil {
		return result, fmt.Errorf("export: %w", err)
	}

	if !opts.Render {
		return result, nil
	}

	// Stage 2: Render
	if err := r.Render(ctx, host, res, opts, result); err != nil {
		return result, fmt.Errorf("render: %w", err)
	}
	return result, nil
}

// Export runs only the export stage.
func (r *Runner) Export(ctx context.Context, host scene.Host, opts Options) (*export.Result, error) {
	r.applyLogger(&opts)
	return export.Export(ctx, host, opts.Config,
		export.WithLogger(opts.Logger),
		export.WithProgress(opts.Progress),
		export.WithDir(opts.Dir))
}

// Render starts the renderer on the manifest of res, sized to the host's
// render resolution, and records the process in result.
func (r *Runner) Render(ctx context.Context, host scene.Host, res *export.Result, opts Options, result *Result) error {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if !opts.Render {
		return errors.New(errors.ErrCodeInvalidConfig, "render stage not requested")
	}

	w, h, err := host.Resolution()
	if err != nil {
		return errors.HostQuery(err, "query resolution")
	}
	result.Stats.Width, result.Stats.Height = w, h
	result.Command = opts.command

	manifest := export.Paths(opts.Config.Prefix).Scene
	if !opts.Config.Export.Scene {
		opts.Logger.Warn("scene file not written by this export, renderer may read a stale one", "file", manifest)
	}

	start := time.Now()
	p, err := renderer.Launch(ctx, opts.command, w, h, manifest, renderer.Options{
		Dir:    res.Dir,
		Stdout: opts.Stdout,
		Stderr: opts.Stderr,
	})
	if err != nil {
		return err
	}
	result.Process = p
	opts.Logger.Info("renderer started",
		"command", opts.command.String(),
		"pid", p.Pid(),
		"size", fmt.Sprintf("%dx%d", w, h))

	if !opts.Wait {
		result.Stats.RenderTime = time.Since(start)
		return nil
	}
	err = p.Wait()
	result.Stats.RenderTime = time.Since(start)
	if err != nil {
		return err
	}
	opts.Logger.Info("renderer finished", "duration", result.Stats.RenderTime)
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
