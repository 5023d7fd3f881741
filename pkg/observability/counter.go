package observability

import (
	"context"
	"sync"
	"time"
)

// Stats is a point-in-time copy of a [Counter].
type Stats struct {
	Exports        int            `json:"exports"`
	Frames         int            `json:"frames"`
	Skipped        int            `json:"skipped"`
	Records        map[string]int `json:"records"`
	PassFailures   int            `json:"pass_failures"`
	Launches       int            `json:"launches"`
	RendererErrors int            `json:"renderer_errors"`
}

// Counter implements [ExportHooks] and [RendererHooks] by counting events.
// It is safe for concurrent use.
type Counter struct {
	mu sync.Mutex
	s  Stats
}

// NewCounter returns a zeroed counter.
func NewCounter() *Counter {
	return &Counter{s: Stats{Records: make(map[string]int)}}
}

func (c *Counter) OnExportStart(context.Context, string, string) {
	c.mu.Lock()
	c.s.Exports++
	c.mu.Unlock()
}

func (c *Counter) OnPassStart(context.Context, string) {}

func (c *Counter) OnPassComplete(_ context.Context, pass string, records int, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Records[pass] += records
	if err != nil {
		c.s.PassFailures++
	}
}

func (c *Counter) OnElementSkipped(context.Context, string, string) {
	c.mu.Lock()
	c.s.Skipped++
	c.mu.Unlock()
}

func (c *Counter) OnFrame(context.Context, int) {
	c.mu.Lock()
	c.s.Frames++
	c.mu.Unlock()
}

func (c *Counter) OnLaunch(context.Context, string, []string) {
	c.mu.Lock()
	c.s.Launches++
	c.mu.Unlock()
}

func (c *Counter) OnExit(_ context.Context, _ string, _ time.Duration, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	c.s.RendererErrors++
	c.mu.Unlock()
}

// Snapshot returns a copy of the current counts.
func (c *Counter) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.s
	s.Records = make(map[string]int, len(c.s.Records))
	for k, v := range c.s.Records {
		s.Records[k] = v
	}
	return s
}
