// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about exports and renderer launches.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExportHooks(&myExportHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnPassStart(ctx, "meshes")
//	// ... write the pass ...
//	observability.Export().OnPassComplete(ctx, "meshes", records, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the exporter.
type ExportHooks interface {
	// OnExportStart is called once per export with its run ID and prefix.
	OnExportStart(ctx context.Context, runID, prefix string)

	// Pass events, one pair per output category.
	OnPassStart(ctx context.Context, pass string)
	OnPassComplete(ctx context.Context, pass string, records int, duration time.Duration, err error)

	// OnElementSkipped records malformed geometry that was left out.
	OnElementSkipped(ctx context.Context, object, reason string)

	// OnFrame records one written frame.
	OnFrame(ctx context.Context, frame int)
}

// =============================================================================
// Renderer Hooks
// =============================================================================

// RendererHooks receives events about the external renderer process.
type RendererHooks interface {
	// OnLaunch records a renderer start.
	OnLaunch(ctx context.Context, path string, args []string)

	// OnExit records the end of a waited-for renderer process.
	OnExit(ctx context.Context, path string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string, string)                     {}
func (NoopExportHooks) OnPassStart(context.Context, string)                               {}
func (NoopExportHooks) OnPassComplete(context.Context, string, int, time.Duration, error) {}
func (NoopExportHooks) OnElementSkipped(context.Context, string, string)                  {}
func (NoopExportHooks) OnFrame(context.Context, int)                                      {}

// NoopRendererHooks is a no-op implementation of RendererHooks.
type NoopRendererHooks struct{}

func (NoopRendererHooks) OnLaunch(context.Context, string, []string)           {}
func (NoopRendererHooks) OnExit(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	exportHooks   ExportHooks   = NoopExportHooks{}
	rendererHooks RendererHooks = NoopRendererHooks{}
	hooksMu       sync.RWMutex
)

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any export.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetRendererHooks registers custom renderer hooks.
func SetRendererHooks(h RendererHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		rendererHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Renderer returns the registered renderer hooks.
func Renderer() RendererHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return rendererHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
	rendererHooks = NoopRendererHooks{}
}
