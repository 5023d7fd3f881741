// Package cli implements the rtexport command-line interface.
//
// The commands read a host scene snapshot (JSON or YAML, see pkg/io) and
// export it to ray tracer markup:
//   - export: write the markup files, optionally re-exporting on change
//   - render: export, then start the renderer on the result
//   - graph: draw the object hierarchy as DOT, SVG, PNG or PDF
//   - inspect: list objects and whether the layer mask exports them
//   - panel: interactive settings panel
//   - serve: HTTP export service
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every observability hook. Loggers are passed through context.Context
// to helpers that have no access to the [CLI].
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rtexport/pkg/buildinfo"
	rtio "github.com/matzehuels/rtexport/pkg/io"
	"github.com/matzehuels/rtexport/pkg/observability"
	"github.com/matzehuels/rtexport/pkg/pipeline"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "rtexport"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level every export and
// renderer hook is logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := newLogHooks(c.Logger)
		observability.SetExportHooks(hooks)
		observability.SetRendererHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "rtexport writes 3D scenes as ray tracer markup",
		Long: `rtexport converts a host 3D scene snapshot into the four markup files read
by the ADRT ray tracer (Scene, Meshes, Shaders and Frames) and can start the
renderer on the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.panelCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())
	completeScenes(root)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// loadScene reads a snapshot file. A leading "~" is expanded.
func loadScene(path string) (*scene.Snapshot, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", path, err)
	}
	return rtio.ImportFile(expanded)
}
