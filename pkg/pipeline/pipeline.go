// Package pipeline runs an export and, optionally, the renderer on its
// output.
//
// This package ties [export], [renderer] and [nodelink] together so that
// the CLI and the HTTP server share one code path. By centralizing this
// logic, both entry points log, validate and time exports the same way.
//
// # Stages
//
//  1. Export: write the enabled markup files for the host scene
//  2. Render: start the renderer on the manifest at the scene resolution
//
// The render stage only runs when [Options.Render] is set. The renderer is
// started without waiting unless [Options.Wait] is set too.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, host, pipeline.Options{
//	    Config: cfg,
//	    Render: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Export.Files)
//
// Hierarchy diagrams for the same host are produced by [Graph].
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rtexport/pkg/config"
	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/export"
	"github.com/matzehuels/rtexport/pkg/renderer"
)

// Options contains all configuration for one pipeline run.
type Options struct {
	// Config is the export configuration.
	Config config.Config
	// Dir is the output directory. Empty means the working directory.
	Dir string

	// Render starts the renderer after a successful export.
	Render bool
	// Wait blocks until the renderer exits.
	Wait bool
	// Stdout and Stderr receive renderer output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer

	// Runtime options
	Progress export.Progress
	Logger   *log.Logger

	command   renderer.Command
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Export is the export result. It is set, possibly partially filled,
	// whenever the export stage ran.
	Export *export.Result

	// Process is the started renderer, nil unless Options.Render was set.
	// It has already exited when Options.Wait was set.
	Process *renderer.Process

	// Command is the renderer command that was launched.
	Command renderer.Command

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ExportTime time.Duration
	// RenderTime is the renderer's run time when waited for, otherwise the
	// time it took to start it.
	RenderTime time.Duration
	Width      int
	Height     int
}

// ValidateAndSetDefaults checks the configuration and, when rendering is
// requested, the renderer command. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Render {
		cmd, err := renderer.Parse(o.Config.Renderer)
		if err != nil {
			return err
		}
		o.command = cmd
	} else if o.Wait {
		return errors.New(errors.ErrCodeInvalidConfig, "wait requires render")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
