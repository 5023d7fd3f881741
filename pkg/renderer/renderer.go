// Package renderer starts the external ray tracer on an exported scene.
//
// The renderer is invoked as
//
//	<command> [args...] -s WIDTH,HEIGHT -f MANIFEST
//
// in the directory holding the exported files. Its output and exit status
// are not interpreted; callers that want to block until it finishes use
// [Process.Wait].
package renderer

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/mattn/go-shellwords"

	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/observability"
)

// Command is a parsed renderer command line.
type Command struct {
	Path string
	Args []string
}

// Parse splits a shell-style command line such as `./adrt --threads 4` or
// `"/opt/ray tracer/adrt"`.
func Parse(cmdline string) (Command, error) {
	args, err := shellwords.Parse(cmdline)
	if err != nil {
		return Command{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse renderer command %q", cmdline)
	}
	if len(args) == 0 {
		return Command{}, errors.New(errors.ErrCodeInvalidConfig, "renderer command is empty")
	}
	return Command{Path: args[0], Args: args[1:]}, nil
}

// Argv returns the arguments for rendering manifest at the given size.
func (c Command) Argv(width, height int, manifest string) []string {
	argv := make([]string, 0, len(c.Args)+4)
	argv = append(argv, c.Args...)
	return append(argv, "-s", fmt.Sprintf("%d,%d", width, height), "-f", manifest)
}

func (c Command) String() string {
	return shellQuote(append([]string{c.Path}, c.Args...))
}

// Options controls how the renderer process is started.
type Options struct {
	// Dir is the working directory. A relative Path is resolved against it.
	Dir string
	// Stdout and Stderr receive the renderer's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Process is a started renderer.
type Process struct {
	ctx   context.Context
	cmd   *exec.Cmd
	start time.Time
}

// Launch starts the renderer and returns without waiting for it.
func Launch(ctx context.Context, c Command, width, height int, manifest string, opts Options) (*Process, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "resolution %dx%d must be positive", width, height)
	}
	argv := c.Argv(width, height, manifest)
	cmd := exec.Command(c.Path, argv...)
	cmd.Dir = opts.Dir
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	observability.Renderer().OnLaunch(ctx, c.Path, argv)
	if err := cmd.Start(); err != nil {
		observability.Renderer().OnExit(ctx, c.Path, 0, err)
		return nil, errors.Wrap(errors.ErrCodeRenderer, err, "start %s", c.Path)
	}
	return &Process{ctx: ctx, cmd: cmd, start: time.Now()}, nil
}

// Pid returns the operating system process ID.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Wait blocks until the renderer exits. A non-zero exit is reported as a
// RENDERER_FAILED error.
func (p *Process) Wait() error {
	err := p.cmd.Wait()
	observability.Renderer().OnExit(p.ctx, p.cmd.Path, time.Since(p.start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderer, err, "%s", p.cmd.Path)
	}
	return nil
}

// Release detaches from the process; Wait must not be called afterwards.
func (p *Process) Release() error {
	return p.cmd.Process.Release()
}
