package export

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/rtexport/pkg/config"
	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/markup"
	"github.com/matzehuels/rtexport/pkg/observability"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// Pass names, as reported to observability hooks.
const (
	PassScene   = "scene"
	PassMeshes  = "meshes"
	PassShaders = "shaders"
	PassFrames  = "frames"
)

// Stats summarises one export.
type Stats struct {
	Meshes    int
	Materials int
	Lights    int
	Frames    int
	Skipped   int
	Duration  time.Duration
}

// Result describes a finished export.
type Result struct {
	RunID string
	Dir   string
	// Files lists the written files in write order, joined with Dir.
	Files []string
	Stats Stats
}

// Option configures an export.
type Option func(*options)

type options struct {
	logger   *log.Logger
	progress Progress
	dir      string
}

// WithLogger sets the logger for diagnostics and progress. The default
// discards everything.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgress sets a status callback.
func WithProgress(p Progress) Option {
	return func(o *options) { o.progress = p }
}

// WithDir writes files below dir instead of the working directory. The
// manifest keeps its references relative, so the renderer must run in dir.
func WithDir(dir string) Option {
	return func(o *options) { o.dir = dir }
}

// exporter carries the state of one export.
type exporter struct {
	ctx   context.Context
	host  scene.Host
	cfg   config.Config
	opts  options
	hooks observability.ExportHooks
	res   *Result
}

// Export writes every enabled category of cfg for host. Files are written
// one after the other in the order scene, meshes, shaders, frames; the
// first failure stops the export and is returned with the partial result.
//
// ctx carries request-scoped values to observability hooks. A started
// export is not interrupted when ctx is cancelled.
func Export(ctx context.Context, host scene.Host, cfg config.Config, opts ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	e := &exporter{
		ctx:   ctx,
		host:  host,
		cfg:   cfg,
		opts:  o,
		hooks: observability.Export(),
		res:   &Result{RunID: uuid.NewString(), Dir: o.dir},
	}
	e.hooks.OnExportStart(ctx, e.res.RunID, cfg.Prefix)
	o.logger.Debug("export started", "run", e.res.RunID, "prefix", cfg.Prefix, "layers", cfg.Layers.String())

	err := e.run()
	e.res.Stats.Duration = time.Since(start)
	if err != nil {
		return e.res, err
	}

	o.logger.Info("export complete",
		"meshes", e.res.Stats.Meshes,
		"materials", e.res.Stats.Materials,
		"lights", e.res.Stats.Lights,
		"frames", e.res.Stats.Frames,
		"skipped", e.res.Stats.Skipped,
		"duration", e.res.Stats.Duration)
	return e.res, nil
}

func (e *exporter) run() error {
	files := Paths(e.cfg.Prefix)
	walker := Walker{Host: e.host, Layers: e.cfg.Layers, Progress: e.progress}
	ex := e.cfg.Export

	if ex.Scene {
		err := e.pass(PassScene, files.Scene, "Scene", func(w *markup.Writer) error {
			WriteManifest(w, files, e.cfg.Background)
			return nil
		})
		if err != nil {
			return err
		}
	}

	if ex.Meshes {
		err := e.pass(PassMeshes, files.Meshes, "Meshes", func(w *markup.Writer) error {
			n, err := WriteMeshes(w, walker, e.skip)
			e.res.Stats.Meshes = n
			return err
		})
		if err != nil {
			return err
		}
	}

	if ex.Materials || ex.Lights {
		err := e.pass(PassShaders, files.Shaders, "Shaders", func(w *markup.Writer) error {
			if ex.Materials {
				mats, err := e.host.Materials()
				if err != nil {
					return errors.HostQuery(err, "list materials")
				}
				WriteShaders(w, mats)
				e.res.Stats.Materials = len(mats)
			}
			if ex.Lights {
				n, err := WriteLights(w, walker)
				e.res.Stats.Lights = n
				return err
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	if ex.Frames {
		seq := Sequencer{
			Walker:  walker,
			Prefix:  e.cfg.Prefix,
			Animate: e.cfg.Animate,
			Basis:   e.cfg.Basis,
			Samples: e.cfg.Samples,
			OnFrame: func(f int) {
				e.hooks.OnFrame(e.ctx, f)
				e.progress("Frame " + ImageName(e.cfg.Prefix, f))
			},
		}
		err := e.pass(PassFrames, files.Frames, "Frames", func(w *markup.Writer) error {
			n, err := seq.Write(w)
			e.res.Stats.Frames = n
			return err
		})
		if err != nil {
			return err
		}
	}

	e.progress("")
	return nil
}

// pass creates name, runs fn on it and closes it. Errors not already
// classified are reported as output failures.
func (e *exporter) pass(pass, name, status string, fn func(*markup.Writer) error) error {
	e.progress(status)
	e.hooks.OnPassStart(e.ctx, pass)
	start := time.Now()

	path := name
	if e.opts.dir != "" {
		path = filepath.Join(e.opts.dir, name)
	}
	records, err := e.writeFile(path, fn)
	if err != nil && errors.GetCode(err) == "" {
		err = errors.Wrap(errors.ErrCodeOutput, err, "write %s", path)
	}
	e.hooks.OnPassComplete(e.ctx, pass, records, time.Since(start), err)
	if err != nil {
		if e.cfg.Cleanup {
			if rmErr := os.Remove(path); rmErr == nil {
				e.opts.logger.Debug("removed partial file", "file", path)
			}
		}
		return err
	}

	e.res.Files = append(e.res.Files, path)
	e.opts.logger.Debug("wrote file", "file", path, "records", records, "duration", time.Since(start))
	return nil
}

func (e *exporter) writeFile(path string, fn func(*markup.Writer) error) (int, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, errors.Wrap(errors.ErrCodeOutput, err, "create directory %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeOutput, err, "create %s", path)
	}

	w := markup.NewWriter(f)
	if err := fn(w); err != nil {
		_ = w.Flush()
		f.Close()
		return w.Records(), err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return w.Records(), err
	}
	if err := f.Close(); err != nil {
		return w.Records(), err
	}
	return w.Records(), nil
}

func (e *exporter) skip(s Skip) {
	e.res.Stats.Skipped++
	e.opts.logger.Warn("skipping face", "mesh", s.Mesh, "face", s.Face, "verts", s.Verts, "reason", s.Reason)
	e.hooks.OnElementSkipped(e.ctx, s.Mesh, s.Reason)
}

func (e *exporter) progress(status string) {
	if status != "" {
		e.opts.logger.Debug(status)
	}
	if e.opts.progress != nil {
		e.opts.progress(status)
	}
}
