package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rtexport/pkg/config"
	"github.com/matzehuels/rtexport/pkg/pipeline"
)

// watchDebounce coalesces the burst of events editors produce on save.
const watchDebounce = 150 * time.Millisecond

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		flags configFlags
		dir   string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "export [scene]",
		Short: "Export a scene snapshot to ray tracer markup",
		Long: `Export a scene snapshot (JSON or YAML) to the renderer's markup files.

Four files are written, each named <prefix><Kind>.db:

  Scene    background colour and references to the other files
  Meshes   geometry of every visible mesh
  Shaders  materials and lights
  Frames   per-frame object transforms and cameras

With --watch the scene file is watched and re-exported after every change
until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			if err := c.runExport(ctx, args[0], cfg, dir); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return c.watchExport(ctx, args[0], cfg, dir)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&dir, "output-dir", "o", "", "directory for the exported files")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-export whenever the scene file changes")

	return cmd
}

// runExport loads the scene and exports it once.
func (c *CLI) runExport(ctx context.Context, input string, cfg config.Config, dir string) error {
	host, err := loadScene(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Exporting...")
	spinner.Start()

	res, err := c.newRunner().Execute(ctx, host, pipeline.Options{
		Config:   cfg,
		Dir:      dir,
		Progress: spinner.SetMessage,
	})
	if err != nil {
		spinner.StopWithError("Export failed")
		if res != nil && res.Export != nil {
			for _, f := range res.Export.Files {
				printFile(f)
			}
		}
		return err
	}
	spinner.Stop()

	printExportResult(res)
	return nil
}

// watchExport re-runs the export after each change to input until ctx is
// cancelled. Export errors are logged and watching continues.
func (c *CLI) watchExport(ctx context.Context, input string, cfg config.Config, dir string) error {
	logger := loggerFromContext(ctx)

	abs, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}
	printInfo("Watching %s %s", StyleValue.Render(input), StyleDim.Render("(ctrl+c to stop)"))

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSceneChange(event, abs) {
				continue
			}
			logger.Debug("scene changed", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			trigger = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		case <-trigger:
			trigger = nil
			if err := c.runExport(ctx, input, cfg, dir); err != nil {
				logger.Error("re-export failed", "err", err)
			}
		}
	}
}

// isSceneChange reports whether event touches the watched file.
func isSceneChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
