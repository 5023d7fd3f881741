package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rtexport/pkg/config"
	"github.com/matzehuels/rtexport/pkg/pipeline"
)

// renderCommand creates the render command: export, then run the renderer.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  configFlags
		dir    string
		detach bool
	)

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Export a scene and start the renderer on it",
		Long: `Export a scene snapshot, then start the renderer as

  <renderer> -s WIDTH,HEIGHT -f <prefix>Scene.db

in the output directory, at the resolution stored in the scene.

By default rtexport waits for the renderer and forwards its output. With
--detach it returns as soon as the renderer has started.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runRender(withLogger(cmd.Context(), c.Logger), args[0], cfg, dir, detach)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&dir, "output-dir", "o", "", "directory for the exported files; the renderer runs there")
	cmd.Flags().BoolVarP(&detach, "detach", "d", false, "do not wait for the renderer to finish")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, cfg config.Config, dir string, detach bool) error {
	host, err := loadScene(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	opts := pipeline.Options{
		Config: cfg,
		Dir:    dir,
		Render: true,
		Wait:   !detach,
	}
	if !detach {
		opts.Stdout, opts.Stderr = os.Stdout, os.Stderr
	}

	prog := newProgress(loggerFromContext(ctx))
	res, err := c.newRunner().Execute(ctx, host, opts)
	if res != nil && res.Export != nil {
		printExportResult(res)
	}
	if err != nil {
		return err
	}

	if detach {
		pid := res.Process.Pid()
		if err := res.Process.Release(); err != nil {
			printWarning("release renderer: %v", err)
		}
		printSuccess("Renderer started %s", StyleDim.Render(fmt.Sprintf("(pid %d)", pid)))
		printKeyValue("Command", res.Command.String())
		return nil
	}
	prog.done("Render finished")
	return nil
}
