package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rtexport/pkg/config"
	"github.com/matzehuels/rtexport/pkg/pipeline"
)

// graphCommand creates the graph command for drawing the object hierarchy.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		layers     string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "graph [scene]",
		Short: "Draw the object hierarchy of a scene",
		Long: `Draw the parent hierarchy of a scene snapshot as a node-link diagram.

Meshes are boxes, cameras trapezia and lamps double circles. Objects hidden
by --layers are drawn dashed, so the diagram shows what an export with the
same layers would contain.

PNG and PDF output need rsvg-convert (librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			cfg, err := applyLayers(config.Default(), layers)
			if err != nil {
				return err
			}

			host, err := loadScene(args[0])
			if err != nil {
				return fmt.Errorf("load scene %s: %w", args[0], err)
			}
			prog := newProgress(c.Logger)
			spinner := newSpinner("Drawing hierarchy...")
			spinner.Start()
			artifacts, err := pipeline.Graph(host, pipeline.GraphOptions{
				Layers:   cfg.Layers,
				Formats:  formats,
				Detailed: detailed,
			})
			spinner.Stop()
			if err != nil {
				return err
			}
			if err := writeArtifacts(artifacts, formats, args[0], output); err != nil {
				return err
			}
			prog.done("Drew hierarchy")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&layers, "layers", "l", "all", "visible layers: comma-separated indexes 0-19, all or none")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show kind, layers and geometry size in node labels")

	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// writeArtifacts writes each artifact to disk. With a single format, output
// is the file name; otherwise it is a base path and the format is appended
// as extension. Without output, the input's base name is used.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	for _, path := range artifactPaths(formats, input, output) {
		format := strings.TrimPrefix(filepath.Ext(path), ".")
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

func artifactPaths(formats []string, input, output string) []string {
	if len(formats) == 1 && output != "" {
		if filepath.Ext(output) == "."+formats[0] {
			return []string{output}
		}
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	paths := make([]string, len(formats))
	for i, f := range formats {
		paths[i] = base + "." + f
	}
	return paths
}
