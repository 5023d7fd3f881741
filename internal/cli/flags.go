package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rtexport/pkg/config"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// configFlags holds the command-line overrides of the export configuration.
// Only flags the user actually set are applied on top of the config file.
type configFlags struct {
	file       string   // TOML config file
	prefix     string   // output filename prefix
	samples    int      // rays per pixel
	layers     string   // comma-separated layer indexes, "all" or "none"
	animate    bool     // export the whole frame range
	exclude    []string // categories to skip
	background string   // "r,g,b"
	renderer   string   // renderer command line
	cleanup    bool     // remove partial files on failure
}

// register adds the configuration flags to cmd.
func (f *configFlags) register(cmd *cobra.Command) {
	d := config.Default()
	cmd.Flags().StringVarP(&f.file, "config", "c", "", "TOML config file (flags override its values)")
	cmd.Flags().StringVarP(&f.prefix, "prefix", "p", d.Prefix, "output filename prefix")
	cmd.Flags().IntVarP(&f.samples, "samples", "s", d.Samples, "rays per pixel (1-16)")
	cmd.Flags().StringVarP(&f.layers, "layers", "l", "all", "visible layers: comma-separated indexes 0-19, all or none")
	cmd.Flags().BoolVarP(&f.animate, "animate", "a", false, "export every frame of the scene's frame range")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "categories to skip: meshes, materials, lights, frames, scene")
	cmd.Flags().StringVar(&f.background, "background", "", "background colour as r,g,b in [0,1]")
	cmd.Flags().StringVar(&f.renderer, "renderer", d.Renderer, "renderer command line")
	cmd.Flags().BoolVar(&f.cleanup, "cleanup", false, "remove a partially written file when writing fails")
}

// resolve builds the configuration: defaults, then the config file, then
// every flag the user set.
func (f *configFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.file != "" {
		loaded, err := config.Load(f.file)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	var err error
	if changed("prefix") {
		if cfg, err = cfg.Apply(config.FilenameChanged{Prefix: f.prefix}); err != nil {
			return config.Config{}, err
		}
	}
	if changed("samples") {
		if cfg, err = cfg.Apply(config.SamplesChanged{Samples: f.samples}); err != nil {
			return config.Config{}, err
		}
	}
	if changed("layers") {
		if cfg, err = applyLayers(cfg, f.layers); err != nil {
			return config.Config{}, err
		}
	}
	if changed("animate") && f.animate != cfg.Animate {
		cfg, _ = cfg.Apply(config.AnimationToggled{})
	}
	for _, name := range f.exclude {
		c, err := config.ParseCategory(strings.TrimSpace(name))
		if err != nil {
			return config.Config{}, err
		}
		cfg.Export = cfg.Export.With(c, false)
	}
	if changed("background") {
		bg, err := parseRGB(f.background)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Background = bg
	}
	if changed("renderer") {
		cfg.Renderer = f.renderer
	}
	if changed("cleanup") {
		cfg.Cleanup = f.cleanup
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// applyLayers replaces the layer selection with spec, going through the
// same commands as the panel's layer buttons.
func applyLayers(cfg config.Config, spec string) (config.Config, error) {
	switch strings.TrimSpace(spec) {
	case "all":
		return cfg.Apply(config.AllLayersSelected{})
	case "none", "":
		return cfg.Apply(config.NoLayersSelected{})
	}

	next, _ := cfg.Apply(config.NoLayersSelected{})
	for _, part := range strings.Split(spec, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return cfg, fmt.Errorf("invalid layer %q", part)
		}
		if next.Layers.Has(n) {
			continue
		}
		if next, err = next.Apply(config.LayerToggled{Layer: n}); err != nil {
			return cfg, err
		}
	}
	return next, nil
}

// parseRGB parses "r,g,b".
func parseRGB(s string) (scene.RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return scene.RGB{}, fmt.Errorf("invalid colour %q (want r,g,b)", s)
	}
	var c scene.RGB
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return scene.RGB{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		c[i] = v
	}
	return c, nil
}
