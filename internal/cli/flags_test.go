package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rtexport/pkg/config"
	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/scene"
)

func flagCommand(t *testing.T, args map[string]string) (*cobra.Command, *configFlags) {
	t.Helper()
	var f configFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	for name, value := range args {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set --%s=%s: %v", name, value, err)
		}
	}
	return cmd, &f
}

func TestResolveDefaults(t *testing.T) {
	cmd, f := flagCommand(t, nil)
	cfg, err := f.resolve(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("resolve() without flags = %+v, want defaults", cfg)
	}
}

func TestResolveFlags(t *testing.T) {
	cmd, f := flagCommand(t, map[string]string{
		"prefix":     "shot",
		"samples":    "8",
		"layers":     "0, 3",
		"animate":    "true",
		"exclude":    "lights,frames",
		"background": "0,0.5,1",
		"renderer":   "adrt --threads 4",
		"cleanup":    "true",
	})
	cfg, err := f.resolve(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if cfg.Prefix != "shot" || cfg.Samples != 8 || !cfg.Animate || !cfg.Cleanup {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Layers != scene.LayerMask(1|1<<3) {
		t.Errorf("layers = %s, want 0,3", cfg.Layers)
	}
	if cfg.Export.Lights || cfg.Export.Frames || !cfg.Export.Meshes {
		t.Errorf("export = %+v", cfg.Export)
	}
	if cfg.Background != (scene.RGB{0, 0.5, 1}) {
		t.Errorf("background = %v", cfg.Background)
	}
	if cfg.Renderer != "adrt --threads 4" {
		t.Errorf("renderer = %q", cfg.Renderer)
	}
}

func TestResolveConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rt.toml")
	data := "prefix = \"file\"\nsamples = 4\nanimate = true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd, f := flagCommand(t, map[string]string{"config": path, "samples": "6"})
	cfg, err := f.resolve(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Prefix != "file" || !cfg.Animate {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Samples != 6 {
		t.Errorf("samples = %d, flag should override the file", cfg.Samples)
	}

	// A set --animate=false wins over the file.
	cmd, f = flagCommand(t, map[string]string{"config": path, "animate": "false"})
	if cfg, _ = f.resolve(cmd); cfg.Animate {
		t.Error("--animate=false should override the file")
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]string
		code errors.Code
	}{
		{"samples", map[string]string{"samples": "17"}, errors.ErrCodeInvalidConfig},
		{"layer", map[string]string{"layers": "20"}, errors.ErrCodeInvalidLayer},
		{"prefix", map[string]string{"prefix": ""}, errors.ErrCodeInvalidConfig},
		{"category", map[string]string{"exclude": "textures"}, errors.ErrCodeInvalidConfig},
		{"config file", map[string]string{"config": "/does/not/exist.toml"}, errors.ErrCodeFileNotFound},
		{"background", map[string]string{"background": "2,0,0"}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, f := flagCommand(t, tt.args)
			_, err := f.resolve(cmd)
			if !errors.Is(err, tt.code) {
				t.Errorf("resolve() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestApplyLayers(t *testing.T) {
	tests := []struct {
		spec string
		want scene.LayerMask
	}{
		{"all", scene.AllLayers},
		{"none", 0},
		{"", 0},
		{"4", 1 << 4},
		{"1,1,2", 1<<1 | 1<<2},
		{" 0 , 19 ", 1 | 1<<19},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			cfg, err := applyLayers(config.Default(), tt.spec)
			if err != nil {
				t.Fatalf("applyLayers(%q): %v", tt.spec, err)
			}
			if cfg.Layers != tt.want {
				t.Errorf("applyLayers(%q) = %s, want %s", tt.spec, cfg.Layers, tt.want)
			}
		})
	}

	base := config.Default()
	for _, spec := range []string{"x", "1,-1", "3,25"} {
		cfg, err := applyLayers(base, spec)
		if err == nil {
			t.Errorf("applyLayers(%q) should fail", spec)
		}
		if cfg != base {
			t.Errorf("applyLayers(%q) changed the config on error", spec)
		}
	}
}

func TestParseRGB(t *testing.T) {
	c, err := parseRGB("0.1, 0.2,0.3")
	if err != nil {
		t.Fatal(err)
	}
	if c != (scene.RGB{0.1, 0.2, 0.3}) {
		t.Errorf("parseRGB = %v", c)
	}
	for _, s := range []string{"", "1,2", "a,b,c", "1,2,3,4"} {
		if _, err := parseRGB(s); err == nil {
			t.Errorf("parseRGB(%q) should fail", s)
		}
	}
}
