package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"

	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// file is the TOML layout. Pointers distinguish "absent" from zero values
// so that a file only overrides what it names.
type file struct {
	Prefix     *string     `toml:"prefix"`
	Samples    *int        `toml:"samples"`
	Layers     *[]int      `toml:"layers"`
	Animate    *bool       `toml:"animate"`
	Cleanup    *bool       `toml:"cleanup"`
	Background *[3]float64 `toml:"background"`

	Export struct {
		Meshes    *bool `toml:"meshes"`
		Materials *bool `toml:"materials"`
		Lights    *bool `toml:"lights"`
		Frames    *bool `toml:"frames"`
		Scene     *bool `toml:"scene"`
	} `toml:"export"`

	Renderer struct {
		Command *string `toml:"command"`
	} `toml:"renderer"`

	Camera struct {
		Position   *int  `toml:"position"`
		Look       *int  `toml:"look"`
		Up         *int  `toml:"up"`
		NegateLook *bool `toml:"negate_look"`
	} `toml:"camera"`
}

// ExpandPath resolves a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "expand %s", path)
	}
	return p, nil
}

// Load reads a TOML configuration file on top of [Default].
func Load(path string) (Config, error) {
	p, err := ExpandPath(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	return Parse(string(data), Default())
}

// Parse decodes TOML text and applies it on top of base. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func Parse(data string, base Config) (Config, error) {
	var f file
	md, err := toml.Decode(data, &f)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}

	c := base
	if f.Prefix != nil {
		c.Prefix = *f.Prefix
	}
	if f.Samples != nil {
		c.Samples = *f.Samples
	}
	if f.Layers != nil {
		var mask scene.LayerMask
		for _, l := range *f.Layers {
			if err := errors.ValidateLayer(l, scene.NumLayers); err != nil {
				return Config{}, err
			}
			mask = mask.Set(l, true)
		}
		c.Layers = mask
	}
	if f.Animate != nil {
		c.Animate = *f.Animate
	}
	if f.Cleanup != nil {
		c.Cleanup = *f.Cleanup
	}
	if f.Background != nil {
		c.Background = scene.RGB(*f.Background)
	}

	setBool(&c.Export.Meshes, f.Export.Meshes)
	setBool(&c.Export.Materials, f.Export.Materials)
	setBool(&c.Export.Lights, f.Export.Lights)
	setBool(&c.Export.Frames, f.Export.Frames)
	setBool(&c.Export.Scene, f.Export.Scene)

	if f.Renderer.Command != nil {
		c.Renderer = *f.Renderer.Command
	}

	setInt(&c.Basis.Position, f.Camera.Position)
	setInt(&c.Basis.Look, f.Camera.Look)
	setInt(&c.Basis.Up, f.Camera.Up)
	setBool(&c.Basis.NegateLook, f.Camera.NegateLook)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
