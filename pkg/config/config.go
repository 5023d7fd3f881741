// Package config holds the export configuration.
//
// A [Config] is an immutable value: every export receives its own copy, and
// interactive front ends produce a new snapshot per user action through
// [Config.Apply]. Defaults are those of a fresh export panel: prefix "rt",
// two rays per pixel, every layer and every category enabled, animation off.
//
// Configurations can be stored as TOML:
//
//	prefix  = "out/shot_"
//	samples = 4
//	layers  = [0, 1, 2]
//	animate = true
//
//	[export]
//	lights = false
//
//	[renderer]
//	command = "./adrt"
package config

import (
	"fmt"

	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// Default values of the export panel.
const (
	DefaultPrefix   = "rt"
	DefaultSamples  = 2
	DefaultRenderer = "./adrt"
)

// DefaultBackground is the renderer's background colour.
var DefaultBackground = scene.RGB{0.2, 0.3, 0.3}

// Category is one output category of an export.
type Category int

const (
	CategoryMeshes Category = iota
	CategoryMaterials
	CategoryLights
	CategoryFrames
	CategoryScene
)

var categoryNames = [...]string{"meshes", "materials", "lights", "frames", "scene"}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory maps a category name to a [Category].
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidConfig, "unknown category %q", s)
}

// Categories holds the per-category export switches.
type Categories struct {
	Meshes    bool
	Materials bool
	Lights    bool
	Frames    bool
	Scene     bool
}

// AllCategories enables every output.
var AllCategories = Categories{Meshes: true, Materials: true, Lights: true, Frames: true, Scene: true}

// Enabled reports whether c is switched on.
func (cs Categories) Enabled(c Category) bool {
	switch c {
	case CategoryMeshes:
		return cs.Meshes
	case CategoryMaterials:
		return cs.Materials
	case CategoryLights:
		return cs.Lights
	case CategoryFrames:
		return cs.Frames
	case CategoryScene:
		return cs.Scene
	}
	return false
}

// With returns cs with c switched on or off.
func (cs Categories) With(c Category, on bool) Categories {
	switch c {
	case CategoryMeshes:
		cs.Meshes = on
	case CategoryMaterials:
		cs.Materials = on
	case CategoryLights:
		cs.Lights = on
	case CategoryFrames:
		cs.Frames = on
	case CategoryScene:
		cs.Scene = on
	}
	return cs
}

// Config is the export configuration.
type Config struct {
	// Prefix is prepended to every output filename and to the image
	// filenames of rendered frames.
	Prefix string
	// Samples is the number of rays per pixel, written on camera records.
	Samples int
	// Layers selects the visible objects.
	Layers scene.LayerMask
	// Export selects the output categories.
	Export Categories
	// Animate exports every frame of the host's frame range instead of the
	// current frame only.
	Animate bool

	Background scene.RGB
	// Renderer is the renderer command line. Extra arguments are appended
	// when it is launched.
	Renderer string
	// Basis maps matrix rows to camera position, look and up vectors.
	Basis scene.Basis
	// Cleanup removes a partially written file when writing it fails. Off
	// by default: failed exports leave their partial output in place.
	Cleanup bool
}

// Default returns the configuration of a fresh export panel.
func Default() Config {
	return Config{
		Prefix:     DefaultPrefix,
		Samples:    DefaultSamples,
		Layers:     scene.AllLayers,
		Export:     AllCategories,
		Background: DefaultBackground,
		Renderer:   DefaultRenderer,
		Basis:      scene.DefaultBasis,
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := errors.ValidatePrefix(c.Prefix); err != nil {
		return err
	}
	if err := errors.ValidateSamples(c.Samples); err != nil {
		return err
	}
	for i, name := range []string{"background.r", "background.g", "background.b"} {
		if err := errors.ValidateUnit(name, c.Background[i]); err != nil {
			return err
		}
	}
	if err := c.Basis.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "camera basis")
	}
	if c.Renderer == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "renderer command cannot be empty")
	}
	return nil
}
