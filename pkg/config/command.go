package config

import (
	"fmt"

	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// Command is a user action on the export panel. Configuration commands
// produce a new [Config] through [Config.Apply]; ExportRequested and
// RenderRequested leave it unchanged and are acted on by the receiver.
type Command interface {
	fmt.Stringer
	command()
}

type (
	// ExportRequested asks for an export with the current configuration.
	ExportRequested struct{}
	// RenderRequested asks for an export followed by a renderer launch.
	RenderRequested struct{}
	// FilenameChanged replaces the output filename prefix.
	FilenameChanged struct{ Prefix string }
	// LayerToggled flips one visibility layer.
	LayerToggled struct{ Layer int }
	// AllLayersSelected switches every layer on.
	AllLayersSelected struct{}
	// NoLayersSelected switches every layer off.
	NoLayersSelected struct{}
	// SamplesChanged sets the rays per pixel.
	SamplesChanged struct{ Samples int }
	// AnimationToggled flips between current-frame and full-range export.
	AnimationToggled struct{}
	// CategoryToggled flips one output category.
	CategoryToggled struct{ Category Category }
)

func (ExportRequested) command()   {}
func (RenderRequested) command()   {}
func (FilenameChanged) command()   {}
func (LayerToggled) command()      {}
func (AllLayersSelected) command() {}
func (NoLayersSelected) command()  {}
func (SamplesChanged) command()    {}
func (AnimationToggled) command()  {}
func (CategoryToggled) command()   {}

func (ExportRequested) String() string   { return "export" }
func (RenderRequested) String() string   { return "render" }
func (c FilenameChanged) String() string { return fmt.Sprintf("filename %q", c.Prefix) }
func (c LayerToggled) String() string    { return fmt.Sprintf("layer %d", c.Layer) }
func (AllLayersSelected) String() string { return "all layers" }
func (NoLayersSelected) String() string  { return "no layers" }
func (c SamplesChanged) String() string  { return fmt.Sprintf("rays per pixel %d", c.Samples) }
func (AnimationToggled) String() string  { return "toggle animation" }
func (c CategoryToggled) String() string { return fmt.Sprintf("toggle %s", c.Category) }

// Apply returns the configuration that results from cmd. On error the
// receiver is returned unchanged alongside the error, so callers can log
// and carry on with the previous snapshot.
func (c Config) Apply(cmd Command) (Config, error) {
	next := c
	switch cmd := cmd.(type) {
	case ExportRequested, RenderRequested:
		return c, nil
	case FilenameChanged:
		if err := errors.ValidatePrefix(cmd.Prefix); err != nil {
			return c, err
		}
		next.Prefix = cmd.Prefix
	case LayerToggled:
		if err := errors.ValidateLayer(cmd.Layer, scene.NumLayers); err != nil {
			return c, err
		}
		next.Layers = c.Layers.Toggle(cmd.Layer)
	case AllLayersSelected:
		next.Layers = scene.AllLayers
	case NoLayersSelected:
		next.Layers = 0
	case SamplesChanged:
		if err := errors.ValidateSamples(cmd.Samples); err != nil {
			return c, err
		}
		next.Samples = cmd.Samples
	case AnimationToggled:
		next.Animate = !c.Animate
	case CategoryToggled:
		if cmd.Category < CategoryMeshes || cmd.Category > CategoryScene {
			return c, errors.New(errors.ErrCodeUnknownCommand, "unknown category %d", int(cmd.Category))
		}
		next.Export = c.Export.With(cmd.Category, !c.Export.Enabled(cmd.Category))
	default:
		return c, errors.New(errors.ErrCodeUnknownCommand, "unknown command %v", cmd)
	}
	return next, nil
}
