package pipeline

import (
	"fmt"

	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/nodelink"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// Format constants for hierarchy diagrams.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported diagram formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// GraphOptions configures [Graph].
type GraphOptions struct {
	Layers   scene.LayerMask
	Formats  []string
	Detailed bool
}

// Graph draws the object hierarchy of host in each requested format. The
// default format is SVG.
func Graph(host scene.Host, opts GraphOptions) (map[string][]byte, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	objs, err := host.Objects()
	if err != nil {
		return nil, errors.HostQuery(err, "list objects")
	}
	dot := nodelink.ToDOT(objs, opts.Layers, nodelink.Options{Detailed: opts.Detailed})

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, 2.0)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
