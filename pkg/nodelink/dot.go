package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rtexport/pkg/scene"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the kind, layers and geometry size to node labels.
	// When false, only the object name is shown.
	Detailed bool
}

var shapes = map[scene.Kind]string{
	scene.KindMesh:   "box",
	scene.KindCamera: "trapezium",
	scene.KindLamp:   "doublecircle",
	scene.KindOther:  "ellipse",
}

// ToDOT converts the object hierarchy to Graphviz DOT. Objects outside mask
// are dashed and grey. The result can be rendered with [RenderSVG].
func ToDOT(objs []*scene.Object, mask scene.LayerMask, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"filled\", fillcolor=white, fontsize=20, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, o := range objs {
		attrs := fmtAttrs(o, mask.Visible(o.Layers), fmtLabel(o, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", o.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, o := range objs {
		if o.Parent != nil {
			fmt.Fprintf(&buf, "  %q -> %q;\n", o.Parent.Name, o.Name)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(o *scene.Object, detailed bool) string {
	if !detailed {
		return o.Name
	}

	parts := []string{
		o.Kind.String(),
		fmt.Sprintf("layers: %v", scene.LayerMask(o.Layers).Layers()),
	}
	switch {
	case o.Mesh != nil:
		parts = append(parts, fmt.Sprintf("verts: %d", len(o.Mesh.Verts)), fmt.Sprintf("faces: %d", len(o.Mesh.Faces)))
	case o.Camera != nil:
		parts = append(parts, fmt.Sprintf("%s %gmm", o.Camera.Projection.Tag(), o.Camera.Lens))
	case o.Lamp != nil:
		parts = append(parts, o.Lamp.Type)
	}
	return o.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(o *scene.Object, visible bool, label string) []string {
	shape, ok := shapes[o.Kind]
	if !ok {
		shape = shapes[scene.KindOther]
	}
	attrs := []string{fmt.Sprintf("label=%q", label), "shape=" + shape}
	if !visible {
		attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey", "color=grey50", "fontcolor=grey40")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one whose
// width and height match the viewBox, so browsers scale it consistently.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
