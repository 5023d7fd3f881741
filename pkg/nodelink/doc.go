// Package nodelink draws the parent hierarchy of a host scene as a
// node-link diagram.
//
// # Overview
//
// Every object becomes a node and every parent relation an arrow from the
// parent to the child. Node shapes follow the object kind:
//
//   - meshes are boxes
//   - cameras are trapezia
//   - lamps are double circles
//   - everything else is a plain ellipse
//
// Objects the layer mask hides are drawn dashed and greyed out, so the
// diagram shows at a glance what an export with that mask would contain.
//
// # Usage
//
//	objs, _ := host.Objects()
//	dot := nodelink.ToDOT(objs, cfg.Layers, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// PDF and PNG output goes through SVG and needs rsvg-convert (librsvg):
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)
//
// # Dependencies
//
// SVG rendering runs in-process through [github.com/goccy/go-graphviz].
package nodelink
