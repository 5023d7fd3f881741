// Package pkg provides the core libraries of rtexport, which writes 3D scenes
// as ADRT ray tracer markup.
//
// # Overview
//
// An export reads a host scene through the [scene.Host] interface and writes
// up to four text files that the renderer loads together:
//
//	<prefix>Scene.db    background colour and references to the other files
//	<prefix>Meshes.db   mesh geometry and cameras
//	<prefix>Shaders.db  materials and lights
//	<prefix>Frames.db   per-frame transforms, one block per rendered image
//
// # Architecture
//
// The typical data flow:
//
//	snapshot file (JSON/YAML) or live host
//	         ↓
//	    [io] package (decode into a scene.Snapshot)
//	         ↓
//	    [scene] package (hierarchy, layers, keyframes, transforms)
//	         ↓
//	    [export] package (walk, serialize through [markup])
//	         ↓
//	    [renderer] package (optional: start the ray tracer)
//
// [pipeline] ties the stages together and is shared by the CLI and the HTTP
// server so both behave the same.
//
// # Quick Start
//
//	import (
//	    "context"
//	    rtio "github.com/matzehuels/rtexport/pkg/io"
//	    "github.com/matzehuels/rtexport/pkg/config"
//	    "github.com/matzehuels/rtexport/pkg/export"
//	)
//
//	host, _ := rtio.ImportFile("scene.json")
//	res, _ := export.Export(context.Background(), host, config.Default(),
//	    export.WithDir("out"))
//	fmt.Println(res.Files)
//
// # Main Packages
//
// [scene] - The host model: objects with layer bits, parent links and a local
// matrix; meshes, cameras, lamps and materials; the [scene.Snapshot] host
// with step keyframes; transform resolution along the parent chain.
//
// [config] - The immutable export configuration, its TOML file format and
// the typed commands that front ends apply to it.
//
// [markup] - The tag writer behind every output file.
//
// [export] - Geometry, shader, frame and manifest serializers plus the
// layer-filtered scene walker.
//
// [io] - Snapshot files in JSON and YAML.
//
// [renderer] - Launching the external renderer on an exported manifest.
//
// [nodelink] - Diagrams of the object hierarchy using Graphviz.
//
// [pipeline] - Export followed by an optional render, with timing.
//
// [observability] - Hooks for export passes and renderer processes.
//
// [errors] - Coded errors shared by every package and the HTTP server.
//
// # Testing
//
//	go test ./...                  # All tests
//	go test ./pkg/export/...       # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [scene]: https://pkg.go.dev/github.com/matzehuels/rtexport/pkg/scene
// [config]: https://pkg.go.dev/github.com/matzehuels/rtexport/pkg/config
// [markup]: https://pkg.go.dev/github.com/matzehuels/rtexport/pkg/markup
// [export]: https://pkg.go.dev/github.com/matzehuels/rtexport/pkg/export
// [io]: https://pkg.go.dev/github.com/matzehuels/rtexport/pkg/io
// [renderer]: https://pkg.go.dev/github.com/matzehuels/rtexport/pkg/renderer
// [nodelink]: https://pkg.go.dev/github.com/matzehuels/rtexport/pkg/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/rtexport/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/rtexport/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/rtexport/pkg/errors
// [scene.Host]: https://pkg.go.dev/github.com/matzehuels/rtexport/pkg/scene#Host
// [scene.Snapshot]: https://pkg.go.dev/github.com/matzehuels/rtexport/pkg/scene#Snapshot
package pkg
