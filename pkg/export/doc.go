// Package export writes a host scene in the ray tracer's markup.
//
// # Overview
//
// An export produces up to four files, named by appending a fixed suffix to
// the configured prefix P (no separator):
//
//	PScene.db    manifest: background colour and the three data files
//	PMeshes.db   one <Mesh> block per visible mesh
//	PShaders.db  one <shader> block per material, then one <light> per lamp
//	PFrames.db   one <Frame> block per exported frame
//
// Files are written in that order, each opened, filled and closed before the
// next one starts. A category switched off in the [config.Config] leaves its
// file untouched.
//
// # Visibility
//
// Every pass walks the host's objects through a [Walker], which drops
// objects whose layer bits do not intersect the configured mask and hands
// the rest to per-kind handlers. Materials are global and never filtered.
//
// # Frames
//
// In static mode a single frame is written at the host's current frame. In
// animated mode the [Sequencer] steps the host through its frame range,
// asking it to recompute transforms before each frame. Every frame lists a
// transform for each visible mesh whose world matrix is not the identity,
// and a camera record for each visible camera.
//
// # Errors
//
// Malformed geometry is skipped and reported through the logger. Host
// failures surface as HOST_QUERY_FAILED and file failures as OUTPUT_FAILED;
// both abort the export. Partial files stay on disk unless Cleanup is set.
//
// # Usage
//
//	res, err := export.Export(ctx, host, config.Default(),
//	    export.WithDir("out"),
//	    export.WithLogger(logger))
package export
