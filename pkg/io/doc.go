// Package io reads and writes scene snapshots as JSON or YAML.
//
// # Overview
//
// A snapshot file stands in for a live modelling application: it holds the
// objects, materials and animation settings the exporter queries through
// [scene.Host]. Files are read into a [scene.Snapshot], which implements the
// host interface, so the command line tools and the HTTP server can export
// scenes without the host application running.
//
// # Format
//
//	{
//	  "frame": {"current": 1, "start": 1, "end": 24},
//	  "resolution": {"width": 640, "height": 480},
//	  "materials": [
//	    {"name": "Red", "specular": 0.5, "alpha": 1, "hardness": 50, "color": [1, 0, 0]}
//	  ],
//	  "objects": [
//	    {
//	      "name": "Cube",
//	      "kind": "mesh",
//	      "layers": [0],
//	      "matrix": [[1,0,0,0],[0,1,0,0],[0,0,1,0],[0,0,2,1]],
//	      "mesh": {
//	        "materials": ["Red"],
//	        "verts": [{"co": [1, 1, -1]}, {"co": [1, -1, -1]}, {"co": [-1, -1, -1]}],
//	        "faces": [{"v": [0, 1, 2], "smooth": true}]
//	      },
//	      "keys": {"1": [[1,0,0,0],[0,1,0,0],[0,0,1,0],[0,0,0,1]]}
//	    },
//	    {"name": "Camera", "kind": "camera", "parent": "Cube", "camera": {"type": "persp", "lens": 35}},
//	    {"name": "Lamp", "kind": "lamp", "lamp": {"type": "Lamp", "color": [1, 1, 1]}}
//	  ]
//	}
//
// The YAML form uses the same keys.
//
// # Object Fields
//
// Required:
//   - name: unique object name, written verbatim to the output
//
// Optional:
//   - kind: "mesh", "camera", "lamp" or "other" (default "other")
//   - layers: visibility layer indices 0-19 (default [0]; [] hides the object)
//   - matrix: local transform as four rows (default identity)
//   - parent: name of the parent object, which may appear later in the list
//   - keys: local matrices keyed by frame, applied by [scene.Snapshot.Update]
//
// Material alpha defaults to 1 (opaque). Camera lens defaults to 35mm.
//
// # Import
//
// Use [ImportFile] to read a file, choosing the format by extension, or
// [ReadJSON] and [ReadYAML] to read from any io.Reader. The returned snapshot
// has been updated at its current frame.
//
// # Export
//
// Use [ExportFile], [WriteJSON] or [WriteYAML] to save a snapshot. Exported
// files re-import to an equivalent snapshot.
package io
