package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/scene"
)

const cubeJSON = `{
  "frame": {"current": 2, "start": 1, "end": 3},
  "resolution": {"width": 320, "height": 240},
  "materials": [
    {"name": "Red", "specular": 0.5, "hardness": 50, "color": [1, 0, 0]},
    {"name": "Glass", "alpha": 0.2, "color": [0.9, 0.9, 1]}
  ],
  "objects": [
    {
      "name": "Cam",
      "kind": "camera",
      "layers": [0, 4],
      "parent": "Cube",
      "camera": {"type": "ortho", "lens": 50}
    },
    {
      "name": "Cube",
      "kind": "mesh",
      "layers": [0],
      "matrix": [[1,0,0,0],[0,1,0,0],[0,0,1,0],[0,0,2,1]],
      "mesh": {
        "materials": ["Red"],
        "verts": [{"co": [0,0,0], "no": [0,0,1]}, {"co": [1,0,0]}, {"co": [1,1,0]}],
        "faces": [{"v": [0,1,2], "smooth": true}]
      },
      "keys": {
        "1": [[1,0,0,0],[0,1,0,0],[0,0,1,0],[0,0,0,1]],
        "2": [[1,0,0,0],[0,1,0,0],[0,0,1,0],[5,0,0,1]]
      }
    },
    {"name": "Sun", "kind": "lamp", "layers": [], "lamp": {"type": "Sun", "color": [1, 0.9, 0.8]}},
    {"name": "Empty"}
  ]
}`

func TestReadJSON(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(cubeJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if cur, _ := s.CurrentFrame(); cur != 2 {
		t.Errorf("current frame = %d, want 2", cur)
	}
	if start, end, _ := s.FrameRange(); start != 1 || end != 3 {
		t.Errorf("range = %d..%d", start, end)
	}
	if w, h, _ := s.Resolution(); w != 320 || h != 240 {
		t.Errorf("resolution = %dx%d", w, h)
	}

	mats, _ := s.Materials()
	if len(mats) != 2 || mats[0].Alpha != 1 || mats[1].Alpha != 0.2 {
		t.Errorf("materials = %+v", mats)
	}

	cube, ok := s.Object("Cube")
	if !ok {
		t.Fatal("Cube missing")
	}
	if cube.Kind != scene.KindMesh || cube.Layers != 1 {
		t.Errorf("Cube kind/layers = %v/%b", cube.Kind, cube.Layers)
	}
	// The key at the current frame replaces the static matrix.
	if got := cube.Local.Row(3).Vec3(); got[0] != 5 || got[2] != 0 {
		t.Errorf("Cube translation = %v, want key at frame 2", got)
	}
	if len(cube.Mesh.Verts) != 3 || cube.Mesh.Verts[0].No != [3]float64{0, 0, 1} {
		t.Errorf("mesh verts = %+v", cube.Mesh.Verts)
	}
	if !cube.Mesh.Smooth() || cube.Mesh.Materials[0] != "Red" {
		t.Errorf("mesh = %+v", cube.Mesh)
	}

	cam, _ := s.Object("Cam")
	if cam.Parent != cube {
		t.Error("Cam parent should resolve to Cube even though it is listed later")
	}
	if cam.Camera.Projection != scene.Orthographic || cam.Camera.Lens != 50 {
		t.Errorf("camera = %+v", cam.Camera)
	}
	if cam.Layers != 1|1<<4 {
		t.Errorf("Cam layers = %b", cam.Layers)
	}

	sun, _ := s.Object("Sun")
	if sun.Layers != 0 {
		t.Errorf("explicit empty layers = %b, want 0", sun.Layers)
	}
	if sun.Lamp.Type != "Sun" {
		t.Errorf("lamp = %+v", sun.Lamp)
	}

	empty, _ := s.Object("Empty")
	if empty.Kind != scene.KindOther || empty.Layers != 1 || !scene.IsIdentity(empty.Local) {
		t.Errorf("Empty defaults = %+v", empty)
	}
}

func TestReadYAML(t *testing.T) {
	doc := `
frame: {start: 10, end: 12}
objects:
  - name: Plane
    kind: mesh
    layers: [3]
    mesh:
      verts:
        - co: [0, 0, 0]
        - co: [1, 0, 0]
        - co: [1, 1, 0]
        - co: [0, 1, 0]
      faces:
        - v: [0, 1, 2, 3]
  - name: Camera
    kind: camera
`
	s, err := ReadYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}
	if cur, _ := s.CurrentFrame(); cur != 10 {
		t.Errorf("current frame defaults to start, got %d", cur)
	}
	plane, _ := s.Object("Plane")
	if plane.Layers != 1<<3 || len(plane.Mesh.Faces[0].V) != 4 {
		t.Errorf("Plane = %+v", plane)
	}
	cam, _ := s.Object("Camera")
	if cam.Camera.Lens != DefaultLens || cam.Camera.Projection != scene.Perspective {
		t.Errorf("camera defaults = %+v", cam.Camera)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"malformed", `{"objects": [`, errors.ErrCodeInvalidInput},
		{"duplicate", `{"objects": [{"name": "A"}, {"name": "A"}]}`, errors.ErrCodeInvalidScene},
		{"unknown parent", `{"objects": [{"name": "A", "parent": "B"}]}`, errors.ErrCodeInvalidScene},
		{"unknown kind", `{"objects": [{"name": "A", "kind": "curve"}]}`, errors.ErrCodeInvalidScene},
		{"bad layer", `{"objects": [{"name": "A", "layers": [20]}]}`, errors.ErrCodeInvalidScene},
		{"no name", `{"objects": [{"kind": "mesh"}]}`, errors.ErrCodeInvalidScene},
		{"bad camera", `{"objects": [{"name": "C", "kind": "camera", "camera": {"type": "fisheye"}}]}`, errors.ErrCodeInvalidScene},
		{"bad range", `{"frame": {"start": 5, "end": 1}, "objects": []}`, errors.ErrCodeInvalidScene},
		{"current outside range", `{"frame": {"current": 9, "start": 1, "end": 3}, "objects": []}`, errors.ErrCodeInvalidScene},
		{"alpha", `{"materials": [{"name": "M", "alpha": 2}], "objects": []}`, errors.ErrCodeInvalidScene},
		{"resolution", `{"resolution": {"width": 0, "height": 10}, "objects": []}`, errors.ErrCodeInvalidScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadYAMLUnknownField(t *testing.T) {
	_, err := ReadYAML(strings.NewReader("objects:\n  - name: A\n    layer: [1]\n"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ReadYAML() error = %v, want INVALID_INPUT", err)
	}
}

func TestRoundTrip(t *testing.T) {
	orig, err := ReadJSON(strings.NewReader(cubeJSON))
	if err != nil {
		t.Fatal(err)
	}

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			var err error
			if format == FormatJSON {
				err = WriteJSON(orig, &buf)
			} else {
				err = WriteYAML(orig, &buf)
			}
			if err != nil {
				t.Fatalf("write: %v", err)
			}

			back, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("read back: %v\n%s", err, buf.String())
			}
			assertSameScene(t, orig, back)
		})
	}
}

func assertSameScene(t *testing.T, a, b *scene.Snapshot) {
	t.Helper()
	ao, _ := a.Objects()
	bo, _ := b.Objects()
	if len(ao) != len(bo) {
		t.Fatalf("objects = %d, want %d", len(bo), len(ao))
	}
	for i := range ao {
		x, y := ao[i], bo[i]
		if x.Name != y.Name || x.Kind != y.Kind || x.Layers != y.Layers || x.Local != y.Local {
			t.Errorf("object %d: %+v != %+v", i, y, x)
		}
		if (x.Parent == nil) != (y.Parent == nil) || (x.Parent != nil && x.Parent.Name != y.Parent.Name) {
			t.Errorf("object %s: parent mismatch", x.Name)
		}
		if len(a.Track(x.Name)) != len(b.Track(y.Name)) {
			t.Errorf("object %s: keys mismatch", x.Name)
		}
	}
	am, _ := a.Materials()
	bm, _ := b.Materials()
	if len(am) != len(bm) {
		t.Fatalf("materials = %d, want %d", len(bm), len(am))
	}
	for i := range am {
		if am[i] != bm[i] {
			t.Errorf("material %d: %+v != %+v", i, bm[i], am[i])
		}
	}
	ac, _ := a.CurrentFrame()
	bc, _ := b.CurrentFrame()
	if ac != bc {
		t.Errorf("current frame %d != %d", bc, ac)
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(path, []byte(cubeJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}

	out := filepath.Join(dir, "copy.yml")
	if err := ExportFile(s, out); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}
	if _, err := ImportFile(out); err != nil {
		t.Errorf("re-import: %v", err)
	}

	if _, err := ImportFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
	if _, err := ImportFile(filepath.Join(dir, "scene.blend")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unsupported extension error = %v", err)
	}
}
