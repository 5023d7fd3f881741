package export

import (
	"fmt"

	"github.com/matzehuels/rtexport/pkg/markup"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// Skip describes a face left out of the output.
type Skip struct {
	Mesh   string
	Face   int
	Verts  int
	Reason string
}

// SkipFunc receives geometry diagnostics.
type SkipFunc func(Skip)

// quad faces are split into two triangles sharing the 0-2 diagonal.
var fan = [2][3]int{{0, 1, 2}, {0, 2, 3}}

// WriteMesh writes the Mesh block of obj. Vertices that are not
// three-dimensional are dropped without a diagnostic; faces with fewer than
// three or more than four vertices, or with indices outside the vertex list,
// are dropped and reported to skip. It returns the number of Face records
// written.
func WriteMesh(w *markup.Writer, obj *scene.Object, skip SkipFunc) int {
	mesh := obj.Mesh
	if mesh == nil {
		mesh = &scene.Mesh{}
	}

	attrs := []markup.Attr{markup.String("name", obj.Name)}
	if len(mesh.Materials) > 0 {
		attrs = append(attrs, markup.String("shader", mesh.Materials[0]))
	}
	w.Tag("Mesh", attrs...)

	normals := mesh.Smooth()
	for i, v := range mesh.Verts {
		if len(v.Co) != 3 {
			continue
		}
		va := []markup.Attr{
			markup.Int("idx", i),
			markup.Floats("coord", v.Co...),
		}
		if normals {
			va = append(va, markup.Floats("normal", v.No[:]...))
		}
		w.Nested("    ", "Vert", va...)
	}

	faces := 0
	for i, f := range mesh.Faces {
		if reason := checkFace(f, len(mesh.Verts)); reason != "" {
			if skip != nil {
				skip(Skip{Mesh: obj.Name, Face: i, Verts: len(f.V), Reason: reason})
			}
			continue
		}
		tris := fan[:1]
		if len(f.V) == 4 {
			tris = fan[:]
		}
		for _, t := range tris {
			w.Nested("    ", "Face",
				markup.Bool("smooth", f.Smooth),
				markup.Ints("vlist", f.V[t[0]], f.V[t[1]], f.V[t[2]]))
			faces++
		}
	}

	w.End("Mesh")
	return faces
}

func checkFace(f scene.Face, nverts int) string {
	switch n := len(f.V); {
	case n < 3:
		return fmt.Sprintf("face with %d vertices", n)
	case n > 4:
		return fmt.Sprintf("face with %d vertices, only triangles and quads are supported", n)
	}
	for _, v := range f.V {
		if v < 0 || v >= nverts {
			return fmt.Sprintf("vertex index %d out of range", v)
		}
	}
	return ""
}

// WriteMeshes writes every mesh visible to walker and returns how many were
// written.
func WriteMeshes(w *markup.Writer, walker Walker, skip SkipFunc) (int, error) {
	n := 0
	err := walker.Walk(Handlers{
		Mesh: func(o *scene.Object) error {
			WriteMesh(w, o, skip)
			n++
			return w.Err()
		},
	})
	return n, err
}
