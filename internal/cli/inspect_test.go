package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/rtexport/pkg/scene"
)

func inspectScene(t *testing.T) []*scene.Object {
	t.Helper()
	s := scene.NewSnapshot()
	for _, o := range []*scene.Object{
		{Name: "Body", Kind: scene.KindMesh, Layers: 1, Local: scene.Identity(), Mesh: &scene.Mesh{
			Verts: []scene.Vertex{{Co: []float64{0, 0, 0}}, {Co: []float64{1, 0, 0}}, {Co: []float64{0, 1, 0}}},
			Faces: []scene.Face{{V: []int{0, 1, 2}}},
		}},
		{Name: "Cam", Kind: scene.KindCamera, Layers: 1 << 4, Local: scene.Identity(), Camera: &scene.Camera{Lens: 35}},
		{Name: "Sun", Kind: scene.KindLamp, Layers: 0, Local: scene.Identity(), Lamp: &scene.Lamp{Type: "Sun"}},
	} {
		if err := s.AddObject(o); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.SetParent("Cam", "Body"); err != nil {
		t.Fatal(err)
	}
	objs, err := s.Objects()
	if err != nil {
		t.Fatal(err)
	}
	return objs
}

func TestInspectTable(t *testing.T) {
	out := inspectTable(inspectScene(t), scene.LayerMask(1))
	for _, want := range []string{"Object", "Export", "Body", "Cam", "Sun", "3 verts, 1 faces", "35mm"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatLayers(t *testing.T) {
	tests := []struct {
		bits uint32
		want string
	}{
		{0, "—"},
		{1, "0"},
		{1 | 1<<4 | 1<<19, "0,4,19"},
	}
	for _, tt := range tests {
		if got := formatLayers(tt.bits); got != tt.want {
			t.Errorf("formatLayers(%b) = %q, want %q", tt.bits, got, tt.want)
		}
	}
}

func TestObjectDetail(t *testing.T) {
	objs := inspectScene(t)
	want := map[string]string{"Body": "3 verts, 1 faces", "Sun": "Sun"}
	for _, o := range objs {
		if w, ok := want[o.Name]; ok && objectDetail(o) != w {
			t.Errorf("objectDetail(%s) = %q, want %q", o.Name, objectDetail(o), w)
		}
	}
}
