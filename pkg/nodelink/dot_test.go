package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/rtexport/pkg/scene"
)

func hierarchy() []*scene.Object {
	rig := &scene.Object{Name: "Rig", Kind: scene.KindOther, Layers: 1}
	body := &scene.Object{Name: "Body", Kind: scene.KindMesh, Layers: 1, Parent: rig, Mesh: &scene.Mesh{
		Verts: []scene.Vertex{{Co: []float64{0, 0, 0}}, {Co: []float64{1, 0, 0}}, {Co: []float64{0, 1, 0}}},
		Faces: []scene.Face{{V: []int{0, 1, 2}}},
	}}
	cam := &scene.Object{Name: "Cam", Kind: scene.KindCamera, Layers: 1 << 4, Parent: rig, Camera: &scene.Camera{Lens: 35}}
	sun := &scene.Object{Name: "Sun", Kind: scene.KindLamp, Layers: 1, Lamp: &scene.Lamp{Type: "Sun"}}
	return []*scene.Object{rig, body, cam, sun}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(hierarchy(), scene.AllLayers, Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, want := range []string{
		`"Rig" -> "Body";`,
		`"Rig" -> "Cam";`,
		`"Body" [label="Body", shape=box]`,
		`"Cam" [label="Cam", shape=trapezium]`,
		`"Sun" [label="Sun", shape=doublecircle]`,
		`"Rig" [label="Rig", shape=ellipse]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `-> "Sun"`) {
		t.Error("root object should have no incoming edge")
	}
}

func TestToDOT_Hidden(t *testing.T) {
	dot := ToDOT(hierarchy(), scene.MaskOf(0), Options{})

	var camLine string
	for _, line := range strings.Split(dot, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), `"Cam" [`) {
			camLine = line
		}
	}
	if !strings.Contains(camLine, "dashed") {
		t.Errorf("hidden camera should be dashed: %q", camLine)
	}
	if strings.Count(dot, "dashed") != 1 {
		t.Errorf("only Cam is outside layer 0, got %d dashed nodes", strings.Count(dot, "dashed"))
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(hierarchy(), scene.AllLayers, Options{Detailed: true})

	for _, want := range []string{
		`verts: 3\nfaces: 1`,
		`persp 35mm`,
		`layers: [4]`,
		`lamp\nlayers: [0]\nSun`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed output missing %q", want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.Contains(got, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("SVG without viewBox should be returned unchanged")
	}
}
