package export

import (
	"errors"
	"slices"
	"testing"

	rterrors "github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/scene"
)

func layeredScene(t *testing.T) *scene.Snapshot {
	t.Helper()
	s := scene.NewSnapshot()
	objs := []*scene.Object{
		{Name: "A", Kind: scene.KindMesh, Layers: 1 << 0, Local: scene.Identity()},
		{Name: "B", Kind: scene.KindMesh, Layers: 1 << 1, Local: scene.Identity()},
		{Name: "Cam", Kind: scene.KindCamera, Layers: 1<<0 | 1<<5, Local: scene.Identity(), Camera: &scene.Camera{Lens: 35}},
		{Name: "Sun", Kind: scene.KindLamp, Layers: 1 << 2, Local: scene.Identity(), Lamp: &scene.Lamp{Type: "Sun"}},
		{Name: "C", Kind: scene.KindMesh, Layers: 1 << 0, Local: scene.Identity()},
		{Name: "Empty", Kind: scene.KindOther, Layers: 1 << 0, Local: scene.Identity()},
	}
	for _, o := range objs {
		if err := s.AddObject(o); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestWalkerLayerFilter(t *testing.T) {
	host := layeredScene(t)

	tests := []struct {
		name string
		mask scene.LayerMask
		want []string
	}{
		{"layer 0", scene.MaskOf(0), []string{"A", "Cam", "C"}},
		{"layer 1", scene.MaskOf(1), []string{"B"}},
		{"layer 5", scene.MaskOf(5), []string{"Cam"}},
		{"layers 1 and 2", scene.MaskOf(1, 2), []string{"B", "Sun"}},
		{"none", 0, nil},
		{"all", scene.AllLayers, []string{"A", "B", "Cam", "Sun", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			visit := func(o *scene.Object) error {
				got = append(got, o.Name)
				return nil
			}
			w := Walker{Host: host, Layers: tt.mask}
			if err := w.Walk(Handlers{Mesh: visit, Camera: visit, Lamp: visit}); err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("visited %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalkerInclusionIgnoresOutsideBits(t *testing.T) {
	mask := scene.MaskOf(3, 7)
	for bit := 0; bit < scene.NumLayers; bit++ {
		if mask.Has(bit) {
			continue
		}
		for _, layers := range []uint32{0, 1 << 3, 1 << 7, 1<<3 | 1<<7, 1 << 4} {
			s := scene.NewSnapshot()
			o := &scene.Object{Name: "O", Kind: scene.KindMesh, Layers: layers, Local: scene.Identity()}
			if err := s.AddObject(o); err != nil {
				t.Fatal(err)
			}
			before := len(walkNames(t, s, mask))
			o.Layers ^= 1 << bit
			after := len(walkNames(t, s, mask))
			if before != after {
				t.Errorf("layers %b: flipping bit %d changed inclusion", layers, bit)
			}
			if want := layers&uint32(mask) != 0; (before == 1) != want {
				t.Errorf("layers %b: included = %v, want %v", layers, before == 1, want)
			}
		}
	}
}

func TestWalkerProgress(t *testing.T) {
	host := layeredScene(t)
	var status []string
	w := Walker{Host: host, Layers: scene.MaskOf(0), Progress: func(s string) { status = append(status, s) }}

	noop := func(*scene.Object) error { return nil }
	if err := w.Walk(Handlers{Mesh: noop}); err != nil {
		t.Fatal(err)
	}
	want := []string{"Mesh 1 of 2 A", "Mesh 2 of 2 C"}
	if !slices.Equal(status, want) {
		t.Errorf("progress = %q, want %q", status, want)
	}
}

func TestWalkerStopsOnError(t *testing.T) {
	host := layeredScene(t)
	boom := errors.New("boom")
	calls := 0
	w := Walker{Host: host, Layers: scene.AllLayers}
	err := w.Walk(Handlers{Mesh: func(*scene.Object) error {
		calls++
		return boom
	}})
	if !errors.Is(err, boom) {
		t.Errorf("Walk() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("handler called %d times after failing", calls)
	}
}

func TestWalkerCount(t *testing.T) {
	w := Walker{Host: layeredScene(t), Layers: scene.MaskOf(0)}
	c, err := w.Count()
	if err != nil {
		t.Fatal(err)
	}
	want := Counts{Meshes: 2, Cameras: 1, Other: 1, Hidden: 2}
	if c != want {
		t.Errorf("Count() = %+v, want %+v", c, want)
	}
}

type brokenHost struct {
	*scene.Snapshot
}

func (brokenHost) Objects() ([]*scene.Object, error) {
	return nil, errors.New("scene unavailable")
}

func TestWalkerHostError(t *testing.T) {
	w := Walker{Host: brokenHost{scene.NewSnapshot()}, Layers: scene.AllLayers}
	err := w.Walk(Handlers{})
	if !rterrors.Is(err, rterrors.ErrCodeHostQuery) {
		t.Errorf("Walk() error = %v, want HOST_QUERY_FAILED", err)
	}
}

func walkNames(t *testing.T, host scene.Host, mask scene.LayerMask) []string {
	t.Helper()
	var names []string
	visit := func(o *scene.Object) error {
		names = append(names, o.Name)
		return nil
	}
	if err := (Walker{Host: host, Layers: mask}).Walk(Handlers{Mesh: visit, Camera: visit, Lamp: visit}); err != nil {
		t.Fatal(err)
	}
	return names
}
