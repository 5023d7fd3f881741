package export

import (
	"testing"

	"github.com/matzehuels/rtexport/pkg/markup"
	"github.com/matzehuels/rtexport/pkg/scene"
)

func TestWriteShaders(t *testing.T) {
	mats := []scene.Material{
		{Name: "Glass", Specular: 0.5, Ambient: 0.1, Alpha: 0.25, Emission: 0, Hardness: 50, Color: scene.RGB{0.8, 0.9, 1}},
		{Name: "Matte", Alpha: 1, Color: scene.RGB{1, 0, 0}},
	}
	want := `<shader name="Glass">
  <phong specularity="0.500000" ambient="0.100000" transmission="0.750000" emission="0.000000" shine="50.000000" reflection="0">
  <color r="0.800000" g="0.900000" b="1.000000">
</shader>
<shader name="Matte">
  <phong specularity="0.000000" ambient="0.000000" transmission="0.000000" emission="0.000000" shine="0.000000" reflection="0">
  <color r="1.000000" g="0.000000" b="0.000000">
</shader>
`
	got := capture(t, func(w *markup.Writer) { WriteShaders(w, mats) })
	if got != want {
		t.Errorf("WriteShaders() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteLights(t *testing.T) {
	host := scene.NewSnapshot()
	lamps := []*scene.Object{
		{Name: "Key", Kind: scene.KindLamp, Layers: 1, Local: translation(1, 2, 3), Lamp: &scene.Lamp{Type: "Lamp", Color: scene.RGB{1, 1, 1}}},
		{Name: "Hidden", Kind: scene.KindLamp, Layers: 2, Local: translation(9, 9, 9), Lamp: &scene.Lamp{Type: "Spot"}},
	}
	for _, o := range lamps {
		if err := host.AddObject(o); err != nil {
			t.Fatal(err)
		}
	}

	var n int
	got := capture(t, func(w *markup.Writer) {
		var err error
		n, err = WriteLights(w, Walker{Host: host, Layers: scene.MaskOf(0)})
		if err != nil {
			t.Fatal(err)
		}
	})

	want := `<light pos="1.000000 2.000000 3.000000" dir="-1.000000 -2.000000 -3.000000" color="1.000000 1.000000 1.000000" type="Lamp">` + "\n"
	if got != want {
		t.Errorf("WriteLights() =\n%s\nwant\n%s", got, want)
	}
	if n != 1 {
		t.Errorf("lights = %d, want 1", n)
	}
}

func TestWriteManifest(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		bg     scene.RGB
		want   string
	}{
		{
			name:   "defaults",
			prefix: "rt",
			bg:     scene.RGB{0.2, 0.3, 0.3},
			want: `<background r="0.2" g="0.3" b="0.3">
<shaderdata="rtShaders.db">
<meshdata="rtMeshes.db">
<framedata="rtFrames.db">
`,
		},
		{
			name:   "directory prefix",
			prefix: "out/shot_",
			bg:     scene.RGB{0, 0, 1},
			want: `<background r="0" g="0" b="1">
<shaderdata="out/shot_Shaders.db">
<meshdata="out/shot_Meshes.db">
<framedata="out/shot_Frames.db">
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := capture(t, func(w *markup.Writer) { WriteManifest(w, Paths(tt.prefix), tt.bg) })
			if got != tt.want {
				t.Errorf("WriteManifest() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	f := Paths("rt")
	want := []string{"rtScene.db", "rtMeshes.db", "rtShaders.db", "rtFrames.db"}
	got := f.List()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if ImageName("rt", 7) != "rt0007.bmp" {
		t.Errorf("ImageName = %q", ImageName("rt", 7))
	}
	if ImageName("rt", 12345) != "rt12345.bmp" {
		t.Errorf("ImageName = %q", ImageName("rt", 12345))
	}
}
