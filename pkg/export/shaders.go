package export

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/rtexport/pkg/markup"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// WriteShaders writes one shader block per material, in host order.
// Reflection is not modelled and always written as 0.
func WriteShaders(w *markup.Writer, materials []scene.Material) {
	for _, m := range materials {
		w.Tag("shader", markup.String("name", m.Name))
		w.Nested("  ", "phong",
			markup.Float("specularity", m.Specular),
			markup.Float("ambient", m.Ambient),
			markup.Float("transmission", m.Transmission()),
			markup.Float("emission", m.Emission),
			markup.Float("shine", m.Hardness),
			markup.String("reflection", "0"))
		w.Nested("  ", "color",
			markup.Float("r", m.Color[0]),
			markup.Float("g", m.Color[1]),
			markup.Float("b", m.Color[2]))
		w.End("shader")
	}
}

// WriteLamp writes a light record. The lamp sits at the translation row of
// its world matrix and points back along it.
func WriteLamp(w *markup.Writer, world scene.Matrix, lamp scene.Lamp) {
	pos := world.Row(3).Vec3()
	dir := pos.Mul(-1)
	w.Tag("light",
		vec("pos", pos),
		vec("dir", dir),
		markup.Floats("color", lamp.Color[:]...),
		markup.String("type", lamp.Type))
}

// WriteLights writes a light record for every visible lamp and returns how
// many were written.
func WriteLights(w *markup.Writer, walker Walker) (int, error) {
	n := 0
	err := walker.Walk(Handlers{
		Lamp: func(o *scene.Object) error {
			m, err := world(o)
			if err != nil {
				return err
			}
			var lamp scene.Lamp
			if o.Lamp != nil {
				lamp = *o.Lamp
			}
			WriteLamp(w, m, lamp)
			n++
			return w.Err()
		},
	})
	return n, err
}

// WriteCamera writes a camera record. Position, view direction and up
// vector come from the rows of world named by basis.
func WriteCamera(w *markup.Writer, world scene.Matrix, cam scene.Camera, basis scene.Basis, samples int) {
	pos, look, up := basis.Vectors(world)
	w.Tag("Camera",
		vec("pos", pos),
		vec("look", look),
		vec("up", up),
		markup.Float("fov", cam.FieldOfView()),
		markup.Int("rpp", samples),
		markup.String("type", cam.Projection.Tag()))
}

func vec(key string, v mgl64.Vec3) markup.Attr {
	return markup.Floats(key, v[0], v[1], v[2])
}
