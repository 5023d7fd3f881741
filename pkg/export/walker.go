package export

import (
	"fmt"

	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// Progress receives human-readable status lines such as "Mesh 3 of 12 Cube".
// It is purely observational.
type Progress func(status string)

// Handlers receives the visible objects of each kind. A nil handler skips
// its kind.
type Handlers struct {
	Mesh   func(*scene.Object) error
	Camera func(*scene.Object) error
	Lamp   func(*scene.Object) error
}

func (h Handlers) forKind(k scene.Kind) func(*scene.Object) error {
	switch k {
	case scene.KindMesh:
		return h.Mesh
	case scene.KindCamera:
		return h.Camera
	case scene.KindLamp:
		return h.Lamp
	}
	return nil
}

// Counts is the number of objects per kind under a layer mask.
type Counts struct {
	Meshes  int
	Cameras int
	Lamps   int
	Other   int
	Hidden  int
}

// Walker iterates the host's objects under a layer mask.
type Walker struct {
	Host     scene.Host
	Layers   scene.LayerMask
	Progress Progress
}

func (w Walker) visible() ([]*scene.Object, error) {
	objs, err := w.Host.Objects()
	if err != nil {
		return nil, errors.HostQuery(err, "list objects")
	}
	out := make([]*scene.Object, 0, len(objs))
	for _, o := range objs {
		if w.Layers.Visible(o.Layers) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Walk calls the matching handler for every visible object, in host order,
// and reports progress after each one. The first handler error stops the
// walk.
func (w Walker) Walk(h Handlers) error {
	objs, err := w.visible()
	if err != nil {
		return err
	}

	totals := make(map[scene.Kind]int)
	for _, o := range objs {
		if h.forKind(o.Kind) != nil {
			totals[o.Kind]++
		}
	}

	seen := make(map[scene.Kind]int)
	for _, o := range objs {
		fn := h.forKind(o.Kind)
		if fn == nil {
			continue
		}
		if err := fn(o); err != nil {
			return err
		}
		seen[o.Kind]++
		w.report(fmt.Sprintf("%s %d of %d %s", label(o.Kind), seen[o.Kind], totals[o.Kind], o.Name))
	}
	return nil
}

// Count tallies objects per kind. Hidden objects are counted once,
// regardless of kind.
func (w Walker) Count() (Counts, error) {
	objs, err := w.Host.Objects()
	if err != nil {
		return Counts{}, errors.HostQuery(err, "list objects")
	}
	var c Counts
	for _, o := range objs {
		if !w.Layers.Visible(o.Layers) {
			c.Hidden++
			continue
		}
		switch o.Kind {
		case scene.KindMesh:
			c.Meshes++
		case scene.KindCamera:
			c.Cameras++
		case scene.KindLamp:
			c.Lamps++
		default:
			c.Other++
		}
	}
	return c, nil
}

func (w Walker) report(status string) {
	if w.Progress != nil {
		w.Progress(status)
	}
}

func label(k scene.Kind) string {
	switch k {
	case scene.KindMesh:
		return "Mesh"
	case scene.KindCamera:
		return "Camera"
	case scene.KindLamp:
		return "Lamp"
	}
	return "Object"
}

// world resolves obj and maps a broken parent chain to a host error.
func world(obj *scene.Object) (scene.Matrix, error) {
	m, err := scene.Resolve(obj)
	if err != nil {
		return scene.Matrix{}, errors.HostQuery(err, "resolve transform of %s", obj.Name)
	}
	return m, nil
}
