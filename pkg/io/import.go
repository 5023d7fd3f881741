package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// Format is a snapshot file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultLens is the focal length of cameras that do not set one.
const DefaultLens = 35.0

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unsupported scene file %s (want .json, .yaml or .yml)", path)
}

var projections = map[string]scene.Projection{
	"":      scene.Perspective,
	"persp": scene.Perspective,
	"ortho": scene.Orthographic,
}

// ReadJSON decodes a JSON snapshot from r.
//
// ReadJSON returns an INVALID_INPUT error for malformed JSON and an
// INVALID_SCENE error when the document is inconsistent:
//   - duplicate object names
//   - a parent or keyed object that does not exist
//   - an unknown kind or camera type
//   - a layer index outside 0-19
//   - a current frame outside the frame range
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*scene.Snapshot, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode scene")
	}
	return doc.snapshot()
}

// ReadYAML decodes a YAML snapshot from r. It validates the document the
// same way as [ReadJSON].
func ReadYAML(r io.Reader) (*scene.Snapshot, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode scene")
	}
	return doc.snapshot()
}

// Read decodes a snapshot in the given format.
func Read(r io.Reader, format Format) (*scene.Snapshot, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown scene format %q", format)
}

// ImportFile reads the snapshot at path, choosing the format by extension.
// A leading "~" is expanded by the caller, not here.
func ImportFile(path string) (*scene.Snapshot, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format)
}

func (d document) snapshot() (*scene.Snapshot, error) {
	s := scene.NewSnapshot()

	for _, m := range d.Materials {
		alpha := 1.0
		if m.Alpha != nil {
			alpha = *m.Alpha
		}
		if alpha < 0 || alpha > 1 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "material %s: alpha %g outside [0,1]", m.Name, alpha)
		}
		s.AddMaterial(scene.Material{
			Name:     m.Name,
			Specular: m.Specular,
			Ambient:  m.Ambient,
			Alpha:    alpha,
			Emission: m.Emission,
			Hardness: m.Hardness,
			Color:    scene.RGB(m.Color),
		})
	}

	for _, o := range d.Objects {
		obj, err := o.object()
		if err != nil {
			return nil, err
		}
		if err := s.AddObject(obj); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "object %s", o.Name)
		}
	}

	// Parents and keys may refer to objects later in the list.
	for _, o := range d.Objects {
		if o.Parent != "" {
			if err := s.SetParent(o.Name, o.Parent); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "parent of %s", o.Name)
			}
		}
		for f, rows := range o.Keys {
			if err := s.AddKey(o.Name, f, scene.MatrixFromRows(rows)); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "key %d of %s", f, o.Name)
			}
		}
	}

	if err := d.applyFrames(s); err != nil {
		return nil, err
	}
	if r := d.Resolution; r != nil {
		if r.Width <= 0 || r.Height <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "resolution %dx%d must be positive", r.Width, r.Height)
		}
		s.SetResolution(r.Width, r.Height)
	}

	if err := s.Update(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "update")
	}
	return s, nil
}

func (d document) applyFrames(s *scene.Snapshot) error {
	start, end := 1, 1
	if d.Frame.Start != nil {
		start = *d.Frame.Start
		end = start
	}
	if d.Frame.End != nil {
		end = *d.Frame.End
	}
	if err := s.SetFrameRange(start, end); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "frame range")
	}
	cur := start
	if d.Frame.Current != nil {
		cur = *d.Frame.Current
	}
	if err := s.SetCurrentFrame(cur); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "current frame")
	}
	return nil
}

func (o object) object() (*scene.Object, error) {
	kind, err := scene.ParseKind(o.Kind)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "object %s", o.Name)
	}
	if o.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidScene, "object without a name")
	}

	obj := &scene.Object{Name: o.Name, Kind: kind, Local: scene.Identity()}

	layers := o.Layers
	if layers == nil {
		layers = []int{0}
	}
	for _, l := range layers {
		if err := errors.ValidateLayer(l, scene.NumLayers); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "object %s", o.Name)
		}
		obj.Layers |= 1 << l
	}

	if o.Matrix != nil {
		obj.Local = scene.MatrixFromRows(*o.Matrix)
	}

	switch kind {
	case scene.KindMesh:
		obj.Mesh = &scene.Mesh{}
		if o.Mesh != nil {
			obj.Mesh = o.Mesh.toScene()
		}
	case scene.KindCamera:
		cam := scene.Camera{Lens: DefaultLens}
		if o.Camera != nil {
			p, ok := projections[o.Camera.Type]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidScene, "camera %s: unknown type %q", o.Name, o.Camera.Type)
			}
			cam.Projection = p
			if o.Camera.Lens > 0 {
				cam.Lens = o.Camera.Lens
			}
		}
		obj.Camera = &cam
	case scene.KindLamp:
		l := scene.Lamp{Type: "Lamp", Color: scene.RGB{1, 1, 1}}
		if o.Lamp != nil {
			l = scene.Lamp{Type: o.Lamp.Type, Color: scene.RGB(o.Lamp.Color)}
		}
		obj.Lamp = &l
	}
	return obj, nil
}

func (m *mesh) toScene() *scene.Mesh {
	out := &scene.Mesh{
		Materials: m.Materials,
		Verts:     make([]scene.Vertex, len(m.Verts)),
		Faces:     make([]scene.Face, len(m.Faces)),
	}
	for i, v := range m.Verts {
		out.Verts[i].Co = v.Co
		if v.No != nil {
			out.Verts[i].No = *v.No
		}
	}
	for i, f := range m.Faces {
		out.Faces[i] = scene.Face{V: f.V, Smooth: f.Smooth}
	}
	return out
}
