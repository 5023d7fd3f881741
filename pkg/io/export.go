package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/scene"
)

type document struct {
	Frame      frameRange  `json:"frame" yaml:"frame"`
	Resolution *resolution `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Materials  []material  `json:"materials,omitempty" yaml:"materials,omitempty"`
	Objects    []object    `json:"objects" yaml:"objects"`
}

// frameRange fields are pointers so that frame 0 can be told apart from an
// absent key.
type frameRange struct {
	Current *int `json:"current,omitempty" yaml:"current,omitempty"`
	Start   *int `json:"start,omitempty" yaml:"start,omitempty"`
	End     *int `json:"end,omitempty" yaml:"end,omitempty"`
}

type resolution struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

type material struct {
	Name     string     `json:"name" yaml:"name"`
	Specular float64    `json:"specular,omitempty" yaml:"specular,omitempty"`
	Ambient  float64    `json:"ambient,omitempty" yaml:"ambient,omitempty"`
	Alpha    *float64   `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Emission float64    `json:"emission,omitempty" yaml:"emission,omitempty"`
	Hardness float64    `json:"hardness,omitempty" yaml:"hardness,omitempty"`
	Color    [3]float64 `json:"color" yaml:"color,flow"`
}

type object struct {
	Name   string                `json:"name" yaml:"name"`
	Kind   string                `json:"kind,omitempty" yaml:"kind,omitempty"`
	Layers []int                 `json:"layers" yaml:"layers,flow"`
	Matrix *[4][4]float64        `json:"matrix,omitempty" yaml:"matrix,omitempty,flow"`
	Parent string                `json:"parent,omitempty" yaml:"parent,omitempty"`
	Mesh   *mesh                 `json:"mesh,omitempty" yaml:"mesh,omitempty"`
	Camera *camera               `json:"camera,omitempty" yaml:"camera,omitempty"`
	Lamp   *lamp                 `json:"lamp,omitempty" yaml:"lamp,omitempty"`
	Keys   map[int][4][4]float64 `json:"keys,omitempty" yaml:"keys,omitempty"`
}

type mesh struct {
	Materials []string `json:"materials,omitempty" yaml:"materials,omitempty,flow"`
	Verts     []vertex `json:"verts" yaml:"verts"`
	Faces     []face   `json:"faces" yaml:"faces"`
}

type vertex struct {
	Co []float64   `json:"co" yaml:"co,flow"`
	No *[3]float64 `json:"no,omitempty" yaml:"no,omitempty,flow"`
}

type face struct {
	V      []int `json:"v" yaml:"v,flow"`
	Smooth bool  `json:"smooth,omitempty" yaml:"smooth,omitempty"`
}

type camera struct {
	Type string  `json:"type,omitempty" yaml:"type,omitempty"`
	Lens float64 `json:"lens" yaml:"lens"`
}

type lamp struct {
	Type  string     `json:"type" yaml:"type"`
	Color [3]float64 `json:"color" yaml:"color,flow"`
}

// toDocument captures the current state of s.
func toDocument(s *scene.Snapshot) document {
	var doc document

	cur, _ := s.CurrentFrame()
	start, end, _ := s.FrameRange()
	doc.Frame = frameRange{Current: &cur, Start: &start, End: &end}
	w, h, _ := s.Resolution()
	doc.Resolution = &resolution{Width: w, Height: h}

	mats, _ := s.Materials()
	for _, m := range mats {
		alpha := m.Alpha
		doc.Materials = append(doc.Materials, material{
			Name:     m.Name,
			Specular: m.Specular,
			Ambient:  m.Ambient,
			Alpha:    &alpha,
			Emission: m.Emission,
			Hardness: m.Hardness,
			Color:    m.Color,
		})
	}

	objs, _ := s.Objects()
	for _, o := range objs {
		out := object{
			Name:   o.Name,
			Kind:   o.Kind.String(),
			Layers: scene.LayerMask(o.Layers).Layers(),
		}
		if out.Layers == nil {
			out.Layers = []int{}
		}
		if !scene.IsIdentity(o.Local) {
			rows := scene.Rows(o.Local)
			out.Matrix = &rows
		}
		if o.Parent != nil {
			out.Parent = o.Parent.Name
		}
		if o.Mesh != nil {
			out.Mesh = fromMesh(o.Mesh)
		}
		if o.Camera != nil {
			out.Camera = &camera{Type: o.Camera.Projection.Tag(), Lens: o.Camera.Lens}
		}
		if o.Lamp != nil {
			out.Lamp = &lamp{Type: o.Lamp.Type, Color: o.Lamp.Color}
		}
		if t := s.Track(o.Name); len(t) > 0 {
			out.Keys = make(map[int][4][4]float64, len(t))
			for f, m := range t {
				out.Keys[f] = scene.Rows(m)
			}
		}
		doc.Objects = append(doc.Objects, out)
	}
	return doc
}

func fromMesh(m *scene.Mesh) *mesh {
	out := &mesh{
		Materials: m.Materials,
		Verts:     make([]vertex, len(m.Verts)),
		Faces:     make([]face, len(m.Faces)),
	}
	for i, v := range m.Verts {
		out.Verts[i].Co = v.Co
		if v.No != ([3]float64{}) {
			no := v.No
			out.Verts[i].No = &no
		}
	}
	for i, f := range m.Faces {
		out.Faces[i] = face{V: f.V, Smooth: f.Smooth}
	}
	return out
}

// WriteJSON encodes s as indented JSON.
func WriteJSON(s *scene.Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(s)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes s as YAML.
func WriteYAML(s *scene.Snapshot, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(s)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ExportFile writes s to path, choosing the format by extension.
func ExportFile(s *scene.Snapshot, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeOutput, err, "create %s", path)
	}
	defer f.Close()
	if format == FormatYAML {
		return WriteYAML(s, f)
	}
	return WriteJSON(s, f)
}
