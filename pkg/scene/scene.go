package scene

import (
	"fmt"
	"math"
)

// Kind identifies what an [Object] carries.
type Kind int

const (
	// KindOther covers empties and anything the exporter does not serialize.
	KindOther Kind = iota
	// KindMesh objects carry [Mesh] data.
	KindMesh
	// KindCamera objects carry [Camera] data.
	KindCamera
	// KindLamp objects carry [Lamp] data.
	KindLamp
)

var kindNames = map[Kind]string{
	KindOther:  "other",
	KindMesh:   "mesh",
	KindCamera: "camera",
	KindLamp:   "lamp",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name back to a [Kind]. The empty string is
// [KindOther].
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindOther, nil
	}
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindOther, fmt.Errorf("unknown object kind %q", s)
}

// Object is one node of the host scene graph.
//
// Parent is a relation only: the owning [Snapshot] holds every object, and
// an object never keeps its parent alive on its own.
type Object struct {
	Name   string
	Kind   Kind
	Layers uint32 // one bit per visibility layer
	Local  Matrix
	Parent *Object

	// Exactly one of these is set, matching Kind.
	Mesh   *Mesh
	Camera *Camera
	Lamp   *Lamp
}

// Vertex is a mesh vertex. Co is kept as a slice because host data is not
// guaranteed to be three-dimensional; the serializer skips anything else.
type Vertex struct {
	Co []float64
	No [3]float64
}

// Face references vertices by index. Valid faces have 3 or 4 vertices.
type Face struct {
	V      []int
	Smooth bool
}

// Mesh holds the geometry of a mesh object.
type Mesh struct {
	Materials []string // assigned material names, in slot order
	Verts     []Vertex
	Faces     []Face
}

// Smooth reports whether any face has its smooth-shading flag set. Vertex
// normals are exported for the whole mesh when it does.
func (m *Mesh) Smooth() bool {
	for _, f := range m.Faces {
		if f.Smooth {
			return true
		}
	}
	return false
}

// RGB is a linear colour with components in [0,1].
type RGB [3]float64

// Material is a global surface definition.
type Material struct {
	Name     string
	Specular float64
	Ambient  float64
	Alpha    float64 // in [0,1]
	Emission float64
	Hardness float64
	Color    RGB
}

// Transmission is the fraction of light passing through the surface.
func (m Material) Transmission() float64 {
	return 1 - m.Alpha
}

// Projection is a camera projection kind.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Tag returns the renderer's name for the projection.
func (p Projection) Tag() string {
	if p == Orthographic {
		return "ortho"
	}
	return "persp"
}

// Camera is camera data. Position and orientation come from the resolved
// transform of the owning object.
type Camera struct {
	Projection Projection
	Lens       float64 // focal length in mm
}

// FieldOfView returns the vertical field of view in degrees for a 35mm
// camera with a 24x36mm image plane.
func (c Camera) FieldOfView() float64 {
	return math.Atan(35.0/(2.0*c.Lens)) * 180 / math.Pi * 0.75
}

// Lamp is light source data.
type Lamp struct {
	Type  string
	Color RGB
}
