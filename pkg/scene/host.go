package scene

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDuplicateObject is returned by [Snapshot.AddObject] when an object
	// with the same name already exists. Names identify objects in the output.
	ErrDuplicateObject = errors.New("duplicate object name")

	// ErrUnknownObject is returned when a name does not refer to an object
	// of the snapshot.
	ErrUnknownObject = errors.New("unknown object")

	// ErrFrameOutOfRange is returned by [Snapshot.SetCurrentFrame] for a
	// frame outside the scene's frame range.
	ErrFrameOutOfRange = errors.New("frame out of range")

	// ErrInvalidFrameRange is returned when start is after end.
	ErrInvalidFrameRange = errors.New("invalid frame range")
)

// Host is the query interface the exporter uses to read a scene. Adapters
// around a modelling application implement it; the exporter never keeps the
// returned values beyond one export.
type Host interface {
	// Objects lists every object of the scene in host order.
	Objects() ([]*Object, error)
	// Materials lists every material, independent of layers.
	Materials() ([]Material, error)
	// CurrentFrame returns the host's current frame index.
	CurrentFrame() (int, error)
	// SetCurrentFrame moves the host to frame. Dependent transforms are
	// only refreshed by a following Update.
	SetCurrentFrame(frame int) error
	// FrameRange returns the inclusive animation range.
	FrameRange() (start, end int, err error)
	// Update forces the host to recompute dependent transforms.
	Update() error
	// Resolution returns the output image size in pixels.
	Resolution() (width, height int, err error)
}

// Track holds keyed local matrices of one object, by frame.
type Track map[int]Matrix

// at returns the key in effect at frame: the latest key at or before frame,
// or the earliest key when frame precedes them all.
func (t Track) at(frame int) (Matrix, bool) {
	if len(t) == 0 {
		return Matrix{}, false
	}
	frames := make([]int, 0, len(t))
	for f := range t {
		frames = append(frames, f)
	}
	slices.Sort(frames)
	key := frames[0]
	for _, f := range frames {
		if f > frame {
			break
		}
		key = f
	}
	return t[key], true
}

// Snapshot is an in-memory [Host]. It owns all of its objects.
//
// The zero value is not usable; call [NewSnapshot].
type Snapshot struct {
	objects   []*Object
	byName    map[string]*Object
	materials []Material
	tracks    map[string]Track

	current    int
	start, end int
	width      int
	height     int
}

// NewSnapshot returns an empty scene at frame 1 with a one-frame range and
// a 640x480 resolution.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		byName:  make(map[string]*Object),
		tracks:  make(map[string]Track),
		current: 1,
		start:   1,
		end:     1,
		width:   640,
		height:  480,
	}
}

// AddObject appends o to the scene.
func (s *Snapshot) AddObject(o *Object) error {
	if _, ok := s.byName[o.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateObject, o.Name)
	}
	s.objects = append(s.objects, o)
	s.byName[o.Name] = o
	return nil
}

// Object looks up an object by name.
func (s *Snapshot) Object(name string) (*Object, bool) {
	o, ok := s.byName[name]
	return o, ok
}

// SetParent links child to parent by name. An empty parent clears the link.
func (s *Snapshot) SetParent(child, parent string) error {
	c, ok := s.byName[child]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, child)
	}
	if parent == "" {
		c.Parent = nil
		return nil
	}
	p, ok := s.byName[parent]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, parent)
	}
	c.Parent = p
	return nil
}

// AddMaterial appends a material.
func (s *Snapshot) AddMaterial(m Material) {
	s.materials = append(s.materials, m)
}

// AddKey keys the local matrix of the named object at frame.
func (s *Snapshot) AddKey(name string, frame int, m Matrix) error {
	if _, ok := s.byName[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, name)
	}
	t := s.tracks[name]
	if t == nil {
		t = make(Track)
		s.tracks[name] = t
	}
	t[frame] = m
	return nil
}

// SetFrameRange sets the inclusive animation range.
func (s *Snapshot) SetFrameRange(start, end int) error {
	if start > end {
		return fmt.Errorf("%w: %d > %d", ErrInvalidFrameRange, start, end)
	}
	s.start, s.end = start, end
	return nil
}

// SetResolution sets the output image size.
func (s *Snapshot) SetResolution(width, height int) {
	s.width, s.height = width, height
}

func (s *Snapshot) Objects() ([]*Object, error) {
	return s.objects, nil
}

func (s *Snapshot) Materials() ([]Material, error) {
	return s.materials, nil
}

func (s *Snapshot) CurrentFrame() (int, error) {
	return s.current, nil
}

func (s *Snapshot) SetCurrentFrame(frame int) error {
	if frame < s.start || frame > s.end {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrFrameOutOfRange, frame, s.start, s.end)
	}
	s.current = frame
	return nil
}

func (s *Snapshot) FrameRange() (int, int, error) {
	return s.start, s.end, nil
}

// Update applies every keyed track at the current frame.
func (s *Snapshot) Update() error {
	for name, t := range s.tracks {
		if m, ok := t.at(s.current); ok {
			s.byName[name].Local = m
		}
	}
	return nil
}

func (s *Snapshot) Resolution() (int, int, error) {
	return s.width, s.height, nil
}

// Track returns the keys of the named object, if any.
func (s *Snapshot) Track(name string) Track {
	return s.tracks[name]
}
