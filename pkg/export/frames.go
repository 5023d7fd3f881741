package export

import (
	"github.com/matzehuels/rtexport/pkg/errors"
	"github.com/matzehuels/rtexport/pkg/markup"
	"github.com/matzehuels/rtexport/pkg/scene"
)

// Sequencer writes Frame blocks, either for the host's current frame or for
// every frame of its range.
type Sequencer struct {
	Walker  Walker
	Prefix  string
	Animate bool
	Basis   scene.Basis
	Samples int

	// OnFrame is called after each complete Frame block.
	OnFrame func(frame int)
}

// Range returns the inclusive frames the sequencer will write. A static
// sequencer returns the current frame twice.
func (s Sequencer) Range() (start, end int, err error) {
	if !s.Animate {
		cur, err := s.Walker.Host.CurrentFrame()
		if err != nil {
			return 0, 0, errors.HostQuery(err, "current frame")
		}
		return cur, cur, nil
	}
	start, end, err = s.Walker.Host.FrameRange()
	if err != nil {
		return 0, 0, errors.HostQuery(err, "frame range")
	}
	return start, end, nil
}

// Write writes every frame and returns how many were written. In animated
// mode the host is moved to each frame and updated before the frame is
// walked, and is left at the last frame. A host that refuses a frame ends
// the sequence with a HOST_QUERY_FAILED error.
func (s Sequencer) Write(w *markup.Writer) (int, error) {
	start, end, err := s.Range()
	if err != nil {
		return 0, err
	}
	if !s.Animate {
		return 1, s.frame(w, start)
	}

	n := 0
	for f := start; f <= end; f++ {
		if err := s.Walker.Host.SetCurrentFrame(f); err != nil {
			return n, errors.HostQuery(err, "set frame %d", f)
		}
		if err := s.Walker.Host.Update(); err != nil {
			return n, errors.HostQuery(err, "update frame %d", f)
		}
		if err := s.frame(w, f); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s Sequencer) frame(w *markup.Writer, f int) error {
	w.Tag("Frame", markup.String("imagename", ImageName(s.Prefix, f)))
	err := s.Walker.Walk(Handlers{
		Mesh: func(o *scene.Object) error {
			m, err := world(o)
			if err != nil {
				return err
			}
			WriteTransform(w, o.Name, m)
			return w.Err()
		},
		Camera: func(o *scene.Object) error {
			m, err := world(o)
			if err != nil {
				return err
			}
			var cam scene.Camera
			if o.Camera != nil {
				cam = *o.Camera
			}
			WriteCamera(w, m, cam, s.Basis, s.Samples)
			return w.Err()
		},
	})
	if err != nil {
		return err
	}
	w.End("Frame")
	if err := w.Err(); err != nil {
		return err
	}
	if s.OnFrame != nil {
		s.OnFrame(f)
	}
	return nil
}

// WriteTransform writes the transform block of a mesh. Nothing is written
// for an exact identity matrix.
func WriteTransform(w *markup.Writer, mesh string, world scene.Matrix) bool {
	if scene.IsIdentity(world) {
		return false
	}
	w.Tag("transform", markup.String("mesh", mesh), markup.Matrix("matrix", scene.Rows(world)))
	return true
}
