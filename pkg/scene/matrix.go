package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxDepth bounds parent chains. Hosts do not guarantee an acyclic graph, so
// [Resolve] stops instead of recursing forever.
const MaxDepth = 64

// ErrParentCycle is returned by [Resolve] when a parent chain loops or
// exceeds [MaxDepth].
var ErrParentCycle = errors.New("parent chain cycle")

// Matrix is a 4×4 transform. Indexing follows the host: At(i, j) is element
// j of row i, and rows are basis vectors with the translation in row 3.
type Matrix = mgl64.Mat4

// Identity returns the identity matrix.
func Identity() Matrix {
	return mgl64.Ident4()
}

// MatrixFromRows builds a [Matrix] from host rows.
func MatrixFromRows(r [4][4]float64) Matrix {
	return mgl64.Mat4FromRows(
		mgl64.Vec4(r[0]),
		mgl64.Vec4(r[1]),
		mgl64.Vec4(r[2]),
		mgl64.Vec4(r[3]),
	)
}

// Rows returns m as host rows.
func Rows(m Matrix) [4][4]float64 {
	var r [4][4]float64
	for i := 0; i < 4; i++ {
		r[i] = [4]float64(m.Row(i))
	}
	return r
}

// Compose applies local inside parent: result[i][j] = Σ_k parent[i][k]·local[k][j].
func Compose(parent, local Matrix) Matrix {
	return parent.Mul4(local)
}

// IsIdentity reports whether m is exactly the identity matrix.
func IsIdentity(m Matrix) bool {
	return m == mgl64.Ident4()
}

// Resolve returns the world transform of obj by composing its local matrix
// with every ancestor. Nothing is cached.
func Resolve(obj *Object) (Matrix, error) {
	chain := make([]*Object, 0, 4)
	seen := make(map[*Object]bool)
	for o := obj; o != nil; o = o.Parent {
		if seen[o] || len(chain) >= MaxDepth {
			return Matrix{}, fmt.Errorf("%s: %w", obj.Name, ErrParentCycle)
		}
		seen[o] = true
		chain = append(chain, o)
	}

	// Walk from the root down so each step is Compose(world(parent), local).
	world := chain[len(chain)-1].Local
	for i := len(chain) - 2; i >= 0; i-- {
		world = Compose(world, chain[i].Local)
	}
	return world, nil
}

// Basis names the matrix rows that carry a camera's position, view direction
// and up vector. The mapping is specific to the host's matrix layout.
type Basis struct {
	Position   int
	Look       int
	Up         int
	NegateLook bool
}

// DefaultBasis matches Blender-style object matrices: position is row 3, the
// camera looks down its negative row 2 axis, and row 1 is up.
var DefaultBasis = Basis{Position: 3, Look: 2, Up: 1, NegateLook: true}

// Validate checks that every row index is in [0,3].
func (b Basis) Validate() error {
	for _, r := range []int{b.Position, b.Look, b.Up} {
		if r < 0 || r > 3 {
			return fmt.Errorf("basis row %d out of range [0,3]", r)
		}
	}
	return nil
}

// Vectors extracts position, look and up from a resolved matrix.
func (b Basis) Vectors(m Matrix) (pos, look, up mgl64.Vec3) {
	pos = m.Row(b.Position).Vec3()
	look = m.Row(b.Look).Vec3()
	if b.NegateLook {
		look = look.Mul(-1)
	}
	up = m.Row(b.Up).Vec3()
	return pos, look, up
}
