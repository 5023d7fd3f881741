// Package scene models the read-only snapshot of a host modelling
// application that the exporter consumes.
//
// # Overview
//
// The exporter never holds live host objects. Instead, an adapter around the
// host implements [Host], a small query interface that returns plain values:
// [Object] nodes with their kind, layer bitmask and local matrix, [Material]
// definitions, and the frame range used for animated exports. [Snapshot] is
// the in-memory implementation used by the file loaders in pkg/io and by
// tests.
//
// # Transforms
//
// Matrices follow the host's row-vector convention: each basis vector is a
// matrix row and the translation lives in row 3. [Resolve] composes an
// object's local matrix with its parent chain:
//
//	world(obj) = world(parent) × local(obj)
//	result[i][j] = Σ_k parent[i][k] · local[k][j]
//
// Operand order matters; swapping it yields a transposed rig. [IsIdentity]
// compares element-wise with exact floating-point equality.
//
// # Layers
//
// A [LayerMask] holds one bit per visibility layer (20 layers). An object is
// visible under a mask iff the object's bitmask and the mask share a bit.
package scene
