package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// refreshSeparation applies the cache discipline for one ordered pair:
//
//   - Separated(axis): re-test only that axis; still separating keeps the entry
//     untouched (the O(1) fast path for stable non-colliding pairs).
//   - Otherwise run the full search. Success overwrites with the new axis;
//     failure records a Contact that keeps the last known axis so penetration
//     can still be resolved against a named plane.
func refreshSeparation(entry Separation, a *PolygonMesh, ta rl.Matrix, b *PolygonMesh, tb rl.Matrix) Separation {
	if entry.Separated && CheckAxis(a, ta, b, tb, entry.Axis) {
		return entry
	}
	if axis, ok := FindSeparatingAxis(a, ta, b, tb); ok {
		return Separation{Separated: true, Axis: axis}
	}
	return Separation{Separated: false, Axis: entry.Axis}
}
