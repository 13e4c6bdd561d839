package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/srinu427/residue-engine/internal/geometry"
)

// Side is the classification of a transformed mesh against a candidate plane.
type Side uint8

const (
	// SideOnPlane: every vertex sits exactly on the plane (or the mesh is empty).
	SideOnPlane Side = iota
	// SidePositive: at least one vertex strictly positive, none strictly negative.
	SidePositive
	// SideNegative: at least one vertex strictly negative, none strictly positive.
	SideNegative
	// SideIntersect: vertices on both strict sides; the plane cannot separate.
	SideIntersect
)

// Classification carries the side plus the extremal signed distances seen while
// scanning. Min is the push-out penetration depth when negative.
type Classification struct {
	Side Side
	Min  float32
	Max  float32
}

// classifyAgainstPlane scans every vertex of the mesh under transform and runs
// the side state machine. Exact zeros never break strict positivity or
// negativity: a resting face counts as positive contact, not intersection. All
// vertices are scanned so Min/Max are exact.
func classifyAgainstPlane(m *PolygonMesh, transform rl.Matrix, plane geometry.Plane) Classification {
	c := Classification{Side: SideOnPlane}
	first := true
	for _, v := range m.Vertices {
		d := plane.DistFromPoint(v.Transform(transform))
		if first {
			c.Min, c.Max = d, d
			first = false
		} else {
			if d < c.Min {
				c.Min = d
			}
			if d > c.Max {
				c.Max = d
			}
		}
		switch {
		case d > 0:
			if c.Side == SideNegative {
				c.Side = SideIntersect
			} else if c.Side != SideIntersect {
				c.Side = SidePositive
			}
		case d < 0:
			if c.Side == SidePositive {
				c.Side = SideIntersect
			} else if c.Side != SideIntersect {
				c.Side = SideNegative
			}
		}
	}
	return c
}

// AxisKind tags which kind of candidate plane produced a separation.
type AxisKind uint8

const (
	// AxisFirstFace is collision face First of the pair's first mesh.
	AxisFirstFace AxisKind = iota
	// AxisSecondFace is collision face First of the pair's second mesh.
	AxisSecondFace
	// AxisEdgeCross is the plane through edge First of the first mesh with
	// normal derived from crossing it with edge Second of the second mesh.
	AxisEdgeCross
)

// Axis names a separating-axis candidate by feature index, never by raw
// geometry, so it can be cheaply re-derived under fresh transforms.
type Axis struct {
	Kind   AxisKind
	First  int
	Second int
}

// Separation is one cache entry for an object pair: either a proof of
// separation or a contact. A contact keeps the last known axis as the plane
// penetration is resolved against.
type Separation struct {
	Separated bool
	Axis      Axis
}

// edgeCrossPlane builds the world-space candidate plane through edge i of mesh
// a: normal = cross(worldEdgeA, worldEdgeB), oriented by a second cross with
// b's edge. Returns false for degenerate (parallel-edge) crosses, which are
// skipped as axis candidates.
func edgeCrossPlane(a *PolygonMesh, ta rl.Matrix, i int, b *PolygonMesh, tb rl.Matrix, j int) (geometry.Plane, bool) {
	edgeA := a.worldEdge(i, ta)
	edgeB := b.worldEdge(j, tb)
	dirA := edgeA.Direction()
	dirB := edgeB.Direction()

	cross := dirA.Cross(dirB)
	if cross.IsZero() {
		return geometry.Plane{}, false
	}
	normal := cross.Cross(dirB)
	if normal.IsZero() {
		return geometry.Plane{}, false
	}
	return geometry.NewPlane(normal, edgeA.Start), true
}

// strictOppositeSides reports whether the two classifications prove separation
// across a shared plane: both strict, on different sides.
func strictOppositeSides(a, b Side) bool {
	return (a == SidePositive && b == SideNegative) || (a == SideNegative && b == SidePositive)
}

// FindSeparatingAxis enumerates candidate planes in a fixed order (first
// mesh's collision faces, second mesh's, then every edge-cross pair) and
// returns the first axis that separates. Order only affects which axis is
// reported. No axis means the meshes interpenetrate.
func FindSeparatingAxis(a *PolygonMesh, ta rl.Matrix, b *PolygonMesh, tb rl.Matrix) (Axis, bool) {
	for i := range a.collisionFaces {
		if classifyAgainstPlane(b, tb, a.worldPlane(i, ta)).Side == SidePositive {
			return Axis{Kind: AxisFirstFace, First: i}, true
		}
	}
	for i := range b.collisionFaces {
		if classifyAgainstPlane(a, ta, b.worldPlane(i, tb)).Side == SidePositive {
			return Axis{Kind: AxisSecondFace, First: i}, true
		}
	}
	for i := range a.edges {
		for j := range b.edges {
			plane, ok := edgeCrossPlane(a, ta, i, b, tb, j)
			if !ok {
				continue
			}
			sideA := classifyAgainstPlane(a, ta, plane).Side
			sideB := classifyAgainstPlane(b, tb, plane).Side
			if strictOppositeSides(sideA, sideB) {
				return Axis{Kind: AxisEdgeCross, First: i, Second: j}, true
			}
		}
	}
	return Axis{}, false
}

// CheckAxis re-tests a previously reported axis under fresh transforms. This is
// the cache fast path: one plane rebuild and one or two vertex scans instead of
// the full candidate enumeration.
func CheckAxis(a *PolygonMesh, ta rl.Matrix, b *PolygonMesh, tb rl.Matrix, axis Axis) bool {
	switch axis.Kind {
	case AxisFirstFace:
		return classifyAgainstPlane(b, tb, a.worldPlane(axis.First, ta)).Side == SidePositive
	case AxisSecondFace:
		return classifyAgainstPlane(a, ta, b.worldPlane(axis.First, tb)).Side == SidePositive
	case AxisEdgeCross:
		plane, ok := edgeCrossPlane(a, ta, axis.First, b, tb, axis.Second)
		if !ok {
			return false
		}
		sideA := classifyAgainstPlane(a, ta, plane).Side
		sideB := classifyAgainstPlane(b, tb, plane).Side
		return strictOppositeSides(sideA, sideB)
	}
	return false
}

// ContactNormal derives, for a separated pair, the world boundary normal
// pointing from mesh a toward mesh b, plus b's clearance above the plane.
// ok is false when the axis plane cannot be rebuilt or oriented.
func ContactNormal(a *PolygonMesh, ta rl.Matrix, b *PolygonMesh, tb rl.Matrix, axis Axis) (geometry.Direction, float32, bool) {
	switch axis.Kind {
	case AxisFirstFace:
		plane := a.worldPlane(axis.First, ta)
		return plane.Normal, classifyAgainstPlane(b, tb, plane).Min, true
	case AxisSecondFace:
		// b sits behind its own outward face; a is on the positive side, so
		// the direction from a toward b is the flipped face normal.
		plane := b.worldPlane(axis.First, tb)
		return plane.Normal.Opposite(), classifyAgainstPlane(a, ta, plane).Min, true
	case AxisEdgeCross:
		plane, ok := edgeCrossPlane(a, ta, axis.First, b, tb, axis.Second)
		if !ok {
			return geometry.Direction{}, 0, false
		}
		if classifyAgainstPlane(a, ta, plane).Side == SidePositive {
			plane = plane.Opposite()
		}
		cb := classifyAgainstPlane(b, tb, plane)
		if cb.Side == SideNegative {
			return geometry.Direction{}, 0, false
		}
		return plane.Normal, cb.Min, true
	}
	return geometry.Direction{}, 0, false
}

// PenetrationPushOut computes the translation that moves mesh b out of the
// plane named by axis: the push direction away from a and the extremal vertex
// depth inside the plane. A zero depth means this axis has nothing left to
// resolve; ok is false when the axis cannot produce a resolvable plane.
func PenetrationPushOut(a *PolygonMesh, ta rl.Matrix, b *PolygonMesh, tb rl.Matrix, axis Axis) (geometry.Direction, float32, bool) {
	switch axis.Kind {
	case AxisFirstFace:
		plane := a.worldPlane(axis.First, ta)
		if min := classifyAgainstPlane(b, tb, plane).Min; min < 0 {
			return plane.Normal, -min, true
		}
		return geometry.Direction{}, 0, true
	case AxisSecondFace:
		// Moving b along the flipped normal grows a's distance from b's face.
		plane := b.worldPlane(axis.First, tb)
		if min := classifyAgainstPlane(a, ta, plane).Min; min < 0 {
			return plane.Normal.Opposite(), -min, true
		}
		return geometry.Direction{}, 0, true
	case AxisEdgeCross:
		plane, ok := edgeCrossPlane(a, ta, axis.First, b, tb, axis.Second)
		if !ok {
			return geometry.Direction{}, 0, false
		}
		switch classifyAgainstPlane(a, ta, plane).Side {
		case SidePositive:
			plane = plane.Opposite()
		case SideIntersect:
			// a straddles its own edge plane; not a resolvable support.
			return geometry.Direction{}, 0, false
		}
		if min := classifyAgainstPlane(b, tb, plane).Min; min < 0 {
			return plane.Normal, -min, true
		}
		return geometry.Direction{}, 0, true
	}
	return geometry.Direction{}, 0, false
}
