// Package geometry provides the value types the physics core is built on:
// positions (Point), free vectors (Direction), planes, line segments and rigid
// orientations. All of them are immutable: every operation returns a new value.
package geometry

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Point is a position in space. Transforming a point applies the full matrix,
// translation included.
type Point struct {
	V rl.Vector3
}

func Pt(x, y, z float32) Point {
	return Point{V: rl.Vector3{X: x, Y: y, Z: z}}
}

func PtFromVec(v rl.Vector3) Point {
	return Point{V: v}
}

func (p Point) Transform(m rl.Matrix) Point {
	return Point{V: rl.Vector3Transform(p.V, m)}
}

func (p Point) Displace(d Direction) Point {
	return Point{V: rl.Vector3Add(p.V, d.V)}
}

// AveragePoint returns the centroid of points, or the origin for an empty slice.
func AveragePoint(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	sum := rl.Vector3{}
	for _, p := range points {
		sum = rl.Vector3Add(sum, p.V)
	}
	return Point{V: rl.Vector3Scale(sum, 1/float32(len(points)))}
}

// Direction is a free vector. It never carries position semantics, so
// transforming one ignores the matrix's translation column.
type Direction struct {
	V rl.Vector3
}

func Dir(x, y, z float32) Direction {
	return Direction{V: rl.Vector3{X: x, Y: y, Z: z}}
}

func DirFromVec(v rl.Vector3) Direction {
	return Direction{V: v}
}

// DirBetween returns the direction from start to end.
func DirBetween(start, end Point) Direction {
	return Direction{V: rl.Vector3Subtract(end.V, start.V)}
}

func (d Direction) Transform(m rl.Matrix) Direction {
	return Direction{V: rl.Vector3{
		X: m.M0*d.V.X + m.M4*d.V.Y + m.M8*d.V.Z,
		Y: m.M1*d.V.X + m.M5*d.V.Y + m.M9*d.V.Z,
		Z: m.M2*d.V.X + m.M6*d.V.Y + m.M10*d.V.Z,
	}}
}

func (d Direction) Normalize() Direction {
	return Direction{V: rl.Vector3Normalize(d.V)}
}

func (d Direction) Cross(other Direction) Direction {
	return Direction{V: rl.Vector3CrossProduct(d.V, other.V)}
}

func (d Direction) Dot(other Direction) float32 {
	return rl.Vector3DotProduct(d.V, other.V)
}

func (d Direction) Scale(s float32) Direction {
	return Direction{V: rl.Vector3Scale(d.V, s)}
}

func (d Direction) Opposite() Direction {
	return Direction{V: rl.Vector3Scale(d.V, -1)}
}

func (d Direction) Length() float32 {
	return rl.Vector3Length(d.V)
}

// IsZero reports a degenerate direction. Used to discard invalid separating-axis
// candidates, never treated as an error.
func (d Direction) IsZero() bool {
	return rl.Vector3DotProduct(d.V, d.V) == 0
}

// LineSegment is a pair of endpoints; its direction runs start to end.
type LineSegment struct {
	Start Point
	End   Point
}

func Segment(start, end Point) LineSegment {
	return LineSegment{Start: start, End: end}
}

func (s LineSegment) Direction() Direction {
	return DirBetween(s.Start, s.End)
}

func (s LineSegment) Transform(m rl.Matrix) LineSegment {
	return LineSegment{Start: s.Start.Transform(m), End: s.End.Transform(m)}
}

// Plane is a unit normal anchored at a point. The constructor normalizes, so a
// built Plane always carries a unit normal.
type Plane struct {
	Normal Direction
	Anchor Point
}

func NewPlane(normal Direction, anchor Point) Plane {
	return Plane{Normal: normal.Normalize(), Anchor: anchor}
}

// Eq returns the plane equation (a, b, c, d) with a·x + b·y + c·z + d the signed
// distance of (x, y, z) from the plane.
func (pl Plane) Eq() rl.Vector4 {
	n := pl.Normal.V
	return rl.Vector4{X: n.X, Y: n.Y, Z: n.Z, W: -rl.Vector3DotProduct(n, pl.Anchor.V)}
}

// DistFromPoint is the plane equation dotted with the homogeneous point.
func (pl Plane) DistFromPoint(p Point) float32 {
	eq := pl.Eq()
	return eq.X*p.V.X + eq.Y*p.V.Y + eq.Z*p.V.Z + eq.W
}

func (pl Plane) Transform(m rl.Matrix) Plane {
	return Plane{Normal: pl.Normal.Transform(m), Anchor: pl.Anchor.Transform(m)}
}

// Opposite flips the normal only; the anchor stays.
func (pl Plane) Opposite() Plane {
	return Plane{Normal: pl.Normal.Opposite(), Anchor: pl.Anchor}
}

// ProjectPoint returns p projected onto the plane.
func (pl Plane) ProjectPoint(p Point) Point {
	dist := pl.DistFromPoint(p)
	return p.Displace(pl.Normal.Scale(-dist))
}

// Orientation is a rigid placement: a rotation followed by a translation.
type Orientation struct {
	Position rl.Vector3
	Rotation rl.Matrix
}

func NewOrientation(position rl.Vector3, rotation rl.Matrix) Orientation {
	return Orientation{Position: position, Rotation: rotation}
}

func IdentityOrientation() Orientation {
	return Orientation{Rotation: rl.MatrixIdentity()}
}

// FullTransform composes rotation then translation into a single matrix.
func (o Orientation) FullTransform() rl.Matrix {
	return rl.MatrixMultiply(o.Rotation, rl.MatrixTranslate(o.Position.X, o.Position.Y, o.Position.Z))
}
