package geometry

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const epsilon = 1e-5

func vecApprox(a, b rl.Vector3) bool {
	return math.Abs(float64(a.X-b.X)) < epsilon &&
		math.Abs(float64(a.Y-b.Y)) < epsilon &&
		math.Abs(float64(a.Z-b.Z)) < epsilon
}

func TestPointTransformAppliesTranslation(t *testing.T) {
	p := Pt(1, 2, 3)
	moved := p.Transform(rl.MatrixTranslate(10, 20, 30))
	if !vecApprox(moved.V, rl.Vector3{X: 11, Y: 22, Z: 33}) {
		t.Errorf("translated point = %v", moved.V)
	}
}

func TestDirectionTransformIgnoresTranslation(t *testing.T) {
	d := Dir(1, 2, 3)
	moved := d.Transform(rl.MatrixTranslate(10, 20, 30))
	if !vecApprox(moved.V, d.V) {
		t.Errorf("translated direction = %v, want unchanged %v", moved.V, d.V)
	}
}

func TestDirectionTransformPreservesLength(t *testing.T) {
	d := Dir(3, 0, 4)
	rotated := d.Transform(rl.MatrixRotate(rl.Vector3{Y: 1}, math.Pi/3))
	if got := rotated.Length(); math.Abs(float64(got-5)) > epsilon {
		t.Errorf("rotated length = %v, want 5", got)
	}
}

func TestAveragePoint(t *testing.T) {
	points := []Point{Pt(0, 0, 0), Pt(2, 0, 0), Pt(2, 2, 0), Pt(0, 2, 0)}
	if got := AveragePoint(points); !vecApprox(got.V, rl.Vector3{X: 1, Y: 1}) {
		t.Errorf("centroid = %v, want (1, 1, 0)", got.V)
	}
	if got := AveragePoint(nil); !vecApprox(got.V, rl.Vector3{}) {
		t.Errorf("empty centroid = %v, want origin", got.V)
	}
}

func TestSegmentDirection(t *testing.T) {
	s := Segment(Pt(1, 1, 1), Pt(4, 1, 1))
	if got := s.Direction(); !vecApprox(got.V, rl.Vector3{X: 3}) {
		t.Errorf("segment direction = %v, want (3, 0, 0)", got.V)
	}
}

func TestPlaneConstructorNormalizes(t *testing.T) {
	pl := NewPlane(Dir(0, 5, 0), Pt(0, 1, 0))
	if got := pl.Normal.Length(); math.Abs(float64(got-1)) > epsilon {
		t.Errorf("normal length = %v, want 1", got)
	}
}

func TestPlaneDistFromPoint(t *testing.T) {
	pl := NewPlane(Dir(0, 2, 0), Pt(0, 1, 0))
	cases := []struct {
		p    Point
		want float32
	}{
		{Pt(0, 3, 0), 2},
		{Pt(7, 1, -4), 0},
		{Pt(0, 0, 0), -1},
	}
	for _, c := range cases {
		if got := pl.DistFromPoint(c.p); math.Abs(float64(got-c.want)) > epsilon {
			t.Errorf("dist(%v) = %v, want %v", c.p.V, got, c.want)
		}
	}
}

func TestPlaneProjectPoint(t *testing.T) {
	pl := NewPlane(Dir(0, 1, 0), Pt(0, 1, 0))
	got := pl.ProjectPoint(Pt(3, 5, -2))
	if !vecApprox(got.V, rl.Vector3{X: 3, Y: 1, Z: -2}) {
		t.Errorf("projected point = %v, want (3, 1, -2)", got.V)
	}
	if d := pl.DistFromPoint(got); math.Abs(float64(d)) > epsilon {
		t.Errorf("projected point is %v off the plane", d)
	}
}

func TestPlaneOppositeKeepsAnchor(t *testing.T) {
	pl := NewPlane(Dir(0, 1, 0), Pt(0, 1, 0))
	flipped := pl.Opposite()
	if !vecApprox(flipped.Normal.V, rl.Vector3{Y: -1}) {
		t.Errorf("flipped normal = %v", flipped.Normal.V)
	}
	if !vecApprox(flipped.Anchor.V, pl.Anchor.V) {
		t.Errorf("flipped anchor moved to %v", flipped.Anchor.V)
	}
	if got := flipped.DistFromPoint(Pt(0, 3, 0)); math.Abs(float64(got+2)) > epsilon {
		t.Errorf("flipped dist = %v, want -2", got)
	}
}

func TestPlaneTransformUnderTranslation(t *testing.T) {
	pl := NewPlane(Dir(0, 1, 0), Pt(0, 0, 0))
	moved := pl.Transform(rl.MatrixTranslate(0, 2, 0))
	if !vecApprox(moved.Normal.V, rl.Vector3{Y: 1}) {
		t.Errorf("translated normal = %v, want unchanged", moved.Normal.V)
	}
	if got := moved.DistFromPoint(Pt(0, 3, 0)); math.Abs(float64(got-1)) > epsilon {
		t.Errorf("dist above translated plane = %v, want 1", got)
	}
}

func TestOrientationFullTransform(t *testing.T) {
	o := NewOrientation(rl.Vector3{X: 1, Y: 2, Z: 3}, rl.MatrixRotate(rl.Vector3{Y: 1}, math.Pi/4))
	xf := o.FullTransform()

	// The origin lands on the position regardless of rotation.
	if got := Pt(0, 0, 0).Transform(xf); !vecApprox(got.V, o.Position) {
		t.Errorf("transformed origin = %v, want %v", got.V, o.Position)
	}
	// Rotation applies before translation: a transformed point sits at
	// rotate(p) + position.
	p := Pt(1, 0, 0)
	want := rl.Vector3Add(rl.Vector3Transform(p.V, o.Rotation), o.Position)
	if got := p.Transform(xf); !vecApprox(got.V, want) {
		t.Errorf("transformed point = %v, want %v", got.V, want)
	}
}

func TestIdentityOrientation(t *testing.T) {
	o := IdentityOrientation()
	p := Pt(4, -1, 2)
	if got := p.Transform(o.FullTransform()); !vecApprox(got.V, p.V) {
		t.Errorf("identity transform moved %v to %v", p.V, got.V)
	}
}
