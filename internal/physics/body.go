package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/srinu427/residue-engine/internal/geometry"
)

// Mass is either infinite (immovable) or a finite value.
type Mass struct {
	infinite bool
	value    float32
}

func InfiniteMass() Mass {
	return Mass{infinite: true}
}

func FiniteMass(value float32) Mass {
	return Mass{value: value}
}

func (m Mass) IsInfinite() bool {
	return m.infinite
}

// Value returns the finite mass; ok is false for infinite mass.
func (m Mass) Value() (float32, bool) {
	return m.value, !m.infinite
}

// Object is one rigid body: a convex mesh plus its kinetic state. Its world
// transform is always translate(position) composed after the orientation
// rotation. Stuck is a diagnostic flag set when penetration resolution runs out
// of budget; the simulation keeps going regardless.
type Object struct {
	Mesh *PolygonMesh
	Mass Mass

	Velocity     rl.Vector3
	Acceleration rl.Vector3
	Orientation  geometry.Orientation

	// Axis-angle rates in radians: the vector direction is the rotation axis,
	// its length the angular speed.
	AngularVelocity     rl.Vector3
	AngularAcceleration rl.Vector3

	Stuck bool
}

// NewObject builds a body at position with identity rotation and no motion.
func NewObject(mesh *PolygonMesh, mass Mass, position rl.Vector3) *Object {
	return &Object{
		Mesh:        mesh,
		Mass:        mass,
		Orientation: geometry.NewOrientation(position, rl.MatrixIdentity()),
	}
}

// WorldTransform returns the body's local-to-world matrix.
func (o *Object) WorldTransform() rl.Matrix {
	return o.Orientation.FullTransform()
}

// rejectInto removes from v every component driving into a boundary. Boundary
// normals point from the obstacle toward the body, so a negative dot product is
// motion into the obstacle.
func rejectInto(v rl.Vector3, boundaries []geometry.Direction) rl.Vector3 {
	for _, n := range boundaries {
		if d := rl.Vector3DotProduct(v, n.V); d < 0 {
			v = rl.Vector3Subtract(v, rl.Vector3Scale(n.V, d))
		}
	}
	return v
}

// Integrate advances the state by dt seconds with semi-implicit Euler. Velocity
// and acceleration are first rejected against the tick's contact boundaries so
// resolved contacts cannot feed energy back in; the stored acceleration (e.g.
// gravity) is left untouched for when contact ends.
func (o *Object) Integrate(dt float32, boundaries []geometry.Direction) {
	o.Velocity = rejectInto(o.Velocity, boundaries)
	accel := rejectInto(o.Acceleration, boundaries)

	displacement := rl.Vector3Add(
		rl.Vector3Scale(o.Velocity, dt),
		rl.Vector3Scale(accel, 0.5*dt*dt),
	)
	o.Orientation.Position = rl.Vector3Add(o.Orientation.Position, displacement)
	o.Velocity = rl.Vector3Add(o.Velocity, rl.Vector3Scale(accel, dt))

	rotation := rl.Vector3Add(
		rl.Vector3Scale(o.AngularVelocity, dt),
		rl.Vector3Scale(o.AngularAcceleration, 0.5*dt*dt),
	)
	if angle := rl.Vector3Length(rotation); angle > 0 {
		axis := rl.Vector3Scale(rotation, 1/angle)
		o.Orientation.Rotation = rl.MatrixMultiply(o.Orientation.Rotation, rl.MatrixRotate(axis, angle))
	}
	o.AngularVelocity = rl.Vector3Add(o.AngularVelocity, rl.Vector3Scale(o.AngularAcceleration, dt))
}
