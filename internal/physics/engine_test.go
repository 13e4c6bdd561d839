package physics

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/srinu427/residue-engine/internal/geometry"
)

func noGravity() Config {
	cfg := DefaultConfig()
	cfg.Gravity = [3]float32{}
	return cfg
}

func newGround() *Object {
	return NewObject(groundRect(), InfiniteMass(), rl.Vector3{})
}

func newCube(position rl.Vector3) *Object {
	return NewObject(unitCube(), FiniteMass(1), position)
}

func TestRunZeroIsNoOp(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	require.NoError(t, e.AddDynamic("box", newCube(rl.Vector3{Y: 2})))

	before, ok := e.DynamicTransform("box")
	require.True(t, ok)
	e.Run(0)
	after, _ := e.DynamicTransform("box")
	assert.Equal(t, before, after)
}

func TestDropAndSettle(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	require.NoError(t, e.AddStatic("ground", newGround()))
	require.NoError(t, e.AddDynamic("box", newCube(rl.Vector3{Y: 2})))

	e.Run(2000)

	box := e.DynamicObject("box")
	require.NotNil(t, box)
	// Resting on the ground plane at y = -2 the cube's center sits at -1.5.
	assert.InDelta(t, -1.5, box.Orientation.Position.Y, 1e-3)
	assert.InDelta(t, 0, box.Orientation.Position.X, 1e-5)
	assert.InDelta(t, 0, box.Orientation.Position.Z, 1e-5)
	assert.InDelta(t, 0, box.Velocity.Y, 1e-3)
	assert.False(t, box.Stuck)
	// Gravity stays in the stored acceleration through contact.
	assert.InDelta(t, -10, box.Acceleration.Y, 1e-5)
}

func TestDeterminism(t *testing.T) {
	build := func() *Engine {
		e := NewEngine(DefaultConfig(), nil)
		require.NoError(t, e.AddStatic("ground", newGround()))
		require.NoError(t, e.AddDynamic("a", newCube(rl.Vector3{Y: 2})))
		require.NoError(t, e.AddDynamic("b", newCube(rl.Vector3{X: 3, Y: 4})))
		return e
	}

	one := build()
	one.Run(500)

	other := build()
	for i := 0; i < 500; i++ {
		other.Run(1)
	}

	for _, name := range []string{"a", "b"} {
		want, _ := one.DynamicTransform(name)
		got, _ := other.DynamicTransform(name)
		assert.Equal(t, want, got, "object %s diverged", name)
	}
}

func TestContactVelocityRejection(t *testing.T) {
	// No gravity: a cube sliding into a static wall must stop dead instead of
	// gaining back the motion each tick.
	e := NewEngine(noGravity(), nil)
	wall := NewObject(unitCube(), InfiniteMass(), rl.Vector3{X: 2})
	require.NoError(t, e.AddStatic("wall", wall))

	box := newCube(rl.Vector3{})
	box.Velocity = rl.Vector3{X: 5}
	require.NoError(t, e.AddDynamic("box", box))

	e.Run(1000)

	assert.InDelta(t, 1.0, box.Orientation.Position.X, 2e-3)
	assert.Zero(t, box.Velocity.X)
	assert.False(t, box.Stuck)
}

func TestSlideAlongContact(t *testing.T) {
	// Rejection removes only the component into the boundary; tangential
	// motion carries on.
	e := NewEngine(noGravity(), nil)
	wall := NewObject(unitCube(), InfiniteMass(), rl.Vector3{X: 2})
	require.NoError(t, e.AddStatic("wall", wall))

	box := newCube(rl.Vector3{})
	box.Velocity = rl.Vector3{X: 5, Y: 2}
	require.NoError(t, e.AddDynamic("box", box))

	e.Run(1000)

	assert.Zero(t, box.Velocity.X)
	assert.InDelta(t, 2, box.Velocity.Y, 1e-5)
	assert.Greater(t, box.Orientation.Position.Y, float32(1.0))
}

func TestStuckFlagOnExhaustedResolution(t *testing.T) {
	// A cube pinched between two walls exactly one cube-width apart, then
	// rotated 45 degrees so its diagonal penetrates both. Push-out along the
	// two cached axes ping-pongs forever and must give up with the flag set.
	e := NewEngine(noGravity(), nil)
	require.NoError(t, e.AddStatic("left", NewObject(unitCube(), InfiniteMass(), rl.Vector3{})))
	require.NoError(t, e.AddStatic("right", NewObject(unitCube(), InfiniteMass(), rl.Vector3{X: 2})))

	box := newCube(rl.Vector3{X: 1})
	require.NoError(t, e.AddDynamic("box", box))
	require.False(t, box.Stuck)

	box.Orientation.Rotation = rl.MatrixRotate(rl.Vector3{Z: 1}, math.Pi/4)
	e.Run(1)

	assert.True(t, box.Stuck)
}

func TestStuckWarningFiresOnceOnTransition(t *testing.T) {
	// A wedged object stays wedged every sub-step; the warning must fire on
	// entering the state, not once per millisecond.
	core, logs := observer.New(zap.WarnLevel)
	e := NewEngine(noGravity(), zap.New(core))
	require.NoError(t, e.AddStatic("left", NewObject(unitCube(), InfiniteMass(), rl.Vector3{})))
	require.NoError(t, e.AddStatic("right", NewObject(unitCube(), InfiniteMass(), rl.Vector3{X: 2})))

	box := newCube(rl.Vector3{X: 1})
	require.NoError(t, e.AddDynamic("box", box))
	box.Orientation.Rotation = rl.MatrixRotate(rl.Vector3{Z: 1}, math.Pi/4)

	e.Run(5)

	require.True(t, box.Stuck)
	assert.Equal(t, 1, logs.FilterMessage("penetration resolution budget exhausted").Len())
}

func TestDuplicateNameRejected(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	require.NoError(t, e.AddStatic("thing", newGround()))

	err := e.AddDynamic("thing", newCube(rl.Vector3{Y: 5}))
	require.ErrorIs(t, err, ErrDuplicateName)
	assert.Nil(t, e.DynamicObject("thing"))

	err = e.AddStatic("thing", newGround())
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestOverlappingRegistrationFails(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	require.NoError(t, e.AddStatic("ground", newGround()))

	// Straddling the ground plane: no separating axis exists.
	err := e.AddDynamic("box", newCube(rl.Vector3{Y: -2}))
	require.ErrorIs(t, err, ErrNoSeparatingAxis)
	assert.Nil(t, e.DynamicObject("box"))

	// The failed registration left no residue: the name is free and a valid
	// placement succeeds.
	require.NoError(t, e.AddDynamic("box", newCube(rl.Vector3{Y: 2})))
	assert.NotNil(t, e.DynamicObject("box"))
}

func TestOverlappingDynamicPairFails(t *testing.T) {
	e := NewEngine(noGravity(), nil)
	require.NoError(t, e.AddDynamic("first", newCube(rl.Vector3{})))

	err := e.AddDynamic("second", newCube(rl.Vector3{X: 0.3}))
	require.ErrorIs(t, err, ErrNoSeparatingAxis)
	assert.Nil(t, e.DynamicObject("second"))
}

func TestOverlappingStaticRegistrationFails(t *testing.T) {
	e := NewEngine(noGravity(), nil)
	require.NoError(t, e.AddDynamic("box", newCube(rl.Vector3{})))

	err := e.AddStatic("wall", NewObject(unitCube(), InfiniteMass(), rl.Vector3{X: 0.3}))
	require.ErrorIs(t, err, ErrNoSeparatingAxis)
	_, ok := e.StaticTransform("wall")
	assert.False(t, ok)
}

func TestUnknownNameLookups(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	assert.Nil(t, e.DynamicObject("ghost"))
	_, ok := e.DynamicTransform("ghost")
	assert.False(t, ok)
	_, ok = e.StaticTransform("ghost")
	assert.False(t, ok)
}

func TestGravitySeededAtRegistration(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	box := newCube(rl.Vector3{Y: 5})
	box.Acceleration = rl.Vector3{X: 1}
	require.NoError(t, e.AddDynamic("box", box))

	assert.InDelta(t, 1, box.Acceleration.X, 1e-6)
	assert.InDelta(t, -10, box.Acceleration.Y, 1e-6)
}

func TestIntegrateRejectsIntoBoundary(t *testing.T) {
	box := newCube(rl.Vector3{})
	box.Velocity = rl.Vector3{X: -3, Y: 4}
	box.Acceleration = rl.Vector3{X: -1}

	boundary := []geometry.Direction{geometry.Dir(1, 0, 0)}
	box.Integrate(0.001, boundary)

	assert.Zero(t, box.Velocity.X)
	assert.InDelta(t, 4, box.Velocity.Y, 1e-6)
	// The stored acceleration keeps its inward component for when contact
	// ends.
	assert.InDelta(t, -1, box.Acceleration.X, 1e-6)
	assert.GreaterOrEqual(t, box.Orientation.Position.X, float32(0))
}

func TestIntegrateAngularMotion(t *testing.T) {
	box := newCube(rl.Vector3{})
	box.AngularVelocity = rl.Vector3{Y: math.Pi} // half a turn per second

	for i := 0; i < 1000; i++ {
		box.Integrate(0.001, nil)
	}

	// After one simulated second the box has rotated half a turn about y:
	// the local +x axis now points along -x.
	rotated := geometry.Dir(1, 0, 0).Transform(box.WorldTransform())
	assert.InDelta(t, -1, rotated.V.X, 1e-2)
	assert.InDelta(t, 0, rotated.V.Z, 1e-2)
}
