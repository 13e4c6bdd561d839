// Package anim provides keyframed value tracks and a translate/rotate/scale
// animator for scene objects that move on rails instead of under physics.
package anim

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Keyframe pins a value at a time offset in milliseconds.
type Keyframe[T any] struct {
	TimeMS uint64
	Value  T
}

// Track is a keyframed value over time. Lookups binary-search for the
// surrounding pair and lerp between them; queries before the first frame clamp
// to it, queries past the last frame clamp to the last value.
type Track[T any] struct {
	frames []Keyframe[T]
	lerp   func(a, b T, t float32) T
}

// NewTrack builds a track from at least one keyframe. Frames are sorted by
// time on construction.
func NewTrack[T any](lerp func(a, b T, t float32) T, frames ...Keyframe[T]) *Track[T] {
	sorted := make([]Keyframe[T], len(frames))
	copy(sorted, frames)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TimeMS < sorted[j].TimeMS })
	return &Track[T]{frames: sorted, lerp: lerp}
}

// frameIndex returns the index of the last keyframe at or before timeMS.
func (t *Track[T]) frameIndex(timeMS uint64) int {
	begin, end := 0, len(t.frames)-1
	for begin != end {
		check := (begin + end + 1) / 2
		if t.frames[check].TimeMS <= timeMS {
			begin = check
		} else {
			end = check - 1
		}
	}
	return begin
}

// ValueAt samples the track at timeMS.
func (t *Track[T]) ValueAt(timeMS uint64) T {
	if timeMS <= t.frames[0].TimeMS {
		return t.frames[0].Value
	}
	idx := t.frameIndex(timeMS)
	if idx == len(t.frames)-1 {
		return t.frames[idx].Value
	}
	lo, hi := t.frames[idx], t.frames[idx+1]
	mix := float32(timeMS-lo.TimeMS) / float32(hi.TimeMS-lo.TimeMS)
	return t.lerp(lo.Value, hi.Value, mix)
}

// Vector3Lerp is the Track lerp for rl.Vector3 values.
func Vector3Lerp(a, b rl.Vector3, t float32) rl.Vector3 {
	return rl.Vector3Lerp(a, b, t)
}

// RTSAnimation keyframes a rigid placement: position, axis-angle rotation
// (axis direction, angle = vector length, radians) and scale.
type RTSAnimation struct {
	Position *Track[rl.Vector3]
	Rotation *Track[rl.Vector3]
	Scale    *Track[rl.Vector3]
}

// Animator plays an RTSAnimation, optionally looping.
type Animator struct {
	Anim *RTSAnimation
	// RepeatAfterMS loops playback when nonzero.
	RepeatAfterMS uint64

	currentMS uint64
}

// Forward advances playback by deltaMS.
func (a *Animator) Forward(deltaMS uint64) {
	a.currentMS += deltaMS
	if a.RepeatAfterMS > 0 {
		a.currentMS %= a.RepeatAfterMS
	}
}

// Reset rewinds playback to the start.
func (a *Animator) Reset() {
	a.currentMS = 0
}

// Transform samples the animation at the current time and composes scale,
// rotation, then translation into one matrix.
func (a *Animator) Transform() rl.Matrix {
	pos := a.Anim.Position.ValueAt(a.currentMS)
	rot := a.Anim.Rotation.ValueAt(a.currentMS)
	scale := a.Anim.Scale.ValueAt(a.currentMS)

	rotMat := rl.MatrixIdentity()
	if angle := rl.Vector3Length(rot); angle > 0 {
		rotMat = rl.MatrixRotate(rl.Vector3Scale(rot, 1/angle), angle)
	}
	sclMat := rl.MatrixScale(scale.X, scale.Y, scale.Z)
	posMat := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(sclMat, rotMat), posMat)
}
