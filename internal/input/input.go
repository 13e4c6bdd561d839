// Package input aggregates raw key events into per-frame press/hold/release
// states so game code can poll instead of handling event streams.
package input

// KeyState is the lifecycle of one key across frames.
type KeyState uint8

const (
	KeyIdle KeyState = iota
	KeyPressed
	KeyHeld
	KeyReleased
)

// IsDown reports whether the key is currently actuated.
func (s KeyState) IsDown() bool {
	return s == KeyPressed || s == KeyHeld
}

// Aggregator tracks key states keyed by key code (raylib key constants).
type Aggregator struct {
	states map[int32]KeyState
}

func NewAggregator() *Aggregator {
	return &Aggregator{states: make(map[int32]KeyState)}
}

// State returns the current state of key; unknown keys are idle.
func (a *Aggregator) State(key int32) KeyState {
	return a.states[key]
}

// NotePressed records a press event for this frame.
func (a *Aggregator) NotePressed(key int32) {
	a.states[key] = KeyPressed
}

// NoteReleased records a release event for this frame.
func (a *Aggregator) NoteReleased(key int32) {
	a.states[key] = KeyReleased
}

// BeginFrame decays edge states before new events arrive: Pressed becomes
// Held, Released becomes Idle.
func (a *Aggregator) BeginFrame() {
	for k, s := range a.states {
		switch s {
		case KeyPressed:
			a.states[k] = KeyHeld
		case KeyReleased:
			a.states[k] = KeyIdle
		}
	}
}
