// Package physics implements the convex-polygon collision core: a separating-
// axis search over mesh faces and edge crosses, a per-pair separation cache,
// and a fixed 1 ms sub-step integrator with iterative penetration resolution.
//
// The engine is single-threaded by contract: all registration and stepping must
// happen on one goroutine, and the only state crossing that boundary is the
// copied-out transforms.
package physics

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/srinu427/residue-engine/internal/geometry"
)

var (
	// ErrDuplicateName rejects registering a second object under a known name.
	ErrDuplicateName = errors.New("physics: duplicate object name")
	// ErrNoSeparatingAxis rejects registering an object that overlaps an
	// existing partner: the initial cache entry needs a proven axis.
	ErrNoSeparatingAxis = errors.New("physics: no separating axis")
)

// subStepSeconds is the fixed integration step. Run always advances in exact
// 1 ms increments regardless of the caller's frame rate.
const subStepSeconds = 0.001

// Engine owns the static and dynamic object collections and the per-pair
// separation cache. Names resolve to dense integer IDs at the API boundary;
// every per-tick structure is an indexed slice.
type Engine struct {
	cfg Config
	log *zap.Logger

	statics   []*Object
	staticXf  []rl.Matrix // statics never move; world transforms are fixed
	staticID  map[string]int
	staticKey []string

	dynamics   []*Object
	dynamicID  map[string]int
	dynamicKey []string

	// staticSep[d][s]: dynamic d against static s; the static mesh is the
	// pair's first member, so axis indices name its features first.
	staticSep [][]Separation
	// dynamicSep[d][e] for e < d: the older dynamic is the first member.
	dynamicSep [][]Separation
}

// NewEngine builds an engine from cfg. A non-positive budget or epsilon falls
// back to the default; gravity is taken as-is, a zero vector disables it. A nil
// logger disables logging.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if cfg.ResolutionBudget <= 0 {
		cfg.ResolutionBudget = DefaultConfig().ResolutionBudget
	}
	if cfg.ContactEpsilon <= 0 {
		cfg.ContactEpsilon = DefaultConfig().ContactEpsilon
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:       cfg,
		log:       logger,
		staticID:  make(map[string]int),
		dynamicID: make(map[string]int),
	}
}

func (e *Engine) nameTaken(name string) bool {
	if _, ok := e.staticID[name]; ok {
		return true
	}
	_, ok := e.dynamicID[name]
	return ok
}

// AddStatic registers an immovable object. A separation axis is computed and
// cached against every dynamic object already registered; if any pair has no
// axis at all the registration fails and nothing is inserted.
func (e *Engine) AddStatic(name string, obj *Object) error {
	if e.nameTaken(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	xf := obj.WorldTransform()

	column := make([]Separation, len(e.dynamics))
	for d, dyn := range e.dynamics {
		axis, ok := FindSeparatingAxis(obj.Mesh, xf, dyn.Mesh, dyn.WorldTransform())
		if !ok {
			return fmt.Errorf("%w between static %q and dynamic %q", ErrNoSeparatingAxis, name, e.dynamicKey[d])
		}
		column[d] = Separation{Separated: true, Axis: axis}
	}

	e.staticID[name] = len(e.statics)
	e.staticKey = append(e.staticKey, name)
	e.statics = append(e.statics, obj)
	e.staticXf = append(e.staticXf, xf)
	for d := range e.staticSep {
		e.staticSep[d] = append(e.staticSep[d], column[d])
	}
	e.log.Debug("registered static object", zap.String("name", name))
	return nil
}

// AddDynamic registers a moving object. Its acceleration is seeded with the
// configured gravity, and separation axes are computed and cached against every
// static and every other dynamic object; any pair without an axis fails the
// whole registration.
func (e *Engine) AddDynamic(name string, obj *Object) error {
	if e.nameTaken(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	xf := obj.WorldTransform()

	staticRow := make([]Separation, len(e.statics))
	for s, st := range e.statics {
		axis, ok := FindSeparatingAxis(st.Mesh, e.staticXf[s], obj.Mesh, xf)
		if !ok {
			return fmt.Errorf("%w between static %q and dynamic %q", ErrNoSeparatingAxis, e.staticKey[s], name)
		}
		staticRow[s] = Separation{Separated: true, Axis: axis}
	}
	dynamicRow := make([]Separation, len(e.dynamics))
	for d, dyn := range e.dynamics {
		axis, ok := FindSeparatingAxis(dyn.Mesh, dyn.WorldTransform(), obj.Mesh, xf)
		if !ok {
			return fmt.Errorf("%w between dynamic %q and dynamic %q", ErrNoSeparatingAxis, e.dynamicKey[d], name)
		}
		dynamicRow[d] = Separation{Separated: true, Axis: axis}
	}

	obj.Acceleration = rl.Vector3Add(obj.Acceleration, e.cfg.gravity())
	e.dynamicID[name] = len(e.dynamics)
	e.dynamicKey = append(e.dynamicKey, name)
	e.dynamics = append(e.dynamics, obj)
	e.staticSep = append(e.staticSep, staticRow)
	e.dynamicSep = append(e.dynamicSep, dynamicRow)
	e.log.Debug("registered dynamic object", zap.String("name", name))
	return nil
}

// DynamicObject returns the named dynamic object for imperative state changes
// (e.g. setting velocity on input events), or nil if unknown.
func (e *Engine) DynamicObject(name string) *Object {
	if id, ok := e.dynamicID[name]; ok {
		return e.dynamics[id]
	}
	return nil
}

// DynamicTransform returns the named dynamic object's world transform.
func (e *Engine) DynamicTransform(name string) (rl.Matrix, bool) {
	if id, ok := e.dynamicID[name]; ok {
		return e.dynamics[id].WorldTransform(), true
	}
	return rl.Matrix{}, false
}

// StaticTransform returns the named static object's world transform.
func (e *Engine) StaticTransform(name string) (rl.Matrix, bool) {
	if id, ok := e.staticID[name]; ok {
		return e.staticXf[id], true
	}
	return rl.Matrix{}, false
}

// Run advances the simulation by totalMS milliseconds as exactly totalMS fixed
// 1 ms sub-steps. It returns only after all sub-steps complete.
func (e *Engine) Run(totalMS uint64) {
	for i := uint64(0); i < totalMS; i++ {
		e.runOneMillisecond()
	}
}

func (e *Engine) runOneMillisecond() {
	for d, obj := range e.dynamics {
		e.stepDynamic(d, obj)
	}
	// Keep dynamic-dynamic entries current for readers; dynamics do not push
	// each other out.
	for d := range e.dynamics {
		xf := e.dynamics[d].WorldTransform()
		for o := range e.dynamicSep[d] {
			other := e.dynamics[o]
			e.dynamicSep[d][o] = refreshSeparation(
				e.dynamicSep[d][o], other.Mesh, other.WorldTransform(), e.dynamics[d].Mesh, xf)
		}
	}
}

// stepDynamic integrates one object for 1 ms and then resolves penetration
// against its static partners inside a bounded correction loop.
func (e *Engine) stepDynamic(d int, obj *Object) {
	xf := obj.WorldTransform()

	// Boundary normals come only from cached separations that are currently
	// touching; a separated-at-distance partner must not damp motion.
	var boundaries []geometry.Direction
	for s, entry := range e.staticSep[d] {
		if !entry.Separated {
			continue
		}
		normal, clearance, ok := ContactNormal(e.statics[s].Mesh, e.staticXf[s], obj.Mesh, xf, entry.Axis)
		if ok && clearance <= e.cfg.ContactEpsilon {
			boundaries = append(boundaries, normal)
		}
	}

	obj.Integrate(subStepSeconds, boundaries)

	resolved := false
	for iter := 0; iter < e.cfg.ResolutionBudget; iter++ {
		moved := false
		xf = obj.WorldTransform()
		for s := range e.staticSep[d] {
			st := e.statics[s]
			entry := refreshSeparation(e.staticSep[d][s], st.Mesh, e.staticXf[s], obj.Mesh, xf)
			if !entry.Separated {
				dir, depth, ok := PenetrationPushOut(st.Mesh, e.staticXf[s], obj.Mesh, xf, entry.Axis)
				if ok && depth > 0 {
					obj.Orientation.Position = rl.Vector3Add(obj.Orientation.Position, rl.Vector3Scale(dir.V, depth))
					xf = obj.WorldTransform()
					moved = true
				}
			}
			e.staticSep[d][s] = entry
		}
		if !moved {
			resolved = true
			break
		}
	}
	// Warn only on entering the stuck state; a permanently wedged object would
	// otherwise log every sub-step.
	if !resolved && !obj.Stuck {
		obj.Stuck = true
		e.log.Warn("penetration resolution budget exhausted",
			zap.String("object", e.dynamicKey[d]),
			zap.Int("budget", e.cfg.ResolutionBudget))
	}
}
