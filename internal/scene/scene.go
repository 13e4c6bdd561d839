// Package scene is the composition layer over the physics core: named objects
// that are either physics-backed or animation-driven, with world transforms
// copied out once per update for the renderer to consume.
package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/srinu427/residue-engine/internal/anim"
	"github.com/srinu427/residue-engine/internal/physics"
)

type objectKind uint8

const (
	kindStatic objectKind = iota
	kindDynamic
	kindAnimated
)

// Object is one scene entry. Transform is the last copied-out world transform;
// game code reads it, never the engine's internals.
type Object struct {
	Name      string
	Transform rl.Matrix

	kind     objectKind
	animator *anim.Animator
}

// Animated reports whether the object is animation-driven.
func (o *Object) Animated() bool {
	return o.kind == kindAnimated
}

// Scene owns the physics engine and the object registry.
type Scene struct {
	engine  *physics.Engine
	objects []*Object
	byName  map[string]*Object
}

func New(engine *physics.Engine) *Scene {
	return &Scene{engine: engine, byName: make(map[string]*Object)}
}

// Engine exposes the physics engine for imperative access (e.g. setting
// velocity on input events).
func (s *Scene) Engine() *physics.Engine {
	return s.engine
}

func (s *Scene) track(obj *Object) *Object {
	s.objects = append(s.objects, obj)
	s.byName[obj.Name] = obj
	return obj
}

// AddStatic registers an immovable physics object under name.
func (s *Scene) AddStatic(name string, body *physics.Object) (*Object, error) {
	if err := s.engine.AddStatic(name, body); err != nil {
		return nil, err
	}
	xf, _ := s.engine.StaticTransform(name)
	return s.track(&Object{Name: name, Transform: xf, kind: kindStatic}), nil
}

// AddDynamic registers a moving physics object under name.
func (s *Scene) AddDynamic(name string, body *physics.Object) (*Object, error) {
	if err := s.engine.AddDynamic(name, body); err != nil {
		return nil, err
	}
	xf, _ := s.engine.DynamicTransform(name)
	return s.track(&Object{Name: name, Transform: xf, kind: kindDynamic}), nil
}

// AddAnimated registers an animation-driven object outside the physics world.
func (s *Scene) AddAnimated(name string, animator *anim.Animator) *Object {
	return s.track(&Object{
		Name:      name,
		Transform: animator.Transform(),
		kind:      kindAnimated,
		animator:  animator,
	})
}

// Object returns the named scene object, or nil if unknown.
func (s *Scene) Object(name string) *Object {
	return s.byName[name]
}

// Objects returns all scene objects in registration order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Update advances animators and the physics engine by frameMS and copies every
// object's world transform out exactly once.
func (s *Scene) Update(frameMS uint64) {
	s.engine.Run(frameMS)
	for _, obj := range s.objects {
		switch obj.kind {
		case kindDynamic:
			if xf, ok := s.engine.DynamicTransform(obj.Name); ok {
				obj.Transform = xf
			}
		case kindAnimated:
			obj.animator.Forward(frameMS)
			obj.Transform = obj.animator.Transform()
		}
	}
}
