// Interactive demo: a dynamic cuboid dropping onto a static ground rectangle,
// driven around with WASD/space through the physics engine's mutable lookup.
package main

import (
	"flag"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/srinu427/residue-engine/internal/anim"
	"github.com/srinu427/residue-engine/internal/geometry"
	"github.com/srinu427/residue-engine/internal/input"
	"github.com/srinu427/residue-engine/internal/physics"
	"github.com/srinu427/residue-engine/internal/scene"
)

const moveSpeed = 4.0

var trackedKeys = []int32{rl.KeyW, rl.KeyA, rl.KeyS, rl.KeyD, rl.KeySpace}

func matrixTranslation(m rl.Matrix) rl.Vector3 {
	return rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
}

func buildScene(cfg physics.Config, logger *zap.Logger) (*scene.Scene, error) {
	engine := physics.NewEngine(cfg, logger)
	world := scene.New(engine)

	ground := physics.NewObject(
		physics.NewRectangle(geometry.Pt(0, -2, 0), geometry.Dir(0, 0, 10), geometry.Dir(10, 0, 0)),
		physics.InfiniteMass(),
		rl.Vector3{},
	)
	if _, err := world.AddStatic("ground", ground); err != nil {
		return nil, err
	}

	player := physics.NewObject(
		physics.NewCuboid(geometry.Pt(0, 0, 0), geometry.Dir(0, 0, 1), geometry.Dir(1, 0, 0), 1),
		physics.FiniteMass(1),
		rl.Vector3{Y: 2},
	)
	if _, err := world.AddDynamic("player", player); err != nil {
		return nil, err
	}

	crate := physics.NewObject(
		physics.NewCuboid(geometry.Pt(0, 0, 0), geometry.Dir(0, 0, 1), geometry.Dir(1, 0, 0), 1),
		physics.FiniteMass(1),
		rl.Vector3{X: 3, Y: 4, Z: 1},
	)
	if _, err := world.AddDynamic("crate", crate); err != nil {
		return nil, err
	}

	// A rails-driven beacon circling the arena, outside the physics world.
	beacon := &anim.Animator{
		Anim: &anim.RTSAnimation{
			Position: anim.NewTrack(anim.Vector3Lerp,
				anim.Keyframe[rl.Vector3]{TimeMS: 0, Value: rl.Vector3{X: 4, Y: 1}},
				anim.Keyframe[rl.Vector3]{TimeMS: 2000, Value: rl.Vector3{Y: 1, Z: 4}},
				anim.Keyframe[rl.Vector3]{TimeMS: 4000, Value: rl.Vector3{X: -4, Y: 1}},
				anim.Keyframe[rl.Vector3]{TimeMS: 6000, Value: rl.Vector3{Y: 1, Z: -4}},
				anim.Keyframe[rl.Vector3]{TimeMS: 8000, Value: rl.Vector3{X: 4, Y: 1}},
			),
			Rotation: anim.NewTrack(anim.Vector3Lerp,
				anim.Keyframe[rl.Vector3]{TimeMS: 0, Value: rl.Vector3{}},
				anim.Keyframe[rl.Vector3]{TimeMS: 8000, Value: rl.Vector3{Y: 6.28318}},
			),
			Scale: anim.NewTrack(anim.Vector3Lerp,
				anim.Keyframe[rl.Vector3]{TimeMS: 0, Value: rl.Vector3{X: 0.3, Y: 0.3, Z: 0.3}},
			),
		},
		RepeatAfterMS: 8000,
	}
	world.AddAnimated("beacon", beacon)

	return world, nil
}

func applyInput(keys *input.Aggregator, engine *physics.Engine) {
	player := engine.DynamicObject("player")
	if player == nil {
		return
	}
	var vx, vz float32
	if keys.State(rl.KeyW).IsDown() {
		vz -= moveSpeed
	}
	if keys.State(rl.KeyS).IsDown() {
		vz += moveSpeed
	}
	if keys.State(rl.KeyA).IsDown() {
		vx -= moveSpeed
	}
	if keys.State(rl.KeyD).IsDown() {
		vx += moveSpeed
	}
	player.Velocity.X = vx
	player.Velocity.Z = vz
	if keys.State(rl.KeySpace) == input.KeyPressed {
		player.Velocity.Y = 5
	}
}

func main() {
	configPath := flag.String("config", "", "physics tuning file (YAML); defaults apply when empty")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	cfg := physics.DefaultConfig()
	if *configPath != "" {
		cfg, err = physics.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("config load", zap.Error(err))
		}
		logger.Info("physics config loaded", zap.String("path", *configPath))
	}

	world, err := buildScene(cfg, logger)
	if err != nil {
		logger.Fatal("scene init", zap.Error(err))
	}

	rl.InitWindow(1280, 720, "residue-engine SAT demo")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	camera := rl.Camera3D{
		Position:   rl.Vector3{X: 8, Y: 6, Z: 8},
		Target:     rl.Vector3{Y: -1},
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	keys := input.NewAggregator()
	var accumMS float32

	for !rl.WindowShouldClose() {
		keys.BeginFrame()
		for _, k := range trackedKeys {
			if rl.IsKeyPressed(k) {
				keys.NotePressed(k)
			}
			if rl.IsKeyReleased(k) {
				keys.NoteReleased(k)
			}
		}
		applyInput(keys, world.Engine())

		accumMS += rl.GetFrameTime() * 1000
		step := uint64(accumMS)
		accumMS -= float32(step)
		world.Update(step)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		rl.BeginMode3D(camera)

		rl.DrawGrid(20, 1)
		rl.DrawCubeV(rl.Vector3{Y: -2.05}, rl.Vector3{X: 10, Y: 0.1, Z: 10}, rl.LightGray)

		for _, obj := range world.Objects() {
			pos := matrixTranslation(obj.Transform)
			switch obj.Name {
			case "player":
				rl.DrawCubeV(pos, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.SkyBlue)
				rl.DrawCubeWiresV(pos, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.DarkBlue)
			case "crate":
				rl.DrawCubeV(pos, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Beige)
				rl.DrawCubeWiresV(pos, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Brown)
			case "beacon":
				rl.DrawCubeV(pos, rl.Vector3{X: 0.3, Y: 0.3, Z: 0.3}, rl.Red)
			}
		}

		rl.EndMode3D()
		rl.DrawText("WASD to move, SPACE to jump", 10, 10, 20, rl.DarkGray)
		rl.EndDrawing()
	}
}
