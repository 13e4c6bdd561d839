// Stress test comparing cold separating-axis searches against cached-axis
// re-validation, plus an end-to-end engine settle run.
package main

import (
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/srinu427/residue-engine/internal/geometry"
	"github.com/srinu427/residue-engine/internal/physics"
)

func main() {
	testCounts := []int{8, 16, 32, 64, 128}

	fmt.Println("Pairwise separation: cold full search vs cached re-validation")
	for _, count := range testCounts {
		testPairwise(count)
	}

	fmt.Println("\nEngine settle: dynamic cuboids dropping onto a ground plane")
	for _, count := range []int{4, 8, 16, 32} {
		testSettle(count)
	}
}

// gridBodies lays out count unit cuboids on a jittered grid with 3-unit
// spacing, so every pair is guaranteed disjoint.
func gridBodies(count int, rng *rand.Rand) ([]*physics.PolygonMesh, []rl.Matrix) {
	meshes := make([]*physics.PolygonMesh, count)
	transforms := make([]rl.Matrix, count)
	side := 1
	for side*side*side < count {
		side++
	}
	for i := 0; i < count; i++ {
		mesh := physics.NewCuboid(geometry.Pt(0, 0, 0), geometry.Dir(0, 0, 1), geometry.Dir(1, 0, 0), 1)
		x := float32(i%side)*3 + rng.Float32()*0.5
		y := float32((i/side)%side)*3 + rng.Float32()*0.5
		z := float32(i/(side*side))*3 + rng.Float32()*0.5
		meshes[i] = mesh
		transforms[i] = rl.MatrixTranslate(x, y, z)
	}
	return meshes, transforms
}

func testPairwise(count int) {
	rng := rand.New(rand.NewSource(42))
	meshes, transforms := gridBodies(count, rng)

	type pair struct {
		a, b int
		axis physics.Axis
	}
	var pairs []pair
	for i := 0; i < count; i++ {
		for j := i + 1; j < count; j++ {
			axis, ok := physics.FindSeparatingAxis(meshes[i], transforms[i], meshes[j], transforms[j])
			if !ok {
				fmt.Printf("%4d objects: unexpected overlap between %d and %d\n", count, i, j)
				return
			}
			pairs = append(pairs, pair{a: i, b: j, axis: axis})
		}
	}

	const iterations = 10

	coldStart := time.Now()
	for iter := 0; iter < iterations; iter++ {
		for _, p := range pairs {
			physics.FindSeparatingAxis(meshes[p.a], transforms[p.a], meshes[p.b], transforms[p.b])
		}
	}
	coldTime := time.Since(coldStart) / iterations

	warmStart := time.Now()
	misses := 0
	for iter := 0; iter < iterations; iter++ {
		misses = 0
		for _, p := range pairs {
			if !physics.CheckAxis(meshes[p.a], transforms[p.a], meshes[p.b], transforms[p.b], p.axis) {
				misses++
			}
		}
	}
	warmTime := time.Since(warmStart) / iterations

	speedup := float64(coldTime) / float64(warmTime)
	fmt.Printf("%4d objects (%5d pairs): cold %10v | cached %10v (%d misses) | %.1fx speedup\n",
		count, len(pairs), coldTime.Round(time.Microsecond),
		warmTime.Round(time.Microsecond), misses, speedup)
}

func testSettle(count int) {
	engine := physics.NewEngine(physics.DefaultConfig(), nil)

	ground := physics.NewObject(
		physics.NewRectangle(geometry.Pt(0, -2, 0), geometry.Dir(0, 0, 200), geometry.Dir(200, 0, 0)),
		physics.InfiniteMass(),
		rl.Vector3{},
	)
	if err := engine.AddStatic("ground", ground); err != nil {
		fmt.Printf("%4d objects: ground registration failed: %v\n", count, err)
		return
	}
	for i := 0; i < count; i++ {
		body := physics.NewObject(
			physics.NewCuboid(geometry.Pt(0, 0, 0), geometry.Dir(0, 0, 1), geometry.Dir(1, 0, 0), 1),
			physics.FiniteMass(1),
			rl.Vector3{X: float32(i%8) * 3, Y: 2 + float32(i/8)*3, Z: float32(i%8) * 2},
		)
		if err := engine.AddDynamic(fmt.Sprintf("body-%d", i), body); err != nil {
			fmt.Printf("%4d objects: registration failed: %v\n", count, err)
			return
		}
	}

	const simMS = 1000
	start := time.Now()
	engine.Run(simMS)
	elapsed := time.Since(start)

	fmt.Printf("%4d objects: %d ms simulated in %10v (%7v per sub-step)\n",
		count, simMS, elapsed.Round(time.Microsecond),
		(elapsed / simMS).Round(time.Nanosecond))
}
