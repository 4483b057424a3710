// Profiling:
// go build ./profile/physics
// ./physics
// go tool pprof -http=":8000" -nodefraction=0.001 ./physics cpu.pprof

package main

import (
	"flag"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/profile"

	"github.com/edwinsyarief/combine/app"
	"github.com/edwinsyarief/combine/ecs"
	"github.com/edwinsyarief/combine/physics"
	"github.com/edwinsyarief/combine/transform"
)

func main() {
	balls := flag.Int("balls", 200, "number of falling balls")
	frames := flag.Int("frames", 3000, "frames to simulate")
	mem := flag.Bool("mem", false, "profile allocations instead of cpu")
	flag.Parse()

	mode := profile.CPUProfile
	if *mem {
		mode = profile.MemProfileAllocs
	}
	p := profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook)
	start := time.Now()
	run(*balls, *frames)
	p.Stop()
	log.Printf("%d balls, %d frames in %v", *balls, *frames, time.Since(start))
}

func run(balls, frames int) {
	a := app.New().AddPlugin(physics.Plugin{})
	w := a.World()
	w.SpawnWith(physics.Cuboid(100, 0.1, 100), transform.FromXYZ(0, -2, 0))
	for i := range balls {
		x := float32(i%20) - 10
		z := float32(i/20) - 5
		w.SpawnWith(
			physics.RigidBodyDynamic,
			physics.Ball(0.5),
			physics.RestitutionCoefficient(0.7),
			transform.FromTranslation(mgl32.Vec3{x, 4 + float32(i%7), z}),
		)
	}
	a.SetRunner(app.FixedRunner(frames, time.Second/60))
	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
	log.Printf("%d steps, %d entities", ecs.Resource[physics.Simulation](w).Steps(), w.Len())
}
