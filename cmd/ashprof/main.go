// Profiling:
// go build ./cmd/ashprof
// ./ashprof -mode mem
// go tool pprof -http=":8000" -nodefraction=0.001 ./ashprof mem.pprof

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/profile"

	"github.com/ashrt/ashrt/internal/component"
	"github.com/ashrt/ashrt/internal/core/ecs"
	coresys "github.com/ashrt/ashrt/internal/core/system"
	"github.com/ashrt/ashrt/internal/system"
)

func main() {
	mode := flag.String("mode", "mem", "profile mode: cpu or mem")
	rounds := flag.Int("rounds", 20, "fresh engines to build")
	iters := flag.Int("iters", 200, "update cycles per engine")
	entities := flag.Int("entities", 1000, "entities spawned per cycle")
	flag.Parse()

	var opt func(*profile.Profile)
	switch *mode {
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfileAllocs
	default:
		fmt.Fprintf(os.Stderr, "fatal: unknown mode %q\n", *mode)
		os.Exit(1)
	}

	p := profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook)
	start := time.Now()
	frames := run(*rounds, *iters, *entities)
	p.Stop()
	fmt.Printf("%d frames in %s\n", frames, time.Since(start))
}

// run churns family membership: every cycle spawns a batch, lets the
// lifetime system strip velocities and expire entities mid-update, and
// tears the rest down.
func run(rounds, iters, numEntities int) int {
	frames := 0
	for range rounds {
		en := ecs.NewEngine(nil)
		coresys.Register(en,
			system.NewMovementSystem(),
			system.NewSpinSystem(),
			system.NewLifetimeSystem(nil),
		)
		for range iters {
			for i := range numEntities {
				life := time.Duration(i%4+1) * time.Millisecond
				en.NewEntity("",
					&component.Position{},
					&component.Velocity{Vec2: mgl64.Vec2{1, float64(i)}},
					&component.Spin{Rate: 1},
					&component.Lifetime{Total: life, Remaining: life},
				)
			}
			for range 4 {
				en.Update(time.Millisecond)
				frames++
			}
			en.RemoveAllEntities()
		}
		en.RemoveAllSystems()
	}
	return frames
}
