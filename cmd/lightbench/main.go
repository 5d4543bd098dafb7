// Command lightbench builds a synthetic light scene and runs the visible-light
// pipeline for a number of frames, printing per-frame statistics.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/lightloop"
	"github.com/gekko3d/lightloop/config"
	"github.com/gekko3d/lightloop/lightrt/core"
	"github.com/gekko3d/lightloop/lightrt/registry"
)

var (
	configPath = flag.String("config", "", "Settings file (.toml, .yaml or .yml)")
	lightCount = flag.Int("lights", 5000, "Number of synthetic lights")
	frames     = flag.Int("frames", 60, "Number of frames to run")
	seed       = flag.Int64("seed", 1, "Random seed for the scene")
	every      = flag.Int("every", 10, "Print stats every N frames")
	profile    = flag.Bool("profile", false, "Print step timings with the stats")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	app := lightloop.NewAppBuilder().
		UseModule(
			lightloop.LoggingModule{Prefix: "lightbench", Settings: cfg.Logging},
			lightloop.LightLoopModule{Settings: cfg},
		).
		Build()
	logger := app.Logger()
	if l, ok := logger.(*lightloop.DefaultLogger); ok {
		defer l.Sync()
	}

	ll, _ := lightloop.Resource[lightloop.LightLoop](app)
	defer ll.Dispose()

	start := time.Now()
	if err := populate(ll, *lightCount, rand.New(rand.NewSource(*seed))); err != nil {
		return err
	}
	logger.Infof("scene built: %d lights in %s", ll.Registry.Count(), time.Since(start))

	app.UseSystem(lightloop.System(orbitCamera).InStage(lightloop.PreUpdate))
	app.UseSystem(lightloop.System(reportSystem).InStage(lightloop.Finale))

	bench := &benchState{frames: *frames, every: max(*every, 1), profile: *profile}
	app.Commands().AddResources(bench)

	start = time.Now()
	app.Run()
	elapsed := time.Since(start)

	logger.Infof("%d frames in %s (%.3f ms/frame, pipeline %.3f ms/frame)",
		app.Frame(), elapsed,
		ms(elapsed)/float64(app.Frame()),
		ms(bench.pipeline)/float64(app.Frame()))
	return nil
}

type benchState struct {
	frames   int
	every    int
	profile  bool
	pipeline time.Duration
}

// populate scatters lights of every kind in a 200 x 40 x 200 box around the origin.
func populate(ll *lightloop.LightLoop, n int, rng *rand.Rand) error {
	kinds := []core.LightKind{core.LightKindPoint, core.LightKindSpot, core.LightKindRectangle, core.LightKindDisc}
	for id := 0; id < n; id++ {
		pos := mgl32.Vec3{
			rng.Float32()*200 - 100,
			rng.Float32() * 40,
			rng.Float32()*200 - 100,
		}
		light := lightloop.SceneLight{
			SourceID:  id,
			Kind:      kinds[rng.Intn(len(kinds))],
			Range:     1 + rng.Float32()*9,
			Baking:    core.RealtimeBaking(),
			Transform: core.NewTransformAt(pos),
			Options: []registry.LightOption{
				registry.WithSpotShape(core.SpotShape(rng.Intn(int(core.SpotShapeCount)))),
				registry.WithAreaShape(core.AreaShape(rng.Intn(int(core.AreaShapeCount)))),
				registry.WithFadeDistances(60+rng.Float32()*80, 40),
			},
		}
		if rng.Intn(8) == 0 {
			light.Shadows = core.ShadowsSoft
		}
		if _, err := ll.AddLight(light); err != nil {
			return err
		}
	}

	_, err := ll.AddLight(lightloop.SceneLight{
		SourceID:  n,
		Kind:      core.LightKindDirectional,
		Shadows:   core.ShadowsSoft,
		Baking:    core.RealtimeBaking(),
		Transform: core.NewTransform(),
	})
	return err
}

func orbitCamera(ll *lightloop.LightLoop, list *lightloop.VisibleLightList) {
	ll.Camera = cameraAt(list.Frame)
}

func reportSystem(ll *lightloop.LightLoop, list *lightloop.VisibleLightList, bench *benchState, cmd *lightloop.Commands) {
	bench.pipeline += list.Stats.Elapsed
	if int(list.Frame)%bench.every == 0 {
		fmt.Printf("frame %4d  %s  shadows: %s\n", list.Frame, list.Stats, ll.Shadows)
		if bench.profile {
			fmt.Printf("           %s\n", list.Profile)
		}
	}
	if int(list.Frame) >= bench.frames {
		cmd.Exit()
	}
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// cameraAt returns the camera for frame f orbiting the scene center.
func cameraAt(f uint64) core.Camera {
	angle := float64(f) * 0.02
	eye := mgl32.Vec3{float32(math.Cos(angle)) * 80, 20, float32(math.Sin(angle)) * 80}
	return core.NewPerspectiveCamera(eye, mgl32.Vec3{0, 10, 0}, 60, 1920, 1080, 0.1, 500)
}
