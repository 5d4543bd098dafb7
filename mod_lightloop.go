package lightloop

import (
	"errors"
	"fmt"

	"github.com/gekko3d/lightloop/config"
	"github.com/gekko3d/lightloop/lightrt/core"
	"github.com/gekko3d/lightloop/lightrt/cull"
	"github.com/gekko3d/lightloop/lightrt/gpu"
	"github.com/gekko3d/lightloop/lightrt/jobs"
	"github.com/gekko3d/lightloop/lightrt/registry"
	"github.com/gekko3d/lightloop/lightrt/shadow"
	"github.com/gekko3d/lightloop/lightrt/visible"
)

var ErrUnknownLight = errors.New("lightloop: unknown light source")

// SceneLight describes a light added through LightLoop.AddLight.
type SceneLight struct {
	SourceID  int
	Kind      core.LightKind
	Range     float32
	Shadows   core.ShadowMode
	Baking    core.BakingOutput
	Transform *core.Transform
	Options   []registry.LightOption
}

// LightLoop is the resource holding the light registry and the per-frame
// pipeline collaborators. Set Camera before each frame.
type LightLoop struct {
	Settings  config.Settings
	Camera    core.Camera
	Registry  *registry.Registry
	Scheduler *jobs.Scheduler
	Pool      *visible.Pool
	Culler    *cull.Culler
	Shadows   *shadow.Atlas
	AOV       visible.AOVFilter

	debugFilter core.DebugLightFilterMode
	upload      *gpu.LightBuffer
	logger      Logger
}

// VisibleLightList is the sorted output of the last prepared frame.
type VisibleLightList struct {
	Lights  []visible.ProcessedLight
	Counts  visible.LightCounts
	Stats   visible.Stats
	Header  gpu.Header
	Profile string
	Frame   uint64
}

// LightLoopModule installs the light pipeline. Install a LoggingModule first
// to get its logger. Backend is optional; without it nothing is uploaded.
type LightLoopModule struct {
	Settings *config.Settings
	Backend  gpu.Backend
}

func (m LightLoopModule) Install(app *App, cmd *Commands) {
	settings := m.Settings
	if settings == nil {
		settings = config.Default()
	}
	ll, err := NewLightLoop(*settings, app.Logger())
	if err != nil {
		panic(err)
	}
	if m.Backend != nil {
		ll.upload = gpu.NewLightBuffer(m.Backend, "LightsBuf", ll.logger)
	}

	cmd.AddResources(ll, &VisibleLightList{}).
		UseScheduledSystem(System(lightTransformSystem).InStage(PreRender)).
		UseScheduledSystem(System(lightPrepareSystem).InStage(Render))
	if ll.upload != nil {
		cmd.UseScheduledSystem(System(lightUploadSystem).InStage(PostRender))
	}
}

func NewLightLoop(settings config.Settings, logger Logger) (*LightLoop, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	filter, err := settings.Debug.FilterMode()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewNopLogger()
	}

	reg := registry.New(logger)
	scheduler := jobs.NewScheduler(settings.Jobs.Workers)
	pool := visible.NewPool(reg, scheduler, logger)
	pool.SetBatchSize(settings.Jobs.ClassifyBatchSize)
	pool.Warm(settings.Jobs.PoolSize)

	logger.Infof("light loop ready: %d workers, budgets %d/%d/%d",
		scheduler.Workers(),
		settings.LightLoop.MaxDirectionalLightsOnScreen,
		settings.LightLoop.MaxPunctualLightsOnScreen,
		settings.LightLoop.MaxAreaLightsOnScreen)

	return &LightLoop{
		Settings:    settings,
		Registry:    reg,
		Scheduler:   scheduler,
		Pool:        pool,
		Culler:      cull.NewCuller(),
		Shadows:     shadow.NewAtlas(settings.Shadows, logger),
		debugFilter: filter,
		logger:      logger,
	}, nil
}

// AddLight registers a light with the registry and the culler.
func (ll *LightLoop) AddLight(l SceneLight) (registry.Handle, error) {
	if l.Transform == nil {
		return registry.InvalidHandle, fmt.Errorf("%w: source %d", cull.ErrNoTransform, l.SourceID)
	}
	h, err := ll.Registry.CreateEntity(l.SourceID, l.Transform, l.Options...)
	if err != nil {
		return registry.InvalidHandle, err
	}
	err = ll.Culler.Add(cull.Light{
		SourceID:  l.SourceID,
		Kind:      l.Kind,
		Range:     l.Range,
		Shadows:   l.Shadows,
		Baking:    l.Baking,
		Transform: l.Transform,
	})
	if err != nil {
		if derr := ll.Registry.DestroyEntity(h); derr != nil {
			ll.logger.Errorf("rollback of light %d: %v", l.SourceID, derr)
		}
		return registry.InvalidHandle, err
	}
	return h, nil
}

func (ll *LightLoop) RemoveLight(sourceID int) error {
	h, ok := ll.Registry.Lookup(sourceID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLight, sourceID)
	}
	ll.Culler.Remove(sourceID)
	return ll.Registry.DestroyEntity(h)
}

// Frame assembles the pipeline input for the current camera.
func (ll *LightLoop) Frame() visible.Frame {
	frame := visible.Frame{
		Camera:    ll.Camera,
		Culling:   ll.Culler.Cull(ll.Camera),
		LightLoop: ll.Settings.LightLoop,
		Features:  ll.Settings.Frame,
		Debug:     ll.Settings.Debug,
		Shadows:   ll.Shadows,
		AOV:       ll.AOV,
	}
	if ll.debugFilter != core.DebugFilterNone {
		frame.DebugFilter = ll.debugFilter
	}
	return frame
}

// Dispose releases the processors, the GPU buffer, the job workers and every
// registered light.
func (ll *LightLoop) Dispose() {
	ll.Pool.Dispose()
	ll.Scheduler.Close()
	if ll.upload != nil {
		ll.upload.Release()
	}
	ll.Registry.Clear()
	ll.Culler = cull.NewCuller()
}

func lightTransformSystem(ll *LightLoop) {
	ll.Registry.StartTransformJob()
}

func lightPrepareSystem(ll *LightLoop, list *VisibleLightList) error {
	ll.Shadows.Reset()
	frame := ll.Frame()
	return ll.Pool.With(func(p *visible.Processor) error {
		if err := p.PrepareLightsForGPU(frame); err != nil {
			return err
		}
		list.Lights = append(list.Lights[:0], p.Sorted()...)
		list.Counts = p.LightCounts()
		list.Stats = p.Stats()
		list.Profile = p.Profile()
		list.Frame++
		return nil
	})
}

func lightUploadSystem(ll *LightLoop, list *VisibleLightList) error {
	recreated, err := ll.upload.Upload(list.Lights)
	if err != nil {
		return err
	}
	list.Header = ll.upload.Header()
	if recreated {
		ll.logger.Debugf("light buffer recreated for %d lights", list.Header.Count)
	}
	return nil
}
