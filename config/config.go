package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/lightloop/lightrt/core"
)

type Settings struct {
	LightLoop LightLoopSettings `toml:"light_loop" yaml:"light_loop"`
	Frame     FrameSettings     `toml:"frame" yaml:"frame"`
	Debug     DebugSettings     `toml:"debug" yaml:"debug"`
	Shadows   ShadowSettings    `toml:"shadows" yaml:"shadows"`
	Jobs      JobSettings       `toml:"jobs" yaml:"jobs"`
	Logging   LoggingSettings   `toml:"logging" yaml:"logging"`
}

// LightLoopSettings are the per-category light budgets.
type LightLoopSettings struct {
	MaxDirectionalLightsOnScreen int  `toml:"max_directional_lights_on_screen" yaml:"max_directional_lights_on_screen"`
	MaxPunctualLightsOnScreen    int  `toml:"max_punctual_lights_on_screen" yaml:"max_punctual_lights_on_screen"`
	MaxAreaLightsOnScreen        int  `toml:"max_area_lights_on_screen" yaml:"max_area_lights_on_screen"`
	AreaLightsEnabled            bool `toml:"area_lights_enabled" yaml:"area_lights_enabled"`
}

// FrameSettings are the renderer features enabled for the current camera.
type FrameSettings struct {
	RayTracing         bool `toml:"ray_tracing" yaml:"ray_tracing"`
	ShadowMaps         bool `toml:"shadow_maps" yaml:"shadow_maps"`
	ScreenSpaceShadows bool `toml:"screen_space_shadows" yaml:"screen_space_shadows"`
}

type DebugSettings struct {
	ShowDirectionalLights bool `toml:"show_directional_lights" yaml:"show_directional_lights"`
	ShowPunctualLights    bool `toml:"show_punctual_lights" yaml:"show_punctual_lights"`
	ShowAreaLights        bool `toml:"show_area_lights" yaml:"show_area_lights"`
	// LightFilter lists the light types kept in debug views, e.g. ["point", "spot_cone"].
	// Empty disables filtering.
	LightFilter []string `toml:"light_filter" yaml:"light_filter"`
}

// FilterMode resolves LightFilter.
func (d DebugSettings) FilterMode() (core.DebugLightFilterMode, error) {
	return core.ParseDebugLightFilter(d.LightFilter)
}

// ShadowSettings size the shadow atlas. Resolutions are tile edges in texels.
type ShadowSettings struct {
	AtlasSize           int `toml:"atlas_size" yaml:"atlas_size"`
	MaxShadowRequests   int `toml:"max_shadow_requests" yaml:"max_shadow_requests"`
	PunctualResolution  int `toml:"punctual_resolution" yaml:"punctual_resolution"`
	AreaResolution      int `toml:"area_resolution" yaml:"area_resolution"`
	DirectionalCascades int `toml:"directional_cascades" yaml:"directional_cascades"`
	CascadeResolution   int `toml:"cascade_resolution" yaml:"cascade_resolution"`
}

type JobSettings struct {
	Workers           int `toml:"workers" yaml:"workers"` // 0 = GOMAXPROCS
	ClassifyBatchSize int `toml:"classify_batch_size" yaml:"classify_batch_size"`
	PoolSize          int `toml:"pool_size" yaml:"pool_size"` // processors created up front
}

type LoggingSettings struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// Load reads settings from a .toml, .yaml or .yml file. Missing keys keep their defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Settings {
	return &Settings{
		LightLoop: LightLoopSettings{
			MaxDirectionalLightsOnScreen: 16,
			MaxPunctualLightsOnScreen:    512,
			MaxAreaLightsOnScreen:        64,
			AreaLightsEnabled:            true,
		},
		Frame: FrameSettings{
			RayTracing:         false,
			ShadowMaps:         true,
			ScreenSpaceShadows: true,
		},
		Debug: DebugSettings{
			ShowDirectionalLights: true,
			ShowPunctualLights:    true,
			ShowAreaLights:        true,
		},
		Shadows: ShadowSettings{
			AtlasSize:           4096,
			MaxShadowRequests:   128,
			PunctualResolution:  512,
			AreaResolution:      512,
			DirectionalCascades: 4,
			CascadeResolution:   1024,
		},
		Jobs: JobSettings{
			Workers:           0,
			ClassifyBatchSize: 32,
			PoolSize:          1,
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "console",
		},
	}
}

var ErrInvalidSettings = errors.New("invalid settings")

func (s *Settings) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSettings}, args...)...))
		}
	}

	ll := s.LightLoop
	check(ll.MaxDirectionalLightsOnScreen >= 0, "max_directional_lights_on_screen is %d", ll.MaxDirectionalLightsOnScreen)
	check(ll.MaxPunctualLightsOnScreen >= 0, "max_punctual_lights_on_screen is %d", ll.MaxPunctualLightsOnScreen)
	check(ll.MaxAreaLightsOnScreen >= 0, "max_area_lights_on_screen is %d", ll.MaxAreaLightsOnScreen)
	sh := s.Shadows
	check(sh.AtlasSize > 0, "atlas_size is %d", sh.AtlasSize)
	check(sh.MaxShadowRequests >= 0, "max_shadow_requests is %d", sh.MaxShadowRequests)
	for _, r := range []struct {
		name string
		v    int
	}{
		{"punctual_resolution", sh.PunctualResolution},
		{"area_resolution", sh.AreaResolution},
		{"cascade_resolution", sh.CascadeResolution},
	} {
		check(r.v > 0 && r.v <= sh.AtlasSize, "%s is %d (atlas %d)", r.name, r.v, sh.AtlasSize)
	}
	check(sh.DirectionalCascades >= 1 && sh.DirectionalCascades <= 4, "directional_cascades is %d", sh.DirectionalCascades)
	check(s.Jobs.Workers >= 0, "workers is %d", s.Jobs.Workers)
	check(s.Jobs.ClassifyBatchSize > 0, "classify_batch_size is %d", s.Jobs.ClassifyBatchSize)
	check(s.Jobs.PoolSize >= 0, "pool_size is %d", s.Jobs.PoolSize)
	if _, err := s.Debug.FilterMode(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidSettings, err))
	}
	switch s.Logging.Format {
	case "json", "console":
	default:
		check(false, "logging format %q", s.Logging.Format)
	}

	return errors.Join(errs...)
}
