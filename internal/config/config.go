package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/globsim/internal/lava"
	"github.com/san-kum/globsim/internal/sim"
	"gopkg.in/gcfg.v1"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTicks = 3600
	DefaultFPS   = 60
)

type Config struct {
	Seed   int64        `yaml:"seed"`
	Ticks  int          `yaml:"ticks"`
	FPS    int          `yaml:"fps"`
	Globs  int          `yaml:"globs"`
	Volume VolumeConfig `yaml:"volume"`
	Radius RadiusConfig `yaml:"radius"`
	Split  SplitConfig  `yaml:"split"`
	Motion MotionConfig `yaml:"motion"`
}

type VolumeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
}

type RadiusConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Cull float64 `yaml:"cull"`
}

type SplitConfig struct {
	Prob          float64 `yaml:"prob"`
	MaxGlobs      int     `yaml:"max_globs"`
	MutationRange int     `yaml:"mutation_range"`
	MutationFloor int     `yaml:"mutation_floor"`
}

type MotionConfig struct {
	Transfer      float64 `yaml:"transfer"`
	SpeedDivisor  float64 `yaml:"speed_divisor"`
	SpeedConstant float64 `yaml:"speed_constant"`
	BaseForce     float64 `yaml:"base_force"`
	Convection    float64 `yaml:"convection"`
}

func DefaultConfig() *Config {
	p := lava.DefaultParams()
	return &Config{
		Ticks: DefaultTicks,
		FPS:   DefaultFPS,
		Globs: p.InitialGlobs,
		Volume: VolumeConfig{
			Width:  p.Width,
			Height: p.Height,
			Depth:  p.Depth,
		},
		Radius: RadiusConfig{
			Min:  p.MinRadius,
			Max:  p.MaxRadius,
			Cull: p.CullRadius,
		},
		Split: SplitConfig{
			Prob:          p.SplitProb,
			MaxGlobs:      p.MaxGlobs,
			MutationRange: p.MutationRange,
			MutationFloor: p.MutationFloor,
		},
		Motion: MotionConfig{
			Transfer:      p.Transfer,
			SpeedDivisor:  p.SpeedDivisor,
			SpeedConstant: p.SpeedConstant,
			BaseForce:     p.BaseForce,
		},
	}
}

// Load reads a config file. Files ending in .ini or .gcfg are parsed as
// git-config style INI; everything else as YAML. Missing keys keep defaults.
func Load(path string) (*Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".gcfg":
		return loadINI(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// iniFile mirrors Config for gcfg: every top-level field is a section.
type iniFile struct {
	Run struct {
		Seed  int64
		Ticks int
		FPS   int
		Globs int
	}
	Volume VolumeConfig
	Radius RadiusConfig
	Split  SplitConfig
	Motion MotionConfig
}

func loadINI(path string) (*Config, error) {
	cfg := DefaultConfig()
	var f iniFile
	f.Run.Seed, f.Run.Ticks, f.Run.FPS, f.Run.Globs = cfg.Seed, cfg.Ticks, cfg.FPS, cfg.Globs
	f.Volume, f.Radius, f.Split, f.Motion = cfg.Volume, cfg.Radius, cfg.Split, cfg.Motion

	if err := gcfg.ReadFileInto(&f, path); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.Seed, cfg.Ticks, cfg.FPS, cfg.Globs = f.Run.Seed, f.Run.Ticks, f.Run.FPS, f.Run.Globs
	cfg.Volume, cfg.Radius, cfg.Split, cfg.Motion = f.Volume, f.Radius, f.Split, f.Motion
	return cfg, nil
}

// Params converts the file layout into the engine's immutable parameters.
// Params builds the engine parameters. InitialGlobs only scales the glob
// hint, so an empty run keeps the default there.
func (c *Config) Params() lava.Params {
	hint := c.Globs
	if hint <= 0 {
		hint = lava.DefaultInitialGlobs
	}
	return lava.Params{
		Width:         c.Volume.Width,
		Height:        c.Volume.Height,
		Depth:         c.Volume.Depth,
		MinRadius:     c.Radius.Min,
		MaxRadius:     c.Radius.Max,
		CullRadius:    c.Radius.Cull,
		SplitProb:     c.Split.Prob,
		InitialGlobs:  hint,
		MaxGlobs:      c.Split.MaxGlobs,
		MutationRange: c.Split.MutationRange,
		MutationFloor: c.Split.MutationFloor,
		Transfer:      c.Motion.Transfer,
		SpeedDivisor:  c.Motion.SpeedDivisor,
		SpeedConstant: c.Motion.SpeedConstant,
		BaseForce:     c.Motion.BaseForce,
		Convection:    c.Motion.Convection,
	}
}

// SeedAxes returns the semi-axes of the seeding ellipsoid: half the volume.
func (c *Config) SeedAxes() (float64, float64, float64) {
	return c.Volume.Width / 2, c.Volume.Height / 2, c.Volume.Depth / 2
}

// RunConfig is the harness view of the config.
func (c *Config) RunConfig() sim.Config {
	a, b, d := c.SeedAxes()
	return sim.Config{Ticks: c.Ticks, Seed: c.Seed, Globs: c.Globs, Axes: [3]float64{a, b, d}}
}
