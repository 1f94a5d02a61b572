package config

import (
	"fmt"
	"sort"
)

var setters = map[string]func(*Config, float64){
	"seed":           func(c *Config, v float64) { c.Seed = int64(v) },
	"ticks":          func(c *Config, v float64) { c.Ticks = int(v) },
	"fps":            func(c *Config, v float64) { c.FPS = int(v) },
	"globs":          func(c *Config, v float64) { c.Globs = int(v) },
	"width":          func(c *Config, v float64) { c.Volume.Width = v },
	"height":         func(c *Config, v float64) { c.Volume.Height = v },
	"depth":          func(c *Config, v float64) { c.Volume.Depth = v },
	"min_radius":     func(c *Config, v float64) { c.Radius.Min = v },
	"max_radius":     func(c *Config, v float64) { c.Radius.Max = v },
	"cull_radius":    func(c *Config, v float64) { c.Radius.Cull = v },
	"split_prob":     func(c *Config, v float64) { c.Split.Prob = v },
	"max_globs":      func(c *Config, v float64) { c.Split.MaxGlobs = int(v) },
	"mutation_range": func(c *Config, v float64) { c.Split.MutationRange = int(v) },
	"mutation_floor": func(c *Config, v float64) { c.Split.MutationFloor = int(v) },
	"transfer":       func(c *Config, v float64) { c.Motion.Transfer = v },
	"speed_divisor":  func(c *Config, v float64) { c.Motion.SpeedDivisor = v },
	"speed_constant": func(c *Config, v float64) { c.Motion.SpeedConstant = v },
	"base_force":     func(c *Config, v float64) { c.Motion.BaseForce = v },
	"convection":     func(c *Config, v float64) { c.Motion.Convection = v },
}

// Set assigns one field by its flat name, e.g. "split_prob".
func (c *Config) Set(name string, v float64) error {
	set, ok := setters[name]
	if !ok {
		return fmt.Errorf("unknown parameter: %s", name)
	}
	set(c, v)
	return nil
}

// Apply sets every named field, stopping at the first unknown name.
func (c *Config) Apply(values map[string]float64) error {
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if err := c.Set(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Settable lists the names accepted by Set.
func Settable() []string {
	names := make([]string, 0, len(setters))
	for k := range setters {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
