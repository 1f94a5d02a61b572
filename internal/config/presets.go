package config

import "sort"

var Presets = map[string]*Config{
	"lavalamp": DefaultConfig(),
	"calm": with(func(c *Config) {
		c.Globs = 30
		c.Split.Prob = 0.1
		c.Motion.Transfer = 0.0004
	}),
	"volatile": with(func(c *Config) {
		c.Split.Prob = 0.6
		c.Split.MaxGlobs = 400
		c.Motion.Transfer = 0.002
	}),
	"convection": with(func(c *Config) {
		c.Motion.Convection = 0.02
	}),
	"sparse": with(func(c *Config) {
		c.Globs = 15
		c.Split.MaxGlobs = 60
	}),
}

func with(edit func(*Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
