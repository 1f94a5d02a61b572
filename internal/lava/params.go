package lava

import "math"

const (
	DefaultWidth         = 800.0
	DefaultHeight        = 600.0
	DefaultDepth         = 700.0
	DefaultMinRadius     = 33.3
	DefaultMaxRadius     = 99.9
	DefaultSplitProb     = 0.29
	DefaultInitialGlobs  = 50
	DefaultMaxGlobs      = 230
	DefaultTransfer      = 0.00075
	DefaultSpeedConstant = 28.88
	DefaultMutationRange = 128
	DefaultMutationFloor = 64
	DefaultCullRadius    = 1.0
)

var (
	DefaultSpeedDivisor = 2.0 + 1/math.Pi
	DefaultBaseForce    = 0.3 / 4.6
)

// Params is the immutable configuration of a World. It is copied into the
// world at construction and never mutated afterwards.
type Params struct {
	Width, Height, Depth float64

	MinRadius float64
	MaxRadius float64

	// SplitProb is the split propensity given to seeded globs.
	SplitProb    float64
	InitialGlobs int
	// MaxGlobs gates splitting; it is a soft cap.
	MaxGlobs int

	Transfer      float64
	SpeedDivisor  float64
	SpeedConstant float64
	BaseForce     float64

	MutationRange int
	MutationFloor int
	CullRadius    float64

	// Convection scales an optional Perlin lift field. Zero disables it.
	Convection float64
}

func DefaultParams() Params {
	return Params{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Depth:         DefaultDepth,
		MinRadius:     DefaultMinRadius,
		MaxRadius:     DefaultMaxRadius,
		SplitProb:     DefaultSplitProb,
		InitialGlobs:  DefaultInitialGlobs,
		MaxGlobs:      DefaultMaxGlobs,
		Transfer:      DefaultTransfer,
		SpeedDivisor:  DefaultSpeedDivisor,
		SpeedConstant: DefaultSpeedConstant,
		BaseForce:     DefaultBaseForce,
		MutationRange: DefaultMutationRange,
		MutationFloor: DefaultMutationFloor,
		CullRadius:    DefaultCullRadius,
	}
}

// Bounds returns the volume extents as a vector.
func (p Params) Bounds() Vec3 {
	return Vec3{p.Width, p.Height, p.Depth}
}

// Validate reports the first parameter outside its valid range.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 || p.Depth <= 0 {
		return ErrEmptyVolume
	}
	checks := []struct {
		field string
		value float64
		ok    bool
	}{
		{"min_radius", p.MinRadius, p.MinRadius > 0},
		{"max_radius", p.MaxRadius, p.MaxRadius >= p.MinRadius},
		{"split_prob", p.SplitProb, p.SplitProb >= 0 && p.SplitProb <= 1},
		{"initial_globs", float64(p.InitialGlobs), p.InitialGlobs > 0},
		{"max_globs", float64(p.MaxGlobs), p.MaxGlobs >= 0},
		{"transfer", p.Transfer, p.Transfer >= 0 && p.Transfer <= 1},
		{"speed_divisor", p.SpeedDivisor, p.SpeedDivisor > 0},
		{"speed_constant", p.SpeedConstant, p.SpeedConstant > 0},
		{"base_force", p.BaseForce, p.BaseForce >= 0},
		{"mutation_range", float64(p.MutationRange), p.MutationRange >= 0},
		{"mutation_floor", float64(p.MutationFloor), p.MutationFloor >= 0 && p.MutationFloor <= 255},
		{"cull_radius", p.CullRadius, p.CullRadius >= 0},
		{"convection", p.Convection, p.Convection >= 0},
	}
	for _, c := range checks {
		if !c.ok {
			return &ParamError{Field: c.field, Value: c.value, Wrapped: ErrInvalidParams}
		}
	}
	return nil
}
