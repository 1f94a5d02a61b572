package lava

import "math"

type ParticleID uint64

// Particle is a single glob.
type Particle struct {
	ID     ParticleID
	Pos    Vec3
	Vel    Vec3
	Radius float64
	Color  RGB
	Group  GroupID

	SplitProb float64
	// Born is the tick the glob was created on.
	Born int
	// GlobHint is an advisory neighbourhood size; nothing depends on it.
	GlobHint int

	removed bool
}

// Alive reports whether the glob is still part of the population.
func (p *Particle) Alive() bool { return !p.removed }

// Area is the cross-section used for color weighting.
func (p *Particle) Area() float64 { return math.Pi * p.Radius * p.Radius }

// spawn creates a glob and registers it with group, or with a fresh group
// when group is zero.
func (w *World) spawn(pos Vec3, radius float64, color RGB, group GroupID) *Particle {
	w.nextID++
	p := &Particle{
		ID:        ParticleID(w.nextID),
		Pos:       pos,
		Radius:    radius,
		Color:     color,
		SplitProb: w.params.SplitProb,
		Born:      w.tick,
	}

	if group == 0 {
		group = w.groups.NewGroup()
	}
	w.groups.Join(group, p)

	// velocity grows with radius: uniform / (k / r) / divisor
	scale := radius / w.params.SpeedConstant / w.params.SpeedDivisor
	p.Vel = Vec3{
		(w.rng.Float64()*2 - 1) * scale,
		(w.rng.Float64()*2 - 1) * scale,
		(w.rng.Float64()*2 - 1) * scale,
	}

	if radius == w.params.MaxRadius {
		p.GlobHint = w.params.InitialGlobs
	} else {
		p.GlobHint = int(math.Round(radius / (w.params.MaxRadius / float64(w.params.InitialGlobs))))
	}
	return p
}

// split breaks an overgrown glob into offspring. It returns nil when the
// glob is not overgrown, the population is at the cap, or the propensity
// roll fails. The caller owns removing the parent.
func (w *World) split(p *Particle) []*Particle {
	if p.Radius <= w.params.MaxRadius {
		return nil
	}
	if len(w.population) >= w.params.MaxGlobs || w.rng.Float64() >= p.SplitProb {
		return nil
	}

	lo, hi := OffspringRange(p.Radius, w.params.MaxRadius)
	k := lo + w.rng.Intn(hi-lo+1)

	bounds := w.params.Bounds()
	offspring := make([]*Particle, 0, k)
	for i := 0; i < k; i++ {
		offset := Vec3{
			(w.rng.Float64()*2 - 1) * p.Radius,
			(w.rng.Float64()*2 - 1) * p.Radius,
			(w.rng.Float64()*2 - 1) * p.Radius,
		}
		color := Mutate(w.rng, p.Color, w.params.MutationRange, w.params.MutationFloor)
		child := w.spawn(p.Pos.Add(offset).Wrap(bounds), p.Radius/float64(k), color, p.Group)
		child.SplitProb = p.SplitProb
		offspring = append(offspring, child)
	}
	return offspring
}

// OffspringRange returns the inclusive bounds on the number of offspring for
// a glob of the given radius.
func OffspringRange(radius, maxRadius float64) (int, int) {
	scale := radius/maxRadius*0.5 + 1
	lo := int(math.Round(2 * scale))
	hi := int(math.Round(5 * scale))
	if lo < 2 {
		lo = 2
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
