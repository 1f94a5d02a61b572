package metrics

import (
	"math"

	"github.com/san-kum/globsim/internal/sim"
)

// Population tracks the mean and peak number of live globs.
type Population struct {
	name    string
	samples int
	total   float64
	peak    int
}

func NewPopulation() *Population { return &Population{name: "population"} }

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(f sim.Frame) {
	n := len(f.Snapshot.Globs)
	p.total += float64(n)
	p.samples++
	if n > p.peak {
		p.peak = n
	}
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.total / float64(p.samples)
}

func (p *Population) Peak() int { return p.peak }

func (p *Population) Reset() {
	p.samples = 0
	p.total = 0
	p.peak = 0
}

// Groups reports the mean number of sibling groups per tick.
type Groups struct {
	samples int
	total   float64
}

func NewGroups() *Groups { return &Groups{} }

func (g *Groups) Name() string { return "groups" }

func (g *Groups) Observe(f sim.Frame) {
	g.total += float64(f.Snapshot.Stats.Groups)
	g.samples++
}

func (g *Groups) Value() float64 {
	if g.samples == 0 {
		return 0
	}
	return g.total / float64(g.samples)
}

func (g *Groups) Reset() {
	g.samples = 0
	g.total = 0
}

// RadiusDrift is the largest relative change of summed radius against the
// first observed tick. Contacts conserve radius, so drift comes only from
// splits rounding, culls and depletion.
type RadiusDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewRadiusDrift() *RadiusDrift { return &RadiusDrift{} }

func (r *RadiusDrift) Name() string { return "radius_drift" }

func (r *RadiusDrift) Observe(f sim.Frame) {
	total := 0.0
	for _, g := range f.Snapshot.Globs {
		total += g.Radius
	}
	if r.samples == 0 {
		r.initial = total
	}
	r.samples++
	if r.initial != 0 {
		r.maxDrift = math.Max(r.maxDrift, math.Abs(total-r.initial)/r.initial)
	}
}

func (r *RadiusDrift) Value() float64 { return r.maxDrift }

func (r *RadiusDrift) Reset() {
	r.initial = 0
	r.maxDrift = 0
	r.samples = 0
}
