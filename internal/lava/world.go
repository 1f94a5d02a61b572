package lava

import (
	"math/rand"
	"sort"

	"github.com/aquilax/go-perlin"
)

// Stats counts what happened during the most recent tick.
type Stats struct {
	Tick       int
	Population int
	Groups     int
	Contacts   int
	Merges     int
	Splits     int
	Offspring  int
	Detached   int
	Culled     int
}

// Sprite is the read-only view of a glob handed to presentation layers.
type Sprite struct {
	ID     ParticleID
	Pos    Vec3
	Radius float64
	Color  RGB
	Group  GroupID
}

// Snapshot is an immutable copy of the world after a tick, depth sorted
// far to near.
type Snapshot struct {
	Tick       int
	Bounds     Vec3
	Background RGB
	Globs      []Sprite
	Stats      Stats
}

type World struct {
	params     Params
	rng        *rand.Rand
	noise      *perlin.Perlin
	groups     *Registry
	population []*Particle
	tick       int
	nextID     uint64
	background RGB
	stats      Stats
}

// New builds an empty world. The same params and seed reproduce the same run.
func New(params Params, seed int64) (*World, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		params: params,
		rng:    rand.New(rand.NewSource(seed)),
		groups: NewRegistry(),
	}
	if params.Convection > 0 {
		w.noise = perlin.NewPerlin(2, 2, 3, seed)
	}
	return w, nil
}

func (w *World) Params() Params    { return w.params }
func (w *World) Ticks() int        { return w.tick }
func (w *World) Population() int   { return len(w.population) }
func (w *World) Groups() *Registry { return w.groups }
func (w *World) Stats() Stats      { return w.stats }
func (w *World) Background() RGB   { return w.background }

// Particles returns copies of every live glob in population order.
func (w *World) Particles() []Particle {
	out := make([]Particle, len(w.population))
	for i, p := range w.population {
		out[i] = *p
	}
	return out
}

// Spawn adds a glob to the population. A zero group gives it a fresh group.
func (w *World) Spawn(pos Vec3, radius float64, color RGB, group GroupID) *Particle {
	p := w.spawn(pos.Wrap(w.params.Bounds()), radius, color, group)
	w.population = append(w.population, p)
	return p
}

// Seed adds count globs placed inside the ellipsoid with semi-axes a, b, c
// centred in the volume, each in its own group.
func (w *World) Seed(count int, a, b, c float64) {
	for i := 0; i < count; i++ {
		pos := w.RandomPoint(a, b, c)
		radius := w.params.MinRadius + w.rng.Float64()*(w.params.MaxRadius-w.params.MinRadius)
		p := w.spawn(pos, radius, RandomColor(w.rng), 0)
		w.population = append(w.population, p)
	}
	w.background = Background(w.colors())
	w.stats.Population = len(w.population)
	w.stats.Groups = w.groups.Len()
}

// RandomPoint draws a point by rejection sampling the unit cube against
// u²/a²+v²/b²+w²/c² <= 1, maps it around the volume centre and clamps each
// axis to [MinRadius, bound-MinRadius].
func (w *World) RandomPoint(a, b, c float64) Vec3 {
	var u, v, s float64
	for {
		u = w.rng.Float64()*2 - 1
		v = w.rng.Float64()*2 - 1
		s = w.rng.Float64()*2 - 1
		if u*u/(a*a)+v*v/(b*b)+s*s/(c*c) <= 1 {
			break
		}
	}
	m := w.params.MinRadius
	return Vec3{
		clamp(w.params.Width/2+a*u, m, w.params.Width-m),
		clamp(w.params.Height/2+b*v, m, w.params.Height-m),
		clamp(w.params.Depth/2+c*s, m, w.params.Depth-m),
	}
}

// Tick advances the world by one step.
func (w *World) Tick() {
	w.stats = Stats{Tick: w.tick + 1}
	w.background = Background(w.colors())

	order := w.drawOrder()

	w.attract()
	w.convect()

	bounds := w.params.Bounds()
	var offspring []*Particle
	for i, p := range order {
		if p.removed {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel).Wrap(bounds)

		if w.reassign(p) {
			w.stats.Detached++
		}

		for _, q := range order[i+1:] {
			if q.removed {
				continue
			}
			contact, depleted := Collide(p, q, w.params.Transfer)
			if contact {
				w.stats.Contacts++
			}
			if depleted != nil {
				w.remove(depleted)
				w.stats.Merges++
				if depleted == p {
					break
				}
			}
		}

		if p.removed || p.Radius <= w.params.MaxRadius {
			continue
		}
		if kids := w.split(p); kids != nil {
			offspring = append(offspring, kids...)
			w.remove(p)
			w.stats.Splits++
			w.stats.Offspring += len(kids)
		}
	}

	w.population = append(w.population, offspring...)
	w.stats.Culled = w.Cull()

	n := len(w.population)
	for _, p := range w.population {
		p.GlobHint = n
	}

	w.tick++
	w.stats.Population = n
	w.stats.Groups = w.groups.Len()
}

// Cull removes every glob below the cull radius and returns how many went.
func (w *World) Cull() int {
	kept := w.population[:0]
	culled := 0
	for _, p := range w.population {
		if p.Radius < w.params.CullRadius {
			w.groups.Leave(p)
			p.removed = true
			culled++
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(w.population); i++ {
		w.population[i] = nil
	}
	w.population = kept
	return culled
}

// Snapshot copies the current population in draw order.
func (w *World) Snapshot() Snapshot {
	order := w.drawOrder()
	globs := make([]Sprite, len(order))
	for i, p := range order {
		globs[i] = Sprite{ID: p.ID, Pos: p.Pos, Radius: p.Radius, Color: p.Color, Group: p.Group}
	}
	return Snapshot{
		Tick:       w.tick,
		Bounds:     w.params.Bounds(),
		Background: w.background,
		Globs:      globs,
		Stats:      w.stats,
	}
}

func (w *World) remove(p *Particle) {
	if p.removed {
		return
	}
	p.removed = true
	w.groups.Leave(p)
	for i, q := range w.population {
		if q == p {
			w.population = append(w.population[:i], w.population[i+1:]...)
			break
		}
	}
}

// drawOrder sorts a copy of the population by depth, farthest first.
func (w *World) drawOrder() []*Particle {
	order := make([]*Particle, len(w.population))
	copy(order, w.population)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Pos.Z > order[j].Pos.Z })
	return order
}

func (w *World) colors() []RGB {
	out := make([]RGB, len(w.population))
	for i, p := range w.population {
		out[i] = p.Color
	}
	return out
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
