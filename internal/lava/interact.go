package lava

import "math"

// Collide resolves one contact between a and b. When the discs overlap, the
// smaller glob hands rate of its radius to the larger one and the larger
// takes the area-weighted color of both. On equal radii b counts as the
// larger. depleted is the smaller glob when its radius reached zero.
func Collide(a, b *Particle, rate float64) (contact bool, depleted *Particle) {
	if Dist(a.Pos, b.Pos) > a.Radius+b.Radius {
		return false, nil
	}
	larger, smaller := b, a
	if a.Radius > b.Radius {
		larger, smaller = a, b
	}

	moved := smaller.Radius * rate
	larger.Radius += moved
	smaller.Radius -= moved

	larger.Color = BlendArea(larger.Color, larger.Radius, smaller.Color, smaller.Radius)

	if smaller.Radius <= 0 {
		larger.GlobHint--
		return true, smaller
	}
	return true, nil
}

// Nearest returns the closest glob to p whose radius is at least minRadius,
// or nil when there is none.
func Nearest(p *Particle, globs []*Particle, minRadius float64) (*Particle, float64) {
	var best *Particle
	bestDist := math.Inf(1)
	for _, q := range globs {
		if q == p || q.removed || q.Radius < minRadius {
			continue
		}
		if d := Dist(p.Pos, q.Pos); d < bestDist {
			best, bestDist = q, d
		}
	}
	return best, bestDist
}

// attract nudges every undersized glob toward its nearest adequate glob.
// Coincident globs get no push.
func (w *World) attract() {
	min := w.params.MinRadius
	for _, p := range w.population {
		if p.Radius >= min {
			continue
		}
		target, dist := Nearest(p, w.population, min)
		if target == nil || dist == 0 {
			continue
		}
		force := w.params.BaseForce * (min / dist)
		dir := target.Pos.Sub(p.Pos).Scale(1 / dist)
		p.Vel = p.Vel.Add(dir.Scale(force))
	}
}

// convect adds a vertical lift sampled from a slowly drifting noise field.
func (w *World) convect() {
	if w.noise == nil || w.params.Convection == 0 {
		return
	}
	t := float64(w.tick) * 0.005
	for _, p := range w.population {
		n := w.noise.Noise3D(p.Pos.X/w.params.Width*4, p.Pos.Y/w.params.Height*4, p.Pos.Z/w.params.Depth*4+t)
		p.Vel.Y -= w.params.Convection * n
	}
}
