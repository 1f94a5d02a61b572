package lava

import "sort"

type GroupID uint64

// Registry partitions live globs into sibling groups. Particles carry only
// their GroupID; member sets live here.
type Registry struct {
	groups map[GroupID]map[ParticleID]*Particle
	next   GroupID
}

func NewRegistry() *Registry {
	return &Registry{groups: make(map[GroupID]map[ParticleID]*Particle)}
}

// NewGroup allocates an empty group id.
func (r *Registry) NewGroup() GroupID {
	r.next++
	r.groups[r.next] = make(map[ParticleID]*Particle)
	return r.next
}

// Join adds p to group g, creating the group if absent.
func (r *Registry) Join(g GroupID, p *Particle) {
	members, ok := r.groups[g]
	if !ok {
		members = make(map[ParticleID]*Particle)
		r.groups[g] = members
	}
	members[p.ID] = p
	p.Group = g
}

// Leave removes p from its group. Emptied groups are dropped.
func (r *Registry) Leave(p *Particle) {
	members, ok := r.groups[p.Group]
	if !ok {
		return
	}
	delete(members, p.ID)
	if len(members) == 0 {
		delete(r.groups, p.Group)
	}
}

// Detach moves p into a fresh singleton group and returns its id.
func (r *Registry) Detach(p *Particle) GroupID {
	r.Leave(p)
	g := r.NewGroup()
	r.Join(g, p)
	return g
}

func (r *Registry) Contains(g GroupID, id ParticleID) bool {
	_, ok := r.groups[g][id]
	return ok
}

func (r *Registry) Exists(g GroupID) bool {
	_, ok := r.groups[g]
	return ok
}

func (r *Registry) Size(g GroupID) int { return len(r.groups[g]) }

// Len is the number of non-empty groups.
func (r *Registry) Len() int {
	n := 0
	for _, m := range r.groups {
		if len(m) > 0 {
			n++
		}
	}
	return n
}

// Members lists group g ordered by particle id.
func (r *Registry) Members(g GroupID) []*Particle {
	members := r.groups[g]
	out := make([]*Particle, 0, len(members))
	for _, p := range members {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs lists every known group, sorted.
func (r *Registry) IDs() []GroupID {
	out := make([]GroupID, 0, len(r.groups))
	for g := range r.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// reassign detaches p when every other member of its group lies farther than
// twice p's radius. A group with no other members is left alone.
func (w *World) reassign(p *Particle) bool {
	members := w.groups.groups[p.Group]
	if len(members) <= 1 {
		return false
	}
	limit := 2 * p.Radius
	for id, mate := range members {
		if id == p.ID {
			continue
		}
		if Dist(p.Pos, mate.Pos) <= limit {
			return false
		}
	}
	w.groups.Detach(p)
	return true
}
