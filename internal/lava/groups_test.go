package lava

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	It("drops a group once its last member leaves", func() {
		r := NewRegistry()
		g := r.NewGroup()
		p := &Particle{ID: 1}
		r.Join(g, p)
		Expect(r.Size(g)).To(Equal(1))

		r.Leave(p)
		Expect(r.Exists(g)).To(BeFalse())
	})

	It("creates a missing group on join", func() {
		r := NewRegistry()
		p := &Particle{ID: 1}
		r.Join(42, p)
		Expect(r.Contains(42, 1)).To(BeTrue())
		Expect(p.Group).To(Equal(GroupID(42)))
	})

	It("hands out fresh ids on detach", func() {
		r := NewRegistry()
		g := r.NewGroup()
		a, b := &Particle{ID: 1}, &Particle{ID: 2}
		r.Join(g, a)
		r.Join(g, b)

		ng := r.Detach(a)

		Expect(ng).NotTo(Equal(g))
		Expect(r.Members(g)).To(ConsistOf(b))
		Expect(r.Members(ng)).To(ConsistOf(a))
		Expect(r.Len()).To(Equal(2))
	})
})

var _ = Describe("Reassign", func() {
	var w *World

	BeforeEach(func() {
		w = newWorld(nil)
	})

	It("detaches a glob far from every sibling", func() {
		a := w.Spawn(Vec3{100, 100, 100}, 20, RGB{100, 100, 100}, 0)
		g := a.Group
		w.Spawn(Vec3{200, 100, 100}, 20, RGB{100, 100, 100}, g)
		w.Spawn(Vec3{100, 300, 100}, 20, RGB{100, 100, 100}, g)

		Expect(w.reassign(a)).To(BeTrue())
		Expect(a.Group).NotTo(Equal(g))
		Expect(w.Groups().Size(a.Group)).To(Equal(1))
		Expect(w.Groups().Size(g)).To(Equal(2))
		expectPartition(w)
	})

	It("stays while any sibling is close", func() {
		a := w.Spawn(Vec3{100, 100, 100}, 20, RGB{100, 100, 100}, 0)
		g := a.Group
		w.Spawn(Vec3{500, 100, 100}, 20, RGB{100, 100, 100}, g)
		w.Spawn(Vec3{130, 100, 100}, 20, RGB{100, 100, 100}, g)

		Expect(w.reassign(a)).To(BeFalse())
		Expect(a.Group).To(Equal(g))
	})

	It("leaves a singleton alone", func() {
		a := w.Spawn(Vec3{100, 100, 100}, 20, RGB{100, 100, 100}, 0)
		g := a.Group
		Expect(w.reassign(a)).To(BeFalse())
		Expect(a.Group).To(Equal(g))
	})

	It("counts same-tick offspring as siblings", func() {
		w = newWorld(func(p *Params) {
			p.MinRadius, p.MaxRadius, p.CullRadius = 1, 2, 0.1
		})
		parent := w.Spawn(Vec3{100, 100, 110}, 3, RGB{100, 100, 100}, 0)
		g := parent.Group
		near := w.Spawn(Vec3{100, 100, 104}, 5, RGB{100, 100, 100}, g)
		far := w.Spawn(Vec3{500, 100, 50}, 2, RGB{100, 100, 100}, g)
		for _, p := range []*Particle{parent, near, far} {
			p.Vel = Vec3{}
		}
		parent.SplitProb = 1
		near.SplitProb, far.SplitProb = 0, 0

		w.Tick()

		Expect(w.Stats().Splits).To(Equal(1))
		Expect(near.Group).To(Equal(g))
		Expect(far.Group).NotTo(Equal(g))
		Expect(w.Groups().Size(g)).To(Equal(w.Stats().Offspring + 1))
		expectPartition(w)
	})
})
