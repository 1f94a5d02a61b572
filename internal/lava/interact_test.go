package lava

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Collide", func() {
	var big, small *Particle

	BeforeEach(func() {
		big = &Particle{ID: 1, Pos: Vec3{100, 100, 100}, Radius: 50, Color: RGB{200, 40, 40}}
		small = &Particle{ID: 2, Pos: Vec3{100, 100, 100}, Radius: 10, Color: RGB{40, 40, 200}}
	})

	It("moves a fixed share of the smaller radius to the larger", func() {
		contact, depleted := Collide(small, big, 0.00075)

		Expect(contact).To(BeTrue())
		Expect(depleted).To(BeNil())
		Expect(big.Radius).To(BeNumerically("~", 50.0075, 1e-9))
		Expect(small.Radius).To(BeNumerically("~", 9.9925, 1e-9))
		Expect(big.Radius + small.Radius).To(BeNumerically("~", 60, 1e-9))
	})

	It("blends only the larger glob's color", func() {
		want := BlendArea(RGB{200, 40, 40}, 50.0075, RGB{40, 40, 200}, 9.9925)

		Collide(big, small, 0.00075)

		Expect(big.Color).To(Equal(want))
		Expect(small.Color).To(Equal(RGB{40, 40, 200}))
	})

	It("ignores globs that do not touch", func() {
		small.Pos = Vec3{100, 100, 161}
		contact, _ := Collide(big, small, 0.5)
		Expect(contact).To(BeFalse())
		Expect(big.Radius).To(Equal(50.0))
	})

	It("touches exactly at the sum of radii", func() {
		small.Pos = Vec3{160, 100, 100}
		contact, _ := Collide(big, small, 0.5)
		Expect(contact).To(BeTrue())
	})

	It("treats the second glob as larger on a tie", func() {
		a := &Particle{ID: 1, Radius: 20}
		b := &Particle{ID: 2, Radius: 20}
		Collide(a, b, 0.1)
		Expect(b.Radius).To(BeNumerically("~", 22, 1e-9))
		Expect(a.Radius).To(BeNumerically("~", 18, 1e-9))
	})

	It("reports a drained glob and shrinks the survivor's hint", func() {
		big.GlobHint = 5
		_, depleted := Collide(big, small, 1)
		Expect(depleted).To(BeIdenticalTo(small))
		Expect(big.GlobHint).To(Equal(4))
	})
})

var _ = Describe("Attraction", func() {
	It("pulls an undersized glob toward the nearest adequate glob", func() {
		w := newWorld(nil)
		p := w.Spawn(Vec3{100, 100, 100}, 10, RGB{100, 100, 100}, 0)
		w.Spawn(Vec3{200, 100, 100}, 50, RGB{100, 100, 100}, 0)
		w.Spawn(Vec3{100, 400, 100}, 60, RGB{100, 100, 100}, 0)
		before := p.Vel

		w.attract()

		force := w.params.BaseForce * (w.params.MinRadius / 100)
		Expect(p.Vel.X - before.X).To(BeNumerically("~", force, 1e-12))
		Expect(p.Vel.Y).To(BeNumerically("~", before.Y, 1e-12))
		Expect(p.Vel.Z).To(BeNumerically("~", before.Z, 1e-12))
	})

	It("does nothing without an adequate target", func() {
		w := newWorld(nil)
		p := w.Spawn(Vec3{100, 100, 100}, 10, RGB{100, 100, 100}, 0)
		w.Spawn(Vec3{200, 100, 100}, 12, RGB{100, 100, 100}, 0)
		before := p.Vel

		w.attract()

		Expect(p.Vel).To(Equal(before))
	})

	It("gives no push to coincident globs", func() {
		w := newWorld(nil)
		p := w.Spawn(Vec3{100, 100, 100}, 10, RGB{100, 100, 100}, 0)
		w.Spawn(Vec3{100, 100, 100}, 50, RGB{100, 100, 100}, 0)
		before := p.Vel

		w.attract()

		Expect(p.Vel).To(Equal(before))
	})

	It("leaves adequate globs alone", func() {
		w := newWorld(nil)
		p := w.Spawn(Vec3{100, 100, 100}, 40, RGB{100, 100, 100}, 0)
		w.Spawn(Vec3{200, 100, 100}, 50, RGB{100, 100, 100}, 0)
		before := p.Vel

		w.attract()

		Expect(p.Vel).To(Equal(before))
	})
})

var _ = Describe("Nearest", func() {
	It("reports no target for an empty population", func() {
		p := &Particle{Radius: 5}
		q, _ := Nearest(p, nil, 33.3)
		Expect(q).To(BeNil())
	})
})

var _ = Describe("OffspringRange", func() {
	It("grows mildly with the radius ratio", func() {
		lo, hi := OffspringRange(99.9, 99.9)
		Expect(lo).To(Equal(3))
		Expect(hi).To(Equal(8))

		lo, hi = OffspringRange(120, 99.9)
		Expect(lo).To(Equal(3))
		Expect(hi).To(Equal(8))

		lo, hi = OffspringRange(1, 99.9)
		Expect(lo).To(Equal(2))
		Expect(hi).To(Equal(5))
	})
})

var _ = Describe("Convection", func() {
	It("only touches vertical velocity", func() {
		w := newWorld(func(p *Params) { p.Convection = 0.05 })
		p := w.Spawn(Vec3{123.4, 234.5, 345.6}, 40, RGB{100, 100, 100}, 0)
		before := p.Vel

		w.convect()

		Expect(p.Vel.X).To(Equal(before.X))
		Expect(p.Vel.Z).To(Equal(before.Z))
	})

	It("is off by default", func() {
		w := newWorld(nil)
		Expect(w.noise).To(BeNil())
	})
})
