package lava

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("World", func() {
	Describe("New", func() {
		It("rejects a flat volume", func() {
			p := DefaultParams()
			p.Width = 0
			_, err := New(p, 1)
			Expect(err).To(MatchError(ErrEmptyVolume))
		})

		It("names the offending parameter", func() {
			p := DefaultParams()
			p.SplitProb = 2
			_, err := New(p, 1)
			Expect(errors.Is(err, ErrInvalidParams)).To(BeTrue())

			var perr *ParamError
			Expect(errors.As(err, &perr)).To(BeTrue())
			Expect(perr.Field).To(Equal("split_prob"))
		})
	})

	Describe("Seed", func() {
		It("places every glob inside the padded volume in its own group", func() {
			w := newWorld(nil)
			w.Seed(50, 400, 300, 350)

			Expect(w.Population()).To(Equal(50))
			Expect(w.Groups().Len()).To(Equal(50))

			m := w.params.MinRadius
			for _, p := range w.population {
				Expect(p.Pos.X).To(BeNumerically(">=", m))
				Expect(p.Pos.X).To(BeNumerically("<=", 800-m))
				Expect(p.Pos.Y).To(BeNumerically(">=", m))
				Expect(p.Pos.Y).To(BeNumerically("<=", 600-m))
				Expect(p.Pos.Z).To(BeNumerically(">=", m))
				Expect(p.Pos.Z).To(BeNumerically("<=", 700-m))
				Expect(p.Radius).To(BeNumerically(">=", m))
				Expect(p.Radius).To(BeNumerically("<=", w.params.MaxRadius))
				Expect(w.Groups().Size(p.Group)).To(Equal(1))
			}
			expectPartition(w)
		})

		It("keeps rejection samples inside a tight ellipsoid", func() {
			w := newWorld(nil)
			for i := 0; i < 200; i++ {
				pt := w.RandomPoint(0.5, 0.5, 0.5)
				Expect(pt.X).To(BeNumerically("~", 400, 0.5))
				Expect(pt.Y).To(BeNumerically("~", 300, 0.5))
				Expect(pt.Z).To(BeNumerically("~", 350, 0.5))
			}
		})
	})

	Describe("Tick", func() {
		It("keeps positions wrapped and the group partition intact", func() {
			w := newWorld(nil)
			w.Seed(80, 400, 300, 350)
			for i := 0; i < 300; i++ {
				w.Tick()
				for _, p := range w.population {
					Expect(p.Pos.X).To(And(BeNumerically(">=", 0), BeNumerically("<", 800)))
					Expect(p.Pos.Y).To(And(BeNumerically(">=", 0), BeNumerically("<", 600)))
					Expect(p.Pos.Z).To(And(BeNumerically(">=", 0), BeNumerically("<", 700)))
					Expect(p.Radius).To(BeNumerically(">=", 1))
					Expect(p.GlobHint).To(Equal(w.Population()))
				}
				expectPartition(w)
			}
			Expect(w.Ticks()).To(Equal(300))
		})

		It("is reproducible for a fixed seed", func() {
			a := newWorld(nil)
			b := newWorld(nil)
			a.Seed(40, 400, 300, 350)
			b.Seed(40, 400, 300, 350)
			for i := 0; i < 120; i++ {
				a.Tick()
				b.Tick()
			}
			Expect(a.Snapshot()).To(Equal(b.Snapshot()))
		})

		It("tolerates an empty population", func() {
			w := newWorld(nil)
			w.Tick()
			snap := w.Snapshot()
			Expect(snap.Globs).To(BeEmpty())
			Expect(snap.Background).To(Equal(Black))
		})

		It("removes a glob drained by a contact", func() {
			w := newWorld(func(p *Params) { p.Transfer = 1 })
			a := w.Spawn(Vec3{400, 300, 350}, 50, RGB{200, 100, 100}, 0)
			b := w.Spawn(Vec3{400, 300, 350}, 10, RGB{100, 200, 100}, 0)
			a.Vel, b.Vel = Vec3{}, Vec3{}

			w.Tick()

			Expect(w.Population()).To(Equal(1))
			Expect(w.population[0].ID).To(Equal(a.ID))
			Expect(a.Radius).To(BeNumerically("~", 60, 1e-9))
			Expect(b.Alive()).To(BeFalse())
			Expect(w.Stats().Merges).To(Equal(1))
			expectPartition(w)
		})

		It("splits an overgrown glob into siblings", func() {
			w := newWorld(nil)
			parent := w.Spawn(Vec3{400, 300, 350}, 120, RGB{150, 150, 150}, 0)
			parent.SplitProb = 1
			group := parent.Group

			w.Tick()

			lo, hi := OffspringRange(120, w.params.MaxRadius)
			Expect(w.Population()).To(And(BeNumerically(">=", lo), BeNumerically("<=", hi)))
			Expect(parent.Alive()).To(BeFalse())

			sum := 0.0
			for _, kid := range w.population {
				Expect(kid.Group).To(Equal(group))
				Expect(kid.SplitProb).To(Equal(1.0))
				sum += kid.Radius
			}
			Expect(sum).To(BeNumerically("~", 120, 1e-6))
			Expect(w.Groups().Size(group)).To(Equal(w.Population()))
			Expect(w.Stats().Splits).To(Equal(1))
		})

		It("keeps offspring out of the tick they are born in", func() {
			// a 10 unit volume wraps every offspring onto the bystander
			w := newWorld(func(p *Params) {
				p.Width, p.Height, p.Depth = 10, 10, 10
				p.Transfer = 0.1
			})
			parent := w.Spawn(Vec3{5, 5, 6}, 120, RGB{150, 150, 150}, 0)
			bystander := w.Spawn(Vec3{5, 5, 4}, 60, RGB{20, 200, 40}, 0)
			parent.Vel, bystander.Vel = Vec3{}, Vec3{}
			parent.SplitProb = 1

			w.Tick()

			Expect(parent.Alive()).To(BeFalse())
			Expect(w.Stats().Contacts).To(Equal(1))
			Expect(bystander.Radius).To(BeNumerically("~", 54, 1e-9))
			Expect(bystander.Color).To(Equal(RGB{20, 200, 40}))

			k := w.Stats().Offspring
			Expect(w.Population()).To(Equal(k + 1))
			for _, kid := range w.population {
				if kid == bystander {
					continue
				}
				Expect(kid.Radius).To(BeNumerically("~", 126/float64(k), 1e-9))
			}
		})

		It("never splits a glob without split propensity", func() {
			w := newWorld(nil)
			p := w.Spawn(Vec3{400, 300, 350}, 150, RGB{150, 150, 150}, 0)
			p.SplitProb = 0
			for i := 0; i < 50; i++ {
				w.Tick()
			}
			Expect(w.Population()).To(Equal(1))
			Expect(p.Alive()).To(BeTrue())
		})

		It("never splits a glob at or below the max radius", func() {
			w := newWorld(nil)
			p := w.Spawn(Vec3{400, 300, 350}, w.params.MaxRadius, RGB{150, 150, 150}, 0)
			p.SplitProb = 1
			w.Tick()
			Expect(w.Population()).To(Equal(1))
		})

		It("does not split once the population cap is reached", func() {
			w := newWorld(func(p *Params) { p.MaxGlobs = 1 })
			p := w.Spawn(Vec3{400, 300, 350}, 150, RGB{150, 150, 150}, 0)
			p.SplitProb = 1
			w.Tick()
			Expect(w.Population()).To(Equal(1))
		})
	})

	Describe("Cull", func() {
		It("is idempotent", func() {
			w := newWorld(nil)
			w.Spawn(Vec3{10, 10, 10}, 0.5, RGB{100, 100, 100}, 0)
			w.Spawn(Vec3{500, 500, 500}, 40, RGB{100, 100, 100}, 0)

			Expect(w.Cull()).To(Equal(1))
			Expect(w.Cull()).To(Equal(0))
			Expect(w.Population()).To(Equal(1))
			expectPartition(w)
		})
	})

	Describe("Snapshot", func() {
		It("orders globs far to near", func() {
			w := newWorld(nil)
			w.Seed(30, 400, 300, 350)
			w.Tick()
			snap := w.Snapshot()
			Expect(snap.Globs).To(HaveLen(w.Population()))
			for i := 1; i < len(snap.Globs); i++ {
				Expect(snap.Globs[i-1].Pos.Z).To(BeNumerically(">=", snap.Globs[i].Pos.Z))
			}
		})

		It("is detached from the world", func() {
			w := newWorld(nil)
			w.Spawn(Vec3{100, 100, 100}, 40, RGB{100, 100, 100}, 0)
			snap := w.Snapshot()
			snap.Globs[0].Radius = 1000
			Expect(w.population[0].Radius).To(Equal(40.0))
		})
	})
})
