package lava

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Color", func() {
	It("keeps blended channels in range", func() {
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 500; i++ {
			a := RGB{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
			b := RGB{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
			got := BlendArea(a, rng.Float64()*100, b, rng.Float64()*100)
			for j, ch := range got.channels() {
				lo, hi := int(a.channels()[j]), int(b.channels()[j])
				if lo > hi {
					lo, hi = hi, lo
				}
				// truncation may land one below an equal pair
				Expect(int(ch)).To(And(BeNumerically(">=", lo-1), BeNumerically("<=", hi)))
			}
		}
	})

	It("never brightens a blend of identical colors", func() {
		rng := rand.New(rand.NewSource(9))
		c := RGB{101, 57, 230}
		for i := 0; i < 200; i++ {
			got := BlendArea(c, 1+rng.Float64()*100, c, 1+rng.Float64()*100)
			for j, ch := range got.channels() {
				want := int(c.channels()[j])
				Expect(int(ch)).To(And(BeNumerically(">=", want-1), BeNumerically("<=", want)))
			}
		}
	})

	It("weights the blend by area", func() {
		got := BlendArea(RGB{255, 0, 0}, 1, RGB{0, 0, 255}, 1)
		Expect(got).To(Equal(RGB{127, 0, 127}))
	})

	It("clamps mutations to the floor and white", func() {
		rng := rand.New(rand.NewSource(5))
		for i := 0; i < 500; i++ {
			got := Mutate(rng, RGB{10, 128, 250}, 128, 64)
			for _, ch := range got.channels() {
				Expect(ch).To(BeNumerically(">=", 64))
			}
		}
	})

	It("draws seed colors from the bright range", func() {
		rng := rand.New(rand.NewSource(9))
		for i := 0; i < 200; i++ {
			for _, ch := range RandomColor(rng).channels() {
				Expect(ch).To(BeNumerically(">=", 100))
			}
		}
	})

	Describe("Background", func() {
		It("is black for no globs", func() {
			Expect(Background(nil)).To(Equal(Black))
		})

		It("inverts saturation and value", func() {
			Expect(Background([]RGB{{0, 0, 0}})).To(Equal(RGB{255, 0, 0}))
			Expect(Background([]RGB{{255, 0, 0}})).To(Equal(Black))
		})

		It("averages hue around the circle", func() {
			// hues near 349 and 11 meet at red; a plain mean would give cyan
			bg := Background([]RGB{{200, 90, 110}, {200, 110, 90}})
			Expect(int(bg.R)).To(BeNumerically("~", 55, 1))
			Expect(int(bg.G)).To(BeNumerically("~", int(bg.B), 1))
			Expect(int(bg.R)).To(BeNumerically(">", int(bg.G)+10))
		})
	})

	It("formats hex", func() {
		Expect(RGB{255, 16, 0}.Hex()).To(Equal("#ff1000"))
	})
})
