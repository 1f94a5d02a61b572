package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/globsim/internal/lava"
	"github.com/san-kum/globsim/internal/render"
)

func toColor(c lava.RGB) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}

// drawFrame projects the snapshot, scales it to the window and draws it back
// to front.
func drawFrame(s lava.Snapshot) {
	f := render.Project(s).Fit(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	for _, d := range f.Discs {
		rl.DrawCircleV(rl.NewVector2(float32(d.X), float32(d.Y)), float32(d.Radius), toColor(d.Color))
	}
}
