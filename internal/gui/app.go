// Package gui shows a tank in a raylib window.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/globsim/internal/config"
	"github.com/san-kum/globsim/internal/lava"
	"github.com/san-kum/globsim/internal/sim"
)

var (
	ColText    = rl.NewColor(230, 230, 230, 220)
	ColTextDim = rl.NewColor(160, 160, 160, 160)
	ColPanel   = rl.NewColor(0, 0, 0, 110)
)

const maxTelemetry = 400

type App struct {
	Cfg       *config.Config
	Name      string
	Sim       *sim.Simulator
	World     *lava.World
	Seed      int64
	Running   bool
	ShowHUD   bool
	Telemetry []float64
	Err       error
	quit      bool
}

// initWindow opens a window the size of the tank and leaves Esc to Update.
func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Volume.Width), int32(cfg.Volume.Height), "globsim")
	fps := cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(cfg *config.Config, name string) (*App, error) {
	app := &App{
		Cfg:       cfg,
		Name:      name,
		Sim:       sim.New(cfg.Params()),
		Running:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
	}
	if err := app.reseed(cfg.Seed); err != nil {
		return nil, err
	}
	return app, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, name string) error {
	app, err := NewApp(cfg, name)
	if err != nil {
		return err
	}
	initWindow(cfg)
	defer rl.CloseWindow()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) reseed(seed int64) error {
	rc := a.Cfg.RunConfig()
	rc.Seed = seed
	w, err := a.Sim.NewWorld(rc)
	if err != nil {
		a.Err = err
		return err
	}
	a.World, a.Seed, a.Err = w, seed, nil
	a.Telemetry = a.Telemetry[:0]
	return nil
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeyF) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyR) {
		// on failure the current world and seed stay, Err shows in the HUD
		if err := a.reseed(a.Seed + 1); err != nil {
			a.ShowHUD = true
		}
	}

	if !a.Running {
		return
	}
	a.World.Tick()
	a.Telemetry = append(a.Telemetry, float64(a.World.Population()))
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	snap := a.World.Snapshot()

	rl.BeginDrawing()
	rl.ClearBackground(toColor(snap.Background))
	drawFrame(snap)
	if a.ShowHUD {
		a.DrawHUD(snap)
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD(snap lava.Snapshot) {
	rl.DrawRectangle(20, 20, 260, 120, ColPanel)
	rl.DrawText(fmt.Sprintf("globsim :: %s", a.Name), 30, 30, 20, ColText)
	rl.DrawText(fmt.Sprintf("tick %d  seed %d", snap.Tick, a.Seed), 30, 56, 14, ColText)
	rl.DrawText(fmt.Sprintf("globs %d  groups %d", len(snap.Globs), snap.Stats.Groups), 30, 74, 14, ColText)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, 92, 14, ColTextDim)
	if !a.Running {
		rl.DrawText("PAUSED", 200, 92, 14, ColText)
	}
	a.DrawTelemetry()
	if a.Err != nil {
		rl.DrawText(fmt.Sprintf("reseed failed: %v", a.Err), 30, 146, 14, ColText)
	}

	h := int32(rl.GetScreenHeight())
	rl.DrawText("[SPACE] PAUSE  [R] RESEED  [F] FULLSCREEN  [H] HUD  [Q] QUIT", 20, h-24, 14, ColTextDim)
}

// DrawTelemetry plots recent population as a line strip inside the HUD panel.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := float32(30), float32(112)
	width, height := float32(240), float32(22)

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := rectX + float32(i)/float32(len(a.Telemetry))*width
		norm := (val - minVal) / (maxVal - minVal)
		py := rectY + height - float32(norm)*height
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColText)
}
