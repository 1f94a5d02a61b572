package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/globsim/internal/config"
	"github.com/san-kum/globsim/internal/lava"
	"github.com/san-kum/globsim/internal/render"
	"github.com/san-kum/globsim/internal/sim"
)

const (
	defaultWidth    = 60
	defaultHeight   = 22
	sidebarWidth    = 44
	historyCapacity = 600
)

type TickMsg time.Time

// Model is the live terminal view of one tank.
type Model struct {
	cfg        *config.Config
	name       string
	sim        *sim.Simulator
	world      *lava.World
	seed       int64
	canvas     *Canvas
	running    bool
	showHelp   bool
	population []float64
	groups     []float64
	err        error
}

// NewModel seeds a world from cfg. name labels the view.
func NewModel(cfg *config.Config, name string) (Model, error) {
	m := Model{
		cfg:        cfg,
		name:       name,
		sim:        sim.New(cfg.Params()),
		seed:       cfg.Seed,
		canvas:     NewCanvas(defaultWidth, defaultHeight),
		running:    true,
		population: make([]float64, 0, historyCapacity),
		groups:     make([]float64, 0, historyCapacity),
	}
	if err := m.reseed(cfg.Seed); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	fps := m.cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case ".":
			if !m.running {
				m.step()
			}
		case "r":
			if err := m.reseed(m.seed + 1); err != nil {
				m.err = err
			}
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cw, ch := w-sidebarWidth-2, h-1
	if cw < 10 {
		cw = 10
	}
	if ch < 5 {
		ch = 5
	}
	m.canvas = NewCanvas(cw, ch)
}

func (m *Model) reseed(seed int64) error {
	rc := m.cfg.RunConfig()
	rc.Seed = seed
	w, err := m.sim.NewWorld(rc)
	if err != nil {
		return err
	}
	m.world, m.seed = w, seed
	m.population = m.population[:0]
	m.groups = m.groups[:0]
	m.record()
	return nil
}

func (m *Model) step() {
	m.world.Tick()
	m.record()
}

func (m *Model) record() {
	m.population = appendCapped(m.population, float64(m.world.Population()))
	m.groups = appendCapped(m.groups, float64(m.world.Groups().Len()))
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

func (m Model) View() string {
	st := stylesFor(CurrentTheme)
	snap := m.world.Snapshot()

	m.canvas.Draw(render.Project(snap))

	var s strings.Builder
	s.WriteString(st.title.Render(strings.ToUpper(m.name)) + "\n")
	if m.running {
		s.WriteString(st.value.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Tick", fmt.Sprintf("%d", snap.Tick))
	row("Seed", fmt.Sprintf("%d", m.seed))
	row("Globs", fmt.Sprintf("%d", len(snap.Globs)))
	row("Groups", fmt.Sprintf("%d", snap.Stats.Groups))
	row("Merges", fmt.Sprintf("%d", snap.Stats.Merges))
	row("Splits", fmt.Sprintf("%d", snap.Stats.Splits))
	row("Background", snap.Background.Hex())

	hexes := make([]string, len(snap.Globs))
	for i, g := range snap.Globs {
		hexes[i] = g.Color.Hex()
	}
	s.WriteString("\n" + ColorBar(hexes, 36) + "\n")

	if len(m.population) > 1 {
		chart := asciigraph.Plot(m.population, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("population"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + st.paused.Render(m.err.Error()) + "\n")
	}
	s.WriteString(st.help.Render("SP:Pause .:Step R:Reseed\nT:Theme  ?:Help  Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.String(), st.sidebar.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════╗
║        KEYBOARD SHORTCUTS        ║
╠══════════════════════════════════╣
║  Space  - Pause/Resume           ║
║  .      - Step once while paused ║
║  R      - Reseed with next seed  ║
║  T      - Cycle themes           ║
║  Q      - Quit                   ║
║  ?      - Toggle this help       ║
╚══════════════════════════════════╝
` + "\n" + mainView
	}
	return mainView
}

// RunLive opens the live view full screen until the user quits.
func RunLive(cfg *config.Config, name string) error {
	m, err := NewModel(cfg, name)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
