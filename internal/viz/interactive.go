package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/globsim/internal/config"
)

var (
	heading = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b3d")).Bold(true)
	sub     = lipgloss.NewStyle().Foreground(lipgloss.Color("#665544"))
	pointer = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9e64")).Bold(true)
	active  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	accent  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd8b0"))
	idle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyName = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9e64")).Bold(true)
)

var presetInfo = map[string]string{
	"lavalamp":   "the classic tank",
	"calm":       "few slow globs",
	"volatile":   "frequent splits",
	"convection": "rising currents",
	"sparse":     "a handful of globs",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// field is one tunable knob on the config screen.
type field struct {
	name string
	step float64
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var fields = []field{
	{"globs", 1,
		func(c *config.Config) float64 { return float64(c.Globs) },
		func(c *config.Config, v float64) { c.Globs = int(v) }},
	{"seed", 1,
		func(c *config.Config) float64 { return float64(c.Seed) },
		func(c *config.Config, v float64) { c.Seed = int64(v) }},
	{"split_prob", 0.05,
		func(c *config.Config) float64 { return c.Split.Prob },
		func(c *config.Config, v float64) { c.Split.Prob = v }},
	{"max_globs", 10,
		func(c *config.Config) float64 { return float64(c.Split.MaxGlobs) },
		func(c *config.Config, v float64) { c.Split.MaxGlobs = int(v) }},
	{"transfer", 0.0001,
		func(c *config.Config) float64 { return c.Motion.Transfer },
		func(c *config.Config, v float64) { c.Motion.Transfer = v }},
	{"convection", 0.01,
		func(c *config.Config) float64 { return c.Motion.Convection },
		func(c *config.Config, v float64) { c.Motion.Convection = v }},
	{"fps", 5,
		func(c *config.Config) float64 { return float64(c.FPS) },
		func(c *config.Config, v float64) { c.FPS = int(v) }},
}

type model struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	fieldCursor   int
	editing       bool
	editBuf       string
	err           error
	width, height int
	liveModel     Model
}

func NewInteractiveApp() *model {
	return &model{
		state:   stateMenu,
		presets: config.ListPresets(),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateSim {
			m.liveModel.resize(msg.Width, msg.Height)
		}
		return m, nil
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.state, m.fieldCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	f := fields[m.fieldCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				f.set(m.cfg, v)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(fields)-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, formatField(f.get(m.cfg))
	case "left", "h":
		f.set(m.cfg, f.get(m.cfg)-f.step)
	case "right", "l":
		f.set(m.cfg, f.get(m.cfg)+f.step)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m model) start() (model, tea.Cmd) {
	if err := m.cfg.Params().Validate(); err != nil {
		m.err = err
		return m, nil
	}
	live, err := NewModel(m.cfg, m.selected)
	if err != nil {
		m.err = err
		return m, nil
	}
	if m.width > 0 {
		live.resize(m.width, m.height)
	}
	m.liveModel, m.state = live, stateSim
	return m, m.liveModel.Init()
}

func formatField(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyName.Render(pairs[i]) + idle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + heading.Render("GLOBSIM") + "\n    " + sub.Render("lava lamp in a terminal") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", pointer.Render("▸"), active.Render(fmt.Sprintf("%-12s", name)), accent.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idle.Render(fmt.Sprintf("  %-12s", name)), idle.Render(desc)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + heading.Render(strings.ToUpper(m.selected)) + "\n    " + sub.Render(presetInfo[m.selected]) + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, f := range fields {
		valStr := fmt.Sprintf("%10s", formatField(f.get(m.cfg)))
		if m.editing && i == m.fieldCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", pointer.Render("▸"), active.Render(fmt.Sprintf("%-12s", f.name)), accent.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idle.Render(fmt.Sprintf("  %-12s", f.name)), idle.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + pointer.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	return err
}
