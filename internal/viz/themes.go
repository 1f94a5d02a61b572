package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the sidebar; the tank itself is always drawn in glob colors.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Graph  lipgloss.Color
	Border lipgloss.Color
	Muted  lipgloss.Color
	Paused lipgloss.Color
}

var (
	ThemeLava = Theme{
		Name:   "lava",
		Title:  lipgloss.Color("#ff6b3d"),
		Label:  lipgloss.Color("#a08070"),
		Value:  lipgloss.Color("#ffd8b0"),
		Graph:  lipgloss.Color("#ff9e64"),
		Border: lipgloss.Color("#553322"),
		Muted:  lipgloss.Color("#665544"),
		Paused: lipgloss.Color("#ffcc00"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Title:  lipgloss.Color("#ffffff"),
		Label:  lipgloss.Color("#888888"),
		Value:  lipgloss.Color("#dddddd"),
		Graph:  lipgloss.Color("#cccccc"),
		Border: lipgloss.Color("#444444"),
		Muted:  lipgloss.Color("#666666"),
		Paused: lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Title:  lipgloss.Color("#00a8cc"),
		Label:  lipgloss.Color("#4488aa"),
		Value:  lipgloss.Color("#e0f0ff"),
		Graph:  lipgloss.Color("#00ff88"),
		Border: lipgloss.Color("#003355"),
		Muted:  lipgloss.Color("#336677"),
		Paused: lipgloss.Color("#ffd700"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Title:  lipgloss.Color("#ff9ff3"),
		Label:  lipgloss.Color("#8b6b8c"),
		Value:  lipgloss.Color("#fff5f5"),
		Graph:  lipgloss.Color("#feca57"),
		Border: lipgloss.Color("#4d2b4e"),
		Muted:  lipgloss.Color("#6b4b6c"),
		Paused: lipgloss.Color("#ffc048"),
	}

	CurrentTheme = ThemeLava

	Themes = []Theme{
		ThemeLava,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to lava.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLava
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
