package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID               int
	Text             string
	Completed        bool
	QuantumState     string
	LifeMeaningScore float64
	Excuses          []string
}

type TaskPanelData struct {
	InputView   string
	Adding      bool
	Items       []TaskItemData
	SelectedID  int
	Loading     bool
	SpinnerView string
}

type ProductivityPanelData struct {
	TotalTasks           int
	CompletedTasks       int
	CompletionRate       float64
	AverageLifeScore     float64
	QuantumEfficiency    float64
	ProcrastinationLevel string
}

type AstrologyPanelData struct {
	Date                  string
	MoonPhase             string
	MercuryRetrograde     bool
	ProductivityAlignment int
	CosmicInterference    []string
	LuckyColor            string
	LuckyNumber           int
}

type AchievementData struct {
	Icon     string
	Name     string
	Points   int
	Unlocked bool
}

type GamificationPanelData struct {
	Level           int
	Title           string
	TotalPoints     int
	CurrentPoints   int
	NextLevelPoints int
	ProgressView    string
	Achievements    []AchievementData
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if data.Adding {
		b.WriteString(data.InputView + "\n")
	} else {
		b.WriteString("actions: [a]add [space]toggle [d]delete [e]excuse [c/C]clear\n")
	}
	if data.Loading {
		b.WriteString(data.SpinnerView + " consulting the quantum field...\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("\n(no tasks in this universe yet)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if item.ID == data.SelectedID {
			cursor = ">"
		}
		check := "[ ]"
		text := item.Text
		if item.Completed {
			check = "[x]"
			text = doneStyle.Render(text)
		}
		b.WriteString(fmt.Sprintf("\n%s %s #%d %s\n", cursor, check, item.ID, text))
		b.WriteString(fmt.Sprintf("      %s %s | meaning %.0f%%\n", stateBadge(item.QuantumState), item.QuantumState, item.LifeMeaningScore))
		for _, e := range item.Excuses {
			b.WriteString("      - " + e + "\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderProductivityPanel(data ProductivityPanelData) string {
	var b strings.Builder
	b.WriteString("productivity:\n")
	b.WriteString(fmt.Sprintf("tasks: %d total, %d collapsed\n", data.TotalTasks, data.CompletedTasks))
	b.WriteString(fmt.Sprintf("completion: %.0f%%\n", data.CompletionRate))
	b.WriteString(fmt.Sprintf("avg life meaning: %.1f\n", data.AverageLifeScore))
	b.WriteString(fmt.Sprintf("quantum efficiency: %.1f\n", data.QuantumEfficiency))
	b.WriteString(fmt.Sprintf("procrastination: %s", data.ProcrastinationLevel))
	return b.String()
}

func RenderAstrologyPanel(data AstrologyPanelData) string {
	var b strings.Builder
	b.WriteString("astrology:\n")
	b.WriteString(fmt.Sprintf("moon: %s\n", data.MoonPhase))
	mercury := "direct"
	if data.MercuryRetrograde {
		mercury = "RETROGRADE"
	}
	b.WriteString(fmt.Sprintf("mercury: %s\n", mercury))
	b.WriteString(fmt.Sprintf("alignment: %d%%\n", data.ProductivityAlignment))
	b.WriteString(fmt.Sprintf("lucky: %s / %d\n", data.LuckyColor, data.LuckyNumber))
	if len(data.CosmicInterference) > 0 {
		b.WriteString("interference: " + strings.Join(data.CosmicInterference, ", "))
	} else {
		b.WriteString("interference: none detected")
	}
	return b.String()
}

func RenderGamificationPanel(data GamificationPanelData) string {
	var b strings.Builder
	b.WriteString("gamification:\n")
	b.WriteString(fmt.Sprintf("level %d: %s (%d pts)\n", data.Level, data.Title, data.TotalPoints))
	if data.NextLevelPoints > 0 {
		b.WriteString(fmt.Sprintf("%s %d/%d\n", data.ProgressView, data.TotalPoints, data.NextLevelPoints))
	} else {
		b.WriteString("max level reached\n")
	}
	for _, a := range data.Achievements {
		mark := "·"
		if a.Unlocked {
			mark = a.Icon
		}
		b.WriteString(fmt.Sprintf("%s %s (%d)\n", mark, a.Name, a.Points))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s", strings.Join(data.Bindings, "\n"), data.HelpView)
}

// UniverseMarkdown is the "consult the universe" report shown through glamour.
func UniverseMarkdown(fortune string, astro AstrologyPanelData, prod ProductivityPanelData) string {
	var b strings.Builder
	b.WriteString("# The Universe Has Spoken\n\n")
	b.WriteString(fmt.Sprintf("> %s\n\n", fortune))
	b.WriteString(fmt.Sprintf("## %s\n\n", astro.Date))
	b.WriteString(fmt.Sprintf("- **Moon phase:** %s\n", astro.MoonPhase))
	if astro.MercuryRetrograde {
		b.WriteString("- **Mercury:** retrograde. Blame it for everything.\n")
	} else {
		b.WriteString("- **Mercury:** direct. No excuses today.\n")
	}
	b.WriteString(fmt.Sprintf("- **Productivity alignment:** %d%%\n", astro.ProductivityAlignment))
	b.WriteString(fmt.Sprintf("- **Lucky color:** %s\n", astro.LuckyColor))
	b.WriteString(fmt.Sprintf("- **Lucky number:** %d\n", astro.LuckyNumber))
	if len(astro.CosmicInterference) > 0 {
		b.WriteString("\n## Cosmic interference\n\n")
		for _, src := range astro.CosmicInterference {
			b.WriteString("- " + src + "\n")
		}
	}
	b.WriteString("\n## Your standing\n\n")
	b.WriteString(fmt.Sprintf("Completion is at **%.0f%%** with a quantum efficiency of **%.1f**. ", prod.CompletionRate, prod.QuantumEfficiency))
	b.WriteString(fmt.Sprintf("Procrastination level: _%s_.\n", prod.ProcrastinationLevel))
	return b.String()
}

func stateBadge(state string) string {
	switch state {
	case "collapsed":
		return "[GREEN]"
	case "entangled":
		return "[YELLOW]"
	default:
		return "[BLUE]"
	}
}
