package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Fortune    string
	LeftPane   string
	RightPane  string
	StatusLine string
	ErrorLine  string
	Overlay    string
	Footer     string
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	fortuneStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("13"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	bannerStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("9")).Padding(0, 1)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	lines := []string{headerStyle.Render(data.Header)}
	if data.Fortune != "" {
		lines = append(lines, fortuneStyle.Render(data.Fortune))
	}
	if data.ErrorLine != "" {
		lines = append(lines, bannerStyle.Render(errorStyle.Render(data.ErrorLine)+footerStyle.Render("  [x] dismiss")))
	}

	if data.Overlay != "" {
		lines = append(lines, panelStyle.Width(118).Render(data.Overlay))
	} else {
		left := panelStyle.Width(58).Render(data.LeftPane)
		right := panelStyle.Width(58).Render(data.RightPane)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	}

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}
	lines = append(lines, status)
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderError styles a message for stderr.
func RenderError(msg string) string {
	return errorStyle.Render(msg)
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
