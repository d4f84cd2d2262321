package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/quantumtodo/internal/views"
)

func (m Model) renderTaskView() string {
	items := make([]views.TaskItemData, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		items = append(items, views.TaskItemData{
			ID:               t.ID,
			Text:             t.Text,
			Completed:        t.Completed,
			QuantumState:     string(t.QuantumState),
			LifeMeaningScore: t.LifeMeaningScore,
			Excuses:          t.Excuses,
		})
	}
	selected := 0
	if t, ok := m.selectedTask(); ok {
		selected = t.ID
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		InputView:   m.addInput.View(),
		Adding:      m.Adding,
		Items:       items,
		SelectedID:  selected,
		Loading:     m.Loading,
		SpinnerView: m.loadSpinner.View(),
	})
}

func (m Model) productivityData() views.ProductivityPanelData {
	p := m.Productivity
	return views.ProductivityPanelData{
		TotalTasks:           p.TotalTasks,
		CompletedTasks:       p.CompletedTasks,
		CompletionRate:       p.CompletionRate,
		AverageLifeScore:     p.AverageLifeScore,
		QuantumEfficiency:    p.QuantumEfficiency,
		ProcrastinationLevel: string(p.ProcrastinationLevel),
	}
}

func (m Model) astrologyData() views.AstrologyPanelData {
	a := m.Astrology
	return views.AstrologyPanelData{
		Date:                  a.Date,
		MoonPhase:             string(a.MoonPhase),
		MercuryRetrograde:     a.MercuryRetrograde,
		ProductivityAlignment: a.ProductivityAlignment,
		CosmicInterference:    a.CosmicInterference,
		LuckyColor:            a.LuckyColor,
		LuckyNumber:           a.LuckyNumber,
	}
}

func (m Model) renderProductivityView() string {
	return views.RenderProductivityPanel(m.productivityData())
}

func (m Model) renderAstrologyView() string {
	return views.RenderAstrologyPanel(m.astrologyData())
}

func (m Model) renderGamificationView() string {
	g := m.Gamification
	achievements := make([]views.AchievementData, 0, len(g.Achievements))
	for _, a := range g.Achievements {
		achievements = append(achievements, views.AchievementData{
			Icon:     a.Icon,
			Name:     a.Name,
			Points:   a.Points,
			Unlocked: a.Unlocked,
		})
	}
	pct := 0.0
	if g.Level.NextLevelPoints > 0 {
		span := g.Level.NextLevelPoints - (g.Level.TotalPoints - g.Level.CurrentPoints)
		if span > 0 {
			pct = float64(g.Level.CurrentPoints) / float64(span)
		}
	}
	return views.RenderGamificationPanel(views.GamificationPanelData{
		Level:           g.Level.Current,
		Title:           g.Level.Title,
		TotalPoints:     g.Level.TotalPoints,
		CurrentPoints:   g.Level.CurrentPoints,
		NextLevelPoints: g.Level.NextLevelPoints,
		ProgressView:    m.levelProgress.ViewAs(pct),
		Achievements:    achievements,
	})
}

func (m *Model) openUniverse() {
	m.refreshAstrology()
	md := views.UniverseMarkdown(m.Astrology.DailyFortune, m.astrologyData(), m.productivityData())
	m.universeView.SetContent(views.RenderMarkdown(md))
	m.universeView.GotoTop()
	m.UniverseVisible = true
	m.Status = StatusBar{Text: "the universe has spoken ([esc] to return)"}
}

func (m Model) handleUniverseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", m.Keys.Universe, m.Keys.Quit:
		m.UniverseVisible = false
		m.Status = StatusBar{}
		return m, nil
	}
	var cmd tea.Cmd
	m.universeView, cmd = m.universeView.Update(msg)
	return m, cmd
}
