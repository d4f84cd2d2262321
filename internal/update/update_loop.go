package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/quantumtodo/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.astrologyTickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Adding {
			return m.handleAddKey(typed)
		}
		if m.UniverseVisible {
			return m.handleUniverseKey(typed)
		}
		return m.handleKey(typed)
	case spinner.TickMsg:
		if m.inFlight > 0 {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case TaskOpDoneMsg:
		return m.onTaskOpDone(typed), nil
	case AstrologyTickMsg:
		m.refreshAstrology()
		return m, m.astrologyTickCmd()
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		if typed.Text == "" || m.Status.Text == typed.Text {
			m.Status = StatusBar{}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Add:
		m.Adding = true
		m.addInput.SetValue("")
		cmd := m.addInput.Focus()
		return m, cmd
	case "j", "down":
		if m.Cursor < len(m.Tasks)-1 {
			m.Cursor++
		}
		return m, nil
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case m.Keys.Toggle:
		if t, ok := m.selectedTask(); ok {
			cmd := m.toggleTaskCmd(t.ID)
			return m, cmd
		}
		return m, nil
	case m.Keys.Delete:
		if t, ok := m.selectedTask(); ok {
			cmd := m.deleteTaskCmd(t.ID)
			return m, cmd
		}
		return m, nil
	case m.Keys.Excuse:
		if t, ok := m.selectedTask(); ok {
			cmd := m.excuseCmd(t.ID)
			return m, cmd
		}
		return m, nil
	case m.Keys.ClearCompleted:
		cmd := m.clearCompletedCmd()
		return m, cmd
	case m.Keys.ClearAll:
		cmd := m.clearAllCmd()
		return m, cmd
	case m.Keys.Dismiss:
		m.store.DismissError()
		m.StoreError = ""
		m.Status = StatusBar{Text: "error dismissed"}
		return m, nil
	case m.Keys.Universe:
		m.openUniverse()
		return m, nil
	case m.Keys.Motivate:
		cmd := m.motivateCmd()
		return m, cmd
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Adding = false
		m.addInput.Blur()
		m.addInput.SetValue("")
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.addInput.Value())
		m.Adding = false
		m.addInput.Blur()
		m.addInput.SetValue("")
		if text == "" {
			m.Status = StatusBar{Text: "task text must not be empty", IsError: true}
			return m, nil
		}
		cmd := m.addTaskCmd(text)
		return m, cmd
	}
	if msg.Type == tea.KeyRunes {
		m.addInput.SetValue(m.addInput.Value() + string(msg.Runes))
		return m, nil
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	overlay := ""
	if m.UniverseVisible {
		overlay = m.universeView.View()
	}
	right := strings.Join([]string{
		m.renderProductivityView(),
		m.renderAstrologyView(),
		m.renderGamificationView(),
	}, "\n\n")
	if m.HelpVisible {
		right = m.renderHelpView()
	}
	left := m.renderTaskView()
	if m.Palette.Active {
		left = left + "\n\n" + views.RenderCommandPalette(true, m.commandInput.View())
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("quantum todo | %s | level %d %s", m.Astrology.Date, m.Gamification.Level.Current, m.Gamification.Level.Title),
		Fortune:    m.Astrology.DailyFortune,
		LeftPane:   left,
		RightPane:  right,
		StatusLine: status,
		ErrorLine:  m.StoreError,
		Overlay:    overlay,
		Footer: fmt.Sprintf("keys: %s add | space toggle | %s delete | %s excuse | %s/%s clear | %s universe | %s motivate | / cmd | %s help | %s quit",
			m.Keys.Add, m.Keys.Delete, m.Keys.Excuse, m.Keys.ClearCompleted, m.Keys.ClearAll, m.Keys.Universe, m.Keys.Motivate, m.Keys.Help, m.Keys.Quit),
	})
}
