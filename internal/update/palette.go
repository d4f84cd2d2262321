package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/quantumtodo/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	if msg.Type == tea.KeyRunes {
		m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
		m.Palette.Input = m.commandInput.Value()
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			next = m.addTaskCmd(a.Text)
			return commands.Result{Message: fmt.Sprintf("adding %q", a.Text)}, nil
		},
		Toggle: func(a commands.TargetArgs) (commands.Result, error) {
			if err := m.requireTask(a.ID); err != nil {
				return commands.Result{}, err
			}
			next = m.toggleTaskCmd(a.ID)
			return commands.Result{Message: fmt.Sprintf("observing #%d", a.ID)}, nil
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			if err := m.requireTask(a.ID); err != nil {
				return commands.Result{}, err
			}
			next = m.deleteTaskCmd(a.ID)
			return commands.Result{Message: fmt.Sprintf("deleting #%d", a.ID)}, nil
		},
		Excuse: func(a commands.TargetArgs) (commands.Result, error) {
			if err := m.requireTask(a.ID); err != nil {
				return commands.Result{}, err
			}
			next = m.excuseCmd(a.ID)
			return commands.Result{Message: fmt.Sprintf("drafting an excuse for #%d", a.ID)}, nil
		},
		Clear: func(a commands.ClearArgs) (commands.Result, error) {
			if a.Scope == commands.ClearAll {
				next = m.clearAllCmd()
				return commands.Result{Message: "clearing all tasks"}, nil
			}
			next = m.clearCompletedCmd()
			return commands.Result{Message: "clearing collapsed tasks"}, nil
		},
		Motivate: func() (commands.Result, error) {
			next = m.motivateCmd()
			return commands.Result{Message: "tuning into the motivational field"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, next
}

// requireTask gives palette users feedback that the silent store no-op
// would not.
func (m Model) requireTask(id int) error {
	for _, t := range m.Tasks {
		if t.ID == id {
			return nil
		}
	}
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task #%d in this universe", id)}
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}
