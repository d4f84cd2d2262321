package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/quantumtodo/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.globalBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Add, Action: "add a task (enter submits, esc cancels)"},
		{Key: "j/k", Action: "move selection"},
		{Key: "space", Action: "observe (toggle) selected task"},
		{Key: m.Keys.Delete, Action: "delete selected task"},
		{Key: m.Keys.Excuse, Action: "generate an excuse"},
		{Key: m.Keys.ClearCompleted, Action: "clear collapsed tasks"},
		{Key: m.Keys.ClearAll, Action: "clear all tasks"},
		{Key: m.Keys.Dismiss, Action: "dismiss error"},
		{Key: m.Keys.Universe, Action: "consult the universe"},
		{Key: m.Keys.Motivate, Action: "draw a motivational quote"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
