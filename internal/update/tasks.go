package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/quantumtodo/internal/model"
	"github.com/sandeepkv93/quantumtodo/internal/productivity"
	"github.com/sandeepkv93/quantumtodo/internal/store"
)

const motivationTTL = 8 * time.Second

// runOp runs fn off the update loop and reports back with TaskOpDoneMsg.
// The spinner starts with the first in-flight op.
func (m *Model) runOp(op, message string, fn func(ctx context.Context, s *store.Store) error) tea.Cmd {
	ctx, s := m.ctx, m.store
	m.inFlight++
	m.Loading = true
	opCmd := func() tea.Msg {
		return TaskOpDoneMsg{Op: op, Message: message, Err: fn(ctx, s)}
	}
	if m.inFlight == 1 {
		return tea.Batch(opCmd, m.loadSpinner.Tick)
	}
	return opCmd
}

func (m *Model) addTaskCmd(text string) tea.Cmd {
	return m.runOp(store.OpAdd, "", func(ctx context.Context, s *store.Store) error {
		_, err := s.AddTask(ctx, text)
		return err
	})
}

func (m *Model) toggleTaskCmd(id int) tea.Cmd {
	return m.runOp(store.OpToggle, fmt.Sprintf("task #%d observed", id), func(ctx context.Context, s *store.Store) error {
		return s.ToggleTask(ctx, id)
	})
}

func (m *Model) deleteTaskCmd(id int) tea.Cmd {
	return m.runOp(store.OpDelete, fmt.Sprintf("task #%d left this universe", id), func(ctx context.Context, s *store.Store) error {
		return s.DeleteTask(ctx, id)
	})
}

func (m *Model) excuseCmd(id int) tea.Cmd {
	return m.runOp(store.OpExcuse, fmt.Sprintf("excuse generated for #%d", id), func(ctx context.Context, s *store.Store) error {
		return s.GenerateExcuse(ctx, id)
	})
}

func (m *Model) clearCompletedCmd() tea.Cmd {
	return m.runOp(store.OpClearCompleted, "collapsed tasks cleared", func(ctx context.Context, s *store.Store) error {
		return s.ClearCompletedTasks(ctx)
	})
}

func (m *Model) clearAllCmd() tea.Cmd {
	return m.runOp(store.OpClearAll, "all tasks cleared", func(ctx context.Context, s *store.Store) error {
		return s.ClearAllTasks(ctx)
	})
}

// loadCmd is issued from Init, which cannot record the op as in flight.
func (m Model) loadCmd() tea.Cmd {
	ctx, s := m.ctx, m.store
	return func() tea.Msg {
		return TaskOpDoneMsg{Op: store.OpLoad, Err: s.Load(ctx)}
	}
}

func (m Model) onTaskOpDone(msg TaskOpDoneMsg) Model {
	// loadCmd is never counted in inFlight.
	if msg.Op != store.OpLoad && m.inFlight > 0 {
		m.inFlight--
	}
	m.refreshTasks()
	switch {
	case msg.Err != nil && store.IsValidation(msg.Err):
		m.Status = StatusBar{Text: msg.Err.Error(), IsError: true}
	case msg.Err != nil:
		m.LastError = msg.Err
		m.Status = StatusBar{Text: fmt.Sprintf("%s failed", msg.Op), IsError: true}
	case msg.Op == store.OpAdd:
		if n := len(m.Tasks); n > 0 {
			last := m.Tasks[n-1]
			m.Cursor = n - 1
			m.Status = StatusBar{Text: fmt.Sprintf("added #%d in superposition", last.ID)}
		}
	case strings.TrimSpace(msg.Message) != "":
		m.Status = StatusBar{Text: msg.Message}
	}
	m.announceUnlocks()
	return m
}

// refreshTasks re-reads the store snapshot and recomputes derived panels.
func (m *Model) refreshTasks() {
	m.Tasks = m.store.Tasks()
	m.Loading = m.inFlight > 0 || m.store.IsLoading()
	m.StoreError = m.store.Error()
	if m.Cursor >= len(m.Tasks) {
		m.Cursor = len(m.Tasks) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.Productivity = productivity.Calculate(m.Tasks)

	res, err := m.tracker.Data(m.ctx, m.Tasks, m.now())
	m.Gamification = res
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
}

func (m *Model) announceUnlocks() {
	if len(m.Gamification.NewlyUnlocked) == 0 {
		return
	}
	names := make([]string, 0, len(m.Gamification.NewlyUnlocked))
	for _, a := range m.Gamification.NewlyUnlocked {
		names = append(names, a.Icon+" "+a.Name)
	}
	m.Status = StatusBar{Text: "achievement unlocked: " + strings.Join(names, ", ")}
}

func (m *Model) refreshAstrology() {
	m.Astrology = m.astro.Data(m.now())
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return model.Task{}, false
	}
	return m.Tasks[m.Cursor], true
}

func (m Model) astrologyTickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return AstrologyTickMsg{At: t} })
}

// motivateCmd shows a quote and clears it after motivationTTL unless the
// status bar has moved on.
func (m Model) motivateCmd() tea.Cmd {
	text := m.motivation.For(m.Productivity)
	return tea.Batch(
		func() tea.Msg { return SetStatusMsg{Text: text} },
		tea.Tick(motivationTTL, func(time.Time) tea.Msg { return ClearStatusMsg{Text: text} }),
	)
}
