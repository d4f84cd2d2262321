package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/quantumtodo/internal/astrology"
	"github.com/sandeepkv93/quantumtodo/internal/gamification"
	"github.com/sandeepkv93/quantumtodo/internal/model"
	"github.com/sandeepkv93/quantumtodo/internal/motivation"
	"github.com/sandeepkv93/quantumtodo/internal/productivity"
	"github.com/sandeepkv93/quantumtodo/internal/store"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add            string
	Toggle         string
	Delete         string
	Excuse         string
	ClearCompleted string
	ClearAll       string
	Dismiss        string
	Universe       string
	Motivate       string
	Help           string
	Quit           string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Deps are the collaborators the shell renders and mutates.
type Deps struct {
	Store            *store.Store
	Tracker          *gamification.Tracker
	Astrology        astrology.Calculator
	AstrologyRefresh time.Duration
	Motivation       *motivation.Generator
	Now              func() time.Time
	Context          context.Context
}

type Model struct {
	Tasks           []model.Task
	Cursor          int
	Adding          bool
	Productivity    productivity.Data
	Astrology       astrology.Data
	Gamification    gamification.Result
	Palette         CommandPaletteState
	HelpVisible     bool
	UniverseVisible bool
	Status          StatusBar
	StoreError      string
	Loading         bool
	Keys            GlobalKeyMap
	Quitting        bool
	LastError       error

	store      *store.Store
	tracker    *gamification.Tracker
	astro      astrology.Calculator
	refresh    time.Duration
	motivation *motivation.Generator
	now        func() time.Time
	ctx        context.Context

	inFlight int

	addInput      textinput.Model
	commandInput  textinput.Model
	loadSpinner   spinner.Model
	levelProgress progress.Model
	helpModel     help.Model
	universeView  viewport.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

// ClearStatusMsg clears the status bar if it still shows Text. An empty
// Text clears unconditionally.
type ClearStatusMsg struct {
	Text string
}

// TaskOpDoneMsg reports a finished store operation.
type TaskOpDoneMsg struct {
	Op      string
	Message string
	Err     error
}

type AstrologyTickMsg struct {
	At time.Time
}

func NewModel(deps Deps) Model {
	if deps.Store == nil {
		deps.Store = store.New(store.Options{})
	}
	if deps.Tracker == nil {
		deps.Tracker = gamification.NewTracker(nil)
	}
	if deps.AstrologyRefresh <= 0 {
		deps.AstrologyRefresh = time.Minute
	}
	if deps.Motivation == nil {
		deps.Motivation = motivation.NewGenerator(0)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	m := Model{
		store:      deps.Store,
		tracker:    deps.Tracker,
		astro:      deps.Astrology,
		refresh:    deps.AstrologyRefresh,
		motivation: deps.Motivation,
		now:        deps.Now,
		ctx:        deps.Context,
		Keys: GlobalKeyMap{
			Add:            "a",
			Toggle:         " ",
			Delete:         "d",
			Excuse:         "e",
			ClearCompleted: "c",
			ClearAll:       "C",
			Dismiss:        "x",
			Universe:       "u",
			Motivate:       "m",
			Help:           "?",
			Quit:           "q",
		},
	}
	m.initBubbleComponents()
	m.refreshTasks()
	m.refreshAstrology()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "what will you not do today?"
	m.addInput.CharLimit = 256
	m.addInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.loadSpinner = spinner.New()
	m.loadSpinner.Spinner = spinner.Dot

	m.levelProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	m.helpModel = help.New()
	m.universeView = viewport.New(112, 20)
}
