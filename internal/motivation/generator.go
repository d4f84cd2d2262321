package motivation

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sandeepkv93/quantumtodo/internal/productivity"
)

var quotes = []string{
	"Every task you finish collapses one more wave function. Keep observing.",
	"Somewhere in the multiverse you already did it. Catch up with yourself.",
	"Entropy always wins eventually. Not today though.",
	"Mercury may be retrograde, but your to-do list is not.",
	"Small observations add up to a collapsed universe.",
	"You are made of star stuff. Star stuff gets things done.",
	"The best time to start was yesterday. The second best time is this timeline.",
	"Heisenberg was uncertain. You don't have to be.",
	"A task in superposition is still a task. Open the box.",
	"Cosmic rays are aligned enough. Go.",
}

// nudges are keyed by how deep the procrastination runs.
var nudges = map[productivity.ProcrastinationLevel]string{
	productivity.LevelLow:     "You're on a roll.",
	productivity.LevelMedium:  "Halfway through the event horizon.",
	productivity.LevelHigh:    "The list is getting heavy.",
	productivity.LevelQuantum: "Even Schrödinger would open one box.",
}

// Generator draws motivational quotes from a seeded source.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed; seed 0 seeds from the clock.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x94d049bb133111eb))}
}

func (g *Generator) Quote() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return quotes[g.rng.IntN(len(quotes))]
}

// For prefixes a quote with a nudge matching the current productivity.
// An empty task list gets the bare quote.
func (g *Generator) For(p productivity.Data) string {
	q := g.Quote()
	if p.TotalTasks == 0 {
		return q
	}
	if n, ok := nudges[p.ProcrastinationLevel]; ok {
		return n + " " + q
	}
	return q
}
