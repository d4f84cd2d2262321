package excuse

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/sandeepkv93/quantumtodo/internal/model"
)

// Templates containing %q receive the task text.
var templates = []string{
	"Mercury is in retrograde, so %q will have to wait.",
	"I can't do %q, my cat is sitting on the keyboard.",
	"The task exists in a superposition of done and not done. Observing it would collapse the wave function.",
	"My horoscope said to avoid anything resembling %q today.",
	"I was going to start %q, but then I started reorganizing my desktop icons.",
	"The quantum foam was too thick this morning.",
	"%q is a problem for future me. Future me is very capable.",
	"I'm waiting for the cosmic rays to align.",
	"A parallel-universe version of me already finished %q.",
	"My coffee hasn't finished compiling yet.",
	"Technically, %q is on a different timeline.",
	"The entropy of the universe is increasing anyway.",
}

type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed; seed 0 seeds from the clock.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Generator) Generate(task model.Task) string {
	g.mu.Lock()
	tmpl := templates[g.rng.IntN(len(templates))]
	g.mu.Unlock()

	if !strings.Contains(tmpl, "%q") {
		return tmpl
	}
	text := strings.TrimSpace(task.Text)
	if text == "" {
		text = "this task"
	}
	return fmt.Sprintf(tmpl, text)
}
