// Package astrology derives decorative horoscope values from the calendar
// date. Nothing here is astronomically meaningful; the only guarantee is
// that a given date (and seed) always yields the same values.
package astrology

import (
	"math"
	"math/rand/v2"
	"time"
)

type MoonPhase string

const (
	MoonNew            MoonPhase = "New"
	MoonWaxingCrescent MoonPhase = "Waxing Crescent"
	MoonFirstQuarter   MoonPhase = "First Quarter"
	MoonWaxingGibbous  MoonPhase = "Waxing Gibbous"
	MoonFull           MoonPhase = "Full"
	MoonWaningGibbous  MoonPhase = "Waning Gibbous"
	MoonLastQuarter    MoonPhase = "Last Quarter"
	MoonWaningCrescent MoonPhase = "Waning Crescent"
)

var moonPhases = []MoonPhase{
	MoonNew,
	MoonWaxingCrescent,
	MoonFirstQuarter,
	MoonWaxingGibbous,
	MoonFull,
	MoonWaningGibbous,
	MoonLastQuarter,
	MoonWaningCrescent,
}

const synodicMonthDays = 29.530588853

var referenceNewMoon = time.Date(2000, time.January, 6, 0, 0, 0, 0, time.UTC)

var interferenceSources = []string{
	"Solar flare in sector 7G",
	"Neighbor's microwave",
	"Saturn's passive-aggressive rings",
	"Unresolved merge conflicts",
	"Wi-Fi from a parallel universe",
	"Cosmic background radiation",
	"Too many browser tabs",
	"A cat knocking things off the table",
}

var luckyColors = []string{
	"Quantum Purple",
	"Nebula Pink",
	"Dark Matter Black",
	"Supernova Orange",
	"Cherenkov Blue",
	"Event Horizon Grey",
	"Aurora Green",
}

// Chance out of 100 that Mercury is retrograde on a given day.
const retrogradeChance = 20

type Data struct {
	Date                  string
	DailyFortune          string
	MercuryRetrograde     bool
	MoonPhase             MoonPhase
	ProductivityAlignment int
	CosmicInterference    []string
	LuckyColor            string
	LuckyNumber           int
}

type Calculator struct {
	seed uint64
}

func New(seed uint64) Calculator {
	return Calculator{seed: seed}
}

func (c Calculator) Data(now time.Time) Data {
	rng := rand.New(rand.NewPCG(c.seed, dateKey(now)))

	out := Data{
		Date:         now.Format("2006-01-02"),
		DailyFortune: DailyFortune(now),
		MoonPhase:    MoonPhaseFor(now),
	}
	out.MercuryRetrograde = rng.IntN(100) < retrogradeChance
	out.ProductivityAlignment = rng.IntN(101)

	count := 1 + rng.IntN(3)
	perm := rng.Perm(len(interferenceSources))
	out.CosmicInterference = make([]string, 0, count)
	for _, idx := range perm[:count] {
		out.CosmicInterference = append(out.CosmicInterference, interferenceSources[idx])
	}

	out.LuckyColor = luckyColors[rng.IntN(len(luckyColors))]
	out.LuckyNumber = 1 + rng.IntN(99)
	if out.MercuryRetrograde && out.ProductivityAlignment > 50 {
		out.ProductivityAlignment -= 50
	}
	return out
}

// MoonPhaseFor maps the calendar day onto an eighth of the synodic month,
// counted from a reference new moon.
func MoonPhaseFor(now time.Time) MoonPhase {
	days := float64(civilDay(now).Sub(referenceNewMoon) / (24 * time.Hour))
	age := math.Mod(days, synodicMonthDays)
	if age < 0 {
		age += synodicMonthDays
	}
	idx := int(math.Floor(age/synodicMonthDays*float64(len(moonPhases))+0.5)) % len(moonPhases)
	return moonPhases[idx]
}

func MoonPhases() []MoonPhase {
	return append([]MoonPhase(nil), moonPhases...)
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) uint64 {
	y, m, d := t.Date()
	return uint64(y)*10000 + uint64(m)*100 + uint64(d)
}
