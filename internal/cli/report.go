package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/quantumtodo/internal/productivity"
)

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show productivity and gamification stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime, out io.Writer) error {
				p := productivity.Calculate(rt.store.Tasks())
				g, err := rt.gamification(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, titleStyle.Render("productivity"))
				fmt.Fprintf(out, "  tasks:              %d total, %d collapsed\n", p.TotalTasks, p.CompletedTasks)
				fmt.Fprintf(out, "  completion:         %.0f%%\n", p.CompletionRate)
				fmt.Fprintf(out, "  avg life meaning:   %.1f\n", p.AverageLifeScore)
				fmt.Fprintf(out, "  quantum efficiency: %.1f\n", p.QuantumEfficiency)
				fmt.Fprintf(out, "  procrastination:    %s\n", p.ProcrastinationLevel)

				fmt.Fprintln(out, titleStyle.Render("gamification"))
				lvl := g.Level
				fmt.Fprintf(out, "  level %d: %s (%d pts)\n", lvl.Current, lvl.Title, lvl.TotalPoints)
				if lvl.NextLevelPoints > 0 {
					fmt.Fprintf(out, "  next level at %d pts\n", lvl.NextLevelPoints)
				}
				for _, a := range g.Achievements {
					if a.Unlocked {
						fmt.Fprintf(out, "  %s %s\n", a.Icon, goldStyle.Render(a.Name))
					} else {
						fmt.Fprintf(out, "  %s\n", mutedStyle.Render("· "+a.Name+": "+a.Description))
					}
				}
				return nil
			})
		},
	}
}

func newHoroscopeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "horoscope",
		Short: "Consult the universe for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime, out io.Writer) error {
				a := rt.astrology.Data(rt.now())
				fmt.Fprintln(out, titleStyle.Render("horoscope for "+a.Date))
				fmt.Fprintf(out, "  %s\n", goldStyle.Render(a.DailyFortune))
				fmt.Fprintf(out, "  moon:         %s\n", a.MoonPhase)
				if a.MercuryRetrograde {
					fmt.Fprintf(out, "  mercury:      %s\n", warnStyle.Render("retrograde"))
				} else {
					fmt.Fprintln(out, "  mercury:      direct")
				}
				fmt.Fprintf(out, "  alignment:    %d%%\n", a.ProductivityAlignment)
				fmt.Fprintf(out, "  interference: %s\n", strings.Join(a.CosmicInterference, ", "))
				fmt.Fprintf(out, "  lucky:        %s / %d\n", a.LuckyColor, a.LuckyNumber)
				return nil
			})
		},
	}
}

func newMotivateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "motivate",
		Short: "Draw a motivational quote tuned to your progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime, out io.Writer) error {
				p := productivity.Calculate(rt.store.Tasks())
				fmt.Fprintln(out, goldStyle.Render(rt.motivation.For(p)))
				return nil
			})
		},
	}
}

type exportTask struct {
	ID               int        `yaml:"id"`
	Text             string     `yaml:"text"`
	Completed        bool       `yaml:"completed"`
	LifeMeaningScore float64    `yaml:"life_meaning_score"`
	QuantumState     string     `yaml:"quantum_state"`
	Excuses          []string   `yaml:"excuses,omitempty"`
	CreatedAt        time.Time  `yaml:"created_at"`
	CompletedAt      *time.Time `yaml:"completed_at,omitempty"`
}

type exportDocument struct {
	ExportedAt   time.Time         `yaml:"exported_at"`
	Tasks        []exportTask      `yaml:"tasks"`
	Productivity productivity.Data `yaml:"productivity"`
	Level        exportLevel       `yaml:"level"`
	Achievements []string          `yaml:"achievements"`
}

type exportLevel struct {
	Current     int    `yaml:"current"`
	Title       string `yaml:"title"`
	TotalPoints int    `yaml:"total_points"`
}

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write tasks and stats as YAML to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime, out io.Writer) error {
				tasks := rt.store.Tasks()
				g, err := rt.gamification(ctx)
				if err != nil {
					return err
				}
				doc := exportDocument{
					ExportedAt:   rt.now().UTC(),
					Tasks:        make([]exportTask, 0, len(tasks)),
					Productivity: productivity.Calculate(tasks),
					Level: exportLevel{
						Current:     g.Level.Current,
						Title:       g.Level.Title,
						TotalPoints: g.Level.TotalPoints,
					},
					Achievements: make([]string, 0),
				}
				for _, t := range tasks {
					doc.Tasks = append(doc.Tasks, exportTask{
						ID:               t.ID,
						Text:             t.Text,
						Completed:        t.Completed,
						LifeMeaningScore: t.LifeMeaningScore,
						QuantumState:     string(t.QuantumState),
						Excuses:          t.Excuses,
						CreatedAt:        t.CreatedAt,
						CompletedAt:      t.CompletedAt,
					})
				}
				for _, a := range g.Achievements {
					if a.Unlocked {
						doc.Achievements = append(doc.Achievements, a.ID)
					}
				}

				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(doc); err != nil {
					return fmt.Errorf("encode export: %w", err)
				}
				return enc.Close()
			})
		},
	}
}
