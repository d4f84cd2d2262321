package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/quantumtodo/internal/config"
	"github.com/sandeepkv93/quantumtodo/internal/update"
	"github.com/sandeepkv93/quantumtodo/internal/views"
)

const Version = "0.1.0"

type options struct {
	configPath string
}

// NewRootCmd builds the qtodo command tree. Without a subcommand it opens
// the interactive shell.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "qtodo",
		Short:         "Quantum Todo: a task list that exists in superposition",
		Long:          "Quantum Todo tracks tasks alongside productivity stats, a daily horoscope and achievements.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.qtodo/config.yaml)")

	cmd.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newToggleCmd(opts),
		newDeleteCmd(opts),
		newExcuseCmd(opts),
		newClearCmd(opts),
		newStatsCmd(opts),
		newHoroscopeCmd(opts),
		newMotivateCmd(opts),
		newExportCmd(opts),
	)
	return cmd
}

func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, views.RenderError("qtodo: "+err.Error()))
		os.Exit(1)
	}
}

// withRuntime loads config, opens storage and hands the result to fn.
func withRuntime(cmd *cobra.Command, opts *options, fn func(ctx context.Context, rt *runtime, out io.Writer) error) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := openRuntime(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(ctx, rt, cmd.OutOrStdout())
}

func runTUI(ctx context.Context, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := openRuntime(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	m := update.NewModel(update.Deps{
		Store:            rt.store,
		Tracker:          rt.tracker,
		Astrology:        rt.astrology,
		AstrologyRefresh: cfg.AstrologyRefresh,
		Motivation:       rt.motivation,
		Context:          ctx,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
