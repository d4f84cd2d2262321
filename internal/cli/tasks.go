package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/quantumtodo/internal/commands"
	"github.com/sandeepkv93/quantumtodo/internal/model"
	"github.com/sandeepkv93/quantumtodo/internal/storage"
)

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task in superposition",
		Args: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(strings.Join(args, " ")) == "" {
				return errors.New("task text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime, out io.Writer) error {
				task, err := rt.store.AddTask(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s #%d %s %s\n", goodStyle.Render("added"), task.ID, task.Text,
					mutedStyle.Render(fmt.Sprintf("(life meaning %.0f%%)", task.LifeMeaningScore)))
				return announceUnlocks(ctx, rt, out)
			})
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	var (
		onlyOpen bool
		limit    int
		offset   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 || offset < 0 {
				return errors.New("--limit and --offset must not be negative")
			}
			filter := storage.TaskListFilter{Limit: limit, Offset: offset}
			if onlyOpen {
				completed := false
				filter.Completed = &completed
			}
			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime, out io.Writer) error {
				tasks, err := rt.listTasks(ctx, filter)
				if err != nil {
					return err
				}
				if len(tasks) == 0 {
					fmt.Fprintln(out, mutedStyle.Render("no tasks in this universe yet"))
					return nil
				}
				for _, t := range tasks {
					writeTask(out, t)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&onlyOpen, "open", false, "only show tasks that are not completed")
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many tasks (0 means all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "skip this many tasks first")
	return cmd
}

func newToggleCmd(opts *options) *cobra.Command {
	return targetCmd(opts, "toggle <id>", "Observe a task, collapsing or reopening it", func(ctx context.Context, rt *runtime, id int) (string, error) {
		if err := rt.store.ToggleTask(ctx, id); err != nil {
			return "", err
		}
		t, _ := rt.store.Task(id)
		if t.Completed {
			return fmt.Sprintf("#%d collapsed", id), nil
		}
		return fmt.Sprintf("#%d back in %s", id, t.QuantumState), nil
	})
}

func newDeleteCmd(opts *options) *cobra.Command {
	return targetCmd(opts, "delete <id>", "Delete a task", func(ctx context.Context, rt *runtime, id int) (string, error) {
		if err := rt.store.DeleteTask(ctx, id); err != nil {
			return "", err
		}
		return fmt.Sprintf("#%d left this universe", id), nil
	})
}

func newExcuseCmd(opts *options) *cobra.Command {
	return targetCmd(opts, "excuse <id>", "Generate an excuse for a task", func(ctx context.Context, rt *runtime, id int) (string, error) {
		if err := rt.store.GenerateExcuse(ctx, id); err != nil {
			return "", err
		}
		t, _ := rt.store.Task(id)
		return fmt.Sprintf("#%d: %s", id, t.Excuses[len(t.Excuses)-1]), nil
	})
}

func newClearCmd(opts *options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear completed tasks (or every task with --all)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime, out io.Writer) error {
				before := len(rt.store.Tasks())
				var err error
				if all {
					err = rt.store.ClearAllTasks(ctx)
				} else {
					err = rt.store.ClearCompletedTasks(ctx)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %d task(s)\n", goodStyle.Render("cleared"), before-len(rt.store.Tasks()))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "clear every task, not only completed ones")
	return cmd
}

// targetCmd builds a command that acts on one existing task id.
func targetCmd(opts *options, use, short string, act func(ctx context.Context, rt *runtime, id int) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := commands.ParseID(args[0])
			if err != nil {
				return err
			}
			return withRuntime(cmd, opts, func(ctx context.Context, rt *runtime, out io.Writer) error {
				if _, ok := rt.store.Task(id); !ok {
					return fmt.Errorf("no task #%d", id)
				}
				msg, err := act(ctx, rt, id)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, goodStyle.Render(msg))
				return announceUnlocks(ctx, rt, out)
			})
		},
	}
}

func writeTask(out io.Writer, t model.Task) {
	check := "[ ]"
	if t.Completed {
		check = goodStyle.Render("[x]")
	}
	fmt.Fprintf(out, "%s #%d %s %s\n", check, t.ID, t.Text,
		mutedStyle.Render(fmt.Sprintf("(%s, meaning %.0f%%)", t.QuantumState, t.LifeMeaningScore)))
	for _, e := range t.Excuses {
		fmt.Fprintf(out, "      %s\n", mutedStyle.Render("- "+e))
	}
}

func announceUnlocks(ctx context.Context, rt *runtime, out io.Writer) error {
	res, err := rt.gamification(ctx)
	for _, a := range res.NewlyUnlocked {
		fmt.Fprintf(out, "%s %s %s (+%d)\n", goldStyle.Render("achievement unlocked:"), a.Icon, a.Name, a.Points)
	}
	return err
}
