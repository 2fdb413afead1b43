package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tasks/internal/form"
	"github.com/idilsaglam/tasks/internal/menu"
	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/tasks"
)

// runForm is swapped in tests; the real form needs a terminal.
var runForm = form.Run

func (a *app) menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive numbered menu (default)",
		Args:  exactArgs(0, "tasks menu"),
		RunE:  a.runMenu,
	}
}

func (a *app) formCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Full-screen form with task list and buttons",
		Args:  exactArgs(0, "tasks form"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, path, err := a.openList(true)
			if err != nil {
				return err
			}
			saved, err := runForm(cmd.Context(), l, form.Options{Path: path, Theme: a.theme})
			if err != nil {
				return fmt.Errorf("form: %w", err)
			}
			if saved {
				a.printer.OK("tasks saved")
			} else {
				a.printer.Hint("quit without saving")
			}
			return nil
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	var desc, start, end string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task (title can be multiple words)",
		Args:  minArgs(1, `tasks add <title...> [--desc text] [--start YYYY-MM-DD] [--end YYYY-MM-DD]`),
		RunE: func(_ *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return usagef("add: empty title")
			}
			l, path, err := a.openList(false)
			if err != nil {
				return err
			}
			l.Add(title, desc, start, end)
			return a.persist(l, path)
		},
	}
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	return cmd
}

func (a *app) lsCmd() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List tasks",
		Args:  exactArgs(0, "tasks ls [--group]"),
		RunE: func(_ *cobra.Command, _ []string) error {
			l, _, err := a.openList(false)
			if err != nil {
				return err
			}
			a.printList(l.Tasks(), group)
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func (a *app) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <n>",
		Short: "Mark the task at 1-based position n completed",
		Args:  exactArgs(1, "tasks done <n>"),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.atIndex("done", args[0], func(l *tasks.List, i int) (model.Task, error) {
				return l.Complete(i)
			})
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <n>",
		Short: "Remove the task at 1-based position n",
		Args:  exactArgs(1, "tasks rm <n>"),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.atIndex("rm", args[0], func(l *tasks.List, i int) (model.Task, error) {
				return l.Delete(i)
			})
		},
	}
}

// atIndex converts a 1-based argument, checks it against the list and
// applies op to the zero-based index before saving.
func (a *app) atIndex(name, arg string, op func(*tasks.List, int) (model.Task, error)) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return usagef("%s: not a number: %s", name, arg)
	}
	l, path, err := a.openList(false)
	if err != nil {
		return err
	}
	if n < 1 || n > l.Len() {
		return &usageError{
			msg:  fmt.Sprintf("index out of range: have %d, got %d", l.Len(), n),
			hint: "Hint: run `tasks ls` to see valid indexes",
		}
	}
	if _, err := op(l, n-1); err != nil {
		return err
	}
	return a.persist(l, path)
}

func (a *app) runMenu(cmd *cobra.Command, _ []string) error {
	l, path, err := a.openList(true)
	if err != nil {
		return err
	}
	err = menu.Run(cmd.Context(), l, a.streams.In, a.streams.Out, menu.Options{Path: path, Theme: a.theme})
	if errors.Is(err, menu.ErrInputClosed) {
		a.printer.Hint("input closed, changes not saved")
		return nil
	}
	return err
}
