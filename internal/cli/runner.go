// Package cli wires the command tree: the two interactive front-ends and
// the one-shot subcommands, all over the same data file.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tasks/internal/config"
	"github.com/idilsaglam/tasks/internal/logging"
	"github.com/idilsaglam/tasks/internal/store/textstore"
	"github.com/idilsaglam/tasks/internal/tasks"
	"github.com/idilsaglam/tasks/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage, 130 interrupted.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// Streams are the process's standard streams, swappable in tests.
type Streams struct {
	In       io.Reader
	Out, Err io.Writer
}

// usageError marks bad input from the command line (exit code 2).
type usageError struct {
	msg  string
	hint string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// app carries what every command needs once flags are parsed.
type app struct {
	cfg     config.Config
	streams Streams

	themeName string
	noColor   bool

	theme    ui.Theme
	printer  *ui.Printer
	log      *slog.Logger
	closeLog func() error
}

// Run executes the command line and returns the exit code.
func Run(ctx context.Context, args []string, s Streams) int {
	cfg, err := config.Load()
	if err != nil {
		ui.NewPrinter(s.Out, s.Err, ui.NewTheme("classic", true)).Fail("config: " + err.Error())
		return ExitError
	}

	a := &app{cfg: cfg, streams: s, log: logging.Discard()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(s.In)
	root.SetOut(s.Out)
	root.SetErr(s.Err)

	err = root.ExecuteContext(ctx)
	if a.closeLog != nil {
		a.closeLog()
	}
	if err == nil {
		return ExitOK
	}

	p := a.printer
	if p == nil {
		p = ui.NewPrinter(s.Out, s.Err, ui.NewTheme(cfg.Theme, !cfg.NoColor))
	}
	if errors.Is(err, context.Canceled) {
		p.Hint("interrupted, changes not saved")
		return ExitInterrupted
	}
	p.Fail(err.Error())

	var ue *usageError
	if errors.As(err, &ue) {
		if ue.hint != "" {
			p.Hint(ue.hint)
		} else {
			p.Hint("Run `tasks --help` for usage.")
		}
		return ExitUsage
	}
	return ExitError
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tasks",
		Short: "A personal task tracker",
		Long: `tasks keeps a list of to-do items in ` + textstore.DefaultFile + ` in the working directory.

Without a subcommand it starts the interactive text menu.`,
		Example: `  tasks
  tasks form
  tasks add "Buy milk" --desc "2% milk" --start 2024-01-01 --end 2024-01-02
  tasks ls --group
  tasks done 2
  tasks rm 3`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runMenu,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.themeName, "theme", "", "color theme: "+strings.Join(ui.Names, ", "))
	pf.BoolVar(&a.noColor, "no-color", false, "disable colors")

	root.AddCommand(
		a.menuCmd(),
		a.formCmd(),
		a.addCmd(),
		a.lsCmd(),
		a.doneCmd(),
		a.rmCmd(),
	)
	return root
}

// setup resolves theme and logger; flags win over the environment.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	name := a.cfg.Theme
	if a.themeName != "" {
		name = a.themeName
	}
	a.theme = ui.NewTheme(name, !(a.cfg.NoColor || a.noColor))
	a.printer = ui.NewPrinter(a.streams.Out, a.streams.Err, a.theme)

	log, closeLog, err := logging.Open(a.cfg.Debug)
	if err != nil {
		return err
	}
	a.log, a.closeLog = log, closeLog
	a.log.Debug("start", "command", cmd.CommandPath(), "theme", a.theme.Name)
	return nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

// openList loads the data file. Notices go to the printer when verbose;
// otherwise only malformed lines are reported. The interactive front-ends
// are verbose.
func (a *app) openList(verbose bool) (*tasks.List, string, error) {
	path, err := textstore.DefaultPath()
	if err != nil {
		return nil, "", err
	}
	l := tasks.New(tasks.Discard, tasks.WithLogger(a.log))
	if verbose {
		l.SetReporter(a.printer)
	}
	rep, err := l.LoadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("load: %w", err)
	}
	if !verbose {
		for _, le := range rep.Skipped {
			a.printer.Warn(fmt.Sprintf("skipping malformed line %d", le.Line))
		}
	}
	l.SetReporter(a.printer)
	return l, path, nil
}

// persist saves quietly; the caller prints its own confirmation.
func (a *app) persist(l *tasks.List, path string) error {
	prev := l.SetReporter(tasks.Discard)
	defer l.SetReporter(prev)
	if err := l.SaveFile(path); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
