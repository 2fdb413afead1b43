// Package menu is the line-oriented front-end: a numbered menu read from
// any io.Reader, so it runs the same on a terminal or a pipe.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/tasks"
	"github.com/idilsaglam/tasks/internal/ui"
)

// ErrInputClosed is returned when input ends before Save and Exit.
// Unsaved changes are dropped.
var ErrInputClosed = errors.New("input closed before save")

// Options tune the menu.
type Options struct {
	Path  string // data file written by Save and Exit
	Theme ui.Theme
}

type menu struct {
	ctx   context.Context
	list  *tasks.List
	lines <-chan line
	out   io.Writer
	opt   Options
}

// line is one read from the input; err is io.EOF at the end.
type line struct {
	text string
	err  error
}

// readLines scans in until it ends or done is closed. A read blocked in
// the underlying reader outlives done; it ends with the reader.
func readLines(in io.Reader, done <-chan struct{}) <-chan line {
	ch := make(chan line)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case ch <- line{text: sc.Text()}:
			case <-done:
				return
			}
		}
		err := sc.Err()
		if err == nil {
			err = io.EOF
		}
		select {
		case ch <- line{err: err}:
		case <-done:
		}
	}()
	return ch
}

// Run loops until the user picks Save and Exit, input ends, or ctx is done.
// Cancellation is noticed even while waiting for input, and unsaved changes
// are dropped.
func Run(ctx context.Context, l *tasks.List, in io.Reader, out io.Writer, opt Options) error {
	if opt.Theme.Name == "" {
		opt.Theme = ui.NewTheme("mono", false)
	}
	done := make(chan struct{})
	defer close(done)
	m := &menu{ctx: ctx, list: l, lines: readLines(in, done), out: out, opt: opt}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printMenu()
		choice, err := m.prompt("Enter your choice: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			if err := m.add(); err != nil {
				return err
			}
		case "2":
			if err := m.pick("delete", l.Delete); err != nil {
				return err
			}
		case "3":
			if err := m.pick("complete", l.Complete); err != nil {
				return err
			}
		case "4":
			m.listTasks()
		case "5":
			// A failed save was already reported; keep the session open.
			if err := l.SaveFile(opt.Path); err != nil {
				continue
			}
			fmt.Fprintln(out, "Exiting application.")
			return nil
		default:
			fmt.Fprintln(out, "Invalid choice. Please try again.")
		}
	}
}

func (m *menu) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, m.opt.Theme.Title.Render("To-Do List Application"))
	fmt.Fprintln(m.out, "1. Add Task")
	fmt.Fprintln(m.out, "2. Delete Task")
	fmt.Fprintln(m.out, "3. Complete Task")
	fmt.Fprintln(m.out, "4. List Tasks")
	fmt.Fprintln(m.out, "5. Save and Exit")
}

func (m *menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	select {
	case <-m.ctx.Done():
		fmt.Fprintln(m.out)
		return "", m.ctx.Err()
	case ln, ok := <-m.lines:
		switch {
		case !ok || ln.err == io.EOF:
			fmt.Fprintln(m.out)
			return "", ErrInputClosed
		case ln.err != nil:
			fmt.Fprintln(m.out)
			return "", fmt.Errorf("read input: %w", ln.err)
		}
		return strings.TrimSpace(ln.text), nil
	}
}

func (m *menu) add() error {
	fields := make([]string, 4)
	for i, label := range []string{
		"Enter task title: ",
		"Enter task description: ",
		"Enter start date (YYYY-MM-DD): ",
		"Enter end date (YYYY-MM-DD): ",
	} {
		v, err := m.prompt(label)
		if err != nil {
			return err
		}
		fields[i] = v
	}
	m.list.Add(fields[0], fields[1], fields[2], fields[3])
	return nil
}

// pick lists the tasks, asks for a 1-based number and applies op to the
// matching zero-based index. Non-numeric answers are asked again.
func (m *menu) pick(verb string, op func(int) (model.Task, error)) error {
	m.listTasks()
	for {
		s, err := m.prompt(fmt.Sprintf("Enter task number to %s: ", verb))
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			fmt.Fprintf(m.out, "not a number: %q\n", s)
			continue
		}
		// Out-of-range numbers are reported by the list itself.
		_, _ = op(n - 1)
		return nil
	}
}

func (m *menu) listTasks() {
	seq, err := m.list.Entries()
	if err != nil {
		fmt.Fprintln(m.out, "No tasks in the list.")
		return
	}
	for pos, text := range seq {
		fmt.Fprintf(m.out, "%d. %s\n", pos, text)
	}
}
