// Package tasks owns the ordered task list shared by every front-end.
package tasks

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/idilsaglam/tasks/internal/logging"
	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/store/textstore"
)

var (
	ErrInvalidIndex = errors.New("invalid task number")
	ErrNoTasks      = errors.New("no tasks in the list")
)

// Reporter receives the notices produced by list operations.
type Reporter interface {
	OK(msg string)
	Warn(msg string)
}

type discard struct{}

func (discard) OK(string)   {}
func (discard) Warn(string) {}

// Discard is a Reporter that drops every notice.
var Discard Reporter = discard{}

// LoadReport summarizes a Load.
type LoadReport struct {
	Loaded  int
	Skipped []textstore.LineError
	Missing bool // the source file did not exist
}

// List is an ordered, mutable collection of tasks. Position in the list is
// the only identity users see; positions shift when an earlier task is
// deleted. A List is not safe for concurrent use.
type List struct {
	tasks []model.Task
	rep   Reporter
	log   *slog.Logger
}

type Option func(*List)

func WithLogger(l *slog.Logger) Option {
	return func(list *List) { list.log = l }
}

// New returns an empty list reporting to rep. A nil rep discards notices.
func New(rep Reporter, opts ...Option) *List {
	if rep == nil {
		rep = Discard
	}
	l := &List{tasks: []model.Task{}, rep: rep, log: logging.Discard()}
	for _, o := range opts {
		o(l)
	}
	return l
}

// SetReporter swaps the notice sink, returning the previous one.
func (l *List) SetReporter(rep Reporter) Reporter {
	if rep == nil {
		rep = Discard
	}
	prev := l.rep
	l.rep = rep
	return prev
}

func (l *List) Len() int { return len(l.tasks) }

// Tasks returns a copy of the current sequence.
func (l *List) Tasks() []model.Task {
	out := make([]model.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// At returns the task at index; ok is false when index is out of range.
func (l *List) At(index int) (model.Task, bool) {
	if !l.valid(index) {
		return model.Task{}, false
	}
	return l.tasks[index], true
}

// IndexOf returns the current position of the task with id, or -1.
func (l *List) IndexOf(id uuid.UUID) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a new task. Inputs are taken as-is.
func (l *List) Add(title, description, startDate, endDate string) model.Task {
	t := model.New(title, description, startDate, endDate)
	l.tasks = append(l.tasks, t)
	l.log.Debug("task added", "index", len(l.tasks)-1, "id", t.ID)
	l.rep.OK(fmt.Sprintf("task %q added", title))
	return t
}

// Delete removes the task at the zero-based index.
func (l *List) Delete(index int) (model.Task, error) {
	if !l.valid(index) {
		l.rep.Warn("invalid task number, no task deleted")
		return model.Task{}, fmt.Errorf("delete %d of %d: %w", index, len(l.tasks), ErrInvalidIndex)
	}
	t := l.tasks[index]
	l.tasks = append(l.tasks[:index], l.tasks[index+1:]...)
	l.log.Debug("task deleted", "index", index, "id", t.ID)
	l.rep.OK(fmt.Sprintf("task %q deleted", t.Title))
	return t, nil
}

// Complete marks the task at the zero-based index as completed.
func (l *List) Complete(index int) (model.Task, error) {
	if !l.valid(index) {
		l.rep.Warn("invalid task number, no task marked as completed")
		return model.Task{}, fmt.Errorf("complete %d of %d: %w", index, len(l.tasks), ErrInvalidIndex)
	}
	l.tasks[index].MarkCompleted()
	t := l.tasks[index]
	l.log.Debug("task completed", "index", index, "id", t.ID)
	l.rep.OK(fmt.Sprintf("task %q marked as completed", t.Title))
	return t, nil
}

// Entries yields (1-based position, rendered task) pairs in list order.
// The sequence reads the list when iterated, so it can be ranged over
// again after a mutation. An empty list returns ErrNoTasks.
func (l *List) Entries() (iter.Seq2[int, string], error) {
	if len(l.tasks) == 0 {
		return nil, ErrNoTasks
	}
	return func(yield func(int, string) bool) {
		for i, t := range l.tasks {
			if !yield(i+1, t.Render()) {
				return
			}
		}
	}, nil
}

// Save writes every task to w in the persisted line format.
func (l *List) Save(w io.Writer) error {
	return textstore.Encode(w, l.tasks)
}

// SaveFile overwrites path with the current list.
func (l *List) SaveFile(path string) error {
	if err := textstore.WriteFile(path, l.tasks); err != nil {
		l.rep.Warn("save: " + err.Error())
		return err
	}
	l.log.Debug("tasks saved", "path", path, "count", len(l.tasks))
	l.rep.OK("tasks saved to " + path)
	return nil
}

// Load replaces the list with the tasks read from r. Malformed lines are
// skipped and reported one by one.
func (l *List) Load(r io.Reader) (LoadReport, error) {
	loaded, bad, err := textstore.Decode(r)
	if err != nil {
		return LoadReport{}, err
	}
	return l.replace(loaded, bad), nil
}

// LoadFile is Load from path. A missing file leaves the list empty and is
// not an error.
func (l *List) LoadFile(path string) (LoadReport, error) {
	loaded, bad, err := textstore.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		l.tasks = []model.Task{}
		l.log.Debug("no data file", "path", path)
		l.rep.Warn("no saved tasks found")
		return LoadReport{Missing: true}, nil
	}
	if err != nil {
		l.rep.Warn("load: " + err.Error())
		return LoadReport{}, err
	}
	return l.replace(loaded, bad), nil
}

func (l *List) replace(loaded []model.Task, bad []textstore.LineError) LoadReport {
	l.tasks = loaded
	for _, le := range bad {
		l.log.Debug("malformed line", "line", le.Line, "text", le.Text)
		l.rep.Warn(fmt.Sprintf("skipping malformed line %d", le.Line))
	}
	l.rep.OK(fmt.Sprintf("loaded %d tasks", len(loaded)))
	return LoadReport{Loaded: len(loaded), Skipped: bad}
}

func (l *List) valid(index int) bool { return index >= 0 && index < len(l.tasks) }
