// Package form is the full-screen front-end: a task list, four text inputs
// and four buttons, driven by Bubble Tea.
package form

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/tasks"
	"github.com/idilsaglam/tasks/internal/ui"
)

const dateLayout = "2006-01-02"

// focus order: list, inputs, buttons
type area int

const (
	areaList area = iota
	areaTitle
	areaDescription
	areaStart
	areaEnd
	areaAdd
	areaDelete
	areaComplete
	areaSave
	areaCount
)

func (a area) isInput() bool  { return a >= areaTitle && a <= areaEnd }
func (a area) isButton() bool { return a >= areaAdd && a <= areaSave }
func (a area) next() area     { return (a + 1) % areaCount }
func (a area) prev() area     { return (a + areaCount - 1) % areaCount }

var labels = [4]string{"Title:", "Description:", "Start Date (YYYY-MM-DD):", "End Date (YYYY-MM-DD):"}

var buttons = map[area]string{
	areaAdd:      "Add Task",
	areaDelete:   "Delete Task",
	areaComplete: "Mark Completed",
	areaSave:     "Save & Exit",
}

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Enter  key.Binding
	Toggle key.Binding
	Save   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/press")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select task")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save & exit")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Enter, k.Toggle, k.Save, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Enter}, {k.Toggle, k.Save, k.Quit}}
}

// Options tune the form.
type Options struct {
	Path  string // data file written by Save & Exit
	Theme ui.Theme
	Now   func() time.Time // clock for the past-date check; defaults to time.Now
}

// listItem adapts a task to bubbles/list.Item.
type listItem struct {
	pos      int
	task     model.Task
	selected bool
}

func (i listItem) FilterValue() string { return i.task.Title }

func (i listItem) Line() string {
	return fmt.Sprintf("%d. [%s] %s - %s", i.pos, i.task.Glyph(), i.task.Title, i.task.Description)
}

// single-line delegate; the explicit selection is shown reversed
type itemDelegate struct{ theme ui.Theme }

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	line := it.Line()
	if it.task.Completed {
		line = d.theme.Done.Render(line)
	}
	if it.selected {
		line = d.theme.Selected.Render(line)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = "> "
	}
	fmt.Fprint(w, prefix+line)
}

// statusReporter captures list notices for the status bar. It is shared by
// pointer because Bubble Tea copies the model on every update.
type statusReporter struct {
	last string
	warn bool
}

func (r *statusReporter) OK(msg string)   { r.last, r.warn = msg, false }
func (r *statusReporter) Warn(msg string) { r.last, r.warn = msg, true }

// Model is the Bubble Tea model of the form.
type Model struct {
	tasks  *tasks.List
	opt    Options
	view   list.Model
	inputs [4]textinput.Model
	focus  area

	// selected is the explicitly chosen task, tracked by ID so that the
	// selection survives positions shifting.
	selected uuid.UUID

	status    string
	statusErr bool
	notices   *statusReporter
	saved     bool

	keys keyMap
	help help.Model
}

// New builds the form over l. Notices from l are redirected to the form's
// status bar; Run restores the previous reporter on exit.
func New(l *tasks.List, opt Options) Model {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.Theme.Name == "" {
		opt.Theme = ui.NewTheme("classic", true)
	}
	m := Model{
		tasks:   l,
		opt:     opt,
		notices: &statusReporter{},
		keys:    newKeyMap(),
		help:    help.New(),
	}
	l.SetReporter(m.notices)

	v := list.New(nil, itemDelegate{theme: opt.Theme}, 60, 10)
	v.Title = "To-Do List"
	v.Styles.Title = opt.Theme.Title
	v.SetShowHelp(false)
	v.SetShowStatusBar(false)
	v.SetFilteringEnabled(false)
	v.SetStatusBarItemName("task", "tasks")
	v.KeyMap.Quit.SetEnabled(false)
	m.view = v

	m.help.Styles.ShortKey = opt.Theme.Accent
	m.help.Styles.ShortDesc = opt.Theme.Muted
	m.help.Styles.ShortSeparator = opt.Theme.Muted

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 200
		ti.Width = 30
		m.inputs[i] = ti
	}
	m.inputs[2].Placeholder = "YYYY-MM-DD"
	m.inputs[3].Placeholder = "YYYY-MM-DD"

	m.refresh()
	return m
}

// Run starts the program and blocks until the user quits.
// saved reports whether Save & Exit completed.
func Run(ctx context.Context, l *tasks.List, opt Options) (saved bool, err error) {
	prev := l.SetReporter(nil)
	defer l.SetReporter(prev)

	p := tea.NewProgram(New(l, opt), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(Model)
	return ok && fm.saved, nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - 16
		if h < 3 {
			h = 3
		}
		m.view.SetSize(msg.Width-4, h)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Save):
			cmd := m.saveAndExit()
			return m, cmd
		case key.Matches(msg, m.keys.Next):
			cmd := m.setFocus(m.focus.next())
			return m, cmd
		case key.Matches(msg, m.keys.Prev):
			cmd := m.setFocus(m.focus.prev())
			return m, cmd
		case key.Matches(msg, m.keys.Enter):
			switch {
			case m.focus == areaList:
				m.toggleSelection()
				return m, nil
			case m.focus == areaEnd:
				m.add()
				return m, nil
			case m.focus.isInput():
				cmd := m.setFocus(m.focus.next())
				return m, cmd
			case m.focus.isButton():
				cmd := m.press(m.focus)
				return m, cmd
			}
		case key.Matches(msg, m.keys.Toggle) && m.focus == areaList:
			m.toggleSelection()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch {
	case m.focus == areaList:
		m.view, cmd = m.view.Update(msg)
	case m.focus.isInput():
		i := int(m.focus - areaTitle)
		m.inputs[i], cmd = m.inputs[i].Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(a area) tea.Cmd {
	m.focus = a
	var cmd tea.Cmd
	for i := range m.inputs {
		if area(i)+areaTitle == a {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) press(a area) tea.Cmd {
	switch a {
	case areaAdd:
		m.add()
	case areaDelete:
		m.deleteSelected()
	case areaComplete:
		m.completeSelected()
	case areaSave:
		return m.saveAndExit()
	}
	return nil
}

func (m *Model) toggleSelection() {
	it, ok := m.view.SelectedItem().(listItem)
	if !ok {
		return
	}
	if m.selected == it.task.ID {
		m.selected = uuid.Nil
	} else {
		m.selected = it.task.ID
	}
	m.refresh()
}

// add validates the start date, then the required fields, and only then
// touches the list.
func (m *Model) add() {
	var v [4]string
	for i := range m.inputs {
		v[i] = strings.TrimSpace(m.inputs[i].Value())
	}

	now := m.opt.Now()
	start, err := time.ParseInLocation(dateLayout, v[2], now.Location())
	if err != nil {
		m.fail("Date Format Error: invalid start date format, use YYYY-MM-DD")
		return
	}
	y, mo, d := now.Date()
	if start.Before(time.Date(y, mo, d, 0, 0, 0, 0, now.Location())) {
		m.fail("Date Error: start date cannot be in the past")
		return
	}
	for _, s := range v {
		if s == "" {
			m.fail("Input Error: please fill out all fields")
			return
		}
	}

	m.tasks.Add(v[0], v[1], v[2], v[3])
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.refresh()
	m.ok("Success: task added")
}

// selectedIndex resolves the selection to its current position.
func (m *Model) selectedIndex() (int, bool) {
	if m.selected == uuid.Nil {
		return 0, false
	}
	i := m.tasks.IndexOf(m.selected)
	if i < 0 {
		m.selected = uuid.Nil
		return 0, false
	}
	return i, true
}

func (m *Model) deleteSelected() {
	i, ok := m.selectedIndex()
	if !ok {
		m.fail("Selection Error: please select a task to delete")
		return
	}
	if _, err := m.tasks.Delete(i); err != nil {
		m.fail(err.Error())
		return
	}
	m.selected = uuid.Nil
	m.refresh()
	m.ok("Success: task deleted")
}

func (m *Model) completeSelected() {
	i, ok := m.selectedIndex()
	if !ok {
		m.fail("Selection Error: please select a task to mark as completed")
		return
	}
	if _, err := m.tasks.Complete(i); err != nil {
		m.fail(err.Error())
		return
	}
	m.refresh()
	m.ok("Success: task marked as completed")
}

func (m *Model) saveAndExit() tea.Cmd {
	if err := m.tasks.SaveFile(m.opt.Path); err != nil {
		m.fail("Save Error: " + err.Error())
		return nil
	}
	m.saved = true
	return tea.Quit
}

func (m *Model) refresh() {
	ts := m.tasks.Tasks()
	items := make([]list.Item, 0, len(ts))
	for i, t := range ts {
		items = append(items, listItem{pos: i + 1, task: t, selected: t.ID == m.selected})
	}
	m.view.SetItems(items)
	if n := len(items); n > 0 && m.view.Index() >= n {
		m.view.Select(n - 1)
	}
}

func (m *Model) ok(msg string)   { m.status, m.statusErr = msg, false }
func (m *Model) fail(msg string) { m.status, m.statusErr = msg, true }

// Status returns the status bar message and whether it is an error.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

// Saved reports whether Save & Exit has written the file.
func (m Model) Saved() bool { return m.saved }

func (m Model) View() string {
	t := m.opt.Theme
	var b strings.Builder

	b.WriteString(m.view.View())
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Width(26).Align(lipgloss.Right)
	for i := range m.inputs {
		label := labelStyle.Render(labels[i])
		if m.focus == areaTitle+area(i) {
			label = t.Accent.Render(label)
		}
		b.WriteString(label + " " + m.inputs[i].View() + "\n")
	}
	b.WriteString("\n")

	var row []string
	for a := areaAdd; a <= areaSave; a++ {
		btn := "[ " + buttons[a] + " ]"
		if m.focus == a {
			btn = t.Focused.Render(btn)
		}
		row = append(row, btn)
	}
	b.WriteString(strings.Join(row, "  ") + "\n\n")

	if m.status != "" {
		style := t.Success
		if m.statusErr {
			style = t.Error
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	if m.notices.last != "" {
		style := t.Muted
		if m.notices.warn {
			style = t.Pending
		}
		b.WriteString(style.Render(m.notices.last) + "\n")
	}
	b.WriteString(m.help.View(m.keys))

	return t.PanelString(b.String())
}
