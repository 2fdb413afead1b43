package cli

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/ui"
)

// printList draws the framed listing: counts, progress, one line per task.
func (a *app) printList(items []model.Task, group bool) {
	t := a.theme
	d, p := stats(items)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Tasks"),
		t.Success.Render(t.SymOK), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(items),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if group {
		lines = append(lines, a.groupLines(items)...)
	} else {
		lines = append(lines, a.flatLines(items, func(model.Task) bool { return true })...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `tasks add \"Buy milk\" --start 2024-01-01`"))
	t.Panel(a.streams.Out, lines)
}

func stats(items []model.Task) (done, pending int) {
	for _, it := range items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// maxTitleWidth is in terminal cells.
const maxTitleWidth = 80

// flatLines renders the tasks matching keep. Numbers are positions in the
// whole list so they stay valid for `done` and `rm`.
func (a *app) flatLines(items []model.Task, keep func(model.Task) bool) []string {
	t := a.theme
	var out []string
	for i, it := range items {
		if !keep(it) {
			continue
		}
		idx := fmt.Sprintf("%2d.", i+1)
		box := t.Muted.Render(t.Box(false))
		title := ansi.Truncate(it.Title, maxTitleWidth, "...")
		if it.Completed {
			box = t.Success.Render(t.Box(true))
			title = t.Done.Render(title)
		}
		line := fmt.Sprintf("%s %s %s", idx, box, title)
		if it.StartDate != "" || it.EndDate != "" {
			line += " " + t.Muted.Render(fmt.Sprintf("(%s → %s)", it.StartDate, it.EndDate))
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return []string{t.Muted.Render("no tasks")}
	}
	return out
}

func (a *app) groupLines(items []model.Task) []string {
	t := a.theme
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	lines = append(lines, a.flatLines(items, func(it model.Task) bool { return !it.Completed })...)
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	lines = append(lines, a.flatLines(items, func(it model.Task) bool { return it.Completed })...)
	return lines
}
