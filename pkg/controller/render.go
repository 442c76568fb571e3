package controller

import (
	"fmt"
	"strings"

	"github.com/taskdeck/taskdeck/pkg/apiclient"
)

// Presentation helpers: pure derivations of the view model with no state of
// their own.

// Visible returns the tasks matching the active filter, preserving server
// order.
func Visible(vm ViewModel) []apiclient.Task {
	if vm.Filter == FilterAll || vm.Filter == "" {
		return vm.Tasks
	}
	wantCompleted := vm.Filter == FilterCompleted
	out := []apiclient.Task{}
	for _, t := range vm.Tasks {
		if t.Completed == wantCompleted {
			out = append(out, t)
		}
	}
	return out
}

// Counters summarize the full task list regardless of filter.
type Counters struct {
	Total     int
	Active    int
	Completed int
}

// Count tallies the task list.
func Count(vm ViewModel) Counters {
	c := Counters{Total: len(vm.Tasks)}
	for _, t := range vm.Tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}

// EmptyStateMessage is shown when the visible list is empty, keyed to the
// active filter.
func EmptyStateMessage(vm ViewModel) string {
	switch vm.Filter {
	case FilterActive:
		return "No active tasks, all caught up."
	case FilterCompleted:
		return "Nothing completed yet."
	default:
		return "No tasks yet. Add one to get started."
	}
}

// CharCountWarningMargin is how close to the limit an input gets before the
// indicator warns.
const CharCountWarningMargin = 10

// CharCount is the character-count indicator state for a text input.
type CharCount struct {
	Count   int
	Max     int
	Warning bool
}

// CountChars derives the indicator for a text input with the given limit.
func CountChars(text string, max int) CharCount {
	n := len(text)
	return CharCount{Count: n, Max: max, Warning: n >= max-CharCountWarningMargin}
}

// RenderList renders the visible tasks as text for the terminal client.
func RenderList(vm ViewModel) string {
	var sb strings.Builder

	visible := Visible(vm)
	if len(visible) == 0 {
		sb.WriteString(EmptyStateMessage(vm))
		sb.WriteString("\n")
	}
	for _, t := range visible {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		if vm.Edit != nil && vm.Edit.TaskID == t.ID {
			fmt.Fprintf(&sb, "[%s] %s  (editing: %q)\n", mark, t.ID, vm.Edit.Title)
			continue
		}
		fmt.Fprintf(&sb, "[%s] %s  %s\n", mark, t.ID, t.Title)
	}

	c := Count(vm)
	fmt.Fprintf(&sb, "%d total, %d active, %d completed\n", c.Total, c.Active, c.Completed)
	return sb.String()
}
