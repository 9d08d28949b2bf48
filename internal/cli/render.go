package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jaekwang-park/todo-lite/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)

	boxChecked   = "[x]"
	boxUnchecked = "[ ]"
)

func ok(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render("✔ "+msg))
}

func renderHeader(todos model.Todos) string {
	done, pending := todos.Counts()
	return fmt.Sprintf("%s  %s  %s",
		titleStyle.Render(fmt.Sprintf("%d todos", len(todos))),
		pendingStyle.Render(fmt.Sprintf("%d pending", pending)),
		successStyle.Render(fmt.Sprintf("%d done", done)),
	)
}

func renderTodo(t model.Todo) string {
	box, text := boxUnchecked, t.Text
	if t.Completed {
		box, text = boxChecked, doneStyle.Render(t.Text)
	}
	return fmt.Sprintf("%s %s %s", box, idStyle.Render(shortID(t.ID)), text)
}

func renderList(w io.Writer, todos model.Todos, group bool) {
	fmt.Fprintln(w, renderHeader(todos))

	if len(todos) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("nothing to do"))
		return
	}

	if !group {
		writeLines(w, todos)
		return
	}

	if active := todos.Active(); len(active) > 0 {
		fmt.Fprintln(w, titleStyle.Render("Pending"))
		writeLines(w, active)
	}
	if completed := todos.Completed(); len(completed) > 0 {
		fmt.Fprintln(w, titleStyle.Render("Done"))
		writeLines(w, completed)
	}
}

func writeLines(w io.Writer, todos model.Todos) {
	lines := make([]string, 0, len(todos))
	for _, t := range todos {
		lines = append(lines, renderTodo(t))
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}
