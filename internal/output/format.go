// Package output provides the text shared by the CLI and the terminal UI.
package output

import (
	"fmt"
	"io"
	"strings"

	"todolist/internal/controller"
	"todolist/internal/service"
)

// User-facing strings.
const (
	EmptyText        = "No hay tareas. ¡Agrega una nueva!"
	LoadingText      = "Cargando tareas..."
	InputPlaceholder = "Agregar nueva tarea..."
	AddLabel         = "Agregar"
	AddingLabel      = "Agregando..."
	ClearLabel       = "Limpiar todas las tareas"
	ClearingLabel    = "Limpiando..."
	UntitledLabel    = "(sin título)"
)

// FormatTask formats a task row.
// Format: "{N:>4}  [{x| }] {LABEL}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, Check(task.Done), NormalizeLabel(task.Label))
}

// FormatState writes the task rows, or the placeholder when there are none,
// followed by the count line.
func FormatState(w io.Writer, s controller.State) {
	if len(s.Tasks) == 0 {
		fmt.Fprintln(w, Placeholder(s.Busy))
		return
	}
	for i, task := range s.Tasks {
		FormatTask(w, i+1, task)
	}
	fmt.Fprintln(w, CountLine(len(s.Tasks)))
}

// FormatUser formats a user name for the users command, marking the active one.
func FormatUser(w io.Writer, user service.User, active bool) {
	if active {
		fmt.Fprintf(w, "%s [active]\n", user.Name)
		return
	}
	fmt.Fprintln(w, user.Name)
}

// FormatDeleteFailure formats one failed delete from a clear-all batch.
func FormatDeleteFailure(w io.Writer, r controller.DeleteResult) {
	fmt.Fprintf(w, "error: failed to delete task %d: %v\n", r.ID, r.Err)
}

// CountLine returns the trailing task count, e.g. "1 tarea en total".
func CountLine(n int) string {
	if n == 1 {
		return "1 tarea en total"
	}
	return fmt.Sprintf("%d tareas en total", n)
}

// UserLine returns the session footer.
func UserLine(username string) string {
	return "Usuario: " + username
}

// Placeholder returns the text shown instead of rows when there are no tasks.
func Placeholder(busy bool) string {
	if busy {
		return LoadingText
	}
	return EmptyText
}

// AddButton returns the add control label.
func AddButton(busy bool) string {
	if busy {
		return AddingLabel
	}
	return AddLabel
}

// ClearButton returns the clear-all control label.
func ClearButton(busy bool) string {
	if busy {
		return ClearingLabel
	}
	return ClearLabel
}

// Check returns the completion marker for a row.
func Check(done bool) string {
	if done {
		return "x"
	}
	return " "
}

// NormalizeLabel normalizes a task label for display.
// - Empty or whitespace-only labels become "(sin título)"
// - Newlines are replaced with spaces
func NormalizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")

	if strings.TrimSpace(label) == "" {
		return UntitledLabel
	}
	return label
}
