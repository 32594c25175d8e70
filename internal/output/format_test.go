package output_test

import (
	"bytes"
	"errors"
	"testing"

	"todolist/internal/controller"
	"todolist/internal/output"
	"todolist/internal/service"
	"todolist/internal/testutil"
)

func TestFormatState_Single(t *testing.T) {
	var buf bytes.Buffer
	output.FormatState(&buf, controller.State{
		Tasks: []service.Task{{ID: 1, Label: "buy milk"}},
	})
	testutil.GoldenString(t, "state_single", buf.String())
}

func TestFormatState_Multiple(t *testing.T) {
	var buf bytes.Buffer
	output.FormatState(&buf, controller.State{
		Tasks: []service.Task{
			{ID: 1, Label: "buy milk"},
			{ID: 2, Label: "walk dog", Done: true},
			{ID: 3, Label: " \n "},
		},
	})
	testutil.GoldenString(t, "state_multiple", buf.String())
}

func TestFormatState_Empty(t *testing.T) {
	var buf bytes.Buffer
	output.FormatState(&buf, controller.State{})
	testutil.GoldenString(t, "state_empty", buf.String())
}

func TestFormatState_Loading(t *testing.T) {
	var buf bytes.Buffer
	output.FormatState(&buf, controller.State{Busy: true})
	testutil.GoldenString(t, "state_loading", buf.String())
}

func TestCountLine(t *testing.T) {
	tests := map[int]string{
		1:  "1 tarea en total",
		2:  "2 tareas en total",
		10: "10 tareas en total",
	}
	for n, want := range tests {
		if got := output.CountLine(n); got != want {
			t.Errorf("CountLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestButtonsAndPlaceholder(t *testing.T) {
	if got := output.AddButton(false); got != "Agregar" {
		t.Errorf("unexpected idle add label %q", got)
	}
	if got := output.AddButton(true); got != "Agregando..." {
		t.Errorf("unexpected busy add label %q", got)
	}
	if got := output.ClearButton(true); got != "Limpiando..." {
		t.Errorf("unexpected busy clear label %q", got)
	}
	if got := output.Placeholder(false); got != output.EmptyText {
		t.Errorf("unexpected idle placeholder %q", got)
	}
	if got := output.Placeholder(true); got != output.LoadingText {
		t.Errorf("unexpected busy placeholder %q", got)
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := map[string]string{
		"buy milk":      "buy milk",
		"line\nbreak":   "line break",
		"crlf\r\nbreak": "crlf  break",
		"":              "(sin título)",
		"   ":           "(sin título)",
	}
	for in, want := range tests {
		if got := output.NormalizeLabel(in); got != want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatUser(t *testing.T) {
	var buf bytes.Buffer
	output.FormatUser(&buf, service.User{Name: "alice"}, true)
	output.FormatUser(&buf, service.User{Name: "bob"}, false)

	want := "alice [active]\nbob\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatDeleteFailure(t *testing.T) {
	var buf bytes.Buffer
	output.FormatDeleteFailure(&buf, controller.DeleteResult{ID: 7, Err: errors.New("boom")})

	want := "error: failed to delete task 7: boom\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
