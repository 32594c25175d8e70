package commands

import (
	"errors"
	"testing"

	"todolist/internal/controller"
	"todolist/internal/service"
)

func TestParseTaskNum_Numeric(t *testing.T) {
	n, err := ParseTaskNum([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 {
		t.Errorf("expected 5, got %d", n)
	}
}

func TestParseTaskNum_HashPrefix(t *testing.T) {
	n, err := ParseTaskNum([]string{"#12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 12 {
		t.Errorf("expected 12, got %d", n)
	}
}

func TestParseTaskNum_NoArgs_Error(t *testing.T) {
	_, err := ParseTaskNum(nil)
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskNum_BareHash_Error(t *testing.T) {
	_, err := ParseTaskNum([]string{"#"})
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskNum_Invalid_Error(t *testing.T) {
	for _, ref := range []string{"abc", "1a", "-1", "1.5"} {
		_, err := ParseTaskNum([]string{ref})
		if err == nil {
			t.Errorf("expected error for %q", ref)
			continue
		}
		want := "invalid task reference: " + ref
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	}
}

func TestParseTaskNum_ExtraArg_Error(t *testing.T) {
	_, err := ParseTaskNum([]string{"1", "2"})
	if err == nil || err.Error() != "unexpected argument: 2" {
		t.Errorf("expected unexpected argument error, got %v", err)
	}
}

func TestTaskByNumber(t *testing.T) {
	s := controller.State{Tasks: []service.Task{{ID: 10, Label: "a"}, {ID: 20, Label: "b"}}}

	task, err := taskByNumber(s, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 20 {
		t.Errorf("expected id 20, got %d", task.ID)
	}

	for _, n := range []int{0, 3} {
		if _, err := taskByNumber(s, n); err == nil {
			t.Errorf("expected out of range error for %d", n)
		}
	}
}

func TestRegistry_DuplicateAlias(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&ListCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&ListCmd{}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if _, ok := r.Find("ls"); !ok {
		t.Error("expected alias ls to resolve")
	}
	if got := len(r.All()); got != 1 {
		t.Errorf("expected 1 unique command, got %d", got)
	}
}
