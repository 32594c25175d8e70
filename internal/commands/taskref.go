package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todolist/internal/controller"
	"todolist/internal/service"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskNum parses the 1-based task number shown by `todolist list`.
// A leading '#' is accepted ("#3").
func ParseTaskNum(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("unexpected argument: %s", args[1])
	}

	ref := strings.TrimPrefix(strings.TrimSpace(args[0]), "#")
	if ref == "" {
		return 0, ErrTaskRefRequired
	}
	for _, r := range ref {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid task reference: %s", args[0])
		}
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid task reference: %s", args[0])
	}
	return n, nil
}

// taskByNumber returns the num-th task (1-based) of the snapshot.
func taskByNumber(s controller.State, num int) (service.Task, error) {
	if num < 1 || num > len(s.Tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return s.Tasks[num-1], nil
}
