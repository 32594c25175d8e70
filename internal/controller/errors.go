package controller

import "fmt"

// Kind classifies a failed controller operation.
type Kind int

const (
	KindBootstrap Kind = iota + 1
	KindRetrieval
	KindAdd
	KindDelete
	KindClear
	KindUpdate
)

// Message returns the fixed user-facing text for the kind.
func (k Kind) Message() string {
	switch k {
	case KindBootstrap:
		return "Error creando usuario"
	case KindRetrieval:
		return "Error cargando las tareas"
	case KindAdd:
		return "Error agregando la tarea"
	case KindDelete:
		return "Error eliminando la tarea"
	case KindClear:
		return "Error limpiando las tareas"
	case KindUpdate:
		return "Error actualizando la tarea"
	default:
		return "Error"
	}
}

func (k Kind) String() string {
	switch k {
	case KindBootstrap:
		return "bootstrap"
	case KindRetrieval:
		return "retrieval"
	case KindAdd:
		return "add"
	case KindDelete:
		return "delete"
	case KindClear:
		return "clear"
	case KindUpdate:
		return "update"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// OpError is returned by controller operations. Err is the backend cause.
type OpError struct {
	Kind Kind
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind.Message(), e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }
