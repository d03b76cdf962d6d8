package bindings

import (
	stderrors "errors"
	"fmt"
)

// State is the lifecycle state of a binding context.
//
//	Unbound ──Attach──► Bound ──edit──► Checking ──► Committing ──► Bound
//	                      │                 └──────► Rejecting ───► Bound
//	                      └──Detach──► TornDown
type State int

const (
	// Unbound is the state of a context that was never attached.
	Unbound State = iota
	// Bound means the context tracks its model and control.
	Bound
	// Checking means a proposed value is being validated.
	Checking
	// Committing means a value is being written to the model.
	Committing
	// Rejecting means the control is being reverted after a rejection.
	Rejecting
	// TornDown is terminal.
	TornDown
)

func (s State) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Bound:
		return "bound"
	case Checking:
		return "checking"
	case Committing:
		return "committing"
	case Rejecting:
		return "rejecting"
	case TornDown:
		return "torn-down"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// guard records what the context is currently applying, so the reactions it
// would trigger on itself are recognised.
type guard int

const (
	idle guard = iota
	applyingDisplay
	applyingCommit
)

func (g guard) String() string {
	switch g {
	case applyingDisplay:
		return "applying-display"
	case applyingCommit:
		return "applying-commit"
	default:
		return "idle"
	}
}

var (
	// ErrInvalidState is wrapped by errors for operations on a torn-down
	// binding.
	ErrInvalidState = stderrors.New("binding is torn down")
	// ErrAlreadyBound is wrapped by setup errors when the control is
	// already bound to the same key path.
	ErrAlreadyBound = stderrors.New("control is already bound to this key path")
	// ErrIncompatibleType is wrapped by setup errors when the control
	// cannot display the bound property's type.
	ErrIncompatibleType = stderrors.New("control does not support the model type")
	// ErrCycleInProgress is returned when a check or commit is requested
	// from inside a cycle of the same context.
	ErrCycleInProgress = stderrors.New("a check/commit cycle is already in progress")
	// ErrAborted is returned when a cycle was cut short by Detach.
	ErrAborted = stderrors.New("binding was torn down during the cycle")
)
