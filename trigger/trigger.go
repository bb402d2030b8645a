// Package trigger provides a one-shot state machine: idle, then activated,
// forever. Activation records a value and can happen at most once.
package trigger

// State is the position of a Once in its two-state lifecycle.
type State uint8

const (
	Idle      State = iota // not activated yet
	Activated              // terminal
)

func (s State) String() string {
	if s == Activated {
		return "activated"
	}
	return "idle"
}

// Once moves from Idle to Activated exactly once, keeping the value it was
// activated with. The zero value is Idle and ready to use.
type Once[T any] struct {
	state State
	value T
}

// Fire activates the trigger with v. It reports true only for the call that
// performed the transition; later calls leave the state and value untouched.
func (o *Once[T]) Fire(v T) bool {
	if o.state == Activated {
		return false
	}
	o.state = Activated
	o.value = v
	return true
}

// State returns the current state.
func (o *Once[T]) State() State {
	return o.state
}

// Fired reports whether the trigger has been activated.
func (o *Once[T]) Fired() bool {
	return o.state == Activated
}

// Value returns the activation value and whether the trigger has fired.
func (o *Once[T]) Value() (T, bool) {
	return o.value, o.state == Activated
}
