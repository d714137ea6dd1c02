package service

import (
	"context"
	"sync"
)

// Phase is the lifecycle position of an Operation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is a snapshot of an Operation. Data is only meaningful in
// PhaseReady and Message only in PhaseFailed.
type State[T any] struct {
	Phase      Phase
	Data       T
	Message    string
	Err        error
	Generation uint64
}

// Operation is the loading/error/data triplet shared by every screen.
// Each Begin issues a new generation; results carrying an older generation
// are dropped, so a slow superseded request never overwrites newer state.
type Operation[T any] struct {
	mu       sync.Mutex
	state    State[T]
	listener func(State[T])
}

// NewOperation returns an Operation in PhaseIdle.
func NewOperation[T any]() *Operation[T] {
	return &Operation[T]{}
}

// OnChange registers fn to be called after every applied transition.
func (o *Operation[T]) OnChange(fn func(State[T])) {
	o.mu.Lock()
	o.listener = fn
	o.mu.Unlock()
}

// State returns the current snapshot.
func (o *Operation[T]) State() State[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Begin enters PhaseLoading and returns the generation results must carry.
// Previous data and errors are cleared.
func (o *Operation[T]) Begin() uint64 {
	var zero T
	return o.transition(func(s *State[T]) {
		s.Generation++
		*s = State[T]{Phase: PhaseLoading, Data: zero, Generation: s.Generation}
	})
}

// Reset returns to PhaseIdle and invalidates anything in flight.
func (o *Operation[T]) Reset() {
	var zero T
	o.transition(func(s *State[T]) {
		s.Generation++
		*s = State[T]{Phase: PhaseIdle, Data: zero, Generation: s.Generation}
	})
}

// Resolve stores data if gen is still current. It reports whether it did.
func (o *Operation[T]) Resolve(gen uint64, data T) bool {
	return o.applyIfCurrent(gen, func(s *State[T]) {
		s.Phase = PhaseReady
		s.Data = data
		s.Message = ""
		s.Err = nil
	})
}

// Fail records a failure if gen is still current. Data is reset to zero.
func (o *Operation[T]) Fail(gen uint64, message string, err error) bool {
	var zero T
	return o.applyIfCurrent(gen, func(s *State[T]) {
		s.Phase = PhaseFailed
		s.Data = zero
		s.Message = message
		s.Err = err
	})
}

// Run executes fetch under a fresh generation and applies its outcome.
// describe turns a fetch error into the message shown to the user.
// The returned bool is false when a newer Begin or Reset superseded this run.
func (o *Operation[T]) Run(ctx context.Context, fetch func(context.Context) (T, error), describe func(error) string) (State[T], bool) {
	gen := o.Begin()
	data, err := fetch(ctx)
	var applied bool
	if err != nil {
		applied = o.Fail(gen, describe(err), err)
	} else {
		applied = o.Resolve(gen, data)
	}
	return o.State(), applied
}

func (o *Operation[T]) applyIfCurrent(gen uint64, fn func(*State[T])) bool {
	o.mu.Lock()
	if o.state.Generation != gen {
		o.mu.Unlock()
		return false
	}
	fn(&o.state)
	snapshot, listener := o.state, o.listener
	o.mu.Unlock()

	if listener != nil {
		listener(snapshot)
	}
	return true
}

func (o *Operation[T]) transition(fn func(*State[T])) uint64 {
	o.mu.Lock()
	fn(&o.state)
	snapshot, listener := o.state, o.listener
	o.mu.Unlock()

	if listener != nil {
		listener(snapshot)
	}
	return snapshot.Generation
}
