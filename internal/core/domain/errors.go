package domain

import "errors"

// Error kinds surfaced by the video catalog.
var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrSearchFailed    = errors.New("search failed")
	ErrNotFound        = errors.New("video not found")
	ErrInvalidRequest  = errors.New("invalid request")
)

// Error ties a failed operation to its kind and underlying cause.
// errors.Is matches both Kind and anything in the Err chain.
type Error struct {
	Op   string
	Kind error
	Err  error
}

// NewError builds an *Error. cause may be nil.
func NewError(op string, kind, cause error) *Error {
	return &Error{Op: op, Kind: kind, Err: cause}
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the kind of err, or nil when err carries none.
func KindOf(err error) error {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	for _, kind := range []error{ErrUnknownCategory, ErrSearchFailed, ErrNotFound, ErrInvalidRequest} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
