package fault

import "fmt"

// Origin tells where a fault was captured.
type Origin string

const (
	// OriginHandler is a panic recovered inside a request handler.
	OriginHandler Origin = "handler"
	// OriginServe is an error returned by the serving loop itself.
	OriginServe Origin = "serve"
)

// Fault is an abrupt failure: a recovered panic value or a serving-loop error.
type Fault struct {
	Origin Origin
	Value  any
	Stack  []byte
}

// Recovered wraps a value returned by recover().
func Recovered(v any, stack []byte) *Fault {
	return &Fault{Origin: OriginHandler, Value: v, Stack: stack}
}

// FromServe wraps an error returned by the serving loop.
func FromServe(err error) *Fault {
	return &Fault{Origin: OriginServe, Value: err}
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s fault: %v", f.Origin, f.Value)
}

// Unwrap exposes the wrapped error, including nested faults.
func (f *Fault) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}
