package lt

import (
	"errors"
	"fmt"
)

// Assertion causes, matched with errors.Is against an *AssertError.
var (
	ErrUnterminated  = errors.New("unterminated literal")
	ErrUnknownEscape = errors.New("unknown escape character")
	ErrOpen          = errors.New("cannot open source")
	ErrConverter     = errors.New("cannot build converter")
)

// ErrNoSource is the fatal cause when Next is called without a source.
var ErrNoSource = errors.New("no source open")

// AssertError is a recoverable failure recorded by the assertion sink.
type AssertError struct {
	Reason string
	Offset int64
	Err    error // cause, nil for host assertions
}

func (e *AssertError) Error() string {
	return fmt.Sprintf("lt: %s at offset %d", e.Reason, e.Offset)
}

func (e *AssertError) Unwrap() error {
	return e.Err
}

// FatalError is a failure the session cannot recover from, such as a read
// error from the backing store. The host decides whether to abort.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("lt: fatal: %s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err carries a *FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
