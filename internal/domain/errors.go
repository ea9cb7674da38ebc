package domain

import (
	"errors"
	"fmt"
)

// Fetch failure categories. Match with errors.Is.
var (
	ErrNetwork = errors.New("network")
	ErrDecode  = errors.New("decode")
	ErrEmpty   = errors.New("empty result")
)

// FetchError is a categorized failure of one upstream request.
type FetchError struct {
	Kind error  // one of ErrNetwork, ErrDecode, ErrEmpty
	Op   string // e.g. "fetch weather KJFK"
	Err  error  // underlying cause, may be nil for ErrEmpty
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NetworkError wraps a transport failure.
func NetworkError(op string, err error) error {
	return &FetchError{Kind: ErrNetwork, Op: op, Err: err}
}

// DecodeError wraps a body that is not the expected top-level shape.
func DecodeError(op string, err error) error {
	return &FetchError{Kind: ErrDecode, Op: op, Err: err}
}

// EmptyError reports a well-formed response that carries no data.
func EmptyError(op string) error {
	return &FetchError{Kind: ErrEmpty, Op: op}
}

// KindOf names the category of err for logs and metric labels.
func KindOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrEmpty):
		return "empty"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrNetwork):
		return "network"
	default:
		return "error"
	}
}
