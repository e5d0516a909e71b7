package llm

import "errors"

var (
	// ErrUnavailable indicates the generation server is unreachable.
	ErrUnavailable = errors.New("generation server unavailable")

	// ErrTimeout indicates the generation request exceeded its deadline.
	ErrTimeout = errors.New("generation request timed out")

	// ErrEmptyOutput indicates the model response contained no usable
	// SQL statement.
	ErrEmptyOutput = errors.New("no sql statement in generation output")

	// ErrRetryExhausted indicates all retry attempts failed.
	ErrRetryExhausted = errors.New("generation retry attempts exhausted")
)
