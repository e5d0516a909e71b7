package domain

import "errors"

var (
	// ErrNoViableIntent indicates no pattern cleared the confidence floor
	// and generation fallback was disabled or unavailable.
	ErrNoViableIntent = errors.New("no viable intent")

	// ErrGenerationFailed indicates the generation adapter returned an error
	// after all retry attempts.
	ErrGenerationFailed = errors.New("query generation failed")

	// ErrGenerationTimeout indicates the generation adapter exceeded its
	// deadline on the initial attempt and the retry.
	ErrGenerationTimeout = errors.New("query generation timed out")

	// ErrValidationFailed indicates a synthesized or generated query violated
	// the safety whitelist. Such a plan is never executed.
	ErrValidationFailed = errors.New("query plan failed validation")

	// ErrQueryError indicates an execution-time failure from the data store.
	ErrQueryError = errors.New("query execution failed")
)

// StageError carries the pipeline stage at which a failure occurred,
// alongside the underlying cause.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

// NewStageError wraps err with the stage it occurred in.
func NewStageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
