package pipeline

import (
	"errors"
	"fmt"
)

// Stage identifies where in the pipeline a request failed.
type Stage string

const (
	StageValidation    Stage = "validation"
	StageStorage       Stage = "storage"
	StageTranscription Stage = "transcription"
	StageInternal      Stage = "internal"
)

// Error is a pipeline failure tagged with the stage that produced it.
// Validation errors are the client's fault; everything else is a backend
// fault and surfaces as an internal error at the HTTP boundary.
type Error struct {
	Stage Stage
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newStageError(stage Stage, msg string, err error) *Error {
	return &Error{Stage: stage, Msg: msg, Err: err}
}

// StageOf reports the failing stage of a pipeline error, or StageInternal
// for anything unanticipated.
func StageOf(err error) Stage {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Stage
	}
	return StageInternal
}

// IsValidation reports whether err is a client input error.
func IsValidation(err error) bool {
	return StageOf(err) == StageValidation
}
