// Package apperr classifies pipeline failures so callers can map them to
// user-facing messages and HTTP statuses.
package apperr

import "errors"

// Error kinds. Every error produced by the analysis pipeline matches exactly
// one or more of these with errors.Is.
var (
	ErrConfig     = errors.New("configuration error")
	ErrValidation = errors.New("validation error")
	ErrExtraction = errors.New("extraction error")
	ErrRemote     = errors.New("remote call error")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

// New returns a leaf error of the given kind. The kind does not appear in the
// message.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// StageError labels a lower error with the pipeline stage that caught it.
type StageError struct {
	Stage string
	Kind  error
	Err   error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return e.Stage
	}
	return e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Wrap labels err with stage. A nil err stays nil.
func Wrap(stage string, kind error, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Kind: kind, Err: err}
}

// KindOf returns the most specific kind in err's chain, or nil when err is not
// classified.
func KindOf(err error) error {
	for _, kind := range []error{ErrConfig, ErrValidation, ErrExtraction, ErrRemote} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
