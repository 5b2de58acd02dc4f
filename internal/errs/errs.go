package errs

import "errors"

// Code is an application error code.
type Code string

const (
	// Config means required configuration (token, association target) is
	// missing. Checked before any network call.
	Config Code = "config"
	// InvalidArgument covers malformed request input: bad day-of-week,
	// non-positive limit, missing required fields.
	InvalidArgument Code = "invalid_argument"
	// NotFound means candidate resolution produced zero records.
	NotFound Code = "not_found"
	// Upstream means the record store returned a non-success status.
	Upstream Code = "upstream"
	// Internal is everything else.
	Internal Code = "internal"
)

// Error is a coded application error. Status is the upstream HTTP status
// for Upstream errors, zero otherwise.
type Error struct {
	Code    Code
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a coded error with message.
func New(code Code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a coded error with message and cause.
func Wrap(code Code, message string, cause error) error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// NewUpstream creates an Upstream error carrying the store's HTTP status.
func NewUpstream(status int, message string) error {
	return &Error{
		Code:    Upstream,
		Status:  status,
		Message: message,
	}
}

// CodeOf returns the error code, defaulting to internal.
func CodeOf(err error) Code {
	if err == nil {
		return Internal
	}
	var coded *Error
	if errors.As(err, &coded) {
		if coded.Code == "" {
			return Internal
		}
		return coded.Code
	}
	return Internal
}

// StatusOf returns the upstream HTTP status, or zero when the error did not
// originate from the record store.
func StatusOf(err error) int {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Status
	}
	return 0
}

// MessageOf returns a user-facing error message.
// If the error has no typed wrapper, returns "internal error" to prevent
// leaking raw transport errors or credentials to tool responses.
func MessageOf(err error) string {
	if err == nil {
		return string(Internal)
	}
	var coded *Error
	if errors.As(err, &coded) && coded.Message != "" {
		return coded.Message
	}
	return "internal error"
}
