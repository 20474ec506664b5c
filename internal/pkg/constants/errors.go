package constants

import "net/http"

// CodedError carries the HTTP status the API error handler should
// answer with. Wrapping is fine; the handler unwraps until it finds
// one.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound        = NewCodedError(http.StatusNotFound, "not found")
	ErrUnauthorized      = NewCodedError(http.StatusUnauthorized, "unauthorized")
	ErrMissingAuthCookie = NewCodedError(http.StatusUnauthorized, "missing auth cookie")
	ErrInvalidCreds      = NewCodedError(http.StatusUnauthorized, "invalid credentials")

	ErrAliasTaken        = NewCodedError(http.StatusConflict, "alias already exists")
	ErrEmailAlreadyTaken = NewCodedError(http.StatusConflict, "an organization with that email already exists")

	ErrPasswordMismatch  = NewCodedError(http.StatusBadRequest, "passwords do not match")
	ErrBadWindow         = NewCodedError(http.StatusBadRequest, "window has no leading day count")
	ErrBadOccurrenceTime = NewCodedError(http.StatusBadRequest, "invalid occurrence_time format, use 'DD/MM/YYYY HH:MM'")
	ErrValidation        = NewCodedError(http.StatusUnprocessableEntity, "request validation failed")
	ErrConfirmRequired   = NewCodedError(http.StatusBadRequest, "you must set confirm=true to delete account")
	ErrUnsupportedMedia  = NewCodedError(http.StatusBadRequest, "file must be image or video")
)
