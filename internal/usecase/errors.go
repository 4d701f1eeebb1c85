package usecase

import (
	"errors"
	"fmt"

	"flux-web/internal/domain"
)

type ErrorCode string

const (
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
	ErrorNotFound     ErrorCode = "NOT_FOUND"
	ErrorConflict     ErrorCode = "CONFLICT"
	ErrorRateLimited  ErrorCode = "RATE_LIMITED"
	ErrorUpstream     ErrorCode = "UPSTREAM_ERROR"
	ErrorInternal     ErrorCode = "INTERNAL_ERROR"
	// ErrorCanceled means the caller went away before the work finished.
	ErrorCanceled ErrorCode = "REQUEST_CANCELLED"
)

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

// storeError classifies a repository failure. reason names the operation,
// e.g. "expo_get".
func storeError(reason string, err error) *Error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return newError(ErrorNotFound, reason+"_not_found", err)
	case errors.Is(err, domain.ErrConflict):
		return newError(ErrorConflict, reason+"_conflict", err)
	default:
		return newError(ErrorInternal, reason+"_error", err)
	}
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}
