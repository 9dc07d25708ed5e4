package api

import (
	"errors"
	"net/http"

	"github.com/samcharles93/xfsconv/pkg/xfs"
)

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrBodyTooLarge   = errors.New("request body too large")
)

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

// classify maps an error to the HTTP status and error type reported to clients.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "request_too_large"
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request_error"
	case errors.Is(err, xfs.ErrTruncatedInput):
		return http.StatusBadRequest, "truncated_input"
	case errors.Is(err, xfs.ErrUnterminatedString):
		return http.StatusBadRequest, "unterminated_string"
	case errors.Is(err, xfs.ErrDepthExceeded):
		return http.StatusBadRequest, "depth_exceeded"
	case errors.Is(err, xfs.ErrMisaligned):
		return http.StatusBadRequest, "misaligned"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}
