package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrNoEndpoint        = errors.New("endpoint is not set")
	ErrInvalidEndpoint   = errors.New("invalid endpoint")
	ErrMalformedResponse = errors.New("malformed response")

	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("client unauthorized")
	ErrForbidden        = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrServerError      = errors.New("server error")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// ResponseError is a non-2xx answer from the server. Body holds the raw
// response payload.
type ResponseError struct {
	StatusCode int
	Body       []byte

	err error
}

func (e *ResponseError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s (status %d)", e.err, e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d): %s", e.err, e.StatusCode, e.Body)
}

func (e *ResponseError) Unwrap() error {
	return e.err
}
