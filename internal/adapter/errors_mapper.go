package adapter

import (
	"bytes"
	"net/http"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(statusCode int, body []byte) error {
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return nil
	}

	respErr := &ResponseError{StatusCode: statusCode, Body: bytes.TrimSpace(body)}

	switch {
	case statusCode == http.StatusBadRequest:
		respErr.err = ErrBadRequest
	case statusCode == http.StatusUnauthorized:
		respErr.err = ErrUnauthorized
	case statusCode == http.StatusForbidden:
		respErr.err = ErrForbidden
	case statusCode == http.StatusNotFound:
		respErr.err = ErrNotFound
	case statusCode >= http.StatusInternalServerError:
		respErr.err = ErrServerError
	default:
		respErr.err = ErrUnexpectedStatus
	}

	return respErr
}

func mapRestyError(resp *resty.Response) error {
	return mapHTTPError(resp.StatusCode(), resp.Body())
}

// isHealthStatus reports whether code is one of the sys/health answers that
// still describe the node: active, standby, DR/performance standby, not
// initialised and sealed.
func isHealthStatus(code int) bool {
	switch code {
	case http.StatusOK, http.StatusTooManyRequests, 472, 473, http.StatusNotImplemented, http.StatusServiceUnavailable:
		return true
	default:
		return false
	}
}
