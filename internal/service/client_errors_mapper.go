// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/vault-browser/internal/adapter"
	"github.com/MKhiriev/vault-browser/internal/app"
)

// describeError picks the one-line headline shown above an error payload.
func describeError(err error) string {
	switch {
	case errors.Is(err, ErrNotLoggedIn), errors.Is(err, adapter.ErrNoEndpoint):
		return app.MsgNotLoggedIn
	case errors.Is(err, ErrInvalidSecretPath):
		return app.MsgInvalidSecretPath
	case errors.Is(err, adapter.ErrForbidden):
		return app.MsgPermissionDenied
	case errors.Is(err, adapter.ErrUnauthorized):
		return app.MsgUnauthorized
	case errors.Is(err, adapter.ErrNotFound):
		return app.MsgNotFound
	case errors.Is(err, adapter.ErrBadRequest):
		return app.MsgBadRequest
	case errors.Is(err, adapter.ErrServerError):
		return app.MsgServerError
	case errors.Is(err, adapter.ErrMalformedResponse):
		return app.MsgMalformedResponse
	default:
		return app.MsgRequestFailed
	}
}
