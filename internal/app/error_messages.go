// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains user-facing message strings shared by the service
// layer and the TUI, so the same outcome is always worded the same way.
package app

const (
	// MsgNotLoggedIn is shown when an operation needs an endpoint and a token.
	MsgNotLoggedIn = "not logged in: enter the server address and a token"

	// MsgPermissionDenied is shown for 403 answers.
	MsgPermissionDenied = "permission denied: the token cannot access this path"

	// MsgUnauthorized is shown for 401 answers.
	MsgUnauthorized = "the token was rejected by the server"

	// MsgNotFound is shown for 404 answers.
	MsgNotFound = "nothing found at this path"

	// MsgBadRequest is shown for 400 answers.
	MsgBadRequest = "the server rejected the request"

	// MsgServerError is shown for 5xx answers.
	MsgServerError = "the server failed to handle the request"

	// MsgMalformedResponse is shown when a response body cannot be decoded.
	MsgMalformedResponse = "the server sent a response that could not be read"

	// MsgRequestFailed is shown for transport failures with no response.
	MsgRequestFailed = "request failed"

	// MsgInvalidSecretPath is shown when saving to an empty or directory path.
	MsgInvalidSecretPath = "secret path must name a leaf (non-empty, no trailing slash)"

	// MsgSecretSaved is the status line after a successful save.
	MsgSecretSaved = "secret saved"

	// MsgSecretDeleted is the status line after a successful delete.
	MsgSecretDeleted = "secret deleted"

	// MsgLoggedOut is the status line after logout.
	MsgLoggedOut = "logged out"
)
