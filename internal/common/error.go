// Package common defines shared constants and sentinel errors used across
// client and server layers of Framez. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
)

// User-facing failure messages. Both the duplicate-email and the
// invalid-credentials texts are part of the API contract: login reports the
// same message for an unknown email and a wrong password so callers cannot
// tell which factor failed.
const (
	MsgDuplicateEmail     = "User with this email already exists"
	MsgInvalidCredentials = "Invalid email or password"
)
