package tokenmanager

import "errors"

var (
	// ErrMissingConfig indicates the token endpoint or client credentials are not configured.
	ErrMissingConfig = errors.New("missing required token configuration")

	// ErrAuthFailed indicates every configured grant was attempted and rejected.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrGrantRejected indicates the token endpoint returned a non-success status.
	ErrGrantRejected = errors.New("token endpoint rejected grant")

	// ErrInvalidGrantResponse indicates the token endpoint response could not be used.
	ErrInvalidGrantResponse = errors.New("invalid token endpoint response")
)
