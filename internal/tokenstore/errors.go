package tokenstore

import "errors"

var (
	// ErrNoToken indicates no usable token record is persisted
	ErrNoToken = errors.New("tokenstore: no cached token")

	// ErrUnavailable indicates the store backend cannot be reached
	ErrUnavailable = errors.New("tokenstore: backend unavailable")
)
