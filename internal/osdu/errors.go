package osdu

import "errors"

var (
	// ErrRequestFailed indicates a single OSDU API call returned a non-success status.
	ErrRequestFailed = errors.New("osdu: request failed")

	// ErrRecordNotFound indicates every record retrieval strategy was exhausted.
	ErrRecordNotFound = errors.New("osdu: could not retrieve record details")

	// ErrMalformedKind indicates a kind string does not follow the
	// <namespace>:<domain>:<category>--<Entity>:<version> grammar.
	ErrMalformedKind = errors.New("osdu: malformed kind")
)
