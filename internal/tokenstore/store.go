// Package tokenstore persists the single cached token record across process
// restarts. The in-memory token owned by the manager stays authoritative
// while the process is alive; a persisted record only bootstraps the next
// process.
package tokenstore

import "context"

// Record is the persisted token cache entry. There is no schema versioning;
// anything unreadable is treated as a cache miss.
type Record struct {
	AccessToken string `json:"access_token"`
	Expiry      int64  `json:"expiry"`    // epoch seconds
	CachedAt    int64  `json:"cached_at"` // epoch seconds
}

// Store is the durable backend for the token record.
type Store interface {
	// Load returns the persisted record, or ErrNoToken when no usable
	// record exists. Load never fails on a corrupt record.
	Load(ctx context.Context) (*Record, error)

	// Save replaces the persisted record wholesale.
	Save(ctx context.Context, rec *Record) error

	// Clear removes the persisted record. Clearing an empty store is not
	// an error.
	Clear(ctx context.Context) error
}
