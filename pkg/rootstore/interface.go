package rootstore

import "errors"

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("root store is closed")

// IRootStore persists published allowlist roots across restarts.
// All implementations must be thread-safe; the HTTP service reads while an
// operator publishes.
//
// The interface supports:
// - Root version management (save, load, list, delete)
// - Active version tracking (which root is currently served)
// - Lifecycle management (close, health check)
type IRootStore interface {
	// Root Version Management

	// SaveRootVersion persists a root version keyed by its Version number.
	// Saving an existing version overwrites it, which is how a version is
	// marked as committed on chain.
	SaveRootVersion(version *RootVersion) error

	// LoadRootVersion retrieves a root version.
	// Returns nil if the version doesn't exist, error only on storage failure.
	LoadRootVersion(version int64) (*RootVersion, error)

	// ListRootVersions returns all persisted versions sorted by Version (ascending).
	// Returns an empty slice if no versions exist.
	ListRootVersions() ([]*RootVersion, error)

	// DeleteRootVersion removes a version. Idempotent.
	DeleteRootVersion(version int64) error

	// Active Version Tracking

	// SetActiveVersion stores which version is currently served.
	// Setting 0 clears the active version.
	SetActiveVersion(version int64) error

	// GetActiveVersion returns the active version number, 0 if none is set.
	GetActiveVersion() (int64, error)

	// Lifecycle Management

	// Close cleanly shuts down the store. Idempotent.
	Close() error

	// HealthCheck verifies the store is operational.
	HealthCheck() error
}
