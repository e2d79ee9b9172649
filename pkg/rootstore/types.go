package rootstore

import (
	"time"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

// RootVersion is one published allowlist: the addresses exactly as they were
// supplied, the root they produced and, once sent, the setRoot transaction.
type RootVersion struct {
	// Version is the primary key, assigned monotonically by the registry.
	Version int64 `json:"version"`

	// ID is a random identifier that survives re-numbering across stores.
	ID string `json:"id"`

	// Label is a free-form operator note such as "presale-wave-2".
	Label string `json:"label"`

	Root types.Digest `json:"root"`

	// Addresses in leaf order, hex encoded. The tree is rebuilt from these on load.
	Addresses []string `json:"addresses"`

	// SortedLeaves records the build mode so a rebuild yields the same root.
	SortedLeaves bool `json:"sortedLeaves"`

	// CreatedAt is the Unix timestamp of publication.
	CreatedAt int64 `json:"createdAt"`

	// CommittedTx is the hash of the setRoot transaction, empty until committed.
	CommittedTx string `json:"committedTx,omitempty"`
}

// Count is the number of leaves in this version.
func (rv *RootVersion) Count() int {
	return len(rv.Addresses)
}

// IsCommitted reports whether a setRoot transaction has been recorded.
func (rv *RootVersion) IsCommitted() bool {
	return rv != nil && rv.CommittedTx != ""
}

// Age returns how long ago the version was published.
func (rv *RootVersion) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(rv.CreatedAt, 0))
}

// Copy returns a deep copy.
func (rv *RootVersion) Copy() *RootVersion {
	if rv == nil {
		return nil
	}
	out := *rv
	out.Addresses = make([]string, len(rv.Addresses))
	copy(out.Addresses, rv.Addresses)
	return &out
}

// WithoutAddresses returns a copy with the address list dropped, for listings.
func (rv *RootVersion) WithoutAddresses() *RootVersion {
	if rv == nil {
		return nil
	}
	out := *rv
	out.Addresses = nil
	return &out
}
