package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/rootstore"
)

// MemoryRootStore is an in-memory implementation of IRootStore.
// This implementation is intended for TESTING and local development.
//
// All data is lost when the process exits. Values are deep copied on the way
// in and out so callers cannot mutate stored versions.
type MemoryRootStore struct {
	mu sync.RWMutex

	versions      map[int64]*rootstore.RootVersion
	activeVersion int64

	closed bool
}

// Ensure MemoryRootStore implements IRootStore
var _ rootstore.IRootStore = (*MemoryRootStore)(nil)

// NewMemoryRootStore creates a new in-memory root store.
func NewMemoryRootStore() *MemoryRootStore {
	fmt.Println("⚠️  WARNING: Using in-memory root store - published roots are lost on restart")

	return &MemoryRootStore{
		versions: make(map[int64]*rootstore.RootVersion),
	}
}

// SaveRootVersion persists a root version.
func (m *MemoryRootStore) SaveRootVersion(version *rootstore.RootVersion) error {
	if version == nil {
		return fmt.Errorf("cannot save nil RootVersion")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return rootstore.ErrClosed
	}

	m.versions[version.Version] = version.Copy()
	return nil
}

// LoadRootVersion retrieves a root version by number.
func (m *MemoryRootStore) LoadRootVersion(version int64) (*rootstore.RootVersion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, rootstore.ErrClosed
	}

	rv, exists := m.versions[version]
	if !exists {
		return nil, nil // Not found is not an error
	}
	return rv.Copy(), nil
}

// ListRootVersions returns all versions sorted by number.
func (m *MemoryRootStore) ListRootVersions() ([]*rootstore.RootVersion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, rootstore.ErrClosed
	}

	numbers := make([]int64, 0, len(m.versions))
	for v := range m.versions {
		numbers = append(numbers, v)
	}
	sort.Slice(numbers, func(i, j int) bool {
		return numbers[i] < numbers[j]
	})

	result := make([]*rootstore.RootVersion, 0, len(numbers))
	for _, v := range numbers {
		result = append(result, m.versions[v].Copy())
	}
	return result, nil
}

// DeleteRootVersion removes a root version.
func (m *MemoryRootStore) DeleteRootVersion(version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return rootstore.ErrClosed
	}

	delete(m.versions, version)
	return nil
}

// SetActiveVersion stores the active version number.
func (m *MemoryRootStore) SetActiveVersion(version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return rootstore.ErrClosed
	}

	m.activeVersion = version
	return nil
}

// GetActiveVersion retrieves the active version number.
func (m *MemoryRootStore) GetActiveVersion() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, rootstore.ErrClosed
	}

	return m.activeVersion, nil
}

// Close shuts down the store.
func (m *MemoryRootStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// HealthCheck verifies the store is operational.
func (m *MemoryRootStore) HealthCheck() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return rootstore.ErrClosed
	}
	return nil
}
