// Package rootstoretest holds the behaviour every IRootStore backend must share.
package rootstoretest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/rootstore"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

// SampleVersion builds a RootVersion with deterministic contents.
func SampleVersion(version int64) *rootstore.RootVersion {
	return &rootstore.RootVersion{
		Version: version,
		ID:      fmt.Sprintf("id-%d", version),
		Label:   fmt.Sprintf("wave-%d", version),
		Root:    types.Digest{byte(version), 0xaa},
		Addresses: []string{
			"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
			"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		},
		CreatedAt: 1700000000 + version,
	}
}

// RunSuite exercises a store returned by newStore. Each subtest gets a fresh
// store; newStore is responsible for cleanup via t.Cleanup.
func RunSuite(t *testing.T, newStore func(t *testing.T) rootstore.IRootStore) {
	t.Run("SaveAndLoad", func(t *testing.T) {
		s := newStore(t)
		rv := SampleVersion(7)
		require.NoError(t, s.SaveRootVersion(rv))

		loaded, err := s.LoadRootVersion(7)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, rv, loaded)
	})

	t.Run("LoadNotFound", func(t *testing.T) {
		s := newStore(t)
		loaded, err := s.LoadRootVersion(999)
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("SaveNil", func(t *testing.T) {
		s := newStore(t)
		require.Error(t, s.SaveRootVersion(nil))
	})

	t.Run("OverwriteMarksCommitted", func(t *testing.T) {
		s := newStore(t)
		rv := SampleVersion(1)
		require.NoError(t, s.SaveRootVersion(rv))

		committed := rv.Copy()
		committed.CommittedTx = "0xabc"
		require.NoError(t, s.SaveRootVersion(committed))

		loaded, err := s.LoadRootVersion(1)
		require.NoError(t, err)
		assert.True(t, loaded.IsCommitted())
		assert.Equal(t, "0xabc", loaded.CommittedTx)

		list, err := s.ListRootVersions()
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("ListSorted", func(t *testing.T) {
		s := newStore(t)
		list, err := s.ListRootVersions()
		require.NoError(t, err)
		assert.Empty(t, list)

		for _, v := range []int64{5, 1, 3} {
			require.NoError(t, s.SaveRootVersion(SampleVersion(v)))
		}

		list, err = s.ListRootVersions()
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, int64(1), list[0].Version)
		assert.Equal(t, int64(3), list[1].Version)
		assert.Equal(t, int64(5), list[2].Version)
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.SaveRootVersion(SampleVersion(2)))
		require.NoError(t, s.DeleteRootVersion(2))

		loaded, err := s.LoadRootVersion(2)
		require.NoError(t, err)
		assert.Nil(t, loaded)

		// idempotent
		require.NoError(t, s.DeleteRootVersion(2))

		list, err := s.ListRootVersions()
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("ActiveVersion", func(t *testing.T) {
		s := newStore(t)
		active, err := s.GetActiveVersion()
		require.NoError(t, err)
		assert.Equal(t, int64(0), active)

		require.NoError(t, s.SetActiveVersion(4))
		active, err = s.GetActiveVersion()
		require.NoError(t, err)
		assert.Equal(t, int64(4), active)

		require.NoError(t, s.SetActiveVersion(0))
		active, err = s.GetActiveVersion()
		require.NoError(t, err)
		assert.Equal(t, int64(0), active)
	})

	t.Run("ReturnedValuesAreCopies", func(t *testing.T) {
		s := newStore(t)
		rv := SampleVersion(1)
		require.NoError(t, s.SaveRootVersion(rv))
		rv.Addresses[0] = "mutated after save"

		loaded, err := s.LoadRootVersion(1)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated after save", loaded.Addresses[0])

		loaded.Addresses[1] = "mutated after load"
		again, err := s.LoadRootVersion(1)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated after load", again.Addresses[1])
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		s := newStore(t)
		var wg sync.WaitGroup
		for i := int64(1); i <= 20; i++ {
			wg.Add(2)
			go func(v int64) {
				defer wg.Done()
				assert.NoError(t, s.SaveRootVersion(SampleVersion(v)))
			}(i)
			go func(v int64) {
				defer wg.Done()
				_, err := s.LoadRootVersion(v)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		list, err := s.ListRootVersions()
		require.NoError(t, err)
		assert.Len(t, list, 20)
	})

	t.Run("HealthCheck", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.HealthCheck())
	})

	t.Run("OperationsAfterClose", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Close())
		// idempotent
		require.NoError(t, s.Close())

		require.ErrorIs(t, s.SaveRootVersion(SampleVersion(1)), rootstore.ErrClosed)
		_, err := s.LoadRootVersion(1)
		require.ErrorIs(t, err, rootstore.ErrClosed)
		_, err = s.ListRootVersions()
		require.ErrorIs(t, err, rootstore.ErrClosed)
		require.ErrorIs(t, s.DeleteRootVersion(1), rootstore.ErrClosed)
		require.ErrorIs(t, s.SetActiveVersion(1), rootstore.ErrClosed)
		_, err = s.GetActiveVersion()
		require.ErrorIs(t, err, rootstore.ErrClosed)
		require.ErrorIs(t, s.HealthCheck(), rootstore.ErrClosed)
	})
}
