package allowlist

import (
	"context"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/merkle"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/rootstore/memory"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/testutil"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

func newTestRegistry(t *testing.T, cfg *RegistryConfig) (*Registry, *memory.MemoryRootStore) {
	t.Helper()
	store := memory.NewMemoryRootStore()
	t.Cleanup(func() { _ = store.Close() })
	return NewRegistry(store, cfg, testutil.TestLogger(t)), store
}

func TestRegistry_EmptyUntilPublished(t *testing.T) {
	r, _ := newTestRegistry(t, nil)

	assert.Nil(t, r.Active())

	_, _, err := r.Proof(testutil.HardhatAccounts()[0])
	require.ErrorIs(t, err, ErrNoActiveRoot)

	_, err = r.Verify(testutil.HardhatAccounts()[0], nil)
	require.ErrorIs(t, err, ErrNoActiveRoot)

	_, err = r.Snapshot()
	require.ErrorIs(t, err, ErrNoActiveRoot)

	at, err := r.Restore()
	require.NoError(t, err)
	assert.Nil(t, at)
}

func TestRegistry_Publish(t *testing.T) {
	r, store := newTestRegistry(t, nil)
	accounts := testutil.HardhatAccounts()

	at, err := r.Publish(context.Background(), accounts[:4], "presale")
	require.NoError(t, err)
	assert.Equal(t, int64(1), at.Version.Version)
	assert.Equal(t, "presale", at.Version.Label)
	assert.NotEmpty(t, at.Version.ID)
	assert.Equal(t,
		"0xd4453790033a2bd762f526409b7f358023773723d9e9bc42487e4996869162b6",
		at.Version.Root.Hex())

	active, err := store.GetActiveVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)

	served, proof, err := r.Proof(accounts[1])
	require.NoError(t, err)
	assert.Same(t, at, served)
	ok, err := r.Verify(accounts[1], proof)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Verify(accounts[3], proof)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = r.Proof(accounts[6])
	require.ErrorIs(t, err, merkle.ErrNotFound)
}

func TestRegistry_PublishEmpty(t *testing.T) {
	r, store := newTestRegistry(t, nil)

	_, err := r.Publish(context.Background(), nil, "empty")
	require.ErrorIs(t, err, merkle.ErrEmptyInput)

	versions, err := store.ListRootVersions()
	require.NoError(t, err)
	assert.Empty(t, versions)
	assert.Nil(t, r.Active())
}

func TestRegistry_PublishCancelled(t *testing.T) {
	r, _ := newTestRegistry(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Publish(ctx, testutil.CreateTestAddresses(3), "")
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, r.Active())
}

func TestRegistry_VersionsIncrementAndRollback(t *testing.T) {
	r, _ := newTestRegistry(t, nil)
	accounts := testutil.HardhatAccounts()
	ctx := context.Background()

	v1, err := r.Publish(ctx, accounts[:4], "wave-1")
	require.NoError(t, err)
	v2, err := r.Publish(ctx, accounts[:3], "wave-2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v2.Version.Version)
	assert.Equal(t,
		"0x55e8063f883b9381398d8fef6fbae371817e8e4808a33a4145b8e3cdd65e3926",
		v2.Version.Root.Hex())

	// user3 dropped out in wave 2
	_, _, err = r.Proof(accounts[3])
	require.ErrorIs(t, err, merkle.ErrNotFound)

	versions, err := r.Versions()
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Nil(t, versions[0].Addresses)
	assert.Equal(t, v1.Version.Root, versions[0].Root)

	rolledBack, err := r.Activate(1)
	require.NoError(t, err)
	assert.Equal(t, v1.Version.Root, rolledBack.Tree.Root())
	_, _, err = r.Proof(accounts[3])
	require.NoError(t, err)

	_, err = r.Activate(42)
	require.Error(t, err)
	assert.Equal(t, int64(1), r.Active().Version.Version)
}

func TestRegistry_RestoreSortedLeaves(t *testing.T) {
	store := memory.NewMemoryRootStore()
	defer func() { _ = store.Close() }()
	l := testutil.TestLogger(t)
	addrs := testutil.CreateTestAddresses(9)

	first := NewRegistry(store, &RegistryConfig{SortedLeaves: true}, l)
	published, err := first.Publish(context.Background(), addrs, "sorted")
	require.NoError(t, err)
	assert.True(t, published.Version.SortedLeaves)

	// a registry configured for input order still restores the recorded mode
	second := NewRegistry(store, nil, l)
	restored, err := second.Restore()
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, published.Tree.Root(), restored.Tree.Root())
	assert.True(t, restored.Tree.SortedLeaves())

	for _, addr := range addrs {
		_, proof, err := second.Proof(addr)
		require.NoError(t, err)
		ok, err := second.Verify(addr, proof)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestRegistry_RestoreDetectsTampering(t *testing.T) {
	r, store := newTestRegistry(t, nil)
	_, err := r.Publish(context.Background(), testutil.CreateTestAddresses(4), "")
	require.NoError(t, err)

	rv, err := store.LoadRootVersion(1)
	require.NoError(t, err)
	rv.Root = types.Digest{0xde, 0xad}
	require.NoError(t, store.SaveRootVersion(rv))

	fresh := NewRegistry(store, nil, testutil.TestLogger(t))
	_, err = fresh.Restore()
	require.ErrorIs(t, err, ErrRootMismatch)
	assert.Nil(t, fresh.Active())
}

func TestRegistry_MarkCommitted(t *testing.T) {
	r, store := newTestRegistry(t, nil)
	_, err := r.Publish(context.Background(), testutil.CreateTestAddresses(2), "")
	require.NoError(t, err)

	txHash := common.HexToHash("0x1234")
	require.NoError(t, r.MarkCommitted(1, txHash))

	assert.True(t, r.Active().Version.IsCommitted())
	assert.Equal(t, txHash.Hex(), r.Active().Version.CommittedTx)

	rv, err := store.LoadRootVersion(1)
	require.NoError(t, err)
	assert.Equal(t, txHash.Hex(), rv.CommittedTx)

	require.ErrorIs(t, r.MarkCommitted(9, txHash), ErrVersionNotFound)

	_, err = r.Activate(9)
	require.ErrorIs(t, err, ErrVersionNotFound)
}

func TestRegistry_SnapshotMatchesActive(t *testing.T) {
	r, _ := newTestRegistry(t, nil)
	addrs := testutil.CreateTestAddresses(5)
	at, err := r.Publish(context.Background(), addrs, "snap")
	require.NoError(t, err)

	s, err := r.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, at.Tree.Root(), s.Root)
	assert.Equal(t, int64(1), s.Version)
	assert.Equal(t, "snap", s.Label)
	for _, addr := range addrs {
		assert.True(t, s.Verify(addr))
	}
}

func TestRegistry_ConcurrentPublishAndRead(t *testing.T) {
	r, _ := newTestRegistry(t, nil)
	ctx := context.Background()
	base := testutil.CreateTestAddresses(16)
	_, err := r.Publish(ctx, base, "base")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Publish(ctx, base, "again")
			assert.NoError(t, err)
		}()
	}
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(addr common.Address) {
			defer wg.Done()
			at, proof, err := r.Proof(addr)
			if assert.NoError(t, err) {
				// the proof always belongs to the tree it came with
				assert.True(t, merkle.VerifyProof(at.Tree.Root(), addr, proof))
			}
		}(base[i%len(base)])
	}
	wg.Wait()

	versions, err := r.Versions()
	require.NoError(t, err)
	assert.Len(t, versions, 5)
}
