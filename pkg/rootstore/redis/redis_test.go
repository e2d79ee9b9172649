package redis

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/rootstore"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/rootstore/rootstoretest"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/testutil"
)

// getTestRedisAddress uses REDIS_TEST_ADDRESS if set, otherwise localhost:6379.
func getTestRedisAddress() string {
	if addr := os.Getenv("REDIS_TEST_ADDRESS"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// newTestStore connects under a unique key prefix on DB 15 and removes every
// key it wrote when the test ends. Skips when Redis is unreachable.
func newTestStore(t *testing.T) *RedisRootStore {
	t.Helper()

	cfg := &RedisConfig{
		Address:   getTestRedisAddress(),
		DB:        15,
		KeyPrefix: "test-" + uuid.NewString() + ":",
	}

	rs, err := NewRedisRootStore(cfg, testutil.TestLogger(t))
	if err != nil {
		t.Skipf("Redis not available at %s: %v", cfg.Address, err)
	}

	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := rs.client.Keys(ctx, cfg.KeyPrefix+"*").Result()
		if len(keys) > 0 {
			rs.client.Del(ctx, keys...)
		}
		_ = rs.Close()
	})

	return rs
}

func TestRedisRootStore(t *testing.T) {
	rootstoretest.RunSuite(t, func(t *testing.T) rootstore.IRootStore {
		return newTestStore(t)
	})
}

func TestRedisRootStore_IndexCleanup(t *testing.T) {
	rs := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, rs.SaveRootVersion(rootstoretest.SampleVersion(1)))
	require.NoError(t, rs.SaveRootVersion(rootstoretest.SampleVersion(2)))

	// drop the value behind the index's back
	require.NoError(t, rs.client.Del(ctx, rs.rootKey(2)).Err())

	list, err := rs.ListRootVersions()
	require.NoError(t, err)
	require.Len(t, list, 1)

	members, err := rs.client.SMembers(ctx, rs.prefixKey(keySetRoots)).Result()
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, members)
}

func TestRedisRootStore_PrefixIsolation(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)

	require.NoError(t, a.SaveRootVersion(rootstoretest.SampleVersion(1)))
	require.NoError(t, a.SetActiveVersion(1))

	loaded, err := b.LoadRootVersion(1)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	active, err := b.GetActiveVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(0), active)
}

func TestNewRedisRootStore_InvalidConfig(t *testing.T) {
	l := testutil.TestLogger(t)

	_, err := NewRedisRootStore(nil, l)
	require.Error(t, err)

	_, err = NewRedisRootStore(&RedisConfig{}, l)
	require.Error(t, err)
}
