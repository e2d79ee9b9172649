package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/allowlist"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/config"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/testutil"
)

const hardhatFourRoot = "0xd4453790033a2bd762f526409b7f358023773723d9e9bc42487e4996869162b6"

func writeAllowlist(t *testing.T, n int) string {
	t.Helper()
	var lines []string
	for _, a := range testutil.HardhatAccounts()[:n] {
		lines = append(lines, a.Hex())
	}
	path := filepath.Join(t.TempDir(), "allowlist.txt")
	require.NoError(t, os.WriteFile(path, []byte("# presale\n"+strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestNewApp(t *testing.T) {
	t.Run("Help", func(t *testing.T) {
		app := newApp()
		var out bytes.Buffer
		app.Writer = &out
		require.NoError(t, app.Run([]string{"allowlist-server", "--help"}))
		assert.Contains(t, out.String(), "allowlist-server")
		assert.Contains(t, out.String(), "--trust-proxy")
		assert.Contains(t, out.String(), "--verbose")
	})

	t.Run("Parses flags", func(t *testing.T) {
		var cfg *config.AllowlistServerConfig
		app := newApp()
		app.Action = func(c *cli.Context) error {
			cfg = parseServerConfig(c)
			return cfg.Validate()
		}

		dataPath := t.TempDir()
		require.NoError(t, app.Run([]string{
			"allowlist-server",
			"--port", "9000",
			"--store", "badger",
			"--data-path", dataPath,
			"--sorted-leaves",
			"--admin-token", "s3cret",
			"--rate-limit", "5",
			"--rate-burst", "10",
			"--trust-proxy",
			"--chain", "31337",
			"--verbose",
		}))
		require.NotNil(t, cfg)
		assert.Equal(t, 9000, cfg.Port)
		assert.Equal(t, config.StoreType_Badger, cfg.StoreType)
		assert.Equal(t, dataPath, cfg.DataPath)
		assert.True(t, cfg.SortedLeaves)
		assert.Equal(t, "s3cret", cfg.AdminToken)
		assert.Equal(t, 5.0, cfg.RateLimit)
		assert.Equal(t, 10, cfg.RateBurst)
		assert.True(t, cfg.TrustProxy)
		assert.Equal(t, config.ChainId(31337), cfg.ChainID)
		assert.Equal(t, "bubble:", cfg.Redis.KeyPrefix)
		assert.True(t, cfg.Debug)
		assert.False(t, cfg.OnChainCheckEnabled())
	})

	t.Run("Defaults", func(t *testing.T) {
		var cfg *config.AllowlistServerConfig
		app := newApp()
		app.Action = func(c *cli.Context) error {
			cfg = parseServerConfig(c)
			return nil
		}
		require.NoError(t, app.Run([]string{"allowlist-server"}))
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, config.StoreType_Memory, cfg.StoreType)
		assert.Equal(t, 20, cfg.RateBurst)
		assert.False(t, cfg.TrustProxy)
		assert.Equal(t, config.ChainId_EthereumAnvil, cfg.ChainID)
	})
}

func TestOpenRootStore(t *testing.T) {
	l := testutil.TestLogger(t)

	t.Run("Memory", func(t *testing.T) {
		store, err := openRootStore(&config.AllowlistServerConfig{StoreType: config.StoreType_Memory}, l)
		require.NoError(t, err)
		require.NoError(t, store.HealthCheck())
		require.NoError(t, store.Close())
	})

	t.Run("Badger", func(t *testing.T) {
		cfg := &config.AllowlistServerConfig{StoreType: config.StoreType_Badger, DataPath: t.TempDir()}
		store, err := openRootStore(cfg, l)
		require.NoError(t, err)
		require.NoError(t, store.HealthCheck())
		require.NoError(t, store.Close())
	})

	t.Run("Redis unreachable", func(t *testing.T) {
		cfg := &config.AllowlistServerConfig{
			StoreType: config.StoreType_Redis,
			Redis:     config.RedisConfig{Address: "127.0.0.1:1"},
		}
		_, err := openRootStore(cfg, l)
		require.Error(t, err)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := openRootStore(&config.AllowlistServerConfig{StoreType: "sqlite"}, l)
		require.Error(t, err)
	})
}

func TestBootstrapAllowlist(t *testing.T) {
	l := testutil.TestLogger(t)
	ctx := context.Background()

	store, err := openRootStore(&config.AllowlistServerConfig{StoreType: config.StoreType_Memory}, l)
	require.NoError(t, err)
	registry := allowlist.NewRegistry(store, nil, l)

	path := writeAllowlist(t, 4)

	published, err := bootstrapAllowlist(ctx, registry, path, l)
	require.NoError(t, err)
	assert.True(t, published)
	assert.Equal(t, hardhatFourRoot, registry.Active().Tree.Root().Hex())
	assert.Equal(t, "bootstrap: allowlist.txt", registry.Active().Version.Label)

	// same file again is a no-op
	published, err = bootstrapAllowlist(ctx, registry, path, l)
	require.NoError(t, err)
	assert.False(t, published)
	assert.Equal(t, int64(1), registry.Active().Version.Version)

	// a changed file publishes the next version
	published, err = bootstrapAllowlist(ctx, registry, writeAllowlist(t, 3), l)
	require.NoError(t, err)
	assert.True(t, published)
	assert.Equal(t, int64(2), registry.Active().Version.Version)

	_, err = bootstrapAllowlist(ctx, registry, filepath.Join(t.TempDir(), "missing.txt"), l)
	require.Error(t, err)
}
