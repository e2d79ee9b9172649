package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func validServerConfig() *AllowlistServerConfig {
	return &AllowlistServerConfig{
		Port:      8080,
		StoreType: StoreType_Memory,
	}
}

func TestAllowlistServerConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *AllowlistServerConfig)
		wantErr string
	}{
		{"Valid memory", func(c *AllowlistServerConfig) {}, ""},
		{"Valid badger", func(c *AllowlistServerConfig) {
			c.StoreType = StoreType_Badger
			c.DataPath = "/tmp/bubble"
		}, ""},
		{"Badger without path", func(c *AllowlistServerConfig) {
			c.StoreType = StoreType_Badger
		}, "dataPath"},
		{"Redis without address", func(c *AllowlistServerConfig) {
			c.StoreType = StoreType_Redis
		}, "redis.address"},
		{"Redis bad db", func(c *AllowlistServerConfig) {
			c.StoreType = StoreType_Redis
			c.Redis.Address = "localhost:6379"
			c.Redis.DB = 16
		}, "redis.db"},
		{"Unknown store", func(c *AllowlistServerConfig) {
			c.StoreType = "postgres"
		}, "storeType"},
		{"Port out of range", func(c *AllowlistServerConfig) {
			c.Port = 70000
		}, "port"},
		{"Rate limit without burst", func(c *AllowlistServerConfig) {
			c.RateLimit = 5
		}, "rateBurst"},
		{"Negative rate limit", func(c *AllowlistServerConfig) {
			c.RateLimit = -1
		}, "rateLimit"},
		{"On-chain check", func(c *AllowlistServerConfig) {
			c.RpcUrl = "http://localhost:8545"
			c.ContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
			c.ChainID = ChainId_EthereumAnvil
		}, ""},
		{"On-chain check without rpc", func(c *AllowlistServerConfig) {
			c.ContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
			c.ChainID = ChainId_EthereumAnvil
		}, "rpcUrl"},
		{"On-chain check with unknown chain", func(c *AllowlistServerConfig) {
			c.RpcUrl = "http://localhost:8545"
			c.ContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
			c.ChainID = 5
		}, "chainId"},
		{"Root watcher", func(c *AllowlistServerConfig) {
			c.RpcUrl = "http://localhost:8545"
			c.ContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
			c.ChainID = ChainId_EthereumAnvil
			c.RootCheckBlocks = 10
		}, ""},
		{"Root watcher without contract", func(c *AllowlistServerConfig) {
			c.RootCheckBlocks = 10
		}, "rootCheckBlocks"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := validServerConfig()
			tc.mutate(c)
			err := c.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestAllowlistServerConfig_ReportsAllErrors(t *testing.T) {
	c := &AllowlistServerConfig{Port: 0, StoreType: "nope", RateLimit: -2}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
	assert.Contains(t, err.Error(), "storeType")
	assert.Contains(t, err.Error(), "rateLimit")
}

func TestContractClientConfig_Validate(t *testing.T) {
	c := &ContractClientConfig{
		RpcUrl:  "http://localhost:8545",
		ChainID: ChainId_EthereumAnvil,
	}
	require.NoError(t, c.Validate())
	require.Error(t, c.RequireSigner())
	require.Error(t, c.RequireContract())

	c.PrivateKey = testPrivateKey
	c.ContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	require.NoError(t, c.Validate())
	require.NoError(t, c.RequireSigner())
	require.NoError(t, c.RequireContract())

	c.PrivateKey = "0x1234"
	err := c.Validate()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "0x1234")

	bad := &ContractClientConfig{ChainID: 1234, ContractAddress: "0xnope"}
	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpcUrl")
	assert.Contains(t, err.Error(), "chainId")
	assert.Contains(t, err.Error(), "contractAddress")
}

func TestChainTables(t *testing.T) {
	for _, id := range GetSupportedChainIDs() {
		name, ok := ChainIdToName[id]
		require.True(t, ok)
		assert.Equal(t, id, ChainNameToId[name])
	}
	assert.Equal(t, ChainId(31337), ChainNameToId[ChainName_EthereumAnvil])

	assert.True(t, IsEthereum(ChainId_EthereumSepolia))
	assert.True(t, IsEthereum(ChainId_EthereumAnvil))
	assert.False(t, IsEthereum(ChainId_BSCTestnet))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PUBLIC_URL=http://127.0.0.1:8545\nBUBBLE_TEST_PRESET=from-file\n"), 0o600))

	t.Setenv(EnvLegacyPublicURL, "")
	require.NoError(t, os.Unsetenv(EnvLegacyPublicURL))
	t.Setenv("BUBBLE_TEST_PRESET", "from-env")

	loaded, ok := LoadDotEnv(filepath.Join(dir, "missing.env"), path)
	require.True(t, ok)
	assert.Equal(t, path, loaded)
	assert.Equal(t, "http://127.0.0.1:8545", os.Getenv(EnvLegacyPublicURL))
	// existing variables win
	assert.Equal(t, "from-env", os.Getenv("BUBBLE_TEST_PRESET"))

	_, ok = LoadDotEnv(filepath.Join(dir, "missing.env"))
	assert.False(t, ok)
}
