package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for the allowlist server and client
const (
	EnvRPCURL          = "BUBBLE_RPC_URL"
	EnvPrivateKey      = "BUBBLE_PRIVATE_KEY"
	EnvChainID         = "BUBBLE_CHAIN_ID"
	EnvContractAddress = "BUBBLE_CONTRACT_ADDRESS"
	EnvArtifactPath    = "BUBBLE_ARTIFACT_PATH"
	EnvPort            = "BUBBLE_PORT"
	EnvStoreType       = "BUBBLE_STORE_TYPE"
	EnvDataPath        = "BUBBLE_DATA_PATH"
	EnvRedisAddress    = "BUBBLE_REDIS_ADDRESS"
	EnvRedisPassword   = "BUBBLE_REDIS_PASSWORD"
	EnvRedisDB         = "BUBBLE_REDIS_DB"
	EnvRedisKeyPrefix  = "BUBBLE_REDIS_KEY_PREFIX"
	EnvAllowlistFile   = "BUBBLE_ALLOWLIST_FILE"
	EnvSortedLeaves    = "BUBBLE_SORTED_LEAVES"
	EnvAdminToken      = "BUBBLE_ADMIN_TOKEN"
	EnvRateLimit       = "BUBBLE_RATE_LIMIT"
	EnvRateBurst       = "BUBBLE_RATE_BURST"
	EnvTrustProxy      = "BUBBLE_TRUST_PROXY"
	EnvDebug           = "BUBBLE_DEBUG"
	EnvRootCheckBlocks = "BUBBLE_ROOT_CHECK_BLOCKS"
	EnvServerURL       = "BUBBLE_SERVER_URL"

	// Names used by the hardhat project's .env, accepted as fallbacks.
	EnvLegacyPublicURL  = "PUBLIC_URL"
	EnvLegacyPrivateKey = "PRIVATE_KEY"
)

type ChainId uint

const (
	ChainId_EthereumMainnet ChainId = 1
	ChainId_BSCTestnet      ChainId = 97
	ChainId_EthereumSepolia ChainId = 11155111
	ChainId_EthereumAnvil   ChainId = 31337
)

type ChainName string

const (
	ChainName_EthereumMainnet ChainName = "mainnet"
	ChainName_BSCTestnet      ChainName = "bsc-testnet"
	ChainName_EthereumSepolia ChainName = "sepolia"
	ChainName_EthereumAnvil   ChainName = "devnet"
)

var ChainIdToName = map[ChainId]ChainName{
	ChainId_EthereumMainnet: ChainName_EthereumMainnet,
	ChainId_BSCTestnet:      ChainName_BSCTestnet,
	ChainId_EthereumSepolia: ChainName_EthereumSepolia,
	ChainId_EthereumAnvil:   ChainName_EthereumAnvil,
}
var ChainNameToId = map[ChainName]ChainId{
	ChainName_EthereumMainnet: ChainId_EthereumMainnet,
	ChainName_BSCTestnet:      ChainId_BSCTestnet,
	ChainName_EthereumSepolia: ChainId_EthereumSepolia,
	ChainName_EthereumAnvil:   ChainId_EthereumAnvil,
}

// IsEthereum reports whether the chain uses Ethereum L1 fee dynamics.
func IsEthereum(chainId ChainId) bool {
	return chainId == ChainId_EthereumMainnet ||
		chainId == ChainId_EthereumSepolia ||
		chainId == ChainId_EthereumAnvil
}

// GetSupportedChainIDs returns all supported chain IDs
func GetSupportedChainIDs() []ChainId {
	return []ChainId{
		ChainId_EthereumMainnet,
		ChainId_BSCTestnet,
		ChainId_EthereumSepolia,
		ChainId_EthereumAnvil,
	}
}

// GetSupportedChainIDsString returns supported chain IDs as strings for CLI help
func GetSupportedChainIDsString() string {
	return fmt.Sprintf("%d (mainnet), %d (bsc-testnet), %d (sepolia), %d (anvil/hardhat)",
		ChainId_EthereumMainnet, ChainId_BSCTestnet, ChainId_EthereumSepolia, ChainId_EthereumAnvil)
}

type StoreType string

const (
	StoreType_Memory StoreType = "memory"
	StoreType_Badger StoreType = "badger"
	StoreType_Redis  StoreType = "redis"
)

var supportedStoreTypes = []string{string(StoreType_Memory), string(StoreType_Badger), string(StoreType_Redis)}

// RedisConfig is the subset of redis settings exposed as flags
type RedisConfig struct {
	Address   string `json:"address"`
	Password  string `json:"-"`
	DB        int    `json:"db"`
	KeyPrefix string `json:"keyPrefix"`
}

// AllowlistServerConfig configures the allowlist proof service
type AllowlistServerConfig struct {
	Port int `json:"port"`

	StoreType StoreType   `json:"storeType"`
	DataPath  string      `json:"dataPath"`
	Redis     RedisConfig `json:"redis"`

	// AllowlistFile is published on startup when set and differs from the active root.
	AllowlistFile string `json:"allowlistFile"`
	SortedLeaves  bool   `json:"sortedLeaves"`

	// AdminToken guards POST /allowlist. Empty disables publishing over HTTP.
	AdminToken string `json:"-"`

	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit float64 `json:"rateLimit"`
	RateBurst int     `json:"rateBurst"`
	// TrustProxy keys rate limiting on the first X-Forwarded-For hop instead of
	// the socket address.
	TrustProxy bool `json:"trustProxy"`

	// Optional on-chain check of the served root
	RpcUrl          string  `json:"rpcUrl"`
	ChainID         ChainId `json:"chainId"`
	ContractAddress string  `json:"contractAddress"`
	// RootCheckBlocks compares roots every N polled blocks; 0 disables the watcher
	// and leaves the comparison to /healthz.
	RootCheckBlocks uint64 `json:"rootCheckBlocks"`

	Debug bool `json:"debug"`
}

// Validate validates the server configuration
func (c *AllowlistServerConfig) Validate() error {
	var allErrors field.ErrorList

	if c.Port < 1 || c.Port > 65535 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("port"), c.Port, "must be between 1-65535"))
	}

	switch c.StoreType {
	case StoreType_Memory:
	case StoreType_Badger:
		if c.DataPath == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("dataPath"), "dataPath is required for the badger store"))
		}
	case StoreType_Redis:
		if c.Redis.Address == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("redis", "address"), "redis address is required for the redis store"))
		}
		if c.Redis.DB < 0 || c.Redis.DB > 15 {
			allErrors = append(allErrors, field.Invalid(field.NewPath("redis", "db"), c.Redis.DB, "must be between 0-15"))
		}
	default:
		allErrors = append(allErrors, field.NotSupported(field.NewPath("storeType"), c.StoreType, supportedStoreTypes))
	}

	if c.RateLimit < 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("rateLimit"), c.RateLimit, "must not be negative"))
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("rateBurst"), c.RateBurst, "must be at least 1 when rate limiting is enabled"))
	}

	// the on-chain check needs all three or none
	if c.ContractAddress != "" || c.RpcUrl != "" {
		if c.RpcUrl == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("rpcUrl"), "rpcUrl is required when contractAddress is set"))
		}
		allErrors = append(allErrors, validateContractAddress(field.NewPath("contractAddress"), c.ContractAddress, true)...)
		allErrors = append(allErrors, validateChainId(field.NewPath("chainId"), c.ChainID)...)
	} else if c.RootCheckBlocks > 0 {
		allErrors = append(allErrors, field.Invalid(field.NewPath("rootCheckBlocks"), c.RootCheckBlocks, "requires rpcUrl and contractAddress"))
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// OnChainCheckEnabled reports whether the server should compare its root with the contract.
func (c *AllowlistServerConfig) OnChainCheckEnabled() bool {
	return c.RpcUrl != "" && c.ContractAddress != ""
}

// ContractClientConfig configures the BubbleToken command line client
type ContractClientConfig struct {
	RpcUrl          string  `json:"rpcUrl"`
	PrivateKey      string  `json:"-"`
	ChainID         ChainId `json:"chainId"`
	ContractAddress string  `json:"contractAddress"`
	Debug           bool    `json:"debug"`
}

// Validate checks what every on-chain command needs. Signing and an existing
// contract are checked separately since deploy has no address yet and read
// commands need no key.
func (c *ContractClientConfig) Validate() error {
	var allErrors field.ErrorList

	if c.RpcUrl == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("rpcUrl"), "rpcUrl is required"))
	}
	allErrors = append(allErrors, validateChainId(field.NewPath("chainId"), c.ChainID)...)
	allErrors = append(allErrors, validateContractAddress(field.NewPath("contractAddress"), c.ContractAddress, false)...)
	if c.PrivateKey != "" {
		allErrors = append(allErrors, validatePrivateKey(field.NewPath("privateKey"), c.PrivateKey)...)
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// RequireSigner returns an error when no private key was configured.
func (c *ContractClientConfig) RequireSigner() error {
	if c.PrivateKey == "" {
		return field.ErrorList{
			field.Required(field.NewPath("privateKey"), fmt.Sprintf("set --private-key, %s or %s", EnvPrivateKey, EnvLegacyPrivateKey)),
		}.ToAggregate()
	}
	return nil
}

// RequireContract returns an error when no contract address was configured.
func (c *ContractClientConfig) RequireContract() error {
	return validateContractAddress(field.NewPath("contractAddress"), c.ContractAddress, true).ToAggregate()
}

func validateChainId(path *field.Path, chainId ChainId) field.ErrorList {
	if _, ok := ChainIdToName[chainId]; !ok {
		return field.ErrorList{field.Invalid(path, chainId, "unsupported chain ID. Supported: "+GetSupportedChainIDsString())}
	}
	return nil
}

func validateContractAddress(path *field.Path, address string, required bool) field.ErrorList {
	if address == "" {
		if required {
			return field.ErrorList{field.Required(path, "contract address is required")}
		}
		return nil
	}
	if !common.IsHexAddress(address) {
		return field.ErrorList{field.Invalid(path, address, "invalid address format")}
	}
	return nil
}

func validatePrivateKey(path *field.Path, key string) field.ErrorList {
	hexKey := strings.TrimPrefix(key, "0x")
	if len(hexKey) != 64 {
		// never echo the key itself
		return field.ErrorList{field.Invalid(path, "<redacted>", fmt.Sprintf("must be 32 bytes (64 hex chars), got %d chars", len(hexKey)))}
	}
	return nil
}

// LoadDotEnv loads the first .env file found among paths. Variables already
// present in the environment are not overwritten. Returns the loaded path.
func LoadDotEnv(paths ...string) (string, bool) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return path, true
		}
	}
	return "", false
}
