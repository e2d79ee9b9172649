package testutil

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/logger"
)

// Default hardhat / anvil development accounts (mnemonic "test test ... junk").
// Index 0 is the deployer and contract owner in the BubbleToken test sequence.
var hardhatAccounts = []string{
	"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
	"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
	"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
	"0x90F79bf6EB2c4f870365E785982E1f101E93b906",
	"0x15d34AAf54267DB7D7c367839AAf71A00a2C6A65",
	"0x9965507D1a55bcC2695C58ba16FB37d819B0A4dc",
	"0x976EA74026E726554dB657fA54763abd0C3a0aa9",
	"0x14dC79964da2C08b23698B3D3cc7Ca32193d9955",
}

// HardhatOwnerPrivateKey is the private key of HardhatAccounts()[0].
const HardhatOwnerPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// HardhatAccounts returns the eight default development accounts in order:
// owner, user1 ... user7.
func HardhatAccounts() []common.Address {
	out := make([]common.Address, len(hardhatAccounts))
	for i, a := range hardhatAccounts {
		out[i] = common.HexToAddress(a)
	}
	return out
}

// CreateTestAddresses creates n distinct deterministic addresses starting at 0x..01.
func CreateTestAddresses(n int) []common.Address {
	addrs := make([]common.Address, n)
	for i := 0; i < n; i++ {
		addrs[i] = common.BigToAddress(big.NewInt(int64(i + 1)))
	}
	return addrs
}

// RandomAddress generates a random address for testing
func RandomAddress() common.Address {
	var addr common.Address
	_, _ = rand.Read(addr[:]) // Ignore error in test helper
	return addr
}

// NamedAddress derives a stable address from a label such as "alice".
func NamedAddress(name string) common.Address {
	var addr common.Address
	copy(addr[:], []byte(name))
	addr[19] = byte(len(name))
	return addr
}

// TestLogger returns a quiet logger for tests
func TestLogger(t *testing.T) *zap.Logger {
	t.Helper()
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return l
}
