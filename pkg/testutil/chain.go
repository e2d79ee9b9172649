package testutil

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
)

// NewSimulatedChain starts an in-process chain where every hardhat account
// holds 1000 ether. Blocks are mined every 100ms until the test ends.
func NewSimulatedChain(t *testing.T) *simulated.Backend {
	t.Helper()

	alloc := types.GenesisAlloc{}
	for _, addr := range HardhatAccounts() {
		alloc[addr] = types.Account{Balance: new(big.Int).Mul(big.NewInt(1000), big.NewInt(params.Ether))}
	}
	backend := simulated.NewBackend(alloc)
	t.Cleanup(func() { _ = backend.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				backend.Commit()
			}
		}
	}()
	return backend
}

// ConstantReturnBytecode is creation code for a contract whose every call
// succeeds and returns word. Constructor arguments appended to it are ignored.
func ConstantReturnBytecode(word common.Hash) []byte {
	runtime := append([]byte{0x7f}, word.Bytes()...)        // PUSH32 word
	runtime = append(runtime, 0x60, 0x00, 0x52)             // PUSH1 0 MSTORE
	runtime = append(runtime, 0x60, 0x20, 0x60, 0x00, 0xf3) // PUSH1 32 PUSH1 0 RETURN

	size := byte(len(runtime))
	init := []byte{
		0x60, size, // PUSH1 size
		0x60, 0x0c, // PUSH1 offset of runtime
		0x60, 0x00, // PUSH1 0
		0x39,       // CODECOPY
		0x60, size, // PUSH1 size
		0x60, 0x00, // PUSH1 0
		0xf3, // RETURN
	}
	return append(init, runtime...)
}
