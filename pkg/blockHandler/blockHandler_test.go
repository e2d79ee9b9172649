package blockHandler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Layr-Labs/chain-indexer/pkg/clients/ethereum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/testutil"
)

func testBlock(number uint64) *ethereum.EthereumBlock {
	return &ethereum.EthereumBlock{
		Number:    ethereum.EthereumQuantity(number),
		Hash:      ethereum.EthereumHexString("0x123"),
		Timestamp: ethereum.EthereumQuantity(time.Now().Unix()),
	}
}

func Test_BlockHandler(t *testing.T) {
	t.Run("DeliversBlocksInOrder", func(t *testing.T) {
		bh := NewBlockHandler(testutil.TestLogger(t))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var mu sync.Mutex
		var received []uint64
		go bh.ListenToChannel(ctx, func(block *ethereum.EthereumBlock) {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, block.Number.Value())
		})

		expected := []uint64{1, 2, 3, 5, 10, 15, 20}
		for _, n := range expected {
			require.NoError(t, bh.HandleBlock(ctx, testBlock(n)))
		}

		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(received) == len(expected)
		}, 2*time.Second, 10*time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, expected, received)
	})

	t.Run("DropsWhenFull", func(t *testing.T) {
		bh := NewBlockHandlerWithCapacity(3, testutil.TestLogger(t))
		ctx := context.Background()

		for i := uint64(1); i <= 5; i++ {
			require.NoError(t, bh.HandleBlock(ctx, testBlock(i)))
		}
		require.Len(t, bh.BlockChannel, 3)

		// the oldest blocks are kept
		assert.Equal(t, uint64(1), (<-bh.BlockChannel).Number.Value())
	})

	t.Run("ZeroCapacityIsClamped", func(t *testing.T) {
		bh := NewBlockHandlerWithCapacity(0, testutil.TestLogger(t))
		assert.Equal(t, 1, cap(bh.BlockChannel))
	})

	t.Run("ListenerStopsOnCancel", func(t *testing.T) {
		bh := NewBlockHandler(testutil.TestLogger(t))
		ctx, cancel := context.WithCancel(context.Background())

		stopped := make(chan struct{})
		go func() {
			bh.ListenToChannel(ctx, func(*ethereum.EthereumBlock) {})
			close(stopped)
		}()

		require.NoError(t, bh.HandleBlock(ctx, testBlock(1)))
		cancel()

		select {
		case <-stopped:
		case <-time.After(2 * time.Second):
			t.Fatal("listener did not stop after context cancellation")
		}
	})

	t.Run("LogsAndReorgsAreIgnored", func(t *testing.T) {
		bh := NewBlockHandler(testutil.TestLogger(t))
		require.NoError(t, bh.HandleLog(context.Background(), nil))
		bh.HandleReorgBlock(context.Background(), 10)
		assert.Len(t, bh.BlockChannel, 0)
	})
}
