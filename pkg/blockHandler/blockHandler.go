package blockHandler

import (
	"context"

	chainPoller "github.com/Layr-Labs/chain-indexer/pkg/chainPollers"
	"github.com/Layr-Labs/chain-indexer/pkg/clients/ethereum"
	"go.uber.org/zap"
)

// DefaultChannelCapacity is the number of blocks buffered between the poller
// and the listener before new blocks are dropped.
const DefaultChannelCapacity = 100

type IBlockHandler interface {
	chainPoller.IBlockHandler
	ListenToChannel(ctx context.Context, handleFunc func(*ethereum.EthereumBlock))
}

// BlockHandler forwards blocks from the chain poller to a single listener.
// Only block numbers matter to the allowlist service, so logs and reorgs are
// ignored.
type BlockHandler struct {
	BlockChannel chan *ethereum.EthereumBlock
	logger       *zap.Logger
}

func NewBlockHandler(logger *zap.Logger) *BlockHandler {
	return NewBlockHandlerWithCapacity(DefaultChannelCapacity, logger)
}

func NewBlockHandlerWithCapacity(capacity int, logger *zap.Logger) *BlockHandler {
	if capacity < 1 {
		capacity = 1
	}
	return &BlockHandler{
		BlockChannel: make(chan *ethereum.EthereumBlock, capacity),
		logger:       logger,
	}
}

// ListenToChannel calls handleFunc for every buffered block until ctx is done.
func (h *BlockHandler) ListenToChannel(ctx context.Context, handleFunc func(*ethereum.EthereumBlock)) {
	for {
		select {
		case block := <-h.BlockChannel:
			h.logger.Sugar().Debugw("BlockHandler received block", "block", block.Number.Value())
			handleFunc(block)
		case <-ctx.Done():
			h.logger.Sugar().Info("BlockHandler channel listener exiting due to context done")
			return
		}
	}
}

// HandleBlock never blocks the poller. A full channel drops the block; the
// next one carries the same information for a root comparison.
func (h *BlockHandler) HandleBlock(ctx context.Context, block *ethereum.EthereumBlock) error {
	select {
	case h.BlockChannel <- block:
		h.logger.Sugar().Debugw("Block sent to channel", "block", block.Number.Value())
	case <-ctx.Done():
		h.logger.Sugar().Warnw("Context done before sending block to channel", "block", block.Number.Value())
	default:
		h.logger.Sugar().Warnw("Block channel is full, dropping block", "block", block.Number.Value())
	}
	return nil
}

func (h *BlockHandler) HandleLog(ctx context.Context, logWithBlock *chainPoller.LogWithBlock) error {
	return nil
}

func (h *BlockHandler) HandleReorgBlock(ctx context.Context, blockNumber uint64) {
	h.logger.Sugar().Debugw("Ignoring reorged block", "block", blockNumber)
}
