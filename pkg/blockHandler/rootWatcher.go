package blockHandler

import (
	"context"
	"sync"
	"time"

	"github.com/Layr-Labs/chain-indexer/pkg/clients/ethereum"
	"go.uber.org/zap"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/allowlist"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/metrics"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

const (
	defaultCheckInterval = 1
	defaultReadTimeout   = 10 * time.Second
)

// RootReader reads the root currently stored in the BubbleToken contract.
type RootReader interface {
	Root(ctx context.Context) (types.Digest, error)
}

type RootWatcherConfig struct {
	// CheckInterval compares roots on every Nth block.
	CheckInterval uint64
	ReadTimeout   time.Duration
}

// RootCheck is the outcome of one comparison.
type RootCheck struct {
	BlockNumber uint64
	OnChainRoot types.Digest
	// ServedVersion is 0 when nothing has been published.
	ServedVersion int64
	Matches       bool
	// OnChainVersion is the stored version whose root the contract holds, or 0.
	OnChainVersion int64
	Changed        bool
}

// RootWatcher compares the contract's root with the served root as blocks
// arrive and keeps the mismatch gauge current between health checks.
type RootWatcher struct {
	reader   RootReader
	registry *allowlist.Registry
	recorder *metrics.Recorder
	config   *RootWatcherConfig
	logger   *zap.Logger

	mu       sync.Mutex
	last     *RootCheck
	lastRoot types.Digest
}

func NewRootWatcher(
	reader RootReader,
	registry *allowlist.Registry,
	recorder *metrics.Recorder,
	cfg *RootWatcherConfig,
	logger *zap.Logger,
) *RootWatcher {
	if cfg == nil {
		cfg = &RootWatcherConfig{}
	}
	if cfg.CheckInterval == 0 {
		cfg.CheckInterval = defaultCheckInterval
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	return &RootWatcher{
		reader:   reader,
		registry: registry,
		recorder: recorder,
		config:   cfg,
		logger:   logger,
	}
}

// Run feeds blocks from bh into the watcher until ctx is done.
func (w *RootWatcher) Run(ctx context.Context, bh IBlockHandler) {
	bh.ListenToChannel(ctx, func(block *ethereum.EthereumBlock) {
		if _, err := w.OnBlock(ctx, block.Number.Value()); err != nil {
			w.logger.Sugar().Warnw("On-chain root check failed", "block", block.Number.Value(), "error", err)
		}
	})
}

// OnBlock runs a comparison when blockNumber falls on the check interval.
// It returns nil, nil for skipped blocks.
func (w *RootWatcher) OnBlock(ctx context.Context, blockNumber uint64) (*RootCheck, error) {
	if blockNumber%w.config.CheckInterval != 0 {
		return nil, nil
	}
	return w.Check(ctx, blockNumber)
}

// Check reads the contract's root and compares it with the active version.
func (w *RootWatcher) Check(ctx context.Context, blockNumber uint64) (*RootCheck, error) {
	readCtx, cancel := context.WithTimeout(ctx, w.config.ReadTimeout)
	defer cancel()

	onChain, err := w.reader.Root(readCtx)
	if err != nil {
		return nil, err
	}

	check := &RootCheck{
		BlockNumber: blockNumber,
		OnChainRoot: onChain,
	}

	at := w.registry.Active()
	if at != nil {
		check.ServedVersion = at.Version.Version
		check.Matches = at.Tree.Root() == onChain
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	check.Changed = w.last == nil || w.lastRoot != onChain || (w.last.Matches != check.Matches)
	if check.Changed {
		check.OnChainVersion = w.findVersion(onChain)
		w.logChange(check)
	} else if w.last != nil {
		check.OnChainVersion = w.last.OnChainVersion
	}

	w.last = check
	w.lastRoot = onChain

	if at != nil {
		w.recorder.SetRootMismatch(!check.Matches)
	}
	w.recorder.SetRootCheckBlock(blockNumber)
	return check, nil
}

// Last returns the most recent comparison, or nil before the first one.
func (w *RootWatcher) Last() *RootCheck {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return nil
	}
	c := *w.last
	return &c
}

func (w *RootWatcher) findVersion(root types.Digest) int64 {
	if root.IsZero() {
		return 0
	}
	versions, err := w.registry.Versions()
	if err != nil {
		w.logger.Sugar().Warnw("Failed to list root versions", "error", err)
		return 0
	}
	// newest first, a root may have been published more than once
	for i := len(versions) - 1; i >= 0; i-- {
		if versions[i].Root == root {
			return versions[i].Version
		}
	}
	return 0
}

func (w *RootWatcher) logChange(c *RootCheck) {
	fields := []interface{}{
		"block", c.BlockNumber,
		"onChainRoot", c.OnChainRoot.Hex(),
		"servedVersion", c.ServedVersion,
		"onChainVersion", c.OnChainVersion,
	}
	switch {
	case c.ServedVersion == 0:
		w.logger.Sugar().Infow("Contract root observed, nothing published yet", fields...)
	case c.Matches:
		w.logger.Sugar().Infow("Contract root matches served allowlist", fields...)
	case c.OnChainVersion != 0:
		w.logger.Sugar().Warnw("Contract root points at an inactive allowlist version", fields...)
	default:
		w.logger.Sugar().Warnw("Contract root does not match any stored allowlist version", fields...)
	}
}
