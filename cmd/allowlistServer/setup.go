package main

import (
	"context"
	"fmt"
	"path/filepath"

	EVMChainPoller "github.com/Layr-Labs/chain-indexer/pkg/chainPollers/evm"
	pollerMemory "github.com/Layr-Labs/chain-indexer/pkg/chainPollers/persistence/memory"
	"github.com/Layr-Labs/chain-indexer/pkg/clients/ethereum"
	chainIndexerConfig "github.com/Layr-Labs/chain-indexer/pkg/config"
	"github.com/Layr-Labs/chain-indexer/pkg/contractStore/inMemoryContractStore"
	"github.com/Layr-Labs/chain-indexer/pkg/transactionLogParser"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/allowlist"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/blockHandler"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/config"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/contractCaller/caller"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/merkle"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/metrics"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/rootstore"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/rootstore/badger"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/rootstore/memory"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/rootstore/redis"
)

func openRootStore(cfg *config.AllowlistServerConfig, l *zap.Logger) (rootstore.IRootStore, error) {
	switch cfg.StoreType {
	case config.StoreType_Memory:
		l.Sugar().Warn("Using in-memory root store, published versions are lost on restart")
		return memory.NewMemoryRootStore(), nil
	case config.StoreType_Badger:
		store, err := badger.NewBadgerRootStore(cfg.DataPath, l)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger store: %w", err)
		}
		return store, nil
	case config.StoreType_Redis:
		store, err := redis.NewRedisRootStore(&redis.RedisConfig{
			Address:   cfg.Redis.Address,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		}, l)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported store type %q", cfg.StoreType)
	}
}

// bootstrapAllowlist publishes the file's addresses unless the active
// version already has the same root. Returns true when a version was published.
func bootstrapAllowlist(ctx context.Context, registry *allowlist.Registry, path string, l *zap.Logger) (bool, error) {
	addrs, err := allowlist.LoadAddresses(path)
	if err != nil {
		return false, fmt.Errorf("failed to load allowlist file: %w", err)
	}

	var opts []merkle.TreeOption
	if registry.SortedLeaves() {
		opts = append(opts, merkle.WithSortedLeaves())
	}
	tree, err := merkle.BuildAllowlistTree(addrs, opts...)
	if err != nil {
		return false, fmt.Errorf("failed to build allowlist tree: %w", err)
	}

	if at := registry.Active(); at != nil && at.Tree.Root() == tree.Root() {
		l.Sugar().Infow("Allowlist file matches active version",
			"file", path,
			"version", at.Version.Version,
			"root", tree.Root().Hex(),
		)
		return false, nil
	}

	at, err := registry.Publish(ctx, addrs, "bootstrap: "+filepath.Base(path))
	if err != nil {
		return false, fmt.Errorf("failed to publish allowlist file: %w", err)
	}
	l.Sugar().Infow("Published allowlist file",
		"file", path,
		"version", at.Version.Version,
		"root", at.Tree.Root().Hex(),
		"count", at.Tree.Len(),
	)
	return true, nil
}

type chainConnection struct {
	caller  *caller.ContractCaller
	watcher *blockHandler.RootWatcher
}

// connectChain binds a read-only BubbleToken caller and, when block checks
// are enabled, starts a chain poller feeding the root watcher.
func connectChain(
	ctx context.Context,
	cfg *config.AllowlistServerConfig,
	registry *allowlist.Registry,
	recorder *metrics.Recorder,
	l *zap.Logger,
) (*chainConnection, error) {
	ethClient := ethereum.NewEthereumClient(&ethereum.EthereumClientConfig{
		BaseUrl:   cfg.RpcUrl,
		BlockType: ethereum.BlockType_Latest,
	}, l)

	l1Client, err := ethClient.GetEthereumContractCaller()
	if err != nil {
		return nil, fmt.Errorf("failed to get Ethereum contract caller: %w", err)
	}

	cc, err := caller.NewContractCaller(l1Client, nil, common.HexToAddress(cfg.ContractAddress), l)
	if err != nil {
		return nil, fmt.Errorf("failed to create contract caller: %w", err)
	}
	conn := &chainConnection{caller: cc}

	if cfg.RootCheckBlocks == 0 {
		return conn, nil
	}

	bh := blockHandler.NewBlockHandler(l)

	// logs are not parsed, but the poller requires a parser
	cs := inMemoryContractStore.NewInMemoryContractStore(nil, l)
	logParser := transactionLogParser.NewTransactionLogParser(cs, l)

	poller, err := EVMChainPoller.NewEVMChainPoller(
		ethClient,
		logParser,
		&EVMChainPoller.EVMChainPollerConfig{
			ChainId: chainIndexerConfig.ChainId(cfg.ChainID),
		},
		pollerMemory.NewInMemoryChainPollerPersistence(), bh, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create EVM chain poller: %w", err)
	}

	conn.watcher = blockHandler.NewRootWatcher(cc, registry, recorder, &blockHandler.RootWatcherConfig{
		CheckInterval: cfg.RootCheckBlocks,
	}, l)
	go conn.watcher.Run(ctx, bh)

	go func() {
		if err := poller.Start(ctx); err != nil {
			l.Sugar().Errorw("Chain poller stopped", "error", err)
		}
	}()

	l.Sugar().Infow("Watching on-chain root",
		"contract", cfg.ContractAddress,
		"chainId", cfg.ChainID,
		"everyBlocks", cfg.RootCheckBlocks,
	)
	return conn, nil
}
