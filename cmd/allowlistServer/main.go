package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/allowlist"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/config"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/logger"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/metrics"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if path, ok := config.LoadDotEnv(".env", "../.env"); ok {
		log.Printf("Loaded environment from %s", path)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "allowlist-server",
		Usage: "BubbleToken allowlist proof service",
		Description: `Serves the merkle root and membership proofs of the BubbleToken whitelist sale.

The server:
- Builds a keccak256 sorted-pair merkle tree over the allowlisted addresses
- Hands out proofs accepted by safeMintWhiteList
- Keeps every published allowlist as a numbered version (memory, badger or redis)
- Optionally compares the served root with the contract's root`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   8080,
				Usage:   "HTTP server port",
				EnvVars: []string{config.EnvPort},
			},
			&cli.StringFlag{
				Name:    "store",
				Value:   string(config.StoreType_Memory),
				Usage:   "Root version store: memory, badger or redis",
				EnvVars: []string{config.EnvStoreType},
			},
			&cli.StringFlag{
				Name:    "data-path",
				Usage:   "Directory of the badger store",
				EnvVars: []string{config.EnvDataPath},
			},
			&cli.StringFlag{
				Name:    "redis-address",
				Usage:   "Redis host:port",
				EnvVars: []string{config.EnvRedisAddress},
			},
			&cli.StringFlag{
				Name:    "redis-password",
				Usage:   "Redis password",
				EnvVars: []string{config.EnvRedisPassword},
			},
			&cli.IntFlag{
				Name:    "redis-db",
				Usage:   "Redis database number (0-15)",
				EnvVars: []string{config.EnvRedisDB},
			},
			&cli.StringFlag{
				Name:    "redis-key-prefix",
				Value:   "bubble:",
				Usage:   "Prefix of every redis key",
				EnvVars: []string{config.EnvRedisKeyPrefix},
			},
			&cli.StringFlag{
				Name:    "allowlist",
				Aliases: []string{"f"},
				Usage:   "Allowlist file (JSON array or one address per line) published on startup when its root is not active",
				EnvVars: []string{config.EnvAllowlistFile},
			},
			&cli.BoolFlag{
				Name:    "sorted-leaves",
				Usage:   "Sort leaves by hash before building (root independent of file order)",
				EnvVars: []string{config.EnvSortedLeaves},
			},
			&cli.StringFlag{
				Name:    "admin-token",
				Usage:   "Bearer token for POST /allowlist and /versions/*; empty disables them",
				EnvVars: []string{config.EnvAdminToken},
			},
			&cli.Float64Flag{
				Name:    "rate-limit",
				Usage:   "Requests per second per client, 0 disables",
				EnvVars: []string{config.EnvRateLimit},
			},
			&cli.IntFlag{
				Name:    "rate-burst",
				Value:   20,
				Usage:   "Burst size per client",
				EnvVars: []string{config.EnvRateBurst},
			},
			&cli.StringFlag{
				Name:    "rpc-url",
				Usage:   "Ethereum RPC endpoint for the on-chain root check",
				EnvVars: []string{config.EnvRPCURL, config.EnvLegacyPublicURL},
			},
			&cli.Uint64Flag{
				Name:    "chain-id",
				Aliases: []string{"chain"},
				Value:   uint64(config.ChainId_EthereumAnvil),
				Usage:   fmt.Sprintf("Ethereum chain ID: %s", config.GetSupportedChainIDsString()),
				EnvVars: []string{config.EnvChainID},
			},
			&cli.StringFlag{
				Name:    "contract-address",
				Usage:   "BubbleToken address for the on-chain root check",
				EnvVars: []string{config.EnvContractAddress},
			},
			&cli.Uint64Flag{
				Name:    "root-check-blocks",
				Usage:   "Compare served and on-chain root every N blocks, 0 only checks on /healthz",
				EnvVars: []string{config.EnvRootCheckBlocks},
			},
			&cli.BoolFlag{
				Name:    "trust-proxy",
				Usage:   "Rate limit by the first X-Forwarded-For hop (only behind a trusted reverse proxy)",
				EnvVars: []string{config.EnvTrustProxy},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvDebug},
			},
		},
		Action: runAllowlistServer,
	}
}

func runAllowlistServer(c *cli.Context) error {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	serverConfig := parseServerConfig(c)
	if err := serverConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if serverConfig.Debug {
		logConfig(l, serverConfig)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openRootStore(serverConfig, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			l.Sugar().Warnw("Failed to close root store", "error", err)
		}
	}()

	registry := allowlist.NewRegistry(store, &allowlist.RegistryConfig{SortedLeaves: serverConfig.SortedLeaves}, l)
	if _, err := registry.Restore(); err != nil {
		return fmt.Errorf("failed to restore allowlist: %w", err)
	}
	if serverConfig.AllowlistFile != "" {
		if _, err := bootstrapAllowlist(ctx, registry, serverConfig.AllowlistFile, l); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(reg)
	if at := registry.Active(); at != nil {
		recorder.SetActiveTree(at.Version.Version, at.Tree.Len(), at.Tree.Depth())
	}

	opts := []server.Option{server.WithMetrics(recorder, reg)}
	if serverConfig.OnChainCheckEnabled() {
		chain, err := connectChain(ctx, serverConfig, registry, recorder, l)
		if err != nil {
			return err
		}
		opts = append(opts, server.WithRootReader(chain.caller))
	}

	srv := server.NewServer(registry, &server.Config{
		Port:       serverConfig.Port,
		AdminToken: serverConfig.AdminToken,
		RateLimit:  serverConfig.RateLimit,
		RateBurst:  serverConfig.RateBurst,
		TrustProxy: serverConfig.TrustProxy,
	}, l, opts...)

	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	l.Sugar().Infow("Allowlist server running",
		"port", serverConfig.Port,
		"store", serverConfig.StoreType,
		"publishing", serverConfig.AdminToken != "",
	)
	l.Sugar().Infow("Available endpoints",
		"root", "GET /root",
		"proof", "GET /proof?address=0x...",
		"verify", "POST /verify",
		"versions", "GET /versions",
		"publish", "POST /allowlist",
	)
	l.Sugar().Info("Press Ctrl+C to stop")

	<-ctx.Done()
	l.Sugar().Info("Shutting down allowlist server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func parseServerConfig(c *cli.Context) *config.AllowlistServerConfig {
	return &config.AllowlistServerConfig{
		Port:      c.Int("port"),
		StoreType: config.StoreType(c.String("store")),
		DataPath:  c.String("data-path"),
		Redis: config.RedisConfig{
			Address:   c.String("redis-address"),
			Password:  c.String("redis-password"),
			DB:        c.Int("redis-db"),
			KeyPrefix: c.String("redis-key-prefix"),
		},
		AllowlistFile:   c.String("allowlist"),
		SortedLeaves:    c.Bool("sorted-leaves"),
		AdminToken:      c.String("admin-token"),
		RateLimit:       c.Float64("rate-limit"),
		RateBurst:       c.Int("rate-burst"),
		TrustProxy:      c.Bool("trust-proxy"),
		RpcUrl:          c.String("rpc-url"),
		ChainID:         config.ChainId(c.Uint64("chain-id")),
		ContractAddress: c.String("contract-address"),
		RootCheckBlocks: c.Uint64("root-check-blocks"),
		Debug:           c.Bool("verbose"),
	}
}

// logConfig omits the admin token and redis password.
func logConfig(l *zap.Logger, cfg *config.AllowlistServerConfig) {
	l.Sugar().Infow("Allowlist server configuration",
		"port", cfg.Port,
		"store", cfg.StoreType,
		"dataPath", cfg.DataPath,
		"redis", cfg.Redis.Address,
		"allowlistFile", cfg.AllowlistFile,
		"sortedLeaves", cfg.SortedLeaves,
		"rateLimit", cfg.RateLimit,
		"rateBurst", cfg.RateBurst,
		"trustProxy", cfg.TrustProxy,
		"rpcUrl", cfg.RpcUrl,
		"chainId", cfg.ChainID,
		"contract", cfg.ContractAddress,
		"rootCheckBlocks", cfg.RootCheckBlocks,
	)
}
