package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/config"
)

func main() {
	if path, ok := config.LoadDotEnv(".env", "../.env"); ok {
		log.Printf("Loaded environment from %s", path)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func allowlistFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "allowlist",
			Aliases:  []string{"f"},
			Usage:    "Allowlist file (JSON array or one address per line)",
			EnvVars:  []string{config.EnvAllowlistFile},
			Required: true,
		},
		&cli.BoolFlag{
			Name:    "sorted-leaves",
			Usage:   "Sort leaves by hash before building",
			EnvVars: []string{config.EnvSortedLeaves},
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "bubble-client",
		Usage: "BubbleToken allowlist and contract client",
		Description: `Builds allowlist merkle trees and drives a BubbleToken contract.

Offline commands work on an allowlist file:
  root, proof, verify, snapshot

On-chain commands need --rpc-url, and --private-key for writes:
  deploy, status, set-root, set-price, toggle-pause, transfer-ownership,
  mint, mint-whitelist, mint-owner, withdraw, transfer, owner-of, balance-of`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rpc-url",
				Usage:   "Ethereum RPC URL",
				Value:   "http://localhost:8545",
				EnvVars: []string{config.EnvRPCURL, config.EnvLegacyPublicURL},
			},
			&cli.StringFlag{
				Name:    "private-key",
				Usage:   "Hex private key used to sign transactions",
				EnvVars: []string{config.EnvPrivateKey, config.EnvLegacyPrivateKey},
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
				Aliases: []string{"c"},
				Usage:   "BubbleToken contract address",
				EnvVars: []string{config.EnvContractAddress},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvDebug},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "root",
				Usage:  "Print the merkle root of an allowlist",
				Flags:  allowlistFlags(),
				Action: rootCommand,
			},
			{
				Name:  "proof",
				Usage: "Print the proof of an address as a bytes32[] JSON array",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "address", Aliases: []string{"a"}, Usage: "Address to prove", Required: true},
				}, allowlistFlags()...),
				Action: proofCommand,
			},
			{
				Name:  "verify",
				Usage: "Check a proof against a root",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "root", Usage: "Merkle root (0x + 64 hex)", Required: true},
					&cli.StringFlag{Name: "address", Aliases: []string{"a"}, Usage: "Address the proof is for", Required: true},
					&cli.StringSliceFlag{Name: "proof", Usage: "Proof elements, repeated or comma separated"},
				},
				Action: verifyCommand,
			},
			{
				Name:  "snapshot",
				Usage: "Write the root and every member's proof to a JSON file",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file", Required: true},
					&cli.StringFlag{Name: "label", Usage: "Label stored in the snapshot"},
				}, allowlistFlags()...),
				Action: snapshotCommand,
			},
			{
				Name:  "deploy",
				Usage: "Deploy BubbleToken from a hardhat artifact",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "artifact", Usage: "Path to artifacts/contracts/BubbleToken.sol/BubbleToken.json", EnvVars: []string{config.EnvArtifactPath}, Required: true},
					&cli.StringFlag{Name: "name", Value: "Damir", Usage: "Token name"},
					&cli.StringFlag{Name: "symbol", Value: "Damir", Usage: "Token symbol"},
					&cli.StringFlag{Name: "root", Usage: "Initial merkle root"},
					&cli.StringFlag{Name: "allowlist", Aliases: []string{"f"}, Usage: "Allowlist file to derive the initial root from", EnvVars: []string{config.EnvAllowlistFile}},
					&cli.BoolFlag{Name: "sorted-leaves", Usage: "Sort leaves by hash before building", EnvVars: []string{config.EnvSortedLeaves}},
				},
				Action: deployCommand,
			},
			{
				Name:   "status",
				Usage:  "Print the contract's public state",
				Action: statusCommand,
			},
			{
				Name:  "set-root",
				Usage: "Commit a merkle root to the contract (owner only)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "root", Usage: "Merkle root to commit"},
					&cli.StringFlag{Name: "allowlist", Aliases: []string{"f"}, Usage: "Allowlist file to derive the root from", EnvVars: []string{config.EnvAllowlistFile}},
					&cli.BoolFlag{Name: "sorted-leaves", Usage: "Sort leaves by hash before building", EnvVars: []string{config.EnvSortedLeaves}},
					&cli.StringFlag{Name: "server-url", Usage: "Allowlist server to take the active root from and report the transaction to", EnvVars: []string{config.EnvServerURL}},
					&cli.StringFlag{Name: "admin-token", Usage: "Allowlist server admin token", EnvVars: []string{config.EnvAdminToken}},
				},
				Action: setRootCommand,
			},
			{
				Name:  "set-price",
				Usage: "Set the sale price in wei (owner only)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "price", Usage: "Price per token in wei, or with an 'ether' suffix", Required: true},
				},
				Action: setPriceCommand,
			},
			{
				Name:   "toggle-pause",
				Usage:  "Flip the sale pause flag (owner only)",
				Action: togglePauseCommand,
			},
			{
				Name:  "transfer-ownership",
				Usage: "Hand the contract to a new owner (owner only)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Usage: "New owner", Required: true},
				},
				Action: transferOwnershipCommand,
			},
			{
				Name:  "mint",
				Usage: "Paid public mint (safeMint)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Usage: "Recipient, defaults to the signer"},
					&cli.Int64Flag{Name: "quantity", Aliases: []string{"q"}, Value: 1, Usage: "Number of tokens"},
					&cli.StringFlag{Name: "value", Usage: "Wei to send, defaults to price x quantity"},
				},
				Action: mintCommand,
			},
			{
				Name:  "mint-whitelist",
				Usage: "Whitelist mint (safeMintWhiteList); the proof is for the signer's address",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Usage: "Recipient, defaults to the signer"},
					&cli.Int64Flag{Name: "quantity", Aliases: []string{"q"}, Value: 1, Usage: "Number of tokens"},
					&cli.StringSliceFlag{Name: "proof", Usage: "Proof elements, repeated or comma separated"},
					&cli.StringFlag{Name: "allowlist", Aliases: []string{"f"}, Usage: "Allowlist file to derive the proof from", EnvVars: []string{config.EnvAllowlistFile}},
					&cli.BoolFlag{Name: "sorted-leaves", Usage: "Sort leaves by hash before building", EnvVars: []string{config.EnvSortedLeaves}},
					&cli.StringFlag{Name: "server-url", Usage: "Allowlist server to fetch the proof from", EnvVars: []string{config.EnvServerURL}},
				},
				Action: mintWhitelistCommand,
			},
			{
				Name:  "mint-owner",
				Usage: "Free owner mint (safeMintOwner)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Usage: "Recipient", Required: true},
					&cli.Int64Flag{Name: "quantity", Aliases: []string{"q"}, Value: 1, Usage: "Number of tokens"},
				},
				Action: mintOwnerCommand,
			},
			{
				Name:   "withdraw",
				Usage:  "Send the contract balance to the owner",
				Action: withdrawCommand,
			},
			{
				Name:  "transfer",
				Usage: "transferFrom a token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "Current holder, defaults to the signer"},
					&cli.StringFlag{Name: "to", Usage: "Recipient", Required: true},
					&cli.Int64Flag{Name: "token-id", Usage: "Token id", Required: true},
				},
				Action: transferCommand,
			},
			{
				Name:  "owner-of",
				Usage: "Print the holder of a token",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "token-id", Usage: "Token id", Required: true},
				},
				Action: ownerOfCommand,
			},
			{
				Name:  "balance-of",
				Usage: "Print the number of tokens an address holds",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "address", Aliases: []string{"a"}, Usage: "Holder", Required: true},
				},
				Action: balanceOfCommand,
			},
		},
	}
}
