package main

import (
	"fmt"
	"math/big"

	"github.com/Layr-Labs/chain-indexer/pkg/clients/ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/bindings/BubbleToken"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/clients/allowlistClient"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/config"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/contractCaller"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/contractCaller/caller"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/logger"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/transactionSigner"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

// chainClient is what every on-chain command works with.
type chainClient struct {
	token contractCaller.IContractCaller
	// signer is the zero address for read-only clients
	signer common.Address
	logger *zap.Logger
}

type clientRequirements struct {
	signer   bool
	contract bool
}

// newChainClient builds the client from global flags. Tests replace it.
var newChainClient = func(c *cli.Context, req clientRequirements) (*chainClient, error) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	clientConfig := parseContractClientConfig(c)
	if err := clientConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if req.signer {
		if err := clientConfig.RequireSigner(); err != nil {
			return nil, err
		}
	}
	if req.contract {
		if err := clientConfig.RequireContract(); err != nil {
			return nil, err
		}
	}

	ethClient := ethereum.NewEthereumClient(&ethereum.EthereumClientConfig{
		BaseUrl:   clientConfig.RpcUrl,
		BlockType: ethereum.BlockType_Latest,
	}, l)

	l1Client, err := ethClient.GetEthereumContractCaller()
	if err != nil {
		return nil, fmt.Errorf("failed to get Ethereum contract caller: %w", err)
	}

	cc := &chainClient{logger: l}

	var signer transactionSigner.ITransactionSigner
	if clientConfig.PrivateKey != "" {
		signer, err = transactionSigner.NewTransactionSigner(&transactionSigner.SignerConfig{
			PrivateKey: clientConfig.PrivateKey,
		}, l1Client, l)
		if err != nil {
			return nil, fmt.Errorf("failed to create transaction signer: %w", err)
		}
		cc.signer = signer.GetFromAddress()
	}

	token, err := caller.NewContractCaller(l1Client, signer, common.HexToAddress(clientConfig.ContractAddress), l)
	if err != nil {
		return nil, fmt.Errorf("failed to create contract caller: %w", err)
	}
	cc.token = token
	return cc, nil
}

func parseContractClientConfig(c *cli.Context) *config.ContractClientConfig {
	return &config.ContractClientConfig{
		RpcUrl:          c.String("rpc-url"),
		PrivateKey:      c.String("private-key"),
		ChainID:         config.ChainId(c.Uint64("chain-id")),
		ContractAddress: c.String("contract-address"),
		Debug:           c.Bool("verbose"),
	}
}

func newServerClient(c *cli.Context, l *zap.Logger) (*allowlistClient.Client, error) {
	return allowlistClient.NewClient(&allowlistClient.ClientConfig{
		BaseURL:    c.String("server-url"),
		AdminToken: c.String("admin-token"),
		Logger:     l,
	})
}

func printReceipt(c *cli.Context, action string, receipt *ethereumTypes.Receipt) {
	fmt.Fprintf(c.App.Writer, "✅ %s\n", action)
	fmt.Fprintf(c.App.Writer, "   tx:    %s\n", receipt.TxHash.Hex())
	if receipt.BlockNumber != nil {
		fmt.Fprintf(c.App.Writer, "   block: %s\n", receipt.BlockNumber.String())
	}
}

func parseAddressFlag(c *cli.Context, name string) (common.Address, error) {
	addr, err := types.ParseAddress(c.String(name))
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return addr, nil
}

// addressOrSigner reads an optional address flag, defaulting to the signer.
func addressOrSigner(c *cli.Context, cc *chainClient, name string) (common.Address, error) {
	if c.String(name) == "" {
		return cc.signer, nil
	}
	return parseAddressFlag(c, name)
}

func quantityFlag(c *cli.Context) (*big.Int, error) {
	q := c.Int64("quantity")
	if q < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	return big.NewInt(q), nil
}

func tokenIdFlag(c *cli.Context) (*big.Int, error) {
	id := c.Int64("token-id")
	if id < 0 {
		return nil, fmt.Errorf("token id must not be negative")
	}
	return big.NewInt(id), nil
}

// rootFromFlags resolves --root or --allowlist. ok is false when neither is set.
func rootFromFlags(c *cli.Context) (root types.Digest, ok bool, err error) {
	switch {
	case c.String("root") != "" && c.String("allowlist") != "":
		return types.Digest{}, false, fmt.Errorf("--root and --allowlist are mutually exclusive")
	case c.String("root") != "":
		root, err = types.ParseDigest(c.String("root"))
		if err != nil {
			return types.Digest{}, false, fmt.Errorf("invalid --root: %w", err)
		}
		return root, true, nil
	case c.String("allowlist") != "":
		tree, err := buildTreeFromFile(c.String("allowlist"), c.Bool("sorted-leaves"))
		if err != nil {
			return types.Digest{}, false, err
		}
		return tree.Root(), true, nil
	}
	return types.Digest{}, false, nil
}

func deployCommand(c *cli.Context) error {
	cc, err := newChainClient(c, clientRequirements{signer: true})
	if err != nil {
		return err
	}

	artifact, err := BubbleToken.LoadArtifact(c.String("artifact"))
	if err != nil {
		return err
	}
	root, _, err := rootFromFlags(c)
	if err != nil {
		return err
	}

	address, err := cc.token.Deploy(c.Context, artifact.BytecodeBytes(), c.String("name"), c.String("symbol"), root)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "✅ BubbleToken deployed\n")
	fmt.Fprintf(c.App.Writer, "   address: %s\n", address.Hex())
	fmt.Fprintf(c.App.Writer, "   owner:   %s\n", cc.signer.Hex())
	fmt.Fprintf(c.App.Writer, "   root:    %s\n", root.Hex())
	return nil
}

func statusCommand(c *cli.Context) error {
	cc, err := newChainClient(c, clientRequirements{contract: true})
	if err != nil {
		return err
	}

	status, err := cc.token.Status(c.Context)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Contract:     %s\n", status.Address.Hex())
	fmt.Fprintf(c.App.Writer, "Name:         %s (%s)\n", status.Name, status.Symbol)
	fmt.Fprintf(c.App.Writer, "Owner:        %s\n", status.Owner.Hex())
	fmt.Fprintf(c.App.Writer, "Price:        %s wei (%s ETH)\n", status.Price.String(), types.FormatEther(status.Price))
	fmt.Fprintf(c.App.Writer, "Root:         %s\n", status.Root.Hex())
	fmt.Fprintf(c.App.Writer, "Paused:       %t\n", status.Paused)
	fmt.Fprintf(c.App.Writer, "Total supply: %s\n", status.TotalSupply.String())
	return nil
}

func setRootCommand(c *cli.Context) error {
	cc, err := newChainClient(c, clientRequirements{signer: true, contract: true})
	if err != nil {
		return err
	}

	root, ok, err := rootFromFlags(c)
	if err != nil {
		return err
	}

	var server *allowlistClient.Client
	var served *types.Digest
	var servedVersion int64
	if c.String("server-url") != "" {
		server, err = newServerClient(c, cc.logger)
		if err != nil {
			return err
		}
		active, err := server.GetRoot(c.Context)
		if err != nil {
			return fmt.Errorf("failed to fetch active root: %w", err)
		}
		served, servedVersion = &active.Root, active.Version
		if !ok {
			root, ok = active.Root, true
		}
	}
	if !ok {
		return fmt.Errorf("one of --root, --allowlist or --server-url is required")
	}

	receipt, err := cc.token.SetRoot(c.Context, root)
	if err != nil {
		return err
	}
	printReceipt(c, fmt.Sprintf("Root set to %s", root.Hex()), receipt)

	if server == nil || *served != root {
		return nil
	}
	if c.String("admin-token") == "" {
		cc.logger.Sugar().Warnw("No admin token, not recording the transaction on the allowlist server", "version", servedVersion)
		return nil
	}
	if err := server.RecordCommit(c.Context, servedVersion, receipt.TxHash); err != nil {
		return fmt.Errorf("root set on chain but failed to record it on the allowlist server: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "   recorded as version %d on the allowlist server\n", servedVersion)
	return nil
}

func setPriceCommand(c *cli.Context) error {
	price, err := types.ParseWei(c.String("price"))
	if err != nil {
		return err
	}
	cc, err := newChainClient(c, clientRequirements{signer: true, contract: true})
	if err != nil {
		return err
	}

	receipt, err := cc.token.SetPrice(c.Context, price)
	if err != nil {
		return err
	}
	printReceipt(c, fmt.Sprintf("Price set to %s ETH", types.FormatEther(price)), receipt)
	return nil
}

func togglePauseCommand(c *cli.Context) error {
	cc, err := newChainClient(c, clientRequirements{signer: true, contract: true})
	if err != nil {
		return err
	}

	receipt, err := cc.token.SetPause(c.Context)
	if err != nil {
		return err
	}
	paused, err := cc.token.Paused(c.Context)
	if err != nil {
		return err
	}
	printReceipt(c, fmt.Sprintf("Pause toggled, paused=%t", paused), receipt)
	return nil
}

func transferOwnershipCommand(c *cli.Context) error {
	to, err := parseAddressFlag(c, "to")
	if err != nil {
		return err
	}
	cc, err := newChainClient(c, clientRequirements{signer: true, contract: true})
	if err != nil {
		return err
	}

	receipt, err := cc.token.TransferOwnership(c.Context, to)
	if err != nil {
		return err
	}
	printReceipt(c, fmt.Sprintf("Ownership transferred to %s", to.Hex()), receipt)
	return nil
}

func mintCommand(c *cli.Context) error {
	quantity, err := quantityFlag(c)
	if err != nil {
		return err
	}
	var value *big.Int
	if c.String("value") != "" {
		if value, err = types.ParseWei(c.String("value")); err != nil {
			return err
		}
	}
	cc, err := newChainClient(c, clientRequirements{signer: true, contract: true})
	if err != nil {
		return err
	}
	to, err := addressOrSigner(c, cc, "to")
	if err != nil {
		return err
	}

	receipt, err := cc.token.Mint(c.Context, to, quantity, value)
	if err != nil {
		return err
	}
	printReceipt(c, fmt.Sprintf("Minted %s to %s", quantity.String(), to.Hex()), receipt)
	return nil
}

func mintWhitelistCommand(c *cli.Context) error {
	quantity, err := quantityFlag(c)
	if err != nil {
		return err
	}
	cc, err := newChainClient(c, clientRequirements{signer: true, contract: true})
	if err != nil {
		return err
	}
	to, err := addressOrSigner(c, cc, "to")
	if err != nil {
		return err
	}

	// the contract checks the proof against msg.sender
	proof, err := whitelistProof(c, cc)
	if err != nil {
		return err
	}

	receipt, err := cc.token.MintWhitelist(c.Context, to, quantity, proof)
	if err != nil {
		return err
	}
	printReceipt(c, fmt.Sprintf("Whitelist minted %s to %s", quantity.String(), to.Hex()), receipt)
	return nil
}

func whitelistProof(c *cli.Context, cc *chainClient) ([]types.Digest, error) {
	switch {
	case len(c.StringSlice("proof")) > 0:
		return types.ParseDigests(c.StringSlice("proof"))
	case c.String("allowlist") != "":
		tree, err := buildTreeFromFile(c.String("allowlist"), c.Bool("sorted-leaves"))
		if err != nil {
			return nil, err
		}
		proof, err := tree.Proof(cc.signer)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", caller.ErrNotEligible, cc.signer.Hex())
		}
		return proof, nil
	case c.String("server-url") != "":
		server, err := newServerClient(c, cc.logger)
		if err != nil {
			return nil, err
		}
		resp, err := server.GetProof(c.Context, cc.signer)
		if err != nil {
			return nil, err
		}
		return resp.Proof, nil
	}
	return nil, fmt.Errorf("one of --proof, --allowlist or --server-url is required")
}

func mintOwnerCommand(c *cli.Context) error {
	quantity, err := quantityFlag(c)
	if err != nil {
		return err
	}
	to, err := parseAddressFlag(c, "to")
	if err != nil {
		return err
	}
	cc, err := newChainClient(c, clientRequirements{signer: true, contract: true})
	if err != nil {
		return err
	}

	receipt, err := cc.token.MintOwner(c.Context, to, quantity)
	if err != nil {
		return err
	}
	printReceipt(c, fmt.Sprintf("Owner minted %s to %s", quantity.String(), to.Hex()), receipt)
	return nil
}

func withdrawCommand(c *cli.Context) error {
	cc, err := newChainClient(c, clientRequirements{signer: true, contract: true})
	if err != nil {
		return err
	}

	receipt, err := cc.token.Withdraw(c.Context)
	if err != nil {
		return err
	}
	printReceipt(c, "Contract balance withdrawn to owner", receipt)
	return nil
}

func transferCommand(c *cli.Context) error {
	tokenId, err := tokenIdFlag(c)
	if err != nil {
		return err
	}
	to, err := parseAddressFlag(c, "to")
	if err != nil {
		return err
	}
	cc, err := newChainClient(c, clientRequirements{signer: true, contract: true})
	if err != nil {
		return err
	}
	from, err := addressOrSigner(c, cc, "from")
	if err != nil {
		return err
	}

	receipt, err := cc.token.TransferFrom(c.Context, from, to, tokenId)
	if err != nil {
		return err
	}
	printReceipt(c, fmt.Sprintf("Token %s transferred from %s to %s", tokenId.String(), from.Hex(), to.Hex()), receipt)
	return nil
}

func ownerOfCommand(c *cli.Context) error {
	tokenId, err := tokenIdFlag(c)
	if err != nil {
		return err
	}
	cc, err := newChainClient(c, clientRequirements{contract: true})
	if err != nil {
		return err
	}

	owner, err := cc.token.OwnerOf(c.Context, tokenId)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, owner.Hex())
	return nil
}

func balanceOfCommand(c *cli.Context) error {
	addr, err := parseAddressFlag(c, "address")
	if err != nil {
		return err
	}
	cc, err := newChainClient(c, clientRequirements{contract: true})
	if err != nil {
		return err
	}

	balance, err := cc.token.BalanceOf(c.Context, addr)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, balance.String())
	return nil
}
