package caller

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/bindings/BubbleToken"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/transactionSigner"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

var (
	// ErrNotEligible is returned by MintWhitelist when the proof does not
	// verify against the on-chain root for the sending address.
	ErrNotEligible = errors.New("address not eligible")

	// ErrNoSigner is returned by write operations on a read-only caller.
	ErrNoSigner = errors.New("no transaction signer configured")

	// ErrNoContract is returned when no contract address has been set.
	ErrNoContract = errors.New("no contract address configured")
)

// TokenStatus is a snapshot of the contract's public state.
type TokenStatus struct {
	Address     common.Address `json:"address"`
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	Owner       common.Address `json:"owner"`
	Price       *big.Int       `json:"price"`
	Root        types.Digest   `json:"root"`
	Paused      bool           `json:"paused"`
	TotalSupply *big.Int       `json:"totalSupply"`
}

type ContractCaller struct {
	ethclient transactionSigner.Backend
	signer    transactionSigner.ITransactionSigner
	logger    *zap.Logger

	address common.Address
	token   *BubbleToken.BubbleToken
}

// NewContractCaller binds to the BubbleToken at address. The signer may be nil
// for read-only use, and address may be the zero address before Deploy.
func NewContractCaller(
	ethclient transactionSigner.Backend,
	signer transactionSigner.ITransactionSigner,
	address common.Address,
	logger *zap.Logger,
) (*ContractCaller, error) {
	cc := &ContractCaller{
		ethclient: ethclient,
		signer:    signer,
		logger:    logger,
	}
	if address != (common.Address{}) {
		if err := cc.bind(address); err != nil {
			return nil, err
		}
	}
	return cc, nil
}

func (cc *ContractCaller) bind(address common.Address) error {
	token, err := BubbleToken.NewBubbleToken(address, cc.ethclient)
	if err != nil {
		return fmt.Errorf("failed to create BubbleToken contract instance: %w", err)
	}
	cc.address = address
	cc.token = token
	return nil
}

// Address returns the bound contract address.
func (cc *ContractCaller) Address() common.Address {
	return cc.address
}

func (cc *ContractCaller) requireContract() error {
	if cc.token == nil {
		return ErrNoContract
	}
	return nil
}

// Deploy creates a new BubbleToken and binds the caller to it.
func (cc *ContractCaller) Deploy(
	ctx context.Context,
	bytecode []byte,
	name string,
	symbol string,
	root types.Digest,
) (common.Address, error) {
	if cc.signer == nil {
		return common.Address{}, ErrNoSigner
	}

	txOpts, err := cc.buildTransactionOpts(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to build transaction options: %w", err)
	}

	_, tx, _, err := BubbleToken.DeployBubbleToken(txOpts, cc.ethclient, bytecode, name, symbol, root)
	if err != nil {
		return common.Address{}, wrapRevert(err, "failed to create deploy transaction for %s", name)
	}

	cc.logger.Sugar().Infow("Deploying BubbleToken",
		"name", name,
		"symbol", symbol,
		"root", root.Hex(),
	)

	receipt, err := cc.signAndSendTransaction(ctx, tx, "Deploy")
	if err != nil {
		return common.Address{}, wrapRevert(err, "failed to deploy %s", name)
	}

	if err := cc.bind(receipt.ContractAddress); err != nil {
		return common.Address{}, err
	}
	cc.logger.Sugar().Infow("BubbleToken deployed",
		"address", receipt.ContractAddress.Hex(),
		"txHash", receipt.TxHash.Hex(),
	)
	return receipt.ContractAddress, nil
}

// Status reads every public getter in one pass.
func (cc *ContractCaller) Status(ctx context.Context) (*TokenStatus, error) {
	if err := cc.requireContract(); err != nil {
		return nil, err
	}
	opts := cc.callOpts(ctx)

	name, err := cc.token.Name(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get name of %s", cc.address.Hex())
	}
	symbol, err := cc.token.Symbol(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get symbol of %s", cc.address.Hex())
	}
	owner, err := cc.Owner(ctx)
	if err != nil {
		return nil, err
	}
	price, err := cc.Price(ctx)
	if err != nil {
		return nil, err
	}
	root, err := cc.Root(ctx)
	if err != nil {
		return nil, err
	}
	paused, err := cc.Paused(ctx)
	if err != nil {
		return nil, err
	}
	supply, err := cc.TotalSupply(ctx)
	if err != nil {
		return nil, err
	}

	return &TokenStatus{
		Address:     cc.address,
		Name:        name,
		Symbol:      symbol,
		Owner:       owner,
		Price:       price,
		Root:        root,
		Paused:      paused,
		TotalSupply: supply,
	}, nil
}
