package contractCaller

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/contractCaller/caller"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

// IContractCaller is the client surface of a BubbleToken contract. Reads go
// straight to the node; writes are signed, sent and awaited.
type IContractCaller interface {
	Address() common.Address

	Deploy(ctx context.Context, bytecode []byte, name string, symbol string, root types.Digest) (common.Address, error)

	Status(ctx context.Context) (*caller.TokenStatus, error)

	// Ownership
	Owner(ctx context.Context) (common.Address, error)
	TransferOwnership(ctx context.Context, newOwner common.Address) (*ethereumTypes.Receipt, error)

	// Sale configuration
	Price(ctx context.Context) (*big.Int, error)
	SetPrice(ctx context.Context, price *big.Int) (*ethereumTypes.Receipt, error)
	Root(ctx context.Context) (types.Digest, error)
	SetRoot(ctx context.Context, root types.Digest) (*ethereumTypes.Receipt, error)
	Paused(ctx context.Context) (bool, error)
	SetPause(ctx context.Context) (*ethereumTypes.Receipt, error)

	// Minting
	Mint(ctx context.Context, to common.Address, quantity *big.Int, value *big.Int) (*ethereumTypes.Receipt, error)
	MintWhitelist(ctx context.Context, to common.Address, quantity *big.Int, proof []types.Digest) (*ethereumTypes.Receipt, error)
	MintOwner(ctx context.Context, to common.Address, quantity *big.Int) (*ethereumTypes.Receipt, error)
	Withdraw(ctx context.Context) (*ethereumTypes.Receipt, error)

	// ERC721
	TransferFrom(ctx context.Context, from common.Address, to common.Address, tokenId *big.Int) (*ethereumTypes.Receipt, error)
	OwnerOf(ctx context.Context, tokenId *big.Int) (common.Address, error)
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	TotalSupply(ctx context.Context) (*big.Int, error)
}

var _ IContractCaller = (*caller.ContractCaller)(nil)
