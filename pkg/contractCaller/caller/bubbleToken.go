package caller

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/merkle"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

func (cc *ContractCaller) Owner(ctx context.Context) (common.Address, error) {
	if err := cc.requireContract(); err != nil {
		return common.Address{}, err
	}
	owner, err := cc.token.Owner(cc.callOpts(ctx))
	if err != nil {
		return common.Address{}, errors.Wrapf(err, "failed to get owner of %s", cc.address.Hex())
	}
	return owner, nil
}

func (cc *ContractCaller) TransferOwnership(ctx context.Context, newOwner common.Address) (*ethereumTypes.Receipt, error) {
	return cc.transact(ctx, "TransferOwnership", func(opts *bind.TransactOpts) (*ethereumTypes.Transaction, error) {
		return cc.token.TransferOwnership(opts, newOwner)
	})
}

// Price is the per-token price of safeMint in wei.
func (cc *ContractCaller) Price(ctx context.Context) (*big.Int, error) {
	if err := cc.requireContract(); err != nil {
		return nil, err
	}
	price, err := cc.token.Price(cc.callOpts(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get price of %s", cc.address.Hex())
	}
	return price, nil
}

func (cc *ContractCaller) SetPrice(ctx context.Context, price *big.Int) (*ethereumTypes.Receipt, error) {
	return cc.transact(ctx, "SetPrice", func(opts *bind.TransactOpts) (*ethereumTypes.Transaction, error) {
		return cc.token.SetPrice(opts, price)
	})
}

// Root returns the allowlist root the contract verifies whitelist mints against.
func (cc *ContractCaller) Root(ctx context.Context) (types.Digest, error) {
	if err := cc.requireContract(); err != nil {
		return types.Digest{}, err
	}
	root, err := cc.token.Root(cc.callOpts(ctx))
	if err != nil {
		return types.Digest{}, errors.Wrapf(err, "failed to get root of %s", cc.address.Hex())
	}
	return types.Digest(root), nil
}

func (cc *ContractCaller) SetRoot(ctx context.Context, root types.Digest) (*ethereumTypes.Receipt, error) {
	cc.logger.Sugar().Infow("Setting allowlist root", "contract", cc.address.Hex(), "root", root.Hex())
	return cc.transact(ctx, "SetRoot", func(opts *bind.TransactOpts) (*ethereumTypes.Transaction, error) {
		return cc.token.SetRoot(opts, root)
	})
}

func (cc *ContractCaller) Paused(ctx context.Context) (bool, error) {
	if err := cc.requireContract(); err != nil {
		return false, err
	}
	paused, err := cc.token.Pause(cc.callOpts(ctx))
	if err != nil {
		return false, errors.Wrapf(err, "failed to get pause state of %s", cc.address.Hex())
	}
	return paused, nil
}

// SetPause toggles the pause flag; the contract has no explicit setter.
func (cc *ContractCaller) SetPause(ctx context.Context) (*ethereumTypes.Receipt, error) {
	return cc.transact(ctx, "SetPause", func(opts *bind.TransactOpts) (*ethereumTypes.Transaction, error) {
		return cc.token.SetPause(opts)
	})
}

// Mint calls the payable safeMint. A nil value pays price * quantity.
func (cc *ContractCaller) Mint(ctx context.Context, to common.Address, quantity *big.Int, value *big.Int) (*ethereumTypes.Receipt, error) {
	if value == nil {
		price, err := cc.Price(ctx)
		if err != nil {
			return nil, err
		}
		value = new(big.Int).Mul(price, quantity)
	}

	return cc.transact(ctx, "Mint", func(opts *bind.TransactOpts) (*ethereumTypes.Transaction, error) {
		opts.Value = value
		return cc.token.SafeMint(opts, to, quantity)
	})
}

// MintWhitelist calls safeMintWhiteList. The contract checks the proof for
// the sending address, so the proof is verified locally against the on-chain
// root first and ErrNotEligible is returned without sending a transaction.
func (cc *ContractCaller) MintWhitelist(ctx context.Context, to common.Address, quantity *big.Int, proof []types.Digest) (*ethereumTypes.Receipt, error) {
	if cc.signer == nil {
		return nil, ErrNoSigner
	}
	root, err := cc.Root(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckEligibility(root, cc.signer.GetFromAddress(), proof); err != nil {
		return nil, err
	}

	return cc.transact(ctx, "MintWhitelist", func(opts *bind.TransactOpts) (*ethereumTypes.Transaction, error) {
		return cc.token.SafeMintWhiteList(opts, to, quantity, types.DigestsToBytes32(proof))
	})
}

// MintOwner calls the owner-only, unpaid safeMintOwner.
func (cc *ContractCaller) MintOwner(ctx context.Context, to common.Address, quantity *big.Int) (*ethereumTypes.Receipt, error) {
	return cc.transact(ctx, "MintOwner", func(opts *bind.TransactOpts) (*ethereumTypes.Transaction, error) {
		return cc.token.SafeMintOwner(opts, to, quantity)
	})
}

// Withdraw sends the contract's balance to the owner.
func (cc *ContractCaller) Withdraw(ctx context.Context) (*ethereumTypes.Receipt, error) {
	return cc.transact(ctx, "Withdraw", func(opts *bind.TransactOpts) (*ethereumTypes.Transaction, error) {
		return cc.token.Withdraw(opts)
	})
}

func (cc *ContractCaller) TransferFrom(ctx context.Context, from common.Address, to common.Address, tokenId *big.Int) (*ethereumTypes.Receipt, error) {
	return cc.transact(ctx, "TransferFrom", func(opts *bind.TransactOpts) (*ethereumTypes.Transaction, error) {
		return cc.token.TransferFrom(opts, from, to, tokenId)
	})
}

func (cc *ContractCaller) OwnerOf(ctx context.Context, tokenId *big.Int) (common.Address, error) {
	if err := cc.requireContract(); err != nil {
		return common.Address{}, err
	}
	owner, err := cc.token.OwnerOf(cc.callOpts(ctx), tokenId)
	if err != nil {
		return common.Address{}, errors.Wrapf(err, "failed to get owner of token %s", tokenId.String())
	}
	return owner, nil
}

func (cc *ContractCaller) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	if err := cc.requireContract(); err != nil {
		return nil, err
	}
	balance, err := cc.token.BalanceOf(cc.callOpts(ctx), owner)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get balance of %s", owner.Hex())
	}
	return balance, nil
}

func (cc *ContractCaller) TotalSupply(ctx context.Context) (*big.Int, error) {
	if err := cc.requireContract(); err != nil {
		return nil, err
	}
	supply, err := cc.token.TotalSupply(cc.callOpts(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get total supply of %s", cc.address.Hex())
	}
	return supply, nil
}

// CheckEligibility verifies that proof places sender under root.
func CheckEligibility(root types.Digest, sender common.Address, proof []types.Digest) error {
	if !merkle.VerifyProof(root, sender, proof) {
		return errors.Wrapf(ErrNotEligible, "%s under root %s", sender.Hex(), root.Hex())
	}
	return nil
}
