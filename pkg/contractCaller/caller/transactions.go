package caller

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/bindings/BubbleToken"
)

func (cc *ContractCaller) callOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx}
}

func (cc *ContractCaller) buildTransactionOpts(ctx context.Context) (*bind.TransactOpts, error) {
	return cc.signer.GetTransactOpts(ctx)
}

func (cc *ContractCaller) signAndSendTransaction(ctx context.Context, tx *ethereumTypes.Transaction, operation string) (*ethereumTypes.Receipt, error) {
	to := "<contract creation>"
	if tx.To() != nil {
		to = tx.To().Hex()
	}
	cc.logger.Sugar().Infow("Signing and sending transaction",
		zap.String("operation", operation),
		zap.String("from", cc.signer.GetFromAddress().Hex()),
		zap.String("to", to),
	)

	return cc.signer.SignAndSendTransaction(ctx, tx)
}

// transact runs the common write path: options, binding call, sign and send.
func (cc *ContractCaller) transact(
	ctx context.Context,
	operation string,
	build func(opts *bind.TransactOpts) (*ethereumTypes.Transaction, error),
) (*ethereumTypes.Receipt, error) {
	if err := cc.requireContract(); err != nil {
		return nil, err
	}
	if cc.signer == nil {
		return nil, ErrNoSigner
	}

	txOpts, err := cc.buildTransactionOpts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transaction options")
	}

	tx, err := build(txOpts)
	if err != nil {
		return nil, wrapRevert(err, "failed to create transaction for %s", operation)
	}

	receipt, err := cc.signAndSendTransaction(ctx, tx, operation)
	if err != nil {
		return receipt, wrapRevert(err, "%s failed", operation)
	}
	return receipt, nil
}

// wrapRevert replaces a node revert with the contract's named error when it
// can be decoded, so callers can match it with errors.Is.
func wrapRevert(err error, format string, args ...interface{}) error {
	if known := BubbleToken.DecodeRevert(err); known != nil {
		return errors.Wrapf(known, format, args...)
	}
	return errors.Wrapf(err, format, args...)
}
