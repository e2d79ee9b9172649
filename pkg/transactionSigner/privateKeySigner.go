package transactionSigner

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/config"
)

const gasLimitBufferPercent = 20

// PrivateKeySigner implements ITransactionSigner with a local secp256k1 key
type PrivateKeySigner struct {
	ethClient   Backend
	logger      *zap.Logger
	chainID     *big.Int
	privateKey  *ecdsa.PrivateKey
	fromAddress common.Address
}

// NewPrivateKeySigner creates a signer from a hex encoded private key with or
// without the 0x prefix
func NewPrivateKeySigner(privateKeyHex string, ethClient Backend, logger *zap.Logger) (*PrivateKeySigner, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	chainID, err := ethClient.ChainID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	return &PrivateKeySigner{
		ethClient:   ethClient,
		logger:      logger,
		chainID:     chainID,
		privateKey:  privateKey,
		fromAddress: crypto.PubkeyToAddress(privateKey.PublicKey),
	}, nil
}

// GetTransactOpts returns options that build and sign a transaction without
// sending it; SignAndSendTransaction re-prices and submits it.
func (pks *PrivateKeySigner) GetTransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(pks.privateKey, pks.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	opts.NoSend = true
	return opts, nil
}

// SignAndSendTransaction signs a transaction and sends it to the network
func (pks *PrivateKeySigner) SignAndSendTransaction(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	gasTipCap, maxFeePerGas, baseFee, err := pks.estimateFees(ctx)
	if err != nil {
		return nil, err
	}

	gasLimit, err := pks.ethClient.EstimateGas(ctx, ethereum.CallMsg{
		From:      pks.fromAddress,
		To:        tx.To(),
		GasTipCap: gasTipCap,
		GasFeeCap: maxFeePerGas,
		Value:     tx.Value(),
		Data:      tx.Data(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}
	gasLimitWithBuffer := addGasBuffer(gasLimit)

	// always fetch from the network: a nonce of 0 on the incoming tx is valid
	nonce, err := pks.ethClient.PendingNonceAt(ctx, pks.fromAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	unsigned := types.NewTx(&types.DynamicFeeTx{
		ChainID:   pks.chainID,
		Nonce:     nonce,
		GasTipCap: gasTipCap,
		GasFeeCap: maxFeePerGas,
		Gas:       gasLimitWithBuffer,
		To:        tx.To(),
		Value:     tx.Value(),
		Data:      tx.Data(),
	})

	signedTx, err := types.SignTx(unsigned, types.LatestSignerForChainID(pks.chainID), pks.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	pks.logger.Info("SignAndSendTransaction: sending transaction",
		zap.String("to", toString(tx.To())),
		zap.String("maxPriorityFeePerGas", gasTipCap.String()),
		zap.String("maxFeePerGas", maxFeePerGas.String()),
		zap.String("baseFee", baseFee.String()),
		zap.Uint64("gasLimit", gasLimitWithBuffer),
		zap.Uint64("nonce", nonce),
	)

	if err := pks.ethClient.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	pks.logger.Info("SignAndSendTransaction: transaction sent",
		zap.String("txHash", signedTx.Hash().Hex()),
	)

	receipt, err := bind.WaitMined(ctx, pks.ethClient, signedTx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction receipt: %w", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		pks.logger.Error("SignAndSendTransaction: transaction failed",
			zap.String("txHash", receipt.TxHash.Hex()),
			zap.Uint64("status", receipt.Status),
			zap.Uint64("gasUsed", receipt.GasUsed),
		)
		return receipt, fmt.Errorf("transaction %s failed with status %d", receipt.TxHash.Hex(), receipt.Status)
	}

	pks.logger.Info("SignAndSendTransaction: transaction succeeded",
		zap.String("txHash", receipt.TxHash.Hex()),
		zap.Uint64("gasUsed", receipt.GasUsed),
		zap.Uint64("blockNumber", receipt.BlockNumber.Uint64()),
	)

	return receipt, nil
}

// GetFromAddress returns the address that will be used for signing
func (pks *PrivateKeySigner) GetFromAddress() common.Address {
	return pks.fromAddress
}

// EstimateGasPriceAndLimit returns the max fee per gas and the buffered gas
// limit SignAndSendTransaction would use for tx.
func (pks *PrivateKeySigner) EstimateGasPriceAndLimit(ctx context.Context, tx *types.Transaction) (*big.Int, uint64, error) {
	gasTipCap, maxFeePerGas, _, err := pks.estimateFees(ctx)
	if err != nil {
		return nil, 0, err
	}
	gasLimit, err := pks.ethClient.EstimateGas(ctx, ethereum.CallMsg{
		From:      pks.fromAddress,
		To:        tx.To(),
		GasTipCap: gasTipCap,
		GasFeeCap: maxFeePerGas,
		Value:     tx.Value(),
		Data:      tx.Data(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to estimate gas: %w", err)
	}
	return maxFeePerGas, addGasBuffer(gasLimit), nil
}

// estimateFees returns tip, fee cap and the base fee they were derived from.
// maxFeePerGas = baseFee * multiplier + tip.
func (pks *PrivateKeySigner) estimateFees(ctx context.Context) (*big.Int, *big.Int, *big.Int, error) {
	var fallbackGasTipCap *big.Int
	var baseFeeMultiplier int64

	if config.IsEthereum(config.ChainId(pks.chainID.Uint64())) {
		fallbackGasTipCap = big.NewInt(1500000000) // 1.5 gwei
		baseFeeMultiplier = 2
	} else {
		fallbackGasTipCap = big.NewInt(1000000000) // 1 gwei
		baseFeeMultiplier = 3
	}

	gasTipCap, err := pks.ethClient.SuggestGasTipCap(ctx)
	if err != nil {
		// the backend may not support eth_maxPriorityFeePerGas
		pks.logger.Sugar().Warnw("SignAndSendTransaction: cannot get gasTipCap, using fallback",
			zap.Error(err),
		)
		gasTipCap = fallbackGasTipCap
	}

	header, err := pks.ethClient.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get latest block header: %w", err)
	}
	baseFee := header.BaseFee
	if baseFee == nil {
		baseFee = big.NewInt(0)
	}

	maxFeePerGas := new(big.Int).Add(
		new(big.Int).Mul(baseFee, big.NewInt(baseFeeMultiplier)),
		gasTipCap,
	)
	return gasTipCap, maxFeePerGas, baseFee, nil
}

func addGasBuffer(gasLimit uint64) uint64 {
	return gasLimit + gasLimit*gasLimitBufferPercent/100
}

func toString(addr *common.Address) string {
	if addr == nil {
		return "<contract creation>"
	}
	return addr.Hex()
}
