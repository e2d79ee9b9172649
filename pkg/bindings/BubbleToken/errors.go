package BubbleToken

import (
	"bytes"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	// ErrLessMoney is the LessMoney() revert: msg.value below price * quantity.
	ErrLessMoney = errors.New("BubbleToken: insufficient payment")
	// ErrPaused is the Pause() revert raised by mint paths while paused.
	ErrPaused = errors.New("BubbleToken: minting is paused")
	// ErrNotOwner is Ownable's "caller is not the owner" revert.
	ErrNotOwner = errors.New("BubbleToken: caller is not the owner")
)

const ownableRevertReason = "Ownable: caller is not the owner"

// dataError matches the rpc error returned by eth_call and eth_estimateGas
// when the node includes revert data.
type dataError interface {
	ErrorData() interface{}
}

// DecodeRevert maps a revert returned by a node to one of the contract's
// known errors. It returns nil when err is not a recognized revert.
func DecodeRevert(err error) error {
	if err == nil {
		return nil
	}

	var de dataError
	if errors.As(err, &de) {
		if hexData, ok := de.ErrorData().(string); ok {
			if data, decodeErr := hexutil.Decode(hexData); decodeErr == nil {
				if known := decodeRevertData(data); known != nil {
					return known
				}
			}
		}
	}

	if strings.Contains(err.Error(), ownableRevertReason) {
		return ErrNotOwner
	}
	return nil
}

func decodeRevertData(data []byte) error {
	if len(data) < 4 {
		return nil
	}
	parsed, err := BubbleTokenMetaData.GetAbi()
	if err != nil {
		return nil
	}
	selector := data[:4]
	for name, e := range parsed.Errors {
		if !bytes.Equal(e.ID[:4], selector) {
			continue
		}
		switch name {
		case "LessMoney":
			return ErrLessMoney
		case "Pause":
			return ErrPaused
		}
	}
	if reason, err := abi.UnpackRevert(data); err == nil && reason == ownableRevertReason {
		return ErrNotOwner
	}
	return nil
}
