package BubbleToken

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// Artifact is the subset of a hardhat compilation artifact needed to deploy
// the contract, e.g. artifacts/contracts/BubbleToken.sol/BubbleToken.json.
type Artifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// LoadArtifact reads a hardhat artifact and checks that it carries creation bytecode.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return ParseArtifact(data)
}

// ParseArtifact decodes artifact JSON.
func ParseArtifact(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse artifact: %w", err)
	}
	if strings.TrimPrefix(a.Bytecode, "0x") == "" {
		return nil, fmt.Errorf("artifact %q has no bytecode", a.ContractName)
	}
	if _, err := hexutil.Decode(a.Bytecode); err != nil {
		return nil, fmt.Errorf("artifact bytecode is not valid hex: %w", err)
	}
	return &a, nil
}

// BytecodeBytes returns the decoded creation bytecode.
func (a *Artifact) BytecodeBytes() []byte {
	b, _ := hexutil.Decode(a.Bytecode)
	return b
}

// DeployBubbleToken deploys a new BubbleToken from the given creation bytecode.
//
// Solidity: constructor(string name_, string symbol_, bytes32 root_)
func DeployBubbleToken(auth *bind.TransactOpts, backend bind.ContractBackend, bytecode []byte, name string, symbol string, root [32]byte) (common.Address, *types.Transaction, *BubbleToken, error) {
	parsed, err := BubbleTokenMetaData.GetAbi()
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	if parsed == nil {
		return common.Address{}, nil, nil, fmt.Errorf("GetABI returned nil")
	}
	if len(bytecode) == 0 {
		return common.Address{}, nil, nil, fmt.Errorf("empty bytecode")
	}

	address, tx, contract, err := bind.DeployContract(auth, *parsed, bytecode, backend, name, symbol, root)
	if err != nil {
		return common.Address{}, nil, nil, err
	}
	return address, tx, &BubbleToken{BubbleTokenCaller: BubbleTokenCaller{contract: contract}, BubbleTokenTransactor: BubbleTokenTransactor{contract: contract}, BubbleTokenFilterer: BubbleTokenFilterer{contract: contract}}, nil
}
