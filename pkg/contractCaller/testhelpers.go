package contractCaller

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/bindings/BubbleToken"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/contractCaller/caller"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

// DefaultPrice is the price a freshly deployed BubbleToken starts with (0.01 ether).
var DefaultPrice = big.NewInt(10000000000000000)

// FakeBubbleToken is an in-memory IContractCaller enforcing the contract's
// rules: Ownable checks, the pause flag, LessMoney on underpayment and the
// whitelist proof checked for msg.sender. Token ids are sequential from 0.
// Sender selects the msg.sender of subsequent calls.
type FakeBubbleToken struct {
	mu sync.Mutex

	address common.Address
	sender  common.Address
	name    string
	symbol  string
	owner   common.Address
	price   *big.Int
	root    types.Digest
	paused  bool
	balance *big.Int
	owners  []common.Address
	nonce   uint64
}

// NewFakeBubbleToken returns an undeployed fake that sends as deployer.
func NewFakeBubbleToken(deployer common.Address) *FakeBubbleToken {
	return &FakeBubbleToken{sender: deployer}
}

// Connect switches msg.sender, like ethers' contract.connect(signer).
func (f *FakeBubbleToken) Connect(sender common.Address) *FakeBubbleToken {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sender = sender
	return f
}

// ContractBalance is the wei held by the contract.
func (f *FakeBubbleToken) ContractBalance() *big.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return new(big.Int).Set(f.balance)
}

func (f *FakeBubbleToken) Address() common.Address {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.address
}

func (f *FakeBubbleToken) Deploy(ctx context.Context, bytecode []byte, name string, symbol string, root types.Digest) (common.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.address = crypto.CreateAddress(f.sender, f.nonce)
	f.nonce++
	f.name = name
	f.symbol = symbol
	f.owner = f.sender
	f.price = new(big.Int).Set(DefaultPrice)
	f.root = root
	f.paused = false
	f.balance = big.NewInt(0)
	f.owners = nil
	return f.address, nil
}

func (f *FakeBubbleToken) Status(ctx context.Context) (*caller.TokenStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deployed(); err != nil {
		return nil, err
	}
	return &caller.TokenStatus{
		Address:     f.address,
		Name:        f.name,
		Symbol:      f.symbol,
		Owner:       f.owner,
		Price:       new(big.Int).Set(f.price),
		Root:        f.root,
		Paused:      f.paused,
		TotalSupply: big.NewInt(int64(len(f.owners))),
	}, nil
}

func (f *FakeBubbleToken) Owner(ctx context.Context) (common.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.owner, f.deployed()
}

func (f *FakeBubbleToken) TransferOwnership(ctx context.Context, newOwner common.Address) (*ethereumTypes.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.onlyOwner(); err != nil {
		return nil, err
	}
	f.owner = newOwner
	return f.receipt(), nil
}

func (f *FakeBubbleToken) Price(ctx context.Context) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deployed(); err != nil {
		return nil, err
	}
	return new(big.Int).Set(f.price), nil
}

func (f *FakeBubbleToken) SetPrice(ctx context.Context, price *big.Int) (*ethereumTypes.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.onlyOwner(); err != nil {
		return nil, err
	}
	f.price = new(big.Int).Set(price)
	return f.receipt(), nil
}

func (f *FakeBubbleToken) Root(ctx context.Context) (types.Digest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.root, f.deployed()
}

func (f *FakeBubbleToken) SetRoot(ctx context.Context, root types.Digest) (*ethereumTypes.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.onlyOwner(); err != nil {
		return nil, err
	}
	f.root = root
	return f.receipt(), nil
}

func (f *FakeBubbleToken) Paused(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused, f.deployed()
}

func (f *FakeBubbleToken) SetPause(ctx context.Context) (*ethereumTypes.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.onlyOwner(); err != nil {
		return nil, err
	}
	f.paused = !f.paused
	return f.receipt(), nil
}

func (f *FakeBubbleToken) Mint(ctx context.Context, to common.Address, quantity *big.Int, value *big.Int) (*ethereumTypes.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deployed(); err != nil {
		return nil, err
	}
	if f.paused {
		return nil, BubbleToken.ErrPaused
	}
	cost := new(big.Int).Mul(f.price, quantity)
	if value == nil {
		value = cost
	}
	if value.Cmp(cost) < 0 {
		return nil, BubbleToken.ErrLessMoney
	}
	f.balance.Add(f.balance, value)
	f.mint(to, quantity)
	return f.receipt(), nil
}

func (f *FakeBubbleToken) MintWhitelist(ctx context.Context, to common.Address, quantity *big.Int, proof []types.Digest) (*ethereumTypes.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deployed(); err != nil {
		return nil, err
	}
	if err := caller.CheckEligibility(f.root, f.sender, proof); err != nil {
		return nil, err
	}
	if f.paused {
		return nil, BubbleToken.ErrPaused
	}
	f.mint(to, quantity)
	return f.receipt(), nil
}

func (f *FakeBubbleToken) MintOwner(ctx context.Context, to common.Address, quantity *big.Int) (*ethereumTypes.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.onlyOwner(); err != nil {
		return nil, err
	}
	if f.paused {
		return nil, BubbleToken.ErrPaused
	}
	f.mint(to, quantity)
	return f.receipt(), nil
}

func (f *FakeBubbleToken) Withdraw(ctx context.Context) (*ethereumTypes.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.onlyOwner(); err != nil {
		return nil, err
	}
	f.balance = big.NewInt(0)
	return f.receipt(), nil
}

func (f *FakeBubbleToken) TransferFrom(ctx context.Context, from common.Address, to common.Address, tokenId *big.Int) (*ethereumTypes.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	current, err := f.ownerOf(tokenId)
	if err != nil {
		return nil, err
	}
	if current != from {
		return nil, fmt.Errorf("execution reverted: TransferFromIncorrectOwner")
	}
	if f.sender != from {
		return nil, fmt.Errorf("execution reverted: TransferCallerNotOwnerNorApproved")
	}
	f.owners[tokenId.Int64()] = to
	return f.receipt(), nil
}

func (f *FakeBubbleToken) OwnerOf(ctx context.Context, tokenId *big.Int) (common.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ownerOf(tokenId)
}

func (f *FakeBubbleToken) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deployed(); err != nil {
		return nil, err
	}
	var n int64
	for _, o := range f.owners {
		if o == owner {
			n++
		}
	}
	return big.NewInt(n), nil
}

func (f *FakeBubbleToken) TotalSupply(ctx context.Context) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deployed(); err != nil {
		return nil, err
	}
	return big.NewInt(int64(len(f.owners))), nil
}

func (f *FakeBubbleToken) deployed() error {
	if f.address == (common.Address{}) {
		return caller.ErrNoContract
	}
	return nil
}

func (f *FakeBubbleToken) onlyOwner() error {
	if err := f.deployed(); err != nil {
		return err
	}
	if f.sender != f.owner {
		return BubbleToken.ErrNotOwner
	}
	return nil
}

func (f *FakeBubbleToken) ownerOf(tokenId *big.Int) (common.Address, error) {
	if err := f.deployed(); err != nil {
		return common.Address{}, err
	}
	if tokenId.Sign() < 0 || tokenId.Cmp(big.NewInt(int64(len(f.owners)))) >= 0 {
		return common.Address{}, fmt.Errorf("execution reverted: OwnerQueryForNonexistentToken")
	}
	return f.owners[tokenId.Int64()], nil
}

func (f *FakeBubbleToken) mint(to common.Address, quantity *big.Int) {
	for i := int64(0); i < quantity.Int64(); i++ {
		f.owners = append(f.owners, to)
	}
}

func (f *FakeBubbleToken) receipt() *ethereumTypes.Receipt {
	f.nonce++
	return &ethereumTypes.Receipt{
		Status: ethereumTypes.ReceiptStatusSuccessful,
		TxHash: crypto.Keccak256Hash(f.address.Bytes(), new(big.Int).SetUint64(f.nonce).Bytes()),
	}
}

var _ IContractCaller = (*FakeBubbleToken)(nil)
