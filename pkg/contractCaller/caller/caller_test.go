package caller

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/merkle"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/testutil"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/transactionSigner"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

func TestCheckEligibility(t *testing.T) {
	accounts := testutil.HardhatAccounts()
	tree, err := merkle.BuildAllowlistTree(accounts[:4])
	require.NoError(t, err)

	proof, err := tree.Proof(accounts[1])
	require.NoError(t, err)

	require.NoError(t, CheckEligibility(tree.Root(), accounts[1], proof))

	err = CheckEligibility(tree.Root(), accounts[3], proof)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEligible))
	assert.Contains(t, err.Error(), accounts[3].Hex())

	err = CheckEligibility(tree.Root(), accounts[5], nil)
	assert.True(t, errors.Is(err, ErrNotEligible))
}

func TestContractCaller_Unbound(t *testing.T) {
	backend := testutil.NewSimulatedChain(t)
	cc, err := NewContractCaller(backend.Client(), nil, common.Address{}, testutil.TestLogger(t))
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, common.Address{}, cc.Address())

	_, err = cc.Root(ctx)
	assert.ErrorIs(t, err, ErrNoContract)
	_, err = cc.Status(ctx)
	assert.ErrorIs(t, err, ErrNoContract)
	_, err = cc.SetPause(ctx)
	assert.ErrorIs(t, err, ErrNoContract)
	_, err = cc.Deploy(ctx, []byte{0x00}, "Bubble", "BBB", types.Digest{})
	assert.ErrorIs(t, err, ErrNoSigner)
}

func TestContractCaller_ReadOnly(t *testing.T) {
	backend := testutil.NewSimulatedChain(t)
	cc, err := NewContractCaller(backend.Client(), nil, testutil.RandomAddress(), testutil.TestLogger(t))
	require.NoError(t, err)

	ctx := context.Background()
	for name, write := range map[string]func() (*ethereumTypes.Receipt, error){
		"SetPause":  func() (*ethereumTypes.Receipt, error) { return cc.SetPause(ctx) },
		"SetRoot":   func() (*ethereumTypes.Receipt, error) { return cc.SetRoot(ctx, types.Digest{1}) },
		"MintOwner": func() (*ethereumTypes.Receipt, error) { return cc.MintOwner(ctx, common.Address{}, big.NewInt(1)) },
		"Withdraw":  func() (*ethereumTypes.Receipt, error) { return cc.Withdraw(ctx) },
		"MintWhitelist": func() (*ethereumTypes.Receipt, error) {
			return cc.MintWhitelist(ctx, common.Address{}, big.NewInt(1), nil)
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := write()
			assert.ErrorIs(t, err, ErrNoSigner)
		})
	}

	t.Run("No code at address", func(t *testing.T) {
		_, err := cc.Root(ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, bind.ErrNoCode))
	})
}

// The deployed stub returns the allowlist root for every call, which is
// enough to drive deploy, root reads and the whitelist pre-flight end to end.
func TestContractCaller_SimulatedChain(t *testing.T) {
	backend := testutil.NewSimulatedChain(t)
	client := backend.Client()
	l := testutil.TestLogger(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	signer, err := transactionSigner.NewPrivateKeySigner(testutil.HardhatOwnerPrivateKey, client, l)
	require.NoError(t, err)

	accounts := testutil.HardhatAccounts()
	tree, err := merkle.BuildAllowlistTree(accounts[:4])
	require.NoError(t, err)
	root := tree.Root()

	cc, err := NewContractCaller(client, signer, common.Address{}, l)
	require.NoError(t, err)

	address, err := cc.Deploy(ctx, testutil.ConstantReturnBytecode(common.Hash(root)), "Bubble", "BBB", root)
	require.NoError(t, err)
	assert.NotEqual(t, common.Address{}, address)
	assert.Equal(t, address, cc.Address())

	onChain, err := cc.Root(ctx)
	require.NoError(t, err)
	assert.Equal(t, root, onChain)

	t.Run("Whitelisted sender", func(t *testing.T) {
		proof, err := tree.Proof(signer.GetFromAddress())
		require.NoError(t, err)

		receipt, err := cc.MintWhitelist(ctx, accounts[1], big.NewInt(1), proof)
		require.NoError(t, err)
		assert.Equal(t, ethereumTypes.ReceiptStatusSuccessful, receipt.Status)
	})

	t.Run("Foreign proof is rejected before sending", func(t *testing.T) {
		nonceBefore, err := client.PendingNonceAt(ctx, signer.GetFromAddress())
		require.NoError(t, err)

		proof, err := tree.Proof(accounts[1])
		require.NoError(t, err)

		_, err = cc.MintWhitelist(ctx, accounts[1], big.NewInt(1), proof)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotEligible))

		nonceAfter, err := client.PendingNonceAt(ctx, signer.GetFromAddress())
		require.NoError(t, err)
		assert.Equal(t, nonceBefore, nonceAfter)
	})

	t.Run("Rebind to deployed address", func(t *testing.T) {
		readOnly, err := NewContractCaller(client, nil, address, l)
		require.NoError(t, err)
		got, err := readOnly.Root(ctx)
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})
}
