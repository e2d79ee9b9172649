package merkle

import (
	"errors"
	"fmt"
	"math/bits"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/testutil"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

func mustDigest(t *testing.T, s string) types.Digest {
	t.Helper()
	d, err := types.ParseDigest(s)
	require.NoError(t, err)
	return d
}

func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// TestBuildAllowlistTree tests tree construction with various numbers of addresses
func TestBuildAllowlistTree(t *testing.T) {
	testCases := []struct {
		name     string
		numAddrs int
	}{
		{"Single address", 1},
		{"Two addresses", 2},
		{"Three addresses", 3},
		{"Four addresses (power of 2)", 4},
		{"Five addresses", 5},
		{"Seven addresses", 7},
		{"Eight addresses (power of 2)", 8},
		{"Fifteen addresses", 15},
		{"Sixteen addresses (power of 2)", 16},
	}

	for _, tc := range testCases {
		for _, sorted := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s/sorted=%v", tc.name, sorted), func(t *testing.T) {
				addrs := testutil.CreateTestAddresses(tc.numAddrs)
				var opts []TreeOption
				if sorted {
					opts = append(opts, WithSortedLeaves())
				}

				tree, err := BuildAllowlistTree(addrs, opts...)
				require.NoError(t, err)
				require.NotNil(t, tree)

				require.Equal(t, tc.numAddrs, tree.Len())
				require.Equal(t, ceilLog2(tc.numAddrs), tree.Depth())
				require.Equal(t, sorted, tree.SortedLeaves())
				require.False(t, tree.Root().IsZero())

				for _, addr := range addrs {
					proof, err := tree.Proof(addr)
					require.NoError(t, err)
					require.LessOrEqual(t, len(proof), tree.Depth())
					require.True(t, VerifyProof(tree.Root(), addr, proof), "Proof for %s should be valid", addr.Hex())
				}
			})
		}
	}
}

// TestBuildAllowlistTreeEmpty tests that building a tree from no addresses fails
func TestBuildAllowlistTreeEmpty(t *testing.T) {
	tree, err := BuildAllowlistTree([]common.Address{})
	require.ErrorIs(t, err, ErrEmptyInput)
	require.Nil(t, tree)

	tree, err = BuildAllowlistTree(nil, WithSortedLeaves())
	require.ErrorIs(t, err, ErrEmptyInput)
	require.Nil(t, tree)
}

// TestSingleLeafTree checks the degenerate tree: root is the leaf, proof is empty
func TestSingleLeafTree(t *testing.T) {
	addr := testutil.HardhatAccounts()[0]
	tree, err := BuildAllowlistTree([]common.Address{addr})
	require.NoError(t, err)

	require.Equal(t, HashLeaf(addr), tree.Root())
	proof, err := tree.Proof(addr)
	require.NoError(t, err)
	require.Empty(t, proof)
	require.True(t, VerifyProof(tree.Root(), addr, proof))
}

// TestKnownRoots pins the deploy script root for the four whitelisted accounts
// and the replacement root committed by setRoot (first three accounts).
func TestKnownRoots(t *testing.T) {
	accounts := testutil.HardhatAccounts()

	t.Run("Leaf hash", func(t *testing.T) {
		require.Equal(t,
			mustDigest(t, "0xe9707d0e6171f728f7473c24cc0432a9b07eaaf1efed6a137a4a8c12c79552d9"),
			HashLeaf(accounts[0]))
	})

	t.Run("Four accounts, input order", func(t *testing.T) {
		tree, err := BuildAllowlistTree(accounts[:4])
		require.NoError(t, err)
		require.Equal(t,
			mustDigest(t, "0xd4453790033a2bd762f526409b7f358023773723d9e9bc42487e4996869162b6"),
			tree.Root())
	})

	t.Run("Four accounts, sorted leaves", func(t *testing.T) {
		tree, err := BuildAllowlistTree(accounts[:4], WithSortedLeaves())
		require.NoError(t, err)
		require.Equal(t,
			mustDigest(t, "0xb4316902345b116c2107a907acd1ddb3b8bdb6ac431c386e16ffc220ab1943b0"),
			tree.Root())
	})

	t.Run("Three accounts, input order", func(t *testing.T) {
		tree, err := BuildAllowlistTree(accounts[:3])
		require.NoError(t, err)
		require.Equal(t,
			mustDigest(t, "0x55e8063f883b9381398d8fef6fbae371817e8e4808a33a4145b8e3cdd65e3926"),
			tree.Root())
	})

	t.Run("Proof for user1", func(t *testing.T) {
		tree, err := BuildAllowlistTree(accounts[:4])
		require.NoError(t, err)
		proof, err := tree.Proof(accounts[1])
		require.NoError(t, err)
		require.Equal(t, []types.Digest{
			HashLeaf(accounts[0]),
			mustDigest(t, "0x7e0eefeb2d8740528b8f598997a219669f0842302d3c573e9bb7262be3387e63"),
		}, proof)
	})
}

// TestOddLevelCarriesUp fixes the odd-node policy: the unpaired node is promoted
// unchanged, never hashed with itself.
func TestOddLevelCarriesUp(t *testing.T) {
	accounts := testutil.HardhatAccounts()
	a, b, c := accounts[0], accounts[1], accounts[2]

	tree, err := BuildAllowlistTree([]common.Address{a, b, c})
	require.NoError(t, err)

	la, lb, lc := HashLeaf(a), HashLeaf(b), HashLeaf(c)
	carryUp := HashPair(HashPair(la, lb), lc)
	duplicate := HashPair(HashPair(la, lb), HashPair(lc, lc))

	require.Equal(t, carryUp, tree.Root())
	require.NotEqual(t, duplicate, tree.Root())
	require.Equal(t,
		mustDigest(t, "0xa5c09e2a9128afef7246a5900cfe02c4bd2cfcac8ac4286f0159a699c8455a49"),
		duplicate)

	// The carried leaf skips the level where it had no sibling
	proofC, err := tree.Proof(c)
	require.NoError(t, err)
	require.Equal(t, []types.Digest{HashPair(la, lb)}, proofC)

	proofA, err := tree.Proof(a)
	require.NoError(t, err)
	require.Equal(t, []types.Digest{lb, lc}, proofA)
}

// TestRootOrder documents which build mode is order sensitive
func TestRootOrder(t *testing.T) {
	addrs := testutil.CreateTestAddresses(10)
	reversed := make([]common.Address, len(addrs))
	for i := range addrs {
		reversed[len(addrs)-1-i] = addrs[i]
	}
	rotated := append(append([]common.Address{}, addrs[3:]...), addrs[:3]...)

	t.Run("Sorted leaves are order independent", func(t *testing.T) {
		tree1, err := BuildAllowlistTree(addrs, WithSortedLeaves())
		require.NoError(t, err)
		for _, perm := range [][]common.Address{reversed, rotated} {
			tree2, err := BuildAllowlistTree(perm, WithSortedLeaves())
			require.NoError(t, err)
			require.Equal(t, tree1.Root(), tree2.Root())
			require.Equal(t, tree1.Leaves(), tree2.Leaves())
		}
	})

	t.Run("Input order is positional", func(t *testing.T) {
		tree1, err := BuildAllowlistTree(addrs)
		require.NoError(t, err)
		tree2, err := BuildAllowlistTree(rotated)
		require.NoError(t, err)
		require.NotEqual(t, tree1.Root(), tree2.Root())

		// every member still proves against its own tree
		for _, addr := range rotated {
			proof, err := tree2.Proof(addr)
			require.NoError(t, err)
			require.True(t, VerifyProof(tree2.Root(), addr, proof))
		}
	})

	t.Run("Two leaves are order independent in either mode", func(t *testing.T) {
		tree1, err := BuildAllowlistTree(addrs[:2])
		require.NoError(t, err)
		tree2, err := BuildAllowlistTree([]common.Address{addrs[1], addrs[0]})
		require.NoError(t, err)
		require.Equal(t, tree1.Root(), tree2.Root())
	})
}

// TestTreeDeterminism tests that the same addresses always produce the same tree
func TestTreeDeterminism(t *testing.T) {
	addrs := testutil.CreateTestAddresses(11)

	tree1, err := BuildAllowlistTree(addrs)
	require.NoError(t, err)
	tree2, err := BuildAllowlistTree(addrs)
	require.NoError(t, err)

	require.Equal(t, tree1.Root(), tree2.Root())
	require.Equal(t, tree1.Leaves(), tree2.Leaves())
	for _, addr := range addrs {
		p1, err := tree1.Proof(addr)
		require.NoError(t, err)
		p2, err := tree2.Proof(addr)
		require.NoError(t, err)
		require.Equal(t, p1, p2)
	}
}

// TestBuildDoesNotMutateInput verifies sorting works on a copy
func TestBuildDoesNotMutateInput(t *testing.T) {
	addrs := testutil.CreateTestAddresses(6)
	original := make([]common.Address, len(addrs))
	copy(original, addrs)

	_, err := BuildAllowlistTree(addrs, WithSortedLeaves())
	require.NoError(t, err)
	require.Equal(t, original, addrs)
}

// TestProofVerification tests verification with valid and invalid cases
func TestProofVerification(t *testing.T) {
	addrs := testutil.CreateTestAddresses(5)
	tree, err := BuildAllowlistTree(addrs)
	require.NoError(t, err)

	proof, err := tree.Proof(addrs[0])
	require.NoError(t, err)
	require.NotEmpty(t, proof)

	t.Run("Valid proof", func(t *testing.T) {
		require.True(t, VerifyProof(tree.Root(), addrs[0], proof))
	})

	t.Run("Wrong root", func(t *testing.T) {
		require.False(t, VerifyProof(types.Digest{1, 2, 3, 4, 5}, addrs[0], proof))
	})

	t.Run("Tampered sibling", func(t *testing.T) {
		tampered := append([]types.Digest{}, proof...)
		tampered[0][0] ^= 0xFF
		require.False(t, VerifyProof(tree.Root(), addrs[0], tampered))
	})

	t.Run("Truncated proof", func(t *testing.T) {
		require.False(t, VerifyProof(tree.Root(), addrs[0], proof[:len(proof)-1]))
	})

	t.Run("Extended proof", func(t *testing.T) {
		extended := append(append([]types.Digest{}, proof...), types.Digest{9})
		require.False(t, VerifyProof(tree.Root(), addrs[0], extended))
	})

	t.Run("Nil proof", func(t *testing.T) {
		require.False(t, VerifyProof(tree.Root(), addrs[0], nil))
	})

	t.Run("Leaf as root is not a proof of anything else", func(t *testing.T) {
		require.False(t, VerifyProof(HashLeaf(addrs[0]), addrs[1], nil))
	})

	t.Run("VerifyLeaf matches VerifyProof", func(t *testing.T) {
		require.True(t, VerifyLeaf(tree.Root(), HashLeaf(addrs[0]), proof))
	})
}

// TestProofForUnknownAddress checks ErrNotFound
func TestProofForUnknownAddress(t *testing.T) {
	addrs := testutil.CreateTestAddresses(4)
	tree, err := BuildAllowlistTree(addrs)
	require.NoError(t, err)

	outsider := testutil.RandomAddress()
	proof, err := tree.Proof(outsider)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
	require.Contains(t, err.Error(), outsider.Hex())
	require.Nil(t, proof)
	require.False(t, tree.Contains(outsider))
}

// TestProofAt tests index based proof generation
func TestProofAt(t *testing.T) {
	addrs := testutil.CreateTestAddresses(4)
	tree, err := BuildAllowlistTree(addrs)
	require.NoError(t, err)

	for i, addr := range tree.Addresses() {
		byIndex, err := tree.ProofAt(i)
		require.NoError(t, err)
		byAddr, err := tree.Proof(addr)
		require.NoError(t, err)
		require.Equal(t, byAddr, byIndex)
	}

	_, err = tree.ProofAt(-1)
	require.Error(t, err)
	_, err = tree.ProofAt(4)
	require.Error(t, err)
}

// TestDuplicateAddresses checks duplicates are kept as separate leaves
func TestDuplicateAddresses(t *testing.T) {
	addrs := testutil.CreateTestAddresses(3)
	withDup := append(append([]common.Address{}, addrs...), addrs[1])

	tree, err := BuildAllowlistTree(withDup)
	require.NoError(t, err)
	require.Equal(t, 4, tree.Len())

	leaves := tree.Leaves()
	require.Equal(t, leaves[1], leaves[3])

	proof, err := tree.Proof(addrs[1])
	require.NoError(t, err)
	require.True(t, VerifyProof(tree.Root(), addrs[1], proof))

	// the second copy has its own, different, valid proof
	proofDup, err := tree.ProofAt(3)
	require.NoError(t, err)
	require.NotEqual(t, proof, proofDup)
	require.True(t, VerifyProof(tree.Root(), addrs[1], proofDup))
}

// TestHashPairIsSymmetric verifies sorted-pair hashing ignores argument order
func TestHashPairIsSymmetric(t *testing.T) {
	a := HashLeaf(testutil.NamedAddress("left"))
	b := HashLeaf(testutil.NamedAddress("right"))
	require.Equal(t, HashPair(a, b), HashPair(b, a))
	require.NotEqual(t, HashPair(a, b), HashPair(a, a))
}

// TestAllowlistScenario walks alice/bob/carol/dave and an outsider, eve
func TestAllowlistScenario(t *testing.T) {
	alice := testutil.NamedAddress("alice")
	bob := testutil.NamedAddress("bob")
	carol := testutil.NamedAddress("carol")
	dave := testutil.NamedAddress("dave")
	eve := testutil.NamedAddress("eve")

	tree, err := BuildAllowlistTree([]common.Address{alice, bob, carol, dave})
	require.NoError(t, err)
	root := tree.Root()

	proof, err := tree.Proof(bob)
	require.NoError(t, err)
	require.True(t, VerifyProof(root, bob, proof))

	// eve presenting bob's proof must fail since her leaf differs
	require.False(t, VerifyProof(root, eve, proof))

	_, err = tree.Proof(eve)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestWhitelistMintScenario mirrors the contract test sequence: owner and users 1-3
// are whitelisted; user1's proof admits user1 and is rejected for user3.
func TestWhitelistMintScenario(t *testing.T) {
	accounts := testutil.HardhatAccounts()
	owner, user1, user3 := accounts[0], accounts[1], accounts[3]

	tree, err := BuildAllowlistTree(accounts[:4])
	require.NoError(t, err)
	committedRoot := tree.Root()

	proofUser1, err := tree.Proof(user1)
	require.NoError(t, err)
	require.True(t, VerifyProof(committedRoot, user1, proofUser1))
	require.False(t, VerifyProof(committedRoot, user3, proofUser1))

	proofOwner, err := tree.Proof(owner)
	require.NoError(t, err)
	require.True(t, VerifyProof(committedRoot, owner, proofOwner))

	// user5 was never whitelisted
	_, err = tree.Proof(accounts[5])
	require.ErrorIs(t, err, ErrNotFound)
	require.False(t, VerifyProof(committedRoot, accounts[5], proofOwner))
}

// TestForgedProofsFail tries short fabricated proofs for outsiders
func TestForgedProofsFail(t *testing.T) {
	addrs := testutil.CreateTestAddresses(8)
	tree, err := BuildAllowlistTree(addrs)
	require.NoError(t, err)
	outsider := testutil.RandomAddress()

	// every level's nodes reused as a one-element proof
	for _, leaf := range tree.Leaves() {
		require.False(t, VerifyProof(tree.Root(), outsider, []types.Digest{leaf}))
	}
	// and members' proofs replayed for the outsider
	for _, addr := range addrs {
		proof, err := tree.Proof(addr)
		require.NoError(t, err)
		require.False(t, VerifyProof(tree.Root(), outsider, proof))
	}
}

// TestLargeTree tests with larger allowlists
func TestLargeTree(t *testing.T) {
	sizes := []int{50, 100, 1000, 1023, 1025}

	for _, size := range sizes {
		t.Run(fmt.Sprintf("Size_%d", size), func(t *testing.T) {
			addrs := testutil.CreateTestAddresses(size)
			tree, err := BuildAllowlistTree(addrs)
			require.NoError(t, err)
			require.Equal(t, size, tree.Len())
			require.Equal(t, ceilLog2(size), tree.Depth())

			for _, idx := range []int{0, size / 4, size / 2, size - 1} {
				proof, err := tree.Proof(addrs[idx])
				require.NoError(t, err)
				require.True(t, VerifyProof(tree.Root(), addrs[idx], proof))
			}
		})
	}
}

// TestConcurrentReads exercises a shared tree from many goroutines
func TestConcurrentReads(t *testing.T) {
	addrs := testutil.CreateTestAddresses(64)
	tree, err := BuildAllowlistTree(addrs)
	require.NoError(t, err)

	errs := make(chan error, len(addrs))
	for _, addr := range addrs {
		go func(a common.Address) {
			proof, err := tree.Proof(a)
			if err == nil && !VerifyProof(tree.Root(), a, proof) {
				err = fmt.Errorf("proof for %s did not verify", a.Hex())
			}
			errs <- err
		}(addr)
	}
	for range addrs {
		require.NoError(t, <-errs)
	}
}
