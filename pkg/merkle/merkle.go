package merkle

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

var (
	// ErrEmptyInput is returned when a tree is built from zero addresses.
	ErrEmptyInput = errors.New("cannot build allowlist tree from empty address list")

	// ErrNotFound is returned when a proof is requested for an address that
	// was not part of the tree.
	ErrNotFound = errors.New("address not in allowlist")
)

// BuildAllowlistTree creates a binary merkle tree over the given addresses.
//
// Leaves are keccak256(address) over the raw 20 address bytes. Parents are
// keccak256(min(a, b) || max(a, b)) so a verifier does not need to know which
// side a sibling sits on. When a level has an odd number of nodes the last node
// is carried up to the next level unchanged; it is never paired with itself.
//
// By default leaves keep the caller's order, which yields the same root as
// merkletreejs with { sortPairs: true }. WithSortedLeaves makes the root
// independent of input order. Duplicate addresses are kept as duplicate leaves.
func BuildAllowlistTree(addresses []common.Address, opts ...TreeOption) (*AllowlistTree, error) {
	if len(addresses) == 0 {
		return nil, ErrEmptyInput
	}

	o := &treeOptions{}
	for _, opt := range opts {
		opt(o)
	}

	ordered := make([]common.Address, len(addresses))
	copy(ordered, addresses)

	leaves := make([]types.Digest, len(ordered))
	for i, addr := range ordered {
		leaves[i] = HashLeaf(addr)
	}

	if o.sortLeaves {
		sortLeaves(ordered, leaves)
	}

	index := make(map[common.Address]int, len(ordered))
	for i, addr := range ordered {
		if _, exists := index[addr]; !exists {
			index[addr] = i
		}
	}

	levels := [][]types.Digest{leaves}
	currentLevel := leaves
	for len(currentLevel) > 1 {
		nextLevel := make([]types.Digest, 0, (len(currentLevel)+1)/2)
		for i := 0; i < len(currentLevel); i += 2 {
			if i+1 == len(currentLevel) {
				// odd node out, carry up
				nextLevel = append(nextLevel, currentLevel[i])
				continue
			}
			nextLevel = append(nextLevel, HashPair(currentLevel[i], currentLevel[i+1]))
		}
		levels = append(levels, nextLevel)
		currentLevel = nextLevel
	}

	return &AllowlistTree{
		addresses:    ordered,
		index:        index,
		levels:       levels,
		sortedLeaves: o.sortLeaves,
	}, nil
}

// Root returns the merkle root committed on chain via setRoot.
func (t *AllowlistTree) Root() types.Digest {
	return t.levels[len(t.levels)-1][0]
}

// Proof returns the sibling hashes from the address's leaf up to, but not
// including, the root. Proofs for nodes that were carried up at an odd level
// are shorter than Depth().
func (t *AllowlistTree) Proof(address common.Address) ([]types.Digest, error) {
	leafIndex, ok := t.index[address]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, address.Hex())
	}
	return t.proofAt(leafIndex), nil
}

// ProofAt returns the proof for the leaf at the given position in leaf order.
func (t *AllowlistTree) ProofAt(leafIndex int) ([]types.Digest, error) {
	if leafIndex < 0 || leafIndex >= t.Len() {
		return nil, fmt.Errorf("leaf index %d out of bounds (tree has %d leaves)", leafIndex, t.Len())
	}
	return t.proofAt(leafIndex), nil
}

func (t *AllowlistTree) proofAt(leafIndex int) []types.Digest {
	proof := make([]types.Digest, 0, len(t.levels)-1)
	index := leafIndex

	for level := 0; level < len(t.levels)-1; level++ {
		currentLevel := t.levels[level]

		siblingIndex := index ^ 1
		if siblingIndex < len(currentLevel) {
			proof = append(proof, currentLevel[siblingIndex])
		}

		index = index / 2
	}

	return proof
}

// Contains reports whether the address has a leaf in the tree.
func (t *AllowlistTree) Contains(address common.Address) bool {
	_, ok := t.index[address]
	return ok
}

// Len is the number of leaves, duplicates included.
func (t *AllowlistTree) Len() int {
	return len(t.levels[0])
}

// Depth is the number of hashing levels above the leaves, ceil(log2(Len())).
func (t *AllowlistTree) Depth() int {
	return len(t.levels) - 1
}

// SortedLeaves reports whether the tree was built WithSortedLeaves.
func (t *AllowlistTree) SortedLeaves() bool {
	return t.sortedLeaves
}

// Leaves returns a copy of the leaf hashes in tree order.
func (t *AllowlistTree) Leaves() []types.Digest {
	out := make([]types.Digest, len(t.levels[0]))
	copy(out, t.levels[0])
	return out
}

// Addresses returns a copy of the addresses in leaf order.
func (t *AllowlistTree) Addresses() []common.Address {
	out := make([]common.Address, len(t.addresses))
	copy(out, t.addresses)
	return out
}

// VerifyProof recomputes the root from an address and its proof.
// Any mismatch, including malformed or foreign proofs, yields false.
func VerifyProof(root types.Digest, address common.Address, proof []types.Digest) bool {
	return VerifyLeaf(root, HashLeaf(address), proof)
}

// VerifyLeaf is VerifyProof for a caller that already holds the leaf hash.
func VerifyLeaf(root types.Digest, leaf types.Digest, proof []types.Digest) bool {
	current := leaf
	for _, sibling := range proof {
		current = HashPair(current, sibling)
	}
	return current == root
}

// HashLeaf computes keccak256 over the 20 address bytes, equivalent to
// keccak256(abi.encodePacked(account)) in Solidity.
func HashLeaf(address common.Address) types.Digest {
	return types.Digest(crypto.Keccak256Hash(address.Bytes()))
}

// HashPair computes keccak256 over the two digests ordered by byte value.
func HashPair(a, b types.Digest) types.Digest {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	data := make([]byte, 0, 2*types.DigestLength)
	data = append(data, a[:]...)
	data = append(data, b[:]...)
	return types.Digest(crypto.Keccak256Hash(data))
}

// sortLeaves orders leaves, and the addresses alongside them, by digest.
func sortLeaves(addresses []common.Address, leaves []types.Digest) {
	idx := make([]int, len(leaves))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return leaves[idx[i]].Compare(leaves[idx[j]]) < 0
	})

	sortedAddrs := make([]common.Address, len(addresses))
	sortedLeaves := make([]types.Digest, len(leaves))
	for to, from := range idx {
		sortedAddrs[to] = addresses[from]
		sortedLeaves[to] = leaves[from]
	}
	copy(addresses, sortedAddrs)
	copy(leaves, sortedLeaves)
}
