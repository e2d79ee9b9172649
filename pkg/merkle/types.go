package merkle

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

// AllowlistTree is a binary merkle tree committing to a set of addresses.
// The tree uses keccak256 hashing and sorted-pair parents so that proofs verify
// with OpenZeppelin's MerkleProof.verify on chain.
type AllowlistTree struct {
	// addresses in leaf order, parallel to levels[0]
	addresses []common.Address

	// index maps an address to the position of its first leaf
	index map[common.Address]int

	// levels stores all tree levels for proof generation
	// levels[0] = leaves, levels[len-1] = [root]
	levels [][]types.Digest

	sortedLeaves bool
}

// TreeOption customises tree construction.
type TreeOption func(*treeOptions)

type treeOptions struct {
	sortLeaves bool
}

// WithSortedLeaves orders leaves by digest before building. The resulting root
// no longer depends on the order addresses were supplied in.
func WithSortedLeaves() TreeOption {
	return func(o *treeOptions) {
		o.sortLeaves = true
	}
}
