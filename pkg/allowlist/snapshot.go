package allowlist

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/merkle"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

// Snapshot is a self-contained export of a tree: the root plus every member's
// proof, suitable for serving from static hosting to a minting frontend.
type Snapshot struct {
	Version      int64                             `json:"version,omitempty"`
	Label        string                            `json:"label,omitempty"`
	Root         types.Digest                      `json:"root"`
	Count        int                               `json:"count"`
	Depth        int                               `json:"depth"`
	SortedLeaves bool                              `json:"sortedLeaves"`
	Proofs       map[common.Address][]types.Digest `json:"proofs"`
}

// NewSnapshot captures every address's proof. For duplicated addresses the
// first occurrence's proof is exported, matching AllowlistTree.Proof.
func NewSnapshot(tree *merkle.AllowlistTree, version int64, label string) *Snapshot {
	s := &Snapshot{
		Version:      version,
		Label:        label,
		Root:         tree.Root(),
		Count:        tree.Len(),
		Depth:        tree.Depth(),
		SortedLeaves: tree.SortedLeaves(),
		Proofs:       make(map[common.Address][]types.Digest, tree.Len()),
	}
	for i, addr := range tree.Addresses() {
		if _, seen := s.Proofs[addr]; seen {
			continue
		}
		proof, _ := tree.ProofAt(i)
		s.Proofs[addr] = proof
	}
	return s
}

// ProofFor returns the exported proof for an address.
func (s *Snapshot) ProofFor(addr common.Address) ([]types.Digest, bool) {
	proof, ok := s.Proofs[addr]
	return proof, ok
}

// Verify checks the exported proof for addr against the snapshot root.
func (s *Snapshot) Verify(addr common.Address) bool {
	proof, ok := s.ProofFor(addr)
	if !ok {
		return false
	}
	return merkle.VerifyProof(s.Root, addr, proof)
}

// WriteSnapshot writes the snapshot as indented JSON.
func WriteSnapshot(path string, s *Snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	return nil
}

// ReadSnapshot loads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}
	if s.Proofs == nil {
		s.Proofs = map[common.Address][]types.Digest{}
	}
	return &s, nil
}
