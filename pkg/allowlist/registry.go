package allowlist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/merkle"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/rootstore"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

var (
	// ErrNoActiveRoot is returned when nothing has been published yet.
	ErrNoActiveRoot = errors.New("no allowlist root has been published")

	// ErrRootMismatch is returned when a stored version rebuilds to a different root.
	ErrRootMismatch = errors.New("stored allowlist does not rebuild to its recorded root")

	// ErrVersionNotFound is returned for a version the store does not hold.
	ErrVersionNotFound = errors.New("root version not found")
)

// ActiveTree pairs a stored version with its rebuilt tree. Both are read-only.
type ActiveTree struct {
	Version *rootstore.RootVersion
	Tree    *merkle.AllowlistTree
}

// RegistryConfig controls how published allowlists are built.
type RegistryConfig struct {
	SortedLeaves bool
}

// Registry holds the allowlist currently being served. Readers load the
// active tree through an atomic pointer; publishers are serialized and swap
// the pointer only after the new version is persisted.
type Registry struct {
	store  rootstore.IRootStore
	logger *zap.Logger
	config *RegistryConfig

	publishMu sync.Mutex
	active    atomic.Pointer[ActiveTree]
}

// NewRegistry creates a registry over the given store. Call Restore to pick up
// a previously active version.
func NewRegistry(store rootstore.IRootStore, cfg *RegistryConfig, logger *zap.Logger) *Registry {
	if cfg == nil {
		cfg = &RegistryConfig{}
	}
	return &Registry{
		store:  store,
		logger: logger,
		config: cfg,
	}
}

// Publish builds a tree from addrs, stores it as the next version, marks it
// active and only then makes it visible to readers.
func (r *Registry) Publish(ctx context.Context, addrs []common.Address, label string) (*ActiveTree, error) {
	var opts []merkle.TreeOption
	if r.config.SortedLeaves {
		opts = append(opts, merkle.WithSortedLeaves())
	}

	tree, err := merkle.BuildAllowlistTree(addrs, opts...)
	if err != nil {
		return nil, err
	}

	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	next, err := r.nextVersion()
	if err != nil {
		return nil, err
	}

	rv := &rootstore.RootVersion{
		Version:      next,
		ID:           uuid.NewString(),
		Label:        label,
		Root:         tree.Root(),
		Addresses:    types.AddressesToHex(tree.Addresses()),
		SortedLeaves: tree.SortedLeaves(),
		CreatedAt:    time.Now().Unix(),
	}

	if err := r.store.SaveRootVersion(rv); err != nil {
		return nil, fmt.Errorf("failed to save root version %d: %w", next, err)
	}
	if err := r.store.SetActiveVersion(next); err != nil {
		return nil, fmt.Errorf("failed to activate root version %d: %w", next, err)
	}

	at := &ActiveTree{Version: rv, Tree: tree}
	r.active.Store(at)

	r.logger.Sugar().Infow("Published allowlist root",
		"version", rv.Version,
		"label", rv.Label,
		"root", rv.Root.Hex(),
		"count", tree.Len(),
		"depth", tree.Depth(),
	)
	return at, nil
}

// Restore loads the store's active version, if any, and serves it.
// Returns nil without error on a fresh store.
func (r *Registry) Restore() (*ActiveTree, error) {
	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	version, err := r.store.GetActiveVersion()
	if err != nil {
		return nil, fmt.Errorf("failed to read active version: %w", err)
	}
	if version == 0 {
		r.logger.Sugar().Infow("No active allowlist version to restore")
		return nil, nil
	}

	at, err := r.load(version)
	if err != nil {
		return nil, err
	}
	r.active.Store(at)

	r.logger.Sugar().Infow("Restored allowlist root",
		"version", version,
		"root", at.Version.Root.Hex(),
		"count", at.Tree.Len(),
	)
	return at, nil
}

// Activate switches to a previously published version, e.g. to roll back.
func (r *Registry) Activate(version int64) (*ActiveTree, error) {
	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	at, err := r.load(version)
	if err != nil {
		return nil, err
	}
	if err := r.store.SetActiveVersion(version); err != nil {
		return nil, fmt.Errorf("failed to activate root version %d: %w", version, err)
	}
	r.active.Store(at)

	r.logger.Sugar().Infow("Activated allowlist root", "version", version, "root", at.Version.Root.Hex())
	return at, nil
}

// MarkCommitted records the setRoot transaction for a version.
func (r *Registry) MarkCommitted(version int64, txHash common.Hash) error {
	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	rv, err := r.store.LoadRootVersion(version)
	if err != nil {
		return err
	}
	if rv == nil {
		return fmt.Errorf("%w: %d", ErrVersionNotFound, version)
	}
	rv.CommittedTx = txHash.Hex()
	if err := r.store.SaveRootVersion(rv); err != nil {
		return err
	}

	if cur := r.active.Load(); cur != nil && cur.Version.Version == version {
		r.active.Store(&ActiveTree{Version: rv, Tree: cur.Tree})
	}
	return nil
}

// Active returns the tree being served, or nil.
func (r *Registry) Active() *ActiveTree {
	return r.active.Load()
}

// Proof returns the active tree together with addr's proof so callers report
// the root the proof belongs to even if a publish happens concurrently.
func (r *Registry) Proof(addr common.Address) (*ActiveTree, []types.Digest, error) {
	at := r.active.Load()
	if at == nil {
		return nil, nil, ErrNoActiveRoot
	}
	proof, err := at.Tree.Proof(addr)
	if err != nil {
		return at, nil, err
	}
	return at, proof, nil
}

// Verify checks a proof against the active root.
func (r *Registry) Verify(addr common.Address, proof []types.Digest) (bool, error) {
	at := r.active.Load()
	if at == nil {
		return false, ErrNoActiveRoot
	}
	return merkle.VerifyProof(at.Tree.Root(), addr, proof), nil
}

// Versions lists stored versions without their address lists.
func (r *Registry) Versions() ([]*rootstore.RootVersion, error) {
	versions, err := r.store.ListRootVersions()
	if err != nil {
		return nil, err
	}
	out := make([]*rootstore.RootVersion, len(versions))
	for i, v := range versions {
		out[i] = v.WithoutAddresses()
	}
	return out, nil
}

// SortedLeaves reports whether published trees sort their leaves.
func (r *Registry) SortedLeaves() bool {
	return r.config.SortedLeaves
}

// HealthCheck reports the health of the underlying store.
func (r *Registry) HealthCheck() error {
	return r.store.HealthCheck()
}

// Snapshot exports the active tree.
func (r *Registry) Snapshot() (*Snapshot, error) {
	at := r.active.Load()
	if at == nil {
		return nil, ErrNoActiveRoot
	}
	return NewSnapshot(at.Tree, at.Version.Version, at.Version.Label), nil
}

func (r *Registry) nextVersion() (int64, error) {
	versions, err := r.store.ListRootVersions()
	if err != nil {
		return 0, fmt.Errorf("failed to list root versions: %w", err)
	}
	if len(versions) == 0 {
		return 1, nil
	}
	return versions[len(versions)-1].Version + 1, nil
}

// load rebuilds a stored version and checks it against the recorded root.
func (r *Registry) load(version int64) (*ActiveTree, error) {
	rv, err := r.store.LoadRootVersion(version)
	if err != nil {
		return nil, fmt.Errorf("failed to load root version %d: %w", version, err)
	}
	if rv == nil {
		return nil, fmt.Errorf("%w: %d", ErrVersionNotFound, version)
	}

	addrs, err := types.ParseAddresses(rv.Addresses)
	if err != nil {
		return nil, fmt.Errorf("root version %d: %w", version, err)
	}

	var opts []merkle.TreeOption
	if rv.SortedLeaves {
		opts = append(opts, merkle.WithSortedLeaves())
	}
	tree, err := merkle.BuildAllowlistTree(addrs, opts...)
	if err != nil {
		return nil, fmt.Errorf("root version %d: %w", version, err)
	}
	if tree.Root() != rv.Root {
		return nil, fmt.Errorf("%w: version %d recorded %s, rebuilt %s",
			ErrRootMismatch, version, rv.Root.Hex(), tree.Root().Hex())
	}

	return &ActiveTree{Version: rv, Tree: tree}, nil
}
