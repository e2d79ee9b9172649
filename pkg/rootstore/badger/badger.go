package badger

import (
	"context"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	badgerdb "github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/rootstore"
)

const (
	keyPrefixRoot        = "root:"
	keyActiveVersion     = "active:version"
	keySchemaVersion     = "metadata:schema_version"
	currentSchemaVersion = "v1"

	gcInterval     = 5 * time.Minute
	gcDiscardRatio = 0.5
)

// BadgerRootStore keeps published roots on local disk.
type BadgerRootStore struct {
	db       *badgerdb.DB
	logger   *zap.Logger
	gcCancel context.CancelFunc
	gcWg     sync.WaitGroup
	mu       sync.RWMutex
	closed   bool
}

var _ rootstore.IRootStore = (*BadgerRootStore)(nil)

// NewBadgerRootStore opens (or creates) a store at dataPath with SyncWrites
// enabled and starts a background value-log GC goroutine.
func NewBadgerRootStore(dataPath string, logger *zap.Logger) (*BadgerRootStore, error) {
	absPath, err := filepath.Abs(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	opts := badgerdb.DefaultOptions(absPath)
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.SyncWrites = true
	opts.CompactL0OnClose = true
	opts.NumVersionsToKeep = 1

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database at %s: %w", absPath, err)
	}

	bs := &BadgerRootStore{
		db:     db,
		logger: logger,
	}

	if err := bs.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	bs.gcCancel = cancel
	bs.gcWg.Add(1)
	go bs.runGC(ctx)

	logger.Sugar().Infow("Badger root store initialized", "path", absPath)

	return bs, nil
}

func (b *BadgerRootStore) initSchema() error {
	return b.db.Update(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(keySchemaVersion))
		if err == badgerdb.ErrKeyNotFound {
			return txn.Set([]byte(keySchemaVersion), []byte(currentSchemaVersion))
		}
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		var existingVersion string
		err = item.Value(func(val []byte) error {
			existingVersion = string(val)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to read schema version value: %w", err)
		}

		if existingVersion != currentSchemaVersion {
			return fmt.Errorf("unsupported schema version: %s (expected: %s)", existingVersion, currentSchemaVersion)
		}
		return nil
	})
}

func (b *BadgerRootStore) runGC(ctx context.Context) {
	defer b.gcWg.Done()

	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := b.db.RunValueLogGC(gcDiscardRatio)
			if err != nil && err != badgerdb.ErrNoRewrite {
				b.logger.Sugar().Warnw("Badger GC error", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// rootKey zero-pads the version so prefix iteration is already in numeric order.
func rootKey(version int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", keyPrefixRoot, version))
}

// SaveRootVersion persists a root version
func (b *BadgerRootStore) SaveRootVersion(version *rootstore.RootVersion) error {
	if version == nil {
		return fmt.Errorf("cannot save nil RootVersion")
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return rootstore.ErrClosed
	}

	data, err := rootstore.MarshalRootVersion(version)
	if err != nil {
		return err
	}

	return b.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(rootKey(version.Version), data)
	})
}

// LoadRootVersion retrieves a root version
func (b *BadgerRootStore) LoadRootVersion(version int64) (*rootstore.RootVersion, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, rootstore.ErrClosed
	}

	var data []byte
	err := b.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(rootKey(version))
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data = append([]byte{}, val...)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load RootVersion %d: %w", version, err)
	}

	if data == nil {
		return nil, nil
	}

	return rootstore.UnmarshalRootVersion(data)
}

// ListRootVersions returns all root versions sorted by version number
func (b *BadgerRootStore) ListRootVersions() ([]*rootstore.RootVersion, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, rootstore.ErrClosed
	}

	versions := []*rootstore.RootVersion{}

	err := b.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefixRoot)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()

			var data []byte
			err := item.Value(func(val []byte) error {
				data = append([]byte{}, val...)
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to read value: %w", err)
			}

			rv, err := rootstore.UnmarshalRootVersion(data)
			if err != nil {
				b.logger.Sugar().Warnw("Failed to unmarshal RootVersion, skipping",
					"key", string(item.Key()), "error", err)
				continue
			}
			versions = append(versions, rv)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list RootVersions: %w", err)
	}

	// keys are zero padded, but negative versions would sort lexically wrong
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Version < versions[j].Version
	})

	return versions, nil
}

// DeleteRootVersion removes a root version
func (b *BadgerRootStore) DeleteRootVersion(version int64) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return rootstore.ErrClosed
	}

	return b.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete(rootKey(version))
	})
}

// SetActiveVersion stores the active version number
func (b *BadgerRootStore) SetActiveVersion(version int64) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return rootstore.ErrClosed
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(version))

	return b.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(keyActiveVersion), buf)
	})
}

// GetActiveVersion retrieves the active version number
func (b *BadgerRootStore) GetActiveVersion() (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return 0, rootstore.ErrClosed
	}

	var version int64
	err := b.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(keyActiveVersion))
		if err == badgerdb.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("invalid active version data length: %d", len(val))
			}
			version = int64(binary.BigEndian.Uint64(val))
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get active version: %w", err)
	}

	return version, nil
}

// Close stops GC and closes the database
func (b *BadgerRootStore) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	if b.gcCancel != nil {
		b.gcCancel()
	}
	b.gcWg.Wait()

	if err := b.db.Close(); err != nil {
		return fmt.Errorf("failed to close badger database: %w", err)
	}

	b.logger.Sugar().Info("Badger root store closed")
	return nil
}

// HealthCheck verifies the database is readable and initialised
func (b *BadgerRootStore) HealthCheck() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return rootstore.ErrClosed
	}

	return b.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get([]byte(keySchemaVersion))
		if err == badgerdb.ErrKeyNotFound {
			return fmt.Errorf("schema version not found - database may be corrupted")
		}
		return err
	})
}
