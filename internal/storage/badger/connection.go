package badger

import (
	"fmt"
	"os"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/docvegas/internal/common"
	"github.com/timshannon/badgerhold/v4"
)

// BadgerDB owns the badgerhold store holding audit history
type BadgerDB struct {
	store  *badgerhold.Store
	logger arbor.ILogger
	path   string
}

// NewBadgerDB opens (creating if needed) the store at config.Path.
// With reset_on_startup the directory is wiped first.
func NewBadgerDB(logger arbor.ILogger, config *common.BadgerConfig) (*BadgerDB, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("badger path is required")
	}

	if config.ResetOnStartup {
		if err := os.RemoveAll(config.Path); err != nil {
			return nil, fmt.Errorf("failed to reset audit database at %s: %w", config.Path, err)
		}
		logger.Warn().Str("path", config.Path).Msg("Audit database reset on startup")
	}

	if err := os.MkdirAll(config.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	// badger's own logger is noisy; arbor covers lifecycle events
	options.Options = badgerdb.DefaultOptions(config.Path).WithLogger(nil)

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database at %s: %w", config.Path, err)
	}

	logger.Debug().Str("path", config.Path).Msg("Audit database opened")

	return &BadgerDB{
		store:  store,
		logger: logger,
		path:   config.Path,
	}, nil
}

// Store returns the underlying badgerhold store
func (b *BadgerDB) Store() *badgerhold.Store {
	return b.store
}

// Close closes the database connection
func (b *BadgerDB) Close() error {
	if b.store == nil {
		return nil
	}
	if err := b.store.Close(); err != nil {
		return fmt.Errorf("failed to close audit database at %s: %w", b.path, err)
	}
	b.store = nil
	return nil
}
