package storage

import (
	"github.com/bobmcallan/toolgate/internal/common"
	"github.com/bobmcallan/toolgate/internal/config"
	"github.com/bobmcallan/toolgate/internal/interfaces"
	"github.com/bobmcallan/toolgate/internal/storage/badger"
)

// NewInvocationStore creates the invocation history store selected by
// config: BadgerDB when storage is enabled, otherwise in-memory.
func NewInvocationStore(logger *common.Logger, cfg *config.Config) (interfaces.InvocationStore, error) {
	if !cfg.Storage.Enabled {
		return NewMemoryStore(), nil
	}
	db, err := badger.NewBadgerDB(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, err
	}
	return badger.NewHistoryStore(db, logger), nil
}
