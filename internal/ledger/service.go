// Package ledger is the core of the system: tenant-scoped accounts and
// sub-accounts, the transaction log they derive their balances from,
// paired transfers, favorites, and the cascades that keep them
// consistent on delete.
package ledger

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service exposes every ledger operation. All methods take the caller's
// validated tenant id as an explicit first parameter; nothing is read
// from ambient state.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewService creates a ledger Service.
func NewService(db *gorm.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, log: log}
}
