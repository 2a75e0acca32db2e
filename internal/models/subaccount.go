package models

import "time"

// SubAccount belongs to exactly one Account of the same tenant.
// AccountID never changes after creation. BalanceCent is cached and
// derived from the sub-account's transaction log.
type SubAccount struct {
	ID          string `gorm:"primaryKey;size:36"`
	TenantID    string `gorm:"index;size:36;not null"`
	AccountID   string `gorm:"index;size:36;not null"`
	Name        string `gorm:"size:64;not null"`
	BalanceCent int64  `gorm:"not null"`
	IsFavorite  bool   `gorm:"not null"`
	Color       string `gorm:"size:16"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
