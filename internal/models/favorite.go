package models

import "time"

// FavoriteType says what kind of entity a favorite points at.
type FavoriteType string

const (
	FavoriteTypeAccount    FavoriteType = "account"
	FavoriteTypeSubAccount FavoriteType = "subaccount"
)

// Favorite bookmarks one account or one sub-account for a tenant.
// Exactly one of AccountID/SubAccountID is set.
type Favorite struct {
	ID           string       `gorm:"primaryKey;size:36"`
	TenantID     string       `gorm:"index;size:36;not null"`
	AccountID    *string      `gorm:"index;size:36"`
	SubAccountID *string      `gorm:"index;size:36"`
	Type         FavoriteType `gorm:"size:16;not null"`
	CreatedAt    time.Time
}
