package models

import "time"

// User is an application login. TenantID is the opaque identifier every
// ledger document of this user is scoped by; it is minted once at
// registration and never changes.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	TenantID     string `gorm:"uniqueIndex;size:36;not null"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	DisplayName  string `gorm:"size:64"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	LastLoginAt *time.Time
	LastLoginIP string `gorm:"size:64"`
}
