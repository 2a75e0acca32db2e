package models

import "time"

// AuditLog records one authenticated API request for later review.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	TenantID  string `gorm:"index;size:36;not null"`
	Method    string `gorm:"size:16"`
	Path      string `gorm:"size:255"`
	Action    string `gorm:"size:2048"` // method + path + truncated body
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:255"`
	CreatedAt time.Time
}
