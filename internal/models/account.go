package models

import "time"

// AccountType classifies top-level ledger accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
	AccountTypeEquity    AccountType = "equity"
)

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeIncome,
		AccountTypeExpense, AccountTypeEquity:
		return true
	}
	return false
}

// Account is a top-level ledger account. TotalBalanceCent is a cached
// roll-up of the balances of its sub-accounts, never authoritative.
type Account struct {
	ID               string      `gorm:"primaryKey;size:36"`
	TenantID         string      `gorm:"index;size:36;not null"`
	Type             AccountType `gorm:"size:16;index;not null"`
	Name             string      `gorm:"size:64;not null"`
	TotalBalanceCent int64       `gorm:"not null"`
	IsFavorite       bool        `gorm:"not null"`
	Color            string      `gorm:"size:16"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
