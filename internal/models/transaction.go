package models

import "time"

// TransactionType is the kind of ledger entry.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// TransferType marks which side of a transfer pair a record is.
type TransferType string

const (
	TransferTypeOutgoing TransferType = "outgoing"
	TransferTypeIncoming TransferType = "incoming"
)

// Transaction is a single ledger entry. Amounts are stored in cents and
// are always positive; direction is carried by Type and TransferType,
// never by sign.
//
// A transfer is two Transaction rows, one per side, each pointing at its
// counterpart through LinkedTransactionID. The outgoing side records the
// destination in ToAccountID/ToSubAccountID, the incoming side records
// the source in FromAccountID/FromSubAccountID.
//
// TenantID, AccountID and SubAccountID are immutable after creation.
type Transaction struct {
	ID           string          `gorm:"primaryKey;size:36"`
	TenantID     string          `gorm:"index;size:36;not null"`
	AccountID    string          `gorm:"index;size:36;not null"`
	SubAccountID string          `gorm:"index;size:36;not null"`
	Type         TransactionType `gorm:"size:16;index;not null"`
	AmountCent   int64           `gorm:"not null"`
	Description  string          `gorm:"size:255"`
	Category     string          `gorm:"size:32"`
	Tags         string          `gorm:"size:255"` // comma-separated

	TransferType        TransferType `gorm:"size:16"`
	LinkedTransactionID string       `gorm:"index;size:36"`
	ToAccountID         string       `gorm:"size:36"`
	ToSubAccountID      string       `gorm:"size:36"`
	FromAccountID       string       `gorm:"size:36"`
	FromSubAccountID    string       `gorm:"size:36"`

	OccurredAt time.Time `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SignedAmountCent returns the entry's contribution to its sub-account
// balance: income and incoming transfers add, everything else subtracts.
// A transfer row with no recorded direction counts as outgoing; older
// rows predate the direction field.
func (t *Transaction) SignedAmountCent() int64 {
	switch t.Type {
	case TransactionTypeIncome:
		return t.AmountCent
	case TransactionTypeTransfer:
		if t.TransferType == TransferTypeIncoming {
			return t.AmountCent
		}
		return -t.AmountCent
	default:
		return -t.AmountCent
	}
}
