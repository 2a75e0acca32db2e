package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/apperr"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateTransactionParams holds the caller-settable fields of a new
// ledger entry. For transfers, ToAccountID/ToSubAccountID name the
// destination and two records are written.
type CreateTransactionParams struct {
	AccountID    string
	SubAccountID string
	Type         models.TransactionType
	AmountCent   int64
	Description  string
	Category     string
	Tags         []string
	OccurredAt   time.Time

	ToAccountID    string
	ToSubAccountID string
}

// UpdateTransactionParams is a partial update. AccountID/SubAccountID
// are immutable: a value differing from the stored one is silently
// dropped rather than rejected. The tenant id has no field at all.
type UpdateTransactionParams struct {
	AccountID    *string
	SubAccountID *string
	Type         *models.TransactionType
	AmountCent   *int64
	Description  *string
	Category     *string
	Tags         *[]string
	OccurredAt   *time.Time
}

// ListTransactionsParams filters and pages a transaction listing.
type ListTransactionsParams struct {
	AccountID    string
	SubAccountID string
	Type         models.TransactionType
	Category     string
	Start        time.Time
	End          time.Time
	Limit        int
	Offset       int
}

// CreateTransaction validates ownership of every referenced account and
// sub-account, writes the entry (or, for a transfer, both halves of the
// pair in one atomic batch), and then recomputes every touched balance.
// For transfers the returned record is the outgoing side.
func (s *Service) CreateTransaction(tenantID string, p CreateTransactionParams) (*models.Transaction, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if !p.Type.Valid() {
		return nil, apperr.Validation("transactionType", "must be one of income, expense, transfer")
	}
	if p.AmountCent <= 0 {
		return nil, apperr.Validation("amount", "must be positive")
	}

	sub, err := s.getSubAccount(tenantID, p.SubAccountID)
	if err != nil {
		return nil, err
	}
	if sub.AccountID != p.AccountID {
		return nil, apperr.Validation("subAccountId", "does not belong to the given account")
	}
	if _, err := s.getAccount(tenantID, p.AccountID); err != nil {
		return nil, err
	}

	occurredAt := p.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	tags := strings.Join(p.Tags, ",")

	if p.Type == models.TransactionTypeTransfer {
		return s.createTransferPair(tenantID, p, occurredAt, tags)
	}

	txn := models.Transaction{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		AccountID:    p.AccountID,
		SubAccountID: p.SubAccountID,
		Type:         p.Type,
		AmountCent:   p.AmountCent,
		Description:  p.Description,
		Category:     p.Category,
		Tags:         tags,
		OccurredAt:   occurredAt,
	}
	if err := s.db.Create(&txn).Error; err != nil {
		return nil, err
	}

	if err := s.recomputeTouched(tenantID,
		balanceTarget{accountID: p.AccountID, subAccountID: p.SubAccountID}); err != nil {
		return nil, err
	}
	return &txn, nil
}

// createTransferPair writes the outgoing and incoming records with
// reciprocal links. Both ids are allocated up front so each side can
// reference the other inside the same batch.
func (s *Service) createTransferPair(tenantID string, p CreateTransactionParams, occurredAt time.Time, tags string) (*models.Transaction, error) {
	if p.ToAccountID == "" || p.ToSubAccountID == "" {
		return nil, apperr.Validation("toSubAccountId", "transfer requires a destination account and sub-account")
	}
	destSub, err := s.getSubAccount(tenantID, p.ToSubAccountID)
	if err != nil {
		return nil, err
	}
	if destSub.AccountID != p.ToAccountID {
		return nil, apperr.Validation("toSubAccountId", "does not belong to the given destination account")
	}
	if _, err := s.getAccount(tenantID, p.ToAccountID); err != nil {
		return nil, err
	}

	outgoingID := uuid.NewString()
	incomingID := uuid.NewString()

	outgoing := models.Transaction{
		ID:                  outgoingID,
		TenantID:            tenantID,
		AccountID:           p.AccountID,
		SubAccountID:        p.SubAccountID,
		Type:                models.TransactionTypeTransfer,
		AmountCent:          p.AmountCent,
		Description:         p.Description,
		Category:            p.Category,
		Tags:                tags,
		TransferType:        models.TransferTypeOutgoing,
		LinkedTransactionID: incomingID,
		ToAccountID:         p.ToAccountID,
		ToSubAccountID:      p.ToSubAccountID,
		OccurredAt:          occurredAt,
	}
	incoming := models.Transaction{
		ID:                  incomingID,
		TenantID:            tenantID,
		AccountID:           p.ToAccountID,
		SubAccountID:        p.ToSubAccountID,
		Type:                models.TransactionTypeTransfer,
		AmountCent:          p.AmountCent,
		Description:         p.Description,
		Category:            p.Category,
		Tags:                tags,
		TransferType:        models.TransferTypeIncoming,
		LinkedTransactionID: outgoingID,
		FromAccountID:       p.AccountID,
		FromSubAccountID:    p.SubAccountID,
		OccurredAt:          occurredAt,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&outgoing).Error; err != nil {
			return err
		}
		return tx.Create(&incoming).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.recomputeTouched(tenantID,
		balanceTarget{accountID: p.AccountID, subAccountID: p.SubAccountID},
		balanceTarget{accountID: p.ToAccountID, subAccountID: p.ToSubAccountID}); err != nil {
		return nil, err
	}
	return &outgoing, nil
}

// GetTransaction returns one entry after re-verifying its tenant.
func (s *Service) GetTransaction(tenantID, id string) (*models.Transaction, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, err
	}
	return s.getTransaction(tenantID, id)
}

// ListTransactions returns entries newest-first under the given filters.
func (s *Service) ListTransactions(tenantID string, p ListTransactionsParams) ([]models.Transaction, int64, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, 0, err
	}

	limit := p.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	base := s.db.Model(&models.Transaction{}).Where("tenant_id = ?", tenantID)
	if p.AccountID != "" {
		base = base.Where("account_id = ?", p.AccountID)
	}
	if p.SubAccountID != "" {
		base = base.Where("sub_account_id = ?", p.SubAccountID)
	}
	if p.Type != "" {
		base = base.Where("type = ?", p.Type)
	}
	if p.Category != "" {
		base = base.Where("category = ?", p.Category)
	}
	if !p.Start.IsZero() {
		base = base.Where("occurred_at >= ?", p.Start)
	}
	if !p.End.IsZero() {
		base = base.Where("occurred_at < ?", p.End)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txns []models.Transaction
	if err := base.Session(&gorm.Session{}).
		Order("occurred_at DESC, id DESC").
		Limit(limit).
		Offset(p.Offset).
		Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// UpdateTransaction applies a partial update to an owned entry. If the
// entry is one half of a transfer, the shared fields (amount, date,
// description, category, tags) are propagated to the counterpart in the
// same atomic batch so the two sides never diverge, and balances on
// both sides are recomputed.
func (s *Service) UpdateTransaction(tenantID, id string, p UpdateTransactionParams) (*models.Transaction, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, err
	}
	txn, err := s.getTransaction(tenantID, id)
	if err != nil {
		return nil, err
	}

	// Account and sub-account references are immutable. A patch naming
	// a different one is dropped, not rejected.
	if p.AccountID != nil && *p.AccountID != txn.AccountID {
		p.AccountID = nil
	}
	if p.SubAccountID != nil && *p.SubAccountID != txn.SubAccountID {
		p.SubAccountID = nil
	}

	if p.Type != nil {
		if !p.Type.Valid() {
			return nil, apperr.Validation("transactionType", "must be one of income, expense, transfer")
		}
		switch {
		case txn.LinkedTransactionID != "":
			// a transfer leg keeps its type
		case *p.Type == models.TransactionTypeTransfer:
			return nil, apperr.Validation("transactionType", "cannot turn an existing record into a transfer")
		default:
			txn.Type = *p.Type
		}
	}
	if p.AmountCent != nil {
		if *p.AmountCent <= 0 {
			return nil, apperr.Validation("amount", "must be positive")
		}
		txn.AmountCent = *p.AmountCent
	}
	if p.Description != nil {
		txn.Description = *p.Description
	}
	if p.Category != nil {
		txn.Category = *p.Category
	}
	if p.Tags != nil {
		txn.Tags = strings.Join(*p.Tags, ",")
	}
	if p.OccurredAt != nil {
		txn.OccurredAt = *p.OccurredAt
	}

	linked := s.loadCounterpart(tenantID, txn)
	if linked != nil {
		linked.AmountCent = txn.AmountCent
		linked.OccurredAt = txn.OccurredAt
		linked.Description = txn.Description
		linked.Category = txn.Category
		linked.Tags = txn.Tags
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(txn).Error; err != nil {
			return err
		}
		if linked != nil {
			return tx.Save(linked).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	targets := []balanceTarget{{accountID: txn.AccountID, subAccountID: txn.SubAccountID}}
	if linked != nil {
		targets = append(targets, balanceTarget{accountID: linked.AccountID, subAccountID: linked.SubAccountID})
	}
	if err := s.recomputeTouched(tenantID, targets...); err != nil {
		return nil, err
	}
	return txn, nil
}

// DeleteTransaction removes an owned entry. Both halves of a transfer
// go in one atomic batch; a missing counterpart is logged and tolerated
// rather than failing the delete. Every touched balance is recomputed.
func (s *Service) DeleteTransaction(tenantID, id string) error {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return err
	}
	txn, err := s.getTransaction(tenantID, id)
	if err != nil {
		return err
	}

	linked := s.loadCounterpart(tenantID, txn)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Transaction{}, "id = ?", txn.ID).Error; err != nil {
			return err
		}
		if linked != nil {
			return tx.Delete(&models.Transaction{}, "id = ?", linked.ID).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	targets := []balanceTarget{{accountID: txn.AccountID, subAccountID: txn.SubAccountID}}
	if linked != nil {
		targets = append(targets, balanceTarget{accountID: linked.AccountID, subAccountID: linked.SubAccountID})
	}
	return s.recomputeTouched(tenantID, targets...)
}

// loadCounterpart fetches the other half of a transfer. A dangling link
// is a recoverable anomaly: it is logged as a consistency warning and
// nil is returned so the caller proceeds on the remaining side.
func (s *Service) loadCounterpart(tenantID string, txn *models.Transaction) *models.Transaction {
	if txn.LinkedTransactionID == "" {
		return nil
	}
	var linked models.Transaction
	err := s.db.First(&linked, "id = ? AND tenant_id = ?", txn.LinkedTransactionID, tenantID).Error
	if err != nil {
		warn := &apperr.ConsistencyWarning{
			Detail: fmt.Sprintf("transaction %s links to missing counterpart %s", txn.ID, txn.LinkedTransactionID),
		}
		s.log.Warn(warn.Error(),
			zap.String("tenant_id", tenantID),
			zap.String("transaction_id", txn.ID),
			zap.String("linked_transaction_id", txn.LinkedTransactionID),
		)
		return nil
	}
	return &linked
}

// externalTransferLegs returns counterpart halves of transfers whose
// other half lives under one of the given sub-accounts but which
// themselves live outside that set. A cascade that deletes the given
// sub-accounts must take these legs with it, or an unpaired record
// referencing the deleted scope survives.
func (s *Service) externalTransferLegs(tenantID string, subAccountIDs []string) ([]models.Transaction, error) {
	if len(subAccountIDs) == 0 {
		return nil, nil
	}
	var linkedIDs []string
	if err := s.db.Model(&models.Transaction{}).
		Where("tenant_id = ? AND sub_account_id IN ? AND linked_transaction_id <> ''", tenantID, subAccountIDs).
		Pluck("linked_transaction_id", &linkedIDs).Error; err != nil {
		return nil, err
	}
	if len(linkedIDs) == 0 {
		return nil, nil
	}
	var legs []models.Transaction
	if err := s.db.
		Where("tenant_id = ? AND id IN ? AND sub_account_id NOT IN ?", tenantID, linkedIDs, subAccountIDs).
		Find(&legs).Error; err != nil {
		return nil, err
	}
	return legs, nil
}

func (s *Service) getTransaction(tenantID, id string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("transaction", id)
		}
		return nil, err
	}
	if err := authorize("transaction "+id, txn.TenantID, tenantID); err != nil {
		return nil, err
	}
	return &txn, nil
}
