package ledger

import (
	"errors"
	"strings"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/apperr"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAccountParams holds the caller-settable fields of a new account.
type CreateAccountParams struct {
	Type  models.AccountType
	Name  string
	Color string
}

// UpdateAccountParams is a partial update; nil fields are left alone.
// The tenant id is not updatable and has no field here.
type UpdateAccountParams struct {
	Type       *models.AccountType
	Name       *string
	Color      *string
	IsFavorite *bool
}

// CreateAccount validates and stores a new account with a zero balance.
func (s *Service) CreateAccount(tenantID string, p CreateAccountParams) (*models.Account, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if !p.Type.Valid() {
		return nil, apperr.Validation("accountType", "must be one of asset, liability, income, expense, equity")
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, apperr.Validation("name", "must not be empty")
	}

	account := models.Account{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Type:     p.Type,
		Name:     p.Name,
		Color:    p.Color,
	}
	if err := s.db.Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccount returns one account after re-verifying its tenant.
func (s *Service) GetAccount(tenantID, id string) (*models.Account, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, err
	}
	return s.getAccount(tenantID, id)
}

// ListAccounts returns all of a tenant's accounts, grouped by type with
// the newest first inside each group.
func (s *Service) ListAccounts(tenantID string) ([]models.Account, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, err
	}
	var accounts []models.Account
	if err := s.db.
		Where("tenant_id = ?", tenantID).
		Order("type ASC, created_at DESC").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// UpdateAccount applies a partial update to an owned account.
func (s *Service) UpdateAccount(tenantID, id string, p UpdateAccountParams) (*models.Account, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, err
	}
	account, err := s.getAccount(tenantID, id)
	if err != nil {
		return nil, err
	}

	if p.Type != nil {
		if !p.Type.Valid() {
			return nil, apperr.Validation("accountType", "must be one of asset, liability, income, expense, equity")
		}
		account.Type = *p.Type
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, apperr.Validation("name", "must not be empty")
		}
		account.Name = name
	}
	if p.Color != nil {
		account.Color = *p.Color
	}
	if p.IsFavorite != nil {
		account.IsFavorite = *p.IsFavorite
	}

	if err := s.db.Save(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccount removes an account together with every sub-account,
// transaction and favorite hanging off it, in one atomic batch.
// Transfer counterparts living under other accounts go in the same
// batch, and their sides are recomputed afterwards, so no unpaired leg
// outlives the cascade. The children are enumerated before the batch
// commits, so a child created concurrently within that window escapes
// the cascade.
func (s *Service) DeleteAccount(tenantID, id string) error {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return err
	}
	account, err := s.getAccount(tenantID, id)
	if err != nil {
		return err
	}

	var subs []models.SubAccount
	if err := s.db.
		Where("tenant_id = ? AND account_id = ?", tenantID, account.ID).
		Find(&subs).Error; err != nil {
		return err
	}
	subIDs := make([]string, len(subs))
	for i, sub := range subs {
		subIDs[i] = sub.ID
	}
	legs, err := s.externalTransferLegs(tenantID, subIDs)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, sub := range subs {
			if err := tx.Where("tenant_id = ? AND sub_account_id = ?", tenantID, sub.ID).
				Delete(&models.Transaction{}).Error; err != nil {
				return err
			}
			if err := tx.Where("tenant_id = ? AND sub_account_id = ?", tenantID, sub.ID).
				Delete(&models.Favorite{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.SubAccount{}, "id = ?", sub.ID).Error; err != nil {
				return err
			}
		}
		for _, leg := range legs {
			if err := tx.Delete(&models.Transaction{}, "id = ?", leg.ID).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("tenant_id = ? AND account_id = ?", tenantID, account.ID).
			Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, "id = ?", account.ID).Error
	})
	if err != nil {
		return err
	}

	targets := make([]balanceTarget, 0, len(legs))
	for _, leg := range legs {
		targets = append(targets, balanceTarget{accountID: leg.AccountID, subAccountID: leg.SubAccountID})
	}
	return s.recomputeTouched(tenantID, targets...)
}

func (s *Service) getAccount(tenantID, id string) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("account", id)
		}
		return nil, err
	}
	if err := authorize("account "+id, account.TenantID, tenantID); err != nil {
		return nil, err
	}
	return &account, nil
}
