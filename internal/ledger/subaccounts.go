package ledger

import (
	"errors"
	"strings"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/apperr"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateSubAccountParams holds the caller-settable fields of a new
// sub-account. AccountID must reference an account the tenant owns.
type CreateSubAccountParams struct {
	AccountID string
	Name      string
	Color     string
}

// UpdateSubAccountParams is a partial update; nil fields are left alone.
// The tenant id and parent account are not updatable.
type UpdateSubAccountParams struct {
	Name       *string
	Color      *string
	IsFavorite *bool
}

// CreateSubAccount validates the parent and stores a new sub-account
// with a zero balance.
func (s *Service) CreateSubAccount(tenantID string, p CreateSubAccountParams) (*models.SubAccount, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if p.AccountID == "" {
		return nil, apperr.Validation("accountId", "must not be empty")
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, apperr.Validation("name", "must not be empty")
	}
	// parent must exist and belong to the same tenant
	if _, err := s.getAccount(tenantID, p.AccountID); err != nil {
		return nil, err
	}

	sub := models.SubAccount{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		AccountID: p.AccountID,
		Name:      p.Name,
		Color:     p.Color,
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetSubAccount returns one sub-account after re-verifying its tenant.
func (s *Service) GetSubAccount(tenantID, id string) (*models.SubAccount, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, err
	}
	return s.getSubAccount(tenantID, id)
}

// ListSubAccounts returns the sub-accounts of one parent account,
// ordered by name.
func (s *Service) ListSubAccounts(tenantID, accountID string) ([]models.SubAccount, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getAccount(tenantID, accountID); err != nil {
		return nil, err
	}
	var subs []models.SubAccount
	if err := s.db.
		Where("tenant_id = ? AND account_id = ?", tenantID, accountID).
		Order("name ASC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// UpdateSubAccount applies a partial update to an owned sub-account.
func (s *Service) UpdateSubAccount(tenantID, id string, p UpdateSubAccountParams) (*models.SubAccount, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, err
	}
	sub, err := s.getSubAccount(tenantID, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, apperr.Validation("name", "must not be empty")
		}
		sub.Name = name
	}
	if p.Color != nil {
		sub.Color = *p.Color
	}
	if p.IsFavorite != nil {
		sub.IsFavorite = *p.IsFavorite
	}

	if err := s.db.Save(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// DeleteSubAccount removes a sub-account with its transactions and
// favorites in one atomic batch, then recomputes the parent account's
// balance from the remaining children. Transfer counterparts living in
// other sub-accounts are deleted in the same batch and their sides
// recomputed, so no unpaired leg survives.
func (s *Service) DeleteSubAccount(tenantID, id string) error {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return err
	}
	sub, err := s.getSubAccount(tenantID, id)
	if err != nil {
		return err
	}

	legs, err := s.externalTransferLegs(tenantID, []string{sub.ID})
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND sub_account_id = ?", tenantID, sub.ID).
			Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ? AND sub_account_id = ?", tenantID, sub.ID).
			Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		for _, leg := range legs {
			if err := tx.Delete(&models.Transaction{}, "id = ?", leg.ID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.SubAccount{}, "id = ?", sub.ID).Error
	})
	if err != nil {
		return err
	}

	targets := make([]balanceTarget, 0, len(legs))
	for _, leg := range legs {
		targets = append(targets, balanceTarget{accountID: leg.AccountID, subAccountID: leg.SubAccountID})
	}
	if err := s.recomputeTouched(tenantID, targets...); err != nil {
		return err
	}
	_, err = s.RecomputeAccountBalance(tenantID, sub.AccountID)
	return err
}

func (s *Service) getSubAccount(tenantID, id string) (*models.SubAccount, error) {
	var sub models.SubAccount
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("sub-account", id)
		}
		return nil, err
	}
	if err := authorize("sub-account "+id, sub.TenantID, tenantID); err != nil {
		return nil, err
	}
	return &sub, nil
}
