package ledger

import (
	"errors"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/apperr"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddFavoriteParams names the bookmark target. Exactly one of
// AccountID/SubAccountID must be set.
type AddFavoriteParams struct {
	AccountID    string
	SubAccountID string
}

// AddFavorite bookmarks an owned account or sub-account and mirrors the
// flag onto the target row.
func (s *Service) AddFavorite(tenantID string, p AddFavoriteParams) (*models.Favorite, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if (p.AccountID == "") == (p.SubAccountID == "") {
		return nil, apperr.Validation("favorite", "exactly one of accountId and subAccountId must be set")
	}

	fav := models.Favorite{
		ID:       uuid.NewString(),
		TenantID: tenantID,
	}

	var flagTarget func(tx *gorm.DB) error
	if p.AccountID != "" {
		account, err := s.getAccount(tenantID, p.AccountID)
		if err != nil {
			return nil, err
		}
		fav.AccountID = &account.ID
		fav.Type = models.FavoriteTypeAccount
		flagTarget = func(tx *gorm.DB) error {
			return tx.Model(account).Update("is_favorite", true).Error
		}
	} else {
		sub, err := s.getSubAccount(tenantID, p.SubAccountID)
		if err != nil {
			return nil, err
		}
		fav.SubAccountID = &sub.ID
		fav.Type = models.FavoriteTypeSubAccount
		flagTarget = func(tx *gorm.DB) error {
			return tx.Model(sub).Update("is_favorite", true).Error
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := flagTarget(tx); err != nil {
			return err
		}
		return tx.Create(&fav).Error
	})
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

// ListFavorites returns all of a tenant's bookmarks, newest first.
func (s *Service) ListFavorites(tenantID string) ([]models.Favorite, error) {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return nil, err
	}
	var favs []models.Favorite
	if err := s.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Find(&favs).Error; err != nil {
		return nil, err
	}
	return favs, nil
}

// RemoveFavorite deletes a bookmark and clears the mirrored flag on its
// target if that target still exists.
func (s *Service) RemoveFavorite(tenantID, favoriteID string) error {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return err
	}

	var fav models.Favorite
	if err := s.db.First(&fav, "id = ?", favoriteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("favorite", favoriteID)
		}
		return err
	}
	if err := authorize("favorite "+favoriteID, fav.TenantID, tenantID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if fav.AccountID != nil {
			if err := tx.Model(&models.Account{}).
				Where("id = ? AND tenant_id = ?", *fav.AccountID, tenantID).
				Update("is_favorite", false).Error; err != nil {
				return err
			}
		}
		if fav.SubAccountID != nil {
			if err := tx.Model(&models.SubAccount{}).
				Where("id = ? AND tenant_id = ?", *fav.SubAccountID, tenantID).
				Update("is_favorite", false).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Favorite{}, "id = ?", fav.ID).Error
	})
}
