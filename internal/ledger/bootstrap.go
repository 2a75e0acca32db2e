package ledger

import (
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// defaultAccount seeds one account with one starter sub-account.
type defaultAccount struct {
	Type    models.AccountType
	Name    string
	Color   string
	SubName string
}

func defaultChart() []defaultAccount {
	return []defaultAccount{
		{Type: models.AccountTypeAsset, Name: "Cash", Color: "#4caf50", SubName: "Wallet"},
		{Type: models.AccountTypeAsset, Name: "Bank", Color: "#2196f3", SubName: "Checking"},
		{Type: models.AccountTypeLiability, Name: "Credit Card", Color: "#f44336", SubName: "Primary Card"},
		{Type: models.AccountTypeIncome, Name: "Salary", Color: "#9c27b0", SubName: "Monthly Pay"},
		{Type: models.AccountTypeExpense, Name: "Living", Color: "#ff9800", SubName: "Groceries"},
		{Type: models.AccountTypeEquity, Name: "Opening Balance", Color: "#607d8b", SubName: "Initial"},
	}
}

// Bootstrap seeds the fixed default account set for a fresh tenant in
// one atomic batch. All balances start at zero. A tenant that already
// has accounts is left alone, so the call is safe to repeat at login
// when seeding failed during registration.
func (s *Service) Bootstrap(tenantID string) error {
	tenantID, err := RequireTenant(tenantID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Account{}).
			Where("tenant_id = ?", tenantID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}
		for _, d := range defaultChart() {
			account := models.Account{
				ID:       uuid.NewString(),
				TenantID: tenantID,
				Type:     d.Type,
				Name:     d.Name,
				Color:    d.Color,
			}
			if err := tx.Create(&account).Error; err != nil {
				return err
			}
			sub := models.SubAccount{
				ID:        uuid.NewString(),
				TenantID:  tenantID,
				AccountID: account.ID,
				Name:      d.SubName,
				Color:     d.Color,
			}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
