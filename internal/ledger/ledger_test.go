package ledger

import (
	"strings"
	"testing"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	tenantA = "tenant-a"
	tenantB = "tenant-b"
)

// newTestService opens a fresh in-memory database per test.
func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.SubAccount{},
		&models.Transaction{},
		&models.Favorite{},
		&models.AuditLog{},
	))

	return NewService(db, zap.NewNop())
}

func mkAccount(t *testing.T, s *Service, tenantID string, accountType models.AccountType, name string) *models.Account {
	t.Helper()
	account, err := s.CreateAccount(tenantID, CreateAccountParams{Type: accountType, Name: name})
	require.NoError(t, err)
	return account
}

func mkSubAccount(t *testing.T, s *Service, tenantID, accountID, name string) *models.SubAccount {
	t.Helper()
	sub, err := s.CreateSubAccount(tenantID, CreateSubAccountParams{AccountID: accountID, Name: name})
	require.NoError(t, err)
	return sub
}

func mkTransaction(t *testing.T, s *Service, tenantID string, p CreateTransactionParams) *models.Transaction {
	t.Helper()
	txn, err := s.CreateTransaction(tenantID, p)
	require.NoError(t, err)
	return txn
}

func subBalance(t *testing.T, s *Service, tenantID, subID string) int64 {
	t.Helper()
	sub, err := s.GetSubAccount(tenantID, subID)
	require.NoError(t, err)
	return sub.BalanceCent
}

func accountBalance(t *testing.T, s *Service, tenantID, accountID string) int64 {
	t.Helper()
	account, err := s.GetAccount(tenantID, accountID)
	require.NoError(t, err)
	return account.TotalBalanceCent
}
