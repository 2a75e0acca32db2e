package identity

import (
	"strings"
	"testing"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/apperr"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

	require.NoError(t, db.AutoMigrate(&models.User{}))

	// low cost keeps the test fast
	return NewService(db, 4)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name   string
		params RegisterParams
		field  string
	}{
		{"short username", RegisterParams{Username: "ab", Password: "Passw0rd"}, "username"},
		{"bad characters", RegisterParams{Username: "has space", Password: "Passw0rd"}, "username"},
		{"weak password", RegisterParams{Username: "alice_01", Password: "password"}, "password"},
		{"short password", RegisterParams{Username: "alice_01", Password: "Pw1"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(tt.params)
			var ve *apperr.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestRegisterMintsTenantID(t *testing.T) {
	s := newTestService(t)

	user, err := s.Register(RegisterParams{Username: "alice_01", Password: "Passw0rd"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.TenantID)
	assert.NotEqual(t, "Passw0rd", user.PasswordHash)

	other, err := s.Register(RegisterParams{Username: "bob_02", Password: "Passw0rd"})
	require.NoError(t, err)
	assert.NotEqual(t, user.TenantID, other.TenantID)

	// usernames are unique case-insensitively
	_, err = s.Register(RegisterParams{Username: "ALICE_01", Password: "Passw0rd"})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestLogin(t *testing.T) {
	s := newTestService(t)

	registered, err := s.Register(RegisterParams{Username: "alice_01", Password: "Passw0rd"})
	require.NoError(t, err)

	user, err := s.Login("alice_01", "Passw0rd", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, registered.TenantID, user.TenantID)
	assert.NotNil(t, user.LastLoginAt)
	assert.Equal(t, "127.0.0.1", user.LastLoginIP)

	var ae *apperr.AuthorizationError
	_, err = s.Login("alice_01", "wrong-password", "")
	require.ErrorAs(t, err, &ae)
	_, err = s.Login("nobody", "Passw0rd", "")
	require.ErrorAs(t, err, &ae)
}

func TestResolveTenant(t *testing.T) {
	s := newTestService(t)

	user, err := s.Register(RegisterParams{Username: "alice_01", Password: "Passw0rd"})
	require.NoError(t, err)

	got, err := s.ResolveTenant(user.TenantID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	var nf *apperr.NotFoundError
	_, err = s.ResolveTenant("missing")
	require.ErrorAs(t, err, &nf)
}
