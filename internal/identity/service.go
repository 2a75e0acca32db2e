// Package identity is the identity provider: it registers and
// authenticates users and maps each session to the stable, opaque
// tenant id that scopes every ledger document.
package identity

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/apperr"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// usernames: 3-20 chars, letters/digits/underscore
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// Service handles registration and login.
type Service struct {
	db         *gorm.DB
	bcryptCost int
}

// NewService creates an identity Service. A non-positive cost falls
// back to bcrypt cost 12.
func NewService(db *gorm.DB, bcryptCost int) *Service {
	if bcryptCost <= 0 {
		bcryptCost = 12
	}
	return &Service{db: db, bcryptCost: bcryptCost}
}

// RegisterParams are the fields of a registration request.
type RegisterParams struct {
	Username    string
	Password    string
	DisplayName string
}

// Register creates a user and mints its tenant id.
func (s *Service) Register(p RegisterParams) (*models.User, error) {
	p.Username = strings.TrimSpace(p.Username)
	if !usernameRe.MatchString(p.Username) {
		return nil, apperr.Validation("username", "must be 3-20 letters, digits or underscores")
	}
	if !isStrongPassword(p.Password) {
		return nil, apperr.Validation("password", "must be 8-32 characters with upper, lower and digit")
	}

	// case-insensitive uniqueness
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", p.Username).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Validation("username", "already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		TenantID:     uuid.NewString(),
		Username:     p.Username,
		PasswordHash: string(hash),
		DisplayName:  p.DisplayName,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and records the login. It returns the user
// whose TenantID the caller should embed into a session token.
func (s *Service) Login(username, password, ip string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.Validation("credentials", "username and password are required")
	}

	var user models.User
	err := s.db.Where("LOWER(username) = LOWER(?)", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Authorization("login", "")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.Authorization("login", "")
	}

	now := time.Now()
	user.LastLoginAt = &now
	user.LastLoginIP = ip
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ResolveTenant returns the user owning a tenant id, used by the auth
// middleware to reject tokens for deleted users.
func (s *Service) ResolveTenant(tenantID string) (*models.User, error) {
	var user models.User
	err := s.db.Where("tenant_id = ?", tenantID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user", tenantID)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// isStrongPassword checks 8-32 chars with upper, lower and digit.
func isStrongPassword(pw string) bool {
	if len(pw) < 8 || len(pw) > 32 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
