package handler

import (
	"net/http"
	"time"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/identity"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/ledger"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	Identity  *identity.Service
	Ledger    *ledger.Service
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

// NewAuthHandler builds an AuthHandler; a non-positive ttl defaults to
// 24 hours.
func NewAuthHandler(ids *identity.Service, lgr *ledger.Service, jwtSecret, issuer string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		Identity:  ids,
		Ledger:    lgr,
		JWTSecret: jwtSecret,
		Issuer:    issuer,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

type registerReq struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	DisplayName     string `json:"display_name" binding:"max=64"`
}

// Register creates a user, mints its tenant id and seeds the default
// ledger for it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.Password != req.ConfirmPassword {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "passwords do not match")
		return
	}

	user, err := h.Identity.Register(identity.RegisterParams{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.Ledger.Bootstrap(user.TenantID); err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
			"created_at":   user.CreatedAt,
		},
	})
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	user, err := h.Identity.Login(req.Username, req.Password, c.ClientIP())
	if err != nil {
		// a failed login is always reported the same way
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "wrong username or password")
		return
	}

	// retries the default chart for tenants whose registration committed
	// the user but failed before seeding; a no-op otherwise
	if err := h.Ledger.Bootstrap(user.TenantID); err != nil {
		fail(c, err)
		return
	}

	token, err := identity.GenerateToken(h.JWTSecret, h.Issuer, user.TenantID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to issue token")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
		},
	})
}
