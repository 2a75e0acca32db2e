package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/identity"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/ledger"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/util"

	"github.com/gin-gonic/gin"
)

// TenantKey is the gin context key holding the caller's tenant id.
const TenantKey = "tenantID"

// AuthMiddleware validates the JWT and stores the caller's tenant id in
// the request context. Handlers pass that id explicitly into the core;
// nothing downstream reads it ambiently.
func AuthMiddleware(jwtSecret string, ids *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// 2) query parameter ?token=xxx, for clients that cannot set headers
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		// 3) cookie
		if tokenStr == "" {
			if cookie, err := c.Cookie("fsp_token"); err == nil {
				tokenStr = cookie
			}
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			c.Abort()
			return
		}

		claims, err := identity.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please log in again")
			c.Abort()
			return
		}

		// the token must still map to a live user
		if _, err := ids.ResolveTenant(claims.TenantID); err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "unknown user")
			c.Abort()
			return
		}

		// a client may pin the tenant it expects to act as; a mismatch
		// is rejected instead of silently serving the token's tenant
		if pinned := c.GetHeader("X-Tenant-ID"); pinned != "" {
			if _, err := ledger.RequireTenantFor(pinned, claims.TenantID); err != nil {
				util.Error(c, http.StatusForbidden, util.CodeForbidden, "tenant mismatch")
				c.Abort()
				return
			}
		}

		c.Set(TenantKey, claims.TenantID)
		c.Next()
	}
}

// Tenant returns the tenant id stored by AuthMiddleware, or "" if the
// request is unauthenticated.
func Tenant(c *gin.Context) string {
	v, ok := c.Get(TenantKey)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}
