package handler

import (
	"net/http"

	"github.com/Joshi-Yagnik/Financial-summer-project/internal/identity"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/middleware"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/util"

	"github.com/gin-gonic/gin"
)

// GetMe returns the current user's profile (requires AuthMiddleware).
func GetMe(ids *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := middleware.Tenant(c)
		if tenantID == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			return
		}

		user, err := ids.ResolveTenant(tenantID)
		if err != nil {
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
}
