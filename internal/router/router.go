package router

import (
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/config"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/handler"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/identity"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/ledger"
	"github.com/Joshi-Yagnik/Financial-summer-project/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRouter wires services, middleware and the API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, log *zap.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	ids := identity.NewService(db, cfg.Security.BcryptCost)
	lgr := ledger.NewService(db, log)

	api := r.Group("/api")

	// registration / login, no auth required
	authHandler := handler.NewAuthHandler(ids, lgr, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// everything else needs a valid session
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, ids),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe(ids))

	accountHandler := handler.NewAccountHandler(lgr)
	protected.POST("/accounts", accountHandler.Create)
	protected.GET("/accounts", accountHandler.List)
	protected.GET("/accounts/:id", accountHandler.Get)
	protected.PUT("/accounts/:id", accountHandler.Update)
	protected.DELETE("/accounts/:id", accountHandler.Delete)
	protected.POST("/accounts/:id/recompute", accountHandler.RecomputeBalance)

	subAccountHandler := handler.NewSubAccountHandler(lgr)
	protected.POST("/sub-accounts", subAccountHandler.Create)
	protected.GET("/sub-accounts", subAccountHandler.List)
	protected.GET("/sub-accounts/:id", subAccountHandler.Get)
	protected.PUT("/sub-accounts/:id", subAccountHandler.Update)
	protected.DELETE("/sub-accounts/:id", subAccountHandler.Delete)
	protected.POST("/sub-accounts/:id/recompute", subAccountHandler.RecomputeBalance)

	transactionHandler := handler.NewTransactionHandler(lgr)
	protected.POST("/transactions", transactionHandler.Create)
	protected.GET("/transactions", transactionHandler.List)
	protected.GET("/transactions/:id", transactionHandler.Get)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	favoriteHandler := handler.NewFavoriteHandler(lgr)
	protected.POST("/favorites", favoriteHandler.Add)
	protected.GET("/favorites", favoriteHandler.List)
	protected.DELETE("/favorites/:id", favoriteHandler.Remove)

	auditHandler := handler.NewAuditHandler(db)
	protected.GET("/logs", auditHandler.List)

	return r
}
