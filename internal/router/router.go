package router

import (
	"fintrack/internal/config"
	"fintrack/internal/handler"
	"fintrack/internal/ledger"
	"fintrack/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the HTTP surface. Everything except register and login
// sits behind the session middleware; a missing session redirects to
// /login.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)

	r.GET("/register", handler.RegisterPage)
	r.POST("/register", authHandler.Register)
	r.GET("/login", handler.LoginPage)
	r.POST("/login", authHandler.Login)

	protected := r.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.RequestLog(),
	)

	svc := ledger.NewService(db)
	ledgerHandler := handler.NewLedgerHandler(svc)

	protected.GET("/", ledgerHandler.Home)
	protected.POST("/", ledgerHandler.Home)
	protected.GET("/index", ledgerHandler.Home)
	protected.POST("/index", ledgerHandler.AddTransaction)
	protected.POST("/search", ledgerHandler.Search)
	protected.POST("/sort", ledgerHandler.Sort)
	protected.POST("/clear_history", ledgerHandler.ClearHistory)
	// legacy no-op endpoint, kept for compatibility
	protected.POST("/add_transaction", ledgerHandler.AddTransactionRedirect)
	protected.GET("/logout", authHandler.Logout)

	exportHandler := handler.NewExportHandler(svc)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
