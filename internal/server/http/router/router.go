package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

const corsMaxAge = 12 * time.Hour

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade, handlers.AuthSettings{
		FrontendURL: cfg.FrontendURL,
		TokenTTL:    cfg.TokenTTL,
	})
	catalogHandler := handlers.NewCatalogHandler(facade)
	accountHandler := handlers.NewAccountHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	requireAuth := middleware.AuthRequired(facade)

	engine.GET("/healthz", healthHandler.Check)

	auth := engine.Group("/auth")
	auth.GET("/discord/login", authHandler.Login)
	auth.GET("/discord/callback", authHandler.Callback)
	auth.POST("/logout", requireAuth, authHandler.Logout)

	api := engine.Group("/api")
	api.GET("/products", catalogHandler.Products)
	api.GET("/products/featured", catalogHandler.Featured)
	api.GET("/products/:id", catalogHandler.Product)
	api.GET("/announcements", catalogHandler.Announcements)
	api.GET("/rewards", catalogHandler.Rewards)

	user := api.Group("")
	user.Use(requireAuth, middleware.RequireRole(model.RoleClient))
	user.GET("/profile", accountHandler.Profile)
	user.GET("/credits/history", accountHandler.CreditHistory)
	user.POST("/orders", orderHandler.Place)
	user.GET("/orders", orderHandler.List)
	user.GET("/orders/:id", orderHandler.Get)
	user.POST("/rewards/:id/redeem", accountHandler.Redeem)
	user.GET("/redemptions", accountHandler.Redemptions)

	staff := api.Group("/admin")
	staff.Use(requireAuth, middleware.RequireRole(model.RoleStaff))
	staff.GET("/orders", orderHandler.ListAll)
	staff.PATCH("/orders/:id/status", orderHandler.SetStatus)

	admin := api.Group("/admin")
	admin.Use(requireAuth, middleware.RequireRole(model.RoleAdmin))
	admin.PATCH("/orders/:id/visibility", orderHandler.SetVisibility)

	admin.POST("/products", adminHandler.CreateProduct)
	admin.PUT("/products/:id", adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)

	admin.GET("/users", adminHandler.Users)
	admin.PATCH("/users/:id/role", adminHandler.SetRole)
	admin.POST("/users/:id/credits", adminHandler.AdjustCredits)

	admin.GET("/rewards", adminHandler.Rewards)
	admin.POST("/rewards", adminHandler.CreateReward)
	admin.GET("/rewards/:id", adminHandler.Reward)
	admin.PUT("/rewards/:id", adminHandler.UpdateReward)
	admin.DELETE("/rewards/:id", adminHandler.DeleteReward)

	admin.GET("/announcements", adminHandler.Announcements)
	admin.POST("/announcements", adminHandler.CreateAnnouncement)
	admin.PUT("/announcements/:id", adminHandler.UpdateAnnouncement)
	admin.DELETE("/announcements/:id", adminHandler.DeleteAnnouncement)

	admin.GET("/redemptions", adminHandler.Redemptions)
	admin.PATCH("/redemptions/:id", adminHandler.ProcessRedemption)

	return engine
}
