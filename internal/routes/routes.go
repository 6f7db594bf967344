package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/market-api/internal/audit"
	"github.com/BruksfildServices01/market-api/internal/cache"
	"github.com/BruksfildServices01/market-api/internal/config"
	"github.com/BruksfildServices01/market-api/internal/handlers"
	"github.com/BruksfildServices01/market-api/internal/identity"
	infraRepo "github.com/BruksfildServices01/market-api/internal/infra/repository"
	"github.com/BruksfildServices01/market-api/internal/middleware"
	"github.com/BruksfildServices01/market-api/internal/oauth"
	"github.com/BruksfildServices01/market-api/internal/storage"
	ucPurchase "github.com/BruksfildServices01/market-api/internal/usecase/purchase"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	commerceRepo := infraRepo.NewCommerceGormRepository(db)
	shopCache := cache.NewShopCache(cfg.RedisURL)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var store storage.ObjectStore
	if cfg.StorageDriver == "s3" {
		store = storage.NewS3Store(cfg)
	} else {
		store = storage.NewLocalStore(cfg.UploadDir)
	}

	githubClient := oauth.NewGitHubClient(cfg)

	// ======================================================
	// USE CASES: PURCHASES
	// ======================================================
	createPurchaseUC := ucPurchase.NewCreatePurchase(commerceRepo, auditDispatcher)
	listPurchasesUC := ucPurchase.NewListPurchases(commerceRepo)
	listSalesUC := ucPurchase.NewListSales(commerceRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	oauthHandler := handlers.NewOAuthHandler(db, cfg, githubClient)
	meHandler := handlers.NewMeHandler(db)

	shopHandler := handlers.NewShopHandler(commerceRepo, shopCache, auditDispatcher)
	productHandler := handlers.NewProductHandler(commerceRepo, shopCache, auditDispatcher)
	purchaseHandler := handlers.NewPurchaseHandler(listPurchasesUC, listSalesUC)

	publicHandler := handlers.NewPublicHandler(commerceRepo, shopCache, createPurchaseUC)
	uploadHandler := handlers.NewUploadHandler(store)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// OBSERVABILITY
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/github/login", oauthHandler.Login)
		api.GET("/auth/github/callback", oauthHandler.Callback)

		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/shops", publicHandler.ListShops)
			publicAPI.GET("/shops/:slug", publicHandler.GetShop)

			// buying needs a session; the exact CLIENT check lives in
			// the use case
			publicAPI.POST("/shops/:slug/buy",
				middleware.AuthMiddleware(cfg),
				publicHandler.Buy,
			)
		}

		// ------------------------------
		// UPLOADS (multipart form)
		// ------------------------------
		api.POST("/upload", uploadHandler.Upload)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(
			middleware.AuthMiddleware(cfg),
			middleware.RequireRole(identity.RoleClient),
		)
		{
			secured.GET("", meHandler.GetMe)

			secured.GET("/shops", shopHandler.List)
			secured.POST("/shops", shopHandler.Create)
			secured.GET("/shops/:id", shopHandler.Get)
			secured.PUT("/shops/:id", shopHandler.Update)
			secured.DELETE("/shops/:id", shopHandler.Delete)

			secured.POST("/products", productHandler.Create)
			secured.PUT("/products/:id", productHandler.Update)
			secured.DELETE("/products/:id", productHandler.Delete)

			secured.GET("/purchases", purchaseHandler.ListPurchases)
			secured.GET("/sales", purchaseHandler.ListSales)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
