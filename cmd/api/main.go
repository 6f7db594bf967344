package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/market-api/internal/config"
	dbpkg "github.com/BruksfildServices01/market-api/internal/db"
	"github.com/BruksfildServices01/market-api/internal/logging"
	"github.com/BruksfildServices01/market-api/internal/middleware"
	"github.com/BruksfildServices01/market-api/internal/routes"
)

func main() {

	if err := logging.Init(os.Getenv("APP_ENV")); err != nil {
		panic(err)
	}
	defer logging.Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	logging.Get().Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logging.Get().Fatal("failed to start server", zap.Error(err))
	}
}
