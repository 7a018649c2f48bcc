package main

import (
	"log"

	"github.com/Manelygb/haick-satim-challenge/config"
	"github.com/Manelygb/haick-satim-challenge/routes"
	"github.com/Manelygb/haick-satim-challenge/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	logger, err := zap.NewProduction()
	if gin.Mode() != gin.ReleaseMode {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.OpenDB(cfg)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}

	if cfg.SeedData {
		if err := services.SeedDemoData(db, logger); err != nil {
			logger.Fatal("seed demo data", zap.Error(err))
		}
	}

	hub := services.NewRealtimeHub(logger)
	r := routes.SetupRouter(cfg, db, hub, logger)

	logger.Info("SATIM API server listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
