package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-gateway/config"
	"storefront-gateway/logger"
	"storefront-gateway/routes"
	"storefront-gateway/session"
	"storefront-gateway/utils"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Environment)
	defer logger.Sync()

	logger.Log.Info("Starting storefront gateway...")

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store := session.NewStore(cfg.SessionCookieName, cfg.SessionMaxAge, cfg.CookieSecure)
	forwarder := utils.NewForwarder(cfg.UpstreamBaseURL, cfg.RequestTimeout)

	routes.RegisterAll(r, cfg, store, forwarder)

	logger.Log.Info("Gateway listening",
		zap.String("port", cfg.Port),
		zap.String("upstream", cfg.UpstreamBaseURL),
	)

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Failed to start server", zap.Error(err))
	}
}
