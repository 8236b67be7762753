package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yourusername/zano-monitor/internal/api/routes"
	"github.com/yourusername/zano-monitor/internal/config"
	"github.com/yourusername/zano-monitor/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	// Load configuration
	cfg := config.Load()

	// Initialize Gin router
	router := gin.Default()

	// Setup routes and build the service graph
	dashboardService := routes.Setup(router, cfg)

	// Start the poll loop
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dashboardService.Run(ctx)

	// Start server
	logger.Info("Starting zano-monitor on port " + cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server: " + err.Error())
	}
}
