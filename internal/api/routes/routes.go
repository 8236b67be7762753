package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yourusername/zano-monitor/internal/aggregator"
	"github.com/yourusername/zano-monitor/internal/api/handlers"
	"github.com/yourusername/zano-monitor/internal/config"
	"github.com/yourusername/zano-monitor/internal/httpclient"
	"github.com/yourusername/zano-monitor/internal/providers"
	"github.com/yourusername/zano-monitor/internal/scoring"
	"github.com/yourusername/zano-monitor/internal/service"
)

// Setup builds the whole object graph (gateways, adapters, facade, polling
// controller), wires the routes, and returns the controller so the caller
// can start its poll loop. Everything is constructed here and passed down
// explicitly; there are no package-level singletons.
func Setup(router *gin.Engine, cfg *config.Config) *service.DashboardService {
	marketProvider := providers.NewMarketProvider(httpclient.New(cfg.CoinGecko), cfg.Zano.CoinID)
	gitHubProvider := providers.NewGitHubProvider(httpclient.New(cfg.GitHub), cfg.GitHubUsername)
	chainProvider := providers.NewChainProvider(
		httpclient.New(cfg.Explorer),
		scoring.NewEngine(cfg.Zano.NominalBlockTime),
		cfg.Zano.Decimals,
	)
	socialProvider := providers.NewSocialProvider(httpclient.New(cfg.Reddit))

	dashboardAgg := aggregator.NewDashboardAggregator(
		marketProvider,
		gitHubProvider,
		chainProvider,
		cfg.Zano.FullRepoPath,
	)

	dashboardService := service.NewDashboardService(
		dashboardAgg,
		socialProvider,
		cfg.Refresh.AutoRefresh,
		map[string]service.HealthChecker{
			"market":   marketProvider,
			"github":   gitHubProvider,
			"explorer": chainProvider,
			"social":   socialProvider,
		},
	)

	dashboardHandler := handlers.NewDashboardHandler(dashboardService, cfg)

	// Health check
	router.GET("/health", dashboardHandler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/dashboard", dashboardHandler.GetDashboard)
		v1.GET("/social", dashboardHandler.GetSocial)
		v1.POST("/refresh", dashboardHandler.Refresh)
		v1.GET("/config", dashboardHandler.GetConfig)
	}

	return dashboardService
}
