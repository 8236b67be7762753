package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/zano-monitor/internal/config"
	"github.com/yourusername/zano-monitor/internal/models"
	"github.com/yourusername/zano-monitor/internal/service"
)

// DashboardHandler serves the aggregated dashboard state. It is a pure
// consumer of the polling controller: no aggregation logic lives here.
type DashboardHandler struct {
	service *service.DashboardService
	cfg     *config.Config
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(svc *service.DashboardService, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{
		service: svc,
		cfg:     cfg,
	}
}

// ErrorResponse is the error envelope returned by all handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DashboardResponse pairs the snapshot with poll state.
type DashboardResponse struct {
	Dashboard   *models.DashboardSnapshot `json:"dashboard"`
	Social      *models.SocialMetrics     `json:"social,omitempty"`
	IsLoading   bool                      `json:"is_loading"`
	LastUpdated string                    `json:"last_updated"`
}

// GetDashboard returns the last successful snapshot.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	status := h.service.Snapshot()

	if status.Data == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "Dashboard not ready",
			Message: "Initial data load has not completed yet",
		})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Dashboard:   status.Data,
		Social:      status.Social,
		IsLoading:   status.IsLoading,
		LastUpdated: status.LastUpdated,
	})
}

// GetSocial returns social metrics, or 404 when the feature is
// unavailable. There is deliberately no fallback record for this domain.
func (h *DashboardHandler) GetSocial(c *gin.Context) {
	status := h.service.Snapshot()

	if status.Social == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Social metrics unavailable",
			Message: config.MsgUnavailable,
		})
		return
	}

	c.JSON(http.StatusOK, status.Social)
}

// Refresh triggers an out-of-band immediate re-fetch and returns the new
// snapshot.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	h.service.Refresh(c.Request.Context())

	status := h.service.Snapshot()
	c.JSON(http.StatusOK, DashboardResponse{
		Dashboard:   status.Data,
		Social:      status.Social,
		IsLoading:   status.IsLoading,
		LastUpdated: status.LastUpdated,
	})
}

// GetConfig exposes the registry for consumers: monitored network
// constants, refresh intervals and rate tiers.
func (h *DashboardHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"zano": gin.H{
			"coin_id":        h.cfg.Zano.CoinID,
			"repo":           h.cfg.Zano.FullRepoPath,
			"symbol":         h.cfg.Zano.Symbol,
			"explorer_url":   h.cfg.Zano.ExplorerURL,
			"decimals":       h.cfg.Zano.Decimals,
			"blocks_per_day": h.cfg.Zano.BlocksPerDay,
		},
		"refresh_intervals": gin.H{
			"price_data":   h.cfg.Refresh.PriceData.String(),
			"github_data":  h.cfg.Refresh.GitHubData.String(),
			"auto_refresh": h.cfg.Refresh.AutoRefresh.String(),
		},
		"retry_policy": gin.H{
			"max_retries": h.cfg.Retry.MaxRetries,
			"retry_delay": h.cfg.Retry.RetryDelay.String(),
		},
		"market_service": rateLimitInfo(h.cfg.CoinGecko, "pro", "free"),
		"github_service": rateLimitInfo(h.cfg.GitHub, "authenticated", "unauthenticated"),
	})
}

// HealthCheck probes every upstream.
func (h *DashboardHandler) HealthCheck(c *gin.Context) {
	health := h.service.HealthCheck(c.Request.Context())

	status := http.StatusOK
	for _, ok := range health {
		if !ok {
			status = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(status, gin.H{
		"status":    http.StatusText(status),
		"upstreams": health,
	})
}

func rateLimitInfo(svc config.ServiceConfig, credTier, freeTier string) gin.H {
	tier := freeTier
	if svc.HasCredential() {
		tier = credTier
	}
	return gin.H{
		"limit":          svc.RateLimit.Requests,
		"per":            svc.RateLimit.Per.String(),
		"has_credential": svc.HasCredential(),
		"tier":           tier,
	}
}
