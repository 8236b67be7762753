package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/zano-monitor/internal/aggregator"
	"github.com/yourusername/zano-monitor/internal/config"
	"github.com/yourusername/zano-monitor/internal/models"
	"github.com/yourusername/zano-monitor/internal/service"
)

type stubMarket struct{}

func (stubMarket) FetchCoinData(ctx context.Context) (*models.PriceSnapshot, error) {
	return &models.PriceSnapshot{Current: 12.5}, nil
}

type stubRepo struct{}

func (stubRepo) FetchAllData(ctx context.Context, repoPath string) (*models.RepositoryActivity, error) {
	return &models.RepositoryActivity{Stars: 9000}, nil
}

type stubChain struct{}

func (stubChain) FetchAllData(ctx context.Context) (*models.ChainMetrics, error) {
	return &models.ChainMetrics{Height: 900000, AdoptionScore: 88}, nil
}

type stubSocial struct {
	metrics *models.SocialMetrics
	err     error
}

func (s stubSocial) FetchMetrics(ctx context.Context) (*models.SocialMetrics, error) {
	return s.metrics, s.err
}

type stubCheck struct{ err error }

func (s stubCheck) HealthCheck(ctx context.Context) error { return s.err }

func testRouter(social service.SocialSource, checks map[string]service.HealthChecker) (*gin.Engine, *service.DashboardService) {
	gin.SetMode(gin.TestMode)

	agg := aggregator.NewDashboardAggregator(stubMarket{}, stubRepo{}, stubChain{}, "hyle-team/zano")
	svc := service.NewDashboardService(agg, social, time.Hour, checks)
	handler := NewDashboardHandler(svc, config.Load())

	router := gin.New()
	router.GET("/health", handler.HealthCheck)
	v1 := router.Group("/api/v1")
	v1.GET("/dashboard", handler.GetDashboard)
	v1.GET("/social", handler.GetSocial)
	v1.POST("/refresh", handler.Refresh)
	v1.GET("/config", handler.GetConfig)

	return router, svc
}

func TestGetDashboardNotReady(t *testing.T) {
	router, _ := testRouter(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, expected 503 before the first poll", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if resp.Error == "" {
		t.Error("error body should carry a message")
	}
}

func TestGetDashboardAfterRefresh(t *testing.T) {
	router, svc := testRouter(stubSocial{metrics: &models.SocialMetrics{Subscribers: 8500}}, nil)
	svc.Refresh(context.Background())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", w.Code)
	}

	var resp DashboardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Dashboard == nil || resp.Dashboard.Price.Current != 12.5 {
		t.Errorf("unexpected dashboard: %+v", resp.Dashboard)
	}
	if resp.Social == nil || resp.Social.Subscribers != 8500 {
		t.Errorf("unexpected social metrics: %+v", resp.Social)
	}
	if resp.IsLoading {
		t.Error("IsLoading should be false after refresh")
	}
	if resp.LastUpdated == "" {
		t.Error("LastUpdated should be set")
	}
}

func TestGetSocialMissing(t *testing.T) {
	router, svc := testRouter(stubSocial{err: errors.New("reddit down")}, nil)
	svc.Refresh(context.Background())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/social", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404 when social metrics are absent", w.Code)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	router, _ := testRouter(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", w.Code)
	}

	var resp DashboardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Dashboard == nil {
		t.Error("manual refresh should produce a snapshot")
	}
}

func TestGetConfig(t *testing.T) {
	router, _ := testRouter(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}

	zano, ok := resp["zano"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing zano section: %v", resp)
	}
	if zano["coin_id"] != "zano" {
		t.Errorf("coin_id = %v", zano["coin_id"])
	}
	if _, ok := resp["refresh_intervals"]; !ok {
		t.Error("missing refresh_intervals section")
	}
	if _, ok := resp["retry_policy"]; !ok {
		t.Error("missing retry_policy section")
	}
}

func TestHealthCheckEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		checks   map[string]service.HealthChecker
		expected int
	}{
		{
			name: "All healthy",
			checks: map[string]service.HealthChecker{
				"market": stubCheck{},
				"github": stubCheck{},
			},
			expected: http.StatusOK,
		},
		{
			name: "One upstream down",
			checks: map[string]service.HealthChecker{
				"market":   stubCheck{},
				"explorer": stubCheck{err: errors.New("unreachable")},
			},
			expected: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := testRouter(nil, tt.checks)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.expected {
				t.Errorf("status = %d, expected %d", w.Code, tt.expected)
			}

			var resp map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if _, ok := resp["upstreams"]; !ok {
				t.Error("missing upstreams map")
			}
		})
	}
}
