package service

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/zano-monitor/internal/aggregator"
	"github.com/yourusername/zano-monitor/internal/models"
	"github.com/yourusername/zano-monitor/pkg/logger"
	"go.uber.org/zap"
)

// SocialSource provides optional community metrics.
type SocialSource interface {
	FetchMetrics(ctx context.Context) (*models.SocialMetrics, error)
}

// HealthChecker verifies one upstream is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Status is what consumers see: the last successful snapshot, the optional
// social metrics, and the poll state.
type Status struct {
	Data        *models.DashboardSnapshot
	Social      *models.SocialMetrics
	IsLoading   bool
	Err         error
	LastUpdated string
}

// DashboardService schedules the aggregation facade on a fixed interval and
// owns the last-known-good state. Each poll builds a fresh snapshot that
// atomically replaces the previous one; snapshots are never mutated in
// place.
type DashboardService struct {
	agg      *aggregator.DashboardAggregator
	social   SocialSource
	interval time.Duration
	checks   map[string]HealthChecker

	mu          sync.RWMutex
	snapshot    *models.DashboardSnapshot
	socialData  *models.SocialMetrics
	isLoading   bool
	lastErr     error
	lastUpdated string
}

// NewDashboardService creates the polling controller. checks maps upstream
// names to their health probes and may be nil.
func NewDashboardService(agg *aggregator.DashboardAggregator, social SocialSource, interval time.Duration, checks map[string]HealthChecker) *DashboardService {
	return &DashboardService{
		agg:       agg,
		social:    social,
		interval:  interval,
		checks:    checks,
		isLoading: true,
	}
}

// Run polls immediately and then on every interval tick until the context
// is cancelled. Sub-source refresh intervals from the registry are declared
// configuration only; everything refreshes on this single cadence.
func (s *DashboardService) Run(ctx context.Context) {
	logger.Info("Starting dashboard polling", zap.Duration("interval", s.interval))

	s.Refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Dashboard polling stopped")
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh performs one immediate poll, out of band from the schedule.
func (s *DashboardService) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.isLoading = true
	s.mu.Unlock()

	snapshot := s.agg.FetchAll(ctx)

	var social *models.SocialMetrics
	if s.social != nil {
		metrics, err := s.social.FetchMetrics(ctx)
		if err != nil {
			// No fallback for social metrics: absent means absent
			logger.Warn("Social metrics unavailable", zap.Error(err))
		} else {
			social = metrics
		}
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.socialData = social
	s.isLoading = false
	s.lastErr = nil
	s.lastUpdated = time.Now().Format("2006-01-02 15:04:05")
	s.mu.Unlock()

	logger.Info("Dashboard snapshot updated",
		zap.Float64("price", snapshot.Price.Current),
		zap.Int("adoptionScore", snapshot.Onchain.AdoptionScore),
		zap.Bool("social", social != nil),
	)
}

// Snapshot returns the current consumer-facing status.
func (s *DashboardService) Snapshot() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Data:        s.snapshot,
		Social:      s.socialData,
		IsLoading:   s.isLoading,
		Err:         s.lastErr,
		LastUpdated: s.lastUpdated,
	}
}

// HealthCheck probes every registered upstream.
func (s *DashboardService) HealthCheck(ctx context.Context) map[string]bool {
	health := make(map[string]bool, len(s.checks))
	for name, check := range s.checks {
		if err := check.HealthCheck(ctx); err != nil {
			logger.Error("Health check failed", zap.String("upstream", name), zap.Error(err))
			health[name] = false
		} else {
			health[name] = true
		}
	}
	return health
}
