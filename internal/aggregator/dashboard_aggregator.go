package aggregator

import (
	"context"

	"github.com/yourusername/zano-monitor/internal/config"
	"github.com/yourusername/zano-monitor/internal/models"
	"github.com/yourusername/zano-monitor/pkg/logger"
	"go.uber.org/zap"
)

// MarketSource provides normalized market data.
type MarketSource interface {
	FetchCoinData(ctx context.Context) (*models.PriceSnapshot, error)
}

// RepoSource provides normalized repository activity.
type RepoSource interface {
	FetchAllData(ctx context.Context, repoPath string) (*models.RepositoryActivity, error)
}

// ChainSource provides normalized chain metrics.
type ChainSource interface {
	FetchAllData(ctx context.Context) (*models.ChainMetrics, error)
}

// DashboardAggregator fans out to the three mandatory adapters and
// guarantees a structurally complete snapshot: a failed adapter is replaced
// by its static fallback record, never by a hole.
type DashboardAggregator struct {
	market   MarketSource
	github   RepoSource
	chain    ChainSource
	repoPath string
}

// NewDashboardAggregator creates the aggregation facade. All adapters are
// injected explicitly; the facade owns no credentials or transport.
func NewDashboardAggregator(market MarketSource, github RepoSource, chain ChainSource, repoPath string) *DashboardAggregator {
	return &DashboardAggregator{
		market:   market,
		github:   github,
		chain:    chain,
		repoPath: repoPath,
	}
}

// FetchPrice returns live market data, degrading to the static fallback
// record on failure.
func (a *DashboardAggregator) FetchPrice(ctx context.Context) models.PriceSnapshot {
	price, err := a.market.FetchCoinData(ctx)
	if err != nil {
		logger.Error("Market service error, using fallback data", zap.Error(err))
		return config.FallbackPrice()
	}
	return *price
}

// FetchRepoActivity returns live development metrics, degrading to the
// static fallback record on failure.
func (a *DashboardAggregator) FetchRepoActivity(ctx context.Context) models.RepositoryActivity {
	activity, err := a.github.FetchAllData(ctx, a.repoPath)
	if err != nil {
		logger.Error("GitHub service error, using fallback data", zap.Error(err))
		return config.FallbackRepositoryActivity()
	}
	return *activity
}

// FetchChainMetrics returns live network metrics, degrading to the static
// fallback record on failure.
func (a *DashboardAggregator) FetchChainMetrics(ctx context.Context) models.ChainMetrics {
	metrics, err := a.chain.FetchAllData(ctx)
	if err != nil {
		logger.Error("Onchain service error, using fallback data", zap.Error(err))
		return config.FallbackChainMetrics()
	}
	return *metrics
}

// FetchAll invokes all three adapters concurrently with settle-all
// semantics: every call runs to completion and each outcome is handled
// independently. A rejected outcome gets one more direct attempt before
// its fallback stands.
func (a *DashboardAggregator) FetchAll(ctx context.Context) *models.DashboardSnapshot {
	var (
		price   models.PriceSnapshot
		github  models.RepositoryActivity
		onchain models.ChainMetrics
	)

	errs := SettleAll(
		func() error {
			price = a.FetchPrice(ctx)
			return nil
		},
		func() error {
			github = a.FetchRepoActivity(ctx)
			return nil
		},
		func() error {
			onchain = a.FetchChainMetrics(ctx)
			return nil
		},
	)

	// The wrapped fetches degrade internally, so a rejected outcome should
	// not happen; try the direct call once more before giving up to the
	// static defaults.
	if errs[0] != nil {
		price = a.FetchPrice(ctx)
	}
	if errs[1] != nil {
		github = a.FetchRepoActivity(ctx)
	}
	if errs[2] != nil {
		onchain = a.FetchChainMetrics(ctx)
	}

	return &models.DashboardSnapshot{
		Price:   price,
		GitHub:  github,
		Onchain: onchain,
	}
}
