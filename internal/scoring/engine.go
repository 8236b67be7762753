package scoring

import (
	"sort"
	"time"
)

// Adoption score band weights. Bands are evaluated top-down and the first
// match wins.
const (
	MinAdoptionScore = 0
	MaxAdoptionScore = 100
)

// Block is the slice of a sampled block the engine cares about.
type Block struct {
	Timestamp      int64
	TxCount        int64
	CumulativeSize float64
	Height         int64
}

// NetworkStats is the live network state feeding the adoption rubric.
// Volume and hashrate are in base units as reported by the explorer.
type NetworkStats struct {
	Synchronized            bool
	SynchronizedConnections int
	IncomingConnections     int
	DailyTransactions       int64
	DailyVolume             float64
	Hashrate                float64
	TxPoolSize              int
	MaxBlockSize            float64
}

// Engine derives composite network metrics from explorer data.
type Engine struct {
	nominalBlockTime float64 // seconds
}

// NewEngine creates a scoring engine. nominalBlockTime is the network's
// target block interval, used when the block sample is too small to
// measure an average.
func NewEngine(nominalBlockTime time.Duration) *Engine {
	return &Engine{nominalBlockTime: nominalBlockTime.Seconds()}
}

// AverageBlockTime returns the mean interval in seconds between consecutive
// block timestamps in the sample, or the nominal block time when fewer than
// 2 usable timestamps are available.
func (e *Engine) AverageBlockTime(blocks []Block) float64 {
	timestamps := make([]int64, 0, len(blocks))
	for _, b := range blocks {
		if b.Timestamp > 0 {
			timestamps = append(timestamps, b.Timestamp)
		}
	}
	if len(timestamps) < 2 {
		return e.nominalBlockTime
	}

	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })

	var total int64
	for i := 1; i < len(timestamps); i++ {
		total += timestamps[i] - timestamps[i-1]
	}
	return float64(total) / float64(len(timestamps)-1)
}

// NetworkGrowthRate compares mean transactions-per-block between the older
// and newer half of the sample, split by position. Returns a signed
// percentage; an all-zero older half yields 100 when the newer half is
// positive, else 0.
func (e *Engine) NetworkGrowthRate(blocks []Block) float64 {
	if len(blocks) < 2 {
		return 0
	}

	half := len(blocks) / 2
	oldAvg := meanTxCount(blocks[:half])
	newAvg := meanTxCount(blocks[half:])

	if oldAvg == 0 {
		if newAvg > 0 {
			return 100
		}
		return 0
	}
	return (newAvg - oldAvg) / oldAvg * 100
}

// BlockSizeUtilization returns the mean cumulative block size over the
// sample as a percentage of the allowed maximum. Unknown or zero maximum
// yields 0.
func (e *Engine) BlockSizeUtilization(blocks []Block, maxBlockSize float64) float64 {
	if len(blocks) == 0 || maxBlockSize <= 0 {
		return 0
	}
	return meanBlockSize(blocks) / maxBlockSize * 100
}

// AdoptionScore computes the composite 0-100 network health/usage score.
func (e *Engine) AdoptionScore(stats NetworkStats, blocks []Block) int {
	score := 0

	// Network health (30 points)
	if stats.Synchronized {
		score += 15
	}
	if stats.SynchronizedConnections > 10 {
		score += 10
	}
	if stats.IncomingConnections > 5 {
		score += 5
	}

	// Transaction activity (40 points)
	switch {
	case stats.DailyTransactions > 100:
		score += 20
	case stats.DailyTransactions > 50:
		score += 15
	case stats.DailyTransactions > 10:
		score += 10
	case stats.DailyTransactions > 0:
		score += 5
	}

	switch {
	case stats.DailyVolume > 1e12: // > 1000 ZANO
		score += 20
	case stats.DailyVolume > 1e11: // > 100 ZANO
		score += 15
	case stats.DailyVolume > 1e10: // > 10 ZANO
		score += 10
	case stats.DailyVolume > 0:
		score += 5
	}

	// Network security (20 points)
	switch {
	case stats.Hashrate > 1e10:
		score += 10
	case stats.Hashrate > 1e9:
		score += 7
	case stats.Hashrate > 1e8:
		score += 5
	}

	// Low mempool indicates good processing
	switch {
	case stats.TxPoolSize < 100:
		score += 5
	case stats.TxPoolSize < 500:
		score += 3
	case stats.TxPoolSize < 1000:
		score += 1
	}

	// Block utilization (10 points)
	if len(blocks) > 0 && stats.MaxBlockSize > 0 {
		utilization := meanBlockSize(blocks) / stats.MaxBlockSize
		switch {
		case utilization > 0.5:
			score += 10
		case utilization > 0.3:
			score += 7
		case utilization > 0.1:
			score += 5
		case utilization > 0.01:
			score += 3
		}
	}

	if score > MaxAdoptionScore {
		score = MaxAdoptionScore
	}
	if score < MinAdoptionScore {
		score = MinAdoptionScore
	}
	return score
}

// AdoptionLevel buckets a score into the coarse high/medium/low scale.
func (e *Engine) AdoptionLevel(score int) string {
	if score >= 70 {
		return "high"
	}
	if score >= 40 {
		return "medium"
	}
	return "low"
}

func meanTxCount(blocks []Block) float64 {
	if len(blocks) == 0 {
		return 0
	}
	var total int64
	for _, b := range blocks {
		total += b.TxCount
	}
	return float64(total) / float64(len(blocks))
}

func meanBlockSize(blocks []Block) float64 {
	if len(blocks) == 0 {
		return 0
	}
	var total float64
	for _, b := range blocks {
		total += b.CumulativeSize
	}
	return total / float64(len(blocks))
}
