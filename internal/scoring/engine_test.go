package scoring

import (
	"math"
	"testing"
	"time"
)

func TestAdoptionScore(t *testing.T) {
	engine := NewEngine(time.Minute)

	// Utilization bands need a block sample; 60% of a 100k max.
	highUtilBlocks := []Block{
		{CumulativeSize: 60000},
		{CumulativeSize: 60000},
	}

	tests := []struct {
		name     string
		stats    NetworkStats
		blocks   []Block
		expected int
	}{
		{
			name:     "Dead network scores zero",
			stats:    NetworkStats{TxPoolSize: 1500},
			blocks:   nil,
			expected: 0,
		},
		{
			name: "Healthy network hits every band",
			stats: NetworkStats{
				Synchronized:            true,
				SynchronizedConnections: 15,
				IncomingConnections:     8,
				DailyTransactions:       120,
				DailyVolume:             2e12,
				Hashrate:                2e10,
				TxPoolSize:              50,
				MaxBlockSize:            100000,
			},
			blocks:   highUtilBlocks,
			expected: 95, // 15+10+5+20+20+10+5+10
		},
		{
			name: "Boundary values do not qualify for their band",
			stats: NetworkStats{
				Synchronized:            true,
				SynchronizedConnections: 10, // needs >10
				IncomingConnections:     5,  // needs >5
				DailyTransactions:       100,
				DailyVolume:             1e12,
				Hashrate:                1e8,
				TxPoolSize:              1500,
			},
			blocks:   nil,
			expected: 15 + 15 + 15, // sync + second tx band + second volume band
		},
		{
			name: "Minimal activity lands in the lowest bands",
			stats: NetworkStats{
				DailyTransactions: 1,
				DailyVolume:       1,
				TxPoolSize:        999,
			},
			blocks:   nil,
			expected: 5 + 5 + 1,
		},
		{
			name: "Utilization band skipped without a block sample",
			stats: NetworkStats{
				Synchronized: true,
				MaxBlockSize: 100000,
				TxPoolSize:   1500,
			},
			blocks:   nil,
			expected: 15,
		},
		{
			name: "Barely used blocks hit the lowest utilization band",
			stats: NetworkStats{
				MaxBlockSize: 100000,
				TxPoolSize:   1500,
			},
			blocks:   []Block{{CumulativeSize: 2000}}, // 2% utilization
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := engine.AdoptionScore(tt.stats, tt.blocks)

			if score != tt.expected {
				t.Errorf("AdoptionScore() = %d, expected %d", score, tt.expected)
			}
			if score < MinAdoptionScore || score > MaxAdoptionScore {
				t.Errorf("score %d outside valid range [%d-%d]", score, MinAdoptionScore, MaxAdoptionScore)
			}
		})
	}
}

func TestAverageBlockTime(t *testing.T) {
	engine := NewEngine(time.Minute)

	tests := []struct {
		name     string
		blocks   []Block
		expected float64
	}{
		{
			name:     "Empty sample falls back to nominal",
			blocks:   nil,
			expected: 60,
		},
		{
			name:     "Single timestamp falls back to nominal",
			blocks:   []Block{{Timestamp: 1700000000}},
			expected: 60,
		},
		{
			name: "Zero timestamps are discarded before counting",
			blocks: []Block{
				{Timestamp: 1700000000},
				{Timestamp: 0},
			},
			expected: 60,
		},
		{
			name: "Mean of consecutive deltas",
			blocks: []Block{
				{Timestamp: 1700000000},
				{Timestamp: 1700000060},
				{Timestamp: 1700000180},
			},
			expected: 90, // deltas 60 and 120
		},
		{
			name: "Unsorted sample is sorted first",
			blocks: []Block{
				{Timestamp: 1700000180},
				{Timestamp: 1700000000},
				{Timestamp: 1700000060},
			},
			expected: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.AverageBlockTime(tt.blocks)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("AverageBlockTime() = %f, expected %f", got, tt.expected)
			}
		})
	}
}

func TestNetworkGrowthRate(t *testing.T) {
	engine := NewEngine(time.Minute)

	tests := []struct {
		name     string
		blocks   []Block
		expected float64
	}{
		{
			name:     "Too small a sample",
			blocks:   []Block{{TxCount: 5}},
			expected: 0,
		},
		{
			name: "Zero older half with active newer half",
			blocks: []Block{
				{TxCount: 0}, {TxCount: 0},
				{TxCount: 3}, {TxCount: 5},
			},
			expected: 100,
		},
		{
			name: "Both halves zero",
			blocks: []Block{
				{TxCount: 0}, {TxCount: 0},
				{TxCount: 0}, {TxCount: 0},
			},
			expected: 0,
		},
		{
			name: "Doubling transaction rate",
			blocks: []Block{
				{TxCount: 2}, {TxCount: 2},
				{TxCount: 4}, {TxCount: 4},
			},
			expected: 100,
		},
		{
			name: "Declining transaction rate",
			blocks: []Block{
				{TxCount: 4}, {TxCount: 4},
				{TxCount: 2}, {TxCount: 2},
			},
			expected: -50,
		},
		{
			name: "Odd sample splits by position",
			blocks: []Block{
				{TxCount: 2},
				{TxCount: 3}, {TxCount: 3},
			},
			expected: 50, // old mean 2, new mean 3
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.NetworkGrowthRate(tt.blocks)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("NetworkGrowthRate() = %f, expected %f", got, tt.expected)
			}
		})
	}
}

func TestBlockSizeUtilization(t *testing.T) {
	engine := NewEngine(time.Minute)

	blocks := []Block{
		{CumulativeSize: 20000},
		{CumulativeSize: 40000},
	}

	tests := []struct {
		name         string
		blocks       []Block
		maxBlockSize float64
		expected     float64
	}{
		{"Empty sample", nil, 100000, 0},
		{"Unknown max size", blocks, 0, 0},
		{"Thirty percent", blocks, 100000, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.BlockSizeUtilization(tt.blocks, tt.maxBlockSize)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("BlockSizeUtilization() = %f, expected %f", got, tt.expected)
			}
		})
	}
}

func TestAdoptionLevel(t *testing.T) {
	engine := NewEngine(time.Minute)

	tests := []struct {
		score    int
		expected string
	}{
		{0, "low"},
		{39, "low"},
		{40, "medium"},
		{69, "medium"},
		{70, "high"},
		{100, "high"},
	}

	for _, tt := range tests {
		if got := engine.AdoptionLevel(tt.score); got != tt.expected {
			t.Errorf("AdoptionLevel(%d) = %q, expected %q", tt.score, got, tt.expected)
		}
	}
}
