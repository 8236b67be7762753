package providers

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/yourusername/zano-monitor/internal/config"
	"github.com/yourusername/zano-monitor/internal/httpclient"
	"github.com/yourusername/zano-monitor/internal/models"
	"github.com/yourusername/zano-monitor/internal/scoring"
	"github.com/yourusername/zano-monitor/pkg/logger"
	"go.uber.org/zap"
)

const (
	// get_info expects a height parameter; the explorer uses uint32 max to
	// mean "current".
	currentHeightSentinel = "4294967295"

	blockSampleSize = 30

	infoStatusOK = "OK"
)

// ChainProvider integrates with the Zano blockchain explorer API.
type ChainProvider struct {
	client   *httpclient.Client
	engine   *scoring.Engine
	decimals int
}

// ZanoInfoResponse is the explorer's live network state, embedded in a
// result wrapper with its own status sentinel.
type ZanoInfoResponse struct {
	AliasCount                int     `json:"alias_count"`
	BlockReward               float64 `json:"block_reward"`
	CurrentMaxAllowedBlockSize float64 `json:"current_max_allowed_block_size"`
	CurrentNetworkHashrate350 float64 `json:"current_network_hashrate_350"`
	DaemonNetworkState        int     `json:"daemon_network_state"`
	Height                    int64   `json:"height"`
	IncomingConnectionsCount  int     `json:"incoming_connections_count"`
	LastBlockHash             string  `json:"last_block_hash"`
	LastBlockSize             float64 `json:"last_block_size"`
	LastBlockTimestamp        int64   `json:"last_block_timestamp"`
	OutgoingConnectionsCount  int     `json:"outgoing_connections_count"`
	PowDifficulty             float64 `json:"pow_difficulty"`
	Status                    string  `json:"status"`
	SynchronizedConnectionsCount int  `json:"synchronized_connections_count"`
	TotalCoins                string  `json:"total_coins"`
	TransactionsCntPerDay     int64   `json:"transactions_cnt_per_day"`
	TransactionsVolumePerDay  float64 `json:"transactions_volume_per_day"`
	TxCount                   int64   `json:"tx_count"`
	TxPoolSize                int     `json:"tx_pool_size"`
}

type zanoInfoEnvelope struct {
	Result *ZanoInfoResponse `json:"result"`
}

// ZanoBlockDetails is one sampled block from get_blocks_details.
type ZanoBlockDetails struct {
	Timestamp           int64   `json:"timestamp"`
	TxCount             int64   `json:"tx_count"`
	BlockCumulativeSize float64 `json:"block_cumulative_size"`
	Height              int64   `json:"height"`
}

type zanoBlocksEnvelope struct {
	Result *struct {
		Blocks []ZanoBlockDetails `json:"blocks"`
	} `json:"result"`
}

// NewChainProvider creates a blockchain explorer provider.
func NewChainProvider(client *httpclient.Client, engine *scoring.Engine, decimals int) *ChainProvider {
	return &ChainProvider{
		client:   client,
		engine:   engine,
		decimals: decimals,
	}
}

// FetchNetworkInfo fetches live network state. Both the HTTP status and the
// embedded result status must indicate success.
func (p *ChainProvider) FetchNetworkInfo(ctx context.Context) (*ZanoInfoResponse, error) {
	body, err := p.client.Get(ctx, config.EndpointGetInfo, map[string]string{"height": currentHeightSentinel}, nil)
	if err != nil {
		return nil, err
	}

	var envelope zanoInfoEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, httpclient.NewShapeError(p.client.Service(), "decoding network info: %v", err)
	}

	if envelope.Result == nil || envelope.Result.Status != infoStatusOK {
		status := "no status"
		if envelope.Result != nil {
			status = envelope.Result.Status
		}
		return nil, httpclient.NewShapeError(p.client.Service(), "invalid response: %s", status)
	}

	return envelope.Result, nil
}

// FetchRecentBlocks is best-effort: any failure degrades to an empty
// sample, never an error.
func (p *ChainProvider) FetchRecentBlocks(ctx context.Context, count int) []scoring.Block {
	body, err := p.client.Get(ctx, config.EndpointGetBlocksDetails, map[string]string{
		"offset": "0",
		"count":  strconv.Itoa(count),
	}, nil)
	if err != nil {
		logger.Warn("Failed to fetch recent blocks", zap.Error(err))
		return nil
	}

	var envelope zanoBlocksEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		logger.Warn("Failed to decode recent blocks", zap.Error(err))
		return nil
	}
	if envelope.Result == nil || envelope.Result.Blocks == nil {
		logger.Warn("No blocks data in response")
		return nil
	}

	blocks := make([]scoring.Block, 0, len(envelope.Result.Blocks))
	for _, b := range envelope.Result.Blocks {
		blocks = append(blocks, scoring.Block{
			Timestamp:      b.Timestamp,
			TxCount:        b.TxCount,
			CumulativeSize: b.BlockCumulativeSize,
			Height:         b.Height,
		})
	}
	return blocks
}

// FetchTotalCoins is best-effort: the endpoint replies with the emission as
// a plain integer string in base units; failures degrade to 0.
func (p *ChainProvider) FetchTotalCoins(ctx context.Context) float64 {
	body, err := p.client.Get(ctx, config.EndpointGetTotalCoins, nil, nil)
	if err != nil {
		logger.Warn("Failed to fetch total coins", zap.Error(err))
		return 0
	}

	raw, err := strconv.ParseFloat(strings.TrimSpace(string(body)), 64)
	if err != nil {
		logger.Warn("Invalid total coins response", zap.String("body", string(body)))
		return 0
	}
	return raw / math.Pow10(p.decimals)
}

// FetchAllData assembles the full chain metrics. Network info is the one
// critical call; blocks and total coins are fetched concurrently and
// best-effort.
func (p *ChainProvider) FetchAllData(ctx context.Context) (*models.ChainMetrics, error) {
	info, err := p.FetchNetworkInfo(ctx)
	if err != nil {
		return nil, err
	}

	var (
		wg     sync.WaitGroup
		blocks []scoring.Block
		coins  float64
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		blocks = p.FetchRecentBlocks(ctx, blockSampleSize)
	}()
	go func() {
		defer wg.Done()
		coins = p.FetchTotalCoins(ctx)
	}()
	wg.Wait()

	// The info payload embeds the emission too; use it when the dedicated
	// endpoint failed.
	if coins == 0 && info.TotalCoins != "" {
		if raw, err := strconv.ParseFloat(info.TotalCoins, 64); err == nil {
			coins = raw / math.Pow10(p.decimals)
		}
	}

	divisor := math.Pow10(p.decimals)
	stats := scoring.NetworkStats{
		Synchronized:            info.DaemonNetworkState == int(models.NetworkSynchronized),
		SynchronizedConnections: info.SynchronizedConnectionsCount,
		IncomingConnections:     info.IncomingConnectionsCount,
		DailyTransactions:       info.TransactionsCntPerDay,
		DailyVolume:             info.TransactionsVolumePerDay,
		Hashrate:                info.CurrentNetworkHashrate350,
		TxPoolSize:              info.TxPoolSize,
		MaxBlockSize:            info.CurrentMaxAllowedBlockSize,
	}

	metrics := &models.ChainMetrics{
		Height:       info.Height,
		Hashrate:     info.CurrentNetworkHashrate350,
		Difficulty:   info.PowDifficulty,
		NetworkState: models.NetworkState(info.DaemonNetworkState),

		TotalCoins:        coins,
		TransactionCount:  info.TxCount,
		DailyTransactions: info.TransactionsCntPerDay,
		DailyVolume:       info.TransactionsVolumePerDay / divisor,

		TxPoolSize:         info.TxPoolSize,
		BlockReward:        info.BlockReward / divisor,
		LastBlockTimestamp: info.LastBlockTimestamp,
		AvgBlockTime:       p.engine.AverageBlockTime(blocks),

		IncomingConnections:     info.IncomingConnectionsCount,
		OutgoingConnections:     info.OutgoingConnectionsCount,
		SynchronizedConnections: info.SynchronizedConnectionsCount,

		BlockSizeUtilization: p.engine.BlockSizeUtilization(blocks, info.CurrentMaxAllowedBlockSize),
		NetworkGrowthRate:    p.engine.NetworkGrowthRate(blocks),
		AdoptionScore:        p.engine.AdoptionScore(stats, blocks),
	}

	logger.Info("Chain metrics fetched",
		zap.Int64("height", metrics.Height),
		zap.Int("adoptionScore", metrics.AdoptionScore),
		zap.Int("blockSample", len(blocks)),
	)

	return metrics, nil
}

// HealthCheck verifies the explorer is reachable and synced enough to
// answer the info call.
func (p *ChainProvider) HealthCheck(ctx context.Context) error {
	_, err := p.FetchNetworkInfo(ctx)
	return err
}

// FormatHashrate renders a hashrate in human units.
func FormatHashrate(hashrate float64) string {
	switch {
	case hashrate >= 1e12:
		return strconv.FormatFloat(hashrate/1e12, 'f', 2, 64) + " TH/s"
	case hashrate >= 1e9:
		return strconv.FormatFloat(hashrate/1e9, 'f', 2, 64) + " GH/s"
	case hashrate >= 1e6:
		return strconv.FormatFloat(hashrate/1e6, 'f', 2, 64) + " MH/s"
	case hashrate >= 1e3:
		return strconv.FormatFloat(hashrate/1e3, 'f', 2, 64) + " KH/s"
	default:
		return strconv.FormatFloat(hashrate, 'f', 2, 64) + " H/s"
	}
}
