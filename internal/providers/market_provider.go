package providers

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/yourusername/zano-monitor/internal/config"
	"github.com/yourusername/zano-monitor/internal/httpclient"
	"github.com/yourusername/zano-monitor/internal/models"
	"github.com/yourusername/zano-monitor/pkg/logger"
	"go.uber.org/zap"
)

// MarketProvider integrates with the CoinGecko API for price data.
type MarketProvider struct {
	client *httpclient.Client
	coinID string
}

// CoinGeckoCoinResponse is the subset of /coins/{id} we consume. The
// percentage-change fields are pointers so an absent or null upstream value
// can be told apart from an explicit zero.
type CoinGeckoCoinResponse struct {
	MarketData *struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		PriceChangePercentage24h *float64           `json:"price_change_percentage_24h"`
		PriceChangePercentage7d  *float64           `json:"price_change_percentage_7d"`
		PriceChangePercentage30d *float64           `json:"price_change_percentage_30d"`
		MarketCap                map[string]float64 `json:"market_cap"`
		TotalVolume              map[string]float64 `json:"total_volume"`
	} `json:"market_data"`
	LastUpdated string `json:"last_updated"`
}

// NewMarketProvider creates a market data provider.
func NewMarketProvider(client *httpclient.Client, coinID string) *MarketProvider {
	return &MarketProvider{
		client: client,
		coinID: coinID,
	}
}

// FetchCoinData fetches current market data for the configured coin.
// Missing percentage-change fields normalize to 0.
func (p *MarketProvider) FetchCoinData(ctx context.Context) (*models.PriceSnapshot, error) {
	query := url.Values{}
	query.Set("localization", "false")
	query.Set("tickers", "false")
	query.Set("market_data", "true")
	query.Set("community_data", "false")
	query.Set("developer_data", "false")
	query.Set("sparkline", "false")

	body, err := p.client.Get(ctx, config.EndpointCoinData, map[string]string{"id": p.coinID}, query)
	if err != nil {
		return nil, err
	}

	var data CoinGeckoCoinResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, httpclient.NewShapeError(p.client.Service(), "decoding coin data: %v", err)
	}

	if data.MarketData == nil {
		return nil, httpclient.NewShapeError(p.client.Service(), "%s", config.MsgInvalidResponse)
	}

	snapshot := &models.PriceSnapshot{
		Current:     data.MarketData.CurrentPrice["usd"],
		Change24h:   zeroIfNil(data.MarketData.PriceChangePercentage24h),
		Change7d:    zeroIfNil(data.MarketData.PriceChangePercentage7d),
		Change30d:   zeroIfNil(data.MarketData.PriceChangePercentage30d),
		MarketCap:   data.MarketData.MarketCap["usd"],
		Volume24h:   data.MarketData.TotalVolume["usd"],
		LastUpdated: data.LastUpdated,
	}

	logger.Debug("Market data fetched",
		zap.String("coin", p.coinID),
		zap.Float64("price", snapshot.Current),
	)

	return snapshot, nil
}

// HealthCheck verifies the market API is reachable.
func (p *MarketProvider) HealthCheck(ctx context.Context) error {
	query := url.Values{}
	query.Set("ids", p.coinID)
	query.Set("vs_currencies", "usd")
	_, err := p.client.Get(ctx, config.EndpointSimplePrice, nil, query)
	return err
}

func zeroIfNil(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
