package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yourusername/zano-monitor/internal/httpclient"
)

func TestFetchCoinData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/zano" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("market_data") != "true" {
			t.Errorf("market_data should be requested, got query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{
			"market_data": {
				"current_price": {"usd": 9.87, "eur": 9.11},
				"price_change_percentage_24h": 2.3,
				"price_change_percentage_7d": -1.2,
				"price_change_percentage_30d": 8.7,
				"market_cap": {"usd": 98700000},
				"total_volume": {"usd": 2400000}
			},
			"last_updated": "2024-05-01T12:00:00.000Z"
		}`))
	}))
	defer server.Close()

	provider := NewMarketProvider(testClient("coingecko", server.URL), "zano")

	snapshot, err := provider.FetchCoinData(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.Current != 9.87 {
		t.Errorf("Current = %f, expected 9.87", snapshot.Current)
	}
	if snapshot.Change24h != 2.3 || snapshot.Change7d != -1.2 || snapshot.Change30d != 8.7 {
		t.Errorf("unexpected changes: %+v", snapshot)
	}
	if snapshot.MarketCap != 98700000 || snapshot.Volume24h != 2400000 {
		t.Errorf("unexpected cap/volume: %+v", snapshot)
	}
	if snapshot.LastUpdated != "2024-05-01T12:00:00.000Z" {
		t.Errorf("LastUpdated = %q", snapshot.LastUpdated)
	}
}

func TestFetchCoinDataMissingChangesNormalizeToZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"market_data": {
				"current_price": {"usd": 5.0},
				"price_change_percentage_24h": null,
				"market_cap": {"usd": 1000},
				"total_volume": {"usd": 100}
			}
		}`))
	}))
	defer server.Close()

	provider := NewMarketProvider(testClient("coingecko", server.URL), "zano")

	snapshot, err := provider.FetchCoinData(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.Change24h != 0 || snapshot.Change7d != 0 || snapshot.Change30d != 0 {
		t.Errorf("null/absent changes must normalize to 0, got %+v", snapshot)
	}
	if snapshot.Current != 5.0 {
		t.Errorf("Current = %f, expected 5.0", snapshot.Current)
	}
}

func TestFetchCoinDataMissingMarketData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"last_updated": "2024-05-01T12:00:00.000Z"}`))
	}))
	defer server.Close()

	provider := NewMarketProvider(testClient("coingecko", server.URL), "zano")

	_, err := provider.FetchCoinData(context.Background())
	if err == nil {
		t.Fatal("expected invalid shape error")
	}
	if httpclient.KindOf(err) != httpclient.KindInvalidUpstreamShape {
		t.Errorf("KindOf(err) = %v, expected invalid_upstream_shape", httpclient.KindOf(err))
	}
}

func TestFetchCoinDataUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewMarketProvider(testClient("coingecko", server.URL), "zano")

	_, err := provider.FetchCoinData(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if httpclient.KindOf(err) != httpclient.KindServiceUnavailable {
		t.Errorf("KindOf(err) = %v, expected service_unavailable", httpclient.KindOf(err))
	}
}
