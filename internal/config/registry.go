package config

import (
	"fmt"
	"strings"
	"time"
)

// Endpoint templates. Path parameters use {name} placeholders that are
// substituted by BuildURL.
const (
	// CoinGecko
	EndpointCoinData    = "/coins/{id}"
	EndpointMarketChart = "/coins/{id}/market_chart"
	EndpointSimplePrice = "/simple/price"

	// GitHub
	EndpointRepo         = "/repos/{owner}/{repo}"
	EndpointCommits      = "/repos/{owner}/{repo}/commits"
	EndpointContributors = "/repos/{owner}/{repo}/contributors"
	EndpointIssues       = "/repos/{owner}/{repo}/issues"
	EndpointUserEvents   = "/users/{username}/events/public"
	EndpointUserOrgs     = "/users/{username}/orgs"
	EndpointRateLimit    = "/rate_limit"

	// Zano explorer
	EndpointGetInfo          = "/get_info/{height}"
	EndpointGetTotalCoins    = "/get_total_coins"
	EndpointGetBlocksDetails = "/get_blocks_details/{offset}/{count}"
	EndpointGetPoolTxsBrief  = "/get_pool_txs_brief_details"
	EndpointGetTxDetails     = "/get_tx_details/{tx_hash}"

	// Reddit
	EndpointSubredditAbout = "/about.json"
	EndpointSubredditNew   = "/new.json"
)

// AuthScheme selects how a credential is attached to outbound requests.
type AuthScheme string

const (
	AuthNone   AuthScheme = ""
	AuthBearer AuthScheme = "bearer"     // Authorization: Bearer <key>
	AuthCGPro  AuthScheme = "cg-pro-key" // X-CG-Pro-API-Key: <key>
)

// RateLimit is a client-side request budget for one upstream.
type RateLimit struct {
	Requests int
	Per      time.Duration
}

// ServiceConfig describes one external API: where it lives, how long we
// wait for it, how long responses stay fresh, and how fast we may call it.
type ServiceConfig struct {
	Name      string
	BaseURL   string
	Timeout   time.Duration
	CacheTTL  time.Duration
	RateLimit RateLimit
	Auth      AuthScheme
	APIKey    string

	// Accept overrides the default application/json accept header.
	Accept string
}

// HasCredential reports whether a credential is configured for the service.
func (s ServiceConfig) HasCredential() bool {
	return s.Auth != AuthNone && s.APIKey != ""
}

// BuildURL substitutes {param} placeholders in an endpoint template and
// appends it to the service base URL. An unresolved placeholder is a caller
// error.
func (s ServiceConfig) BuildURL(endpoint string, params map[string]string) (string, error) {
	url := endpoint
	for key, value := range params {
		url = strings.ReplaceAll(url, "{"+key+"}", value)
	}
	if i := strings.IndexByte(url, '{'); i >= 0 {
		if j := strings.IndexByte(url[i:], '}'); j >= 0 {
			return "", fmt.Errorf("unresolved placeholder %s in endpoint %s", url[i:i+j+1], endpoint)
		}
	}
	return s.BaseURL + url, nil
}

// Zano-specific constants.
type ZanoConfig struct {
	CoinID       string
	GitHubOwner  string
	GitHubRepo   string
	Symbol       string
	FullRepoPath string
	ExplorerURL  string

	// Decimals is the number of base-unit decimal places; amounts reported
	// by the explorer divide by 10^Decimals for display units.
	Decimals int

	// BlocksPerDay assumes the 1 minute target block time.
	BlocksPerDay int

	// NominalBlockTime is the target block interval, used as the average
	// block time when fewer than 2 block timestamps are available.
	NominalBlockTime time.Duration
}

// RefreshConfig holds the poll cadences. PriceData and GitHubData are
// declared sub-intervals that the scheduler does not currently consume;
// everything refreshes on the single AutoRefresh interval.
type RefreshConfig struct {
	PriceData   time.Duration
	GitHubData  time.Duration
	AutoRefresh time.Duration
}

// RetryConfig is the declared retry policy. It is surfaced through the
// config endpoint; adapters themselves never retry.
type RetryConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// Upstream error messages shown to consumers.
const (
	MsgNetworkError    = "Network connection failed. Please check your internet connection."
	MsgRateLimited     = "API rate limit exceeded. Please try again later."
	MsgUnavailable     = "API service is temporarily unavailable."
	MsgInvalidResponse = "Received invalid response from API."
	MsgTimeout         = "Request timed out. Please try again."
)

// UserAgent sent on every outbound request.
const UserAgent = "Zano-Investment-Monitor/1.0"
