package config

import (
	"os"
	"strconv"
	"time"
)

// CoinGecko rate tiers (requests per minute).
const (
	coinGeckoFreeRPM = 50
	coinGeckoProRPM  = 500
)

// GitHub rate tiers (requests per hour).
const (
	gitHubUnauthenticatedRPH = 60
	gitHubAuthenticatedRPH   = 5000
)

type Config struct {
	// Server Configuration
	Port string

	// Upstream services
	CoinGecko ServiceConfig
	GitHub    ServiceConfig
	Explorer  ServiceConfig
	Reddit    ServiceConfig

	// Monitored network
	Zano ZanoConfig

	// Scheduling and retry policy
	Refresh RefreshConfig
	Retry   RetryConfig

	// GitHub user whose public activity is tracked (optional)
	GitHubUsername string

	// Subreddit tracked for social metrics
	Subreddit string
}

func Load() *Config {
	coinGeckoKey := os.Getenv("COINGECKO_API_KEY")
	gitHubToken := os.Getenv("GITHUB_TOKEN")
	subreddit := getEnv("SUBREDDIT", "Zano")

	coinGeckoBase := getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3")
	coinGeckoRate := RateLimit{Requests: coinGeckoFreeRPM, Per: time.Minute}
	if coinGeckoKey != "" {
		coinGeckoBase = getEnv("COINGECKO_PRO_BASE_URL", "https://pro-api.coingecko.com/api/v3")
		coinGeckoRate = RateLimit{Requests: coinGeckoProRPM, Per: time.Minute}
	}

	gitHubRate := RateLimit{Requests: gitHubUnauthenticatedRPH, Per: time.Hour}
	if gitHubToken != "" {
		gitHubRate = RateLimit{Requests: gitHubAuthenticatedRPH, Per: time.Hour}
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		CoinGecko: ServiceConfig{
			Name:      "coingecko",
			BaseURL:   coinGeckoBase,
			Timeout:   getDurationEnv("COINGECKO_TIMEOUT", 10*time.Second),
			CacheTTL:  getDurationEnv("COINGECKO_CACHE_TTL", 2*time.Minute),
			RateLimit: coinGeckoRate,
			Auth:      AuthCGPro,
			APIKey:    coinGeckoKey,
		},

		GitHub: ServiceConfig{
			Name:      "github",
			BaseURL:   getEnv("GITHUB_BASE_URL", "https://api.github.com"),
			Timeout:   getDurationEnv("GITHUB_TIMEOUT", 10*time.Second),
			CacheTTL:  getDurationEnv("GITHUB_CACHE_TTL", 5*time.Minute),
			RateLimit: gitHubRate,
			Auth:      AuthBearer,
			APIKey:    gitHubToken,
			Accept:    "application/vnd.github.v3+json",
		},

		// Blockchain APIs can be slower, hence the longer timeout
		Explorer: ServiceConfig{
			Name:      "explorer",
			BaseURL:   getEnv("EXPLORER_BASE_URL", "https://explorer.zano.org/api"),
			Timeout:   getDurationEnv("EXPLORER_TIMEOUT", 20*time.Second),
			CacheTTL:  getDurationEnv("EXPLORER_CACHE_TTL", 3*time.Minute),
			RateLimit: RateLimit{Requests: 60, Per: time.Minute},
			Auth:      AuthNone,
		},

		Reddit: ServiceConfig{
			Name:      "reddit",
			BaseURL:   getEnv("REDDIT_BASE_URL", "https://www.reddit.com/r/"+subreddit),
			Timeout:   getDurationEnv("REDDIT_TIMEOUT", 10*time.Second),
			CacheTTL:  0,
			RateLimit: RateLimit{Requests: 60, Per: time.Minute},
			Auth:      AuthNone,
		},

		Zano: ZanoConfig{
			CoinID:           "zano",
			GitHubOwner:      "hyle-team",
			GitHubRepo:       "zano",
			Symbol:           "ZANO",
			FullRepoPath:     "hyle-team/zano",
			ExplorerURL:      "https://explorer.zano.org",
			Decimals:         12,
			BlocksPerDay:     1440,
			NominalBlockTime: time.Minute,
		},

		Refresh: RefreshConfig{
			PriceData:   getDurationEnv("PRICE_REFRESH_INTERVAL", 2*time.Minute),
			GitHubData:  getDurationEnv("GITHUB_REFRESH_INTERVAL", 24*time.Hour),
			AutoRefresh: getDurationEnv("AUTO_REFRESH_INTERVAL", 24*time.Hour),
		},

		Retry: RetryConfig{
			MaxRetries: getIntEnv("REQUEST_MAX_RETRIES", 3),
			RetryDelay: getDurationEnv("REQUEST_RETRY_DELAY", time.Second),
		},

		GitHubUsername: os.Getenv("GITHUB_USERNAME"),
		Subreddit:      subreddit,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fallback
		}
		return intVal
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fallback
		}
		return d
	}
	return fallback
}
