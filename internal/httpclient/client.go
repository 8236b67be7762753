package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/yourusername/zano-monitor/internal/config"
	"github.com/yourusername/zano-monitor/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type cacheEntry struct {
	body      []byte
	expiresAt time.Time
}

// Client is the request gateway for one external service. It owns the
// service's timeout, rate budget, auth credential and response cache; it
// never retries.
type Client struct {
	svc        config.ServiceConfig
	httpClient *http.Client
	limiter    *rate.Limiter

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// New creates a gateway client for a service described in the registry.
func New(svc config.ServiceConfig) *Client {
	limit := rate.Inf
	burst := 1
	if svc.RateLimit.Requests > 0 && svc.RateLimit.Per > 0 {
		limit = rate.Every(svc.RateLimit.Per / time.Duration(svc.RateLimit.Requests))
		burst = svc.RateLimit.Requests
	}

	return &Client{
		svc: svc,
		// Per-call deadlines come from context; the transport-level timeout
		// is a backstop only.
		httpClient: &http.Client{Timeout: svc.Timeout + 5*time.Second},
		limiter:    rate.NewLimiter(limit, burst),
		cache:      make(map[string]cacheEntry),
	}
}

// Service returns the name of the upstream this client talks to.
func (c *Client) Service() string {
	return c.svc.Name
}

// Get performs a GET against an endpoint template, substituting {param}
// placeholders with pathParams and appending query values. The response
// body is returned on any 2xx status; failures are classified Errors.
func (c *Client) Get(ctx context.Context, endpoint string, pathParams map[string]string, query url.Values) ([]byte, error) {
	fullURL, err := c.svc.BuildURL(endpoint, pathParams)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}

	if body, ok := c.cached(fullURL); ok {
		return body, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Service: c.svc.Name, Kind: KindNetworkError, Err: err}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.svc.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || reqCtx.Err() == context.DeadlineExceeded {
			return nil, &Error{Service: c.svc.Name, Kind: KindTimeout, Err: errors.New(config.MsgTimeout)}
		}
		return nil, &Error{Service: c.svc.Name, Kind: KindNetworkError, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Service: c.svc.Name, Kind: KindNetworkError, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return nil, &Error{
			Service:    c.svc.Name,
			Kind:       KindRateLimited,
			StatusCode: resp.StatusCode,
			Err:        errors.New(config.MsgRateLimited),
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		logger.Warn("Upstream returned error status",
			zap.String("service", c.svc.Name),
			zap.Int("status", resp.StatusCode),
			zap.String("url", fullURL),
		)
		return nil, &Error{
			Service:    c.svc.Name,
			Kind:       KindServiceUnavailable,
			StatusCode: resp.StatusCode,
			Err:        errors.New(config.MsgUnavailable),
		}
	}

	c.store(fullURL, body)
	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", config.UserAgent)
	if c.svc.Accept != "" {
		req.Header.Set("Accept", c.svc.Accept)
	} else {
		req.Header.Set("Accept", "application/json")
	}

	if !c.svc.HasCredential() {
		return
	}
	switch c.svc.Auth {
	case config.AuthBearer:
		req.Header.Set("Authorization", "Bearer "+c.svc.APIKey)
	case config.AuthCGPro:
		req.Header.Set("X-CG-Pro-API-Key", c.svc.APIKey)
	}
}

func (c *Client) cached(url string) ([]byte, bool) {
	if c.svc.CacheTTL <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[url]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(c.cache, url)
		return nil, false
	}
	return entry.body, true
}

func (c *Client) store(url string, body []byte) {
	if c.svc.CacheTTL <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[url] = cacheEntry{body: body, expiresAt: time.Now().Add(c.svc.CacheTTL)}
}
