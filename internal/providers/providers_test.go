package providers

import (
	"time"

	"github.com/yourusername/zano-monitor/internal/config"
	"github.com/yourusername/zano-monitor/internal/httpclient"
)

// testClient builds a gateway pointed at a test server.
func testClient(name, baseURL string) *httpclient.Client {
	return httpclient.New(config.ServiceConfig{
		Name:    name,
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
}
