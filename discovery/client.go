// Package discovery fetches raw video records for a keyword through
// several independent paths: the gateway's search, hashtag and explore
// endpoints, an RSS bridge for feed-shaped results, and a mock source for
// development. The records it returns are untyped; the normalizer owns all
// interpretation.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.0.0 Safari/537.36"

// Gateway is a thin JSON client for the scrape gateway. The gateway hides
// all browser/anti-bot mechanics behind plain HTTP endpoints that mirror
// the platform's web API shapes.
type Gateway struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewGateway creates a gateway client for the given base URL.
func NewGateway(baseURL string, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gateway{
		baseURL:   baseURL,
		userAgent: defaultUserAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// getJSON issues a GET for path with the given query values and decodes the
// response body into a generic map.
func (g *Gateway) getJSON(ctx context.Context, path string, query url.Values) (map[string]interface{}, error) {
	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("gateway returned %d for %s: %s", resp.StatusCode, path, string(body))
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return payload, nil
}
