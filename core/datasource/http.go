package datasource

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// maxDocumentBytes bounds how much of a remote response is read.
const maxDocumentBytes = 16 << 20

// HTTP loads remote documents from a URL.
type HTTP struct {
	endpoint *url.URL
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTP creates an HTTP remote source. A non-positive timeout defaults to 30 seconds.
func NewHTTP(endpoint string, timeout time.Duration, logger *zap.Logger) (*HTTP, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid remote url %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid remote url %q: scheme must be http or https", endpoint)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
	}

	return &HTTP{
		endpoint: u,
		client:   &http.Client{Transport: transport, Timeout: timeout},
		logger:   logger,
	}, nil
}

// WithClient replaces the underlying HTTP client.
func (h *HTTP) WithClient(c *http.Client) *HTTP {
	h.client = c
	return h
}

// RequestURL returns the URL requested for q. Filters already present on the endpoint are kept
// unless q overrides them.
func (h *HTTP) RequestURL(q Query) string {
	u := *h.endpoint
	values := u.Query()
	for key, vals := range q.Values() {
		values[key] = vals
	}
	u.RawQuery = values.Encode()
	return u.String()
}

// LoadRemote implements RemoteSource. 204 responses carry no data; other non-2xx statuses are
// transport errors.
func (h *HTTP) LoadRemote(ctx context.Context, q Query) ([]byte, error) {
	target := h.RequestURL(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{Source: "http", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if q.Language != "" {
		req.Header.Set("Accept-Language", q.Language)
	}

	h.logger.Debug("Fetching remote localizations", zap.String("url", target))

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &TransportError{Source: "http", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotModified {
		h.logger.Debug("Remote has no newer localizations", zap.Int("status", resp.StatusCode))
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Source: "http", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, &TransportError{Source: "http", Err: err}
	}

	h.logger.Debug("Fetched remote localizations", zap.Int("bytes", len(data)))
	return data, nil
}
