package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/emiliopalmerini/timedash/internal/domain"
)

const maxBodyBytes = 1 << 20

// HTTP fetches the dataset from a URL.
type HTTP struct {
	url    string
	client *http.Client
}

// NewHTTP creates an HTTP source. A nil client gets a 10 second timeout.
func NewHTTP(url string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTP{url: url, client: client}
}

func (h *HTTP) Fetch(ctx context.Context) (domain.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", h.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", h.url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return domain.ParseDataset(body)
}

func (h *HTTP) Name() string { return "http" }
