package fxrate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Provider supplies the JPY->USD rate for one crawl run. The rate is read
// once at startup and shared by every listing in the run.
type Provider interface {
	Rate(ctx context.Context) (float64, error)
}

// Static always returns a configured rate. Used when JPY_USD_RATE is set
// and in tests.
type Static struct {
	Value float64
}

func (s Static) Rate(_ context.Context) (float64, error) {
	if s.Value <= 0 {
		return 0, fmt.Errorf("fxrate: invalid static rate %f", s.Value)
	}
	return s.Value, nil
}

// API fetches the rate from an exchange-rate endpoint that returns the
// open.er-api.com response shape: {"rates": {"USD": 0.0067, ...}}.
type API struct {
	url    string
	client *http.Client
}

type apiResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func NewAPI(url string) *API {
	return &API{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *API) Rate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return 0, fmt.Errorf("fxrate: failed to build request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fxrate: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fxrate: unexpected status %d", resp.StatusCode)
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("fxrate: failed to decode response: %w", err)
	}

	usd, ok := decoded.Rates["USD"]
	if !ok || usd <= 0 {
		return 0, fmt.Errorf("fxrate: response has no usable USD rate")
	}
	return usd, nil
}
