package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// ErrLookupFailed is the single failure condition exposed by the gateway.
// The concrete cause (unknown city, provider unreachable, auth failure) is
// wrapped underneath for logging and deliberately not distinguished for
// callers.
var ErrLookupFailed = errors.New("weather lookup failed")

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Gateway performs current-weather lookups against OpenWeather. It is
// stateless: repeated calls with the same city issue independent requests.
type Gateway struct {
	client  *http.Client
	apiKey  string
	baseURL string
	circuit *gobreaker.CircuitBreaker
	log     *slog.Logger
}

// NewGateway creates a Gateway using the shared HTTP client. The client's
// timeout is the only timeout applied to provider calls.
func NewGateway(client *http.Client, apiKey string, log *slog.Logger) *Gateway {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Gateway{
		client:  client,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		circuit: cb,
		log:     log,
	}
}

// Current fetches the provider's weather payload for city and returns it
// unmodified. Any failure collapses to ErrLookupFailed.
func (g *Gateway) Current(ctx context.Context, city string) (json.RawMessage, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, errors.New("openweather api key is not configured"))
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", g.apiKey)
	values.Set("units", "metric")

	u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	result, err := g.circuit.Execute(func() (interface{}, error) {
		resp, execErr := g.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}
		return json.RawMessage(body), nil
	})
	if err != nil {
		g.log.Warn("provider lookup failed", "city", city, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	payload, ok := result.(json.RawMessage)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", ErrLookupFailed)
	}
	return payload, nil
}
