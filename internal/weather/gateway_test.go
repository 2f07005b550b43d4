package weather

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const londonResponse = `{
  "coord": {"lon": -0.1257, "lat": 51.5085},
  "weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
  "main": {"temp": 14.55, "feels_like": 13.88, "pressure": 1014, "humidity": 72},
  "wind": {"speed": 4.12, "deg": 240},
  "dt": 1736769600,
  "name": "London"
}`

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()

	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)

	return NewGateway(client, "test-key", slog.Default())
}

func TestCurrentPassesProviderPayloadThrough(t *testing.T) {
	g := newTestGateway(t)

	httpmock.RegisterResponder(http.MethodGet, defaultBaseURL,
		httpmock.NewStringResponder(http.StatusOK, londonResponse))

	payload, err := g.Current(context.Background(), "London")
	require.NoError(t, err)

	// The payload reaches the caller unmodified.
	assert.JSONEq(t, londonResponse, string(payload))

	var parsed struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(payload, &parsed))
	assert.Equal(t, "London", parsed.Name)
}

func TestCurrentSendsCityAndKey(t *testing.T) {
	g := newTestGateway(t)

	var gotQuery string
	httpmock.RegisterResponder(http.MethodGet, defaultBaseURL,
		func(req *http.Request) (*http.Response, error) {
			gotQuery = req.URL.RawQuery
			return httpmock.NewStringResponse(http.StatusOK, londonResponse), nil
		})

	_, err := g.Current(context.Background(), "New York")
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "q=New+York")
	assert.Contains(t, gotQuery, "appid=test-key")
	assert.Contains(t, gotQuery, "units=metric")
}

func TestCurrentCollapsesFailures(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
	}{
		{"city_not_found", httpmock.NewStringResponder(http.StatusNotFound, `{"cod":"404","message":"city not found"}`)},
		{"auth_failure", httpmock.NewStringResponder(http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`)},
		{"server_error", httpmock.NewStringResponder(http.StatusInternalServerError, "oops")},
		{"unreachable", httpmock.NewErrorResponder(assert.AnError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGateway(t)
			httpmock.RegisterResponder(http.MethodGet, defaultBaseURL, tt.responder)

			payload, err := g.Current(context.Background(), "Nowhere123")
			assert.Nil(t, payload)
			assert.ErrorIs(t, err, ErrLookupFailed)
		})
	}
}

func TestCurrentMissingAPIKey(t *testing.T) {
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)

	g := NewGateway(client, "", slog.Default())

	_, err := g.Current(context.Background(), "London")
	assert.ErrorIs(t, err, ErrLookupFailed)
	assert.Equal(t, 0, httpmock.GetTotalCallCount(), "no request should be issued without a key")
}
