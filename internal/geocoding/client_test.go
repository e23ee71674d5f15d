package geocoding_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/UnknownOlympus/geosheet/internal/geocoding"
	"github.com/UnknownOlympus/geosheet/internal/metrics"
	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	calls  int
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.calls++
	return m.doFunc(req)
}

// recordingTimer fires immediately and remembers every requested wait.
type recordingTimer struct {
	waits []time.Duration
	ch    chan time.Time
}

func (rt *recordingTimer) Start(d time.Duration) {
	rt.waits = append(rt.waits, d)
	rt.ch = make(chan time.Time, 1)
	rt.ch <- time.Now()
}

func (rt *recordingTimer) Stop() {}

func (rt *recordingTimer) C() <-chan time.Time {
	return rt.ch
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func newTestClient(t *testing.T, httpClient geocoding.HTTPClient) (*geocoding.Client, *recordingTimer, *metrics.Metrics) {
	t.Helper()
	timer := &recordingTimer{}
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	client := geocoding.NewClientWithTimer(
		httpClient, rate.NewLimiter(rate.Inf, 0), timer, "nominatim", appMetrics, slog.Default(),
	)

	return client, timer, appMetrics
}

func TestClient_Fetch(t *testing.T) {
	ctx := t.Context()
	adapter := geocoding.NewNominatimAdapter("")

	t.Run("success on first attempt", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Equal(t, "1 Main St, New York", req.URL.Query().Get("q"))
				assert.Equal(t, "json", req.URL.Query().Get("format"))
				assert.Equal(t, geocoding.UserAgent, req.Header.Get("User-Agent"))

				return respond(http.StatusOK, `[{"lon":"-73.99","lat":"40.73","type":"house"}]`), nil
			},
		}
		client, timer, _ := newTestClient(t, mockClient)

		result, err := client.Fetch(ctx, "1 Main St, New York", adapter)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, models.GeocodeResult{Longitude: "-73.99", Latitude: "40.73", Accuracy: "house"}, *result)
		assert.Equal(t, 1, mockClient.calls)
		assert.Empty(t, timer.waits)
	})

	t.Run("unparseable 200 is a completed fetch", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `[]`), nil
			},
		}
		client, timer, _ := newTestClient(t, mockClient)

		result, err := client.Fetch(ctx, "nowhere", adapter)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, models.GeocodeResult{Accuracy: "failure"}, *result)
		assert.Equal(t, 1, mockClient.calls)
		assert.Empty(t, timer.waits)
	})

	t.Run("gives up after five failed attempts", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusServiceUnavailable, `down`), nil
			},
		}
		client, timer, appMetrics := newTestClient(t, mockClient)

		result, err := client.Fetch(ctx, "1 Main St", adapter)

		require.ErrorIs(t, err, geocoding.ErrGaveUp)
		require.ErrorIs(t, err, geocoding.ErrUnexpectedStatus)
		assert.Nil(t, result)
		assert.Equal(t, geocoding.MaxAttempts, mockClient.calls)
		assert.Equal(t, []time.Duration{
			5 * time.Second, 10 * time.Second, 15 * time.Second, 75 * time.Second,
		}, timer.waits)
		assert.InDelta(t, 5, testutil.ToFloat64(appMetrics.APIErrors), 0)
		assert.InDelta(t, 4, testutil.ToFloat64(appMetrics.Retries), 0)
	})

	t.Run("success stops further attempts", func(t *testing.T) {
		mockClient := &mockHTTPClient{}
		mockClient.doFunc = func(_ *http.Request) (*http.Response, error) {
			if mockClient.calls < 3 {
				return respond(http.StatusTooManyRequests, `slow down`), nil
			}
			return respond(http.StatusOK, `[{"lon":"30.52","lat":"50.45","type":"city"}]`), nil
		}
		client, timer, _ := newTestClient(t, mockClient)

		result, err := client.Fetch(ctx, "Kyiv", adapter)

		require.NoError(t, err)
		assert.Equal(t, "city", result.Accuracy)
		assert.Equal(t, 3, mockClient.calls)
		assert.Len(t, timer.waits, 2)
	})

	t.Run("transport fault is retried", func(t *testing.T) {
		mockClient := &mockHTTPClient{}
		mockClient.doFunc = func(_ *http.Request) (*http.Response, error) {
			if mockClient.calls == 1 {
				return nil, assert.AnError
			}
			return respond(http.StatusOK, `[{"lon":"1","lat":"2","type":"house"}]`), nil
		}
		client, timer, _ := newTestClient(t, mockClient)

		result, err := client.Fetch(ctx, "somewhere", adapter)

		require.NoError(t, err)
		assert.Equal(t, "1", result.Longitude)
		assert.Equal(t, 2, mockClient.calls)
		assert.Equal(t, []time.Duration{5 * time.Second}, timer.waits)
	})

	t.Run("context cancellation", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(context.Background())
		cancel()

		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				return nil, req.Context().Err()
			},
		}
		client, _, _ := newTestClient(t, mockClient)

		result, err := client.Fetch(cancelCtx, "somewhere", adapter)

		require.ErrorIs(t, err, context.Canceled)
		require.NotErrorIs(t, err, geocoding.ErrGaveUp)
		assert.Nil(t, result)
	})
}

func TestNewHTTPClient(t *testing.T) {
	client := geocoding.NewHTTPClient(3 * time.Second)

	assert.Equal(t, 3*time.Second, client.Timeout)
}
