package geocoding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/geosheet/internal/metrics"
	"github.com/UnknownOlympus/geosheet/internal/models"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// UserAgent identifies the client; Nominatim's usage policy requires a valid one.
const UserAgent = "Geosheet-Geocoder/1.0 (https://github.com/UnknownOlympus/geosheet)"

// maxErrorBody bounds how much of a failed response is kept for logging.
const maxErrorBody = 512

var (
	// ErrGaveUp is returned by Fetch when every attempt failed. No result exists.
	ErrGaveUp = errors.New("geocoding provider did not answer, giving up")
	// ErrUnexpectedStatus is the fault recorded for any non-200 answer.
	ErrUnexpectedStatus = errors.New("geocoding provider returned unexpected status")
)

// Client performs geocoding requests with bounded retries and escalating waits.
type Client struct {
	client       HTTPClient      // HTTP client for making requests
	limiter      *rate.Limiter   // Request pacing
	timer        backoff.Timer   // Delay provider, nil uses a real timer
	schedule     []time.Duration // Backoff tiers
	providerName string          // Name of the provider for metrics labeling
	metrics      *metrics.Metrics
	log          *slog.Logger
}

// NewHTTPClient returns the HTTP client used for provider requests.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// NewClient creates a retrying client using real timers for its backoff waits.
func NewClient(
	httpClient HTTPClient,
	limiter *rate.Limiter,
	providerName string,
	metrics *metrics.Metrics,
	log *slog.Logger,
) *Client {
	return NewClientWithTimer(httpClient, limiter, nil, providerName, metrics, log)
}

// NewClientWithTimer allows injecting the timer that implements backoff waits.
// Useful for testing without sleeping.
func NewClientWithTimer(
	httpClient HTTPClient,
	limiter *rate.Limiter,
	timer backoff.Timer,
	providerName string,
	metrics *metrics.Metrics,
	log *slog.Logger,
) *Client {
	return &Client{
		client:       httpClient,
		limiter:      limiter,
		timer:        timer,
		schedule:     DefaultSchedule,
		providerName: providerName,
		metrics:      metrics,
		log:          log,
	}
}

// Fetch geocodes a single address with the given adapter.
//
// A 200 answer ends the loop, even when the adapter could not parse it (the result
// is then the failure sentinel). Transport faults and other statuses are retried
// up to MaxAttempts calls in total. When all attempts fail Fetch returns ErrGaveUp
// and no result; when ctx is cancelled it returns ctx.Err().
func (c *Client) Fetch(ctx context.Context, address string, adapter Adapter) (*models.GeocodeResult, error) {
	reqURL := adapter.Query(url.QueryEscape(address))
	c.log.DebugContext(ctx, "Geocoding address", "address", address, "url", reqURL)

	var (
		result  models.GeocodeResult
		attempt int
	)

	operation := func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(fmt.Errorf("rate limit exceeded: %w", err))
		}

		body, err := c.get(ctx, reqURL)
		if err != nil {
			c.metrics.APIErrors.Inc()
			c.log.WarnContext(ctx, "Geocoding attempt failed", "attempt", attempt, "error", err)
			return err
		}

		result = adapter.Parse(body)
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.metrics.Retries.Inc()
		c.log.InfoContext(ctx, "The geocoder may be offline, retrying",
			"attempt", attempt, "wait", wait, "error", err)
	}

	policy := backoff.WithContext(newTieredBackOff(c.schedule), ctx)
	if err := backoff.RetryNotifyWithTimer(operation, policy, notify, c.timer); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.WarnContext(ctx, "Giving up on address", "address", address, "attempts", attempt, "error", err)
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrGaveUp, attempt, err)
	}

	if result.Failed() {
		c.log.WarnContext(ctx, "Provider answer could not be parsed", "address", address)
	}

	return &result, nil
}

// get performs one GET request and returns the body of a 200 answer.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.client.Do(req)
	c.metrics.RequestSeconds.WithLabelValues(c.providerName).Observe(time.Since(startTime).Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
