package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/lumen-web/lumen/internal/infrastructure/config"
	"github.com/lumen-web/lumen/internal/infrastructure/resilience"
)

// Client wraps resty with retries, rate limiting, and a circuit
// breaker for document fetches.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
}

// NewClient creates a transport client from loader configuration.
func NewClient(cfg config.LoaderConfig) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryMax).
		SetRetryWaitTime(cfg.RetryWaitMin).
		SetRetryMaxWaitTime(cfg.RetryWaitMax).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond)+1)
	}

	breaker := resilience.New("loader", resilience.Settings{
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			// Origins vary in reliability; trip only on a sustained streak
			// or a high failure rate over a meaningful sample.
			return counts.ConsecutiveFailures >= 10 ||
				(counts.Requests >= 20 && float64(counts.TotalFailures)/float64(counts.Requests) > 0.7)
		},
	})

	return &Client{
		resty:   restyClient,
		limiter: limiter,
		breaker: breaker,
	}
}

// BreakerState returns the circuit breaker state.
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// get performs one rate-limited, breaker-protected GET.
func (c *Client) get(ctx context.Context, url string) (*resty.Response, error) {
	if c.breaker.State() == resilience.StateOpen {
		return nil, resilience.ErrCircuitOpen
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.resty.R().SetContext(ctx).Get(url)
	})
	if err != nil {
		return nil, err
	}
	return result.(*resty.Response), nil
}
