package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/resilience"
)

// ErrUnavailable is returned while the circuit breaker refuses calls
var ErrUnavailable = errors.New("upstream unavailable: circuit breaker open")

// Options configures a Client
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	// Timeout bounds a whole request; zero leaves the transport default
	Timeout time.Duration
	// RateLimit caps outbound requests per second; zero is unlimited
	RateLimit float64
	// Breaker guards the upstream when set
	Breaker *resilience.Breaker
}

// Client wraps resty with rate limiting and an optional circuit breaker.
// Requests are sent exactly once.
type Client struct {
	Resty   *resty.Client
	Limiter *rate.Limiter
	Breaker *resilience.Breaker
}

// NewClient creates a JSON API client
func NewClient(opts Options) *Client {
	// Pooled transport only; retries stay off
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "webgen/1.0"
	}

	restyClient := resty.New().
		SetTransport(retryClient.HTTPClient.Transport).
		SetRetryCount(0).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")

	if opts.BaseURL != "" {
		restyClient.SetBaseURL(opts.BaseURL)
	}
	if opts.APIKey != "" {
		restyClient.SetAuthToken(opts.APIKey)
	}
	if opts.Timeout > 0 {
		restyClient.SetTimeout(opts.Timeout)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Client{
		Resty:   restyClient,
		Limiter: limiter,
		Breaker: opts.Breaker,
	}
}

// NewBreaker returns the breaker settings used for model providers
func NewBreaker(name string) *resilience.Breaker {
	return resilience.New(name, resilience.Settings{
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5 ||
				(counts.Requests >= 20 && float64(counts.TotalFailures)/float64(counts.Requests) > 0.5)
		},
	})
}

// Request creates a new request after waiting for the rate limiter
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	return c.Resty.R().SetContext(ctx), nil
}

// Execute runs fn through the breaker when one is configured. fn should
// return an error for responses the upstream is to blame for.
func (c *Client) Execute(fn func() (*resty.Response, error)) (*resty.Response, error) {
	if c.Breaker == nil {
		return fn()
	}

	resp, err := resilience.Do(c.Breaker, fn)
	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		return nil, ErrUnavailable
	}
	return resp, err
}

// BreakerState returns the circuit breaker state, closed when there is none
func (c *Client) BreakerState() resilience.State {
	if c.Breaker == nil {
		return resilience.StateClosed
	}
	return c.Breaker.State()
}
