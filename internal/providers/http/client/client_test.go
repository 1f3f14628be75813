package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1Dhiraj/HTH-Hackathon-HTH77/internal/infrastructure/resilience"
)

func TestClientSendsAuthAndJSON(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "/v1/echo", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":"pong"}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL + "/v1", APIKey: "secret", UserAgent: "test-agent"})

	req, err := c.Request(context.Background())
	require.NoError(t, err)

	var out struct {
		Value string `json:"value"`
	}
	resp, err := c.Execute(func() (*resty.Response, error) {
		return req.SetBody(map[string]string{"value": "ping"}).SetResult(&out).Post("/echo")
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "pong", out.Value)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClientDoesNotRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	req, err := c.Request(context.Background())
	require.NoError(t, err)

	resp, err := c.Execute(func() (*resty.Response, error) {
		return req.Get("/")
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClientBreaker(t *testing.T) {
	breaker := resilience.New("test", resilience.Settings{
		ReadyToTrip: func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 2 },
	})
	c := NewClient(Options{Breaker: breaker})
	failure := errors.New("upstream 500")

	for i := 0; i < 2; i++ {
		_, err := c.Execute(func() (*resty.Response, error) { return nil, failure })
		assert.ErrorIs(t, err, failure)
	}
	assert.Equal(t, resilience.StateOpen, c.BreakerState())

	invoked := false
	_, err := c.Execute(func() (*resty.Response, error) {
		invoked = true
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, invoked)
}

func TestClientWithoutBreaker(t *testing.T) {
	c := NewClient(Options{})
	assert.Nil(t, c.Breaker)
	assert.Equal(t, resilience.StateClosed, c.BreakerState())
}

func TestClientRateLimitHonoursContext(t *testing.T) {
	c := NewClient(Options{RateLimit: 0.001})

	_, err := c.Request(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = c.Request(ctx)
	assert.Error(t, err)
}

func TestNewBreaker(t *testing.T) {
	b := NewBreaker("completion")
	assert.Equal(t, "completion", b.Name())
	assert.Equal(t, resilience.StateClosed, b.State())
}
