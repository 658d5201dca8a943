package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

type Response struct {
	StatusCode int
	Body       []byte
}

// Call describes one remote request relative to the client's base URL.
type Call struct {
	Path  string
	Query url.Values
}

func (c Call) String() string {
	if len(c.Query) == 0 {
		return c.Path
	}
	return c.Path + "?" + c.Query.Encode()
}

// Callback receives the outcome of an enqueued call. It is invoked once per call.
type Callback func(resp *Response, err error)

type Interface interface {
	Get(ctx context.Context, path string) (*Response, error)
}

// Executor performs a call in the background and reports through a callback.
type Executor interface {
	Enqueue(ctx context.Context, call Call, callback Callback)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	GetFunc    func(ctx context.Context, path string) (*Response, error)
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

var ErrBreakerOpen = errors.New("circuit breaker open")

type serverStatusError struct {
	code int
}

func (e *serverStatusError) Error() string {
	return fmt.Sprintf("server responded with status %d", e.code)
}

func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	if opts.MaxFailures == 0 {
		opts.MaxFailures = 5
	}

	if opts.OpenTimeout == 0 {
		opts.OpenTimeout = 30 * time.Second
	}

	maxFailures := opts.MaxFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weather-api",
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
		},
	})

	return &Client{
		baseURL: opts.BaseURL,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		breaker: breaker,
	}
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, path)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.do(ctx, path)
		if err != nil {
			return nil, err
		}
		// 5xx counts against the breaker but is still handed back to the caller.
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, &serverStatusError{code: resp.StatusCode}
		}
		return resp, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrBreakerOpen, err)
	}

	var statusErr *serverStatusError
	if err != nil && !errors.As(err, &statusErr) {
		return nil, err
	}

	resp, ok := result.(*Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type %T from breaker", result)
	}
	return resp, nil
}

// Enqueue runs the call on its own goroutine and hands the outcome to callback.
func (c *Client) Enqueue(ctx context.Context, call Call, callback Callback) {
	go func() {
		resp, err := c.Get(ctx, call.String())
		callback(resp, err)
	}()
}

func (c *Client) do(ctx context.Context, path string) (*Response, error) {
	var fullURL string
	if c.baseURL == "" {
		fullURL = path // If no base URL, treat path as full URL
	} else {
		fullURL = c.baseURL + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Debug().Err(err).Msg("Error closing response body")
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
