package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/weareopensource/waos-go/internal/infrastructure/logging"
	"github.com/weareopensource/waos-go/internal/infrastructure/monitoring"
	"github.com/weareopensource/waos-go/internal/infrastructure/resilience"
	"github.com/weareopensource/waos-go/internal/infrastructure/tracing"
	"github.com/weareopensource/waos-go/internal/shared/failure"
	"github.com/weareopensource/waos-go/internal/shared/id"
)

// Config defines client behavior
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	Retries           int
	RetryWait         time.Duration
	RetryMaxWait      time.Duration
	RequestsPerSecond float64 // 0 means unlimited
	UserAgent         string
}

// DefaultConfig returns the client configuration for a local API.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "http://localhost:3000/api",
		Timeout:      30 * time.Second,
		Retries:      3,
		RetryWait:    500 * time.Millisecond,
		RetryMaxWait: 5 * time.Second,
		UserAgent:    "waos-go/1.0",
	}
}

// Client talks to the waos API
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	logger  *logging.Logger
	mu      sync.RWMutex
}

// Option configures a Client
type Option func(*Client)

// WithMetrics records every call
func WithMetrics(m *monitoring.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTracer runs every call in a span and propagates its IDs to the API
func WithTracer(t *tracing.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// WithLogger sets the client logger
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for cfg
func NewClient(cfg Config, opts ...Option) *Client {
	def := DefaultConfig()
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RetryWait == 0 {
		cfg.RetryWait = def.RetryWait
	}
	if cfg.RetryMaxWait == 0 {
		cfg.RetryMaxWait = def.RetryMaxWait
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}

	// pooled transport from retryablehttp; retry decisions use its policy
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil

	restyClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		SetRetryResetReaders(true).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetTransport(retryClient.HTTPClient.Transport)

	restyClient.AddRetryCondition(func(r *resty.Response, err error) bool {
		ctx := context.Background()
		var raw *http.Response
		if r != nil {
			raw = r.RawResponse
			if r.Request != nil && r.Request.Context() != nil {
				ctx = r.Request.Context()
			}
		}
		if err == nil && raw == nil {
			return false
		}
		retry, _ := retryablehttp.DefaultRetryPolicy(ctx, raw, err)
		return retry
	})

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	c := &Client{
		resty:   restyClient,
		limiter: limiter,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = resilience.New("waos-api", resilience.Settings{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsFailure: isServerFailure,
		OnStateChange: func(name string, from, to resilience.State) {
			c.logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})

	return c
}

// BreakerState returns the current circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// SetBearerAuth sends token on every request, for deployments that do not use cookies
func (c *Client) SetBearerAuth(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resty.SetAuthToken(token)
}

// apiError is the error body returned by the API
type apiError struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// request builds a request bound to ctx
func (c *Client) request(ctx context.Context) *resty.Request {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resty.R().SetContext(ctx).SetError(&apiError{})
}

// do runs one API call and decodes its JSON body into T
func do[T any](ctx context.Context, c *Client, method, path string, build func(*resty.Request)) (T, error) {
	var result T
	if _, err := c.execute(ctx, method, path, &result, build); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// execute sends one request through the limiter and the breaker. result may
// be nil for endpoints that do not answer JSON.
func (c *Client) execute(ctx context.Context, method, path string, result any, build func(*resty.Request)) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, failure.Unknown(fmt.Errorf("rate limit: %w", err))
	}

	timer := monitoring.NewTimer(c.metrics, method, path)

	var span *tracing.Span
	if c.tracer != nil {
		span, ctx = c.tracer.StartSpan(ctx, method+" "+path)
		defer func() {
			span.Finish()
			c.tracer.Submit(span)
		}()
	}

	requestID := id.NewRequestID()
	if span != nil {
		span.SetTag("request_id", requestID.String())
	}

	resp, err := resilience.Call(c.breaker, func() (*resty.Response, error) {
		req := c.request(ctx)
		req.SetHeader(tracing.RequestHeader, requestID.String())
		tracing.Inject(ctx, req.Header)
		if result != nil {
			req.SetResult(result)
		}
		if build != nil {
			build(req)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			return nil, failure.Unknown(err)
		}
		if resp.IsError() {
			return resp, decodeError(resp)
		}
		return resp, nil
	})

	if span != nil {
		if resp != nil {
			span.SetStatus(resp.StatusCode())
		}
		span.SetError(err)
	}

	switch {
	case err == nil:
		timer.Stop(strconv.Itoa(resp.StatusCode()))
		return resp, nil
	case errors.Is(err, resilience.ErrCircuitOpen), errors.Is(err, resilience.ErrTooManyRequests):
		timer.Stop("error")
		err = failure.Unknown(fmt.Errorf("waos api unavailable: %w", err))
	default:
		info := failure.From(err)
		if info.Code > 0 {
			timer.Stop(strconv.Itoa(info.Code))
		} else {
			timer.Stop("error")
		}
		err = info
	}

	c.logger.Debug("api call failed",
		zap.String("request_id", requestID.String()),
		zap.String("method", method),
		zap.String("path", path),
		zap.Error(err),
	)
	return nil, err
}

// decodeError converts a non-2xx response into an ErrorInfo
func decodeError(resp *resty.Response) *failure.ErrorInfo {
	body, _ := resp.Error().(*apiError)
	if body == nil {
		body = &apiError{}
	}
	if body.Message == "" && body.Description == "" {
		// body was not JSON; try once more in case the content type was wrong
		var e apiError
		if sonic.Unmarshal(resp.Body(), &e) == nil {
			body = &e
		}
	}
	return failure.Service(resp.StatusCode(), body.Message, body.Description, body.Type)
}

// isServerFailure tells the breaker which errors mean the API is unhealthy
func isServerFailure(err error) bool {
	if err == nil {
		return false
	}
	var info *failure.ErrorInfo
	if !errors.As(err, &info) {
		return true
	}
	return info.Code == 0 || info.Code >= http.StatusInternalServerError
}
