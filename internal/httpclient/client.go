package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/cesargomez89/meting-gateway/internal/constants"
	"github.com/cesargomez89/meting-gateway/internal/logger"
	"github.com/cesargomez89/meting-gateway/internal/weapi"
)

// ErrorKind tells apart admission failures from transport/decoding failures.
type ErrorKind int

const (
	KindLimit ErrorKind = iota + 1
	KindReq
)

func (k ErrorKind) String() string {
	switch k {
	case KindLimit:
		return "limit"
	case KindReq:
		return "req"
	default:
		return "unknown"
	}
}

// RequestError is returned by every failed execution.
type RequestError struct {
	Kind ErrorKind
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s: %v", e.Kind, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Options configures a Client.
type Options struct {
	// Concurrency is the permit pool capacity shared by every request of the client.
	Concurrency int64
	// RateLimit caps outbound requests per second. Zero disables the limiter.
	RateLimit float64
	// RandomIP adds an X-Real-IP header drawn from a fixed upstream-friendly range.
	RandomIP bool
	Headers  http.Header
	Logger   *logger.Logger
}

// Client executes signed upstream requests under a bounded permit pool.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	permits    *semaphore.Weighted
	limiter    *rate.Limiter
	headers    http.Header
	randomIP   bool
	logger     *logger.Logger
}

// NewClient creates a new bounded client. A nil httpClient gets a pooled default.
func NewClient(httpClient *http.Client, opts Options) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: constants.DefaultRequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		}
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = constants.DefaultConcurrency
	}
	if opts.Headers == nil {
		opts.Headers = DefaultHeaders()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Client{
		httpClient: httpClient,
		permits:    semaphore.NewWeighted(opts.Concurrency),
		limiter:    limiter,
		headers:    opts.Headers,
		randomIP:   opts.RandomIP,
		logger:     opts.Logger.WithComponent("httpclient"),
	}
}

// DefaultHeaders returns the static identity headers the upstream requires.
func DefaultHeaders() http.Header {
	h := http.Header{}
	h.Set("Referer", constants.HeaderReferer)
	h.Set("Cookie", constants.HeaderCookie)
	h.Set("User-Agent", constants.HeaderUserAgent)
	h.Set("Accept", constants.HeaderAccept)
	h.Set("Accept-Language", constants.HeaderAcceptLanguage)
	h.Set("Connection", constants.HeaderConnection)
	h.Set("Content-Type", constants.HeaderContentType)
	return h
}

// Execute posts env to endpoint and decodes the JSON response into T.
func Execute[T any](ctx context.Context, c *Client, endpoint string, env weapi.Envelope) (T, error) {
	var out T
	if err := c.PostForm(ctx, endpoint, env.Form(), &out); err != nil {
		return out, err
	}
	return out, nil
}

// PostForm holds one permit for the whole round trip, including body decoding.
func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values, target any) error {
	if err := c.permits.Acquire(ctx, 1); err != nil {
		return &RequestError{Kind: KindLimit, Err: err}
	}
	defer c.permits.Release(1)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &RequestError{Kind: KindLimit, Err: err}
		}
	}

	requestID := uuid.NewString()
	log := c.logger.WithRequest(requestID)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return &RequestError{Kind: KindReq, Err: err}
	}
	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	if c.randomIP {
		req.Header.Set("X-Real-IP", RandomChineseIP())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("Upstream request failed", "endpoint", endpoint, "error", err)
		return &RequestError{Kind: KindReq, Err: err}
	}
	defer resp.Body.Close()

	log.Debug("Upstream response", "endpoint", endpoint, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Kind: KindReq, Err: fmt.Errorf("upstream status %s", resp.Status)}
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return &RequestError{Kind: KindReq, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// RandomChineseIP picks an address in 112.88.0.0 - 112.89.35.255.
func RandomChineseIP() string {
	span := constants.RandomIPEnd - constants.RandomIPStart
	return FormatIPv4(constants.RandomIPStart + rand.Uint32N(span+1))
}

// FormatIPv4 renders a big-endian uint32 address in dotted form.
func FormatIPv4(ip uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(ip>>24), byte(ip>>16), byte(ip>>8), byte(ip))
}
