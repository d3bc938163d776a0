package billiardsapi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	idgen "github.com/riskibarqy/billiards-tracker/internal/platform/id"
	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
	"github.com/riskibarqy/billiards-tracker/internal/platform/notify"
	"github.com/riskibarqy/billiards-tracker/internal/platform/resilience"
)

const (
	statusPath       = "/api/auth/status"
	probeFlightKey   = "probe-cycle"
	maxRetries       = 1
	maxResponseBytes = 4 << 20

	defaultTimeout      = 15 * time.Second
	defaultProbeTimeout = 3 * time.Second
	defaultFreshness    = 60 * time.Second
	defaultProbeWait    = 5 * time.Second
)

// UnauthenticatedHandler runs after a request fails with an auth category.
type UnauthenticatedHandler func(ctx context.Context, err error)

type ClientConfig struct {
	HTTPClient   *http.Client
	Timeout      time.Duration
	Pool         *EndpointPool
	Jar          http.CookieJar
	ProbeTimeout time.Duration
	Freshness    time.Duration
	ProbeWait    time.Duration

	RequestIDs        idgen.Generator
	Notifier          notify.Notifier
	OnUnauthenticated UnauthenticatedHandler
	Metrics           *Metrics
	Logger            *logging.Logger
	Now               func() time.Time
}

// Client talks to the account backend, failing over to the next base URL once
// when a request hits a network error.
type Client struct {
	httpClient        *http.Client
	pool              *EndpointPool
	probeTimeout      time.Duration
	freshness         time.Duration
	probeWait         time.Duration
	requestIDs        idgen.Generator
	notifier          notify.Notifier
	onUnauthenticated UnauthenticatedHandler
	metrics           *Metrics
	logger            *logging.Logger
	now               func() time.Time

	flight   resilience.Flight
	handlers conc.WaitGroup
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Pool == nil {
		return nil, crerr.New("billiards api client requires an endpoint pool")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	var httpClient http.Client
	if cfg.HTTPClient != nil {
		httpClient = *cfg.HTTPClient
	}
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}
	if cfg.Jar != nil {
		httpClient.Jar = cfg.Jar
	}
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	httpClient.Transport = otelhttp.NewTransport(base)

	c := &Client{
		httpClient:        &httpClient,
		pool:              cfg.Pool,
		probeTimeout:      durationOr(cfg.ProbeTimeout, defaultProbeTimeout),
		freshness:         durationOr(cfg.Freshness, defaultFreshness),
		probeWait:         durationOr(cfg.ProbeWait, defaultProbeWait),
		requestIDs:        cfg.RequestIDs,
		notifier:          cfg.Notifier,
		onUnauthenticated: cfg.OnUnauthenticated,
		metrics:           cfg.Metrics,
		logger:            logger,
		now:               cfg.Now,
	}
	if c.requestIDs == nil {
		c.requestIDs = idgen.NewUUIDGenerator()
	}
	if c.notifier == nil {
		c.notifier = notify.Nop{}
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// Pool exposes the shared endpoint state.
func (c *Client) Pool() *EndpointPool {
	return c.pool
}

// Close waits for dispatched unauthenticated handlers.
func (c *Client) Close() {
	c.handlers.Wait()
}

// Probe reports whether baseURL answers the status endpoint with a JSON body.
// Any well-formed JSON counts, whatever the status code.
func (c *Client) Probe(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	ok := c.probe(ctx, baseURL)
	c.metrics.observeProbe(ok)
	return ok
}

func (c *Client) probe(ctx context.Context, baseURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+statusPath, nil)
	if err != nil {
		c.logger.WarnContext(ctx, "build probe request failed", "endpoint", baseURL, "error", err)
		return false
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	c.setRequestID(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "endpoint probe failed", "endpoint", baseURL, "error", err)
		return false
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logger.DebugContext(ctx, "read probe response failed", "endpoint", baseURL, "error", err)
		return false
	}
	var decoded any
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		c.logger.DebugContext(ctx, "probe response is not json", "endpoint", baseURL, "body", abbreviateBody(raw))
		return false
	}
	return true
}

// TestConnection finds a reachable endpoint. A recent success short-circuits the
// probe, and concurrent callers share a single probe cycle.
func (c *Client) TestConnection(ctx context.Context) bool {
	if c.pool.FreshWithin(c.freshness, c.now()) {
		return true
	}

	cycleCtx := context.WithoutCancel(ctx)
	out, err, shared := c.flight.Do(ctx, probeFlightKey, c.probeWait, func() (any, error) {
		return c.runProbeCycle(cycleCtx), nil
	})
	if err != nil {
		c.logger.DebugContext(ctx, "gave up waiting for in-flight probe", "error", err)
		return c.pool.Connected()
	}
	if shared {
		c.logger.DebugContext(ctx, "joined in-flight probe cycle")
	}
	ok, _ := out.(bool)
	return ok
}

func (c *Client) runProbeCycle(ctx context.Context) bool {
	c.pool.setConnecting(true)
	defer c.pool.setConnecting(false)

	currentIndex, currentURL := c.pool.Current()
	if c.Probe(ctx, currentURL) {
		c.pool.MarkConnected(c.now())
		return true
	}

	for i, candidate := range c.pool.URLs() {
		if i == currentIndex {
			continue
		}
		if c.Probe(ctx, candidate) {
			c.pool.SetCurrent(i)
			c.pool.MarkConnected(c.now())
			c.logger.InfoContext(ctx, "switched account api endpoint", "endpoint", candidate)
			return true
		}
	}

	c.pool.MarkDisconnected()
	c.logger.WarnContext(ctx, "no account api endpoint reachable", "endpoints", len(c.pool.URLs()))
	return false
}

// Request sends one API call and decodes the JSON response into out when non-nil.
// A network failure is retried once against the next base URL.
func (c *Client) Request(ctx context.Context, path, method string, body, out any) error {
	if !c.pool.Connected() && !c.pool.Connecting() {
		c.TestConnection(ctx)
	}

	apiPath := normalizePath(path)
	for attempt := 0; ; attempt++ {
		_, baseURL := c.pool.Current()
		err := c.do(ctx, baseURL, apiPath, method, body, out)
		if err == nil {
			c.metrics.observeRequest(method, "")
			return nil
		}

		category := Classify(err)
		c.metrics.observeRequest(method, category)
		c.logger.WarnContext(ctx, "billiards api request failed",
			"method", method,
			"url", baseURL+apiPath,
			"category", string(category),
			"attempt", attempt,
			"error", err,
		)

		if category == CategoryNetwork && attempt < maxRetries {
			next := c.pool.Advance()
			c.metrics.observeFailover()
			c.logger.WarnContext(ctx, "retrying with alternate base url", "endpoint", next)
			continue
		}

		if category == CategoryAuth {
			c.dispatchUnauthenticated(ctx, err)
		}
		c.notifier.Notify(ctx, notify.LevelError, notificationText(category, err))
		return withSentinel(category, err)
	}
}

func (c *Client) do(ctx context.Context, baseURL, apiPath, method string, body, out any) error {
	reqBody, err := encodeBody(method, body)
	if err != nil {
		return crerr.Wrapf(err, "encode %s %s body", method, apiPath)
	}
	req, err := http.NewRequestWithContext(ctx, method, baseURL+apiPath, http.NoBody)
	if err != nil {
		if reqBody != nil {
			_ = reqBody.Close()
		}
		return crerr.Wrapf(err, "build %s %s request", method, apiPath)
	}
	if reqBody != nil {
		req.Body = reqBody
		req.ContentLength = int64(reqBody.Len())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.setRequestID(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return crerr.Mark(crerr.Wrapf(err, "send %s %s", method, apiPath), ErrTransport)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return crerr.Mark(crerr.Wrapf(err, "read %s %s response", method, apiPath), ErrTransport)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var failure struct {
			Message string `json:"message"`
		}
		_ = sonic.Unmarshal(raw, &failure)
		if failure.Message == "" {
			failure.Message = "request failed"
		}
		return &HTTPError{Status: resp.StatusCode, Message: failure.Message, Body: raw}
	}

	c.pool.MarkConnected(c.now())
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return crerr.Wrapf(err, "decode %s %s response body=%s", method, apiPath, abbreviateBody(raw))
	}
	return nil
}

// pooledBody hands its buffer back to the pool once the transport closes it.
// The transport may keep reading after Do returns, so Close is the only safe point.
type pooledBody struct {
	*bytes.Reader
	buf  *bytebufferpool.ByteBuffer
	once sync.Once
}

func (b *pooledBody) Close() error {
	b.once.Do(func() {
		bytebufferpool.Put(b.buf)
	})
	return nil
}

func encodeBody(method string, body any) (*pooledBody, error) {
	if body == nil || !hasBody(method) {
		return nil, nil
	}
	buf := bytebufferpool.Get()
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(body); err != nil {
		bytebufferpool.Put(buf)
		return nil, err
	}
	return &pooledBody{Reader: bytes.NewReader(buf.B), buf: buf}, nil
}

func (c *Client) setRequestID(req *http.Request) {
	requestID, err := c.requestIDs.NewID()
	if err != nil {
		c.logger.DebugContext(req.Context(), "generate request id failed", "error", err)
		return
	}
	req.Header.Set("X-Request-ID", requestID)
}

func (c *Client) dispatchUnauthenticated(ctx context.Context, err error) {
	if c.onUnauthenticated == nil {
		return
	}
	handlerCtx := context.WithoutCancel(ctx)
	c.handlers.Go(func() {
		c.onUnauthenticated(handlerCtx, err)
	})
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		return path
	}
	return "/api" + path
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return fallback
}
