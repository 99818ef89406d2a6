package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/proxy"

	"github.com/nao1215/housepred/internal/model"
)

// DefaultPredictPath is the backend route that scores a FeatureVector.
const DefaultPredictPath = "/predict"

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 1 << 20

// Predictor scores a FeatureVector. The returned value is in thousands.
type Predictor interface {
	Predict(ctx context.Context, v model.FeatureVector) (float64, error)
}

// Client calls the prediction backend over HTTP.
// A Client is safe for concurrent use.
type Client struct {
	baseURL     string
	predictPath string
	userAgent   string
	timeout     time.Duration
	proxyAddr   string
	headers     map[string]string

	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient uses hc instead of a client built from the other options.
// WithTimeout and WithProxy are ignored when this is set.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPredictPath overrides DefaultPredictPath.
func WithPredictPath(path string) ClientOption {
	return func(c *Client) {
		if path != "" {
			c.predictPath = "/" + strings.TrimLeft(path, "/")
		}
	}
}

// WithTimeout sets an overall request timeout. Zero keeps the transport
// default, which is no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithProxy routes requests through a SOCKS5 proxy at addr ("host:port").
func WithProxy(addr string) ClientOption {
	return func(c *Client) {
		c.proxyAddr = addr
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHeaders adds extra headers to every request. They cannot replace
// Content-Type, Accept or X-Request-ID.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		if len(headers) == 0 {
			return
		}
		if c.headers == nil {
			c.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the backend at baseURL
// (e.g. "http://localhost:5000"). No connection is made until Predict.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if err := validateBaseURL(baseURL); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		predictPath: DefaultPredictPath,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.httpClient == nil {
		hc, err := c.newHTTPClient()
		if err != nil {
			return nil, err
		}
		c.httpClient = hc
	}

	return c, nil
}

// validateBaseURL checks that raw is an absolute http(s) URL with a host.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	return nil
}

// newHTTPClient builds the HTTP client, optionally dialing through SOCKS5.
func (c *Client) newHTTPClient() (*http.Client, error) {
	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return &http.Client{Timeout: c.timeout}, nil
	}
	transport = transport.Clone()

	if c.proxyAddr != "" {
		if _, _, err := net.SplitHostPort(c.proxyAddr); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidProxy, err)
		}
		dialer, err := proxy.SOCKS5("tcp", c.proxyAddr, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
	}, nil
}

// BaseURL returns the backend address without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoint returns the full URL that Predict posts to.
func (c *Client) Endpoint() string {
	return c.baseURL + c.predictPath
}

// predictResponse is the backend reply. Exactly one field is expected.
type predictResponse struct {
	Prediction json.RawMessage `json:"prediction"`
	Error      *string         `json:"error"`
}

// Predict sends v to the backend and returns the predicted price in
// thousands. It makes a single attempt.
//
// Errors:
//   - *UnreachableError (matches ErrBackendUnreachable) when no response
//     was received
//   - *ServiceError when the service reported an error or a non-2xx status
//   - ErrMalformedResponse when the body could not be interpreted
func (c *Client) Predict(ctx context.Context, v model.FeatureVector) (float64, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("failed to encode features: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("sending prediction request",
		"endpoint", c.Endpoint(),
		"request_id", requestID,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, &UnreachableError{BaseURL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, &UnreachableError{BaseURL: c.baseURL, Err: err}
	}

	c.logger.Debug("received prediction response",
		"request_id", requestID,
		"status", resp.StatusCode,
		"bytes", len(data),
	)

	return decodePrediction(resp.StatusCode, resp.Status, data)
}

// decodePrediction interprets a backend response body.
func decodePrediction(statusCode int, status string, data []byte) (float64, error) {
	ok := statusCode >= 200 && statusCode < 300

	var pr predictResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		if !ok {
			return 0, statusError(statusCode, status)
		}
		return 0, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if pr.Error != nil && *pr.Error != "" {
		return 0, &ServiceError{StatusCode: statusCode, Message: *pr.Error}
	}
	if !ok {
		return 0, statusError(statusCode, status)
	}

	value, err := predictionValue(pr.Prediction)
	if err != nil {
		return 0, err
	}
	return value, nil
}

// statusError describes a non-2xx response that carried no error message.
func statusError(statusCode int, status string) *ServiceError {
	if status == "" {
		status = fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode))
	}
	return &ServiceError{
		StatusCode: statusCode,
		Message:    "prediction service returned " + status,
	}
}

// predictionValue extracts the prediction from its raw JSON. Some model
// servers return the batch output as a one-element array, so both a number
// and [number] are accepted.
func predictionValue(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, fmt.Errorf("%w: missing prediction", ErrMalformedResponse)
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		var values []float64
		if err := json.Unmarshal(raw, &values); err != nil || len(values) != 1 {
			return 0, fmt.Errorf("%w: prediction is not a number", ErrMalformedResponse)
		}
		value = values[0]
	}

	// The price is shown in whole units, so value*1000 must stay finite.
	if math.IsNaN(value) || math.IsInf(value*1000, 0) || value < 0 {
		return 0, fmt.Errorf("%w: prediction %v out of range", ErrMalformedResponse, value)
	}
	return value, nil
}

// requestIDKey is the context key for the request ID.
type requestIDKey struct{}

// WithRequestID returns a context carrying id, which Client.Predict sends
// as the X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string) //nolint:errcheck // absent key yields ""
	return id
}

var _ Predictor = (*Client)(nil)

