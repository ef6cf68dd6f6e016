// Package backend is the HTTP client for the ATS backend service that scores
// resumes, stores match records and renames files.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/ats-ui/internal/schemas"
)

// DefaultTimeout bounds a single backend call. Bulk analysis of many resumes
// is slow, so the default is generous.
const DefaultTimeout = 120 * time.Second

// DefaultUserAgent is the user agent string for backend requests.
const DefaultUserAgent = "ats-ui/1.0"

// DefaultBaseURL is used when no backend URL is configured.
const DefaultBaseURL = "http://localhost:8080"

// Recorder receives one observation per backend call.
type Recorder interface {
	ObserveBackendCall(op string, status int, elapsed time.Duration)
}

// Options configures the client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Logger    *zap.Logger
	Recorder  Recorder
	// Validator, when set, checks JSON responses against their contracts
	// before decoding.
	Validator *schemas.Validator
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// DefaultOptions returns sensible defaults for the client.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client calls the ATS backend.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *zap.Logger
	recorder  Recorder
	validator *schemas.Validator
}

// New returns a client for the backend at baseURL.
func New(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{Op: "configure client", Cause: fmt.Errorf("invalid backend URL %q", baseURL)}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:   parsed,
		http:      httpClient,
		userAgent: userAgent,
		logger:    logger.Named("backend"),
		recorder:  opts.Recorder,
		validator: opts.Validator,
	}, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// request describes one backend call.
type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

// response is a successful (2xx) backend response.
type response struct {
	status      int
	header      http.Header
	contentType string
	body        []byte
}

// endpoint joins path onto the base URL. path is already escaped, so ids
// carrying "/" or "?" stay inside their segment.
func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	raw := strings.TrimRight(u.EscapedPath(), "/") + path
	if unescaped, err := url.PathUnescape(raw); err == nil {
		u.Path, u.RawPath = unescaped, raw
	} else {
		u.Path, u.RawPath = strings.TrimRight(u.Path, "/")+path, ""
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do executes r and returns the response, or an *Error for transport
// failures and non-2xx statuses.
func (c *Client) do(ctx context.Context, r request) (*response, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.endpoint(r.path, r.query), body)
	if err != nil {
		return nil, &Error{Op: r.op, Cause: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.userAgent)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(r, 0, start)
		return nil, &Error{Op: r.op, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	c.observe(r, resp.StatusCode, start)
	if err != nil {
		return nil, &Error{Op: r.op, Cause: fmt.Errorf("failed to read response body: %w", err)}
	}

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Op:     r.op,
			Status: resp.StatusCode,
			Body:   errorText(resp.StatusCode, contentType, data),
		}
	}

	return &response{
		status:      resp.StatusCode,
		header:      resp.Header,
		contentType: contentType,
		body:        data,
	}, nil
}

func (c *Client) observe(r request, status int, start time.Time) {
	elapsed := time.Since(start)
	c.logger.Debug("backend call",
		zap.String("op", r.op),
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", status),
		zap.Duration("duration", elapsed),
	)
	if c.recorder != nil {
		c.recorder.ObserveBackendCall(r.op, status, elapsed)
	}
}

// doJSON executes r and decodes the JSON body into out, checking it against
// schema first when response validation is enabled.
func (c *Client) doJSON(ctx context.Context, r request, schema string, out any) error {
	resp, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	return c.decode(r.op, schema, resp.body, out)
}

func (c *Client) decode(op, schema string, body []byte, out any) error {
	if c.validator != nil && schema != "" {
		if err := c.validator.Validate(schema, body); err != nil {
			c.logger.Warn("backend response violates contract", zap.String("op", op), zap.Error(err))
			return &Error{Op: op, Cause: err}
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Op: op, Cause: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) get(op, path string) request {
	return request{op: op, method: http.MethodGet, path: path}
}
