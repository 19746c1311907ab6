// Package client is a client for the durcalc HTTP API.
//
// Example:
//
//	c, err := client.New("http://localhost:8080")
//	if err != nil {
//		return err
//	}
//	resp, err := c.Eval(ctx, client.Request{
//		Op:        "add",
//		Durations: []duration.Duration{duration.Hour, duration.Minutes(30)},
//	})
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff" // Exponential backoff.
	"github.com/pkg/errors"       // Wrap errors with stacktrace.
	"github.com/tidwall/gjson"    // Dynamic JSON parsing.
	"go.uber.org/zap"             // Logging.

	"github.com/mintel/timespan/pkg/duration"
)

// Largest response body read.
const maxBodyBytes = 1 << 16

// Default retry policy.
const (
	defaultRetryInit    = 150 * time.Millisecond
	defaultRetryMax     = 1200 * time.Millisecond
	defaultRetryElapsed = 10 * time.Second
	defaultMaxRetries   = 3
)

// Client calls a durcalc server.
type Client struct {
	base       *url.URL
	http       *http.Client
	newBackOff func() backoff.BackOff
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. The default is http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithBackOff sets the retry policy. f is called once per request.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(cl *Client) { cl.newBackOff = f }
}

// WithLogger sets the logger retries are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// New returns a Client for the server at rawURL.
func New(rawURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid server URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("invalid server URL %q: scheme must be http or https", rawURL)
	}
	c := &Client{
		base:       u,
		http:       http.DefaultClient,
		newBackOff: defaultBackOff,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = defaultRetryInit
	b.MaxInterval = defaultRetryMax
	b.MaxElapsedTime = defaultRetryElapsed
	return backoff.WithMaxRetries(b, defaultMaxRetries)
}

// APIError is an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap returns duration.ErrOverflow for overflow responses, so
// errors.Is works the same as for local evaluation.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnprocessableEntity {
		return duration.ErrOverflow
	}
	return nil
}

// Request is an expression to evaluate.
type Request struct {
	Op        string              // add, sub, mul, div, neg, abs or ratio.
	Mode      string              // checked, saturating or panic. Empty means checked.
	Durations []duration.Duration // Duration operands.
	Factor    int32               // Integer operand of mul and div.
}

// Response is an evaluated expression.
type Response struct {
	Expr     string
	Result   string
	Duration duration.Duration // Set unless Ratio is.
	Ratio    *float64          // Set by ratio.
}

type evalBody struct {
	Op        string   `json:"op"`
	Mode      string   `json:"mode,omitempty"`
	Durations []string `json:"durations"`
	Factor    int32    `json:"factor,omitempty"`
}

// Eval evaluates req on the server.
func (c *Client) Eval(ctx context.Context, req Request) (*Response, error) {
	body := evalBody{Op: req.Op, Mode: req.Mode, Factor: req.Factor}
	for _, d := range req.Durations {
		body.Durations = append(body.Durations, d.String())
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	raw, err := c.do(ctx, http.MethodPost, "/v1/eval", nil, data)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Expr:   gjson.GetBytes(raw, "expr").String(),
		Result: gjson.GetBytes(raw, "result").String(),
	}
	if r := gjson.GetBytes(raw, "ratio"); r.Exists() {
		v := r.Float()
		resp.Ratio = &v
		return resp, nil
	}
	if err := resp.Duration.UnmarshalJSON([]byte(gjson.GetBytes(raw, "duration").Raw)); err != nil {
		return nil, errors.Wrap(err, "invalid duration in response")
	}
	return resp, nil
}

// Parse parses s on the server.
func (c *Client) Parse(ctx context.Context, s string) (duration.Duration, error) {
	raw, err := c.do(ctx, http.MethodGet, "/v1/parse", url.Values{"d": {s}}, nil)
	if err != nil {
		return duration.Zero, err
	}
	secs := gjson.GetBytes(raw, "seconds")
	nanos := gjson.GetBytes(raw, "nanoseconds")
	if !secs.Exists() || !nanos.Exists() {
		return duration.Zero, errors.New("invalid parse response")
	}
	return duration.New(secs.Int(), int32(nanos.Int())), nil
}

// do sends a request, retrying network errors and 5xx responses, and
// returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	u := c.base.ResolveReference(&url.URL{Path: path, RawQuery: query.Encode()})

	var out []byte
	operation := func() error {
		var r io.Reader
		if body != nil {
			r = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
		if err != nil {
			return backoff.Permanent(err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return err
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			out = data
			return nil
		}
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: gjson.GetBytes(data, "error").String()}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		if resp.StatusCode >= 500 {
			return apiErr
		}
		return backoff.Permanent(apiErr)
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Debug("retrying request",
			zap.String("method", method),
			zap.String("url", u.String()),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(c.newBackOff(), ctx), notify); err != nil {
		return nil, err
	}
	return out, nil
}
