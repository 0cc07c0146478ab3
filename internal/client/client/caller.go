package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/tripmate/internal/common"
	"github.com/dmitrijs2005/tripmate/internal/logging"
)

const (
	DefaultTimeout     = 20 * time.Second
	DefaultMaxRetries  = 2
	DefaultBackoffStep = 500 * time.Millisecond
)

// State is a step of one logical call:
//
//	Idle → Sending → {Retrying → Sending}* → {Succeeded | Failed}
type State int

const (
	StateIdle State = iota
	StateSending
	StateRetrying
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateRetrying:
		return "retrying"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Transition is reported to the hook installed with WithTransitionHook.
type Transition struct {
	RequestID string
	Attempt   int
	From      State
	To        State
}

// Request describes one logical HTTP call. Body, when non-nil, is sent as
// JSON. Headers override the defaults.
type Request struct {
	Method  string
	URL     string
	Body    any
	Headers map[string]string
}

// Doer performs logical calls; *Caller is the production implementation.
type Doer interface {
	Call(ctx context.Context, req Request) (any, error)
}

// Caller performs HTTP calls with a timeout over the whole attempt sequence
// and bounded retries of transient failures (network errors and 5xx).
type Caller struct {
	httpClient   *http.Client
	timeout      time.Duration
	maxRetries   uint64
	backoffStep  time.Duration
	debug        bool
	log          logging.Logger
	metrics      *Metrics
	onTransition func(Transition)
}

type CallerOption func(*Caller)

func WithHTTPClient(c *http.Client) CallerOption {
	return func(cl *Caller) { cl.httpClient = c }
}

// WithTimeout bounds the whole call, retries and backoff included.
func WithTimeout(d time.Duration) CallerOption {
	return func(c *Caller) { c.timeout = d }
}

// WithMaxRetries sets how many retries follow the first attempt.
func WithMaxRetries(n uint64) CallerOption {
	return func(c *Caller) { c.maxRetries = n }
}

// WithBackoffStep sets the linear backoff unit: retry n waits n*step.
func WithBackoffStep(d time.Duration) CallerOption {
	return func(c *Caller) { c.backoffStep = d }
}

// WithDebug enables request/response logging at debug level.
func WithDebug(debug bool) CallerOption {
	return func(c *Caller) { c.debug = debug }
}

func WithLogger(l logging.Logger) CallerOption {
	return func(c *Caller) { c.log = l }
}

func WithMetrics(m *Metrics) CallerOption {
	return func(c *Caller) { c.metrics = m }
}

func WithTransitionHook(fn func(Transition)) CallerOption {
	return func(c *Caller) { c.onTransition = fn }
}

func NewCaller(opts ...CallerOption) *Caller {
	c := &Caller{
		httpClient:  &http.Client{},
		timeout:     DefaultTimeout,
		maxRetries:  DefaultMaxRetries,
		backoffStep: DefaultBackoffStep,
		log:         logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call performs req and returns the decoded body: the JSON value when the
// response is JSON, the raw text otherwise. Failures are *APIError values.
func (c *Caller) Call(ctx context.Context, req Request) (any, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var payload []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = b
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	call := &callState{id: uuid.NewString(), hook: c.onTransition}
	if c.debug {
		c.log.Debug(ctx, "http request",
			"request_id", call.id, "method", method, "url", redactURL(req.URL), "body", sanitizedJSON(req.Body))
	}

	var result any
	err := retry.Do(ctx, c.backoff(ctx, call, method), func(ctx context.Context) error {
		call.attempt++
		call.move(StateSending)
		c.metrics.attempt(method)

		body, apiErr, transient := c.send(ctx, call.id, method, req, payload)
		if apiErr != nil {
			if transient {
				return retry.RetryableError(apiErr)
			}
			return apiErr
		}
		result = body
		return nil
	})

	if err != nil {
		apiErr := classify(err)
		call.move(StateFailed)
		c.metrics.done(method, apiErr)
		if c.debug {
			c.log.Debug(ctx, "http call failed",
				"request_id", call.id, "attempts", call.attempt, "error", apiErr.Error())
		}
		return nil, apiErr
	}

	call.move(StateSucceeded)
	c.metrics.done(method, nil)
	return result, nil
}

// backoff yields attempt*step delays for at most maxRetries retries.
func (c *Caller) backoff(ctx context.Context, call *callState, method string) retry.Backoff {
	var n int64
	linear := retry.BackoffFunc(func() (time.Duration, bool) {
		n++
		return time.Duration(n) * c.backoffStep, false
	})
	limited := retry.WithMaxRetries(c.maxRetries, linear)

	return retry.BackoffFunc(func() (time.Duration, bool) {
		d, stop := limited.Next()
		if stop {
			return 0, true
		}
		call.move(StateRetrying)
		c.metrics.retry(method)
		if c.debug {
			c.log.Debug(ctx, "http retry scheduled", "request_id", call.id, "attempt", call.attempt, "delay", d)
		}
		return d, false
	})
}

// send performs a single attempt. transient reports whether a failure may
// be retried.
func (c *Caller) send(ctx context.Context, requestID, method string, req Request, payload []byte) (body any, apiErr *APIError, transient bool) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, reader)
	if err != nil {
		return nil, &APIError{Kind: ErrValidation, Message: fmt.Sprintf("invalid request: %v", err), Err: err}, false
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		e, transient := transportError(ctx, err)
		return nil, e, transient
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		e, transient := transportError(ctx, err)
		return nil, e, transient
	}

	body = decodeBody(resp.Header.Get("Content-Type"), raw)
	if c.debug {
		c.log.Debug(ctx, "http response",
			"request_id", requestID, "status", resp.StatusCode, "body", truncate(sanitizedJSON(body), maxLoggedBody))
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return body, nil, false
	}

	apiErr = newStatusError(resp.StatusCode, errorMessage(body))
	return nil, apiErr, apiErr.Kind == ErrServer
}

func transportError(ctx context.Context, err error) (*APIError, bool) {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newTimeoutError(err), false
	}
	if ctx.Err() != nil {
		return newNetworkError(ctx.Err()), false
	}
	return newNetworkError(err), true
}

// classify maps whatever retry.Do returned to an *APIError. retry.Do
// reports a context expiring between attempts as the bare context error.
func classify(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newTimeoutError(err)
	}
	return newNetworkError(err)
}

func isJSONContentType(ct string) bool {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.Contains(ct, "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// decodeBody parses JSON bodies and falls back to the raw text when the
// content type is not JSON or the JSON is malformed.
func decodeBody(contentType string, raw []byte) any {
	if !isJSONContentType(contentType) {
		return string(raw)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

const defaultErrorMessage = "Request failed"

func errorMessage(body any) string {
	switch b := body.(type) {
	case map[string]any:
		if msg, ok := b["message"].(string); ok && msg != "" {
			return msg
		}
	case string:
		if s := strings.TrimSpace(b); s != "" {
			return s
		}
	}
	return defaultErrorMessage
}

// redactURL masks API keys passed as query parameters.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", maskedValue)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

type callState struct {
	id      string
	attempt int
	state   State
	hook    func(Transition)
}

func (s *callState) move(to State) {
	from := s.state
	s.state = to
	if s.hook != nil {
		s.hook(Transition{RequestID: s.id, Attempt: s.attempt, From: from, To: to})
	}
}
