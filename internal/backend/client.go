package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

var (
	// ErrUnavailable marks transport failures and error statuses.
	ErrUnavailable = errors.New("backend unavailable")
	// ErrMalformed marks bodies that are not JSON or lack expected fields.
	ErrMalformed = errors.New("malformed response")
)

// Fetcher defines the backend calls the tracking controller needs.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchTracking(ctx context.Context, trackingNumber string) (TrackingResponse, error)
	FetchHistory(ctx context.Context) ([]HistoryRecord, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the tracking REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       zerolog.Logger
}

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL   = "http://localhost:5000/api"
	defaultUserAgent = "rastreo/0.1"
	maxBodyBytes     = 1 << 20
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero leaves requests bounded only by
// their context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log.With().Str("component", "backend").Logger()
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client rooted at baseURL, e.g. http://localhost:5000/api.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchTracking retrieves the status updates for a tracking number.
func (c *Client) FetchTracking(ctx context.Context, trackingNumber string) (TrackingResponse, error) {
	if c == nil {
		return TrackingResponse{}, fmt.Errorf("client is nil")
	}
	number := strings.TrimSpace(trackingNumber)
	if number == "" {
		return TrackingResponse{}, fmt.Errorf("tracking number required")
	}
	body, err := c.get(ctx, "track", number)
	if err != nil {
		return TrackingResponse{}, err
	}
	return parseTracking(body)
}

// FetchHistory retrieves the backend's query history, oldest first.
func (c *Client) FetchHistory(ctx context.Context) ([]HistoryRecord, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := c.get(ctx, "history")
	if err != nil {
		return nil, err
	}
	return parseHistory(body)
}

// endpoint appends raw path segments to the base URL. Each segment stays a
// single segment: slashes and dot segments are escaped, never resolved.
func (c *Client) endpoint(segments ...string) *url.URL {
	u := *c.baseURL
	decoded := strings.TrimSuffix(u.Path, "/")
	escaped := strings.TrimSuffix(u.EscapedPath(), "/")
	for _, seg := range segments {
		decoded += "/" + seg
		escaped += "/" + escapeSegment(seg)
	}
	u.Path = decoded
	u.RawPath = escaped
	return &u
}

func escapeSegment(seg string) string {
	switch seg {
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return url.PathEscape(seg)
}

func (c *Client) get(ctx context.Context, segments ...string) ([]byte, error) {
	reqURL := c.endpoint(segments...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	log := c.log.With().Str("request_id", requestID).Str("path", reqURL.Path).Logger()
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Dur("elapsed", time.Since(started)).Msg("backend request failed")
		return nil, fmt.Errorf("%w: execute request: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	log.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(started)).Msg("backend request")

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: api %s returned status %d", ErrUnavailable, reqURL.Path, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}
	return body, nil
}

func parseTracking(body []byte) (TrackingResponse, error) {
	if !gjson.ValidBytes(body) {
		return TrackingResponse{}, fmt.Errorf("%w: body is not valid JSON", ErrMalformed)
	}
	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return TrackingResponse{}, fmt.Errorf("%w: missing \"data\" array", ErrMalformed)
	}
	items := data.Array()
	out := TrackingResponse{Data: make([]StatusUpdate, 0, len(items))}
	for i, item := range items {
		var update StatusUpdate
		var err error
		if update.Status, err = requireString(item, "status"); err != nil {
			return TrackingResponse{}, fmt.Errorf("%w: data[%d]: %w", ErrMalformed, i, err)
		}
		if update.Location, err = requireString(item, "location"); err != nil {
			return TrackingResponse{}, fmt.Errorf("%w: data[%d]: %w", ErrMalformed, i, err)
		}
		if update.LastUpdate, err = requireString(item, "last_update"); err != nil {
			return TrackingResponse{}, fmt.Errorf("%w: data[%d]: %w", ErrMalformed, i, err)
		}
		out.Data = append(out.Data, update)
	}
	return out, nil
}

func parseHistory(body []byte) ([]HistoryRecord, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformed)
	}
	history := gjson.GetBytes(body, "history")
	if !history.IsArray() {
		return nil, fmt.Errorf("%w: missing \"history\" array", ErrMalformed)
	}
	items := history.Array()
	records := make([]HistoryRecord, 0, len(items))
	for i, item := range items {
		var rec HistoryRecord
		var err error
		if rec.Timestamp, err = requireString(item, "timestamp"); err != nil {
			return nil, fmt.Errorf("%w: history[%d]: %w", ErrMalformed, i, err)
		}
		if rec.TrackingNumber, err = requireString(item, "tracking_number"); err != nil {
			return nil, fmt.Errorf("%w: history[%d]: %w", ErrMalformed, i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func requireString(obj gjson.Result, key string) (string, error) {
	if !obj.IsObject() {
		return "", fmt.Errorf("element is not an object")
	}
	v := obj.Get(key)
	if !v.Exists() {
		return "", fmt.Errorf("field %q missing", key)
	}
	if v.Type != gjson.String {
		return "", fmt.Errorf("field %q is not a string", key)
	}
	return v.Str, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
