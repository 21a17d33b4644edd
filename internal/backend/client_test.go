package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:1234" || u.Path != "/api" {
		t.Fatalf("url not normalized: %q", u.String())
	}
	if u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url kept query or fragment: %q", u.String())
	}
}

func TestParseBaseURL_MissingHostFails(t *testing.T) {
	if _, err := parseBaseURL("http:///api"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want missing host error")
	}
}

func TestClient_FetchesEndpoints(t *testing.T) {
	t.Parallel()

	var gotPaths []string
	var gotUserAgent, gotRequestID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.EscapedPath())
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasPrefix(r.URL.Path, "/api/track/"):
			_, _ = w.Write([]byte(`{"data":[{"status":"In transit","location":"Warehouse A","last_update":"2024-01-01 10:00"},{"status":"Created","location":"Origin","last_update":"2023-12-31 08:00"}]}`))
		case r.URL.Path == "/api/history":
			_, _ = w.Write([]byte(`{"history":[{"timestamp":"t1","tracking_number":"A"},{"timestamp":"t2","tracking_number":"B"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	resp, err := c.FetchTracking(ctx, "  ABC123 ")
	if err != nil {
		t.Fatalf("FetchTracking returned error: %v", err)
	}
	latest, ok := resp.Latest()
	if !ok || latest.Status != "In transit" || latest.Location != "Warehouse A" || latest.LastUpdate != "2024-01-01 10:00" {
		t.Fatalf("Latest = %#v, %v; want In transit at Warehouse A", latest, ok)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(resp.Data))
	}

	records, err := c.FetchHistory(ctx)
	if err != nil {
		t.Fatalf("FetchHistory returned error: %v", err)
	}
	if len(records) != 2 || records[0].TrackingNumber != "A" || records[1].Timestamp != "t2" {
		t.Fatalf("FetchHistory = %#v, want A then B", records)
	}

	if len(gotPaths) != 2 || gotPaths[0] != "/api/track/ABC123" || gotPaths[1] != "/api/history" {
		t.Fatalf("paths = %v, want track then history", gotPaths)
	}
	if !strings.HasPrefix(gotUserAgent, "rastreo/") {
		t.Fatalf("User-Agent = %q, want rastreo/*", gotUserAgent)
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-ID header missing")
	}
}

func TestClient_EscapesTrackingNumber(t *testing.T) {
	t.Parallel()

	paths := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	tests := []struct {
		number string
		want   string
	}{
		{"A B/C", "/api/track/A%20B%2FC"},
		{".", "/api/track/%2E"},
		{"..", "/api/track/%2E%2E"},
		{"a.b", "/api/track/a.b"},
	}
	for _, tt := range tests {
		if _, err := c.FetchTracking(context.Background(), tt.number); err != nil {
			t.Fatalf("FetchTracking(%q) returned error: %v", tt.number, err)
		}
		if got := <-paths; got != tt.want {
			t.Fatalf("FetchTracking(%q) path = %q, want %q", tt.number, got, tt.want)
		}
	}
}

func TestClient_EmptyDataIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	resp, err := c.FetchTracking(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("FetchTracking returned error: %v", err)
	}
	if _, ok := resp.Latest(); ok {
		t.Fatalf("Latest ok = true, want false for empty data")
	}
}

func TestClient_RequiresTrackingNumber(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchTracking(context.Background(), "   "); err == nil {
		t.Fatalf("FetchTracking returned nil error, want error")
	}
}

func TestClient_ClassifiesFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/track/bad-json":
			_, _ = w.Write([]byte("{not-json"))
		case "/track/no-data":
			_, _ = w.Write([]byte(`{"items":[]}`))
		case "/track/missing-field":
			_, _ = w.Write([]byte(`{"data":[{"status":"x","location":"y"}]}`))
		case "/track/wrong-type":
			_, _ = w.Write([]byte(`{"data":[{"status":1,"location":"y","last_update":"z"}]}`))
		case "/history":
			_, _ = w.Write([]byte(`{"history":[{"timestamp":"t1"}]}`))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	for _, number := range []string{"bad-json", "no-data", "missing-field", "wrong-type"} {
		_, err := c.FetchTracking(ctx, number)
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("FetchTracking(%q) error = %v, want ErrMalformed", number, err)
		}
	}

	_, err = c.FetchTracking(ctx, "boom")
	if !errors.Is(err, ErrUnavailable) || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchTracking error = %v, want ErrUnavailable with status 500", err)
	}

	_, err = c.FetchHistory(ctx)
	if !errors.Is(err, ErrMalformed) || !strings.Contains(err.Error(), "tracking_number") {
		t.Fatalf("FetchHistory error = %v, want ErrMalformed naming tracking_number", err)
	}
}

func TestClient_TransportFailureIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchHistory(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("FetchHistory error = %v, want ErrUnavailable", err)
	}
	if errors.Is(err, ErrMalformed) {
		t.Fatalf("transport failure should not be ErrMalformed")
	}
}
