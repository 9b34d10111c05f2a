package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestJSONDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"ok","count":3}`))
	}))
	defer srv.Close()

	var got struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	c := NewClient(0, nil, nil)
	if err := c.JSON(context.Background(), "test.json", srv.URL, &got); err != nil {
		t.Fatalf("JSON returned error: %v", err)
	}
	if got.Name != "ok" || got.Count != 3 {
		t.Fatalf("got %+v, want name=ok count=3", got)
	}
}

func TestJSONDecodeFailureNamesEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	var got map[string]any
	c := NewClient(0, nil, nil)
	err := c.JSON(context.Background(), "test.json", srv.URL, &got)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "test.json") {
		t.Fatalf("error %q does not name the endpoint label", err)
	}
}

func TestTextReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>bootstrap</html>"))
	}))
	defer srv.Close()

	c := NewClient(0, nil, nil)
	got, err := c.Text(context.Background(), "test.text", srv.URL)
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	if got != "<html>bootstrap</html>" {
		t.Fatalf("got %q", got)
	}
}

func TestDefaultUserAgentApplied(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("User-Agent")
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	var got map[string]any
	c := NewClient(0, nil, nil)
	if err := c.JSON(context.Background(), "test.ua", srv.URL, &got); err != nil {
		t.Fatalf("JSON returned error: %v", err)
	}
	if seen != UserAgent {
		t.Fatalf("User-Agent = %q, want %q", seen, UserAgent)
	}
}

func TestStatusErrorCarriesTruncatedSnippet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(strings.Repeat("x", 500)))
	}))
	defer srv.Close()

	c := NewClient(0, nil, nil)
	_, err := c.Text(context.Background(), "test.status", srv.URL)
	if err == nil {
		t.Fatal("expected status error")
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error %T is not a StatusError", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusServiceUnavailable)
	}
	if statusErr.URL != srv.URL {
		t.Fatalf("URL = %q, want %q", statusErr.URL, srv.URL)
	}
	if len(statusErr.Snippet) != snippetLimit {
		t.Fatalf("snippet length = %d, want %d", len(statusErr.Snippet), snippetLimit)
	}
}

func TestTimeoutErrorMatchesDeadlineExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := NewClient(50*time.Millisecond, nil, nil)
	var got map[string]any
	err := c.JSON(context.Background(), "test.timeout", srv.URL, &got)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("error %T is not a TimeoutError", err)
	}
	if timeoutErr.Limit != 50*time.Millisecond {
		t.Fatalf("Limit = %s, want 50ms", timeoutErr.Limit)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error %v does not match context.DeadlineExceeded", err)
	}
}
