package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync/atomic"
	"testing"
	"time"
)

var (
	testScriptPattern = regexp.MustCompile(`src="([^"]+\.js)"`)
	testTokenPattern  = regexp.MustCompile(`channel/([0-9A-Za-z]{6,})/`)
)

func discoveryServer(t *testing.T, script string, hits *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Write([]byte(`<html><script src="/assets/main.js"></script></html>`))
	})
	mux.HandleFunc("/assets/main.js", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(script))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDiscoverPicksBestScoringToken(t *testing.T) {
	var hits int32
	script := `fetch("channel/abcdef/x");fetch("channel/A1b2C3d4E5f6/x");fetch("channel/aaaaaaaaaaaaaaaaaaaaaa/x")`
	srv := discoveryServer(t, script, &hits)

	c := NewClient(0, nil, nil)
	d := NewDiscoverer(c, "test", srv.URL+"/", testScriptPattern, testTokenPattern, "fallback")
	got, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	// 22 plain lowercase letters score 22; the 12-char mixed token scores
	// 12+10+10 = 32.
	if got != "A1b2C3d4E5f6" {
		t.Fatalf("got %q, want A1b2C3d4E5f6", got)
	}
}

func TestResolveMemoizesDiscoveredValue(t *testing.T) {
	var hits int32
	srv := discoveryServer(t, `load("channel/Key123Key456/wire")`, &hits)

	c := NewClient(0, nil, nil)
	d := NewDiscoverer(c, "test", srv.URL+"/", testScriptPattern, testTokenPattern, "fallback")
	current := time.Now()
	d.now = func() time.Time { return current }

	if got := d.Resolve(context.Background()); got != "Key123Key456" {
		t.Fatalf("first Resolve = %q", got)
	}
	if got := d.Resolve(context.Background()); got != "Key123Key456" {
		t.Fatalf("second Resolve = %q", got)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("bootstrap fetched %d times, want 1", n)
	}

	// Past the memo window the bootstrap page is consulted again.
	current = current.Add(7 * time.Hour)
	if got := d.Resolve(context.Background()); got != "Key123Key456" {
		t.Fatalf("third Resolve = %q", got)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Fatalf("bootstrap fetched %d times after expiry, want 2", n)
	}
}

func TestResolveFallsBackWhenBootstrapFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(0, nil, nil)
	d := NewDiscoverer(c, "test", srv.URL+"/", testScriptPattern, testTokenPattern, "lastknowngood")
	if got := d.Resolve(context.Background()); got != "lastknowngood" {
		t.Fatalf("got %q, want fallback", got)
	}
}

func TestResolveFallsBackWhenNoTokenMatches(t *testing.T) {
	var hits int32
	srv := discoveryServer(t, `console.log("no tokens here")`, &hits)

	c := NewClient(0, nil, nil)
	d := NewDiscoverer(c, "test", srv.URL+"/", testScriptPattern, testTokenPattern, "lastknowngood")
	if got := d.Resolve(context.Background()); got != "lastknowngood" {
		t.Fatalf("got %q, want fallback", got)
	}
	// A failed discovery is not memoized; the next Resolve tries again.
	d.Resolve(context.Background())
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Fatalf("bootstrap fetched %d times, want 2", n)
	}
}
