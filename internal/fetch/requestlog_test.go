package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRequestLogAppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "requests.log")
	rl, err := OpenRequestLog(path)
	if err != nil {
		t.Fatalf("OpenRequestLog: %v", err)
	}
	rl.Append("genshin.list", "https://example.com/list", 200, 120*time.Millisecond, nil)
	rl.Append("genshin.list", "https://example.com/list", 502, 40*time.Millisecond, errors.New("upstream broke"))
	if err := rl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first, second RequestLogEntry
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("unmarshal first line: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("unmarshal second line: %v", err)
	}
	if first.Label != "genshin.list" || first.StatusCode != 200 || first.DurationMS != 120 {
		t.Fatalf("first entry = %+v", first)
	}
	if first.Timestamp == "" {
		t.Fatal("first entry has no timestamp")
	}
	if second.StatusCode != 502 || second.Error != "upstream broke" {
		t.Fatalf("second entry = %+v", second)
	}
}

func TestRequestLogNilReceiverIsNoop(t *testing.T) {
	var rl *RequestLog
	rl.Append("label", "https://example.com", 200, time.Millisecond, nil)
	if err := rl.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
}

func TestClientWritesRequestLog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "requests.log")
	rl, err := OpenRequestLog(path)
	if err != nil {
		t.Fatalf("OpenRequestLog: %v", err)
	}
	c := NewClient(0, nil, rl)
	var got map[string]any
	if err := c.JSON(context.Background(), "test.logged", srv.URL, &got); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if err := rl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var entry RequestLogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry.Label != "test.logged" || entry.StatusCode != 200 || entry.URL != srv.URL {
		t.Fatalf("entry = %+v", entry)
	}
}
