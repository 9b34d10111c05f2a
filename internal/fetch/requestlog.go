package fetch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RequestLogEntry is a single structured record written to the request log
// file. Each field uses snake_case JSON keys for easy grep/jq consumption.
type RequestLogEntry struct {
	Timestamp  string `json:"ts"`
	Label      string `json:"label"`
	URL        string `json:"url"`
	StatusCode int    `json:"status_code,omitempty"` // 0 = transport error
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// RequestLog writes structured JSON-line entries to a dedicated log file.
// All methods are safe for concurrent use. A nil *RequestLog is a valid
// no-op receiver, so callers never have to guard logging.
type RequestLog struct {
	mu  sync.Mutex
	enc *json.Encoder
	f   *os.File
}

// OpenRequestLog opens (or creates) the request log file at logPath.
// The directory is created with mode 0700 if it does not exist.
func OpenRequestLog(logPath string) (*RequestLog, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return nil, fmt.Errorf("request log: mkdir %s: %w", filepath.Dir(logPath), err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("request log: open %s: %w", logPath, err)
	}
	return &RequestLog{f: f, enc: json.NewEncoder(f)}, nil
}

// Append records a completed request. Write failures are silently ignored;
// a logging error must never fail a fetch.
func (l *RequestLog) Append(label, url string, statusCode int, duration time.Duration, reqErr error) {
	if l == nil {
		return
	}
	e := RequestLogEntry{
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Label:      label,
		URL:        url,
		StatusCode: statusCode,
		DurationMS: duration.Milliseconds(),
	}
	if reqErr != nil {
		e.Error = reqErr.Error()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(e)
}

// Close closes the underlying log file.
func (l *RequestLog) Close() error {
	if l == nil || l.f == nil {
		return nil
	}
	return l.f.Close()
}
