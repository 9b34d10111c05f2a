package fetch

import (
	"fmt"
	"time"
)

// StatusError reports a non-success upstream response. The body snippet is
// truncated to snippetLimit bytes so publisher error pages stay readable in
// logs.
type StatusError struct {
	URL        string
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("upstream %s returned %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s returned %d: %s", e.URL, e.StatusCode, e.Snippet)
}

// TimeoutError reports a request aborted after the configured duration. It
// unwraps to the underlying deadline error so errors.Is against
// context.DeadlineExceeded keeps working.
type TimeoutError struct {
	URL   string
	Limit time.Duration
	Err   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("upstream request to %s timed out after %s", e.URL, e.Limit)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}
