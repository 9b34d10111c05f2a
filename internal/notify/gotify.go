// Package notify pushes activity alerts to a Gotify server. An unconfigured
// notifier swallows every call so watch mode works without one.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"actcal/internal/model"
	"actcal/internal/timefmt"
)

const (
	priorityDefault = 4
	priorityGacha   = 6
)

// Notifier posts messages to one Gotify server.
type Notifier struct {
	serverURL string
	token     string
	client    *http.Client
}

// NewNotifier builds a notifier. Empty url or token yields a disabled
// notifier rather than an error.
func NewNotifier(serverURL, token string) *Notifier {
	return &Notifier{
		serverURL: serverURL,
		token:     token,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Enabled reports whether pushes will actually be sent.
func (n *Notifier) Enabled() bool {
	return n != nil && n.serverURL != "" && n.token != ""
}

// Push posts one message. Disabled notifiers return nil immediately.
func (n *Notifier) Push(ctx context.Context, title, message string, priority int) error {
	if !n.Enabled() {
		return nil
	}

	url := strings.TrimRight(n.serverURL, "/") + "/message"
	body, err := json.Marshal(map[string]any{
		"title":    title,
		"message":  message,
		"priority": priority,
	})
	if err != nil {
		return fmt.Errorf("gotify: marshal failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("gotify: create request failed: %w", err)
	}
	req.Header.Set("X-Gotify-Token", n.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("gotify: send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gotify: server returned %d", resp.StatusCode)
	}
	return nil
}

// AnnounceEvents pushes a digest of newly observed events for one game.
// Batches containing a gacha banner go out at a higher priority.
func (n *Notifier) AnnounceEvents(ctx context.Context, game model.Game, events []model.CalendarEvent) error {
	if !n.Enabled() || len(events) == 0 {
		return nil
	}

	priority := priorityDefault
	var b strings.Builder
	for _, ev := range events {
		if ev.IsGacha {
			priority = priorityGacha
		}
		fmt.Fprintf(&b, "%s (%s - %s)\n", ev.Title, shortTime(ev.StartTime), shortTime(ev.EndTime))
	}

	title := fmt.Sprintf("%s: %d new events", game.DisplayName(), len(events))
	if len(events) == 1 {
		title = fmt.Sprintf("%s: new event", game.DisplayName())
	}
	return n.Push(ctx, title, strings.TrimRight(b.String(), "\n"), priority)
}

func shortTime(iso string) string {
	t, err := timefmt.ParseISO(iso)
	if err != nil {
		return iso
	}
	return t.Format("Jan 2 15:04")
}
