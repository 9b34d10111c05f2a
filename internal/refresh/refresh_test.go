package refresh

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"actcal/internal/metrics"
	"actcal/internal/model"
	"actcal/internal/notify"
)

type refresherFunc func(ctx context.Context, game model.Game) (*model.Snapshot, error)

func (f refresherFunc) ForceRefresh(ctx context.Context, game model.Game) (*model.Snapshot, error) {
	return f(ctx, game)
}

func TestSweepWarmsConfiguredGames(t *testing.T) {
	var mu sync.Mutex
	var seen []model.Game
	refresher := refresherFunc(func(ctx context.Context, game model.Game) (*model.Snapshot, error) {
		mu.Lock()
		seen = append(seen, game)
		mu.Unlock()
		return &model.Snapshot{Game: game}, nil
	})

	games := []model.Game{model.GameGenshin, model.GameBlueArchive}
	w := NewWarmer(refresher, games, notify.NewNotifier("", ""), nil, nil)
	w.Sweep(context.Background())

	if len(seen) != 2 || seen[0] != model.GameGenshin || seen[1] != model.GameBlueArchive {
		t.Fatalf("refreshed games = %v, want configured order", seen)
	}
}

func TestSweepDefaultsToAllGames(t *testing.T) {
	count := 0
	refresher := refresherFunc(func(ctx context.Context, game model.Game) (*model.Snapshot, error) {
		count++
		return &model.Snapshot{Game: game}, nil
	})
	w := NewWarmer(refresher, nil, nil, nil, nil)
	w.Sweep(context.Background())
	if count != len(model.Games()) {
		t.Fatalf("refreshed %d games, want %d", count, len(model.Games()))
	}
}

func TestSweepIsolatesFailures(t *testing.T) {
	var attempted []model.Game
	refresher := refresherFunc(func(ctx context.Context, game model.Game) (*model.Snapshot, error) {
		attempted = append(attempted, game)
		if game == model.GameArknights {
			return nil, errors.New("bulletin endpoint down")
		}
		return &model.Snapshot{Game: game}, nil
	})

	games := []model.Game{model.GameGenshin, model.GameArknights, model.GameAzurLane}
	w := NewWarmer(refresher, games, nil, nil, nil)
	w.Sweep(context.Background())

	if len(attempted) != 3 {
		t.Fatalf("attempted = %v, want the failure skipped over", attempted)
	}
}

func TestSweepAnnouncesOnlyNewEvents(t *testing.T) {
	var mu sync.Mutex
	var messages []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg struct {
			Message string `json:"message"`
		}
		json.NewDecoder(r.Body).Decode(&msg)
		mu.Lock()
		messages = append(messages, msg.Message)
		mu.Unlock()
	}))
	defer srv.Close()

	events := []model.CalendarEvent{
		{ID: "1", Title: "初始活动", StartTime: "2026-03-01T10:00:00+08:00", EndTime: "2026-03-15T04:00:00+08:00"},
	}
	refresher := refresherFunc(func(ctx context.Context, game model.Game) (*model.Snapshot, error) {
		return &model.Snapshot{Game: game, Events: events}, nil
	})

	w := NewWarmer(refresher, []model.Game{model.GameGenshin}, notify.NewNotifier(srv.URL, "tok"), nil, nil)

	w.Sweep(context.Background())
	if len(messages) != 0 {
		t.Fatalf("baseline sweep pushed %v", messages)
	}

	events = append(events, model.CalendarEvent{
		ID: "2", Title: "新增祈愿", StartTime: "2026-03-05T10:00:00+08:00", EndTime: "2026-03-19T04:00:00+08:00", IsGacha: true,
	})
	w.Sweep(context.Background())
	if len(messages) != 1 {
		t.Fatalf("second sweep pushed %d messages, want 1", len(messages))
	}
	if !strings.Contains(messages[0], "新增祈愿") || strings.Contains(messages[0], "初始活动") {
		t.Errorf("digest = %q, want only the new event", messages[0])
	}

	w.Sweep(context.Background())
	if len(messages) != 1 {
		t.Fatalf("unchanged sweep pushed again: %v", messages)
	}
}

func TestSweepRecordsMetrics(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	refresher := refresherFunc(func(ctx context.Context, game model.Game) (*model.Snapshot, error) {
		if game == model.GameArknights {
			return nil, errors.New("down")
		}
		return &model.Snapshot{Game: game, Events: make([]model.CalendarEvent, 3)}, nil
	})

	w := NewWarmer(refresher, []model.Game{model.GameGenshin, model.GameArknights}, nil, m, nil)
	w.Sweep(context.Background())

	if got := testutil.ToFloat64(m.RefreshRuns.WithLabelValues("genshin", "ok")); got != 1 {
		t.Errorf("genshin ok runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RefreshRuns.WithLabelValues("arknights", "error")); got != 1 {
		t.Errorf("arknights error runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.EventCount.WithLabelValues("genshin")); got != 3 {
		t.Errorf("genshin event gauge = %v, want 3", got)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	w := NewWarmer(refresherFunc(func(ctx context.Context, game model.Game) (*model.Snapshot, error) {
		return &model.Snapshot{Game: game}, nil
	}), []model.Game{model.GameGenshin}, nil, nil, nil)

	if err := w.Start(context.Background(), "not a schedule"); err == nil {
		t.Fatal("Start accepted a malformed schedule")
	}
}

func TestStartRunsImmediateSweepThenStops(t *testing.T) {
	count := 0
	w := NewWarmer(refresherFunc(func(ctx context.Context, game model.Game) (*model.Snapshot, error) {
		count++
		return &model.Snapshot{Game: game}, nil
	}), []model.Game{model.GameGenshin}, nil, nil, nil)

	if err := w.Start(context.Background(), ""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
	if count != 1 {
		t.Fatalf("immediate sweep count = %d, want 1", count)
	}
}

func TestGamesFromNames(t *testing.T) {
	got := GamesFromNames([]string{"genshin", "wuwa", "genshin", "nope", " toweroffantasy "})
	want := []model.Game{model.GameGenshin, model.GameWutheringWaves, model.GameTowerOfFantasy}
	if len(got) != len(want) {
		t.Fatalf("games = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("games = %v, want %v", got, want)
		}
	}
}
