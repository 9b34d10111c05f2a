// Package refresh keeps game snapshots warm on a cron schedule and
// announces events that appear between sweeps.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"actcal/internal/logging"
	"actcal/internal/metrics"
	"actcal/internal/model"
	"actcal/internal/notify"
)

// DefaultSchedule sweeps four times an hour, well inside any sane cache TTL.
const DefaultSchedule = "*/15 * * * *"

// Refresher forces a fresh snapshot for one game.
type Refresher interface {
	ForceRefresh(ctx context.Context, game model.Game) (*model.Snapshot, error)
}

// Warmer periodically refreshes a set of games. One game failing never
// stops the sweep for the rest.
type Warmer struct {
	service  Refresher
	games    []model.Game
	notifier *notify.Notifier
	tracker  *notify.Tracker
	metrics  *metrics.Metrics
	log      *logging.Logger
	cron     *cron.Cron

	// perGameTimeout bounds one pipeline run inside a sweep.
	perGameTimeout time.Duration
}

// NewWarmer wires a warmer over the given games, defaulting to all of them.
func NewWarmer(service Refresher, games []model.Game, notifier *notify.Notifier, m *metrics.Metrics, log *logging.Logger) *Warmer {
	if len(games) == 0 {
		games = model.Games()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Warmer{
		service:        service,
		games:          games,
		notifier:       notifier,
		tracker:        notify.NewTracker(),
		metrics:        m,
		log:            log,
		perGameTimeout: time.Minute,
	}
}

// Start runs one immediate sweep so the cache is warm before the first
// tick, then launches the cron loop.
func (w *Warmer) Start(ctx context.Context, schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { w.Sweep(ctx) }); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	w.cron = c
	w.Sweep(ctx)
	c.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (w *Warmer) Stop() {
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

// Sweep refreshes every configured game once under a shared refresh id.
func (w *Warmer) Sweep(ctx context.Context) {
	log := w.log.WithRefreshID(uuid.NewString())
	for _, game := range w.games {
		w.sweepGame(ctx, log, game)
	}
}

func (w *Warmer) sweepGame(ctx context.Context, log *logrus.Entry, game model.Game) {
	runCtx, cancel := context.WithTimeout(ctx, w.perGameTimeout)
	defer cancel()

	snap, err := w.service.ForceRefresh(runCtx, game)
	if err != nil {
		w.metrics.RefreshRun(game.String(), "error")
		log.WithField("game", game.String()).WithError(err).Warn("refresh failed")
		return
	}
	w.metrics.RefreshRun(game.String(), "ok")
	w.metrics.SetEventCount(game.String(), len(snap.Events))
	log.WithField("game", game.String()).WithField("events", len(snap.Events)).Info("refreshed")

	fresh := w.tracker.Diff(game, snap.Events)
	if len(fresh) == 0 {
		return
	}
	if err := w.notifier.AnnounceEvents(ctx, game, fresh); err != nil {
		log.WithField("game", game.String()).WithError(err).Warn("notification failed")
	}
}

// GamesFromNames maps configured game names to their enum values, dropping
// names that resolve to nothing and duplicates.
func GamesFromNames(names []string) []model.Game {
	var games []model.Game
	seen := make(map[model.Game]struct{}, len(names))
	for _, name := range names {
		game := model.ParseGame(name)
		if game == model.GameUnknown {
			continue
		}
		if _, dup := seen[game]; dup {
			continue
		}
		seen[game] = struct{}{}
		games = append(games, game)
	}
	return games
}
