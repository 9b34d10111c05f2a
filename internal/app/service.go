// Package app exposes the operations the CLI and the background warmer
// share: per-game snapshots served through the freshness cache.
package app

import (
	"context"
	"fmt"
	"time"

	"actcal/internal/cache"
	"actcal/internal/logging"
	"actcal/internal/model"
)

// Fetcher runs one full pipeline pass for a game.
type Fetcher interface {
	Fetch(ctx context.Context, game model.Game) (*model.Snapshot, error)
}

// Service answers event and version queries from the cache, running a
// pipeline only when the cached snapshot for that game has expired.
// Concurrent callers for the same game share a single pipeline run.
type Service struct {
	fetcher Fetcher
	store   *cache.Store
	ttl     time.Duration
	log     *logging.Logger
}

// NewService wires a service. A ttl of zero or less disables reuse so every
// call runs the pipeline.
func NewService(fetcher Fetcher, store *cache.Store, ttl time.Duration, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{
		fetcher: fetcher,
		store:   store,
		ttl:     ttl,
		log:     log,
	}
}

func snapshotKey(game model.Game) string {
	return "snapshot:" + game.String()
}

// Snapshot returns the cached snapshot for game, running the pipeline on a
// miss. Pipeline failures are returned to every waiting caller and leave
// the cache empty, so the next call tries again.
func (s *Service) Snapshot(ctx context.Context, game model.Game) (*model.Snapshot, error) {
	if game == model.GameUnknown {
		return nil, fmt.Errorf("%w: %d", model.ErrUnknownGame, int(game))
	}
	v, err := s.store.GetOrSet(snapshotKey(game), s.ttl, func() (any, error) {
		return s.fetcher.Fetch(ctx, game)
	})
	if err != nil {
		return nil, err
	}
	snap, ok := v.(*model.Snapshot)
	if !ok {
		return nil, fmt.Errorf("cache entry for %s holds %T", game, v)
	}
	return snap, nil
}

// Events returns the normalized event list for game.
func (s *Service) Events(ctx context.Context, game model.Game) ([]model.CalendarEvent, error) {
	snap, err := s.Snapshot(ctx, game)
	if err != nil {
		return nil, err
	}
	return snap.Events, nil
}

// Version returns the resolved version notice for game, which may be nil.
func (s *Service) Version(ctx context.Context, game model.Game) (*model.GameVersionInfo, error) {
	snap, err := s.Snapshot(ctx, game)
	if err != nil {
		return nil, err
	}
	return snap.Version, nil
}

// ForceRefresh drops the cached snapshot for game and fetches a new one.
// The background warmer calls this on its schedule.
func (s *Service) ForceRefresh(ctx context.Context, game model.Game) (*model.Snapshot, error) {
	s.store.Invalidate(snapshotKey(game))
	return s.Snapshot(ctx, game)
}
