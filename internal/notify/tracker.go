package notify

import (
	"sync"

	"actcal/internal/model"
)

// Tracker remembers which event ids have been observed per game so watch
// mode only announces genuinely new ones. The first observation of a game
// is a silent baseline; announcing a full catalog on startup helps nobody.
type Tracker struct {
	mu   sync.Mutex
	seen map[model.Game]map[string]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{seen: make(map[model.Game]map[string]struct{})}
}

// Diff records the given events as observed and returns the ones that were
// not seen before. A game's first call records everything and returns nil.
func (t *Tracker) Diff(game model.Game, events []model.CalendarEvent) []model.CalendarEvent {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids, ok := t.seen[game]
	if !ok {
		ids = make(map[string]struct{}, len(events))
		t.seen[game] = ids
		for _, ev := range events {
			ids[ev.ID] = struct{}{}
		}
		return nil
	}

	var fresh []model.CalendarEvent
	for _, ev := range events {
		if _, ok := ids[ev.ID]; ok {
			continue
		}
		ids[ev.ID] = struct{}{}
		fresh = append(fresh, ev)
	}
	return fresh
}
