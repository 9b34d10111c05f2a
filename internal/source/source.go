// Package source implements the six per-game announcement pipelines. Every
// pipeline follows the same state machine: fetch the primary endpoint
// (fatal on failure) and any secondaries concurrently (caught, degrade to
// no enrichment), filter, recover time ranges, merge enrichment, dedupe,
// then sort deterministically.
package source

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"actcal/internal/fetch"
	"actcal/internal/logging"
	"actcal/internal/model"
	"actcal/internal/timefmt"
	"actcal/internal/version"
)

// Pipeline runs per-game fetches. One instance serves every game and holds
// no per-run state beyond the memoized discovery value.
type Pipeline struct {
	client *fetch.Client
	cfg    *model.Config
	log    *logging.Logger
	now    func() time.Time

	wutheringChannel *fetch.Discoverer
}

// NewPipeline wires a pipeline against the given fetch client and config.
// log may be nil.
func NewPipeline(client *fetch.Client, cfg *model.Config, log *logging.Logger) *Pipeline {
	if cfg == nil {
		cfg = &model.Config{}
	}
	if log == nil {
		log = logging.Discard()
	}
	p := &Pipeline{
		client: client,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
	p.wutheringChannel = newWutheringDiscoverer(client)
	return p
}

// Fetch runs one full pipeline pass for game and returns its snapshot.
// Adding a game means adding a case here; the default branch only fires
// for values outside the enum.
func (p *Pipeline) Fetch(ctx context.Context, game model.Game) (*model.Snapshot, error) {
	var (
		events []model.CalendarEvent
		ver    *model.GameVersionInfo
		err    error
	)
	switch game {
	case model.GameGenshin:
		events, ver, err = p.fetchGenshin(ctx)
	case model.GameArknights:
		events, ver, err = p.fetchArknights(ctx)
	case model.GameWutheringWaves:
		events, ver, err = p.fetchWuthering(ctx)
	case model.GameBlueArchive:
		events, ver, err = p.fetchBlueArchive(ctx)
	case model.GameAzurLane:
		events, ver, err = p.fetchAzurLane(ctx)
	case model.GameTowerOfFantasy:
		events, ver, err = p.fetchTower(ctx)
	default:
		return nil, fmt.Errorf("%w: %d", model.ErrUnknownGame, int(game))
	}
	if err != nil {
		return nil, err
	}
	p.log.WithGame(game).WithField("events", len(events)).Debug("pipeline run complete")
	return &model.Snapshot{
		Game:      game,
		Events:    events,
		Version:   ver,
		FetchedAt: p.now().UTC(),
	}, nil
}

// finalize applies the shared tail of every pipeline: drop events without a
// strictly ordered window, merge duplicates, sort.
func (p *Pipeline) finalize(game model.Game, candidates []model.CalendarEvent) []model.CalendarEvent {
	kept := candidates[:0]
	for _, ev := range candidates {
		if !validWindow(ev) {
			p.log.WithGame(game).WithField("id", ev.ID).Debug("dropped event without valid window")
			continue
		}
		kept = append(kept, ev)
	}
	events := dedupe(kept)
	sortEvents(events)
	return events
}

// eventID returns the publisher id, or a stable hash of the title and a
// discriminating field when the publisher provides none.
func eventID(explicit, title, discriminator string) string {
	if explicit != "" {
		return explicit
	}
	h := fnv.New64a()
	h.Write([]byte(title))
	h.Write([]byte{'|'})
	h.Write([]byte(discriminator))
	return strconv.FormatUint(h.Sum64(), 10)
}

// noticeFromWindow builds a resolver input from wire timestamps, skipping
// windows that do not parse.
func noticeFromWindow(annID, title, subtitle, startISO, endISO string) (version.Notice, bool) {
	start, err := timefmt.ParseISO(startISO)
	if err != nil {
		return version.Notice{}, false
	}
	end, err := timefmt.ParseISO(endISO)
	if err != nil {
		return version.Notice{}, false
	}
	return version.Notice{
		AnnID:    annID,
		Title:    title,
		Subtitle: subtitle,
		Start:    start,
		End:      end,
	}, true
}

// resolveVersion runs the notice resolver and shapes the winner for the
// wire. Nil when nothing qualifies or the winner carries no label.
func resolveVersion(game model.Game, notices []version.Notice, now time.Time) *model.GameVersionInfo {
	resolved, ok := version.Resolve(notices, now)
	if !ok {
		return nil
	}
	return &model.GameVersionInfo{
		Game:      game,
		Version:   resolved.Version,
		StartTime: timefmt.FormatISO(resolved.Notice.Start),
		EndTime:   timefmt.FormatISO(resolved.Notice.End),
		AnnID:     resolved.Notice.AnnID,
		Title:     resolved.Notice.Title,
	}
}
