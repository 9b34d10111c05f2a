package source

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"actcal/internal/model"
	"actcal/internal/timefmt"
)

// validWindow reports whether an event's end parses to an instant strictly
// after its start. Events failing this are never emitted.
func validWindow(ev model.CalendarEvent) bool {
	start, err := timefmt.ParseISO(ev.StartTime)
	if err != nil {
		return false
	}
	end, err := timefmt.ParseISO(ev.EndTime)
	if err != nil {
		return false
	}
	return start.Before(end)
}

// isoBefore orders two wire timestamps as instants, falling back to string
// order when either side does not parse.
func isoBefore(a, b string) bool {
	ta, errA := timefmt.ParseISO(a)
	tb, errB := timefmt.ParseISO(b)
	if errA == nil && errB == nil {
		return ta.Before(tb)
	}
	return a < b
}

// dedupe merges events sharing an id: the widest window wins (earliest
// start, latest end) and non-empty banner/content is preferred from either
// side. First-seen order is preserved for the later sort's stability.
func dedupe(events []model.CalendarEvent) []model.CalendarEvent {
	byID := make(map[string]model.CalendarEvent, len(events))
	order := make([]string, 0, len(events))
	for _, ev := range events {
		existing, ok := byID[ev.ID]
		if !ok {
			byID[ev.ID] = ev
			order = append(order, ev.ID)
			continue
		}
		byID[ev.ID] = mergeEvents(existing, ev)
	}
	out := make([]model.CalendarEvent, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

func mergeEvents(a, b model.CalendarEvent) model.CalendarEvent {
	merged := a
	if isoBefore(b.StartTime, a.StartTime) {
		merged.StartTime = b.StartTime
	}
	if isoBefore(a.EndTime, b.EndTime) {
		merged.EndTime = b.EndTime
	}
	if merged.Title == "" {
		merged.Title = b.Title
	}
	if merged.Banner == "" {
		merged.Banner = b.Banner
	}
	if merged.Content == "" {
		merged.Content = b.Content
	}
	merged.IsGacha = a.IsGacha || b.IsGacha
	return merged
}

// eventCollator breaks sort ties on event ids so output order is stable
// across runs regardless of upstream response order.
var eventCollator = collate.New(language.Und)

// sortEvents orders events ascending by start, then end, then id.
func sortEvents(events []model.CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.StartTime != b.StartTime {
			return isoBefore(a.StartTime, b.StartTime)
		}
		if a.EndTime != b.EndTime {
			return isoBefore(a.EndTime, b.EndTime)
		}
		return eventCollator.CompareString(a.ID, b.ID) < 0
	})
}
