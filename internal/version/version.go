// Package version picks the currently relevant "version update" notice for
// a game and extracts a human-readable version label from it.
package version

import (
	"regexp"
	"strings"
	"time"
)

// Notice is one version-update announcement reduced to what the resolver
// needs. Start and End are instants parsed by the owning pipeline.
type Notice struct {
	AnnID    string
	Title    string
	Subtitle string
	Start    time.Time
	End      time.Time
}

// Resolved is the winning notice together with its extracted label.
type Resolved struct {
	Notice  Notice
	Version string
}

// KeywordFilter reports whether a title announces a version update.
// Exclusions are checked first so maintenance notices that share the
// inclusion vocabulary never qualify.
type KeywordFilter struct {
	Include []string
	Exclude []string
}

// Match reports whether title passes the filter.
func (f KeywordFilter) Match(title string) bool {
	for _, ex := range f.Exclude {
		if strings.Contains(title, ex) {
			return false
		}
	}
	for _, in := range f.Include {
		if strings.Contains(title, in) {
			return true
		}
	}
	return false
}

var (
	// 「NAME」更新说明 with optional version digits between quote and keyword.
	quotedLabelPattern = regexp.MustCompile(`[「『“]([^「」『』“”]+)[」』”]\s*(?:\d+(?:\.\d+)*\s*)?(?:版本)?更新(?:说明|公告)`)
	numberLabelPattern = regexp.MustCompile(`(\d+(?:\.\d+)+)\s*版本`)
	vLabelPattern      = regexp.MustCompile(`\b[Vv](\d+(?:\.\d+)*)\b`)
)

// ExtractLabel pulls a version label out of notice text. Patterns are tried
// in order: quoted name before an update keyword, a dotted number before
// 版本, then a V-prefixed number.
func ExtractLabel(text string) (string, bool) {
	if m := quotedLabelPattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := numberLabelPattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := vLabelPattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// Resolve picks the notice that is currently, imminently, or most recently
// relevant at now: any active notice wins, latest start first; else the
// upcoming notice with the earliest start; else the past notice with the
// latest end. Notices without a strictly ordered window are skipped. A
// winner whose title and subtitle yield no label resolves to nothing; a
// label-less notice is not reported.
func Resolve(notices []Notice, now time.Time) (Resolved, bool) {
	var (
		active, upcoming, past          *Notice
		hasActive, hasUpcoming, hasPast bool
	)
	for i := range notices {
		n := notices[i]
		if !n.Start.Before(n.End) {
			continue
		}
		switch {
		case !now.Before(n.Start) && now.Before(n.End):
			if !hasActive || n.Start.After(active.Start) {
				active, hasActive = &notices[i], true
			}
		case n.Start.After(now):
			if !hasUpcoming || n.Start.Before(upcoming.Start) {
				upcoming, hasUpcoming = &notices[i], true
			}
		default:
			if !hasPast || n.End.After(past.End) {
				past, hasPast = &notices[i], true
			}
		}
	}

	var winner *Notice
	switch {
	case hasActive:
		winner = active
	case hasUpcoming:
		winner = upcoming
	case hasPast:
		winner = past
	default:
		return Resolved{}, false
	}

	label, ok := ExtractLabel(winner.Title)
	if !ok {
		label, ok = ExtractLabel(winner.Subtitle)
	}
	if !ok {
		return Resolved{}, false
	}
	return Resolved{Notice: *winner, Version: label}, true
}
