// Package match pairs loosely-titled activities with their detail records.
// Publishers rarely reuse the exact same title across their list and content
// endpoints, so candidates are reduced to normalized keys and scored, lower
// winning.
package match

import (
	"strings"
	"unicode/utf8"

	"actcal/internal/anntext"
	"actcal/internal/model"
)

// quoteGlyphs are stripped from keys regardless of style. Publishers quote
// banner names with whatever glyph set their CMS prefers.
var quoteGlyphs = map[rune]struct{}{
	'"': {}, '\'': {},
	'“': {}, '”': {}, '‘': {}, '’': {},
	'「': {}, '」': {}, '『': {}, '』': {},
	'【': {}, '】': {}, '《': {}, '》': {}, '〈': {}, '〉': {},
}

// NormalizeKey reduces a title to its matchable form: tags and entities
// stripped, lowercased, all whitespace and quote glyphs removed.
func NormalizeKey(title string) string {
	text := strings.ToLower(anntext.StripHTML(title))
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == ' ' {
			continue
		}
		if _, quoted := quoteGlyphs[r]; quoted {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NewCandidate builds a ContentCandidate with its key precomputed.
func NewCandidate(title, banner, content string) model.ContentCandidate {
	return model.ContentCandidate{
		Title:   title,
		Key:     NormalizeKey(title),
		Banner:  banner,
		Content: content,
	}
}

// scoreKeys returns the base score for a candidate key against an activity
// key. Exact equality scores 0; containment scores 10 or 30 plus the rune
// length difference; unrelated keys are excluded.
func scoreKeys(activityKey, candidateKey string) (int, bool) {
	if candidateKey == "" {
		return 0, false
	}
	switch {
	case activityKey == candidateKey:
		return 0, true
	case strings.Contains(candidateKey, activityKey):
		return 10 + utf8.RuneCountInString(candidateKey) - utf8.RuneCountInString(activityKey), true
	case strings.Contains(activityKey, candidateKey):
		return 30 + utf8.RuneCountInString(activityKey) - utf8.RuneCountInString(candidateKey), true
	}
	return 0, false
}

// Best finds the lowest-scoring candidate for an activity title. An exact
// key match wins outright, enriched or not. Among containment matches,
// candidates with an empty body are penalized by 1000 and candidates
// without a banner by 100, so a looser match with real content beats a
// tighter one with none. Ties keep the earliest candidate. An empty title
// or pool yields no match; enrichment is simply omitted.
func Best(activityTitle string, pool []model.ContentCandidate) (model.ContentCandidate, bool) {
	activityKey := NormalizeKey(activityTitle)
	if activityKey == "" || len(pool) == 0 {
		return model.ContentCandidate{}, false
	}

	bestIdx := -1
	bestScore := 0
	for i, cand := range pool {
		base, ok := scoreKeys(activityKey, cand.Key)
		if !ok {
			continue
		}
		if base == 0 {
			return cand, true
		}
		score := base
		if cand.Content == "" {
			score += 1000
		}
		if cand.Banner == "" {
			score += 100
		}
		if bestIdx == -1 || score < bestScore {
			bestIdx = i
			bestScore = score
		}
	}
	if bestIdx == -1 {
		return model.ContentCandidate{}, false
	}
	return pool[bestIdx], true
}
