// Package anntext recovers start/end time ranges from unstructured
// announcement bodies. Publishers embed activity windows in HTML prose
// rather than structured fields, so extraction is tiered: an explicit
// "start ~ end" pattern first, then keyword-prefixed times, then a
// best-effort scan of every date-time shaped substring.
package anntext

import (
	"fmt"
	stdhtml "html"
	"regexp"
	"strconv"
	"strings"

	"actcal/internal/model"

	"golang.org/x/net/html"
)

var (
	// tokenPattern is the strict date-time shape accepted anywhere in a body.
	// Time-of-day is required; seconds are optional.
	tokenPattern = regexp.MustCompile(`(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})\s*(\d{1,2}):(\d{2})(?::(\d{2}))?`)

	rangePattern = regexp.MustCompile(
		`(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})\s*(\d{1,2}):(\d{2})(?::(\d{2}))?` +
			`\s*(?:-|~|～|—|–|至)\s*` +
			`(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})\s*(\d{1,2}):(\d{2})(?::(\d{2}))?`)

	startKeyPattern = regexp.MustCompile(`(?:开放时间|活动时间|开始时间)[\s:：]*(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})\s*(\d{1,2}):(\d{2})(?::(\d{2}))?`)
	endKeyPattern   = regexp.MustCompile(`(?:结束时间|截止时间)[\s:：]*(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})\s*(\d{1,2}):(\d{2})(?::(\d{2}))?`)

	fuzzyStartPattern = regexp.MustCompile(`版本更新后|更新维护后|维护后开放|维护结束后`)

	whitespacePattern = regexp.MustCompile(`[\s\x{00A0}\x{3000}]+`)
)

// StripHTML reduces an HTML or entity-escaped HTML body to plain text with
// whitespace runs collapsed to single spaces. Script and style content is
// dropped.
func StripHTML(body string) string {
	s := stdhtml.UnescapeString(body)
	if strings.ContainsAny(s, "<&") {
		s = stripTags(s)
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

func stripTags(s string) string {
	var b strings.Builder
	skip := 0
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// normalizeToken converts matched date-time fields to canonical naive
// "YYYY-MM-DD HH:MM:SS" form. Returns false for calendar-impossible values
// so malformed tokens are skipped silently.
func normalizeToken(year, month, day, hour, minute, second string) (string, bool) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	h, _ := strconv.Atoi(hour)
	mi, _ := strconv.Atoi(minute)
	sec := 0
	if second != "" {
		sec, _ = strconv.Atoi(second)
	}
	if mo < 1 || mo > 12 || d < 1 || d > 31 || h > 23 || mi > 59 || sec > 59 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", y, mo, d, h, mi, sec), true
}

// ExtractRange recovers a start/end pair from an announcement body.
// Strategies are tried in order, first success wins: an explicit
// "start separator end" range, then keyword-prefixed start and end times
// found independently, then all date-time tokens in document order (one
// token is treated as the end, two or more as start then end). Either side
// of the result may be empty.
func ExtractRange(body string) model.TimeRange {
	text := StripHTML(body)
	if text == "" {
		return model.TimeRange{}
	}

	if m := rangePattern.FindStringSubmatch(text); m != nil {
		start, okStart := normalizeToken(m[1], m[2], m[3], m[4], m[5], m[6])
		end, okEnd := normalizeToken(m[7], m[8], m[9], m[10], m[11], m[12])
		if okStart && okEnd {
			return model.TimeRange{Start: start, End: end}
		}
	}

	var keyed model.TimeRange
	if m := startKeyPattern.FindStringSubmatch(text); m != nil {
		if tok, ok := normalizeToken(m[1], m[2], m[3], m[4], m[5], m[6]); ok {
			keyed.Start = tok
		}
	}
	if m := endKeyPattern.FindStringSubmatch(text); m != nil {
		if tok, ok := normalizeToken(m[1], m[2], m[3], m[4], m[5], m[6]); ok {
			keyed.End = tok
		}
	}
	if keyed.Start != "" || keyed.End != "" {
		return keyed
	}

	tokens := collectTokens(text)
	switch len(tokens) {
	case 0:
		return model.TimeRange{}
	case 1:
		return model.TimeRange{End: tokens[0]}
	default:
		return model.TimeRange{Start: tokens[0], End: tokens[1]}
	}
}

// collectTokens returns every valid date-time token in document order,
// deduplicated.
func collectTokens(text string) []string {
	var tokens []string
	seen := make(map[string]struct{})
	for _, m := range tokenPattern.FindAllStringSubmatch(text, -1) {
		tok, ok := normalizeToken(m[1], m[2], m[3], m[4], m[5], m[6])
		if !ok {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}

// HasFuzzyStart reports whether a body describes its start as "after the
// version maintenance" instead of a clock time. Callers fall back to a
// structured start anchor when this is set and no textual start was found.
func HasFuzzyStart(body string) bool {
	return fuzzyStartPattern.MatchString(StripHTML(body))
}
