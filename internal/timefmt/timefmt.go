// Package timefmt converts the timestamp shapes used by publisher backends
// into ISO-8601 strings carrying an explicit UTC offset.
package timefmt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidOffset is returned when an offset string cannot be parsed or is
// out of range.
var ErrInvalidOffset = errors.New("invalid utc offset")

var (
	offsetPattern = regexp.MustCompile(`^(?:UTC|GMT)?([+-])(\d{1,2})(?::?(\d{2}))?$`)
	suffixPattern = regexp.MustCompile(`([+-]\d{2}):?(\d{2})$`)
	naivePattern  = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})(?:[T ](\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)
)

// NormalizeOffset canonicalizes a UTC offset to "+HH:MM" / "-HH:MM" form.
// Accepted inputs include "+08:00", "-0800", "UTC+8", "GMT+08:00" and "Z".
func NormalizeOffset(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidOffset)
	}
	if strings.EqualFold(s, "Z") {
		return "+00:00", nil
	}
	m := offsetPattern.FindStringSubmatch(strings.ToUpper(s))
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidOffset, text)
	}
	hour, err := strconv.Atoi(m[2])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidOffset, text)
	}
	minute := 0
	if m[3] != "" {
		minute, err = strconv.Atoi(m[3])
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidOffset, text)
		}
	}
	if hour > 23 {
		return "", fmt.Errorf("%w: hour out of range in %q", ErrInvalidOffset, text)
	}
	if minute > 59 {
		return "", fmt.Errorf("%w: minute out of range in %q", ErrInvalidOffset, text)
	}
	return fmt.Sprintf("%s%02d:%02d", m[1], hour, minute), nil
}

// OffsetMinutes returns the signed minute count of an offset in any form
// NormalizeOffset accepts.
func OffsetMinutes(offset string) (int, error) {
	canonical, err := NormalizeOffset(offset)
	if err != nil {
		return 0, err
	}
	hour, _ := strconv.Atoi(canonical[1:3])
	minute, _ := strconv.Atoi(canonical[4:6])
	total := hour*60 + minute
	if canonical[0] == '-' {
		total = -total
	}
	return total, nil
}

// formatNaive renders a naivePattern match as "YYYY-MM-DDTHH:MM:SS".
// Missing time-of-day components default to zero.
func formatNaive(m []string) string {
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, minute, second := 0, 0, 0
	if m[4] != "" {
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
		if m[6] != "" {
			second, _ = strconv.Atoi(m[6])
		}
	}
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", year, month, day, hour, minute, second)
}

// ToISOWithOffset renders a publisher timestamp as ISO-8601 with an explicit
// offset. Inputs that already carry a timezone suffix only get their surface
// syntax canonicalized ("+0800" becomes "+08:00", a trailing "Z" is kept);
// the source offset is never substituted for one the publisher supplied.
// Naive inputs are treated as civil time in sourceOffset, which must be in
// canonical "+HH:MM" form. Unrecognized shapes pass through unchanged so
// unknown data is never corrupted.
func ToISOWithOffset(value, sourceOffset string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}

	// Tagged with a trailing Z.
	if strings.HasSuffix(s, "Z") || strings.HasSuffix(s, "z") {
		if m := naivePattern.FindStringSubmatch(s[:len(s)-1]); m != nil {
			return formatNaive(m) + "Z"
		}
		return s
	}

	// Tagged with a numeric offset suffix.
	if loc := suffixPattern.FindStringSubmatchIndex(s); loc != nil && loc[0] > 0 {
		if m := naivePattern.FindStringSubmatch(s[:loc[0]]); m != nil {
			sm := suffixPattern.FindStringSubmatch(s)
			return formatNaive(m) + sm[1] + ":" + sm[2]
		}
	}

	// Naive civil time in the source offset.
	if m := naivePattern.FindStringSubmatch(s); m != nil {
		return formatNaive(m) + sourceOffset
	}
	return s
}

// UnixSecondsToISO renders an epoch-second instant as the local wall-clock
// time of sourceOffset, suffixed with that offset. The result represents the
// same instant as the input.
func UnixSecondsToISO(epochSeconds int64, sourceOffset string) (string, error) {
	minutes, err := OffsetMinutes(sourceOffset)
	if err != nil {
		return "", err
	}
	shifted := time.Unix(epochSeconds, 0).UTC().Add(time.Duration(minutes) * time.Minute)
	return shifted.Format("2006-01-02T15:04:05") + sourceOffset, nil
}

// ParseISO parses an ISO-8601 string produced by this package back into an
// instant. Used for ordering and window checks.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatISO renders an instant in the wire form this package emits, always
// with a numeric offset.
func FormatISO(t time.Time) string {
	return t.Format("2006-01-02T15:04:05-07:00")
}
