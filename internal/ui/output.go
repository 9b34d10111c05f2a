package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"actcal/internal/model"
	"actcal/internal/timefmt"
)

// RunErrorCount and RunWarningCount track errors/warnings during a run.
var RunErrorCount int
var RunWarningCount int

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	fmt.Printf("%s%s%s %s%s\n", ColorGreen, SymbolCheck, ColorReset, msg, ColorReset)
}

// PrintError prints an error message and increments the error counter.
func PrintError(msg string) {
	RunErrorCount++
	fmt.Printf("%s%s%s %s%s\n", ColorRed, SymbolCross, ColorReset, msg, ColorReset)
}

// PrintInfo prints an info message.
func PrintInfo(msg string) {
	fmt.Printf("%s%s%s %s%s\n", ColorBlue, SymbolInfo, ColorReset, msg, ColorReset)
}

// PrintWarning prints a warning message and increments the warning counter.
func PrintWarning(msg string) {
	RunWarningCount++
	fmt.Printf("%s%s%s %s%s\n", ColorYellow, SymbolWarning, ColorReset, msg, ColorReset)
}

// GachaMarker returns the table-cell marker for limited-run banner events.
func GachaMarker(ev model.CalendarEvent) string {
	if !ev.IsGacha {
		return ""
	}
	return ColorPurple + SymbolGacha + ColorReset
}

// ShortTime reduces an ISO-8601 timestamp to "2006-01-02 15:04" in its own
// offset for table cells. Unparseable input is passed through untouched.
func ShortTime(iso string) string {
	t, err := timefmt.ParseISO(iso)
	if err != nil {
		return iso
	}
	return t.Format("2006-01-02 15:04")
}

// relIn renders a time relative to now: "in 3 days" or "2 hours ago".
func relIn(t, now time.Time) string {
	if t.After(now) {
		return "in " + strings.TrimSpace(humanize.RelTime(now, t, "", ""))
	}
	return humanize.RelTime(t, now, "ago", "")
}

// EventStatus returns a colored lifecycle cell for one event relative to now:
// upcoming events report time until start, running events time until end,
// finished events time since end.
func EventStatus(ev model.CalendarEvent, now time.Time) string {
	start, serr := timefmt.ParseISO(ev.StartTime)
	end, eerr := timefmt.ParseISO(ev.EndTime)
	if serr != nil || eerr != nil {
		return ""
	}
	switch {
	case now.Before(start):
		return ColorYellow + "starts " + relIn(start, now) + ColorReset
	case now.Before(end):
		return ColorGreen + "ends " + relIn(end, now) + ColorReset
	default:
		return ColorRed + "ended " + relIn(end, now) + ColorReset
	}
}

// VersionStatus returns a colored lifecycle word for a version notice
// relative to now.
func VersionStatus(ver *model.GameVersionInfo, now time.Time) string {
	if ver == nil {
		return ""
	}
	start, serr := timefmt.ParseISO(ver.StartTime)
	end, eerr := timefmt.ParseISO(ver.EndTime)
	if serr != nil || eerr != nil {
		return ""
	}
	switch {
	case now.Before(start):
		return ColorYellow + "upcoming" + ColorReset
	case now.Before(end):
		return ColorGreen + "live" + ColorReset
	default:
		return ColorRed + "over" + ColorReset
	}
}
