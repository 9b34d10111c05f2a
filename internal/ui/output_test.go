package ui

import (
	"strings"
	"testing"
	"time"

	"actcal/internal/model"
	"actcal/internal/testutil"
)

var statusNow = time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

func TestEventStatus(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{
			name:  "upcoming",
			start: "2026-03-08T13:00:00+00:00",
			end:   "2026-03-20T00:00:00+00:00",
			want:  "starts in 3 days",
		},
		{
			name:  "running",
			start: "2026-03-01T00:00:00+00:00",
			end:   "2026-03-05T17:30:00+00:00",
			want:  "ends in 5 hours",
		},
		{
			name:  "finished",
			start: "2026-02-20T00:00:00+00:00",
			end:   "2026-03-03T11:00:00+00:00",
			want:  "ended 2 days ago",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := model.CalendarEvent{StartTime: tt.start, EndTime: tt.end}
			got := StripAnsiCodes(EventStatus(ev, statusNow))
			if got != tt.want {
				t.Fatalf("EventStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEventStatusUnparseableWindow(t *testing.T) {
	ev := model.CalendarEvent{StartTime: "soon", EndTime: "later"}
	if got := EventStatus(ev, statusNow); got != "" {
		t.Fatalf("EventStatus = %q, want empty for unparseable window", got)
	}
}

func TestVersionStatus(t *testing.T) {
	ver := &model.GameVersionInfo{
		StartTime: "2026-03-01T06:00:00+08:00",
		EndTime:   "2026-04-08T05:59:59+08:00",
	}
	if got := StripAnsiCodes(VersionStatus(ver, statusNow)); got != "live" {
		t.Fatalf("VersionStatus = %q, want live", got)
	}
	if got := VersionStatus(nil, statusNow); got != "" {
		t.Fatalf("VersionStatus(nil) = %q, want empty", got)
	}
}

func TestShortTime(t *testing.T) {
	if got := ShortTime("2026-03-01T06:00:00+08:00"); got != "2026-03-01 06:00" {
		t.Fatalf("ShortTime = %q", got)
	}
	if got := ShortTime("not a time"); got != "not a time" {
		t.Fatalf("ShortTime passthrough = %q", got)
	}
}

func TestGachaMarker(t *testing.T) {
	if got := GachaMarker(model.CalendarEvent{IsGacha: true}); !strings.Contains(got, SymbolGacha) {
		t.Fatalf("gacha event marker = %q", got)
	}
	if got := GachaMarker(model.CalendarEvent{}); got != "" {
		t.Fatalf("plain event marker = %q, want empty", got)
	}
}

func TestPrintHelpersWriteSymbols(t *testing.T) {
	out := testutil.CaptureStdout(t, func() {
		PrintSuccess("warmed")
		PrintInfo("fetching")
	})
	if !strings.Contains(out, SymbolCheck) || !strings.Contains(out, "warmed") {
		t.Fatalf("success output = %q", out)
	}
	if !strings.Contains(out, SymbolInfo) || !strings.Contains(out, "fetching") {
		t.Fatalf("info output = %q", out)
	}
}
