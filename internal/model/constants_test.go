package model

import (
	"encoding/json"
	"testing"
)

func TestGameStringRoundTrip(t *testing.T) {
	for _, g := range Games() {
		if got := ParseGame(g.String()); got != g {
			t.Fatalf("ParseGame(%q) = %v, want %v", g.String(), got, g)
		}
	}
}

func TestParseGameAliases(t *testing.T) {
	tests := []struct {
		in   string
		want Game
	}{
		{"genshin", GameGenshin},
		{"GI", GameGenshin},
		{"arknights", GameArknights},
		{"ak", GameArknights},
		{"wuwa", GameWutheringWaves},
		{"WW", GameWutheringWaves},
		{"ba", GameBlueArchive},
		{"AzurLane", GameAzurLane},
		{"tof", GameTowerOfFantasy},
		{"  genshin  ", GameGenshin},
		{"", GameUnknown},
		{"starrail", GameUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseGame(tc.in); got != tc.want {
				t.Fatalf("ParseGame(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestGameJSONMarshal(t *testing.T) {
	data, err := json.Marshal(GameBlueArchive)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"bluearchive"` {
		t.Fatalf("expected %q, got %s", `"bluearchive"`, data)
	}

	var g Game
	if err := json.Unmarshal([]byte(`"wuwa"`), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g != GameWutheringWaves {
		t.Fatalf("expected GameWutheringWaves, got %v", g)
	}
}

func TestCalendarEventWireShape(t *testing.T) {
	ev := CalendarEvent{
		ID:        "4031",
		Title:     "Event",
		StartTime: "2026-03-01T04:00:00+08:00",
		EndTime:   "2026-03-10T03:59:59+08:00",
	}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"4031","title":"Event","start_time":"2026-03-01T04:00:00+08:00","end_time":"2026-03-10T03:59:59+08:00"}`
	if string(data) != want {
		t.Fatalf("unexpected wire shape:\n got %s\nwant %s", data, want)
	}
}
