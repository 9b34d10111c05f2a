package ui

import (
	"strings"
	"testing"

	"actcal/internal/testutil"
)

func TestVisibleWidthCountsCellsNotRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"ascii", "genshin", 7},
		{"cjk doublewidth", "原神", 4},
		{"ansi stripped", "\033[91m原神\033[0m", 4},
		{"mixed", "v3.8 上线", 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisibleWidth(tt.in); got != tt.want {
				t.Fatalf("VisibleWidth(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncateWithEllipsisRespectsCellWidth(t *testing.T) {
	in := "限时祈愿活动开启"
	got := TruncateWithEllipsis(in, 9)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated %q lacks ellipsis", got)
	}
	if w := VisibleWidth(got); w > 9 {
		t.Fatalf("truncated width = %d, want <= 9", w)
	}
}

func TestTruncateWithEllipsisKeepsColorCode(t *testing.T) {
	in := "\033[91m限时祈愿活动开启\033[0m"
	got := TruncateWithEllipsis(in, 9)
	if !strings.HasPrefix(got, "\033[91m") {
		t.Fatalf("truncated %q lost leading color code", got)
	}
	if !strings.HasSuffix(got, ColorReset) {
		t.Fatalf("truncated %q lost trailing reset", got)
	}
	if w := VisibleWidth(got); w > 9 {
		t.Fatalf("truncated width = %d, want <= 9", w)
	}
}

func TestTruncateWithEllipsisShortInputUnchanged(t *testing.T) {
	if got := TruncateWithEllipsis("原神", 10); got != "原神" {
		t.Fatalf("got %q, want input unchanged", got)
	}
}

func TestPaddingUsesDisplayWidth(t *testing.T) {
	if got := PadRight("原神", 8); VisibleWidth(got) != 8 {
		t.Fatalf("PadRight width = %d, want 8", VisibleWidth(got))
	}
	if got := PadLeft("原神", 8); VisibleWidth(got) != 8 {
		t.Fatalf("PadLeft width = %d, want 8", VisibleWidth(got))
	}
	if got := PadCenter("原神", 9); VisibleWidth(got) != 9 {
		t.Fatalf("PadCenter width = %d, want 9", VisibleWidth(got))
	}
}

func TestTableRowsAlignWithCJKCells(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "Game", Width: 10, Align: "left"},
		{Header: "ID", Width: 6, Align: "right"},
	})
	table.AddRow("原神", "4543")
	table.AddRow("Arknights", "29838")

	out := testutil.CaptureStdout(t, table.Print)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("rendered %d lines, want 6:\n%s", len(lines), out)
	}
	// 2 column widths + 3 borders + 2x2 padding cells.
	const wantWidth = 10 + 6 + 3 + 4
	for i, line := range lines {
		if w := VisibleWidth(line); w != wantWidth {
			t.Errorf("line %d width = %d, want %d: %q", i, w, wantWidth, StripAnsiCodes(line))
		}
	}
	if !strings.Contains(out, "原神") {
		t.Error("table output missing CJK cell")
	}
}
