package anntext

import (
	"testing"

	"actcal/internal/model"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello world", "hello world"},
		{"tags removed", "<p>活动时间</p>", "活动时间"},
		{"inline tags merge", "<span>2026</span>-03-01 04:00:00", "2026-03-01 04:00:00"},
		{"entities resolved", "a &amp; b", "a & b"},
		{"escaped html", "&lt;p&gt;活动时间&lt;/p&gt;", "活动时间"},
		{"nbsp collapsed", "2026-03-01 04:00:00", "2026-03-01 04:00:00"},
		{"whitespace runs", "a\n\n  b\tc", "a b c"},
		{"style dropped", "<style>.a{color:red}</style>text", "text"},
		{"script dropped", "<script>var x = 1;</script>text", "text"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripHTML(tc.in); got != tc.want {
				t.Fatalf("StripHTML(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractRangeExplicit(t *testing.T) {
	tests := []struct {
		name string
		body string
		want model.TimeRange
	}{
		{
			"tilde separator",
			"<p>活动时间：2026-03-01 04:00:00 ~ 2026-03-10 03:59:59</p>",
			model.TimeRange{Start: "2026-03-01 04:00:00", End: "2026-03-10 03:59:59"},
		},
		{
			"fullwidth tilde",
			"2026/3/1 11:00～2026/3/15 10:59",
			model.TimeRange{Start: "2026-03-01 11:00:00", End: "2026-03-15 10:59:00"},
		},
		{
			"chinese to glyph",
			"2026-03-01 10:00至2026-03-08 04:59:59",
			model.TimeRange{Start: "2026-03-01 10:00:00", End: "2026-03-08 04:59:59"},
		},
		{
			"dash separator with markup",
			"<td>2026.3.1 10:00</td><td>-</td><td>2026.3.22 23:59</td>",
			model.TimeRange{Start: "2026-03-01 10:00:00", End: "2026-03-22 23:59:00"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractRange(tc.body); got != tc.want {
				t.Fatalf("ExtractRange() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestExtractRangeKeywords(t *testing.T) {
	body := "<p>开放时间：2026-03-01 10:00:00</p><p>结束时间：2026-03-15 03:59:59</p>"
	want := model.TimeRange{Start: "2026-03-01 10:00:00", End: "2026-03-15 03:59:59"}
	if got := ExtractRange(body); got != want {
		t.Fatalf("ExtractRange() = %+v, want %+v", got, want)
	}
}

func TestExtractRangeKeywordStartOnly(t *testing.T) {
	body := "活动时间：2026-03-01 10:00 开启后持续两周"
	want := model.TimeRange{Start: "2026-03-01 10:00:00"}
	if got := ExtractRange(body); got != want {
		t.Fatalf("ExtractRange() = %+v, want %+v", got, want)
	}
}

func TestExtractRangeFallbackSingleToken(t *testing.T) {
	body := "本次活动将于2026-03-10 03:59:59结束"
	want := model.TimeRange{End: "2026-03-10 03:59:59"}
	if got := ExtractRange(body); got != want {
		t.Fatalf("ExtractRange() = %+v, want %+v", got, want)
	}
}

func TestExtractRangeFallbackTwoTokens(t *testing.T) {
	body := "第一阶段 2026-03-01 04:00:00 第二阶段 2026-03-05 04:00:00 第三阶段 2026-03-09 04:00:00"
	want := model.TimeRange{Start: "2026-03-01 04:00:00", End: "2026-03-05 04:00:00"}
	if got := ExtractRange(body); got != want {
		t.Fatalf("ExtractRange() = %+v, want %+v", got, want)
	}
}

func TestExtractRangeDeduplicatesTokens(t *testing.T) {
	body := "开服 2026-03-01 04:00 再提一次 2026-03-01 04:00 然后 2026-03-10 04:00"
	want := model.TimeRange{Start: "2026-03-01 04:00:00", End: "2026-03-10 04:00:00"}
	if got := ExtractRange(body); got != want {
		t.Fatalf("ExtractRange() = %+v, want %+v", got, want)
	}
}

func TestExtractRangeNoTokens(t *testing.T) {
	if got := ExtractRange("<p>维护结束后开放，敬请期待</p>"); got != (model.TimeRange{}) {
		t.Fatalf("ExtractRange() = %+v, want empty range", got)
	}
	if got := ExtractRange(""); got != (model.TimeRange{}) {
		t.Fatalf("ExtractRange(\"\") = %+v, want empty range", got)
	}
}

func TestExtractRangeSkipsMalformedTokens(t *testing.T) {
	// 2026-13-01 has no thirteenth month; only the valid token counts.
	body := "错误 2026-13-01 04:00:00 正确 2026-03-10 03:59:59"
	want := model.TimeRange{End: "2026-03-10 03:59:59"}
	if got := ExtractRange(body); got != want {
		t.Fatalf("ExtractRange() = %+v, want %+v", got, want)
	}
}

func TestExtractRangeDateOnlyTokensIgnored(t *testing.T) {
	body := "活动从2026-03-01持续到2026-03-10"
	if got := ExtractRange(body); got != (model.TimeRange{}) {
		t.Fatalf("ExtractRange() = %+v, want empty range for date-only text", got)
	}
}

func TestHasFuzzyStart(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{"<p>3.1版本更新后 ~ 2026-03-22 05:59:59</p>", true},
		{"更新维护后开启祈愿", true},
		{"2026-03-01 04:00:00 ~ 2026-03-10 03:59:59", false},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(tc.body, func(t *testing.T) {
			if got := HasFuzzyStart(tc.body); got != tc.want {
				t.Fatalf("HasFuzzyStart(%q) = %v, want %v", tc.body, got, tc.want)
			}
		})
	}
}
