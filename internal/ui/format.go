package ui

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Box drawing characters
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxVertical    = "│"
	BoxHorizontal  = "─"
	BoxTeeLeft     = "├"
	BoxTeeRight    = "┤"
	BoxTeeTop      = "┬"
	BoxTeeBottom   = "┴"
	BoxCross       = "┼"

	BoxDoubleHorizontal  = "═"
	BoxDoubleTopLeft     = "╔"
	BoxDoubleTopRight    = "╗"
	BoxDoubleBottomLeft  = "╚"
	BoxDoubleBottomRight = "╝"

	BulletCircle  = "•"
	BulletDiamond = "◆"
)

// AnsiRegex is compiled once for performance.
var AnsiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const termWidthCacheTTL = 500 * time.Millisecond

var (
	termWidthMu         sync.Mutex
	cachedTermWidth     = 80
	cachedTermWidthTime time.Time
)

// GetTermWidth returns the terminal width, defaulting to 80.
func GetTermWidth() int {
	termWidthMu.Lock()
	if time.Since(cachedTermWidthTime) <= termWidthCacheTTL && cachedTermWidth > 0 {
		width := cachedTermWidth
		termWidthMu.Unlock()
		return width
	}
	termWidthMu.Unlock()

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width == 0 {
		width = 80
	}

	termWidthMu.Lock()
	cachedTermWidth = width
	cachedTermWidthTime = time.Now()
	termWidthMu.Unlock()

	return width
}

// StripAnsiCodes removes ANSI escape sequences from a string.
func StripAnsiCodes(s string) string {
	return AnsiRegex.ReplaceAllString(s, "")
}

// VisibleWidth returns the display width of a string excluding ANSI codes.
// CJK characters occupy two terminal cells, so announcement titles measure
// wider than their rune count.
func VisibleWidth(s string) int {
	return runewidth.StringWidth(StripAnsiCodes(s))
}

// TruncateWithEllipsis truncates a string to maxWidth display cells with an
// ellipsis if needed. The first ANSI code of the input, if any, is reapplied
// to the truncated text.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if VisibleWidth(s) <= maxWidth {
		return s
	}

	stripped := StripAnsiCodes(s)
	tail := "..."
	if maxWidth <= 3 {
		tail = ""
	}
	truncated := runewidth.Truncate(stripped, maxWidth, tail)

	if codes := AnsiRegex.FindAllString(s, -1); len(codes) > 0 {
		return codes[0] + truncated + ColorReset
	}
	return truncated
}

// PadRight pads a string to the specified width using display width.
func PadRight(s string, width int) string {
	visWidth := VisibleWidth(s)
	if visWidth >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visWidth)
}

// PadLeft pads a string to the specified width using display width.
func PadLeft(s string, width int) string {
	visWidth := VisibleWidth(s)
	if visWidth >= width {
		return s
	}
	return strings.Repeat(" ", width-visWidth) + s
}

// PadCenter centers a string in the specified width using display width.
func PadCenter(s string, width int) string {
	visWidth := VisibleWidth(s)
	if visWidth >= width {
		return s
	}
	padding := width - visWidth
	leftPad := padding / 2
	rightPad := padding - leftPad
	return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", rightPad)
}

// PrintHeader prints a styled header with box drawing.
func PrintHeader(title string) {
	width := GetTermWidth()
	if VisibleWidth(title)+4 > width-4 {
		title = TruncateWithEllipsis(title, width-10)
	}

	lineLen := width - 2

	fmt.Printf("\n%s%s%s%s%s\n",
		ColorCyan, BoxDoubleTopLeft,
		strings.Repeat(BoxDoubleHorizontal, lineLen),
		BoxDoubleTopRight, ColorReset)

	fmt.Printf("%s%s%s %s %s%s%s\n",
		ColorCyan, BoxVertical, ColorReset,
		ColorBold+PadCenter(title, lineLen-2)+ColorReset,
		ColorCyan, BoxVertical, ColorReset)

	fmt.Printf("%s%s%s%s%s\n\n",
		ColorCyan, BoxDoubleBottomLeft,
		strings.Repeat(BoxDoubleHorizontal, lineLen),
		BoxDoubleBottomRight, ColorReset)
}

// PrintSection prints a section title with underline.
func PrintSection(title string) {
	fmt.Printf("\n%s%s %s%s\n", ColorBold, BulletDiamond, title, ColorReset)
	fmt.Printf("%s%s%s\n\n", ColorCyan, strings.Repeat(BoxHorizontal, VisibleWidth(title)+2), ColorReset)
}

// TableColumn represents a column in a table.
type TableColumn struct {
	Header string
	Width  int
	Align  string // "left", "right", "center"
}

// Table represents a formatted table.
type Table struct {
	Columns []TableColumn
	Rows    [][]string
}

// NewTable creates a new table.
func NewTable(columns []TableColumn) *Table {
	return &Table{
		Columns: columns,
		Rows:    make([][]string, 0),
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	if len(cells) != len(t.Columns) {
		row := make([]string, len(t.Columns))
		copy(row, cells)
		t.Rows = append(t.Rows, row)
		return
	}
	t.Rows = append(t.Rows, cells)
}

// fitColumns scales requested column widths down when the terminal is
// narrower than the sum of requests.
func (t *Table) fitColumns() []TableColumn {
	available := GetTermWidth() - (len(t.Columns) + 1) - len(t.Columns)*2

	requested := 0
	for _, col := range t.Columns {
		requested += col.Width
	}

	fitted := make([]TableColumn, len(t.Columns))
	copy(fitted, t.Columns)
	if requested > available {
		for i := range fitted {
			fitted[i].Width = (fitted[i].Width * available) / requested
		}
	}
	return fitted
}

// rule renders one horizontal border line for the given columns.
func rule(cols []TableColumn, left, junction, right string) string {
	var b strings.Builder
	b.WriteString(ColorCyan + left)
	for i, col := range cols {
		b.WriteString(strings.Repeat(BoxHorizontal, col.Width+2))
		if i < len(cols)-1 {
			b.WriteString(junction)
		}
	}
	b.WriteString(right + ColorReset)
	return b.String()
}

// alignCell truncates and pads one cell to its column.
func alignCell(cell string, col TableColumn) string {
	truncated := TruncateWithEllipsis(cell, col.Width)
	switch col.Align {
	case "right":
		return PadLeft(truncated, col.Width)
	case "center":
		return PadCenter(truncated, col.Width)
	default:
		return PadRight(truncated, col.Width)
	}
}

// Print renders the table to stdout.
func (t *Table) Print() {
	if len(t.Columns) == 0 {
		return
	}

	cols := t.fitColumns()
	sep := ColorCyan + BoxVertical + ColorReset

	fmt.Println(rule(cols, BoxTopLeft, BoxTeeTop, BoxTopRight))

	fmt.Print(sep)
	for _, col := range cols {
		header := TruncateWithEllipsis(col.Header, col.Width)
		fmt.Printf(" %s%s%s %s", ColorBold, PadCenter(header, col.Width), ColorReset, sep)
	}
	fmt.Println()

	fmt.Println(rule(cols, BoxTeeLeft, BoxCross, BoxTeeRight))

	for _, row := range t.Rows {
		fmt.Print(sep)
		for colIdx, cell := range row {
			if colIdx >= len(cols) {
				break
			}
			fmt.Printf(" %s %s", alignCell(cell, cols[colIdx]), sep)
		}
		fmt.Println()
	}

	fmt.Println(rule(cols, BoxBottomLeft, BoxTeeBottom, BoxBottomRight))
}

// PrintList prints a styled bullet list.
func PrintList(items []string, color string) {
	for _, item := range items {
		fmt.Printf("  %s%s%s %s\n", color, BulletCircle, ColorReset, item)
	}
}

// PrintKeyValue prints a key-value pair with styling.
func PrintKeyValue(key, value, valueColor string) {
	width := GetTermWidth()
	maxValueWidth := width - len(key) - 10

	if VisibleWidth(value) > maxValueWidth {
		value = TruncateWithEllipsis(value, maxValueWidth)
	}

	fmt.Printf("  %s%-20s%s %s%s%s\n",
		ColorCyan, key+":", ColorReset,
		valueColor, value, ColorReset)
}
