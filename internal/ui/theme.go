package ui

import (
	"fmt"
	"os"
	"strings"
)

// ANSI color codes - exported for use across packages. InitColorPalette
// repoints them at startup according to the active theme.
var (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[91m"
	ColorGreen  = "\033[92m"
	ColorYellow = "\033[93m"
	ColorBlue   = "\033[94m"
	ColorPurple = "\033[95m"
	ColorCyan   = "\033[96m"
	ColorBold   = "\033[1m"
	ActiveTheme = "nord"
)

// Unicode symbols
var (
	SymbolCheck    = "✓"
	SymbolCross    = "✗"
	SymbolArrow    = "→"
	SymbolInfo     = "ℹ"
	SymbolWarning  = "⚠"
	SymbolBell     = "🔔"
	SymbolCalendar = "📅"

	SymbolGacha = "✦" // limited-run banner marker
)

// palette holds one theme in truecolor and 256-color renditions, slot
// order red, green, yellow, blue, purple, cyan. Terminals with neither
// capability keep the basic bright codes above.
type palette struct {
	truecolor [6][3]uint8
	ansi256   [6]uint8
}

var palettes = map[string]palette{
	"nord": {
		truecolor: [6][3]uint8{{191, 97, 106}, {163, 190, 140}, {235, 203, 139}, {129, 161, 193}, {180, 142, 173}, {136, 192, 208}},
		ansi256:   [6]uint8{131, 144, 222, 110, 139, 116},
	},
	"vivid": {
		truecolor: [6][3]uint8{{255, 76, 102}, {80, 250, 123}, {255, 221, 87}, {110, 196, 255}, {215, 130, 255}, {0, 245, 255}},
		ansi256:   [6]uint8{203, 84, 227, 81, 177, 51},
	},
}

func init() {
	InitColorPalette()
}

// InitColorPalette selects the color theme based on the ACTCAL_THEME env var.
func InitColorPalette() {
	theme := strings.ToLower(strings.TrimSpace(os.Getenv("ACTCAL_THEME")))
	if theme != "" {
		ActiveTheme = theme
	}

	p, ok := palettes[ActiveTheme]
	if !ok {
		p = palettes["nord"]
	}

	slots := []*string{&ColorRed, &ColorGreen, &ColorYellow, &ColorBlue, &ColorPurple, &ColorCyan}
	switch {
	case SupportsTruecolor():
		for i, slot := range slots {
			c := p.truecolor[i]
			*slot = fmt.Sprintf("\033[1;38;2;%d;%d;%dm", c[0], c[1], c[2])
		}
	case Supports256Color():
		for i, slot := range slots {
			*slot = fmt.Sprintf("\033[1;38;5;%dm", p.ansi256[i])
		}
	}
}

// SupportsTruecolor checks if the terminal supports 24-bit color.
func SupportsTruecolor() bool {
	term := strings.ToLower(os.Getenv("TERM"))
	colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
	return strings.Contains(colorTerm, "truecolor") ||
		strings.Contains(colorTerm, "24bit") ||
		strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit")
}

// Supports256Color checks if the terminal supports 256 colors.
func Supports256Color() bool {
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "256color")
}
