package source

import (
	"strings"

	"actcal/internal/model"
)

// titleFilter holds one game's allow/deny vocabulary. The allowlist is
// checked first and overrides the denylist, so a gacha banner titled like a
// maintenance notice still gets through.
type titleFilter struct {
	allow []string
	deny  []string
}

// keep reports whether a title survives the filter.
func (f titleFilter) keep(title string) bool {
	for _, a := range f.allow {
		if strings.Contains(title, a) {
			return true
		}
	}
	for _, d := range f.deny {
		if strings.Contains(title, d) {
			return false
		}
	}
	return true
}

// isGacha reports whether a title marks a limited pull event. Each game has
// its own vocabulary; there is no shared list. The switch is exhaustive
// over the game enum.
func isGacha(game model.Game, title string) bool {
	var markers []string
	switch game {
	case model.GameGenshin:
		markers = []string{"祈愿"}
	case model.GameArknights:
		markers = []string{"寻访", "中坚甄选"}
	case model.GameWutheringWaves:
		markers = []string{"唤取"}
	case model.GameBlueArchive:
		markers = []string{"募集"}
	case model.GameAzurLane:
		markers = []string{"建造"}
	case model.GameTowerOfFantasy:
		markers = []string{"探机"}
	}
	for _, m := range markers {
		if strings.Contains(title, m) {
			return true
		}
	}
	return false
}
