package model

import (
	"encoding/json"
	"strings"
)

// Game identifies one of the supported publisher backends.
type Game int

const (
	GameUnknown        Game = 0
	GameGenshin        Game = 1
	GameArknights      Game = 2
	GameWutheringWaves Game = 3
	GameBlueArchive    Game = 4
	GameAzurLane       Game = 5
	GameTowerOfFantasy Game = 6
)

// String returns the canonical identifier of the Game.
func (g Game) String() string {
	switch g {
	case GameGenshin:
		return "genshin"
	case GameArknights:
		return "arknights"
	case GameWutheringWaves:
		return "wutheringwaves"
	case GameBlueArchive:
		return "bluearchive"
	case GameAzurLane:
		return "azurlane"
	case GameTowerOfFantasy:
		return "toweroffantasy"
	default:
		return "unknown"
	}
}

// DisplayName returns the English title used in human-readable output.
func (g Game) DisplayName() string {
	switch g {
	case GameGenshin:
		return "Genshin Impact"
	case GameArknights:
		return "Arknights"
	case GameWutheringWaves:
		return "Wuthering Waves"
	case GameBlueArchive:
		return "Blue Archive"
	case GameAzurLane:
		return "Azur Lane"
	case GameTowerOfFantasy:
		return "Tower of Fantasy"
	default:
		return "Unknown"
	}
}

// ParseGame converts a string to a Game. Common short aliases are accepted.
func ParseGame(s string) Game {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "genshin", "gi":
		return GameGenshin
	case "arknights", "ak":
		return GameArknights
	case "wutheringwaves", "wuwa", "ww":
		return GameWutheringWaves
	case "bluearchive", "ba":
		return GameBlueArchive
	case "azurlane", "al":
		return GameAzurLane
	case "toweroffantasy", "tof":
		return GameTowerOfFantasy
	default:
		return GameUnknown
	}
}

// Games returns every supported game in display order.
func Games() []Game {
	return []Game{
		GameGenshin,
		GameArknights,
		GameWutheringWaves,
		GameBlueArchive,
		GameAzurLane,
		GameTowerOfFantasy,
	}
}

// MarshalJSON encodes the Game as its canonical string identifier.
func (g Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON decodes a canonical identifier or alias back into a Game.
func (g *Game) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*g = ParseGame(s)
	return nil
}
