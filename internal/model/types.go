package model

import "time"

// CalendarEvent is one normalized limited-time activity as exposed to
// consumers. Publisher integer ids are rendered as their decimal string form
// so a single shape covers every backend. StartTime and EndTime are ISO-8601
// with an explicit offset, and StartTime is strictly before EndTime.
type CalendarEvent struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsGacha   bool   `json:"is_gacha,omitempty"`
	Banner    string `json:"banner,omitempty"`
	Content   string `json:"content,omitempty"`
}

// GameVersionInfo describes the currently relevant version-update notice for
// one game. One instance (or nil) per game per refresh.
type GameVersionInfo struct {
	Game      Game   `json:"game"`
	Version   string `json:"version"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	AnnID     string `json:"ann_id,omitempty"`
	Title     string `json:"title,omitempty"`
}

// Snapshot is the full result of one pipeline run: the event list plus the
// resolved version notice. It is what the cache memoizes per game.
type Snapshot struct {
	Game      Game             `json:"game"`
	Events    []CalendarEvent  `json:"events"`
	Version   *GameVersionInfo `json:"version,omitempty"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

// TimeRange is a possibly partial start/end pair recovered from announcement
// text. Values are normalized naive "YYYY-MM-DD HH:MM:SS" strings; either
// side may be empty.
type TimeRange struct {
	Start string
	End   string
}

// ContentCandidate is a detail record reduced to a matchable normalized key
// plus its enrichment payload. It lives for a single pipeline invocation.
type ContentCandidate struct {
	Title   string
	Key     string
	Banner  string
	Content string
}

// Config holds the user's configuration. Every field is optional; an empty
// value falls back to the built-in default for that endpoint or knob.
type Config struct {
	GenshinListURL      string   `json:"genshinListUrl,omitempty" yaml:"genshinListUrl" validate:"omitempty,url"`
	GenshinContentURL   string   `json:"genshinContentUrl,omitempty" yaml:"genshinContentUrl" validate:"omitempty,url"`
	ArknightsListURL    string   `json:"arknightsListUrl,omitempty" yaml:"arknightsListUrl" validate:"omitempty,url"`
	WutheringListURL    string   `json:"wutheringListUrl,omitempty" yaml:"wutheringListUrl" validate:"omitempty,url"`
	WutheringChannelKey string   `json:"wutheringChannelKey,omitempty" yaml:"wutheringChannelKey"`
	BlueArchiveListURL  string   `json:"blueArchiveListUrl,omitempty" yaml:"blueArchiveListUrl" validate:"omitempty,url"`
	AzurLaneListURL     string   `json:"azurLaneListUrl,omitempty" yaml:"azurLaneListUrl" validate:"omitempty,url"`
	TowerListURL        string   `json:"towerListUrl,omitempty" yaml:"towerListUrl" validate:"omitempty,url"`
	TowerContentURL     string   `json:"towerContentUrl,omitempty" yaml:"towerContentUrl" validate:"omitempty,url"`
	CacheTTLMinutes     int      `json:"cacheTtlMinutes,omitempty" yaml:"cacheTtlMinutes" validate:"omitempty,min=1"`
	FetchTimeoutSeconds int      `json:"fetchTimeoutSeconds,omitempty" yaml:"fetchTimeoutSeconds" validate:"omitempty,min=1"`
	RefreshCron         string   `json:"refreshCron,omitempty" yaml:"refreshCron"`
	RefreshGames        []string `json:"refreshGames,omitempty" yaml:"refreshGames"`
	GotifyURL           string   `json:"gotifyUrl,omitempty" yaml:"gotifyUrl" validate:"omitempty,url"`
	GotifyToken         string   `json:"gotifyToken,omitempty" yaml:"gotifyToken"`
	MetricsAddr         string   `json:"metricsAddr,omitempty" yaml:"metricsAddr"`
	RequestLogPath      string   `json:"requestLogPath,omitempty" yaml:"requestLogPath"`
}

// CacheTTL returns the configured cache freshness window.
func (c *Config) CacheTTL() time.Duration {
	if c.CacheTTLMinutes > 0 {
		return time.Duration(c.CacheTTLMinutes) * time.Minute
	}
	return 10 * time.Minute
}

// FetchTimeout returns the configured per-request timeout.
func (c *Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds > 0 {
		return time.Duration(c.FetchTimeoutSeconds) * time.Second
	}
	return 12 * time.Second
}

// Args holds CLI arguments parsed by go-arg.
type Args struct {
	Commands []string `arg:"positional" help:"games | events <game> | version <game> | snapshot <game> | export <game> | watch | config | completion"`
	JSON     bool     `arg:"--json,-j" help:"Print raw JSON instead of formatted tables."`
	Out      string   `arg:"-o" help:"Output file for export (default: <game>.ics)."`
	TTL      int      `arg:"--ttl" default:"-1" help:"Cache TTL override in minutes."`
}
