// Package config loads the user's configuration from disk, overlays
// environment variables and validates the result. Every field is optional;
// with no file present the built-in endpoint defaults apply.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"actcal/internal/model"
)

// LoadedConfigPath tracks which config file was loaded so Write can save to
// the same location.
var LoadedConfigPath string

var validate = validator.New()

// searchPaths lists candidate config locations in priority order. JSON is
// checked before YAML within each directory.
func searchPaths() []string {
	paths := []string{"config.json", "config.yaml", "config.yml"}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return paths
	}
	for _, dir := range []string{
		filepath.Join(homeDir, ".actcal"),
		filepath.Join(homeDir, ".config", "actcal"),
	} {
		for _, name := range []string{"config.json", "config.yaml", "config.yml"} {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

// Load reads the first config file found, or returns a zero-value config
// when none exists. ACTCAL_CONFIG pins an exact path and makes a missing
// file an error instead of a fallback.
func Load() (*model.Config, error) {
	var cfg model.Config

	if pinned := os.Getenv("ACTCAL_CONFIG"); pinned != "" {
		data, err := os.ReadFile(pinned)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", pinned, err)
		}
		if err := decode(pinned, data, &cfg); err != nil {
			return nil, err
		}
		LoadedConfigPath = pinned
	} else {
		for _, path := range searchPaths() {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if err := decode(path, data, &cfg); err != nil {
				return nil, err
			}
			LoadedConfigPath = path
			break
		}
	}

	applyEnv(&cfg)
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func decode(path string, data []byte, cfg *model.Config) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays ACTCAL_* variables on top of the file values.
func applyEnv(cfg *model.Config) {
	overlay := func(target *string, key string) {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}
	overlay(&cfg.GenshinListURL, "ACTCAL_GENSHIN_LIST_URL")
	overlay(&cfg.GenshinContentURL, "ACTCAL_GENSHIN_CONTENT_URL")
	overlay(&cfg.ArknightsListURL, "ACTCAL_ARKNIGHTS_LIST_URL")
	overlay(&cfg.WutheringListURL, "ACTCAL_WUTHERING_LIST_URL")
	overlay(&cfg.WutheringChannelKey, "ACTCAL_WUTHERING_CHANNEL_KEY")
	overlay(&cfg.BlueArchiveListURL, "ACTCAL_BLUEARCHIVE_LIST_URL")
	overlay(&cfg.AzurLaneListURL, "ACTCAL_AZURLANE_LIST_URL")
	overlay(&cfg.TowerListURL, "ACTCAL_TOWER_LIST_URL")
	overlay(&cfg.TowerContentURL, "ACTCAL_TOWER_CONTENT_URL")
	overlay(&cfg.RefreshCron, "ACTCAL_REFRESH_CRON")
	overlay(&cfg.GotifyURL, "ACTCAL_GOTIFY_URL")
	overlay(&cfg.GotifyToken, "ACTCAL_GOTIFY_TOKEN")
	overlay(&cfg.MetricsAddr, "ACTCAL_METRICS_ADDR")
	overlay(&cfg.RequestLogPath, "ACTCAL_REQUEST_LOG")

	if v := os.Getenv("ACTCAL_CACHE_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTLMinutes = n
		}
	}
	if v := os.Getenv("ACTCAL_FETCH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchTimeoutSeconds = n
		}
	}
	if v := os.Getenv("ACTCAL_REFRESH_GAMES"); v != "" {
		cfg.RefreshGames = nil
		for _, g := range strings.Split(v, ",") {
			if g = strings.TrimSpace(g); g != "" {
				cfg.RefreshGames = append(cfg.RefreshGames, g)
			}
		}
	}
}

// ParseArgs parses CLI arguments using go-arg.
func ParseArgs() *model.Args {
	var args model.Args
	arg.MustParse(&args)
	return &args
}

// Write saves the config to the file it was loaded from, or ./config.json
// when none was.
func Write(cfg *model.Config) error {
	targetPath := LoadedConfigPath
	if targetPath == "" {
		targetPath = "config.json"
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(targetPath)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if dir := filepath.Dir(targetPath); dir != "." {
		if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
			return fmt.Errorf("create config directory %s: %w", dir, mkErr)
		}
	}
	if err := os.WriteFile(targetPath, data, 0600); err != nil {
		return fmt.Errorf("write config to %s: %w", targetPath, err)
	}
	return nil
}
