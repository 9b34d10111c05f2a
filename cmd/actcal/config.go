package main

import (
	"fmt"

	"actcal/internal/config"
	"actcal/internal/model"
	"actcal/internal/refresh"
	"actcal/internal/ui"
)

// configCommand handles `actcal config show` and `actcal config init`.
func configCommand(cfg *model.Config, commands []string, jsonOut bool) error {
	if len(commands) < 2 {
		ui.PrintInfo("Usage: actcal config show | config init")
		return nil
	}

	switch commands[1] {
	case "show":
		if jsonOut {
			return printJSON(cfg)
		}
		source := config.LoadedConfigPath
		if source == "" {
			source = "built-in defaults (no config file found)"
		}
		schedule := cfg.RefreshCron
		if schedule == "" {
			schedule = refresh.DefaultSchedule
		}
		gotify := "disabled"
		if cfg.GotifyURL != "" && cfg.GotifyToken != "" {
			gotify = cfg.GotifyURL
		}

		ui.PrintSection("Configuration")
		ui.PrintKeyValue("Source", source, "")
		ui.PrintKeyValue("Cache TTL", cfg.CacheTTL().String(), "")
		ui.PrintKeyValue("Fetch timeout", cfg.FetchTimeout().String(), "")
		ui.PrintKeyValue("Refresh schedule", schedule, "")
		ui.PrintKeyValue("Gotify", gotify, "")
		if cfg.MetricsAddr != "" {
			ui.PrintKeyValue("Metrics", cfg.MetricsAddr, "")
		}
		if cfg.RequestLogPath != "" {
			ui.PrintKeyValue("Request log", cfg.RequestLogPath, "")
		}
		fmt.Println()
		return nil

	case "init":
		if config.LoadedConfigPath != "" {
			ui.PrintWarning("Config already exists at " + config.LoadedConfigPath)
			return nil
		}
		if err := config.Write(cfg); err != nil {
			return err
		}
		ui.PrintSuccess("Wrote config.json with current settings")
		return nil

	default:
		return fmt.Errorf("unknown config subcommand: %s (use show or init)", commands[1])
	}
}
