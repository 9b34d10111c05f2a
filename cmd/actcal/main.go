package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"actcal/internal/app"
	"actcal/internal/cache"
	"actcal/internal/completion"
	"actcal/internal/config"
	"actcal/internal/fetch"
	"actcal/internal/logging"
	"actcal/internal/model"
	"actcal/internal/source"
	"actcal/internal/ui"
)

func main() {
	// .env keeps gotify tokens and endpoint overrides out of the config file.
	_ = godotenv.Load()

	// Check if first argument is "help" before parsing
	if len(os.Args) > 1 && os.Args[1] == "help" {
		os.Args[1] = "--help"
	}

	args := config.ParseArgs()

	cfg, err := config.Load()
	if err != nil {
		handleErr("Failed to load config.", err, true)
	}

	if len(args.Commands) == 0 {
		displayWelcome()
		return
	}

	cmd := args.Commands[0]
	switch cmd {
	case "games":
		if err := listGames(args.JSON); err != nil {
			handleErr("List games failed.", err, true)
		}

	case "events", "version", "snapshot", "export":
		game, ok := gameArg(args.Commands, cmd)
		if !ok {
			break
		}
		svc, cleanup, err := buildService(cfg, args)
		if err != nil {
			handleErr("Failed to initialize.", err, true)
		}
		defer cleanup()

		ctx := context.Background()
		switch cmd {
		case "events":
			err = listEvents(ctx, svc, game, args.JSON)
		case "version":
			err = showVersion(ctx, svc, game, args.JSON)
		case "snapshot":
			err = showSnapshot(ctx, svc, game, args.JSON)
		case "export":
			err = exportGame(ctx, svc, game, args.Out)
		}
		if err != nil {
			handleErr(fmt.Sprintf("Command %q failed.", cmd), err, true)
		}

	case "watch":
		if err := runWatch(cfg); err != nil {
			handleErr("Watch failed.", err, true)
		}

	case "config":
		if err := configCommand(cfg, args.Commands, args.JSON); err != nil {
			handleErr("Config command failed.", err, true)
		}

	case "completion":
		if err := completion.Command(args.Commands); err != nil {
			handleErr("Completion failed.", err, true)
		}

	default:
		ui.PrintError(fmt.Sprintf("Unknown command: %s", cmd))
		printUsage()
	}

	if ui.RunErrorCount > 0 {
		os.Exit(1)
	}
}

// gameArg resolves the <game> argument of a command, printing usage help
// when it is missing or unrecognized.
func gameArg(commands []string, cmd string) (model.Game, bool) {
	if len(commands) < 2 {
		ui.PrintInfo(fmt.Sprintf("Usage: actcal %s <game>", cmd))
		fmt.Println("Games: " + strings.Join(gameSlugs(), " "))
		return model.GameUnknown, false
	}
	game := model.ParseGame(commands[1])
	if game == model.GameUnknown {
		ui.PrintError(fmt.Sprintf("Unknown game: %s", commands[1]))
		fmt.Println("Games: " + strings.Join(gameSlugs(), " "))
		return model.GameUnknown, false
	}
	return game, true
}

// buildService wires the fetch/pipeline/cache stack for one-shot commands.
// Metrics stay nil here; only watch mode serves a registry.
func buildService(cfg *model.Config, args *model.Args) (*app.Service, func(), error) {
	log := logging.Discard()
	if os.Getenv("LOG_LEVEL") != "" {
		log = logging.NewLogger("actcal")
	}

	var reqLog *fetch.RequestLog
	cleanup := func() {}
	if cfg.RequestLogPath != "" {
		rl, err := fetch.OpenRequestLog(cfg.RequestLogPath)
		if err != nil {
			return nil, nil, err
		}
		reqLog = rl
		cleanup = func() { _ = rl.Close() }
	}

	client := fetch.NewClient(cfg.FetchTimeout(), nil, reqLog)
	pipeline := source.NewPipeline(client, cfg, log)
	svc := app.NewService(pipeline, cache.NewStore(nil), cacheTTL(cfg, args), log)
	return svc, cleanup, nil
}

// cacheTTL applies the --ttl override on top of the configured window.
func cacheTTL(cfg *model.Config, args *model.Args) time.Duration {
	if args.TTL >= 0 {
		return time.Duration(args.TTL) * time.Minute
	}
	return cfg.CacheTTL()
}

func printUsage() {
	ui.PrintInfo("Usage: actcal <command>")
	fmt.Println("Commands:")
	fmt.Println("  games                     List supported games")
	fmt.Println("  events <game> [--json]    Current activities for a game")
	fmt.Println("  version <game> [--json]   Resolved version window")
	fmt.Println("  snapshot <game> [--json]  Full snapshot with fetch metadata")
	fmt.Println("  export <game> [-o file]   Write an iCalendar file")
	fmt.Println("  watch                     Warm snapshots on a schedule")
	fmt.Println("  config show|init          Inspect or create the config file")
	fmt.Println("  completion <shell>        Shell completion script")
}

// handleErr prints an error to stderr and optionally exits. When fatal is
// true, the process exits with code 1 after printing.
func handleErr(errText string, err error, fatal bool) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, errText+"\n"+err.Error())
	if fatal {
		os.Exit(1)
	}
}
