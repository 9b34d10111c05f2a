package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"actcal/internal/app"
	"actcal/internal/ics"
	"actcal/internal/model"
	"actcal/internal/ui"
)

// displayWelcome shows the welcome screen with the supported game roster.
func displayWelcome() {
	ui.PrintHeader("actcal " + ui.SymbolCalendar + " game activity calendar")

	ui.PrintSection("Supported Games")
	gamesTable().Print()
	fmt.Println()

	ui.PrintSection("Quick Start")
	quickStartCommands := []string{
		fmt.Sprintf("%sactcal events genshin%s - Current and upcoming activities", ui.ColorCyan, ui.ColorReset),
		fmt.Sprintf("%sactcal version wuwa%s - Resolved version window", ui.ColorCyan, ui.ColorReset),
		fmt.Sprintf("%sactcal events ba --json | jq%s - Raw JSON for scripting", ui.ColorCyan, ui.ColorReset),
		fmt.Sprintf("%sactcal export genshin -o genshin.ics%s - Calendar subscription file", ui.ColorCyan, ui.ColorReset),
		fmt.Sprintf("%sactcal watch%s - Keep snapshots warm and push alerts", ui.ColorCyan, ui.ColorReset),
	}
	ui.PrintList(quickStartCommands, ui.ColorGreen)
	fmt.Println()
}

func gamesTable() *ui.Table {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "Game", Width: 18, Align: "left"},
		{Header: "Slug", Width: 15, Align: "left"},
		{Header: "Aliases", Width: 10, Align: "left"},
	})
	for _, game := range model.Games() {
		table.AddRow(
			ui.ColorGreen+game.DisplayName()+ui.ColorReset,
			game.String(),
			strings.Join(gameAliases(game), ", "),
		)
	}
	return table
}

// gameAliases lists the short forms ParseGame accepts for a game.
func gameAliases(game model.Game) []string {
	switch game {
	case model.GameGenshin:
		return []string{"gi"}
	case model.GameArknights:
		return []string{"ak"}
	case model.GameWutheringWaves:
		return []string{"wuwa", "ww"}
	case model.GameBlueArchive:
		return []string{"ba"}
	case model.GameAzurLane:
		return []string{"al"}
	case model.GameTowerOfFantasy:
		return []string{"tof"}
	default:
		return nil
	}
}

func gameSlugs() []string {
	slugs := make([]string, 0, len(model.Games()))
	for _, game := range model.Games() {
		slugs = append(slugs, game.String())
	}
	return slugs
}

func listGames(jsonOut bool) error {
	if jsonOut {
		type gameEntry struct {
			Slug    string   `json:"slug"`
			Name    string   `json:"name"`
			Aliases []string `json:"aliases,omitempty"`
		}
		entries := make([]gameEntry, 0, len(model.Games()))
		for _, game := range model.Games() {
			entries = append(entries, gameEntry{
				Slug:    game.String(),
				Name:    game.DisplayName(),
				Aliases: gameAliases(game),
			})
		}
		return printJSON(entries)
	}

	gamesTable().Print()
	return nil
}

// listEvents fetches and displays the normalized activity list for one game.
func listEvents(ctx context.Context, svc *app.Service, game model.Game, jsonOut bool) error {
	if !jsonOut {
		ui.PrintInfo(fmt.Sprintf("Fetching %s activities...", game.DisplayName()))
	}
	snap, err := svc.Snapshot(ctx, game)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(snap.Events)
	}

	ui.PrintHeader(game.DisplayName() + " Activities")
	if len(snap.Events) == 0 {
		ui.PrintWarning("No activities in the current announcement set")
		return nil
	}

	now := time.Now()
	table := ui.NewTable([]ui.TableColumn{
		{Header: ui.SymbolGacha, Width: 2, Align: "center"},
		{Header: "ID", Width: 7, Align: "right"},
		{Header: "Title", Width: 30, Align: "left"},
		{Header: "Start", Width: 16, Align: "left"},
		{Header: "End", Width: 16, Align: "left"},
		{Header: "Status", Width: 17, Align: "left"},
	})
	for _, ev := range snap.Events {
		table.AddRow(
			ui.GachaMarker(ev),
			ev.ID,
			ev.Title,
			ui.ColorYellow+ui.ShortTime(ev.StartTime)+ui.ColorReset,
			ui.ShortTime(ev.EndTime),
			ui.EventStatus(ev, now),
		)
	}
	table.Print()
	fmt.Println()

	summary := fmt.Sprintf("%d activities, snapshot from %s", len(snap.Events), humanize.Time(snap.FetchedAt))
	if snap.Version != nil {
		summary += fmt.Sprintf(", version %s", snap.Version.Version)
	}
	ui.PrintSuccess(summary)
	return nil
}

// showVersion displays the resolved version-update window for one game.
func showVersion(ctx context.Context, svc *app.Service, game model.Game, jsonOut bool) error {
	if !jsonOut {
		ui.PrintInfo(fmt.Sprintf("Resolving %s version notice...", game.DisplayName()))
	}
	ver, err := svc.Version(ctx, game)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(ver)
	}
	if ver == nil {
		ui.PrintWarning(fmt.Sprintf("No version notice resolved for %s", game.DisplayName()))
		return nil
	}

	ui.PrintSection(fmt.Sprintf("%s %s", game.DisplayName(), ver.Version))
	ui.PrintKeyValue("Version", ver.Version, ui.ColorGreen)
	if ver.Title != "" {
		ui.PrintKeyValue("Announcement", ver.Title, "")
	}
	window := fmt.Sprintf("%s %s %s", ui.ShortTime(ver.StartTime), ui.SymbolArrow, ui.ShortTime(ver.EndTime))
	ui.PrintKeyValue("Window", window, ui.ColorYellow)
	ui.PrintKeyValue("Status", ui.VersionStatus(ver, time.Now()), "")
	if ver.AnnID != "" {
		ui.PrintKeyValue("Notice ID", ver.AnnID, "")
	}
	fmt.Println()
	return nil
}

// showSnapshot displays the cached-or-fresh snapshot with fetch metadata.
func showSnapshot(ctx context.Context, svc *app.Service, game model.Game, jsonOut bool) error {
	snap, err := svc.Snapshot(ctx, game)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(snap)
	}

	gacha := 0
	for _, ev := range snap.Events {
		if ev.IsGacha {
			gacha++
		}
	}

	ui.PrintSection(game.DisplayName() + " Snapshot")
	ui.PrintKeyValue("Game", game.String(), "")
	fetched := fmt.Sprintf("%s (%s)", snap.FetchedAt.Format(time.RFC3339), humanize.Time(snap.FetchedAt))
	ui.PrintKeyValue("Fetched", fetched, "")
	ui.PrintKeyValue("Activities", fmt.Sprintf("%d (%d gacha)", len(snap.Events), gacha), ui.ColorGreen)
	if snap.Version != nil {
		status := ui.StripAnsiCodes(ui.VersionStatus(snap.Version, time.Now()))
		ui.PrintKeyValue("Version", fmt.Sprintf("%s (%s)", snap.Version.Version, status), ui.ColorPurple)
	} else {
		ui.PrintKeyValue("Version", "none resolved", "")
	}
	fmt.Println()
	return nil
}

// exportGame writes a game's snapshot as an iCalendar file.
func exportGame(ctx context.Context, svc *app.Service, game model.Game, outPath string) error {
	if outPath == "" {
		outPath = game.String() + ".ics"
	}
	ui.PrintInfo(fmt.Sprintf("Exporting %s calendar...", game.DisplayName()))
	snap, err := svc.Snapshot(ctx, game)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	if err := ics.Write(f, snap); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", outPath, err)
	}
	ui.PrintSuccess(fmt.Sprintf("Wrote %d events to %s", len(snap.Events), outPath))
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
