package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kwpid/HighCard-V2/internal/charts"
	"github.com/kwpid/HighCard-V2/internal/export"
	"github.com/kwpid/HighCard-V2/internal/game"
	"github.com/kwpid/HighCard-V2/internal/progression"
	"github.com/kwpid/HighCard-V2/internal/stats"
	"github.com/kwpid/HighCard-V2/internal/storage"
)

// runStats shows the profile summary: level, per-mode records, ranks and
// streaks.
func (a *app) runStats() error {
	profile, err := a.storage.Profiles().Load(a.ctx, a.userID, a.userID)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", profile.Username)
	if profile.EquippedTitleID != "" {
		for _, title := range profile.OwnedTitles {
			if title.ID == profile.EquippedTitleID {
				fmt.Printf("Title: %s\n", title.Name)
				break
			}
		}
	}
	fmt.Printf("Level %d (%d XP)\n", profile.Level, profile.XP)
	fmt.Printf("Season %d, %d season wins\n\n", profile.Season, profile.SeasonWins)

	for _, gt := range []game.GameType{game.GameType1v1, game.GameType2v2} {
		casual := profile.Casual[gt]
		ranked := profile.Ranked[gt]

		fmt.Printf("%s\n", gt)
		fmt.Println("---")
		fmt.Printf("Casual: %d-%d (%d played)\n", casual.Wins, casual.Losses, casual.GamesPlayed)

		if rank, ok := ranked.Rank(); ok {
			fmt.Printf("Ranked: %d-%d, %d MMR, %s (peak %d)\n",
				ranked.Wins, ranked.Losses, ranked.MMR, rank, ranked.PeakMMR)
		} else {
			fmt.Printf("Ranked: %d-%d, placements %d of %d\n",
				ranked.Wins, ranked.Losses, ranked.PlacementMatches, progression.PlacementMatchesRequired)
		}
		if ranked.HighestRank != "" {
			fmt.Printf("Lifetime best: %s %s\n", ranked.HighestRank, ranked.HighestDivision)
		}
		fmt.Println()
	}

	displayStreaks(a)
	return nil
}

// displayStreaks summarizes the current and longest streaks over the
// stored match history.
func displayStreaks(a *app) {
	matches, err := a.storage.GetRecentMatches(a.ctx, a.userID, 100)
	if err != nil || len(matches) == 0 {
		return
	}
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}

	streaks := stats.CalculateStreaks(matches)
	fmt.Println("Streaks")
	fmt.Println("-------")
	fmt.Printf("Current: %s\n", stats.FormatCurrentStreak(streaks.CurrentStreak))
	if streaks.LongestWinStreak > 0 {
		fmt.Printf("Longest win streak: %d\n", streaks.LongestWinStreak)
	}
	if streaks.LongestLossStreak > 0 {
		fmt.Printf("Longest loss streak: %d\n", streaks.LongestLossStreak)
	}
	fmt.Println()
}

// runTitles lists owned titles, marking the equipped one.
func (a *app) runTitles() error {
	profile, err := a.storage.Profiles().Load(a.ctx, a.userID, a.userID)
	if err != nil {
		return err
	}

	if len(profile.OwnedTitles) == 0 {
		fmt.Println("No titles yet. Level up and finish seasons to earn them.")
		return nil
	}

	fmt.Println("\nOwned titles:")
	for _, title := range profile.OwnedTitles {
		marker := " "
		if title.ID == profile.EquippedTitleID {
			marker = "*"
		}
		fmt.Printf(" %s %-40s %s (%s)\n", marker, title.Name, title.ID, title.Type)
	}
	fmt.Println("\n* = equipped. Use 'equip <title-id>' to change.")
	return nil
}

// runEquip equips the named title; no argument unequips.
func (a *app) runEquip(args []string) error {
	titleID := ""
	if len(args) > 0 {
		titleID = args[0]
	}

	profile, err := a.storage.Profiles().Load(a.ctx, a.userID, a.userID)
	if err != nil {
		return err
	}

	if err := progression.EquipTitle(&profile, titleID); err != nil {
		return err
	}
	if err := a.storage.Profiles().Save(a.ctx, a.userID, profile); err != nil {
		return err
	}

	if titleID == "" {
		fmt.Println("Title unequipped.")
	} else {
		fmt.Printf("Equipped %s.\n", titleID)
	}
	return nil
}

// runHistory shows the most recent matches, newest first.
func (a *app) runHistory(args []string) error {
	limit := 10
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed <= 0 {
			return fmt.Errorf("invalid count %q", args[0])
		}
		limit = parsed
	}

	matches, err := a.storage.GetRecentMatches(a.ctx, a.userID, limit)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("No matches yet.")
		return nil
	}

	fmt.Println()
	for _, m := range matches {
		outcome := "L"
		switch {
		case m.Tie:
			outcome = "T"
		case m.Won:
			outcome = "W"
		}
		queue := "casual"
		if m.Ranked {
			queue = "ranked"
		}
		line := fmt.Sprintf("%s  %s %-3s %-6s %2d-%-2d",
			m.PlayedAt.Local().Format("2006-01-02 15:04"),
			outcome, m.GameType, queue, m.Team1Score, m.Team2Score)
		if m.MMRBefore != nil && m.MMRAfter != nil {
			line += fmt.Sprintf("  MMR %d -> %d", *m.MMRBefore, *m.MMRAfter)
		}
		fmt.Println(line)
	}
	fmt.Println()
	return nil
}

// runChart renders the rating timeline to an HTML file and opens it.
func (a *app) runChart(args []string) error {
	gameType := string(game.GameType1v1)
	if len(args) > 0 {
		switch game.GameType(args[0]) {
		case game.GameType1v1, game.GameType2v2:
			gameType = args[0]
		default:
			return fmt.Errorf("unknown game type %q", args[0])
		}
	}

	timeline, err := a.storage.GetMMRTimeline(a.ctx, a.userID, gameType, time.Time{}, time.Time{}, storage.PeriodAll)
	if err != nil {
		return err
	}

	cfg := charts.DefaultChartConfig()
	cfg.Title = fmt.Sprintf("%s MMR - %s", gameType, a.userID)
	cfg.Subtitle = fmt.Sprintf("%d points, peak %d", len(timeline.Entries), timeline.HighestMMR)

	outputPath := filepath.Join(os.TempDir(), fmt.Sprintf("highcard-mmr-%s.html", gameType))
	if err := charts.RenderMMRChart([]*storage.Timeline{timeline}, cfg, outputPath); err != nil {
		return err
	}

	fmt.Printf("Chart written to %s\n", outputPath)
	if err := charts.OpenInBrowser(outputPath); err != nil {
		fmt.Printf("Open it manually (%v)\n", err)
	}
	return nil
}

// runExport writes the match history to a CSV or JSON file. The format is
// inferred from the file extension.
func (a *app) runExport(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: export <file.csv|file.json>")
	}
	path := args[0]

	format, err := export.ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return err
	}

	matches, err := a.storage.GetRecentMatches(a.ctx, a.userID, 1000)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("no matches to export")
	}

	exporter := export.NewExporter(export.Options{
		Format:     format,
		FilePath:   path,
		PrettyJSON: true,
		Overwrite:  true,
	})
	if err := exporter.ExportMatches(matches); err != nil {
		return err
	}

	fmt.Printf("Exported %d matches to %s\n", len(matches), path)
	return nil
}

// runBackup creates a database backup, encrypted when a password is given.
func (a *app) runBackup(args []string) error {
	cfg := storage.DefaultBackupConfig()
	if len(args) > 0 {
		cfg.Password = args[0]
	}

	bm := storage.NewBackupManager(a.dbPath)
	path, err := bm.Backup(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Backup written to %s\n", path)
	return nil
}

// runListBackups lists the backups beside the database.
func (a *app) runListBackups() error {
	bm := storage.NewBackupManager(a.dbPath)
	backups, err := bm.ListBackups("")
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Printf("No backups in %s\n", bm.BackupDir())
		return nil
	}

	fmt.Println()
	for _, b := range backups {
		kind := "plain"
		if b.Encrypted {
			kind = "encrypted"
		}
		fmt.Printf("%s  %8d bytes  %s  %s\n",
			b.ModTime.Format("2006-01-02 15:04"), b.Size, kind, b.Name)
	}
	fmt.Println()
	return nil
}

// runRestore replaces the live database with a verified backup. Bare
// names resolve against the backup directory.
func (a *app) runRestore(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: restore <file> [password]")
	}

	bm := storage.NewBackupManager(a.dbPath)
	backupPath := args[0]
	if _, err := os.Stat(backupPath); err != nil {
		backupPath = filepath.Join(bm.BackupDir(), args[0])
	}

	password := ""
	if len(args) > 1 {
		password = args[1]
	}

	if err := bm.Restore(backupPath, password); err != nil {
		return err
	}

	fmt.Printf("Restored %s over %s.\n", backupPath, a.dbPath)
	fmt.Println("Restart to play on the restored database.")
	return nil
}
