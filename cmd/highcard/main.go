// Package main is the interactive HighCard client: play matches against
// simulated opponents, track ranked progression, and browse history.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/kwpid/HighCard-V2/internal/config"
	"github.com/kwpid/HighCard-V2/internal/events"
	"github.com/kwpid/HighCard-V2/internal/progression"
	"github.com/kwpid/HighCard-V2/internal/storage"
	"github.com/kwpid/HighCard-V2/internal/version"
)

var (
	debugMode = flag.Bool("debug", false, "Enable verbose debug logging")
	dbPath    = flag.String("db-path", "", "Database path (default: ~/.highcard/highcard.db)")
	username  = flag.String("username", "", "Player name (overrides config)")
)

// app carries the wiring shared by every CLI command.
type app struct {
	ctx        context.Context
	cfg        *config.Config
	storage    *storage.Service
	dispatcher *events.Dispatcher
	rng        *rand.Rand
	userID     string
	dbPath     string
	thinkMin   time.Duration
	thinkMax   time.Duration
	seasonOne  time.Time
	in         *bufio.Scanner
}

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	name := *username
	if name == "" {
		name = cfg.Player.Username
	}

	finalDBPath := *dbPath
	if finalDBPath == "" {
		finalDBPath, err = cfg.DatabasePath()
		if err != nil {
			log.Fatalf("Failed to resolve database path: %v", err)
		}
	}

	dbConfig := storage.DefaultConfig(finalDBPath)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	dispatcher := events.NewDispatcher()
	dispatcher.Register(events.NewLoggingObserver(*debugMode))

	thinkMin, thinkMax, err := cfg.ThinkDelayBounds()
	if err != nil {
		log.Fatalf("Invalid think delay config: %v", err)
	}

	a := &app{
		ctx:        context.Background(),
		cfg:        cfg,
		storage:    storage.NewService(db),
		dispatcher: dispatcher,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		userID:     name,
		dbPath:     finalDBPath,
		thinkMin:   thinkMin,
		thinkMax:   thinkMax,
		seasonOne:  cfg.SeasonOneStartOr(progression.DefaultSeasonOneStart),
		in:         bufio.NewScanner(os.Stdin),
	}

	fmt.Printf("HighCard %s\n", version.Version)
	fmt.Printf("Playing as %s\n\n", name)

	if err := a.checkSeason(); err != nil {
		log.Printf("Warning: season check failed: %v", err)
	}

	a.repl()
}

// checkSeason rolls the profile over a season boundary if one has passed
// since the last session, presenting any earned rewards.
func (a *app) checkSeason() error {
	profile, err := a.storage.Profiles().Load(a.ctx, a.userID, a.userID)
	if err != nil {
		return err
	}

	next, transition := progression.CheckAndAdvanceSeason(profile, time.Now().UTC(), a.seasonOne)
	if transition == nil {
		// A fresh profile adopts the current season silently; persist
		// the adoption so the next boundary is a real rollover.
		if next.Season != profile.Season {
			return a.storage.Profiles().Save(a.ctx, a.userID, next)
		}
		return nil
	}

	if err := a.storage.Profiles().Save(a.ctx, a.userID, next); err != nil {
		return err
	}

	a.dispatcher.Dispatch(events.Event{
		Type:    events.TypeSeasonRolled,
		Payload: events.SeasonRolledEvent{From: transition.From, To: transition.To},
	})

	fmt.Printf("Season %d has ended. Welcome to season %d!\n", transition.From, transition.To)
	displayRewards(transition.Rewards)
	fmt.Println()
	return nil
}

func (a *app) repl() {
	fmt.Println("Type 'help' for commands.")
	for {
		fmt.Print("> ")
		if !a.in.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		var err error
		switch cmd {
		case "help", "?":
			printHelp()
		case "play":
			err = a.runPlay(args)
		case "stats":
			err = a.runStats()
		case "titles":
			err = a.runTitles()
		case "equip":
			err = a.runEquip(args)
		case "history":
			err = a.runHistory(args)
		case "chart":
			err = a.runChart(args)
		case "export":
			err = a.runExport(args)
		case "backup":
			err = a.runBackup(args)
		case "backups":
			err = a.runListBackups()
		case "restore":
			err = a.runRestore(args)
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Printf("Unknown command %q. Type 'help' for commands.\n", cmd)
		}

		if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  play [1v1|2v2] [ranked|casual]  Play a match")
	fmt.Println("  stats                           Show profile, ranks and streaks")
	fmt.Println("  titles                          List owned titles")
	fmt.Println("  equip <title-id>                Equip a title (no id unequips)")
	fmt.Println("  history [n]                     Show recent matches")
	fmt.Println("  chart [1v1|2v2]                 Render the MMR chart and open it")
	fmt.Println("  export <file.csv|file.json>     Export match history")
	fmt.Println("  backup [password]               Back up the database (encrypted with a password)")
	fmt.Println("  backups                         List existing backups")
	fmt.Println("  restore <file> [password]       Restore the database from a backup")
	fmt.Println("  quit                            Exit")
}

// prompt reads one line of input with a label.
func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}
