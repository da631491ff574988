// Package main provides the standalone REST API server over the local
// HighCard database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kwpid/HighCard-V2/internal/api"
	"github.com/kwpid/HighCard-V2/internal/config"
	"github.com/kwpid/HighCard-V2/internal/storage"
)

var (
	port   = flag.Int("port", 0, "API server port (overrides config)")
	dbPath = flag.String("db-path", "", "Database path (default: ~/.highcard/highcard.db)")
)

func main() {
	flag.Parse()

	fmt.Println("HighCard - REST API Server")
	fmt.Println("==========================")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	finalDBPath := *dbPath
	if finalDBPath == "" {
		finalDBPath, err = cfg.DatabasePath()
		if err != nil {
			log.Fatalf("Failed to resolve database path: %v", err)
		}
	}
	fmt.Printf("Database: %s\n", finalDBPath)

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

	storageService := storage.NewService(db)

	apiPort := cfg.API.Port
	if *port != 0 {
		apiPort = *port
	}

	server := api.NewServer(&api.Config{
		Port:         apiPort,
		RateLimitRPS: cfg.API.RateLimitRPS,
		EnableCORS:   cfg.API.EnableCORS,
	}, storageService)

	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}

	// Reload debug mode on config edits; port changes need a restart.
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		err := config.Watch(watchCtx, func(updated *config.Config) {
			log.Printf("Config reloaded (debug_mode=%v)", updated.App.DebugMode)
			if updated.API.Port != apiPort {
				log.Printf("API port changed in config; restart to apply")
			}
		})
		if err != nil && err != context.Canceled {
			log.Printf("Config watcher stopped: %v", err)
		}
	}()

	fmt.Println()
	fmt.Printf("API server running at http://localhost:%d\n", apiPort)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println()
	fmt.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	fmt.Println("API server stopped.")
}
