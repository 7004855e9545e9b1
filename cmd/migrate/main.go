package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"firemonitor/internal/models"
	"firemonitor/internal/repository/sqlite"
)

// Initializes the fire monitor database schema and optionally cleans up
// alerts left ACTIVE by an unclean shutdown.
func main() {
	dbPath := flag.String("db", filepath.Join("data", "fire_monitor.db"), "Database path")
	resolveStale := flag.Bool("resolve-stale", false, "Resolve any alert still marked ACTIVE")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Printf("✅ Database ready at %s\n", *dbPath)

	alerts := sqlite.NewAlertRepository(db)

	if *resolveStale {
		resolved := 0
		for {
			active, err := alerts.FindMostRecentActive()
			if err != nil {
				log.Fatalf("Failed to look up active alerts: %v", err)
			}
			if active == nil {
				break
			}
			if err := alerts.Resolve(active.ID, time.Now()); err != nil {
				log.Fatalf("Failed to resolve alert %d: %v", active.ID, err)
			}
			fmt.Printf("✓ Resolved stale alert %d (created %s)\n", active.ID, active.CreatedAt.Format(time.RFC3339))
			resolved++
		}
		if resolved == 0 {
			fmt.Println("No stale alerts found")
		}
	}

	recent, err := alerts.GetRecent(10)
	if err != nil {
		log.Fatalf("Failed to query alerts: %v", err)
	}

	fmt.Printf("\n📊 Recent alerts: %d\n", len(recent))
	for _, alert := range recent {
		marker := "✓"
		if alert.Status == models.AlertStatusActive {
			marker = "🔥"
		}
		fmt.Printf("   %s #%d %s %s (%d detections) %s\n",
			marker, alert.ID, alert.Type, alert.Severity,
			alert.DetectionsCount, alert.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}
