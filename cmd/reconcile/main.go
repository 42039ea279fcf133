// Package main provides a one-shot reconciliation pass over the database.
//
// It recomputes every stats row from raw entries, overwrites drifted rows,
// and prints a per-category drift report.
//
// Usage:
//
//	DATA_PATH=~/MediaLog/data go run ./cmd/reconcile
//	DATA_PATH=~/MediaLog/data go run ./cmd/reconcile --category anime
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/registry"
	"github.com/medialog/medialog-server/internal/service"
	"github.com/medialog/medialog-server/internal/stats"
	"github.com/medialog/medialog-server/internal/store"
)

var (
	category  = flag.String("category", "", "Reconcile a single category instead of all")
	tolerance = flag.Float64("tolerance", 0, "Float tolerance for drift comparisons (0 uses the default)")
)

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/MediaLog/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	reg := registry.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s, err := store.New(dbPath, logger, reg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	reconcile := service.NewReconcileService(s, reg, *tolerance, logger)
	ctx := context.Background()

	var reports []*stats.Report
	if *category != "" {
		c := domain.Category(*category)
		if !c.Valid() {
			log.Fatalf("Unknown category: %s", *category)
		}
		report, err := reconcile.RunCategory(ctx, c)
		if err != nil {
			log.Fatalf("Reconciliation failed: %v", err)
		}
		reports = append(reports, report)
	} else {
		reports, err = reconcile.RunAll(ctx)
		if err != nil {
			log.Fatalf("Reconciliation failed: %v", err)
		}
	}

	drifted := 0
	for _, report := range reports {
		fmt.Printf("\n%s: %d users checked", report.Category, report.UsersChecked)
		if report.Clean() {
			fmt.Printf(", clean\n")
			continue
		}
		drifted += len(report.Discrepancies)
		fmt.Printf(", %d discrepancies\n", len(report.Discrepancies))
		for _, d := range report.Discrepancies {
			fmt.Printf("  user=%s field=%s before=%.4f after=%.4f\n",
				d.UserID, d.Field, d.Before, d.After)
		}
	}

	if drifted > 0 {
		fmt.Printf("\nRepaired %d drifted fields.\n", drifted)
	} else {
		fmt.Println("\nAll stats rows reconciled cleanly.")
	}
}
