// Package main provides a tool to seed the database with sample catalog
// items and list entries.
//
// This creates a handful of well-known titles per category, an optional
// test user, and list entries so that stats and reconciliation can be
// exercised against realistic data.
//
// Usage:
//
//	DATA_PATH=~/MediaLog/data go run ./cmd/seed
//	DATA_PATH=~/MediaLog/data go run ./cmd/seed --with-entries
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/errors"
	"github.com/medialog/medialog-server/internal/registry"
	"github.com/medialog/medialog-server/internal/service"
	"github.com/medialog/medialog-server/internal/store"
)

var withEntries = flag.Bool("with-entries", false, "Also create a test user with list entries")

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

	ctx := context.Background()
	items := sampleItems()

	created := 0
	for _, item := range items {
		item.InitTimestamps()
		if err := s.CreateMediaItem(ctx, item); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			log.Fatalf("Failed to create item %s: %v", item.ID, err)
		}
		created++
	}
	fmt.Printf("Created %d catalog items (%d already present)\n", created, len(items)-created)

	if !*withEntries {
		return
	}

	users := service.NewUserService(s, logger)
	lists := service.NewListService(s, reg, logger)

	user, err := users.CreateUser(ctx, service.CreateUserInput{
		Email:       "seed@example.com",
		DisplayName: "Seed User",
	})
	if err != nil {
		if !errors.Is(err, errors.ErrAlreadyExists) {
			log.Fatalf("Failed to create test user: %v", err)
		}
		existing, err := s.GetUserByEmail(ctx, "seed@example.com")
		if err != nil {
			log.Fatalf("Failed to load existing test user: %v", err)
		}
		user = existing
	}
	fmt.Printf("Seeding entries for user %s (%s)\n", user.DisplayName, user.ID)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	added := 0
	for _, item := range items {
		params := service.AddEntryParams{}
		statuses := item.Category.Statuses()
		status := statuses[rng.Intn(len(statuses))]
		params.Status = &status

		if status == domain.StatusCompleted {
			rating := float64(5+rng.Intn(11)) / 2 // 2.5 .. 7.5 in halves
			params.Rating = &rating
			if item.Category.HasSpecific() {
				params.Progress = item.Units
			} else if item.Category == domain.CategoryMovies {
				params.Progress = 1
			}
		}
		if item.Category == domain.CategoryGames {
			params.PlaytimeMin = 60 * (1 + rng.Intn(40))
		}

		if _, err := lists.AddEntry(ctx, user.ID, item.Category, item.ID, params); err != nil {
			if errors.Is(err, errors.ErrAlreadyExists) {
				continue
			}
			log.Fatalf("Failed to add entry for %s: %v", item.ID, err)
		}
		added++
	}
	fmt.Printf("Added %d list entries\n", added)
}

// sampleItems returns a fixed catalog spread across every category.
// IDs are stable so reruns are idempotent.
func sampleItems() []*domain.MediaItem {
	items := []*domain.MediaItem{
		{
			Category: domain.CategorySeries, Title: "The Wire",
			ReleaseYear: 2002, Units: 60, RuntimeMin: 57,
			Genres: []string{"crime", "drama"}, Network: "HBO",
			SubUnits: []int{13, 12, 12, 13, 10},
		},
		{
			Category: domain.CategorySeries, Title: "Twin Peaks",
			ReleaseYear: 1990, Units: 30, RuntimeMin: 47,
			Genres: []string{"mystery", "drama"}, Network: "ABC",
		},
		{
			Category: domain.CategoryAnime, Title: "Cowboy Bebop",
			ReleaseYear: 1998, Units: 26, RuntimeMin: 24,
			Genres: []string{"sci-fi", "action"}, Organization: "Sunrise",
		},
		{
			Category: domain.CategoryAnime, Title: "Mushishi",
			ReleaseYear: 2005, Units: 26, RuntimeMin: 24,
			Genres: []string{"fantasy", "slice-of-life"}, Organization: "Artland",
		},
		{
			Category: domain.CategoryMovies, Title: "Heat",
			ReleaseYear: 1995, RuntimeMin: 170,
			Genres: []string{"crime", "thriller"},
		},
		{
			Category: domain.CategoryMovies, Title: "Spirited Away",
			ReleaseYear: 2001, RuntimeMin: 125,
			Genres: []string{"fantasy", "animation"}, Organization: "Studio Ghibli",
		},
		{
			Category: domain.CategoryBooks, Title: "The Left Hand of Darkness",
			ReleaseYear: 1969, Units: 304,
			Genres: []string{"sci-fi"}, Author: "Ursula K. Le Guin",
		},
		{
			Category: domain.CategoryBooks, Title: "The Name of the Rose",
			ReleaseYear: 1980, Units: 512,
			Genres: []string{"mystery", "historical"}, Author: "Umberto Eco",
		},
		{
			Category: domain.CategoryGames, Title: "Hades",
			ReleaseYear: 2020,
			Genres:      []string{"roguelike", "action"}, Organization: "Supergiant Games", Platform: "PC",
		},
		{
			Category: domain.CategoryGames, Title: "Outer Wilds",
			ReleaseYear: 2019,
			Genres:      []string{"adventure", "puzzle"}, Organization: "Mobius Digital", Platform: "PC",
		},
		{
			Category: domain.CategoryManga, Title: "Berserk",
			ReleaseYear: 1989, Units: 364,
			Genres: []string{"dark-fantasy", "seinen"}, Author: "Kentaro Miura",
		},
		{
			Category: domain.CategoryManga, Title: "Vinland Saga",
			ReleaseYear: 2005, Units: 210,
			Genres: []string{"historical", "seinen"}, Author: "Makoto Yukimura",
		},
	}

	for i, item := range items {
		item.ID = fmt.Sprintf("itm_seed_%02d", i+1)
	}
	return items
}
