package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/patternlab/lotto-engine/internal/engine"
	"github.com/patternlab/lotto-engine/internal/models"
	"github.com/patternlab/lotto-engine/pkg/config"
	"github.com/patternlab/lotto-engine/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	// Auto migrate all models
	if err := db.AutoMigrate(
		&models.Prediction{},
		&models.HistoricalDraw{},
		&models.UserWeights{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	// Create indexes
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_predictions_user_created ON predictions(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_predictions_game_type ON predictions(game_type)",
		"CREATE INDEX IF NOT EXISTS idx_historical_draws_game_date ON historical_draws(game_type, draw_date DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func dropTables(db *database.DB) error {
	tables := []string{
		"user_weights",
		"historical_draws",
		"predictions",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}

// seedData loads a year of synthetic draw history per game so the analysis
// pipeline has something to chew on before the fetcher's first live pull.
func seedData(db *database.DB) error {
	rng := rand.New(rand.NewSource(42))

	for _, cfg := range engine.ListGameConfigs() {
		draws := make([]models.HistoricalDraw, 0, 104)
		drawDate := time.Now().UTC().AddDate(-1, 0, 0)

		for i := 0; i < 104; i++ {
			numbers := sampleNumbers(rng, cfg.Count, cfg.Min, cfg.Max)
			special := 0
			if cfg.SpecialBall != nil {
				special = cfg.SpecialBall.Min + rng.Intn(cfg.SpecialBall.Max-cfg.SpecialBall.Min+1)
			}

			draw, err := models.NewHistoricalDraw(cfg.ID, numbers, special, drawDate)
			if err != nil {
				return fmt.Errorf("failed to build draw for %s: %w", cfg.ID, err)
			}
			draws = append(draws, *draw)
			drawDate = drawDate.Add(3*24*time.Hour + 12*time.Hour)
		}

		if err := models.UpsertDraws(db, draws); err != nil {
			return fmt.Errorf("failed to seed draws for %s: %w", cfg.ID, err)
		}
		logrus.Infof("Seeded %d draws for %s", len(draws), cfg.ID)
	}

	return nil
}

func sampleNumbers(rng *rand.Rand, count, min, max int) []int {
	seen := make(map[int]bool, count)
	numbers := make([]int, 0, count)
	for len(numbers) < count {
		n := min + rng.Intn(max-min+1)
		if !seen[n] {
			seen[n] = true
			numbers = append(numbers, n)
		}
	}
	return numbers
}
