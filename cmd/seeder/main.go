package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/sports-manager/internal/auth"
	"github.com/mauv0809/sports-manager/internal/config"
	"github.com/mauv0809/sports-manager/internal/database"
	"github.com/mauv0809/sports-manager/internal/metrics"
	"github.com/mauv0809/sports-manager/internal/processor"
	"github.com/mauv0809/sports-manager/internal/store"
	"github.com/spf13/cobra"
)

// Simplified config loading for the script. Only the database settings are needed.
func loadConfig() (config.DBConfig, config.TursoConfig) {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}
	return config.DBConfig{
			Driver: getEnv("DB_DRIVER", config.DriverSQLite),
			Name:   getEnv("DB_NAME", "sports.db"),
			URL:    os.Getenv("DATABASE_URL"),
		}, config.TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		}
}

var fixturePath string

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Populate the league database from a YAML fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(fixturePath)
	},
}

func init() {
	rootCmd.Flags().StringVar(&fixturePath, "fixture", "cmd/seeder/seed.yaml", "YAML file with sports, teams and users")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Seeding failed: %s\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	log.Info("Starting database seeder...")
	dbCfg, tursoCfg := loadConfig()

	f, err := loadFixture(path)
	if err != nil {
		return fmt.Errorf("failed to load fixture: %w", err)
	}

	db, teardown, err := database.InitDB(dbCfg, tursoCfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer teardown()
	log.Info("Successfully connected to the database.", "driver", dbCfg.Driver)

	st := store.New(db)
	s := &seeder{
		store:     st,
		verifier:  auth.NewVerifier(st, clockwork.NewRealClock()),
		processor: processor.New(st, metrics.NewService()),
	}

	startTime := time.Now()
	sum, err := s.seed(context.Background(), f)
	if err != nil {
		return err
	}
	log.Info("Seeding complete",
		"sports", sum.Sports,
		"teams", sum.Teams,
		"users", sum.Users,
		"matches", sum.Matches,
		"duration", time.Since(startTime))
	return nil
}
