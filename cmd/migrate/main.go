// migrate applies or rolls back the embedded schema migrations.
//
// Usage: go run ./cmd/migrate [up|down]
// Defaults to up. Reads DATABASE_URL or DB_* like cmd/api.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Quotation-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Quotation-api/pkg/config"
	"github.com/jhoicas/Quotation-api/pkg/logger"
)

func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}
	if direction != "up" && direction != "down" {
		fmt.Fprintf(os.Stderr, "unknown direction %q, expected up or down\n", direction)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if direction == "down" {
		err = postgres.MigrateDown(pool, log)
	} else {
		err = postgres.RunMigrations(pool, log)
	}
	if err != nil {
		log.Fatal().Err(err).Str("direction", direction).Msg("migration failed")
	}
}
