// seed_users creates the default staff accounts in PostgreSQL.
// Existing usernames are left untouched, so running it twice is safe.
//
// Usage: go run ./cmd/seed_users
// Reads the same environment as cmd/api (DATABASE_URL or DB_*, JWT_SECRET).
package main

import (
	"context"
	"time"

	"github.com/jhoicas/Quotation-api/internal/application/auth"
	"github.com/jhoicas/Quotation-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Quotation-api/pkg/config"
	"github.com/jhoicas/Quotation-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(pool, log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.Config{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	})
	results, err := authUC.Seed(ctx, auth.DefaultSeedUsers)
	if err != nil {
		log.Fatal().Err(err).Msg("seed users")
	}
	for _, r := range results {
		if r.Created {
			log.Info().Str("username", r.Username).Msg("user created")
		} else {
			log.Info().Str("username", r.Username).Msg("user already exists, skipped")
		}
	}
}
