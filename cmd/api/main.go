// @title        Quotation API
// @version      1.0
// @description  Freight quotation backend: staff auth, quotation ledger and custom autocomplete lists.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Quotation-api/docs"
	"github.com/jhoicas/Quotation-api/internal/application/auth"
	"github.com/jhoicas/Quotation-api/internal/application/quotation"
	"github.com/jhoicas/Quotation-api/internal/application/suggestion"
	"github.com/jhoicas/Quotation-api/internal/domain/repository"
	"github.com/jhoicas/Quotation-api/internal/infrastructure/excel"
	"github.com/jhoicas/Quotation-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Quotation-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Quotation-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Quotation-api/internal/interfaces/http"
	"github.com/jhoicas/Quotation-api/pkg/config"
	"github.com/jhoicas/Quotation-api/pkg/logger"
)

// storage is the set of repositories behind the use cases.
type storage struct {
	users       repository.UserRepository
	suggestions repository.SuggestionRepository
	quotations  repository.QuotationRepository
	tx          quotation.TxRunner
	close       func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("memory storage selected, data is lost on restart")
		store := memory.NewStore()
		return &storage{
			users:       memory.NewUserRepository(store),
			suggestions: memory.NewSuggestionRepository(store),
			quotations:  memory.NewQuotationRepository(store),
			tx:          memory.NewTxRunner(store),
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(pool, log.Component("migrate")); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &storage{
		users:       postgres.NewUserRepository(pool),
		suggestions: postgres.NewSuggestionRepository(pool),
		quotations:  postgres.NewQuotationRepository(pool),
		tx:          postgres.NewTxRunner(pool),
		close:       pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("starting application")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer store.close()

	authUC := auth.NewAuthUseCase(store.users, auth.Config{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		ResetKey: cfg.Auth.ResetKey,
	})
	if !authUC.ResetKeyConfigured() {
		log.Warn().Msg("AUTH_ADMIN_RESET_KEY is empty, /api/auth/admin-reset-password accepts unauthenticated resets")
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.CompanyName)
	ledger := quotation.NewLedger(store.quotations, store.tx, pdfGenerator)
	registry := suggestion.NewRegistry(store.suggestions, excel.NewSuggestionWorkbook())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(log.Middleware())

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Quotation API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger file not found, /docs disabled")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		Ledger:    ledger,
		Registry:  registry,
		JWTSecret: cfg.JWT.Secret,
		Logger:    log,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("http server listening")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
