package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"listing-backend/internal/budget"
	"listing-backend/internal/listings"
	"listing-backend/internal/llm"
	"listing-backend/internal/llm/gemini"
	"listing-backend/internal/llm/openai"
	"listing-backend/internal/prompts"
	"listing-backend/internal/shared/config"
	"listing-backend/internal/shared/server"
	"listing-backend/internal/shared/storage/db"
)

const llmTimeout = 90 * time.Second

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	ListingsRepo    listings.Repo
	BudgetGuard     *budget.Guard
	Prompts         *prompts.Library
	LLM             llm.Client
	ListingsService *listings.Service
	ListingsHandler *listings.Handler
}

// Build prepares dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo listings.Repo
	var guard *budget.Guard
	if sqlDB != nil {
		repo = &listings.PGRepo{DB: sqlDB}
		guard = budget.NewPostgresGuard(budget.NewPGStore(sqlDB), cfg.DailyBudgetUSD, cfg.BudgetHardStop)
	} else {
		repo = listings.NewMemoryRepo()
		guard = budget.NewGuard(cfg.DailyBudgetUSD, cfg.BudgetHardStop)
	}

	lib, err := prompts.Load()
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	client, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := listings.NewService(repo, client, lib, guard)
	handler := listings.NewHandler(svc)

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		ListingsRepo:    repo,
		BudgetGuard:     guard,
		Prompts:         lib,
		LLM:             client,
		ListingsService: svc,
		ListingsHandler: handler,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		ListingsHandler: handler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, llmTimeout)
	case "gemini":
		return gemini.New(ctx, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.GeminiBaseURL,
		})
	default:
		return llm.NewDummyClient(), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
