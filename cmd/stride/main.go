package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/avelasco/stride/internal/cli"
	"github.com/avelasco/stride/internal/coach"
	"github.com/avelasco/stride/internal/db"
	"github.com/avelasco/stride/internal/intelligence"
	"github.com/avelasco/stride/internal/llm"
	"github.com/avelasco/stride/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local overrides; absence is not an error.
	_ = godotenv.Load()

	// DB path: env var or default ~/.stride/stride.db
	dbPath := os.Getenv("STRIDE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".stride", "stride.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	sessionRepo := repository.NewSQLiteSessionRepo(database)
	messageRepo := repository.NewSQLiteMessageRepo(database)
	checkpointRepo := repository.NewSQLiteCheckpointRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	cfg := coach.DefaultConfig()
	engine, err := coach.NewEngine(cfg)
	if err != nil {
		return fmt.Errorf("building coaching engine: %w", err)
	}

	opts := []coach.Option{}
	if os.Getenv("STRIDE_LOG_TURNS") == "true" {
		opts = append(opts, coach.WithObserver(coach.NewLogTurnObserver(os.Stderr)))
	}

	app := &cli.App{Engine: engine}

	// LLM-backed reply and backtrack classification only when enabled;
	// everything else runs deterministically without it.
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		client := llm.NewOllamaClient(llmCfg, observer)

		app.Coach = intelligence.NewCoachService(client, true)
		opts = append(opts,
			coach.WithReplier(app.Coach),
			coach.WithClassifier(intelligence.NewClassifyService(client, true)),
		)
	}

	app.Sessions = coach.NewSessionService(engine, cfg, sessionRepo, messageRepo, checkpointRepo, uow, opts...)
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
