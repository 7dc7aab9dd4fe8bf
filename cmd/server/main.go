package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/adjquiz/internal/bank"
	"github.com/playperu/adjquiz/internal/config"
	"github.com/playperu/adjquiz/internal/database"
	"github.com/playperu/adjquiz/internal/grammar"
	"github.com/playperu/adjquiz/internal/handler/health"
	"github.com/playperu/adjquiz/internal/migrations"
	"github.com/playperu/adjquiz/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- Quiz ---
	book, err := grammar.Load()
	if err != nil {
		return fmt.Errorf("loading grammar rules: %w", err)
	}

	src := bank.FromConfig(cfg.BankURL, cfg.BankPath)
	loader := bank.NewLoader(src, logger)
	logger.Info("question bank source", "source", src.String())

	quiz := cfg.Quiz()
	quiz.References = book

	sessions := server.NewRegistry(cfg.SessionTTL)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Loader:   loader,
		Quiz:     quiz,
		Grammar:  book,
		Prefs:    server.NewPrefStore(db),
		Sessions: sessions,
		SPADir:   cfg.SPADir,
	}, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, map[string]health.Checker{
			"sqlite": database.Checker{DB: db},
			"bank":   loader,
		}).Routes())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr,
			"round_size", quiz.RoundSize, "hint_policy", quiz.Hints.String())
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	g.Go(func() error {
		return sessions.Run(gctx, cfg.SweepInterval, logger)
	})

	return g.Wait()
}
