package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	router "github.com/dkeye/Doodle/internal/adapters/http"
	wsignal "github.com/dkeye/Doodle/internal/adapters/signal"
	"github.com/dkeye/Doodle/internal/app"
	"github.com/dkeye/Doodle/internal/catalog"
	"github.com/dkeye/Doodle/internal/config"
	"github.com/dkeye/Doodle/internal/core"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	_ = godotenv.Load()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg)

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("Server exited gracefully")
}

// setupLogging keeps the console writer in debug mode and switches to JSON lines otherwise.
func setupLogging(cfg *config.Config) {
	if cfg.Mode != "debug" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func run(ctx context.Context, cfg *config.Config) error {
	words, err := catalog.LoadWords(cfg.WordsFile)
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	boards, err := catalog.ListBoards(cfg.BoardsPath)
	if err != nil {
		return fmt.Errorf("load boards: %w", err)
	}
	if len(boards) == 0 {
		log.Warn().Str("dir", cfg.BoardsPath).Str("fallback", core.DefaultBoard).Msg("no boards found")
	}
	log.Info().Int("words", len(words)).Int("boards", len(boards)).Msg("catalogs loaded")

	pool := core.NewWordPool(words)
	reg := app.NewRegistry()
	dispatcher := app.NewDispatcher(reg, app.SimplePolicy{})
	manager := core.NewRoomManager(ctx, pool, core.NewBoardAllocator(boards), dispatcher, core.Options{Debug: cfg.Debug})
	defer manager.Close()

	orch := &app.Orchestrator{
		Registry: reg,
		Rooms:    manager,
	}
	ctl := wsignal.NewSignalWSController(orch, wsignal.Options{
		AllowedOrigin: cfg.AllowedOrigin,
		ReadLimit:     cfg.ReadLimit,
		PingPeriod:    cfg.PingPeriod,
		SendBuffer:    cfg.SendBuffer,
		RateLimit:     cfg.RateLimit,
		RateBurst:     cfg.RateBurst,
	})

	r := router.SetupRouter(ctx, cfg, router.Deps{
		Rooms:  manager,
		Words:  pool,
		Boards: boards,
		Signal: ctl,
	})
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("Doodle server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
