// Package app wires the catalog, stores, engine and the two I/O shells
// together and runs them until shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quizbot/internal/catalog"
	"quizbot/internal/config"
	"quizbot/internal/httpapi"
	"quizbot/internal/leaderboard"
	"quizbot/internal/quiz"
	"quizbot/internal/quiz/sqlite"
	"quizbot/internal/telegram"
)

type App struct {
	cfg    *config.Config
	log    *zap.SugaredLogger
	store  *sqlite.Store
	redis  *redis.Client
	bot    *telegram.Bot
	server *http.Server
}

func New(cfg *config.Config) (*App, error) {
	log, err := newLogger(cfg.Env)
	if err != nil {
		return nil, err
	}

	if cfg.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is required")
	}

	// An invalid catalog must stop the process before anything else opens.
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	store, err := sqlite.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("store init: %w", err)
	}

	redisClient, err := leaderboard.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if redisClient == nil {
		log.Infow("leaderboard cache disabled, no redis address configured")
	}

	engine := quiz.NewEngine(cat, store, store)
	top := leaderboard.New(store, leaderboard.NewRedisCache(redisClient), cfg.LeaderboardCacheTTL, log)

	bot, err := telegram.NewBot(cfg.TelegramToken, engine, top, cat, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(top, store, cat, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{
		cfg:    cfg,
		log:    log,
		store:  store,
		redis:  redisClient,
		bot:    bot,
		server: server,
	}, nil
}

// Run starts the bot and the HTTP server and blocks until SIGINT/SIGTERM or
// a fatal server error, then shuts both down and closes the stores.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.log.Infow("bot starting")
		a.bot.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.log.Infow("http server starting", "addr", a.cfg.HTTPAddr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Errorw("http server failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Warnw("http shutdown failed", "error", err)
	}

	wg.Wait()

	if a.redis != nil {
		_ = a.redis.Close()
	}
	if err := a.store.Close(); err != nil {
		a.log.Warnw("store close failed", "error", err)
	}
	a.log.Infow("shutdown complete")
}

func newLogger(env string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch env {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
