package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Cinemaker123/nutrition-tracker/internal/api"
	"github.com/Cinemaker123/nutrition-tracker/internal/app"
	"github.com/Cinemaker123/nutrition-tracker/internal/auth"
	"github.com/Cinemaker123/nutrition-tracker/internal/bot"
	"github.com/Cinemaker123/nutrition-tracker/internal/bot/handlers"
	"github.com/Cinemaker123/nutrition-tracker/internal/bot/state"
	"github.com/Cinemaker123/nutrition-tracker/internal/config"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	defer logger.Close()

	if err := run(cfg); err != nil {
		logger.Fatal("Nutrition tracker stopped with error", "error", err)
	}
	logger.Info("Nutrition tracker exited")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting nutrition tracker", "addr", cfg.HTTP.Addr, "timezone", cfg.Timezone)

	a, err := app.New(ctx, cfg, app.Options{WithAI: true})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("Failed to release resources", "error", err)
		}
	}()

	checker := auth.NewChecker(cfg.AppPassword)

	// the bot is built before the server starts so a failure here leaves nothing running
	var telegramBot *bot.Bot
	if cfg.Telegram.Enabled() {
		sm, err := newStateManager(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer sm.Close()

		telegramBot, err = bot.NewBot(cfg.Telegram, handlers.Dependencies{
			FoodLog:  a.FoodLog,
			Insights: a.Insights,
			Password: checker,
		}, sm)
		if err != nil {
			return err
		}
	} else {
		logger.Info("TELEGRAM_BOT_TOKEN not set, bot disabled")
	}

	gin.SetMode(cfg.HTTP.Mode)
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      api.NewRouter(api.NewHandler(a.FoodLog, a.Insights), checker),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("HTTP server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if telegramBot != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- fmt.Errorf("telegram bot: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errCh:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	wg.Wait()
	return runErr
}

// newStateManager keeps chat state in redis when configured, in memory otherwise
func newStateManager(ctx context.Context, cfg config.RedisConfig) (state.StateManager, error) {
	if !cfg.Enabled() {
		logger.Info("Using in-memory chat state")
		return state.NewManager(), nil
	}
	sm, err := state.NewRedisManager(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("Using redis chat state", "addr", cfg.Addr())
	return sm, nil
}
