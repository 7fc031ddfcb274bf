// Package bot runs the Telegram front end of the food log.
package bot

import (
	"context"
	"fmt"

	"github.com/Cinemaker123/nutrition-tracker/internal/bot/handlers"
	"github.com/Cinemaker123/nutrition-tracker/internal/bot/state"
	"github.com/Cinemaker123/nutrition-tracker/internal/config"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *handlers.UpdateHandler
}

func NewBot(cfg config.TelegramConfig, deps handlers.Dependencies, stateManager state.StateManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	api.Debug = cfg.Debug
	if deps.AuthTTL <= 0 {
		deps.AuthTTL = cfg.AuthTTL
	}
	if deps.Files == nil && deps.FoodLog.PhotosEnabled() {
		deps.Files = newTelegramFiles(api)
	}

	logger.Info("Bot authorized", "account", api.Self.UserName)
	return &Bot{
		api:     api,
		handler: handlers.NewUpdateHandler(api, deps, stateManager),
	}, nil
}

// Start processes updates one at a time until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	l := logger.WithFields("update_id", update.UpdateID)
	if chat := update.FromChat(); chat != nil {
		l = l.With("chat_id", chat.ID)
	}
	ctx = logger.NewContext(ctx, l)

	defer func() {
		if r := recover(); r != nil {
			l.Error("Panic while handling update", "panic", r)
		}
	}()

	if err := b.handler.Handle(ctx, update); err != nil {
		l.Error("Error handling update", "error", err)
	}
}
