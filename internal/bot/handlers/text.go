package handlers

import (
	"context"
	"strings"

	"github.com/Cinemaker123/nutrition-tracker/internal/bot/state"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TextHandler handles text messages
type TextHandler struct {
	*session
}

// Handle processes a text message given the chat's current state
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, userState string) error {
	switch userState {
	case state.WaitingForPassword:
		return h.handlePassword(ctx, message)
	default:
		return h.handleFood(ctx, message)
	}
}

func (h *TextHandler) handlePassword(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	if err := h.state.SetUserState(ctx, chatID, state.None); err != nil {
		logger.WithContext(ctx).Warn("Failed to reset chat state", "chat_id", chatID, "error", err)
	}
	h.forget(ctx, chatID, message.MessageID)
	return h.login(ctx, chatID, strings.TrimSpace(message.Text))
}

// handleFood treats any other text as a food description
func (h *TextHandler) handleFood(ctx context.Context, message *tgbotapi.Message) error {
	return h.logFood(ctx, message.Chat.ID, message.Text)
}
