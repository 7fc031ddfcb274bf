package handlers

import (
	"context"
	"strings"

	"github.com/Cinemaker123/nutrition-tracker/internal/bot/menus"
	"github.com/Cinemaker123/nutrition-tracker/internal/bot/state"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `Available commands:
/start - Show the main menu
/help - Show this message
/login <password> - Unlock the bot for this chat
/logout - Lock the bot again
/today - Today's totals and coaching
/week - Totals of the last 7 days
/analysis - Patterns in the last 7 days
/recipes - Meal ideas for your macro gaps

To log food, just describe it, e.g. "150g chickpea curry with rice". Entries go to the day you are looking at; use the arrows under a summary to switch days.`

// CommandHandler handles bot commands
type CommandHandler struct {
	*session
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	logger.WithContext(ctx).Info("Handling command", "command", message.Command(), "chat_id", chatID)

	switch message.Command() {
	case "start":
		if err := h.state.SetUserState(ctx, chatID, state.None); err != nil {
			logger.WithContext(ctx).Warn("Failed to reset chat state", "chat_id", chatID, "error", err)
		}
		if !h.authorized(ctx, chatID) {
			return h.reply(chatID, loginHint)
		}
		return menus.SendMainMenu(h.api, chatID)
	case "help":
		return h.reply(chatID, helpText)
	case "login":
		return h.handleLogin(ctx, message)
	case "logout":
		if err := h.state.Revoke(ctx, chatID); err != nil {
			return h.fail(ctx, chatID, err)
		}
		return h.reply(chatID, "Logged out.")
	}

	if !h.authorized(ctx, chatID) {
		return h.reply(chatID, loginHint)
	}

	switch message.Command() {
	case "today":
		return h.sendToday(ctx, chatID)
	case "week":
		return h.sendWeek(ctx, chatID)
	case "analysis":
		return h.sendAnalysis(ctx, chatID)
	case "recipes":
		return h.sendRecipes(ctx, chatID)
	default:
		return h.reply(chatID, "Unknown command. Use /help to see the available commands.")
	}
}

// handleLogin checks an inline password or waits for it as the next message
func (h *CommandHandler) handleLogin(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	password := strings.TrimSpace(message.CommandArguments())
	if password == "" {
		if err := h.state.SetUserState(ctx, chatID, state.WaitingForPassword); err != nil {
			return h.fail(ctx, chatID, err)
		}
		return h.reply(chatID, "Send the password as your next message.")
	}
	h.forget(ctx, chatID, message.MessageID)
	return h.login(ctx, chatID, password)
}
