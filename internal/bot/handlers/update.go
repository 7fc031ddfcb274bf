package handlers

import (
	"context"

	"github.com/Cinemaker123/nutrition-tracker/internal/bot/menus"
	"github.com/Cinemaker123/nutrition-tracker/internal/bot/state"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	session         *session
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
	photoHandler    *PhotoHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	s := newSession(api, deps, stateManager)
	return &UpdateHandler{
		session:         s,
		callbackHandler: &CallbackHandler{s},
		commandHandler:  &CommandHandler{s},
		textHandler:     &TextHandler{s},
		photoHandler:    &PhotoHandler{s},
	}
}

// Handle processes a telegram update. Commands decide about authorization
// themselves; everything else needs a logged in chat, except the password
// reply that follows a bare /login.
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		query := update.CallbackQuery
		if query.Message == nil {
			return nil
		}
		if !h.session.authorized(ctx, query.Message.Chat.ID) {
			_, err := h.session.api.Request(tgbotapi.NewCallback(query.ID, loginHint))
			return err
		}
		return h.callbackHandler.Handle(ctx, query)
	}

	message := update.Message
	if message == nil || message.Chat == nil {
		return nil
	}
	chatID := message.Chat.ID

	if message.IsCommand() {
		return h.commandHandler.Handle(ctx, message)
	}

	userState, err := h.session.state.GetUserState(ctx, chatID)
	if err != nil {
		logger.WithContext(ctx).Warn("Failed to read chat state", "chat_id", chatID, "error", err)
	}
	if userState == state.WaitingForPassword && message.Text != "" {
		return h.textHandler.Handle(ctx, message, userState)
	}

	if !h.session.authorized(ctx, chatID) {
		return h.session.reply(chatID, loginHint)
	}

	if message.Text != "" {
		return h.textHandler.Handle(ctx, message, userState)
	}
	if len(message.Photo) > 0 {
		return h.photoHandler.Handle(ctx, message)
	}
	return nil
}
