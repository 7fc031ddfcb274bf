package handlers

import (
	"context"
	"fmt"

	"github.com/Cinemaker123/nutrition-tracker/internal/bot/keyboards"
	"github.com/Cinemaker123/nutrition-tracker/internal/bot/menus"
	"github.com/Cinemaker123/nutrition-tracker/internal/bot/state"
	"github.com/Cinemaker123/nutrition-tracker/internal/confirm"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	"github.com/Cinemaker123/nutrition-tracker/internal/nutrition"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CallbackHandler handles callback query messages
type CallbackHandler struct {
	*session
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	chatID := query.Message.Chat.ID
	action, arg := keyboards.ParseData(query.Data)

	// delete taps answer with their own notice
	if action == keyboards.PrefixDelete {
		return h.handleDelete(ctx, query, arg)
	}
	h.answer(ctx, query, "")

	switch action {
	case keyboards.DataMainMenu:
		return menus.SendMainMenu(h.api, chatID)
	case keyboards.DataLogFood:
		return h.handleLogFood(ctx, chatID)
	case keyboards.DataToday:
		return h.sendToday(ctx, chatID)
	case keyboards.PrefixDay:
		date, err := domain.ParseDate(arg)
		if err != nil {
			return h.reply(chatID, "Unknown date.")
		}
		h.selectDate(ctx, chatID, date)
		return h.sendDay(ctx, chatID, date)
	case keyboards.DataWeek:
		return h.sendWeek(ctx, chatID)
	case keyboards.DataAnalysis:
		return h.sendAnalysis(ctx, chatID)
	case keyboards.DataRecipes:
		return h.sendRecipes(ctx, chatID)
	case keyboards.PrefixDelList:
		date, err := domain.ParseDate(arg)
		if err != nil {
			return h.reply(chatID, "Unknown date.")
		}
		return h.handleDeleteList(ctx, chatID, date)
	default:
		return h.reply(chatID, "Unknown action. Use /start to open the menu.")
	}
}

func (h *CallbackHandler) answer(ctx context.Context, query *tgbotapi.CallbackQuery, text string) {
	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, text)); err != nil {
		logger.WithContext(ctx).Warn("Failed to answer callback query", "error", err)
	}
}

func (h *CallbackHandler) handleLogFood(ctx context.Context, chatID int64) error {
	if err := h.state.SetUserState(ctx, chatID, state.WaitingForFood); err != nil {
		logger.WithContext(ctx).Warn("Failed to store chat state", "chat_id", chatID, "error", err)
	}
	date := h.selectedDate(ctx, chatID)
	return h.reply(chatID, fmt.Sprintf("What did you eat on %s? Describe it in your own words.", nutrition.FormatShort(date)))
}

func (h *CallbackHandler) handleDeleteList(ctx context.Context, chatID int64, date domain.Date) error {
	h.selectDate(ctx, chatID, date)
	h.deletesFor(chatID).ResetAll()
	entries, err := h.deps.FoodLog.ListEntries(ctx, date)
	if err != nil {
		return h.fail(ctx, chatID, err)
	}
	if len(entries) == 0 {
		return h.reply(chatID, "Nothing logged on "+nutrition.FormatShort(date)+".")
	}
	markup := h.deleteKeyboard(chatID, date, entries)
	return menus.SendText(h.api, chatID, deleteListHeader, &markup)
}

func (h *CallbackHandler) deleteKeyboard(chatID int64, date domain.Date, entries []domain.FoodLogEntry) tgbotapi.InlineKeyboardMarkup {
	deletes := h.deletesFor(chatID)
	return keyboards.DeleteList(date, entries, func(id string) bool {
		return deletes.State(id).Armed()
	})
}

// handleDelete runs one tap of the two-tap delete and redraws the list
func (h *CallbackHandler) handleDelete(ctx context.Context, query *tgbotapi.CallbackQuery, id string) error {
	chatID := query.Message.Chat.ID
	outcome, err := h.deletesFor(chatID).Click(ctx, id)

	switch outcome {
	case confirm.OutcomeArmed:
		h.answer(ctx, query, "Tap again to confirm")
	case confirm.OutcomeDeleted:
		logger.WithContext(ctx).Info("Deleted entry", "chat_id", chatID, "entry_id", id)
		h.answer(ctx, query, "Deleted")
	case confirm.OutcomeIgnored:
		h.answer(ctx, query, "")
		return nil
	case confirm.OutcomeFailed:
		apperrors.NewHandler(logger.WithContext(ctx)).Handle(ctx, err)
		if apperrors.TypeOf(err) == apperrors.ErrorTypeNotFound {
			h.answer(ctx, query, "Already deleted")
		} else {
			h.answer(ctx, query, "Could not delete, please try again")
		}
	}

	date := h.selectedDate(ctx, chatID)
	entries, err := h.deps.FoodLog.ListEntries(ctx, date)
	if err != nil {
		return h.fail(ctx, chatID, err)
	}
	if len(entries) == 0 {
		edit := tgbotapi.NewEditMessageText(chatID, query.Message.MessageID, "Nothing logged on "+nutrition.FormatShort(date)+".")
		if _, err := h.api.Request(edit); err != nil {
			return fmt.Errorf("failed to update delete list: %w", err)
		}
		return nil
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, query.Message.MessageID, h.deleteKeyboard(chatID, date, entries))
	if _, err := h.api.Request(edit); err != nil {
		return fmt.Errorf("failed to update delete list: %w", err)
	}
	return nil
}
