package handlers

import (
	"context"
	"strings"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const photoHint = `I can only read text right now. Send the photo again with a caption describing the food, e.g. "150g chickpea curry with rice", or just type it.`

// PhotoHandler handles photo messages. With photo analysis enabled the image
// is read by the model; otherwise the caption is logged like a text message.
type PhotoHandler struct {
	*session
}

// Handle processes a photo message
func (h *PhotoHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	caption := strings.TrimSpace(message.Caption)

	if h.deps.Files == nil || !h.deps.FoodLog.PhotosEnabled() || len(message.Photo) == 0 {
		if caption == "" {
			return h.reply(chatID, photoHint)
		}
		return h.logFood(ctx, chatID, caption)
	}

	// the last size is the largest
	photo := message.Photo[len(message.Photo)-1]
	date := h.selectedDate(ctx, chatID)
	var entries []domain.FoodLogEntry
	err := h.withProgress(ctx, chatID, analyzingPhotoText, func() error {
		data, mime, err := h.deps.Files.Fetch(ctx, photo.FileID)
		if err != nil {
			return err
		}
		entries, err = h.deps.FoodLog.AnalyzePhoto(ctx, data, mime, caption, date)
		return err
	})
	if err != nil {
		if caption == "" {
			return h.fail(ctx, chatID, err)
		}
		logger.WithContext(ctx).Warn("Photo analysis failed, logging the caption instead", "chat_id", chatID, "error", err)
		return h.logFood(ctx, chatID, caption)
	}
	return h.logged(ctx, chatID, date, entries)
}
