package handlers

import (
	"context"
	"fmt"
	"sync"

	"github.com/Cinemaker123/nutrition-tracker/internal/bot/menus"
	"github.com/Cinemaker123/nutrition-tracker/internal/bot/state"
	"github.com/Cinemaker123/nutrition-tracker/internal/confirm"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	"github.com/Cinemaker123/nutrition-tracker/internal/nutrition"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	loginHint          = "🔒 Please log in first: /login <password>"
	invalidPassword    = "Invalid password"
	loggedIn           = "✅ Logged in."
	analyzingText      = "Analyzing..."
	analyzingPhotoText = "Looking at your photo..."
	generatingText     = "Thinking about your last days..."
	genericFailure     = "Something went wrong, please try again."
	aiFailure          = "The AI service is unavailable right now, please try again later."
	timeoutFailure     = "That took too long, please try again."
	storageFailure     = "Could not reach the food log, please try again."
	deleteListHeader   = "Tap an entry to delete it. Tap it a second time to confirm."
)

// session holds what every handler shares: the client, services, chat state
// and the delete confirmations of each chat
type session struct {
	api   menus.Sender
	deps  Dependencies
	state state.StateManager

	mu      sync.Mutex
	deletes map[int64]*confirm.Tracker
}

func newSession(api menus.Sender, deps Dependencies, sm state.StateManager) *session {
	return &session{
		api:     api,
		deps:    deps,
		state:   sm,
		deletes: make(map[int64]*confirm.Tracker),
	}
}

// deletesFor returns the confirmation tracker of one chat, creating it on first use
func (s *session) deletesFor(chatID int64) *confirm.Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.deletes[chatID]
	if !ok {
		t = confirm.NewTracker(s.deps.FoodLog.DeleteEntry)
		s.deletes[chatID] = t
	}
	return t
}

func (s *session) reply(chatID int64, text string) error {
	return menus.SendText(s.api, chatID, text, nil)
}

// authorized treats a state backend failure as logged out
func (s *session) authorized(ctx context.Context, chatID int64) bool {
	ok, err := s.state.IsAuthorized(ctx, chatID)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to read authorization", "chat_id", chatID, "error", err)
		return false
	}
	return ok
}

func (s *session) login(ctx context.Context, chatID int64, password string) error {
	if !s.deps.Password.Check(password) {
		logger.WithContext(ctx).Warn("Failed login attempt", "chat_id", chatID)
		return s.reply(chatID, invalidPassword)
	}
	if err := s.state.Authorize(ctx, chatID, s.deps.AuthTTL); err != nil {
		return s.fail(ctx, chatID, fmt.Errorf("authorize chat: %w", err))
	}
	logger.WithContext(ctx).Info("Chat logged in", "chat_id", chatID)
	if err := s.reply(chatID, loggedIn); err != nil {
		return err
	}
	return menus.SendMainMenu(s.api, chatID)
}

// forget removes a message that carried the password. Failures only get logged.
func (s *session) forget(ctx context.Context, chatID int64, messageID int) {
	if _, err := s.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		logger.WithContext(ctx).Debug("Could not delete password message", "chat_id", chatID, "error", err)
	}
}

// selectedDate is the date the chat navigated to, today when it never did
func (s *session) selectedDate(ctx context.Context, chatID int64) domain.Date {
	d, ok, err := s.state.SelectedDate(ctx, chatID)
	if err != nil {
		logger.WithContext(ctx).Warn("Failed to read selected date", "chat_id", chatID, "error", err)
	}
	if !ok || d.IsZero() {
		return s.deps.FoodLog.Today()
	}
	return d
}

func (s *session) selectDate(ctx context.Context, chatID int64, date domain.Date) {
	if err := s.state.SetSelectedDate(ctx, chatID, date); err != nil {
		logger.WithContext(ctx).Warn("Failed to store selected date", "chat_id", chatID, "error", err)
	}
}

// fail logs err and tells the user what went wrong in terms they can act on
func (s *session) fail(ctx context.Context, chatID int64, err error) error {
	apperrors.NewHandler(logger.WithContext(ctx)).Handle(ctx, err)

	text := genericFailure
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeNotFound:
		text = apperrors.PublicMessage(err)
	case apperrors.ErrorTypeExternal:
		text = aiFailure
	case apperrors.ErrorTypeTimeout:
		text = timeoutFailure
	case apperrors.ErrorTypeDatabase:
		text = storageFailure
	}
	return s.reply(chatID, text)
}

// withProgress shows a placeholder message while fn runs and removes it after
func (s *session) withProgress(ctx context.Context, chatID int64, text string, fn func() error) error {
	placeholder, err := s.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		logger.WithContext(ctx).Warn("Failed to send progress message", "chat_id", chatID, "error", err)
	}
	runErr := fn()
	if err == nil {
		if _, err := s.api.Request(tgbotapi.NewDeleteMessage(chatID, placeholder.MessageID)); err != nil {
			logger.WithContext(ctx).Debug("Failed to delete progress message", "chat_id", chatID, "error", err)
		}
	}
	return runErr
}

func (s *session) sendDay(ctx context.Context, chatID int64, date domain.Date) error {
	summary, err := s.deps.FoodLog.Summary(ctx, date, nil)
	if err != nil {
		return s.fail(ctx, chatID, err)
	}
	return menus.SendDaySummary(s.api, chatID, summary, s.deps.FoodLog.Today())
}

func (s *session) sendToday(ctx context.Context, chatID int64) error {
	today := s.deps.FoodLog.Today()
	s.selectDate(ctx, chatID, today)
	return s.sendDay(ctx, chatID, today)
}

func (s *session) sendWeek(ctx context.Context, chatID int64) error {
	days, label, err := s.deps.FoodLog.Week(ctx, s.selectedDate(ctx, chatID))
	if err != nil {
		return s.fail(ctx, chatID, err)
	}
	return menus.SendWithMenuButton(s.api, chatID, menus.WeekText(days, label, s.deps.FoodLog.Goals()))
}

func (s *session) sendAnalysis(ctx context.Context, chatID int64) error {
	end := s.selectedDate(ctx, chatID)
	return s.withProgress(ctx, chatID, generatingText, func() error {
		result, err := s.deps.Insights.AnalyzeWeek(ctx, end)
		if err != nil {
			return s.fail(ctx, chatID, err)
		}
		return menus.SendWithMenuButton(s.api, chatID, menus.AnalysisText(result))
	})
}

func (s *session) sendRecipes(ctx context.Context, chatID int64) error {
	end := s.selectedDate(ctx, chatID)
	return s.withProgress(ctx, chatID, generatingText, func() error {
		result, err := s.deps.Insights.SuggestRecipes(ctx, end)
		if err != nil {
			return s.fail(ctx, chatID, err)
		}
		return menus.SendWithMenuButton(s.api, chatID, menus.RecipesText(result))
	})
}

// logFood runs extraction for the selected date and shows what was stored
func (s *session) logFood(ctx context.Context, chatID int64, text string) error {
	date := s.selectedDate(ctx, chatID)
	var entries []domain.FoodLogEntry
	err := s.withProgress(ctx, chatID, analyzingText, func() error {
		var err error
		entries, err = s.deps.FoodLog.AnalyzeText(ctx, text, date)
		return err
	})
	if err != nil {
		return s.fail(ctx, chatID, err)
	}
	return s.logged(ctx, chatID, date, entries)
}

// logged resets the chat state and shows the stored entries with the day
func (s *session) logged(ctx context.Context, chatID int64, date domain.Date, entries []domain.FoodLogEntry) error {
	if err := s.state.SetUserState(ctx, chatID, state.None); err != nil {
		logger.WithContext(ctx).Warn("Failed to reset chat state", "chat_id", chatID, "error", err)
	}

	title := "Logged for " + nutrition.FormatShort(date)
	if err := menus.SendEntries(s.api, chatID, title, entries); err != nil {
		return err
	}
	return s.sendDay(ctx, chatID, date)
}
