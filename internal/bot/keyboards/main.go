package keyboards

import (
	"fmt"
	"strings"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/Cinemaker123/nutrition-tracker/internal/nutrition"
	"github.com/Cinemaker123/nutrition-tracker/internal/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data. Parameterized actions are "<prefix><value>".
const (
	DataMainMenu  = "main_menu"
	DataToday     = "today"
	DataWeek      = "week"
	DataRecipes   = "recipes"
	DataAnalysis  = "analysis"
	DataLogFood   = "log_food"
	PrefixDay     = "day:"
	PrefixDelList = "dellist:"
	PrefixDelete  = "del:"
)

// maxButtonLabel keeps entry buttons on one line in most clients
const maxButtonLabel = 40

// ParseData splits callback data into its action and argument
func ParseData(data string) (action, arg string) {
	for _, prefix := range []string{PrefixDay, PrefixDelList, PrefixDelete} {
		if strings.HasPrefix(data, prefix) {
			return prefix, strings.TrimPrefix(data, prefix)
		}
	}
	return data, ""
}

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍽️ Log food", DataLogFood),
			tgbotapi.NewInlineKeyboardButtonData("📅 Today", DataToday),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Last 7 days", DataWeek),
			tgbotapi.NewInlineKeyboardButtonData("🧠 Analysis", DataAnalysis),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🥗 Recipe ideas", DataRecipes),
		),
	)
}

// DayNavigation moves between days and opens the delete list of date
func DayNavigation(date, today domain.Date) tgbotapi.InlineKeyboardMarkup {
	nav := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ "+nutrition.FormatShort(nutrition.PreviousDay(date)), PrefixDay+nutrition.PreviousDay(date).String()),
	)
	if !date.Equal(today) {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("📅 Today", DataToday))
	}
	if date.Before(today) {
		next := nutrition.NextDay(date)
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(nutrition.FormatShort(next)+" ▶️", PrefixDay+next.String()))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		nav,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete entries", PrefixDelList+date.String()),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Menu", DataMainMenu),
		),
	)
}

// DeleteList has one button per entry. armed reports whether an entry is
// waiting for its confirming tap.
func DeleteList(date domain.Date, entries []domain.FoodLogEntry, armed func(id string) bool) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(entries)+1)
	for _, e := range entries {
		label := fmt.Sprintf("🗑️ %s (%s)", e.Food, nutrition.FormatAmount(domain.NutrientKcal, e.Kcal))
		if armed(e.ID) {
			label = "⚠️ Tap again to delete " + e.Food
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(utils.Truncate(label, maxButtonLabel), PrefixDelete+e.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Back", PrefixDay+date.String()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// BackToMenu is a single button returning to the main menu
func BackToMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Menu", DataMainMenu),
		),
	)
}
