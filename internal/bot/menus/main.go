package menus

import (
	"fmt"
	"strings"

	"github.com/Cinemaker123/nutrition-tracker/internal/bot/keyboards"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/Cinemaker123/nutrition-tracker/internal/nutrition"
	"github.com/Cinemaker123/nutrition-tracker/internal/services"
	"github.com/Cinemaker123/nutrition-tracker/internal/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of the Telegram client the bot uses. *tgbotapi.BotAPI
// satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// maxMessageLength stays under Telegram's 4096 character limit
const maxMessageLength = 4000

const mainMenuText = `🥗 *Nutrition Tracker*

Describe what you ate in plain words, e.g. "2 eggs and a slice of sourdough", and I will log calories, protein, carbs, fat and fiber for the selected day.

Choose an action:`

var statusIcons = map[nutrition.Status]string{
	nutrition.StatusOK:   "✅",
	nutrition.StatusWarn: "🟡",
	nutrition.StatusOver: "🔴",
}

// send delivers a Markdown message and retries as plain text when Telegram
// rejects the markup
func send(api Sender, msg tgbotapi.MessageConfig) error {
	msg.Text = utils.Truncate(msg.Text, maxMessageLength)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := api.Send(msg); err != nil {
		msg.ParseMode = ""
		if _, err := api.Send(msg); err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
	}
	return nil
}

// SendText sends plain text with an optional keyboard
func SendText(api Sender, chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	_, err := api.Send(msg)
	return err
}

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, mainMenuText)
	msg.ReplyMarkup = keyboards.MainMenu()
	return send(api, msg)
}

// DaySummaryText renders a day's totals, coaching and advisories
func DaySummaryText(s nutrition.DaySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 *%s* (%d %s)\n\n", s.Date.Time().Format("Mon, Jan 2"), s.EntryCount, plural(s.EntryCount, "entry", "entries"))
	for _, r := range s.Nutrients {
		fmt.Fprintf(&b, "%s *%s:* %s / %s (%.0f%%)\n",
			statusIcons[r.Status], r.Label,
			nutrition.FormatAmount(r.Nutrient, r.Value), nutrition.FormatAmount(r.Nutrient, r.Goal), r.Percent)
		if r.Message.Text != "" {
			fmt.Fprintf(&b, "   _%s_\n", utils.EscapeMarkdown(r.Message.Text))
		}
	}
	if len(s.Advisories) > 0 {
		b.WriteString("\n")
		for _, a := range s.Advisories {
			fmt.Fprintf(&b, "💡 %s\n", utils.EscapeMarkdown(a.Message))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// EntriesText lists entries with their calories and protein
func EntriesText(title string, entries []domain.FoodLogEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", title)
	if len(entries) == 0 {
		b.WriteString("Nothing logged yet.")
		return b.String()
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "• %s, %.0fg: %s, %s protein\n",
			utils.EscapeMarkdown(e.Food), e.AmountG,
			nutrition.FormatAmount(domain.NutrientKcal, e.Kcal), nutrition.FormatAmount(domain.NutrientProtein, e.ProteinG))
	}
	return strings.TrimRight(b.String(), "\n")
}

// WeekText renders one line per day plus the window's average
func WeekText(days []domain.DayTotals, label string, goals domain.MacroGoals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *%s*\n\n", label)
	for _, d := range days {
		fmt.Fprintf(&b, "%s: %s, P %s, C %s, F %s, Fi %s\n",
			nutrition.FormatShort(d.Date),
			nutrition.FormatAmount(domain.NutrientKcal, d.Kcal),
			nutrition.FormatAmount(domain.NutrientProtein, d.ProteinG),
			nutrition.FormatAmount(domain.NutrientCarbs, d.CarbsG),
			nutrition.FormatAmount(domain.NutrientFat, d.FatG),
			nutrition.FormatAmount(domain.NutrientFiber, d.FiberG))
	}
	if len(days) > 0 {
		avg := nutrition.MultiDayTotal(days).Macros.Scale(1 / float64(len(days)))
		fmt.Fprintf(&b, "\n*Average:* %s of %s, %s of %s protein",
			nutrition.FormatAmount(domain.NutrientKcal, avg.Kcal), nutrition.FormatAmount(domain.NutrientKcal, goals.Kcal),
			nutrition.FormatAmount(domain.NutrientProtein, avg.ProteinG), nutrition.FormatAmount(domain.NutrientProtein, goals.ProteinG))
	}
	return b.String()
}

// RecipesText renders generated suggestions
func RecipesText(r services.RecipeResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🥗 *Recipe ideas for %s*\n", r.DateRange)
	for _, s := range r.Suggestions {
		icon := "🍲"
		if s.Type == domain.MealTypeSnack {
			icon = "🍎"
		}
		fmt.Fprintf(&b, "\n%s *%s* (%s)\n%s\n", icon, utils.EscapeMarkdown(s.Name), s.PrimaryMacro.Label(), utils.EscapeMarkdown(s.Description))
	}
	return strings.TrimRight(b.String(), "\n")
}

// AnalysisText renders a generated analysis
func AnalysisText(a services.AnalysisResult) string {
	return fmt.Sprintf("🧠 *Analysis for %s* (%d %s with entries)\n\n%s",
		a.DateRange, a.DaysAnalyzed, plural(a.DaysAnalyzed, "day", "days"), utils.EscapeMarkdown(a.Analysis))
}

// SendDaySummary sends the summary of a day with its navigation keyboard
func SendDaySummary(api Sender, chatID int64, s nutrition.DaySummary, today domain.Date) error {
	msg := tgbotapi.NewMessage(chatID, DaySummaryText(s))
	msg.ReplyMarkup = keyboards.DayNavigation(s.Date, today)
	return send(api, msg)
}

// SendEntries sends a titled entry list
func SendEntries(api Sender, chatID int64, title string, entries []domain.FoodLogEntry) error {
	return send(api, tgbotapi.NewMessage(chatID, EntriesText(title, entries)))
}

// SendWithMenuButton sends Markdown text followed by a button back to the menu
func SendWithMenuButton(api Sender, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BackToMenu()
	return send(api, msg)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
