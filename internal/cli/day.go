package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Cinemaker123/nutrition-tracker/internal/app"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/Cinemaker123/nutrition-tracker/internal/nutrition"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show a day's entries and goal progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *app.App) error {
			date, err := a.FoodLog.ResolveDate(todayDate)
			if err != nil {
				return err
			}
			entries, err := a.FoodLog.ListEntries(ctx, date)
			if err != nil {
				return err
			}
			summary, err := a.FoodLog.Summary(ctx, date, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printEntries(out, entries)
			fmt.Fprintln(out)
			printSummary(out, summary)
			return nil
		})
	},
}

var weekEnd string

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show daily totals for the 7 days ending on a date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *app.App) error {
			end, err := a.FoodLog.ResolveDate(weekEnd)
			if err != nil {
				return err
			}
			days, label, err := a.FoodLog.Week(ctx, end)
			if err != nil {
				return err
			}
			printWeek(cmd.OutOrStdout(), days, label, a.FoodLog.Goals())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd, weekCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	weekCmd.Flags().StringVar(&weekEnd, "end", "", "Last day of the window YYYY-MM-DD (default today)")
}

func printEntries(w io.Writer, entries []domain.FoodLogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-30s %6.0fg  %s  P %s  C %s  F %s  Fi %s\n",
			e.ID, e.Food, e.AmountG,
			nutrition.FormatAmount(domain.NutrientKcal, e.Kcal),
			nutrition.FormatAmount(domain.NutrientProtein, e.ProteinG),
			nutrition.FormatAmount(domain.NutrientCarbs, e.CarbsG),
			nutrition.FormatAmount(domain.NutrientFat, e.FatG),
			nutrition.FormatAmount(domain.NutrientFiber, e.FiberG))
	}
}

func printSummary(w io.Writer, s nutrition.DaySummary) {
	fmt.Fprintf(w, "Date: %s (as of %02d:00)\n", s.Date, s.Hour)
	fmt.Fprintf(w, "Entries: %d\n", s.EntryCount)
	for _, r := range s.Nutrients {
		fmt.Fprintf(w, "%-8s %s / %s (%.0f%%) [%s]\n", r.Label+":",
			nutrition.FormatAmount(r.Nutrient, r.Value), nutrition.FormatAmount(r.Nutrient, r.Goal), r.Percent, r.Status)
		if r.Message.Text != "" {
			fmt.Fprintf(w, "         %s\n", r.Message.Text)
		}
	}
	for _, a := range s.Advisories {
		fmt.Fprintf(w, "Note: %s\n", a.Message)
	}
}

func printWeek(w io.Writer, days []domain.DayTotals, label string, goals domain.MacroGoals) {
	fmt.Fprintln(w, label)
	fmt.Fprintln(w, strings.Repeat("-", len(label)))
	for _, d := range days {
		fmt.Fprintf(w, "%-8s %-12s P %-6s C %-6s F %-6s Fi %s\n",
			nutrition.FormatShort(d.Date),
			nutrition.FormatAmount(domain.NutrientKcal, d.Kcal),
			nutrition.FormatAmount(domain.NutrientProtein, d.ProteinG),
			nutrition.FormatAmount(domain.NutrientCarbs, d.CarbsG),
			nutrition.FormatAmount(domain.NutrientFat, d.FatG),
			nutrition.FormatAmount(domain.NutrientFiber, d.FiberG))
	}
	if len(days) > 0 {
		avg := nutrition.MultiDayTotal(days).Macros.Scale(1 / float64(len(days)))
		fmt.Fprintf(w, "Average: %s of %s\n",
			nutrition.FormatAmount(domain.NutrientKcal, avg.Kcal), nutrition.FormatAmount(domain.NutrientKcal, goals.Kcal))
	}
}
