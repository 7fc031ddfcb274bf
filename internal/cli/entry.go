package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cinemaker123/nutrition-tracker/internal/app"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/spf13/cobra"
)

var (
	addDate  string
	addEntry domain.FoodLogEntry
	logDate  string
	listDate string
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List the entries of a day with their ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *app.App) error {
			date, err := a.FoodLog.ResolveDate(listDate)
			if err != nil {
				return err
			}
			entries, err := a.FoodLog.ListEntries(ctx, date)
			if err != nil {
				return err
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an entry with known macros (all of them, 0 included)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *app.App) error {
			date, err := a.FoodLog.ResolveDate(addDate)
			if err != nil {
				return err
			}
			entry := addEntry
			entry.EntryDate = date
			saved, err := a.FoodLog.AddEntry(ctx, entry)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) for %s\n", saved.Food, saved.ID, saved.EntryDate)
			return nil
		})
	},
}

var logCmd = &cobra.Command{
	Use:   "log <description>",
	Short: "Describe a meal in your own words and log the extracted macros",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *app.App) error {
			date, err := a.FoodLog.ResolveDate(logDate)
			if err != nil {
				return err
			}
			entries, err := a.FoodLog.AnalyzeText(ctx, strings.Join(args, " "), date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d item(s) for %s:\n", len(entries), date)
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *app.App) error {
			if err := a.FoodLog.DeleteEntry(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(entriesCmd, addCmd, logCmd, deleteCmd)

	entriesCmd.Flags().StringVar(&listDate, "date", "", "Date YYYY-MM-DD (default today)")

	f := addCmd.Flags()
	f.StringVar(&addDate, "date", "", "Date YYYY-MM-DD (default today)")
	f.StringVar(&addEntry.Food, "food", "", "Food label")
	f.Float64Var(&addEntry.AmountG, "amount", 0, "Amount in grams")
	f.Float64Var(&addEntry.Kcal, "kcal", 0, "Calories")
	f.Float64Var(&addEntry.ProteinG, "protein", 0, "Protein in grams")
	f.Float64Var(&addEntry.CarbsG, "carbs", 0, "Carbohydrates in grams")
	f.Float64Var(&addEntry.FatG, "fat", 0, "Fat in grams")
	f.Float64Var(&addEntry.FiberG, "fiber", 0, "Fiber in grams")
	// a macro left out is an error, never a silent zero
	for _, name := range []string{"food", "amount", "kcal", "protein", "carbs", "fat", "fiber"} {
		_ = addCmd.MarkFlagRequired(name)
	}

	logCmd.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default today)")
}
