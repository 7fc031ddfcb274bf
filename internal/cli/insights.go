package cli

import (
	"context"
	"fmt"

	"github.com/Cinemaker123/nutrition-tracker/internal/app"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/spf13/cobra"
)

var (
	analyzeEnd  string
	analyzeSave bool
	recipesEnd  string
	recipesSave bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Write an AI analysis of the 7 days ending on a date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *app.App) error {
			end, err := a.FoodLog.ResolveDate(analyzeEnd)
			if err != nil {
				return err
			}
			result, err := a.Insights.AnalyzeWeek(ctx, end)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Analysis for %s (%d days with entries)\n\n%s\n", result.DateRange, result.DaysAnalyzed, result.Analysis)
			if !analyzeSave {
				return nil
			}
			saved, err := a.Insights.SaveAnalysis(ctx, result.DateRange, result.Analysis)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nSaved as %s\n", saved.ID)
			return nil
		})
	},
}

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Suggest meals that close the macro gaps of the last 2 days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *app.App) error {
			end, err := a.FoodLog.ResolveDate(recipesEnd)
			if err != nil {
				return err
			}
			result, err := a.Insights.SuggestRecipes(ctx, end)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recipe ideas for %s\n", result.DateRange)
			for _, s := range result.Suggestions {
				fmt.Fprintf(out, "\n%s [%s, %s]\n%s\n", s.Name, s.Type, s.PrimaryMacro.Label(), s.Description)
			}
			if !recipesSave {
				return nil
			}
			saved, err := a.Insights.SaveRecipeSet(ctx, domain.ArchivedRecipeSet{
				DateRange:    result.DateRange,
				Suggestions:  result.Suggestions,
				BasedOnDates: result.BasedOnDates,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nSaved as %s\n", saved.ID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd, recipesCmd)
	analyzeCmd.Flags().StringVar(&analyzeEnd, "end", "", "Last day of the window YYYY-MM-DD (default today)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Archive the analysis")
	recipesCmd.Flags().StringVar(&recipesEnd, "end", "", "Last day of the window YYYY-MM-DD (default today)")
	recipesCmd.Flags().BoolVar(&recipesSave, "save", false, "Archive the suggestions")
}
