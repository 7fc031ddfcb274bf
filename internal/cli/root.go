// Package cli implements the nutrition command line client. It reads the same
// configuration and database as the server.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/Cinemaker123/nutrition-tracker/internal/app"
	"github.com/Cinemaker123/nutrition-tracker/internal/config"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dbPath  string
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "nutrition",
	Short:         "nutrition logs meals and reports macro progress from your terminal",
	Long:          "nutrition reads and writes the food log of the nutrition tracker: daily summaries, 7-day views, AI macro extraction, analyses and recipe ideas.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logger.LevelWarn
		if verbose {
			level = logger.LevelDebug
		}
		logger.SetLogger(logger.New(cmd.ErrOrStderr(), logger.Config{Level: level, Format: "text"}))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to a SQLite database (overrides DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Environment file to load")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

func loadConfig() (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DB.Driver = config.DriverSQLite
		cfg.DB.Path = dbPath
	}
	return cfg, nil
}

// withApp runs fn against a freshly wired application and closes it afterwards
func withApp(cmd *cobra.Command, withAI bool, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, cfg, app.Options{WithAI: withAI})
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
