package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Cinemaker123/nutrition-tracker/internal/auth"
	"github.com/Cinemaker123/nutrition-tracker/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🔍 Checking configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Configuration is invalid:\n%v\n", err)
		os.Exit(1)
	}

	passwordKind := "plain text"
	if auth.IsBcryptHash(cfg.AppPassword) {
		passwordKind = "bcrypt hash"
	}

	fmt.Println("✅ Configuration is valid!")
	fmt.Printf("📋 Details:\n")
	fmt.Printf("  - App Password: %s\n", passwordKind)
	fmt.Printf("  - Timezone: %s\n", cfg.Timezone)
	fmt.Printf("  - HTTP Addr: %s (%s mode)\n", cfg.HTTP.Addr, cfg.HTTP.Mode)
	fmt.Printf("  - DB Driver: %s\n", cfg.DB.Driver)
	if cfg.DB.Driver == config.DriverSQLite {
		fmt.Printf("  - DB Path: %s\n", cfg.DB.Path)
	} else {
		fmt.Printf("  - DB Host: %s:%s\n", cfg.DB.Host, cfg.DB.Port)
		fmt.Printf("  - DB User: %s\n", cfg.DB.User)
		fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	}
	if cfg.Redis.Enabled() {
		fmt.Printf("  - Redis: %s (db %d)\n", cfg.Redis.Addr(), cfg.Redis.DB)
	} else {
		fmt.Printf("  - Redis: <not set, chat state kept in memory>\n")
	}
	fmt.Printf("  - Gemini API Key: %s\n", maskToken(cfg.AI.GeminiAPIKey))
	fmt.Printf("  - Kimi API Key: %s\n", maskToken(cfg.AI.KimiAPIKey))
	fmt.Printf("  - Extraction order: %s\n", strings.Join(cfg.AI.ExtractProviders, ", "))
	fmt.Printf("  - Telegram Token: %s\n", maskToken(cfg.Telegram.Token))
	fmt.Printf("  - Goals: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat, %.0fg fiber\n",
		cfg.Goals.Kcal, cfg.Goals.ProteinG, cfg.Goals.CarbsG, cfg.Goals.FatG, cfg.Goals.FiberG)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskToken(token string) string {
	if token == "" {
		return "<not set>"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
