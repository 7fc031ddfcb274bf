package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
)

type Config struct {
	AppPassword string
	Timezone    string
	Location    *time.Location
	HTTP        HTTPConfig
	DB          DBConfig
	Redis       RedisConfig
	AI          AIConfig
	Telegram    TelegramConfig
	Logger      LoggerConfig
	Goals       domain.MacroGoals
}

type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Mode            string // gin mode: debug, release, test
}

type DBConfig struct {
	Driver   string // postgres or sqlite
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // sqlite file
}

// DSN returns the postgres connection string
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a redis host was configured
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Addr returns host:port
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type AIConfig struct {
	GeminiAPIKey      string
	GeminiModel       string
	GeminiRecipeModel string
	KimiAPIKey        string
	KimiModel         string
	KimiBaseURL       string
	ExtractProviders  []string // tried in order
	Timeout           time.Duration
}

type TelegramConfig struct {
	Token   string
	Debug   bool
	AuthTTL time.Duration
}

// Enabled reports whether the bot should start
func (c TelegramConfig) Enabled() bool {
	return c.Token != ""
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ProviderKimi   = "kimi"
	ProviderGemini = "gemini"
)

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not an integer", key, raw))
		return defaultValue
	}
	return v
}

func getFloatOrDefault(key string, defaultValue float64, errs *[]error) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a number", key, raw))
		return defaultValue
	}
	return v
}

func getDurationOrDefault(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a duration", key, raw))
		return defaultValue
	}
	return v
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func parseProviders(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads the configuration from the environment and validates it
func Load() (*Config, error) {
	var errs []error

	cfg := &Config{
		AppPassword: os.Getenv("APP_PASSWORD"),
		Timezone:    getEnvOrDefault("TZ_NAME", "Local"),
		HTTP: HTTPConfig{
			Addr:            getEnvOrDefault("HTTP_ADDR", ":8080"),
			ReadTimeout:     getDurationOrDefault("HTTP_READ_TIMEOUT", 15*time.Second, &errs),
			WriteTimeout:    getDurationOrDefault("HTTP_WRITE_TIMEOUT", 90*time.Second, &errs),
			ShutdownTimeout: getDurationOrDefault("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second, &errs),
			Mode:            getEnvOrDefault("GIN_MODE", "release"),
		},
		DB: DBConfig{
			Driver:   strings.ToLower(getEnvOrDefault("DB_DRIVER", DriverPostgres)),
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "nutrition_tracker"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
			Path:     getEnvOrDefault("DB_PATH", "data/nutrition.db"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getIntOrDefault("REDIS_DB", 0, &errs),
		},
		AI: AIConfig{
			GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
			GeminiModel:       getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
			GeminiRecipeModel: getEnvOrDefault("GEMINI_RECIPE_MODEL", "gemini-2.5-flash-lite"),
			KimiAPIKey:        os.Getenv("KIMI_API_KEY"),
			KimiModel:         getEnvOrDefault("KIMI_MODEL", "kimi-k2-turbo-preview"),
			KimiBaseURL:       getEnvOrDefault("KIMI_BASE_URL", "https://api.moonshot.cn/v1"),
			ExtractProviders:  parseProviders(getEnvOrDefault("AI_EXTRACT_PROVIDERS", "kimi,gemini")),
			Timeout:           getDurationOrDefault("AI_TIMEOUT", 60*time.Second, &errs),
		},
		Telegram: TelegramConfig{
			Token:   os.Getenv("TELEGRAM_BOT_TOKEN"),
			Debug:   getBoolOrDefault("TELEGRAM_DEBUG", false),
			AuthTTL: getDurationOrDefault("TELEGRAM_AUTH_TTL", 24*time.Hour, &errs),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
		Goals: domain.MacroGoals{Macros: domain.Macros{
			Kcal:     getFloatOrDefault("GOAL_KCAL", domain.DefaultGoals.Kcal, &errs),
			ProteinG: getFloatOrDefault("GOAL_PROTEIN_G", domain.DefaultGoals.ProteinG, &errs),
			CarbsG:   getFloatOrDefault("GOAL_CARBS_G", domain.DefaultGoals.CarbsG, &errs),
			FatG:     getFloatOrDefault("GOAL_FAT_G", domain.DefaultGoals.FatG, &errs),
			FiberG:   getFloatOrDefault("GOAL_FIBER_G", domain.DefaultGoals.FiberG, &errs),
		}},
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		errs = append(errs, fmt.Errorf("TZ_NAME: %w", err))
	} else {
		cfg.Location = loc
	}

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// Validate checks values that have no sensible default
func (c *Config) Validate() error {
	var errs []error

	if c.AppPassword == "" {
		errs = append(errs, errors.New("APP_PASSWORD is required"))
	}
	if err := c.Goals.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("goals: %w", err))
	}
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unknown driver %q", c.DB.Driver))
	}
	if len(c.AI.ExtractProviders) == 0 {
		errs = append(errs, errors.New("AI_EXTRACT_PROVIDERS: at least one provider is required"))
	}
	for _, p := range c.AI.ExtractProviders {
		if p != ProviderKimi && p != ProviderGemini {
			errs = append(errs, fmt.Errorf("AI_EXTRACT_PROVIDERS: unknown provider %q", p))
		}
	}
	if c.AI.Timeout <= 0 {
		errs = append(errs, errors.New("AI_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}
