package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"dfsummary/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
	View   ViewConfig
	Log    LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
}

// DataConfig says where datasets are loaded from besides the built-in samples
type DataConfig struct {
	Dir            string
	SheetName      string
	TypeThreshold  float64
	DatabaseURL    string
	DatabaseTables []string
}

// ViewConfig holds the defaults for the summary view
type ViewConfig struct {
	DisplayMode string
	PanelHeight int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

var displayModes = map[string]bool{
	"dialog":       true,
	"main":         true,
	"side-by-side": true,
}

// LoadWithEnvFile loads variables from an env file, if present, then reads
// the configuration. Variables already set in the environment win.
func LoadWithEnvFile(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return nil, errors.Wrapf(err, "failed to load env file %s", path)
			}
		}
	}
	return Load()
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			APIPort: getEnvOrDefault("API_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Data: DataConfig{
			Dir:            getEnvOrDefault("DATA_DIR", ""),
			SheetName:      getEnvOrDefault("SHEET_NAME", ""),
			TypeThreshold:  getEnvFloatOrDefault("TYPE_THRESHOLD", 0.9),
			DatabaseURL:    getEnvOrDefault("DATABASE_URL", ""),
			DatabaseTables: getEnvListOrDefault("DATABASE_TABLES", nil),
		},
		View: ViewConfig{
			DisplayMode: getEnvOrDefault("DISPLAY_MODE", "side-by-side"),
			PanelHeight: getEnvIntOrDefault("PANEL_HEIGHT", 400),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if !displayModes[config.View.DisplayMode] {
		return errors.ConfigInvalidf("DISPLAY_MODE %q must be one of dialog, main, side-by-side", config.View.DisplayMode)
	}
	if config.View.PanelHeight <= 0 {
		return errors.ConfigInvalidf("PANEL_HEIGHT must be positive, got %d", config.View.PanelHeight)
	}
	if config.Data.TypeThreshold <= 0 || config.Data.TypeThreshold > 1 {
		return errors.ConfigInvalidf("TYPE_THRESHOLD must be in (0, 1], got %v", config.Data.TypeThreshold)
	}
	if config.Data.DatabaseURL != "" && len(config.Data.DatabaseTables) == 0 {
		return errors.ConfigInvalid("DATABASE_TABLES is required when DATABASE_URL is set")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvListOrDefault splits a comma-separated variable, dropping blanks
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
