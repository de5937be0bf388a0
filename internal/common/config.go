package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Bot     BotConfig
	OCR     OCRConfig
	Archive ArchiveConfig
}

// BotConfig holds the Discord integration configuration
type BotConfig struct {
	Token       string
	DownloadDir string
}

// OCRConfig holds tesseract-related configuration
type OCRConfig struct {
	Tesseract   string
	Language    string
	TessdataDir string
	PSM         int
	OEM         int
}

// ArchiveConfig selects and configures the parse archive backend
type ArchiveConfig struct {
	Driver      string // "bolt" | "postgres"
	BoltPath    string
	PostgresDSN string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Bot: BotConfig{
			Token:       getEnv("DISCORD_TOKEN", ""),
			DownloadDir: getEnv("DOWNLOAD_DIR", "./download"),
		},
		OCR: OCRConfig{
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			Language:    getEnv("TESSERACT_LANG", "eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			PSM:         getEnvAsInt("TESSERACT_PSM", 6),
			OEM:         getEnvAsInt("TESSERACT_OEM", 1),
		},
		Archive: ArchiveConfig{
			Driver:      getEnv("ARCHIVE_DRIVER", "bolt"),
			BoltPath:    getEnv("ARCHIVE_PATH", "receiptlens.db"),
			PostgresDSN: getEnv("DB_URL", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return NewAppError("CONFIG_ERROR", "DISCORD_TOKEN is required", ErrInvalidInput)
	}
	switch c.Archive.Driver {
	case "bolt":
		if c.Archive.BoltPath == "" {
			return NewAppError("CONFIG_ERROR", "ARCHIVE_PATH is required for the bolt archive", ErrInvalidInput)
		}
	case "postgres":
		if c.Archive.PostgresDSN == "" {
			return NewAppError("CONFIG_ERROR", "DB_URL is required for the postgres archive", ErrInvalidInput)
		}
	default:
		return NewAppError("CONFIG_ERROR", "ARCHIVE_DRIVER must be bolt or postgres", ErrInvalidInput)
	}
	return nil
}
