package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port               string
	LogLevel           string
	DatabasePath       string
	SourceFormat       string // default parser: "robinhood" or "thinkorswim"
	InputPath          string
	OutputPath         string
	MaxUploadSizeBytes int64

	// Pass-through metadata stamped onto every imported trade.
	AccountID       string
	UserID          string
	ImportSource    string
	ImportReasoning string
}

var Cfg *AppConfig

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, relying on OS environment variables and defaults.")
	}

	maxUploadSizeBytesStr := getEnv("MAX_UPLOAD_SIZE_BYTES", "10485760")
	maxUploadSizeBytes, err := strconv.ParseInt(maxUploadSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES format '%s'. Using default 10MB. Error: %v", maxUploadSizeBytesStr, err)
		maxUploadSizeBytes = 10 * 1024 * 1024
	}

	Cfg = &AppConfig{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabasePath:       getEnv("DATABASE_PATH", "./tradejournal.db"),
		SourceFormat:       getEnv("SOURCE_FORMAT", "robinhood"),
		InputPath:          getEnv("INPUT_PATH", "./activity.csv"),
		OutputPath:         getEnv("OUTPUT_PATH", "./trades_for_database.csv"),
		MaxUploadSizeBytes: maxUploadSizeBytes,

		AccountID:       getEnv("ACCOUNT_ID", ""),
		UserID:          getEnv("USER_ID", ""),
		ImportSource:    getEnv("IMPORT_SOURCE_TAG", "DATA UPLOAD"),
		ImportReasoning: getEnv("IMPORT_REASONING", "DATA UPLOAD"),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, SourceFormat=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.SourceFormat)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
