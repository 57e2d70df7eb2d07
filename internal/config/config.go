package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	TransportREST = "rest"
	TransportSDK  = "sdk"
)

type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string
	GeminiTransport  string // "rest" or "sdk"
	DatabaseURL      string
	HTTPPort         string
	LogLevel         string
	JWTSecret        string
	ChatHistoryLimit int
	ChatQueueDepth   int
}

var AppConfig Config

// LoadConfig populates AppConfig and exits when a required variable is missing.
func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	AppConfig = cfg
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiTransport:  getEnv("GEMINI_TRANSPORT", TransportREST),
		DatabaseURL:      getEnv("DATABASE_URL", "menfin.db"),
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		ChatHistoryLimit: getEnvAsInt("CHAT_HISTORY_LIMIT", 50),
		ChatQueueDepth:   getEnvAsInt("CHAT_QUEUE_DEPTH", 8),
	}

	if cfg.GeminiAPIKey == "" {
		return cfg, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if cfg.GeminiTransport != TransportREST && cfg.GeminiTransport != TransportSDK {
		return cfg, fmt.Errorf("GEMINI_TRANSPORT must be \"rest\" or \"sdk\", got %q", cfg.GeminiTransport)
	}
	if cfg.ChatQueueDepth < 1 {
		cfg.ChatQueueDepth = 1
	}
	return cfg, nil
}

func (c Config) Debug() bool {
	return c.LogLevel == "DEBUG"
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
