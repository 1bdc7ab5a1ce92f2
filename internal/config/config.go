package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	Grading  GradingConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

// Enabled reports whether reference retrieval should be wired.
func (q QdrantConfig) Enabled() bool {
	return q.URL != ""
}

type GeminiConfig struct {
	APIKey            string
	Model             string
	EmbedModel        string
	RequestsPerMinute int
	Temperature       float32
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type GradingConfig struct {
	RetryMaxAttempts   int
	RetryInitialDelay  time.Duration
	TopN               int
	ArchiveConcurrency int
	SessionTTL         time.Duration
}

type LogConfig struct {
	Level string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "essay_grader"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "enem_reference_docs"),
		},
		Gemini: GeminiConfig{
			APIKey:            getEnv("GEMINI_API_KEY", ""),
			Model:             getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbedModel:        getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
			RequestsPerMinute: getEnvAsInt("GEMINI_REQUESTS_PER_MINUTE", 15),
			Temperature:       getEnvAsFloat32("GEMINI_TEMPERATURE", 0.3),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Grading: GradingConfig{
			RetryMaxAttempts:   getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			RetryInitialDelay:  getEnvAsDuration("RETRY_INITIAL_DELAY", "2s"),
			TopN:               getEnvAsInt("GRADING_TOP_N", 5),
			ArchiveConcurrency: getEnvAsInt("ARCHIVE_CONCURRENCY", 2),
			SessionTTL:         getEnvAsDuration("SESSION_TTL", "24h"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
