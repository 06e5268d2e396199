package config

import (
	"os"
	"strconv"
	"strings"
)

// Storage backends selectable through STORE_BACKEND.
const (
	BackendFS       = "fs"
	BackendMinIO    = "minio"
	BackendPostgres = "postgres"
)

// Ingestion strategies selectable through INGEST_STRATEGY.
const (
	StrategySequential = "sequential"
	StrategyParallel   = "parallel"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// StoreConfig selects where the serialized audio list is mirrored.
type StoreConfig struct {
	Backend string
	Dir     string
	Key     string
}

// IngestConfig controls how uploaded files are accepted and decoded.
type IngestConfig struct {
	AcceptedMIME string
	Strategy     string
	Workers      int
	MaxUploadMB  int
}

// LogConfig controls the JSON logger.
type LogConfig struct {
	Level    string
	Timezone string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	Port              string
	PlaybackExclusive bool
	Log               LogConfig
	Store             StoreConfig
	Ingest            IngestConfig
	Database          DatabaseConfig
	MinIO             MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		Port:              getEnv("PORT", "8080"),
		PlaybackExclusive: getEnvBool("PLAYBACK_EXCLUSIVE", false),
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Timezone: getEnv("LOG_TIMEZONE", "UTC"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getEnv("STORE_BACKEND", BackendFS)),
			Dir:     getEnv("STORE_DIR", "data"),
			Key:     getEnv("STORE_KEY", "audioFiles"),
		},
		Ingest: IngestConfig{
			AcceptedMIME: getEnv("ACCEPTED_MIME", "audio/mpeg"),
			Strategy:     strings.ToLower(getEnv("INGEST_STRATEGY", StrategySequential)),
			Workers:      getEnvInt("INGEST_WORKERS", 4),
			MaxUploadMB:  getEnvInt("MAX_UPLOAD_MB", 64),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
