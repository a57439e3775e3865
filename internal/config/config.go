package config

import (
	"os"
	"strconv"
	"time"

	"travelapp/internal/database"
)

// Config - общая конфигурация приложения
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	Database database.Config
	NATS     NATSConfig
	Payment  PaymentConfig
	Notify   NotifyConfig
	Search   SearchConfig
	Cache    CacheConfig
}

// NATSConfig - конфигурация NATS Streaming
type NATSConfig struct {
	URL       string
	ClusterID string
	ClientID  string
}

// PaymentConfig controls the simulated payment gateway.
type PaymentConfig struct {
	SuccessRate     float64
	ProcessingDelay time.Duration
}

// NotifyConfig - конфигурация сервиса уведомлений
type NotifyConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SearchConfig - конфигурация Elasticsearch
type SearchConfig struct {
	Enabled   bool
	Addresses []string
	Index     string
}

// CacheConfig - конфигурация Valkey/Redis
type CacheConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	CityTTL  time.Duration
}

// Load читает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "postgres"),
			Password:           getEnv("DB_PASSWORD", "postgres"),
			DBName:             getEnv("DB_NAME", "travelapp"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MINUTES", 10),
		},
		NATS: NATSConfig{
			URL:       getEnv("NATS_URL", ""),
			ClusterID: getEnv("NATS_CLUSTER_ID", "travelapp-cluster"),
			ClientID:  getEnv("NATS_CLIENT_ID", "travelapp"),
		},
		Payment: PaymentConfig{
			SuccessRate:     getEnvFloat("PAYMENT_SUCCESS_RATE", 0.95),
			ProcessingDelay: time.Duration(getEnvInt("PAYMENT_DELAY_MS", 1500)) * time.Millisecond,
		},
		Notify: NotifyConfig{
			BaseURL: getEnv("NOTIFY_BASE_URL", ""),
			Timeout: time.Duration(getEnvInt("NOTIFY_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Search: SearchConfig{
			Enabled:   getEnvBool("SEARCH_ENABLED", false),
			Addresses: []string{getEnv("ELASTICSEARCH_URL", "http://localhost:9200")},
			Index:     getEnv("ELASTICSEARCH_INDEX", "travel_options"),
		},
		Cache: CacheConfig{
			Enabled:  getEnvBool("CACHE_ENABLED", false),
			Addr:     getEnv("VALKEY_ADDR", "localhost:6379"),
			Password: getEnv("VALKEY_PASSWORD", ""),
			DB:       getEnvInt("VALKEY_DB", 0),
			CityTTL:  time.Duration(getEnvInt("CACHE_CITY_TTL_MINUTES", 15)) * time.Minute,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
