package config

import (
	"os"
	"time"
)

type Config struct {
	Server ServerConfig
	JWT    JWTConfig
	Store  StoreConfig
	SMTP   SMTPConfig
}

type ServerConfig struct {
	Port string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// StoreConfig selects the persistence backend. "memory" keeps everything
// process-local; "postgres" puts users and banned tokens behind GORM.
// Pending challenges are always in memory.
type StoreConfig struct {
	Backend string
	DB      DBConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// SMTPConfig configures outbound code delivery. An empty Host selects the
// logging client instead of a real relay.
type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "3000"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-me-in-production"),
			TTL:    getEnvAsDuration("JWT_TTL", 10*time.Minute),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", "memory"),
			DB: DBConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnv("DB_PORT", "5432"),
				User:     getEnv("DB_USER", "authgate"),
				Password: getEnv("DB_PASSWORD", "authgate_secret"),
				Name:     getEnv("DB_NAME", "authgate"),
				SSLMode:  getEnv("DB_SSLMODE", "disable"),
			},
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			From:     getEnv("SMTP_FROM", "no-reply@authgate.local"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
