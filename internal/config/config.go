// Package config assembles runtime configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Addr string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBMaxConns int32

	QueryTimeout       time.Duration
	CoverLookupTimeout time.Duration
	CoverLookupRPS     int
	UserAgent          string
}

// Load reads configuration from the environment, after loading
// .env.local when present. Every value has a development default.
func Load() Config {
	_ = godotenv.Load(".env.local")

	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBName:             getEnv("DB_NAME", "bookshelf"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBMaxConns:         int32(getEnvInt("DB_MAX_CONNS", 10)),
		QueryTimeout:       getEnvDuration("DB_QUERY_TIMEOUT", 5*time.Second),
		CoverLookupTimeout: getEnvDuration("COVER_LOOKUP_TIMEOUT", 10*time.Second),
		CoverLookupRPS:     getEnvInt("COVER_LOOKUP_RPS", 1),
		UserAgent:          getEnv("COVER_LOOKUP_USER_AGENT", "bookshelf/1.0"),
	}
}

// DSN builds a pgx connection string from the discrete DB settings.
func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?pool_max_conns=%d",
		url.QueryEscape(c.DBUser),
		url.QueryEscape(c.DBPassword),
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBMaxConns,
	)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
