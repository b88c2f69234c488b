// Package config provides centralized default values for PulseWire
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseFloat(valStr, 64); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%g (default: %g)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Upstream Content Source
	ContentSourceURL     string
	ContentFetchTimeout  time.Duration
	ContentPageSize      int
	PersonalizedPageSize int

	// Ranking Policy
	TrendingTTL          time.Duration
	ResolvedContentTTL   time.Duration
	VelocityThreshold    float64
	VelocityBonus        float64
	TrendDeltaRatio      float64
	TrendingDisplayLimit int
	BreakingDisplayLimit int

	// Preference Profile Policy
	MaxVisitRecords      int
	TopCategoriesLimit   int
	ContentTypeThreshold float64

	// Database Pool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int

	// Cache Retention
	UserStateTTL    time.Duration
	CleanupInterval time.Duration
	TenantTimeout   time.Duration

	// Sysop Dashboard
	SysOpBroadcastInterval time.Duration
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Upstream Content Source
	ContentSourceURL = getEnvString("CONTENT_SOURCE_URL", "http://localhost:8090/api/content")
	ContentFetchTimeout = getEnvDuration("CONTENT_FETCH_TIMEOUT", 15*time.Second)
	ContentPageSize = getEnvInt("CONTENT_PAGE_SIZE", 30)
	PersonalizedPageSize = getEnvInt("PERSONALIZED_PAGE_SIZE", 30)

	// Ranking Policy
	TrendingTTL = getEnvDuration("TRENDING_TTL", 60*time.Second)
	ResolvedContentTTL = getEnvDuration("RESOLVED_CONTENT_TTL", 5*time.Minute)
	VelocityThreshold = getEnvFloat("VELOCITY_THRESHOLD", 50.0)
	VelocityBonus = getEnvFloat("VELOCITY_BONUS", 1.3)
	TrendDeltaRatio = getEnvFloat("TREND_DELTA_RATIO", 0.1)
	TrendingDisplayLimit = getEnvInt("TRENDING_DISPLAY_LIMIT", 20)
	BreakingDisplayLimit = getEnvInt("BREAKING_DISPLAY_LIMIT", 5)

	// Preference Profile Policy
	MaxVisitRecords = getEnvInt("MAX_VISIT_RECORDS", 20)
	TopCategoriesLimit = getEnvInt("TOP_CATEGORIES_LIMIT", 5)
	ContentTypeThreshold = getEnvFloat("CONTENT_TYPE_THRESHOLD", 0.25)

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)

	// Cache Retention
	UserStateTTL = time.Duration(getEnvInt("USER_STATE_TTL_HOURS", 168)) * time.Hour
	CleanupInterval = time.Duration(getEnvInt("CACHE_CLEANUP_INTERVAL_MINUTES", 30)) * time.Minute
	TenantTimeout = time.Duration(getEnvInt("TENANT_TIMEOUT_HOURS", 4)) * time.Hour

	// Sysop Dashboard
	SysOpBroadcastInterval = getEnvDuration("SYSOP_BROADCAST_INTERVAL", 2*time.Second)
}
