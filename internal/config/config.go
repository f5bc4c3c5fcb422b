package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Token store backend constants
const (
	TokenStoreFile  = "file"
	TokenStoreRedis = "redis"
)

type Config struct {
	// Server settings
	ServerAddr   string
	IsProduction bool

	// OSDU platform
	BaseURL     string
	PartitionID string

	// Token grant settings
	TokenEndpoint string
	ClientID      string
	ClientSecret  string
	RefreshToken  string
	VerifySSL     bool

	// Outbound HTTP
	HTTPTimeout   time.Duration
	MaxRetries    int    // Maximum retry attempts for grant requests (default: 3)
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration

	// Token cache
	TokenStore     string // "file" or "redis"
	TokenCachePath string
	TokenCacheKey  string // Redis key (only when TokenStore = "redis")
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// Metrics
	MetricsEnabled bool
	MetricsToken   string // Optional bearer token protecting /metrics

	// Rate limiting
	RateLimitEnabled   bool
	RateLimitPerMinute int
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		ServerAddr:   getEnv("SERVER_ADDR", ":8080"),
		IsProduction: getEnvBool("PRODUCTION", false),

		BaseURL:     getEnv("OSDU_BASE_URL", "http://osdu.vts.cloud"),
		PartitionID: getEnv("OSDU_PARTITION_ID", "osdu"),

		TokenEndpoint: getEnv("OSDU_TOKEN_ENDPOINT", ""),
		ClientID:      getEnv("OSDU_CLIENT_ID", ""),
		ClientSecret:  getEnv("OSDU_CLIENT_SECRET", ""),
		RefreshToken:  getEnv("OSDU_REFRESH_TOKEN", ""),
		VerifySSL:     getEnvBool("OSDU_VERIFY_SSL", false),

		HTTPTimeout:   getEnvDuration("OSDU_HTTP_TIMEOUT", 15*time.Second),
		MaxRetries:    getEnvInt("OSDU_MAX_RETRIES", 3),
		RetryDelay:    getEnvDuration("OSDU_RETRY_DELAY", 1*time.Second),
		MaxRetryDelay: getEnvDuration("OSDU_MAX_RETRY_DELAY", 10*time.Second),

		TokenStore:     getEnv("TOKEN_STORE", TokenStoreFile),
		TokenCachePath: getEnv("TOKEN_CACHE_PATH", ".token_cache"),
		TokenCacheKey:  getEnv("TOKEN_CACHE_KEY", "osdu:token"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		MetricsToken:   getEnv("METRICS_TOKEN", ""),

		RateLimitEnabled:   getEnvBool("RATE_LIMIT_ENABLED", false),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}
}

// Validate checks that every setting required to reach the platform is
// present. The token manager must not be constructed from a config that
// fails here.
func (c *Config) Validate() error {
	required := map[string]string{
		"OSDU_BASE_URL":       c.BaseURL,
		"OSDU_PARTITION_ID":   c.PartitionID,
		"OSDU_TOKEN_ENDPOINT": c.TokenEndpoint,
		"OSDU_CLIENT_ID":      c.ClientID,
		"OSDU_CLIENT_SECRET":  c.ClientSecret,
	}

	var missing []string
	for key, value := range required {
		if value == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "True"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
