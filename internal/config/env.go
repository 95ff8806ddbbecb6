package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Env struct {
	AppAddr string
	GinMode string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string

	LogLevel  string
	LogFormat string

	ListingPageSize        int
	ListingFetchTimeout    time.Duration
	ListingMaxAttempts     int
	ListingScrollThreshold float64
	ListingScrollEvery     time.Duration
	ViewTTL                time.Duration
	CacheTTL               time.Duration

	CORSAllowedOrigins []string
	CookieSecure       bool
}

// LoadEnv reads .env (if present), an optional config.yaml and the process
// environment, in increasing priority.
func LoadEnv() Env {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_DSN", "root:@tcp(127.0.0.1:3306)/jenjangkarir?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s")
	v.SetDefault("JWT_SECRET", "jenjangkarir-dev-secret")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LISTING_PAGE_SIZE", 10)
	v.SetDefault("LISTING_FETCH_TIMEOUT", "5s")
	v.SetDefault("LISTING_MAX_ATTEMPTS", 3)
	v.SetDefault("LISTING_SCROLL_THRESHOLD", 500)
	v.SetDefault("LISTING_SCROLL_EVERY", "250ms")
	v.SetDefault("VIEW_TTL", "30m")
	v.SetDefault("CACHE_TTL", "2m")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

func fromViper(v *viper.Viper) Env {
	setDefaults(v)

	return Env{
		AppAddr:                strings.TrimSpace(v.GetString("APP_ADDR")),
		GinMode:                strings.TrimSpace(v.GetString("GIN_MODE")),
		DBDriver:               strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DBDSN:                  strings.TrimSpace(v.GetString("DB_DSN")),
		RedisAddr:              strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword:          v.GetString("REDIS_PASSWORD"),
		RedisDB:                v.GetInt("REDIS_DB"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		AdminUsername:          strings.TrimSpace(v.GetString("ADMIN_USERNAME")),
		AdminPasswordHash:      strings.TrimSpace(v.GetString("ADMIN_PASSWORD_HASH")),
		LogLevel:               v.GetString("LOG_LEVEL"),
		LogFormat:              v.GetString("LOG_FORMAT"),
		ListingPageSize:        v.GetInt("LISTING_PAGE_SIZE"),
		ListingFetchTimeout:    v.GetDuration("LISTING_FETCH_TIMEOUT"),
		ListingMaxAttempts:     v.GetInt("LISTING_MAX_ATTEMPTS"),
		ListingScrollThreshold: v.GetFloat64("LISTING_SCROLL_THRESHOLD"),
		ListingScrollEvery:     v.GetDuration("LISTING_SCROLL_EVERY"),
		ViewTTL:                v.GetDuration("VIEW_TTL"),
		CacheTTL:               v.GetDuration("CACHE_TTL"),
		CORSAllowedOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		CookieSecure:           v.GetBool("COOKIE_SECURE"),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
