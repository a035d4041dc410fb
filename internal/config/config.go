package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// APP
	AppEnv string
	Port   string

	// Store persistence
	DataPath string
	StoreKey string

	// Supabase auth
	SupabaseURL     string
	SupabaseAnonKey string
	JWTSecret       string

	// OAuth
	OAuthRedirectURL string
	// Delay before redirecting to login after a failed OAuth callback,
	// so the user can read the error.
	LoginRedirectDelay time.Duration

	// Profiles database
	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	// Admin fallback login
	AdminUsername string
	AdminPassword string
}

func Load() (*Config, error) {
	cfg := &Config{
		// App
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8001"),

		// Store
		DataPath: getEnv("DATA_PATH", "data/projecthub.db"),
		StoreKey: getEnv("STORE_KEY", "project-storage"),

		// Supabase
		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),
		JWTSecret:       getEnv("JWT_SECRET", "secret123"),

		// OAuth
		OAuthRedirectURL:   getEnv("OAUTH_REDIRECT_URL", "http://localhost:5173/auth/callback"),
		LoginRedirectDelay: getEnvDuration("LOGIN_REDIRECT_DELAY", 3*time.Second),

		// DB
		DBHost: getEnv("DB_HOST", "127.0.0.1"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", ""),
		DBName: getEnv("DB_NAME", "projecthub_db"),

		// Admin login
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	return cfg, nil
}

// getEnv returns environment variable or default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration returns a duration from env (seconds) or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return time.Duration(parsed) * time.Second
		}
	}
	return defaultValue
}
