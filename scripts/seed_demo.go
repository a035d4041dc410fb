package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/roksva123/go-projecthub-backend/internal/storage"
	"github.com/roksva123/go-projecthub-backend/internal/store"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	// Reset the snapshot to the demo dataset
	dataPath := getEnv("DATA_PATH", "data/projecthub.db")
	kv, err := storage.NewSQLiteKV(dataPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", dataPath).Msg("failed open data file")
	}
	defer kv.Close()

	codec := storage.NewCodec(kv, getEnv("STORE_KEY", "project-storage"), logger)
	st := store.New(codec, logger)
	st.ResetDemoData()
	logger.Info().Str("path", dataPath).Msg("demo data written")

	// Seed the admin login if postgres is configured
	if os.Getenv("DB_HOST") == "" {
		logger.Info().Msg("DB_HOST not set, skipping admin seed")
		return
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("DB_HOST", "127.0.0.1"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASS", ""),
		getEnv("DB_NAME", "projecthub_db"),
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed connect DB")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("DB unreachable")
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS admins (
			id SERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT now()
		)
	`)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed ensure admins table")
	}

	username := getEnv("ADMIN_USERNAME", "admin")
	password := getEnv("ADMIN_PASSWORD", "projecthub-2025")

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	_, err = db.Exec(`
		INSERT INTO admins (username, password_hash) VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`, username, string(hash))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed insert admin")
	}

	logger.Info().Str("username", username).Msg("admin created")
}

func getEnv(key, defaultValue string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	return v
}
