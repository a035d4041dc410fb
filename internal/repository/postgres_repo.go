package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/roksva123/go-projecthub-backend/internal/errs"
	"github.com/roksva123/go-projecthub-backend/internal/model"
)

type DBConfig struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// PostgresRepo holds the profiles table and the local admin fallback
// account. It satisfies auth.ProfileStore.
type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepo(cfg *DBConfig) (*PostgresRepo, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Pass, cfg.Name)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresRepo{DB: db}, nil
}

func (r *PostgresRepo) RunMigrations(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			email TEXT,
			full_name TEXT,
			avatar_url TEXT,
			provider TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS admins (
			id SERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);`,
	}
	for _, q := range queries {
		if _, err := r.DB.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// GetProfile returns errs.ErrNotFound for a missing row.
func (r *PostgresRepo) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, email, full_name, avatar_url, provider, created_at, updated_at
		FROM profiles WHERE id = $1 LIMIT 1
	`, userID)

	var p model.Profile
	var email, fullName, avatarURL, provider sql.NullString
	err := row.Scan(&p.ID, &email, &fullName, &avatarURL, &provider, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errs.Wrapf(errs.ErrNotFound, "profile %s", userID)
	}
	if err != nil {
		return nil, err
	}
	p.Email = email.String
	p.FullName = fullName.String
	p.AvatarURL = avatarURL.String
	p.Provider = provider.String
	return &p, nil
}

func (r *PostgresRepo) UpsertProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO profiles (id, email, full_name, avatar_url, provider, updated_at)
		VALUES ($1,$2,$3,$4,$5, now())
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			avatar_url = EXCLUDED.avatar_url,
			provider = EXCLUDED.provider,
			updated_at = now()
		RETURNING id, email, full_name, avatar_url, provider, created_at, updated_at
	`, p.ID, p.Email, p.FullName, p.AvatarURL, p.Provider)

	var out model.Profile
	var email, fullName, avatarURL, provider sql.NullString
	if err := row.Scan(&out.ID, &email, &fullName, &avatarURL, &provider, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	out.Email = email.String
	out.FullName = fullName.String
	out.AvatarURL = avatarURL.String
	out.Provider = provider.String
	return &out, nil
}

func (r *PostgresRepo) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM admins WHERE username = $1 LIMIT 1
	`, username)

	var a model.Admin
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errs.Wrapf(errs.ErrNotFound, "admin %s", username)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresRepo) UpsertAdmin(ctx context.Context, username, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO admins (username, password_hash) VALUES ($1,$2)
		ON CONFLICT (username) DO UPDATE SET password_hash = $2
	`, username, passwordHash)
	return err
}
