package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/phonetics-to-hangul/internal/db"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements db.Repository using PostgreSQL via pgx
type Repository struct {
	pool *pgxpool.Pool
}

var _ db.Repository = (*Repository)(nil)

// New creates a new PostgreSQL repository and applies the schema.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	config, err := db.PoolConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// PoolStats returns connection pool statistics
func (r *Repository) PoolStats() *pgxpool.Stat {
	return r.pool.Stat()
}

func (r *Repository) GetCachedPronunciation(ctx context.Context, arg db.GetCachedPronunciationParams) (db.CachedPronunciation, error) {
	var row db.CachedPronunciation
	err := r.pool.QueryRow(ctx, `
		SELECT word, language, phonetic, source, cached_at, expires_at
		FROM pronunciation_cache
		WHERE word = $1 AND language = $2 AND expires_at > now()
	`, arg.Word, arg.Language).Scan(
		&row.Word, &row.Language, &row.Phonetic, &row.Source, &row.CachedAt, &row.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.CachedPronunciation{}, db.ErrNoRows
	}
	if err != nil {
		return db.CachedPronunciation{}, err
	}
	return row, nil
}

func (r *Repository) CachePronunciation(ctx context.Context, arg db.CachePronunciationParams) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pronunciation_cache (word, language, phonetic, source, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (word, language)
		DO UPDATE SET phonetic = EXCLUDED.phonetic, source = EXCLUDED.source,
			cached_at = now(), expires_at = EXCLUDED.expires_at
	`, arg.Word, arg.Language, arg.Phonetic, arg.Source, arg.ExpiresAt)
	return err
}

func (r *Repository) DeleteExpiredPronunciations(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pronunciation_cache WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
