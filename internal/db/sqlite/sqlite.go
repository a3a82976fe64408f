package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jusunglee/phonetics-to-hangul/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Repository implements db.Repository using SQLite
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

var _ db.Repository = (*Repository)(nil)

// New opens or creates a SQLite database and applies the schema.
func New(ctx context.Context, dbPath string) (*Repository, error) {
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")
	dbPath = strings.TrimPrefix(dbPath, "file://")

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	sqliteDB.SetMaxOpenConns(1)

	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{db: sqliteDB, now: time.Now}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) GetCachedPronunciation(ctx context.Context, arg db.GetCachedPronunciationParams) (db.CachedPronunciation, error) {
	row := db.CachedPronunciation{}
	var cachedAt, expiresAt int64
	err := r.db.QueryRowContext(ctx, `
		SELECT word, language, phonetic, source, cached_at, expires_at
		FROM pronunciation_cache
		WHERE word = ? AND language = ? AND expires_at > ?
	`, arg.Word, arg.Language, r.now().UnixMilli()).Scan(
		&row.Word, &row.Language, &row.Phonetic, &row.Source, &cachedAt, &expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return db.CachedPronunciation{}, db.ErrNoRows
	}
	if err != nil {
		return db.CachedPronunciation{}, err
	}
	row.CachedAt = time.UnixMilli(cachedAt)
	row.ExpiresAt = time.UnixMilli(expiresAt)
	return row, nil
}

func (r *Repository) CachePronunciation(ctx context.Context, arg db.CachePronunciationParams) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pronunciation_cache (word, language, phonetic, source, cached_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (word, language)
		DO UPDATE SET phonetic = excluded.phonetic, source = excluded.source,
			cached_at = excluded.cached_at, expires_at = excluded.expires_at
	`, arg.Word, arg.Language, arg.Phonetic, arg.Source, r.now().UnixMilli(), arg.ExpiresAt.UnixMilli())
	return err
}

func (r *Repository) DeleteExpiredPronunciations(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pronunciation_cache WHERE expires_at <= ?`, r.now().UnixMilli())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
