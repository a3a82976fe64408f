package db

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNoRows means the cache holds no live entry for a word. The sqlite and
// postgres repositories translate their driver's no-rows error into it.
var ErrNoRows = errors.New("no cached pronunciation")

// IsNoRows reports whether err, possibly wrapped, is a cache miss from either
// driver.
func IsNoRows(err error) bool {
	return errors.Is(err, ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, pgx.ErrNoRows)
}
