package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jusunglee/phonetics-to-hangul/internal/db"
	"github.com/jusunglee/phonetics-to-hangul/internal/metrics"
)

// ExpiredPronunciationDeleter is the part of db.Repository the janitor needs.
type ExpiredPronunciationDeleter interface {
	DeleteExpiredPronunciations(ctx context.Context) (int64, error)
}

// RunCacheJanitor deletes expired cache rows every interval until ctx is done.
func RunCacheJanitor(ctx context.Context, repo ExpiredPronunciationDeleter, interval time.Duration, log *slog.Logger) {
	log = log.With("subsystem", "cache_janitor")
	for ctx.Err() == nil {
		cleanupCtx, cancel := context.WithTimeout(ctx, time.Minute)
		rows, err := repo.DeleteExpiredPronunciations(cleanupCtx)
		cancel()
		if err != nil {
			log.ErrorContext(ctx, "deleting expired pronunciations", "error", err)
		} else if rows > 0 {
			log.InfoContext(ctx, "deleted expired pronunciations", slog.Int64("rows", rows))
		}
		sleepWithContext(ctx, interval)
	}
}

type poolStater interface {
	PoolStats() *pgxpool.Stat
}

// ExportPoolStats periodically publishes connection pool stats as Prometheus
// gauges. Repositories without a pool are ignored.
func ExportPoolStats(ctx context.Context, repo db.Repository, interval time.Duration) {
	pooled, ok := repo.(poolStater)
	if !ok {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s := pooled.PoolStats()
			metrics.DBPoolTotalConns.Set(float64(s.TotalConns()))
			metrics.DBPoolIdleConns.Set(float64(s.IdleConns()))
			metrics.DBPoolAcquiredConns.Set(float64(s.AcquiredConns()))
			metrics.DBPoolMaxConns.Set(float64(s.MaxConns()))
		case <-ctx.Done():
			return
		}
	}
}

func sleepWithContext(ctx context.Context, dur time.Duration) {
	timer := time.NewTimer(dur)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
