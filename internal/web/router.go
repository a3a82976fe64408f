// Package web serves the Hangul conversion HTTP API.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jusunglee/phonetics-to-hangul/internal/ratelimit"
	"github.com/jusunglee/phonetics-to-hangul/internal/web/handlers"
	"github.com/jusunglee/phonetics-to-hangul/internal/web/middleware"
)

const (
	requestsPerMinute = 30
	rateLimitWindow   = time.Minute
)

type Router struct {
	transcriber    handlers.Transcriber
	log            *slog.Logger
	allowedOrigins []string
	limiter        *ratelimit.Limiter
}

func NewRouter(transcriber handlers.Transcriber, log *slog.Logger, allowedOrigins []string) *Router {
	return &Router{
		transcriber:    transcriber,
		log:            log,
		allowedOrigins: allowedOrigins,
		limiter:        ratelimit.New(requestsPerMinute, rateLimitWindow),
	}
}

// Limiter is exposed so the caller can prune it for the life of the server.
func (r *Router) Limiter() *ratelimit.Limiter {
	return r.limiter
}

func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	hangulHandler := handlers.NewHangulHandler(r.transcriber, r.log)

	mux.Handle("GET /api/v1/hangul",
		middleware.Chain(
			http.HandlerFunc(hangulHandler.Convert),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(r.limiter),
			middleware.CacheControl("public, s-maxage=300, max-age=60"),
		),
	)

	return middleware.CORS(r.allowedOrigins)(mux)
}
