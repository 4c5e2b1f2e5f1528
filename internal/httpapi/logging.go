package httpapi

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Fallback when a request carries no override. The env read only covers
// early init; main pushes the configured level via SetDefaultLogLevel.
var defaultLogLevel = parseLevel(os.Getenv("SOLARD_LOG_LEVEL"))

// SetDefaultLogLevel installs the configured per-request log level.
func SetDefaultLogLevel(level string) { defaultLogLevel = parseLevel(level) }

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// logRequest emits one line per scored predict request. err is nil on 200.
func logRequest(r *http.Request, status int, dur time.Duration, err error) {
	lvl := requestLogLevel(r)
	if lvl < LevelInfo {
		if !(lvl == LevelError && err != nil) {
			return
		}
	}
	if zlog != nil {
		z := zlog.Info()
		// 500 signals model/data corruption; 503 is a normal degraded state.
		if status == http.StatusInternalServerError {
			z = zlog.Error()
		}
		z = z.Int("status", status).Dur("dur", dur).Str("path", r.URL.Path)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg("predict")
		return
	}
	if err != nil {
		log.Printf("predict status=%d dur=%s err=%v", status, dur, err)
		return
	}
	log.Printf("predict status=%d dur=%s", status, dur)
}
