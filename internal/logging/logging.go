// Package logging provides a single process-wide slog init, configured
// from the CSVENG_LOG environment variable. Grounded directly on
// sqldef-sqldef/util/logutil.go's InitSlog.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var once sync.Once

// Init configures the default slog logger from CSVENG_LOG
// (debug/info/warn/error, case-insensitive; unset or unrecognized
// values default to info). Safe to call more than once: only the
// first call takes effect.
func Init() {
	once.Do(func() {
		level := slog.LevelInfo
		if raw, ok := os.LookupEnv("CSVENG_LOG"); ok {
			switch strings.ToLower(raw) {
			case "debug":
				level = slog.LevelDebug
			case "info":
				level = slog.LevelInfo
			case "warn":
				level = slog.LevelWarn
			case "error":
				level = slog.LevelError
			}
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
	})
}
