package logger

import (
	"log/slog"
	"os"
	"sync"
)

var initOnce sync.Once

// Init installs the process-wide JSON logger. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
		slog.SetDefault(slog.New(handler))
	})
}

func Info(event string, fields map[string]interface{}) {
	slog.Info(event, args(fields)...)
}

func Warn(event string, fields map[string]interface{}) {
	slog.Warn(event, args(fields)...)
}

func Error(event string, fields map[string]interface{}) {
	slog.Error(event, args(fields)...)
}

func args(fields map[string]interface{}) []any {
	out := make([]any, 0, len(fields)*2)
	for key, value := range fields {
		out = append(out, key, value)
	}
	return out
}
