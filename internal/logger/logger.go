// Package logger holds the process-wide zap sugared logger.
//
// Services and the notification channel log through Get(); nothing else in
// the codebase constructs a logger of its own.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger once. "production" selects the JSON
// encoder; anything else gets the console encoder for local runs.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			// Fallback to nop logger if initialization fails.
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger, initializing a development one if
// Init was never called (tests take this path).
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries; deferred from main.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
