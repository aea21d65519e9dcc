package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	log  zerolog.Logger
)

// Init configures the process-wide logger. In non-production environments the
// output is pretty-printed to the console.
func Init(level, env string) zerolog.Logger {
	once.Do(func() {
		lvl, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			lvl = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(lvl)
		zerolog.TimeFieldFormat = time.RFC3339

		if env == "production" {
			log = zerolog.New(os.Stdout).With().Timestamp().Logger()
		} else {
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
				With().Timestamp().Logger()
		}
	})
	return log
}

// Get returns the configured logger. Init must run first; otherwise the
// zero-value logger is returned.
func Get() zerolog.Logger {
	return log
}
