// Package logging configures Logrus for the heredity binaries: UTC timestamps
// with subsecond precision, text or JSON output, and a level taken from flags
// or the environment.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options control the logger. The zero value logs warnings and above as text
// to stderr.
type Options struct {
	Level string // logrus level name; "" means warn
	JSON  bool
	Out   io.Writer

	// If not nil, this logger is configured instead of a fresh one.
	Logger *logrus.Logger
}

// Configure builds (or reconfigures) a logger.
func Configure(opts Options) (*logrus.Logger, error) {
	lg := opts.Logger
	if lg == nil {
		lg = logrus.New()
	}
	if opts.Out == nil {
		opts.Out = os.Stderr
	}
	lvl := logrus.WarnLevel
	if opts.Level != "" {
		var err error
		if lvl, err = logrus.ParseLevel(opts.Level); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}
	lg.SetOutput(opts.Out)
	lg.SetLevel(lvl)
	lg.AddHook(utcHook{})
	if opts.JSON {
		lg.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000000Z07:00"})
	} else {
		lg.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000000 MST",
			DisableColors:   true,
		})
	}
	return lg, nil
}

// utcHook converts entry timestamps to UTC.
type utcHook struct{}

func (utcHook) Levels() []logrus.Level { return logrus.AllLevels }

func (utcHook) Fire(entry *logrus.Entry) error {
	entry.Time = entry.Time.UTC()
	return nil
}
