// Package logging configures structured JSON logging for the service.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"actcal/internal/model"
)

// Logger wraps a logrus entry carrying the service default fields.
type Logger struct {
	*logrus.Entry
}

// NewLogger creates a new logger instance
func NewLogger(serviceName string) *Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	log.SetOutput(os.Stdout)

	// Set log level from environment
	level := os.Getenv("LOG_LEVEL")
	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return &Logger{Entry: log.WithField("service", serviceName)}
}

// Discard returns a logger that writes nowhere, for tests.
func Discard() *Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Logger{Entry: logrus.NewEntry(log)}
}

// WithGame adds the game id to the log fields.
func (l *Logger) WithGame(game model.Game) *logrus.Entry {
	return l.WithField("game", game.String())
}

// WithRefreshID adds the warm-sweep run id to the log fields.
func (l *Logger) WithRefreshID(refreshID string) *logrus.Entry {
	return l.WithField("refresh_id", refreshID)
}
