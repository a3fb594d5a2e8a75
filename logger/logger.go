package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func init() {
	Log = NewLogger("info", false)
}

// NewLogger creates a logger writing to stdout, JSON formatted when asJSON is set
func NewLogger(level string, asJSON bool) *logrus.Logger {
	logger := logrus.New()

	if asJSON {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.999Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	logger.SetOutput(os.Stdout)

	return logger
}

// Init replaces the package logger
func Init(level string, asJSON bool) {
	Log = NewLogger(level, asJSON)
}

// WithProfile adds the browser profile id to logger fields
func WithProfile(profileID string) *logrus.Entry {
	return Log.WithField("profile", profileID)
}
