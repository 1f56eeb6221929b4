package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger. JSON output so log collectors can
// index fields; debug level when APP_DEBUG is set.
func NewLogger(app AppConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if app.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}
