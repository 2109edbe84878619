// internal/config/logging.go
package config

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// ConfigureLogger applies the log level and format to the standard logrus
// logger. Production always logs JSON.
func ConfigureLogger(cfg *Config) {
	level, err := logrus.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Environment == "production" || strings.EqualFold(cfg.Log.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
