package logger

import (
	"os"
	"strings"

	"birthday-song-service/internal/config"

	"github.com/sirupsen/logrus"
)

// New builds the process logger from the LOG_LEVEL / LOG_FORMAT settings.
// An unknown level falls back to info.
func New(cfg config.Log) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "text") {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
