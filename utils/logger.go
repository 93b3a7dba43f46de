package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  = newLogger(os.Stdout, logrus.InfoLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
)

func newLogger(out *os.File, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetLevel(level)
	return l
}

// InitLogger resets both loggers. An unknown level name falls back to info.
func InitLogger(levelName string) {
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	InfoLogger = newLogger(os.Stdout, level)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
	if level > logrus.ErrorLevel {
		ErrorLogger.SetLevel(level)
	}
}
