// Package logger provides the shared application logger.
package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	instance *logrus.Logger
	once     sync.Once
)

// L returns the singleton logger instance. Level and format are taken from
// LOG_LEVEL and LOG_FORMAT the first time it is called.
func L() *logrus.Logger {
	once.Do(func() {
		instance = logrus.New()
		instance.SetOutput(os.Stdout)

		if os.Getenv("LOG_FORMAT") == "json" {
			instance.SetFormatter(&logrus.JSONFormatter{})
		} else {
			instance.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}

		level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
		if err != nil {
			level = logrus.InfoLevel
		}
		instance.SetLevel(level)
	})
	return instance
}
