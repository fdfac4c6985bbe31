package logger

import (
	"sync"

	"github.com/gruntwork-io/go-commons/logging"
	"github.com/sirupsen/logrus"
)

var (
	projectLogger *logrus.Logger
	initOnce      sync.Once
)

const defaultLogLevel = logrus.InfoLevel

// GetProjectLogger returns the shared logger for the project.
func GetProjectLogger() *logrus.Entry {
	initOnce.Do(func() {
		projectLogger = logging.GetLogger("")
		projectLogger.SetLevel(defaultLogLevel)
	})
	return projectLogger.WithField("binary", "showtape")
}
