package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New создает настроенный логгер. Уровень задается строкой из конфигурации;
// нераспознанный уровень трактуется как info.
func New(level string, jsonFormat bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	if jsonFormat {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
