package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// ServiceName tags every log entry and the health endpoint.
const ServiceName = "valora-earth-backend"

var Logger *logrus.Logger

// serviceHook stamps the service name onto every entry so aggregated logs
// stay attributable.
type serviceHook struct{}

func (serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (serviceHook) Fire(entry *logrus.Entry) error {
	entry.Data["service"] = ServiceName
	return nil
}

func InitLogger() {
	Logger = logrus.New()

	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
	Logger.AddHook(serviceHook{})

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		Logger.SetLevel(logrus.DebugLevel)
	case "warn":
		Logger.SetLevel(logrus.WarnLevel)
	case "error":
		Logger.SetLevel(logrus.ErrorLevel)
	default:
		Logger.SetLevel(logrus.InfoLevel)
	}

	Logger.SetOutput(os.Stdout)
}

func GetLogger() *logrus.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}
