package logutils

import (
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before InitLogger is called.
var Log = newLogger(logrus.InfoLevel)

func newLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

func parseLogLevel(level string, fallback logrus.Level) (logrus.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return logrus.WarnLevel, true
	case "critical":
		return logrus.FatalLevel, true
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fallback, false
	}
	return parsed, true
}

func InitLogger(level string) {
	parsedLevel, ok := parseLogLevel(level, logrus.InfoLevel)
	if !ok {
		Log.Warnf("Invalid log level '%s', defaulting to 'info'", level)
	}
	Log.SetLevel(parsedLevel)
	Log.Infof("Log level set to %v", parsedLevel)
}

// InitTelegramLogger routes the Bot API client's own logging through a separate
// logger so HTTP chatter stays quiet unless explicitly enabled.
func InitTelegramLogger(level string) {
	parsedLevel, ok := parseLogLevel(level, logrus.WarnLevel)
	if !ok {
		Log.Warnf("Invalid HTTP log level '%s', defaulting to 'warn'", level)
	}
	apiLogger := newLogger(parsedLevel)
	if err := tgbotapi.SetLogger(apiLogger.WithField("component", "telegram-api")); err != nil {
		Log.WithError(err).Warn("Failed to set Telegram API logger")
	}
}

func IsDebug() bool {
	return Log.IsLevelEnabled(logrus.DebugLevel)
}
