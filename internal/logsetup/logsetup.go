// Package logsetup configures the process-wide logrus logger for
// keystore-convert, adapted from shared/logutil/logutil.go's persistent
// file-logging hook.
package logsetup

import (
	"fmt"
	"os"
	"strings"

	joonix "github.com/joonix/log"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Configure sets the console formatter for format ("text", "json" or
// "fluentd") and, if logFileName is non-empty, additionally mirrors every
// log line to that file.
func Configure(format, logFileName string) error {
	if err := setFormatter(logrus.StandardLogger(), format); err != nil {
		return err
	}
	if logFileName == "" {
		return nil
	}
	return configurePersistentLogging(logFileName, format)
}

func setFormatter(logger *logrus.Logger, format string) error {
	switch format {
	case "text", "":
		formatter := new(prefixed.TextFormatter)
		formatter.TimestampFormat = "2006-01-02 15:04:05"
		formatter.FullTimestamp = true
		logger.SetFormatter(formatter)
	case "fluentd":
		logger.SetFormatter(joonix.NewFormatter())
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

var fileLogger = &logrus.Logger{
	Level: logrus.TraceLevel,
}

// writerHook mirrors every logrus entry to fileLogger, the way
// shared/logutil.WriterHook forwards console logs into a persistent file.
type writerHook struct {
	levels []logrus.Level
}

func (h *writerHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	fileLogger.Println(strings.TrimSuffix(line, "\n"))
	return nil
}

func (h *writerHook) Levels() []logrus.Level {
	return h.levels
}

func configurePersistentLogging(logFileName, format string) error {
	logrus.WithField("logFileName", logFileName).Info("logs will be made persistent")
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}
	fileLogger.SetOutput(f)
	if err := setFormatter(fileLogger, format); err != nil {
		return err
	}

	logrus.AddHook(&writerHook{levels: logrus.AllLevels})
	logrus.Info("file logger initialized")
	return nil
}
