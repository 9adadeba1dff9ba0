package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const SystemName = "projectdesk"

var Logger = logrus.New()

// InitLogger configures the global logger. When file is set, output is
// written both to stderr and to a rotating log file.
func InitLogger(level, file string) error {
	parsed, err := logrus.ParseLevel(level)

	if err != nil {
		return err
	}

	var out io.Writer = os.Stderr

	if file != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}

	Logger.SetOutput(out)
	Logger.SetFormatter(&logrus.JSONFormatter{})
	Logger.SetLevel(parsed)

	return nil
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"system":    SystemName,
		"component": component,
	})
}
