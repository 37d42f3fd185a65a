package config

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggersMu     sync.Mutex
	loggers       = map[string]*logrus.Logger{}
	loggingLevel  = logrus.InfoLevel
	loggingOutput io.Writer = os.Stderr
)

// NamedLogger creates named package logger.
// Loggers created this way follow SetLoggingLevel and SetLoggingOutput.
func NamedLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	if logger, ok := loggers[name]; ok {
		return logger
	}
	logger := &logrus.Logger{
		Out: loggingOutput,
		Formatter: &CustomTextFormatter{
			TextFormatter: logrus.TextFormatter{
				ForceColors: true,
				CallerPrettyfier: func(*runtime.Frame) (string, string) {
					return "", ""
				},
			},
		},
		Hooks:        make(logrus.LevelHooks),
		Level:        loggingLevel,
		ReportCaller: true,
		ExitFunc:     os.Exit,
	}
	loggers[name] = logger
	return logger
}

// SetLoggingLevel changes level of every named logger.
func SetLoggingLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	loggersMu.Lock()
	defer loggersMu.Unlock()
	loggingLevel = parsed
	for _, logger := range loggers {
		logger.SetLevel(parsed)
	}
	return nil
}

// SetLoggingOutput redirects every named logger, e.g. away from a terminal UI.
func SetLoggingOutput(out io.Writer) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	loggingOutput = out
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

// CustomTextFormatter ...
type CustomTextFormatter struct {
	logrus.TextFormatter
}

// Format renders a single log entry
func (f *CustomTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry.HasCaller() {
		entry.Message = fmt.Sprintf("[%-15s:%03d]%s", path.Base(entry.Caller.File), entry.Caller.Line, entry.Message)
	}
	return f.TextFormatter.Format(entry)
}
