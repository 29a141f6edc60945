package log

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Log struct singleton
type Log struct {
	AppName  string
	LogLevel int
	Logger   *logrus.Logger
}

var logger = Log{
	AppName:  "TOUR_SERVICE",
	LogLevel: levelDebug,
	Logger:   logrus.New(),
}

const (
	levelDebug = 1
	levelWarn  = 2
	levelError = 3
)

var mapOfLogLevel = map[string]int{
	"DEBUG": levelDebug,
	"INFO":  levelDebug,
	"WARN":  levelWarn,
	"ERROR": levelError,
}

// InitLogger initialize logger from Viper
func InitLogger(v *viper.Viper) {
	levelStr := v.GetString("log.level")
	level, ok := mapOfLogLevel[levelStr]
	if !ok {
		level = levelDebug
	}

	logger = Log{
		AppName:  v.GetString("app.name"),
		LogLevel: level,
		Logger:   newLogrusLogger(levelStr, os.Stdout),
	}
}

// GetLogger return singleton
func GetLogger() Log {
	return logger
}

// NewNop returns a logger that discards everything, handy for tests.
func NewNop() Log {
	return Log{
		AppName:  "test",
		LogLevel: levelError + 1,
		Logger:   newLogrusLogger("ERROR", io.Discard),
	}
}

func newLogrusLogger(levelStr string, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}

func (l Log) fields(context, scope, meta string, skip int) logrus.Fields {
	_, file, line, _ := runtime.Caller(skip)
	return logrus.Fields{
		"service": l.AppName,
		"context": context,
		"scope":   scope,
		"meta":    meta,
		"at":      fmt.Sprintf("%s:%d", file, line),
	}
}

// Info
func (l Log) Info(context, message, scope, meta string) {
	if l.LogLevel <= levelDebug {
		l.Logger.WithFields(l.fields(context, scope, meta, 2)).Info(message)
	}
}

// Warn is used for failures that did not undo committed work.
func (l Log) Warn(context, message, scope, meta string) {
	if l.LogLevel <= levelWarn {
		l.Logger.WithFields(l.fields(context, scope, meta, 2)).Warn(message)
	}
}

// Error
func (l Log) Error(context, message, scope, meta string) {
	if l.LogLevel <= levelError {
		fields := l.fields(context, scope, meta, 2)
		_, file2, line2, _ := runtime.Caller(2)
		fields["caller"] = fmt.Sprintf("%s:%d", file2, line2)
		l.Logger.WithFields(fields).Error(message)
	}
}

// Slow
func (l Log) Slow(context, message, scope, meta string) {
	if l.LogLevel <= levelDebug {
		l.Logger.WithFields(l.fields(context, scope, meta, 3)).Info("[SLOW] " + message)
	}
}
