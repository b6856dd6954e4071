package logging

import (
	"maps"
	"os"

	"github.com/sirupsen/logrus"
)

// LogrusLogger implements Logger on top of a logrus.Logger.
type LogrusLogger struct {
	log    *logrus.Logger
	fields Fields
}

// NewLogrusLogger creates a logrus-backed logger writing to stderr at Info level.
func NewLogrusLogger() *LogrusLogger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return &LogrusLogger{
		log:    log,
		fields: make(Fields),
	}
}

// NewLogrusLoggerFrom wraps an existing logrus.Logger so applications can
// share one configured instance with the library.
func NewLogrusLoggerFrom(log *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{
		log:    log,
		fields: make(Fields),
	}
}

func (l *LogrusLogger) entry(fields []Fields) *logrus.Entry {
	merged := make(logrus.Fields, len(l.fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	return l.log.WithFields(merged)
}

func (l *LogrusLogger) Debug(msg string, fields ...Fields) {
	l.entry(fields).Debug(msg)
}

func (l *LogrusLogger) Info(msg string, fields ...Fields) {
	l.entry(fields).Info(msg)
}

func (l *LogrusLogger) Warn(msg string, fields ...Fields) {
	l.entry(fields).Warn(msg)
}

func (l *LogrusLogger) Error(err error, msg string, fields ...Fields) {
	l.entry(fields).WithError(err).Error(msg)
}

func (l *LogrusLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)
	return &LogrusLogger{log: l.log, fields: merged}
}

func (l *LogrusLogger) SetLevel(level Level) {
	switch level {
	case DebugLevel:
		l.log.SetLevel(logrus.DebugLevel)
	case InfoLevel:
		l.log.SetLevel(logrus.InfoLevel)
	case WarnLevel:
		l.log.SetLevel(logrus.WarnLevel)
	case ErrorLevel:
		l.log.SetLevel(logrus.ErrorLevel)
	}
}
