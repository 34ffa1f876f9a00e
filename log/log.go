/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	FORMAT_TEXT = "text"
	FORMAT_JSON = "json"
)

// SetOutput sets the standard logger output.
func SetOutput(out io.Writer) {
	logrus.SetOutput(out)
}

// SetupLogLevel sets up the standard logger level in accordance with command line options.
func SetupLogLevel(showDebug bool, suppressWarnings bool) {
	if showDebug {
		logrus.SetLevel(logrus.TraceLevel)
	} else if suppressWarnings {
		logrus.SetLevel(logrus.ErrorLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// SetupFormat selects the standard logger formatter ("text" or "json").
func SetupFormat(format string) error {
	switch strings.ToLower(format) {
	case "", FORMAT_TEXT:
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case FORMAT_JSON:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("log format must be one of %v, got %q", []string{FORMAT_TEXT, FORMAT_JSON}, format)
	}
	return nil
}

// IsQuiet reports whether info level messages are suppressed.
func IsQuiet() bool {
	return !logrus.IsLevelEnabled(logrus.InfoLevel)
}

// Tracef logs a message at level Trace on the standard logger.
func Tracef(format string, args ...interface{}) {
	logrus.Tracef(format, args...)
}

// Infof logs a message at level Info on the standard logger.
func Infof(format string, args ...interface{}) {
	logrus.Infof(format, args...)
}

// Warnf logs a message at level Warning on the standard logger.
func Warnf(format string, args ...interface{}) {
	logrus.Warnf(format, args...)
}

// Errorf logs a message at level Error on the standard logger.
func Errorf(format string, args ...interface{}) {
	logrus.Errorf(format, args...)
}

// WithField returns an entry of the standard logger carrying one field.
func WithField(key string, value interface{}) *logrus.Entry {
	return logrus.WithField(key, value)
}
