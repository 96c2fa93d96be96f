package utils

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	structuredTimestampFieldKeyConstant  = "timestamp"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
)

// LogLevel selects the minimum severity the logger emits.
type LogLevel string

// Log levels accepted by the common.log_level configuration key.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat selects the logger output encoding.
type LogFormat string

// Log formats accepted by the common.log_format configuration key:
// structured emits JSON records, console emits operator-readable lines.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

// LoggerFactory builds the zap loggers shared by every command.
type LoggerFactory struct{}

// NewLoggerFactory constructs a LoggerFactory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger builds a logger for the requested level and format. Structured
// output follows the zap production preset with RFC3339 timestamps; console
// output drops caller and stacktrace annotations so log lines read cleanly
// next to the plan and skip lines commands print on stdout.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	minimumLevel, levelError := zapLevelFor(requestedLogLevel)
	if levelError != nil {
		return nil, levelError
	}

	configuration, configurationError := loggerConfigurationFor(requestedLogFormat)
	if configurationError != nil {
		return nil, configurationError
	}
	configuration.Level = zap.NewAtomicLevelAt(minimumLevel)

	return configuration.Build()
}

func zapLevelFor(requestedLogLevel LogLevel) (zapcore.Level, error) {
	switch requestedLogLevel {
	case LogLevelDebug:
		return zapcore.DebugLevel, nil
	case LogLevelInfo:
		return zapcore.InfoLevel, nil
	case LogLevelWarn:
		return zapcore.WarnLevel, nil
	case LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InvalidLevel, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}
}

func loggerConfigurationFor(requestedLogFormat LogFormat) (zap.Config, error) {
	switch requestedLogFormat {
	case LogFormatStructured:
		configuration := zap.NewProductionConfig()
		configuration.EncoderConfig.TimeKey = structuredTimestampFieldKeyConstant
		configuration.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
		return configuration, nil
	case LogFormatConsole:
		configuration := zap.NewDevelopmentConfig()
		configuration.DisableCaller = true
		configuration.DisableStacktrace = true
		return configuration, nil
	default:
		return zap.Config{}, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}
}
