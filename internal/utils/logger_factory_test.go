package utils_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/goodguide/repokeeper/internal/utils"
)

func TestCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name            string
		logLevel        utils.LogLevel
		logFormat       utils.LogFormat
		expectedError   string
		expectedEnabled zapcore.Level
	}{
		{
			name:            "structured_debug_logger",
			logLevel:        utils.LogLevelDebug,
			logFormat:       utils.LogFormatStructured,
			expectedEnabled: zapcore.DebugLevel,
		},
		{
			name:            "console_warn_logger",
			logLevel:        utils.LogLevelWarn,
			logFormat:       utils.LogFormatConsole,
			expectedEnabled: zapcore.WarnLevel,
		},
		{
			name:          "unsupported_level",
			logLevel:      utils.LogLevel("verbose"),
			logFormat:     utils.LogFormatStructured,
			expectedError: "unsupported log level: verbose",
		},
		{
			name:          "unsupported_format",
			logLevel:      utils.LogLevelInfo,
			logFormat:     utils.LogFormat("logfmt"),
			expectedError: "unsupported log format: logfmt",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(subtest *testing.T) {
			logger, creationError := utils.NewLoggerFactory().CreateLogger(testCase.logLevel, testCase.logFormat)

			if len(testCase.expectedError) > 0 {
				require.EqualError(subtest, creationError, testCase.expectedError)
				return
			}
			require.NoError(subtest, creationError)
			require.NotNil(subtest, logger)
			require.True(subtest, logger.Core().Enabled(testCase.expectedEnabled))
			if testCase.expectedEnabled > zapcore.DebugLevel {
				require.False(subtest, logger.Core().Enabled(zapcore.DebugLevel))
			}
		})
	}
}
