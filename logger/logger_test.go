package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerDefaultsToInfoLevel(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{}))
	assert.Equal(t, logrus.InfoLevel, Logger.Level)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, parseLogLevel("warning"))
	assert.Equal(t, logrus.InfoLevel, parseLogLevel("nonsense"))
}

func TestCustomFormatterIncludesLevelAndMessage(t *testing.T) {
	f := &CustomFormatter{TimestampFormat: "15:04:05"}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Message: "device full",
		Level:   logrus.ErrorLevel,
	}
	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "ERRO")
	assert.Contains(t, string(out), "device full")
}

func TestHelpersNoopBeforeInit(t *testing.T) {
	Logger = nil
	InfoLogger = nil
	ErrorLogger = nil
	assert.NotPanics(t, func() {
		Info("x")
		Debug("x")
		Warn("x")
		Error("x")
	})
}

func TestInfoWritesThroughInfoLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{}))
	var buf bytes.Buffer
	InfoLogger.SetOutput(&buf)
	Info("hello")
	assert.Contains(t, buf.String(), "hello")
}
