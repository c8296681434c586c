package logutils

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
		ok       bool
	}{
		{"debug", logrus.DebugLevel, true},
		{"INFO", logrus.InfoLevel, true},
		{"warn", logrus.WarnLevel, true},
		{"WARNING", logrus.WarnLevel, true},
		{"error", logrus.ErrorLevel, true},
		{"critical", logrus.FatalLevel, true},
		{"verbose", logrus.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, ok := parseLogLevel(tt.input, logrus.InfoLevel)
			assert.Equal(t, tt.expected, level)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { Log.SetLevel(logrus.InfoLevel) })

	InitLogger("debug")
	assert.True(t, IsDebug())

	InitLogger("nonsense")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	assert.False(t, IsDebug())
}
