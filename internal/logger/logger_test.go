package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input string
		want  logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{" error ", logrus.ErrorLevel},
		{"not-a-level", logrus.InfoLevel},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, ParseLevel(tc.input), "ParseLevel(%q)", tc.input)
	}
}

func TestNewLoggerUsesEnvLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, logrus.DebugLevel, NewLogger().GetLevel())
}
