package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewLogger_Level(t *testing.T) {
	l := NewLogger("warn", []string{"stdout"})
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))
}

func TestNewLogger_UnknownLevelFallsBackToDebug(t *testing.T) {
	l := NewLogger("loud", nil)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}
