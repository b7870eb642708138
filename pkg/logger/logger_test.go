package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		env, level string
		want       zapcore.Level
	}{
		{"dev", "", zapcore.DebugLevel},
		{"prod", "", zapcore.InfoLevel},
		{"prod", "warn", zapcore.WarnLevel},
		{"dev", "error", zapcore.ErrorLevel},
		{"prod", "shouting", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		t.Run(tc.env+"/"+tc.level, func(t *testing.T) {
			log := New(tc.env, tc.level)
			assert.True(t, log.Desugar().Core().Enabled(tc.want))
			if tc.want > zapcore.DebugLevel {
				assert.False(t, log.Desugar().Core().Enabled(tc.want-1))
			}
		})
	}
}

func TestNopDiscards(t *testing.T) {
	assert.False(t, Nop().Desugar().Core().Enabled(zapcore.FatalLevel))
}
