package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel, // desconhecido cai para info
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "nível %q", in)
	}
}

func TestToZapFields_Empty(t *testing.T) {
	assert.Nil(t, toZapFields(nil))
	assert.Len(t, toZapFields(map[string]interface{}{"a": 1, "b": "x"}), 2)
}

func TestNopLogger_DoesNotPanic(t *testing.T) {
	log := NewNop()
	assert.NotPanics(t, func() {
		log.Debug("debug", map[string]interface{}{"k": "v"})
		log.Info("info", nil)
		log.Warn("warn", nil)
		log.Error("error", errors.New("boom"))
	})
}
