package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("qualquer"))
}

func TestZapLogger_WritesFieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &ZapLogger{z: zap.New(core)}

	l.Info("Filme criado.", map[string]interface{}{"id": "m1"})
	l.Warn("Filme ausente na devolução.", nil)
	l.Error("Falha no DB.", errors.New("boom"))

	entries := logs.All()
	assert.Len(t, entries, 3)
	assert.Equal(t, "m1", entries[0].ContextMap()["id"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
}

func TestNewNop_DoesNotPanic(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.Debug("debug", nil)
		l.Info("info", map[string]interface{}{"k": 1})
		l.Warn("warn", nil)
		l.Error("error", errors.New("x"))
	})
}
