package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersForwardFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	previous := Logger
	Logger = zap.New(core)
	defer func() { Logger = previous }()

	Info("cloaked", LoggerOptions{Key: "faces", Data: 2})
	Warning("strategy failed", LoggerOptions{Key: "error", Data: errors.New("boom")})
	Error("decode failed")

	entries := logs.All()
	assert.Len(t, entries, 3)
	assert.Equal(t, "cloaked", entries[0].Message)
	assert.Equal(t, int64(2), entries[0].ContextMap()["faces"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
}
