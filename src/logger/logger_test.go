package logger

import (
	"bytes"
	"testing"

	"token-scanner/src/models"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarning, ParseLevel("WARN"))
	assert.Equal(t, LevelWarning, ParseLevel("WARNING"))
	assert.Equal(t, LevelError, ParseLevel(" ERROR "))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&models.MConfig{LogLevel: "WARNING"}, "test")
	l.SetOutput(&buf)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	assert.Empty(t, buf.String())

	l.Warning("warn %d", 3)
	l.Error("error %d", 4)
	out := buf.String()
	assert.Contains(t, out, "[test] WARNING: warn 3")
	assert.Contains(t, out, "[test] ERROR: error 4")
}

func TestLogger_NamedSharesOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(&models.MConfig{LogLevel: "DEBUG"}, "parent")
	parent.SetOutput(&buf)

	child := parent.Named("child")
	child.Debug("hello")

	assert.Contains(t, buf.String(), "[child] DEBUG: hello")
}

func TestNewLogger_NilConfigDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(nil, "nil")
	l.SetOutput(&buf)

	l.Debug("hidden")
	l.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
