package logging

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

// NewTestLogger returns a logger that writes through t.Log.
func NewTestLogger(t *testing.T) *Logger {
	t.Helper()
	return &Logger{zap: zaptest.NewLogger(t)}
}
