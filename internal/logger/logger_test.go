package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewHonoursLevel(t *testing.T) {
	l, err := New("warn", false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = l.Sync() }()

	if l.Core().Enabled(zap.InfoLevel) {
		t.Fatalf("info should be disabled at warn level")
	}
	if !l.Core().Enabled(zap.ErrorLevel) {
		t.Fatalf("error should be enabled at warn level")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("verbose", true); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
