package monitoring

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	// Save original logger
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("test message")
	if !called {
		t.Error("Custom logger was not called")
	}

	// nil installs a no-op logger that never reaches the previous one.
	called = false
	SetLogger(nil)
	Logf("test message")
	if called {
		t.Error("No-op logger should not have triggered callback")
	}
}

func TestUseZap(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	core, logs := observer.New(zap.InfoLevel)
	UseZap(zap.New(core).Sugar())

	Logf("[Sector] built %d tracks", 3)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Message != "[Sector] built 3 tracks" {
		t.Errorf("unexpected message %q", entries[0].Message)
	}

	UseZap(nil)
	Logf("dropped")
	if logs.Len() != 1 {
		t.Errorf("expected nil zap logger to mute output, got %d entries", logs.Len())
	}
}

func TestNewZapLogger(t *testing.T) {
	l, err := NewZapLogger("debug")
	if err != nil {
		t.Fatalf("NewZapLogger: %v", err)
	}
	if !l.Core().Enabled(zap.DebugLevel) {
		t.Error("expected debug level to be enabled")
	}

	if _, err := NewZapLogger("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
