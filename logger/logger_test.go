package logger

import (
	"testing"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected default level info, got %s", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected default format console, got %s", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamps enabled by default")
	}
}

func TestConfig_Validate_BadLevel(t *testing.T) {
	cfg := &Config{Level: "loud", Format: "json"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestConfig_Validate_BadFormat(t *testing.T) {
	cfg := &Config{Level: "info", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestNew_InvalidLevelFallsBack(t *testing.T) {
	cfg := &Config{Level: "nonsense", Format: "json", Output: "stdout"}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger despite invalid level")
	}
}

func TestWithComponent_ReturnsNewLogger(t *testing.T) {
	l := NewDefault("test")
	cl := l.WithComponent("store")
	if cl == l {
		t.Error("WithComponent must return a derived logger")
	}
}

func TestFields_PairsAndOddInput(t *testing.T) {
	m := Fields("op", "save", "id", 42)
	if m["op"] != "save" || m["id"] != 42 {
		t.Errorf("unexpected fields: %v", m)
	}

	m = Fields("op", "save", "dangling")
	if len(m) != 1 {
		t.Errorf("dangling key must be dropped, got %v", m)
	}
}
