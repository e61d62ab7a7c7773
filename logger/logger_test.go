package logger

import (
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("got %q, want info", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("got %q, want console", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("got %q, want stdout", cfg.Output)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Level: "verbose", Format: "json"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid level")
	}
	cfg = Config{Level: "debug", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid format")
	}
	cfg = Config{Level: "debug", Format: "json"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_InvalidLevelFallsBack(t *testing.T) {
	l := New(&Config{Level: "nope", Format: "json"}, "test")
	if l == nil {
		t.Fatal("expected logger")
	}
}

func TestFields(t *testing.T) {
	m := Fields("op", "force", "rows", 3)
	if m["op"] != "force" || m["rows"] != 3 {
		t.Errorf("unexpected fields: %v", m)
	}
	// Odd trailing key is dropped.
	m = Fields("only")
	if len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("realize", 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("got %v, want 1500", m[FieldDuration])
	}
}
