package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/sqlstream/errors"
)

type sampleConfig struct {
	DSN        string `mapstructure:"dsn" validate:"required"`
	MaxRetries int    `mapstructure:"max_retries" validate:"min=1"`
	LogLevel   string `mapstructure:"log_level" validate:"omitempty,oneof=silent error warn info"`
}

func TestValidate_OK(t *testing.T) {
	cfg := sampleConfig{DSN: "file::memory:", MaxRetries: 3, LogLevel: "warn"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := sampleConfig{MaxRetries: 1}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("got code %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
	if !strings.Contains(err.Error(), "dsn") {
		t.Errorf("expected field name in message, got %q", err.Error())
	}
}

func TestValidate_OneOf(t *testing.T) {
	cfg := sampleConfig{DSN: "x", MaxRetries: 1, LogLevel: "loud"}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("expected log_level in message, got %q", err.Error())
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("MaxOpenConns"); got != "max_open_conns" {
		t.Errorf("got %q", got)
	}
}
