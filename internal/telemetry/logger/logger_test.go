package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default config", cfg: DefaultConfig()},
		{name: "json format", cfg: Config{Level: "debug", Format: "json"}},
		{name: "console format", cfg: Config{Level: "info", Format: "console"}},
		{name: "empty format", cfg: Config{}},
		{name: "unknown format", cfg: Config{Format: "xml"}, wantErr: true},
		{name: "unknown level", cfg: Config{Level: "loud"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("New() should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if l == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "warn", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Debug("debug message")
	l.Info("info message")
	if buf.Len() != 0 {
		t.Errorf("debug/info should be filtered at warn level, got %q", buf.String())
	}

	l.Warn("warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Errorf("warn message missing from %q", buf.String())
	}

	// Loggers do not share a level.
	var other bytes.Buffer
	if _, err := New(Config{Level: "debug", Format: "json", Output: &other}); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	buf.Reset()
	l.Debug("still hidden")
	if buf.Len() != 0 {
		t.Errorf("debug logger changed the warn logger's level, got %q", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(Config{Level: "info", Format: "json", Output: &buf})

	l.With("endpoint", "greet").WithContext(context.Background()).Info("called", "status", 200)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry["endpoint"] != "greet" {
		t.Errorf("endpoint = %v, want greet", entry["endpoint"])
	}
	if entry["status"] != float64(200) {
		t.Errorf("status = %v, want 200", entry["status"])
	}
	if entry["msg"] != "called" {
		t.Errorf("msg = %v, want called", entry["msg"])
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"debug", "info", "", "warn", "warning", "error", "ERROR"} {
		if _, err := ParseLevel(name); err != nil {
			t.Errorf("ParseLevel(%q) error = %v", name, err)
		}
	}
	if _, err := ParseLevel("trace"); err == nil {
		t.Error("ParseLevel(trace) should fail")
	}
}

func TestDefault(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}

	var buf bytes.Buffer
	l, _ := New(Config{Level: "info", Format: "text", Output: &buf})
	prev := Default()
	SetDefault(l)
	defer SetDefault(prev)

	Default().Info("through default")
	if !strings.Contains(buf.String(), "through default") {
		t.Errorf("default logger did not write, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic.
	Discard().With("k", "v").Error("dropped")
}
