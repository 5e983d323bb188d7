package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelNormal, &buf)

	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at normal level: %q", out)
	}
	if !strings.Contains(out, "[INF] ") || !strings.Contains(out, "shown 2") {
		t.Fatalf("expected info line, got %q", out)
	}

	buf.Reset()
	log.SetLevel(LevelVerbose)
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "[DBG] ") {
		t.Fatalf("expected debug line after SetLevel, got %q", buf.String())
	}

	buf.Reset()
	log.SetLevel(LevelOff)
	log.Error("silenced")
	if buf.Len() != 0 {
		t.Fatalf("expected no output at LevelOff, got %q", buf.String())
	}
}

func TestWithPrefixesComponent(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelNormal, &buf)
	child := root.With("engine").With("timer")

	child.Warn("late by %s", "3ms")
	if !strings.Contains(buf.String(), "engine.timer: late by 3ms") {
		t.Fatalf("expected component prefix, got %q", buf.String())
	}

	// Children share the parent's level.
	root.SetLevel(LevelOff)
	buf.Reset()
	child.Error("quiet")
	if buf.Len() != 0 {
		t.Fatalf("child ignored parent level: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"", LevelNormal, false},
		{"Verbose", LevelVerbose, false},
		{"debug", LevelVerbose, false},
		{"loud", LevelNormal, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
