package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{LevelOff, false, false},
		{LevelNormal, false, true},
		{LevelVerbose, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, &buf)
			log.Debug("dbg %d", 1)
			log.Info("inf %d", 2)

			out := buf.String()
			if got := strings.Contains(out, "dbg 1"); got != tt.wantDebug {
				t.Fatalf("debug present=%v, want %v (out=%q)", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "inf 2"); got != tt.wantInfo {
				t.Fatalf("info present=%v, want %v (out=%q)", got, tt.wantInfo, out)
			}
		})
	}
}

func TestNamedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelOff, &buf)
	child := log.Named("engine")

	log.SetLevel(LevelNormal)
	child.Info("served")

	out := buf.String()
	if !strings.Contains(out, "component=engine") {
		t.Fatalf("expected component attr, got %q", out)
	}
	if !strings.Contains(out, "served") {
		t.Fatalf("expected message, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"quiet", LevelOff, false},
		{"", LevelNormal, false},
		{"Normal", LevelNormal, false},
		{"debug", LevelVerbose, false},
		{"loud", LevelNormal, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err=%v, wantErr=%v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
