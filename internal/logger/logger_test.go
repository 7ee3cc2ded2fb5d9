package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWithFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "skelview.log")

	err := InitWith(Options{Level: "debug", File: logFile, Console: false})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer Sync()

	Sugar.Debugf("frame %d pose digest %x", 42, 0xdeadbeef)
	Info("playback started")
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "frame 42") {
		t.Errorf("debug line missing from log output:\n%s", out)
	}
	if !strings.Contains(out, "playback started") {
		t.Errorf("info line missing from log output:\n%s", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug": "debug",
		"warn":  "warn",
		"error": "error",
		"info":  "info",
		"bogus": "info",
		"":      "info",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
