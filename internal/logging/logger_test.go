package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func TestNewLogger(t *testing.T) {
	t.Run("console only", func(t *testing.T) {
		l, err := NewLogger(LogLevelInfo, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer l.Close()
		if l.file != nil || l.fileLog != nil {
			t.Error("no file should be opened without a path")
		}
	})

	t.Run("with file", func(t *testing.T) {
		l, err := NewLogger(LogLevelDebug, filepath.Join(t.TempDir(), "merlinctl.log"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer l.Close()
		if l.fileLog == nil {
			t.Error("fileLog should be set")
		}
	})

	t.Run("unwritable path", func(t *testing.T) {
		if _, err := NewLogger(LogLevelInfo, "/nonexistent/dir/merlinctl.log"); err == nil {
			t.Error("expected error for unwritable path")
		}
	})
}

func TestNewLoggerWithOptions(t *testing.T) {
	tests := []struct {
		format       string
		logEvery     int
		wantFormat   string
		wantLogEvery int
		wantErr      bool
	}{
		{format: "json", logEvery: 5, wantFormat: "json", wantLogEvery: 5},
		{format: "", logEvery: 0, wantFormat: "text", wantLogEvery: 1},
		{format: "text", logEvery: -3, wantFormat: "text", wantLogEvery: 1},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		l, err := NewLoggerWithOptions(LogLevelInfo, "", tt.format, tt.logEvery)
		if tt.wantErr {
			if err == nil {
				t.Errorf("format %q: expected error", tt.format)
			}
			continue
		}
		if err != nil {
			t.Fatalf("format %q: %v", tt.format, err)
		}
		if l.format != tt.wantFormat || l.logEvery != tt.wantLogEvery {
			t.Errorf("format %q: got %q/%d, want %q/%d", tt.format, l.format, l.logEvery, tt.wantFormat, tt.wantLogEvery)
		}
		l.Close()
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		level   LogLevel
		want    []string
		notWant []string
	}{
		{
			level:   LogLevelSilent,
			notWant: []string{"ERROR: e", "INFO: i", "VERBOSE: v", "DEBUG: d"},
		},
		{
			level:   LogLevelInfo,
			want:    []string{"ERROR: e", "INFO: i"},
			notWant: []string{"VERBOSE: v", "DEBUG: d"},
		},
		{
			level: LogLevelDebug,
			want:  []string{"ERROR: e", "INFO: i", "VERBOSE: v", "DEBUG: d"},
		},
	}

	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "levels.log")
		l, err := NewLogger(tt.level, path)
		if err != nil {
			t.Fatalf("NewLogger: %v", err)
		}
		l.Error("e")
		l.Info("i")
		l.Verbose("v")
		l.Debug("d")
		l.Close()

		content := readLog(t, path)
		for _, w := range tt.want {
			if !strings.Contains(content, w) {
				t.Errorf("level %d: log should contain %q", tt.level, w)
			}
		}
		for _, w := range tt.notWant {
			if strings.Contains(content, w) {
				t.Errorf("level %d: log should not contain %q", tt.level, w)
			}
		}
	}
}

func TestLoggerSamplingKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sampled.log")
	l, err := NewLoggerWithOptions(LogLevelInfo, path, "text", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 9; i++ {
		l.Info("label %d", i)
	}
	if l.counter != 9 {
		t.Errorf("counter = %d, want 9", l.counter)
	}
	l.Close()

	lines := strings.Split(strings.TrimSpace(readLog(t, path)), "\n")
	if len(lines) != 9 {
		t.Errorf("file should receive all 9 messages, got %d", len(lines))
	}
}

func TestLoggerJSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "json.log")
	l, err := NewLoggerWithOptions(LogLevelVerbose, path, "json", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Error("catalog failed")
	l.Verbose("lookup")
	l.Close()

	content := readLog(t, path)
	for _, want := range []string{`"level":"error"`, `"level":"verbose"`, `"message":"catalog failed"`} {
		if !strings.Contains(content, want) {
			t.Errorf("JSON output should contain %s, got: %s", want, content)
		}
	}
}

func TestSetGetLevel(t *testing.T) {
	l, _ := NewLogger(LogLevelInfo, "")
	defer l.Close()

	l.SetLevel(LogLevelDebug)
	if l.GetLevel() != LogLevelDebug {
		t.Errorf("GetLevel() = %d, want %d", l.GetLevel(), LogLevelDebug)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"silent":  LogLevelSilent,
		"ERROR":   LogLevelError,
		"":        LogLevelInfo,
		" info ":  LogLevelInfo,
		"verbose": LogLevelVerbose,
		"debug":   LogLevelDebug,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLogLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lookup.log")
	l, err := NewLogger(LogLevelVerbose, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.LogLookup("program", "1", true, nil)
	l.LogLookup("program", "99", false, errors.New("not found"))
	l.Close()

	content := readLog(t, path)
	for _, want := range []string{"FOUND program 1", "MISS program 99", "error: not found"} {
		if !strings.Contains(content, want) {
			t.Errorf("log should contain %q, got: %s", want, content)
		}
	}
}

func TestLogLookupHitsHiddenAtInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lookup.log")
	l, err := NewLogger(LogLevelInfo, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.LogLookup("program", "1", true, nil)
	l.Close()

	if strings.TrimSpace(readLog(t, path)) != "" {
		t.Error("hits should only be logged at verbose")
	}
}

func TestLogStartup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "startup.log")
	l, err := NewLogger(LogLevelVerbose, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.LogStartup("programs list", "merlin400", 6, "/home/u/.merlinctl.yaml")
	l.Close()

	content := readLog(t, path)
	for _, want := range []string{"Starting merlinctl programs list", "merlin400 (6 programs)", ".merlinctl.yaml"} {
		if !strings.Contains(content, want) {
			t.Errorf("log should contain %q", want)
		}
	}
}

func TestCloseWithoutFile(t *testing.T) {
	l, _ := NewLogger(LogLevelInfo, "")
	if err := l.Close(); err != nil {
		t.Errorf("Close without file should not error: %v", err)
	}
}

func TestLevelLabel(t *testing.T) {
	if levelLabel(true) != "error" || levelLabel(false) != "info" {
		t.Errorf("levelLabel = %q/%q", levelLabel(true), levelLabel(false))
	}
}
