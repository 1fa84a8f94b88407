package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pithecene-io/ezcrash/types"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestLogger_ProcessContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(types.ProcessMeta{PID: 4242, Executable: `C:\app\app.exe`}, &buf)

	l.Error("Crash :(", map[string]any{"code": "0xC0000005"})

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e["level"] != "error" {
		t.Errorf("level = %v, want error", e["level"])
	}
	if e["message"] != "Crash :(" {
		t.Errorf("message = %v", e["message"])
	}
	if e["pid"] != float64(4242) {
		t.Errorf("pid = %v, want 4242", e["pid"])
	}
	if e["executable"] != `C:\app\app.exe` {
		t.Errorf("executable = %v", e["executable"])
	}
	if e["version"] != types.Version {
		t.Errorf("version = %v, want %s", e["version"], types.Version)
	}
	fields, ok := e["fields"].(map[string]any)
	if !ok || fields["code"] != "0xC0000005" {
		t.Errorf("fields = %v", e["fields"])
	}
	if _, ok := e["timestamp"]; !ok {
		t.Error("timestamp missing")
	}
}

func TestLogger_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(types.ProcessMeta{PID: 1}, &buf)

	l.Info("hello", nil)

	e := decodeLines(t, &buf)[0]
	if _, ok := e["fields"]; ok {
		t.Error("fields key present for nil fields")
	}
	if _, ok := e["executable"]; ok {
		t.Error("executable key present for empty executable")
	}
}

func TestLogger_WithOutput(t *testing.T) {
	var first, second bytes.Buffer
	l := NewLoggerWithWriter(types.ProcessMeta{PID: 7, Executable: "app.exe"}, &first)

	l.WithOutput(&second).Warn("redirected", nil)

	if first.Len() != 0 {
		t.Errorf("original writer received %q", first.String())
	}
	e := decodeLines(t, &second)[0]
	if e["level"] != "warn" || e["message"] != "redirected" {
		t.Errorf("entry = %v", e)
	}
	if e["pid"] != float64(7) {
		t.Errorf("pid lost after WithOutput: %v", e["pid"])
	}
	if e["executable"] != "app.exe" || e["version"] != types.Version {
		t.Errorf("process context lost after WithOutput: %v", e)
	}
}

func TestSugaredLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(types.ProcessMeta{PID: 1}, &buf)

	l.Sugar().With("file", "crash.txt").Infof("read %d bytes", 512)

	e := decodeLines(t, &buf)[0]
	if e["message"] != "read 512 bytes" {
		t.Errorf("message = %v", e["message"])
	}
	if e["file"] != "crash.txt" {
		t.Errorf("file = %v", e["file"])
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("dropped", map[string]any{"k": "v"})
	if err := l.Sync(); err != nil {
		t.Errorf("Sync() = %v", err)
	}
}
