package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.ShowDialog {
		t.Error("ShowDialog: got false, want true")
	}
	if !cfg.EmitLog {
		t.Error("EmitLog: got false, want true")
	}
	assertEqual(t, "OutputPath", cfg.OutputPath, "crash")
	if !cfg.IncludeStackTrace {
		t.Error("IncludeStackTrace: got false, want true")
	}
	if !cfg.IncludeThreadContext {
		t.Error("IncludeThreadContext: got false, want true")
	}
	assertEqual(t, "ArchiveDir", cfg.ArchiveDir, "")
	if cfg.FrameLimit() != DefaultMaxFrames {
		t.Errorf("FrameLimit: got %d, want %d", cfg.FrameLimit(), DefaultMaxFrames)
	}
}

func TestStore_CurrentWithoutInitialize(t *testing.T) {
	var s Store
	if s.Initialized() {
		t.Fatal("zero Store reports initialized")
	}
	if got := s.Current(); got != Default() {
		t.Errorf("Current() = %+v, want Default()", got)
	}
}

func TestStore_InitializeOnce(t *testing.T) {
	var s Store
	first := Configuration{EmitLog: true, OutputPath: "first.txt"}
	second := Configuration{ShowDialog: true, OutputPath: "second.txt"}

	if err := s.Initialize(first); err != nil {
		t.Fatalf("first Initialize: %v", err)
	}
	err := s.Initialize(second)
	if !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("second Initialize = %v, want ErrAlreadyInitialized", err)
	}
	if got := s.Current(); got != first {
		t.Errorf("Current() = %+v, want first configuration %+v", got, first)
	}
	if !s.Initialized() {
		t.Error("Initialized() = false after Initialize")
	}
}

func TestStore_InitializeCopiesValue(t *testing.T) {
	var s Store
	cfg := Configuration{OutputPath: "a"}
	if err := s.Initialize(cfg); err != nil {
		t.Fatal(err)
	}
	cfg.OutputPath = "mutated"
	assertEqual(t, "OutputPath", s.Current().OutputPath, "a")
}

func TestStore_ConcurrentInitialize(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := range 16 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := s.Initialize(Configuration{MaxFrames: n + 1}); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("%d Initialize calls succeeded, want exactly 1", wins)
	}
	if s.Current().MaxFrames == 0 {
		t.Error("installed configuration lost")
	}
}

func TestLoad_FullConfig(t *testing.T) {
	yaml := `show_dialog: false
emit_log: true
output_path: /var/crash/report.txt
include_stack_trace: false
include_thread_context: true
archive_dir: /var/crash/archive
max_frames: 16
`
	cfg, err := Load(writeTemp(t, yaml))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Configuration{
		ShowDialog:           false,
		EmitLog:              true,
		OutputPath:           "/var/crash/report.txt",
		IncludeStackTrace:    false,
		IncludeThreadContext: true,
		ArchiveDir:           "/var/crash/archive",
		MaxFrames:            16,
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "show_dialog: false\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Default()
	want.ShowDialog = false
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_EmptyOutputPathDisablesFileSink(t *testing.T) {
	cfg, err := Load(writeTemp(t, "output_path: \"\"\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertEqual(t, "OutputPath", cfg.OutputPath, "")
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("CRASH_OUT", "/tmp/app.crash")

	cfg, err := Load(writeTemp(t, "output_path: ${CRASH_OUT}\narchive_dir: ${UNSET_ARCHIVE_12345:-/tmp/archive}\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertEqual(t, "OutputPath", cfg.OutputPath, "/tmp/app.crash")
	assertEqual(t, "ArchiveDir", cfg.ArchiveDir, "/tmp/archive")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeTemp(t, "show_dialog: [unterminated\n"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "invalid YAML") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_NegativeMaxFrames(t *testing.T) {
	_, err := Load(writeTemp(t, "max_frames: -1\n"))
	if err == nil {
		t.Fatal("expected error for negative max_frames")
	}
	if !strings.Contains(err.Error(), "max_frames") {
		t.Errorf("unexpected error: %v", err)
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ezcrash.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func assertEqual(t *testing.T, field, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %q, want %q", field, got, want)
	}
}
