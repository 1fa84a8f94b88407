package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/ezcrash/cli/reader"
	"github.com/pithecene-io/ezcrash/config"
	"github.com/pithecene-io/ezcrash/report"
	"github.com/pithecene-io/ezcrash/sink"
	"github.com/pithecene-io/ezcrash/types"
)

// runApp runs the CLI with args and returns stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &cli.App{
		Name:     "ezcrash",
		Writer:   &out,
		Commands: Commands("test"),
		// Keep cli from calling os.Exit on ExitCoder errors.
		ExitErrHandler: func(*cli.Context, error) {},
	}
	err := app.Run(append([]string{"ezcrash"}, args...))
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ec cli.ExitCoder
	if !errors.As(err, &ec) {
		t.Fatalf("error %v is not a cli.ExitCoder", err)
	}
	return ec.ExitCode()
}

func testReport(t *testing.T, id string, ts time.Time) *report.Report {
	t.Helper()
	rec := types.NewFaultRecord(types.FaultAccessViolation.Code(), 0x7FF600001000, types.AccessWrite, 0)
	stack := report.Stack{{PC: 0x7FF600001000, Function: "main.main", File: "/src/main.go", Line: 7}}
	r := report.Build(rec, &types.RegisterSnapshot{Rip: 0x7FF600001000}, stack, config.Default())
	r.Record.IncidentID = id
	r.Record.Timestamp = ts.UTC().Format(time.RFC3339Nano)
	return r
}

func TestInspect_TextReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crash.txt")
	r := testReport(t, "", time.Now())
	if err := os.WriteFile(path, r.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runApp(t, "inspect", "--format", "json", path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}

	var resp reader.InspectCrashResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if resp.Kind != "EXCEPTION_ACCESS_VIOLATION" {
		t.Errorf("Kind = %q", resp.Kind)
	}
	if resp.Format != reader.FormatText {
		t.Errorf("Format = %q, want text", resp.Format)
	}
	if !resp.Registers || resp.Frames != 1 {
		t.Errorf("Registers = %v, Frames = %d", resp.Registers, resp.Frames)
	}
}

func TestInspect_FormatTextReproducesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crash.txt")
	r := testReport(t, "", time.Now())
	if err := os.WriteFile(path, r.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runApp(t, "inspect", "--format", "text", "--no-color", path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if out != r.String() {
		t.Errorf("text output differs from report:\n%s", out)
	}
}

func TestInspect_Errors(t *testing.T) {
	if _, err := runApp(t, "inspect"); exitCode(t, err) != 1 {
		t.Error("missing argument should exit 1")
	}

	_, err := runApp(t, "inspect", filepath.Join(t.TempDir(), "missing.txt"))
	if exitCode(t, err) != 1 {
		t.Error("missing file should exit 1")
	}
	if !strings.Contains(err.Error(), "crash file not found") {
		t.Errorf("error = %v", err)
	}
}

func TestList_Archive(t *testing.T) {
	root := filepath.Join(t.TempDir(), "archive")
	a := sink.NewArchive(root)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"older", "newer"} {
		if err := a.Deliver(context.Background(), testReport(t, id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("deliver %s: %v", id, err)
		}
	}

	out, err := runApp(t, "list", "--format", "json", root)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var entries []reader.ArchiveEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].IncidentID != "newer" {
		t.Errorf("first entry = %q, want newest first", entries[0].IncidentID)
	}

	out, err = runApp(t, "list", "--format", "json", "--limit", "1", root)
	if err != nil {
		t.Fatalf("list --limit: %v", err)
	}
	entries = nil
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("--limit 1 returned %d entries", len(entries))
	}

	out, err = runApp(t, "list", "--format", "json", "--kind", "int_divide_by_zero", root)
	if err != nil {
		t.Fatalf("list --kind: %v", err)
	}
	entries = nil
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("--kind filter returned %d entries", len(entries))
	}
}

func TestList_RejectsTUI(t *testing.T) {
	_, err := runApp(t, "list", "--tui", t.TempDir())
	if exitCode(t, err) != 1 {
		t.Error("--tui on list should exit 1")
	}
	if !strings.Contains(err.Error(), "--tui is not supported for list") {
		t.Errorf("error = %v", err)
	}
}

func TestClassify(t *testing.T) {
	out, err := runApp(t, "classify", "--format", "json", "0xC0000094")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	var info reader.KindInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.Name != "EXCEPTION_INT_DIVIDE_BY_ZERO" || info.MemoryAccess {
		t.Errorf("info = %+v", info)
	}

	_, err = runApp(t, "classify", "0x00000001")
	if exitCode(t, err) != 2 {
		t.Error("unknown code should exit 2")
	}
}

func TestCodes(t *testing.T) {
	out, err := runApp(t, "codes", "--format", "json")
	if err != nil {
		t.Fatalf("codes: %v", err)
	}
	var infos []reader.KindInfo
	if err := json.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(infos) != len(types.FaultKinds()) {
		t.Errorf("got %d codes, want %d", len(infos), len(types.FaultKinds()))
	}
}

func TestConfig(t *testing.T) {
	out, err := runApp(t, "config", "--format", "json")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	var resp ConfigResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Source != "default" {
		t.Errorf("Source = %q", resp.Source)
	}
	wantSinks := strings.Join(sink.Names(sink.FromConfig(config.Default(), sink.Deps{Presenter: noPresenter{}})), ",")
	if resp.Sinks != wantSinks {
		t.Errorf("Sinks = %q, want %q", resp.Sinks, wantSinks)
	}

	path := filepath.Join(t.TempDir(), "ezcrash.yaml")
	yml := "show_dialog: false\nemit_log: true\noutput_path: crash.txt\nmax_frames: 8\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err = runApp(t, "config", "--format", "json", path)
	if err != nil {
		t.Fatalf("config %s: %v", path, err)
	}
	resp = ConfigResponse{}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Sinks != "file,log" {
		t.Errorf("Sinks = %q, want file,log", resp.Sinks)
	}
	if resp.MaxFrames != 8 || resp.ShowDialog {
		t.Errorf("resp = %+v", resp)
	}
}

func TestVersion(t *testing.T) {
	out, err := runApp(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var resp VersionResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Version != types.Version || resp.Commit != "test" || resp.RecordVersion != types.RecordVersion {
		t.Errorf("resp = %+v", resp)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := runApp(t, "codes", "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Errorf("error = %v", err)
	}
}
