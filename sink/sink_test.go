package sink

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pithecene-io/ezcrash/config"
	"github.com/pithecene-io/ezcrash/iox"
	"github.com/pithecene-io/ezcrash/report"
	"github.com/pithecene-io/ezcrash/types"
)

func testReport() *report.Report {
	rec := types.NewFaultRecord(0xC0000005, 0x00007FF600001000, 1, 0, 0)
	return report.Build(rec, &types.RegisterSnapshot{Rip: 0x00007FF600001000}, nil, config.Default())
}

func TestDispatch_Order(t *testing.T) {
	journal := &Journal{}
	sinks := []Sink{
		&StubSink{SinkName: "a", Journal: journal},
		&StubSink{SinkName: "b", Journal: journal},
		&StubSink{SinkName: "c", Journal: journal},
	}

	results := Dispatch(t.Context(), sinks, testReport())

	if got := journal.Order(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("delivery order = %v", got)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		if !r.OK() {
			t.Errorf("result %d failed: %v", i, r.Err)
		}
	}
}

func TestDispatch_FailureIsolation(t *testing.T) {
	journal := &Journal{}
	failing := &StubSink{SinkName: "file", ErrorOnDeliver: errors.New("disk gone"), Journal: journal}
	panicking := &StubSink{SinkName: "archive", PanicOnDeliver: "boom", Journal: journal}
	logSink := &StubSink{SinkName: "log", Journal: journal}
	dialog := &StubSink{SinkName: "dialog", Journal: journal}

	results := Dispatch(t.Context(), []Sink{failing, panicking, logSink, dialog}, testReport())

	if got := journal.Order(); !reflect.DeepEqual(got, []string{"file", "archive", "log", "dialog"}) {
		t.Errorf("delivery order = %v", got)
	}
	if logSink.Count() != 1 || dialog.Count() != 1 {
		t.Error("sinks after a failure were not delivered to")
	}

	failed := Failed(results)
	if len(failed) != 2 {
		t.Fatalf("got %d failures, want 2", len(failed))
	}
	if failed[0].Sink != "file" || failed[0].Err.Error() != "disk gone" {
		t.Errorf("failure 0 = %+v", failed[0])
	}
	var pe *iox.PanicError
	if failed[1].Sink != "archive" || !errors.As(failed[1].Err, &pe) {
		t.Errorf("failure 1 = %+v, want *iox.PanicError", failed[1])
	}
}

func TestDispatch_NoSinks(t *testing.T) {
	if got := Dispatch(t.Context(), nil, testReport()); len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
}

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Configuration
		want []string
	}{
		{"default", config.Default(), []string{NameFile, NameLog, NameDialog}},
		{"with archive", func() config.Configuration {
			c := config.Default()
			c.ArchiveDir = "/tmp/crashes"
			return c
		}(), []string{NameFile, NameArchive, NameLog, NameDialog}},
		{"file disabled", config.Configuration{EmitLog: true, ShowDialog: true}, []string{NameLog, NameDialog}},
		{"nothing", config.Configuration{}, []string{}},
		{"file only", config.Configuration{OutputPath: "crash.txt"}, []string{NameFile}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Names(FromConfig(tt.cfg, Deps{Presenter: &StubPresenter{}}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromConfig = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFile_Deliver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crash")
	if err := os.WriteFile(path, []byte(strings.Repeat("stale content\n", 100)), 0o644); err != nil {
		t.Fatal(err)
	}

	r := testReport()
	if err := NewFile(path).Deliver(t.Context(), r); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != r.String() {
		t.Errorf("file content mismatch\ngot:\n%s\nwant:\n%s", data, r.String())
	}
}

func TestFile_DeliverUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "crash")

	err := NewFile(path).Deliver(t.Context(), testReport())
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist in chain", err)
	}
}

func TestFileFailureDoesNotStopDialog(t *testing.T) {
	presenter := &StubPresenter{}
	cfg := config.Configuration{
		OutputPath: filepath.Join(t.TempDir(), "missing-dir", "crash"),
		ShowDialog: true,
	}

	results := Dispatch(t.Context(), FromConfig(cfg, Deps{Presenter: presenter}), testReport())

	if presenter.Shown() != 1 {
		t.Errorf("dialog shown %d times, want 1", presenter.Shown())
	}
	if len(results) != 2 || results[0].OK() || !results[1].OK() {
		t.Errorf("results = %+v", results)
	}
}

func TestDialog_Deliver(t *testing.T) {
	presenter := &StubPresenter{}
	r := testReport()

	if err := NewDialog(presenter).Deliver(t.Context(), r); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}
	if len(presenter.Titles) != 1 || presenter.Titles[0] != "Crash" {
		t.Errorf("Titles = %v", presenter.Titles)
	}
	if presenter.Texts[0] != r.String() {
		t.Error("dialog text differs from report")
	}
}

func TestDialog_PresenterError(t *testing.T) {
	want := errors.New("no desktop")
	err := NewDialog(&StubPresenter{ErrorOnShow: want}).Deliver(t.Context(), testReport())
	if !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
}
