package sink

import (
	"context"
	"fmt"
	"os"

	"github.com/pithecene-io/ezcrash/report"
)

// File writes the report text to a fixed path, replacing any previous content.
type File struct {
	Path string
}

// Verify File implements Sink.
var _ Sink = (*File)(nil)

// NewFile creates a file sink for path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Name returns "file".
func (f *File) Name() string { return NameFile }

// Deliver truncates Path and writes the full report text.
func (f *File) Deliver(_ context.Context, r *report.Report) error {
	if err := os.WriteFile(f.Path, r.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write crash report %s: %w", f.Path, err)
	}
	return nil
}
