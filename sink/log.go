package sink

import (
	"context"
	"fmt"

	"github.com/pithecene-io/ezcrash/iox"
	"github.com/pithecene-io/ezcrash/log"
	"github.com/pithecene-io/ezcrash/report"
)

// Log emits the report as a single error-level log entry.
type Log struct {
	logger *log.Logger
}

// Verify Log implements Sink.
var _ Sink = (*Log)(nil)

// NewLog creates a log sink. A nil logger falls back to a process logger on stderr.
func NewLog(logger *log.Logger) *Log {
	if logger == nil {
		logger = log.NewProcessLogger()
	}
	return &Log{logger: logger}
}

// Name returns "log".
func (l *Log) Name() string { return NameLog }

// Deliver logs the full report text as the message, with the decoded fault
// as structured fields.
func (l *Log) Deliver(_ context.Context, r *report.Report) error {
	rec := r.Record
	fields := map[string]any{
		"kind":    rec.Kind,
		"code":    fmt.Sprintf("0x%08X", rec.Fault.Code),
		"address": fmt.Sprintf("0x%016X", rec.Fault.Address),
	}
	if rec.IncidentID != "" {
		fields["incident_id"] = rec.IncidentID
	}
	l.logger.Error(r.String(), fields)
	// Sync fails on terminals and pipes; the entry is already written.
	iox.DiscardErr(l.logger.Sync)
	return nil
}
