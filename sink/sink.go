// Package sink delivers finished crash reports to their destinations.
//
// Sinks run synchronously on the faulting thread, one after another, in the
// order FromConfig returns them. A failing sink never stops the ones after it:
// Dispatch records each outcome and moves on.
package sink

import (
	"context"

	"github.com/pithecene-io/ezcrash/iox"
	"github.com/pithecene-io/ezcrash/report"
)

// Sink names, as reported in Result and metrics.
const (
	NameFile    = "file"
	NameArchive = "archive"
	NameLog     = "log"
	NameDialog  = "dialog"
)

// Sink is one destination for a crash report.
type Sink interface {
	// Name identifies the sink in results and metrics.
	Name() string

	// Deliver emits the report. Implementations must not retain r.
	Deliver(ctx context.Context, r *report.Report) error
}

// Result is the outcome of delivering a report to one sink.
type Result struct {
	Sink string
	Err  error
}

// OK reports whether the delivery succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Dispatch delivers r to every sink in order.
// Errors and panics are captured per sink; the slice has one Result per sink.
func Dispatch(ctx context.Context, sinks []Sink, r *report.Report) []Result {
	results := make([]Result, 0, len(sinks))
	for _, s := range sinks {
		err := iox.Guard(func() error {
			return s.Deliver(ctx, r)
		})
		results = append(results, Result{Sink: s.Name(), Err: err})
	}
	return results
}

// Failed returns the results whose delivery failed.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}
