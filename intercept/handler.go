// Package intercept is the fault-time half of the crash reporter.
//
// A Handler turns one decoded fault into a report and hands it to the sinks.
// Register installs a Handler as a process-wide vectored exception handler
// (Windows amd64 only); Guard routes Go runtime faults raised inside a
// function through the same Handler.
//
// Everything on the fault path is best-effort. Handle never returns an error
// and never panics: a fault inside the handler is unrecoverable.
package intercept

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pithecene-io/ezcrash/config"
	"github.com/pithecene-io/ezcrash/log"
	"github.com/pithecene-io/ezcrash/metrics"
	"github.com/pithecene-io/ezcrash/report"
	"github.com/pithecene-io/ezcrash/sink"
	"github.com/pithecene-io/ezcrash/types"
)

// StackCapturer returns at most maxFrames frames of the faulting context.
type StackCapturer func(maxFrames int) report.Stack

// Handler holds the collaborators of the interception callback.
// Fields must not change once the handler is registered.
// Nil fields fall back to the process-wide defaults.
type Handler struct {
	// Store supplies the configuration read at every fault.
	Store *config.Store
	// Logger backs the log sink.
	Logger *log.Logger
	// Metrics counts outcomes.
	Metrics *metrics.Collector
	// Presenter backs the dialog sink.
	Presenter sink.Presenter
	// Sinks builds the ordered sink list for a configuration.
	Sinks func(cfg config.Configuration) []sink.Sink
	// CaptureStack captures the stack when the source of the fault
	// does not supply one.
	CaptureStack StackCapturer
	// Now stamps the report time.
	Now func() time.Time
	// NewID generates incident ids.
	NewID func() string
}

// NewHandler returns a handler wired to the process-wide configuration
// store, metrics collector and a stderr logger.
func NewHandler() *Handler {
	return &Handler{
		Store:   config.Global(),
		Logger:  log.NewProcessLogger(),
		Metrics: metrics.Global(),
	}
}

// Handle runs the callback for one fault and returns the disposition for
// the OS. Unknown codes resume execution without any further work; known
// codes are reported and then always continue the search.
// regs may be nil when no register snapshot is available.
func (h *Handler) Handle(rec types.FaultRecord, regs *types.RegisterSnapshot) types.Disposition {
	return h.handle(rec, regs, h.CaptureStack)
}

func (h *Handler) handle(rec types.FaultRecord, regs *types.RegisterSnapshot, capture StackCapturer) (d types.Disposition) {
	h.Metrics.IncFaultIntercepted()

	if _, ok := types.Classify(rec.Code); !ok {
		h.Metrics.IncFaultUnclassified()
		return types.DispositionContinueExecution
	}

	defer func() {
		if r := recover(); r != nil {
			h.Metrics.IncHandlerPanic()
			d = types.DispositionContinueSearch
		}
	}()

	h.report(rec, regs, capture)
	return types.DispositionContinueSearch
}

func (h *Handler) report(rec types.FaultRecord, regs *types.RegisterSnapshot, capture StackCapturer) {
	cfg := h.store().Current()

	var stack report.Stack
	if cfg.IncludeStackTrace {
		if capture == nil {
			capture = defaultCapture
		}
		stack = capture(cfg.FrameLimit())
	}

	r := report.Build(rec, regs, stack, cfg)
	h.stamp(&r.Record)
	h.Metrics.IncReportBuilt()

	for _, res := range sink.Dispatch(context.Background(), h.sinks(cfg), r) {
		if res.OK() {
			h.Metrics.IncSinkDelivery(res.Sink)
		} else {
			h.Metrics.IncSinkFailure(res.Sink)
		}
	}
}

func (h *Handler) stamp(rec *report.Record) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	newID := uuid.NewString
	if h.NewID != nil {
		newID = h.NewID
	}
	rec.IncidentID = newID()
	rec.Timestamp = now().UTC().Format(time.RFC3339Nano)
	rec.PID = os.Getpid()
}

func (h *Handler) store() *config.Store {
	if h.Store != nil {
		return h.Store
	}
	return config.Global()
}

func (h *Handler) sinks(cfg config.Configuration) []sink.Sink {
	if h.Sinks != nil {
		return h.Sinks(cfg)
	}
	return sink.FromConfig(cfg, sink.Deps{Logger: h.Logger, Presenter: h.Presenter})
}

// defaultCapture starts at the caller of Handle.
func defaultCapture(maxFrames int) report.Stack {
	return report.CaptureStack(4, maxFrames)
}
