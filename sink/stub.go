package sink

import (
	"context"
	"sync"

	"github.com/pithecene-io/ezcrash/report"
)

// StubSink is a test sink that records deliveries without emitting them.
type StubSink struct {
	mu sync.Mutex

	// SinkName is returned by Name. Defaults to "stub".
	SinkName string
	// Delivered stores the text of every delivered report.
	Delivered []string
	// Reports stores every delivered report.
	Reports []*report.Report

	// ErrorOnDeliver, if non-nil, is returned by Deliver.
	ErrorOnDeliver error
	// PanicOnDeliver, if non-nil, is panicked with by Deliver.
	PanicOnDeliver any
	// Journal, if set, receives the sink name on every delivery attempt.
	Journal *Journal
}

// Verify StubSink implements Sink.
var _ Sink = (*StubSink)(nil)

// NewStubSink creates a stub sink with the given name.
func NewStubSink(name string) *StubSink {
	return &StubSink{SinkName: name}
}

// Name returns SinkName, or "stub".
func (s *StubSink) Name() string {
	if s.SinkName == "" {
		return "stub"
	}
	return s.SinkName
}

// Deliver records the report.
func (s *StubSink) Deliver(_ context.Context, r *report.Report) error {
	s.Journal.Record(s.Name())

	if s.PanicOnDeliver != nil {
		panic(s.PanicOnDeliver)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ErrorOnDeliver != nil {
		return s.ErrorOnDeliver
	}
	s.Delivered = append(s.Delivered, r.String())
	s.Reports = append(s.Reports, r)
	return nil
}

// Count returns the number of successful deliveries.
func (s *StubSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Delivered)
}

// Journal records the order of delivery attempts across sinks.
// A nil Journal ignores records.
type Journal struct {
	mu    sync.Mutex
	order []string
}

// Record appends name to the journal.
func (j *Journal) Record(name string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.order = append(j.order, name)
}

// Order returns a copy of the recorded names.
func (j *Journal) Order() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.order...)
}

// StubPresenter records dialogs instead of showing them.
type StubPresenter struct {
	mu sync.Mutex

	// Titles and Texts hold every Show call in order.
	Titles []string
	Texts  []string

	// ErrorOnShow, if non-nil, is returned by Show.
	ErrorOnShow error
}

// Verify StubPresenter implements Presenter.
var _ Presenter = (*StubPresenter)(nil)

// Show records the dialog.
func (p *StubPresenter) Show(title, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ErrorOnShow != nil {
		return p.ErrorOnShow
	}
	p.Titles = append(p.Titles, title)
	p.Texts = append(p.Texts, text)
	return nil
}

// Shown returns the number of dialogs shown.
func (p *StubPresenter) Shown() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Texts)
}
