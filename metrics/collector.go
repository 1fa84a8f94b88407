// Package metrics counts crash-handling outcomes for the life of the process.
//
// The Collector is a leaf package with no internal dependencies. Sink
// outcomes are keyed by sink name so that new sinks need no new counters.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all counters.
// Safe to read concurrently after creation.
type Snapshot struct {
	// Fault path
	FaultsIntercepted  int64 `json:"faults_intercepted"`
	FaultsUnclassified int64 `json:"faults_unclassified"`
	ReportsBuilt       int64 `json:"reports_built"`
	HandlerPanics      int64 `json:"handler_panics"`

	// Sinks
	SinkDeliveries map[string]int64 `json:"sink_deliveries"`
	SinkFailures   map[string]int64 `json:"sink_failures"`

	// Registration
	Registrations        int64 `json:"registrations"`
	RegistrationFailures int64 `json:"registration_failures"`
}

// Collector accumulates counters.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver safe,
// and the zero value is ready to use.
type Collector struct {
	mu sync.Mutex

	faultsIntercepted  int64
	faultsUnclassified int64
	reportsBuilt       int64
	handlerPanics      int64

	sinkDeliveries map[string]int64
	sinkFailures   map[string]int64

	registrations        int64
	registrationFailures int64
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		sinkDeliveries: make(map[string]int64),
		sinkFailures:   make(map[string]int64),
	}
}

var global = NewCollector()

// Global returns the process-wide collector used by the default handler.
func Global() *Collector {
	return global
}

// --- Fault path ---

// IncFaultIntercepted records a callback invocation.
func (c *Collector) IncFaultIntercepted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.faultsIntercepted++
	c.mu.Unlock()
}

// IncFaultUnclassified records a fault code outside the classification table.
func (c *Collector) IncFaultUnclassified() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.faultsUnclassified++
	c.mu.Unlock()
}

// IncReportBuilt records a finished report.
func (c *Collector) IncReportBuilt() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.reportsBuilt++
	c.mu.Unlock()
}

// IncHandlerPanic records a panic recovered inside the callback itself.
func (c *Collector) IncHandlerPanic() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.handlerPanics++
	c.mu.Unlock()
}

// --- Sinks ---

// IncSinkDelivery records a successful delivery to the named sink.
func (c *Collector) IncSinkDelivery(sink string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	if c.sinkDeliveries == nil {
		c.sinkDeliveries = make(map[string]int64)
	}
	c.sinkDeliveries[sink]++
	c.mu.Unlock()
}

// IncSinkFailure records a failed delivery to the named sink.
func (c *Collector) IncSinkFailure(sink string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	if c.sinkFailures == nil {
		c.sinkFailures = make(map[string]int64)
	}
	c.sinkFailures[sink]++
	c.mu.Unlock()
}

// --- Registration ---

// IncRegistration records a successful OS registration.
func (c *Collector) IncRegistration() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.registrations++
	c.mu.Unlock()
}

// IncRegistrationFailure records a failed OS registration.
func (c *Collector) IncRegistrationFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.registrationFailures++
	c.mu.Unlock()
}

// --- Snapshot ---

// Snapshot returns an immutable point-in-time view of all counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		FaultsIntercepted:  c.faultsIntercepted,
		FaultsUnclassified: c.faultsUnclassified,
		ReportsBuilt:       c.reportsBuilt,
		HandlerPanics:      c.handlerPanics,

		SinkDeliveries: copyCounts(c.sinkDeliveries),
		SinkFailures:   copyCounts(c.sinkFailures),

		Registrations:        c.registrations,
		RegistrationFailures: c.registrationFailures,
	}
}

func copyCounts(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
