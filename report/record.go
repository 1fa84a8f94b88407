package report

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pithecene-io/ezcrash/types"
)

// Record is the structured form of a crash report.
// It is what the archive sink persists and what the CLI inspects.
type Record struct {
	// Version is the record format version (types.RecordVersion).
	Version int `msgpack:"version" json:"version"`
	// IncidentID identifies one fault occurrence. Set by the handler, not by Build.
	IncidentID string `msgpack:"incident_id,omitempty" json:"incident_id,omitempty"`
	// Timestamp is the fault time in RFC 3339 UTC. Set by the handler.
	Timestamp string `msgpack:"timestamp,omitempty" json:"timestamp,omitempty"`
	// PID is the process id. Set by the handler.
	PID int `msgpack:"pid,omitempty" json:"pid,omitempty"`
	// Kind is the canonical fault kind name.
	Kind string `msgpack:"kind" json:"kind"`
	// Fault is the raw fault record.
	Fault types.FaultRecord `msgpack:"fault" json:"fault"`
	// Access is set for memory-access faults.
	Access *Access `msgpack:"access,omitempty" json:"access,omitempty"`
	// Registers is set when the register section was included.
	Registers *types.RegisterSnapshot `msgpack:"registers,omitempty" json:"registers,omitempty"`
	// Frames is the captured stack when the stack section was included.
	Frames Stack `msgpack:"frames,omitempty" json:"frames,omitempty"`
	// Text is the full human-readable report.
	Text string `msgpack:"text" json:"-"`
}

// EncodeRecord serializes a record with msgpack.
func EncodeRecord(rec *Record) ([]byte, error) {
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode crash record: %w", err)
	}
	return data, nil
}

// DecodeRecord parses a msgpack-encoded record.
func DecodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, &FormatError{Kind: ErrMalformedRecord, Err: err}
	}
	if rec.Version < 1 || rec.Version > types.RecordVersion {
		return nil, &FormatError{Kind: ErrUnsupportedVersion, Err: fmt.Errorf("record version %d", rec.Version)}
	}
	return &rec, nil
}
