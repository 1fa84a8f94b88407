// Package reader provides the read side of the ezcrash CLI.
//
// It loads saved crash reports (plain text written by the file sink, or
// msgpack records written by the archive sink), lists archives and answers
// classification queries. All operations are read-only.
package reader

import "github.com/pithecene-io/ezcrash/report"

// Format identifies how a crash file was stored.
type Format string

// Crash file formats.
const (
	FormatText   Format = "text"
	FormatRecord Format = "msgpack"
)

// InspectCrashResponse summarizes one crash report.
type InspectCrashResponse struct {
	Source     string `json:"source"`
	Format     Format `json:"format"`
	IncidentID string `json:"incident_id,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
	PID        int    `json:"pid,omitempty"`
	Kind       string `json:"kind"`
	Code       string `json:"code"`
	Address    string `json:"address"`
	Access     string `json:"access,omitempty"`
	Registers  bool   `json:"registers"`
	Frames     int    `json:"frames"`

	// Record is the full parsed report.
	Record *report.Record `json:"-" yaml:"-"`
}

// Text returns the report text as it was written.
func (r *InspectCrashResponse) Text() string {
	return r.Record.Text
}

// KindInfo describes one entry of the fault classification table.
type KindInfo struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	MemoryAccess bool   `json:"memory_access"`
}

// ArchiveEntry is one record found in an archive directory.
type ArchiveEntry struct {
	Path       string `json:"path"`
	IncidentID string `json:"incident_id"`
	Timestamp  string `json:"timestamp"`
	Kind       string `json:"kind"`
	Address    string `json:"address"`
}
