package types

// Version is the canonical project version.
// The library, the CLI, and the structured record format share this version.
const Version = "0.3.0"

// RecordVersion is the version of the structured crash record format
// written by the archive sink. Bumped only when the record shape changes.
const RecordVersion = 1

// ProcessMeta identifies the process a crash report belongs to.
type ProcessMeta struct {
	// PID is the OS process id.
	PID int
	// Executable is the path of the running binary, if known.
	Executable string
}
