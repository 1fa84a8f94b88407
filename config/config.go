// Package config holds the crash reporter configuration and its process-wide
// write-once store.
//
// The configuration is installed once at startup, before any fault can occur,
// and is read without locking by every fault afterward. When nothing was
// installed, Default applies.
package config

// DefaultOutputPath is the report file written when no configuration is installed.
const DefaultOutputPath = "crash"

// DefaultMaxFrames bounds the captured call stack.
const DefaultMaxFrames = 64

// Configuration selects what a crash report contains and where it goes.
type Configuration struct {
	// ShowDialog enables the modal dialog sink.
	ShowDialog bool `yaml:"show_dialog" json:"show_dialog"`
	// EmitLog enables the log sink (one error-level entry per fault).
	EmitLog bool `yaml:"emit_log" json:"emit_log"`
	// OutputPath enables the file sink at this path. Empty disables it.
	OutputPath string `yaml:"output_path" json:"output_path"`
	// IncludeStackTrace adds the call-stack section.
	IncludeStackTrace bool `yaml:"include_stack_trace" json:"include_stack_trace"`
	// IncludeThreadContext adds the register snapshot section.
	IncludeThreadContext bool `yaml:"include_thread_context" json:"include_thread_context"`
	// ArchiveDir enables the archive sink, which stores a structured record
	// of each fault under this directory. Empty disables it.
	ArchiveDir string `yaml:"archive_dir" json:"archive_dir,omitempty"`
	// MaxFrames bounds the stack section. Zero means DefaultMaxFrames.
	MaxFrames int `yaml:"max_frames" json:"max_frames,omitempty"`
}

// Default returns the configuration used when none was installed:
// every sink and section enabled, report file "crash", no archive.
func Default() Configuration {
	return Configuration{
		ShowDialog:           true,
		EmitLog:              true,
		OutputPath:           DefaultOutputPath,
		IncludeStackTrace:    true,
		IncludeThreadContext: true,
		MaxFrames:            DefaultMaxFrames,
	}
}

// FrameLimit returns the effective stack depth bound.
func (c Configuration) FrameLimit() int {
	if c.MaxFrames <= 0 {
		return DefaultMaxFrames
	}
	return c.MaxFrames
}
