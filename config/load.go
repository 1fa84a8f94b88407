package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Configuration with optional fields so that keys left
// out of the YAML file keep their default values.
type fileConfig struct {
	ShowDialog           *bool   `yaml:"show_dialog"`
	EmitLog              *bool   `yaml:"emit_log"`
	OutputPath           *string `yaml:"output_path"`
	IncludeStackTrace    *bool   `yaml:"include_stack_trace"`
	IncludeThreadContext *bool   `yaml:"include_thread_context"`
	ArchiveDir           *string `yaml:"archive_dir"`
	MaxFrames            *int    `yaml:"max_frames"`
}

// Load reads a YAML config file, expands environment variables, and
// overlays the values onto Default.
func Load(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config bytes, expanding environment variables first.
func Parse(data []byte) (*Configuration, error) {
	expanded := ExpandEnv(string(data))

	var fc fileConfig
	if err := yaml.Unmarshal([]byte(expanded), &fc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if fc.MaxFrames != nil && *fc.MaxFrames < 0 {
		return nil, fmt.Errorf("max_frames must be >= 0, got %d", *fc.MaxFrames)
	}

	cfg := Default()
	if fc.ShowDialog != nil {
		cfg.ShowDialog = *fc.ShowDialog
	}
	if fc.EmitLog != nil {
		cfg.EmitLog = *fc.EmitLog
	}
	if fc.OutputPath != nil {
		cfg.OutputPath = *fc.OutputPath
	}
	if fc.IncludeStackTrace != nil {
		cfg.IncludeStackTrace = *fc.IncludeStackTrace
	}
	if fc.IncludeThreadContext != nil {
		cfg.IncludeThreadContext = *fc.IncludeThreadContext
	}
	if fc.ArchiveDir != nil {
		cfg.ArchiveDir = *fc.ArchiveDir
	}
	if fc.MaxFrames != nil {
		cfg.MaxFrames = *fc.MaxFrames
	}

	return &cfg, nil
}
