package config

import (
	"errors"
	"sync/atomic"
)

// ErrAlreadyInitialized is returned by Initialize when a configuration is
// already installed. The installed configuration is left untouched; callers
// that only care about best-effort setup may ignore it.
var ErrAlreadyInitialized = errors.New("crash configuration already initialized")

// Store is a write-once configuration container.
// The zero value is ready to use and reports Default until initialized.
type Store struct {
	cfg atomic.Pointer[Configuration]
}

// Initialize installs cfg if no configuration is installed yet.
// Only the first call wins; later calls return ErrAlreadyInitialized.
func (s *Store) Initialize(cfg Configuration) error {
	c := cfg
	if !s.cfg.CompareAndSwap(nil, &c) {
		return ErrAlreadyInitialized
	}
	return nil
}

// Current returns the installed configuration, or Default if none was installed.
func (s *Store) Current() Configuration {
	if c := s.cfg.Load(); c != nil {
		return *c
	}
	return Default()
}

// Initialized reports whether a configuration has been installed.
func (s *Store) Initialized() bool {
	return s.cfg.Load() != nil
}

var global Store

// Global returns the process-wide store.
func Global() *Store {
	return &global
}

// Initialize installs cfg into the process-wide store.
func Initialize(cfg Configuration) error {
	return global.Initialize(cfg)
}

// Current returns the process-wide configuration.
func Current() Configuration {
	return global.Current()
}
