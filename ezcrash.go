package ezcrash

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pithecene-io/ezcrash/config"
	"github.com/pithecene-io/ezcrash/intercept"
)

// Errors returned by Init, re-exported for errors.Is.
var (
	ErrAlreadyInitialized = config.ErrAlreadyInitialized
	ErrUnsupported        = intercept.ErrUnsupported
)

var (
	handlerOnce sync.Once
	handler     *intercept.Handler

	registerOnce sync.Once
	registerErr  error
)

func defaultHandler() *intercept.Handler {
	handlerOnce.Do(func() {
		handler = intercept.NewHandler()
	})
	return handler
}

// Init installs cfg as the process-wide configuration and registers the
// fault handler with the OS. Both happen at most once per process.
//
// A second call keeps the first configuration and reports
// ErrAlreadyInitialized. On platforms without vectored exception handling
// the configuration still applies to Guard and the error wraps ErrUnsupported.
func Init(cfg config.Configuration) error {
	initErr := config.Initialize(cfg)
	registerOnce.Do(func() {
		_, registerErr = intercept.Register(defaultHandler())
	})
	return errors.Join(initErr, registerErr)
}

// InitFile loads a YAML configuration and calls Init with it.
func InitFile(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load crash configuration: %w", err)
	}
	return Init(*cfg)
}

// Current returns the configuration in effect.
func Current() config.Configuration {
	return config.Current()
}

// Guard runs fn and reports a Go runtime fault raised inside it, then lets
// the panic continue. See intercept.Handler.Guard.
func Guard(fn func()) {
	defaultHandler().Guard(fn)
}
