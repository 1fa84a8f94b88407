package intercept

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Registration errors.
var (
	// ErrUnsupported is returned by Register on platforms without vectored
	// exception handling.
	ErrUnsupported = errors.New("vectored exception handling not supported on this platform")

	// ErrAlreadyRegistered is returned when a handler is already installed.
	ErrAlreadyRegistered = errors.New("exception handler already registered")

	// ErrNilHandler is returned by Register for a nil handler.
	ErrNilHandler = errors.New("nil exception handler")
)

// active is the handler the OS callback dispatches to.
var active atomic.Pointer[Handler]

// Registration is an installed OS exception handler.
type Registration struct {
	mu      sync.Mutex
	cookie  uintptr
	handler *Handler
}

// Register installs h as the process-wide vectored exception handler.
// Only one handler can be installed at a time.
func Register(h *Handler) (*Registration, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if !active.CompareAndSwap(nil, h) {
		h.Metrics.IncRegistrationFailure()
		return nil, ErrAlreadyRegistered
	}

	cookie, err := addHandler()
	if err != nil {
		active.CompareAndSwap(h, nil)
		h.Metrics.IncRegistrationFailure()
		return nil, fmt.Errorf("register exception handler: %w", err)
	}

	h.Metrics.IncRegistration()
	return &Registration{cookie: cookie, handler: h}, nil
}

// Unregister removes the handler from the OS. Calling it again is a no-op.
func (r *Registration) Unregister() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cookie == 0 {
		return nil
	}
	if err := removeHandler(r.cookie); err != nil {
		return fmt.Errorf("unregister exception handler: %w", err)
	}
	r.cookie = 0
	active.CompareAndSwap(r.handler, nil)
	return nil
}

// Active returns the installed handler, or nil.
func Active() *Handler {
	return active.Load()
}
