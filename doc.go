// Package ezcrash reports fatal faults of the current process.
//
// Call Init once at startup, before anything can fault:
//
//	if err := ezcrash.Init(config.Default()); err != nil &&
//		!errors.Is(err, ezcrash.ErrUnsupported) {
//		return err
//	}
//
// On Windows amd64, Init registers a vectored exception handler. When the
// process faults, the handler writes a plain-text crash report to the
// configured sinks (file, archive, log, dialog) and lets default fault
// handling continue. Guard does the same for Go runtime faults raised inside
// a function, on every platform.
package ezcrash
