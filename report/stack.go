package report

import (
	"runtime"
)

// Frame is a single entry of a captured call stack.
type Frame struct {
	PC       uint64 `msgpack:"pc" json:"pc"`
	Function string `msgpack:"function,omitempty" json:"function,omitempty"`
	File     string `msgpack:"file,omitempty" json:"file,omitempty"`
	Line     int    `msgpack:"line,omitempty" json:"line,omitempty"`
}

// Stack is a slice of Frames from the innermost call outward.
type Stack []Frame

// CaptureStack records the calling goroutine's stack, skipping skip frames
// above the caller of CaptureStack and keeping at most maxFrames entries.
func CaptureStack(skip, maxFrames int) Stack {
	if maxFrames <= 0 {
		return nil
	}
	// +2 skips runtime.Callers and CaptureStack itself.
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(skip+2, pcs)
	return ResolvePCs(pcs[:n], maxFrames)
}

// ResolvePCs turns return addresses into frames. Addresses the Go runtime
// cannot resolve (foreign code) keep their PC with empty names.
// Inlined calls expand into separate frames; the result holds at most
// maxFrames entries.
func ResolvePCs(pcs []uintptr, maxFrames int) Stack {
	if len(pcs) == 0 || maxFrames <= 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs)
	out := make(Stack, 0, len(pcs))
	for len(out) < maxFrames {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       uint64(fr.PC),
			Function: fr.Function,
			File:     fr.File,
			Line:     fr.Line,
		})
		if !more {
			break
		}
	}
	return out
}
