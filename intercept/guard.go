package intercept

import (
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/pithecene-io/ezcrash/report"
	"github.com/pithecene-io/ezcrash/types"
)

// Guard runs fn with panic-on-fault enabled for the calling goroutine.
// A Go runtime fault raised inside fn (nil or wild pointer dereference,
// integer divide by zero, index or slice bounds, overflow) is reported
// through h like an OS fault, and then the panic continues unchanged.
// Panics that are not runtime faults pass through without a report.
func (h *Handler) Guard(fn func()) {
	prev := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(prev)

	defer func() {
		v := recover()
		if v == nil {
			return
		}
		maxFrames := h.store().Current().FrameLimit()
		stack := panicStack(maxFrames)
		var pc uint64
		if len(stack) > 0 {
			pc = stack[0].PC
		}
		if rec, ok := faultFromPanic(v, pc); ok {
			h.handle(rec, nil, func(int) report.Stack { return stack })
		}
		panic(v)
	}()

	fn()
}

// faultFromPanic maps a recovered runtime error to a fault record.
func faultFromPanic(v any, pc uint64) (types.FaultRecord, bool) {
	re, ok := v.(runtime.Error)
	if !ok {
		return types.FaultRecord{}, false
	}

	if a, ok := v.(interface{ Addr() uintptr }); ok {
		return types.NewFaultRecord(types.FaultAccessViolation.Code(), pc, types.AccessUnknown, uint64(a.Addr())), true
	}

	msg := re.Error()
	switch {
	case strings.Contains(msg, "invalid memory address or nil pointer dereference"):
		return types.NewFaultRecord(types.FaultAccessViolation.Code(), pc, types.AccessUnknown, 0), true
	case strings.Contains(msg, "integer divide by zero"):
		return types.NewFaultRecord(types.FaultIntDivideByZero.Code(), pc), true
	case strings.Contains(msg, "index out of range"), strings.Contains(msg, "slice bounds out of range"):
		return types.NewFaultRecord(types.FaultArrayBoundsExceeded.Code(), pc), true
	case strings.Contains(msg, "integer overflow"):
		return types.NewFaultRecord(types.FaultIntOverflow.Code(), pc), true
	}
	return types.FaultRecord{}, false
}

// panicStack captures the panicking goroutine's stack from inside a deferred
// recover, starting at the frame that raised the panic.
func panicStack(maxFrames int) report.Stack {
	// Extra room for the deferred call and the runtime panic frames.
	all := report.CaptureStack(1, maxFrames+16)

	start := 0
	for i, fr := range all {
		if strings.HasPrefix(fr.Function, "runtime.") {
			start = i + 1
		} else if start > 0 {
			break
		}
	}
	all = all[start:]
	if len(all) > maxFrames {
		all = all[:maxFrames]
	}
	return all
}
