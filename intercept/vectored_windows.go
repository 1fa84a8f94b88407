//go:build windows && amd64

package intercept

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/pithecene-io/ezcrash/report"
	"github.com/pithecene-io/ezcrash/types"
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procAddVectoredExceptionHandler    = modkernel32.NewProc("AddVectoredExceptionHandler")
	procRemoveVectoredExceptionHandler = modkernel32.NewProc("RemoveVectoredExceptionHandler")
	procRtlCaptureStackBackTrace       = modkernel32.NewProc("RtlCaptureStackBackTrace")
)

// exceptionRecord mirrors EXCEPTION_RECORD. Read-only.
type exceptionRecord struct {
	Code             uint32
	Flags            uint32
	Record           *exceptionRecord
	Address          uintptr
	NumberParameters uint32
	_                uint32
	Information      [15]uintptr
}

// threadContext mirrors the leading part of the amd64 CONTEXT, up to Rip.
// Read-only: the OS resumes from this memory.
type threadContext struct {
	P1Home, P2Home, P3Home, P4Home, P5Home, P6Home uint64

	ContextFlags uint32
	MxCsr        uint32

	SegCs, SegDs, SegEs, SegFs, SegGs, SegSs uint16
	EFlags                                   uint32

	Dr0, Dr1, Dr2, Dr3, Dr6, Dr7 uint64

	Rax, Rcx, Rdx, Rbx, Rsp, Rbp, Rsi, Rdi uint64
	R8, R9, R10, R11, R12, R13, R14, R15   uint64

	Rip uint64
}

// exceptionPointers mirrors EXCEPTION_POINTERS.
type exceptionPointers struct {
	Record  *exceptionRecord
	Context *threadContext
}

var (
	callbackOnce sync.Once
	callback     uintptr
)

func addHandler() (uintptr, error) {
	if err := procAddVectoredExceptionHandler.Find(); err != nil {
		return 0, err
	}
	callbackOnce.Do(func() {
		callback = windows.NewCallback(vectoredHandler)
	})
	// First=0 puts the handler at the end of the chain.
	cookie, _, err := procAddVectoredExceptionHandler.Call(0, callback)
	if cookie == 0 {
		return 0, err
	}
	return cookie, nil
}

func removeHandler(cookie uintptr) error {
	ret, _, err := procRemoveVectoredExceptionHandler.Call(cookie)
	if ret == 0 {
		return err
	}
	return nil
}

// vectoredHandler is the OS entry point.
func vectoredHandler(info *exceptionPointers) uintptr {
	h := active.Load()
	if h == nil || info == nil || info.Record == nil {
		return uintptr(types.DispositionContinueSearch)
	}

	rec, regs := decode(info)
	d := h.handle(rec, regs, nativeStack)
	return uintptr(d)
}

// decode copies the OS records into their bounded, immutable views.
func decode(info *exceptionPointers) (types.FaultRecord, *types.RegisterSnapshot) {
	er := info.Record
	rec := types.FaultRecord{
		Code:    er.Code,
		Address: uint64(er.Address),
		NumInfo: int(min(er.NumberParameters, types.MaxFaultInfo)),
	}
	for i := range rec.NumInfo {
		rec.Info[i] = uint64(er.Information[i])
	}

	c := info.Context
	if c == nil {
		return rec, nil
	}
	return rec, &types.RegisterSnapshot{
		Rax: c.Rax, Rbx: c.Rbx, Rcx: c.Rcx, Rdx: c.Rdx,
		Rsi: c.Rsi, Rdi: c.Rdi, Rbp: c.Rbp, Rsp: c.Rsp,
		R8: c.R8, R9: c.R9, R10: c.R10, R11: c.R11,
		R12: c.R12, R13: c.R13, R14: c.R14, R15: c.R15,
		Rip: c.Rip,
	}
}

// nativeStack walks the faulting thread's native stack.
func nativeStack(maxFrames int) report.Stack {
	if maxFrames <= 0 {
		return nil
	}
	pcs := make([]uintptr, maxFrames)
	n, _, _ := procRtlCaptureStackBackTrace.Call(
		0,
		uintptr(maxFrames),
		uintptr(unsafe.Pointer(&pcs[0])),
		0,
	)
	return report.ResolvePCs(pcs[:n], maxFrames)
}
