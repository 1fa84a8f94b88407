//nolint:revive // types is a common Go package naming convention
package types

// MaxFaultInfo is the number of auxiliary words carried by a FaultRecord.
// The OS record may hold more; only the first MaxFaultInfo are kept.
const MaxFaultInfo = 3

// Access types encoded in Info[0] of a memory-access fault.
const (
	AccessRead    uint64 = 0
	AccessWrite   uint64 = 1
	AccessExecute uint64 = 8
	// AccessUnknown is used when the fault source cannot tell the intent.
	AccessUnknown uint64 = ^uint64(0)
)

// FaultRecord describes a single fault as delivered by the OS.
// It is built once at callback entry and never modified afterward.
type FaultRecord struct {
	// Code is the raw exception code (see Classify).
	Code uint32 `msgpack:"code"`
	// Address is the address of the faulting instruction.
	Address uint64 `msgpack:"address"`
	// Info holds the fault-specific auxiliary words. For memory-access
	// faults, Info[0] is the access type and Info[1] the target address.
	Info [MaxFaultInfo]uint64 `msgpack:"info"`
	// NumInfo is how many entries of Info were supplied by the OS.
	NumInfo int `msgpack:"num_info"`
}

// NewFaultRecord builds a record, keeping at most MaxFaultInfo words of info.
func NewFaultRecord(code uint32, address uint64, info ...uint64) FaultRecord {
	rec := FaultRecord{Code: code, Address: address}
	rec.NumInfo = copy(rec.Info[:], info)
	return rec
}

// RegisterSnapshot is a copy of the general-purpose registers of the
// faulting thread. Handlers receive it by pointer but must treat it as
// read-only: writing back into the OS context changes how the fault resumes.
type RegisterSnapshot struct {
	Rax uint64 `msgpack:"rax"`
	Rbx uint64 `msgpack:"rbx"`
	Rcx uint64 `msgpack:"rcx"`
	Rdx uint64 `msgpack:"rdx"`
	Rsi uint64 `msgpack:"rsi"`
	Rdi uint64 `msgpack:"rdi"`
	Rbp uint64 `msgpack:"rbp"`
	Rsp uint64 `msgpack:"rsp"`
	R8  uint64 `msgpack:"r8"`
	R9  uint64 `msgpack:"r9"`
	R10 uint64 `msgpack:"r10"`
	R11 uint64 `msgpack:"r11"`
	R12 uint64 `msgpack:"r12"`
	R13 uint64 `msgpack:"r13"`
	R14 uint64 `msgpack:"r14"`
	R15 uint64 `msgpack:"r15"`
	Rip uint64 `msgpack:"rip"`
}

// Disposition is the value an interception callback hands back to the OS.
type Disposition int32

// Dispositions understood by the vectored exception dispatcher.
const (
	// DispositionContinueSearch defers to the next handler and, eventually,
	// to default fault handling.
	DispositionContinueSearch Disposition = 0
	// DispositionContinueExecution resumes the faulting thread as if the
	// fault had been handled.
	DispositionContinueExecution Disposition = -1
)

// String returns a readable name for the disposition.
func (d Disposition) String() string {
	switch d {
	case DispositionContinueSearch:
		return "continue_search"
	case DispositionContinueExecution:
		return "continue_execution"
	default:
		return "unknown"
	}
}
