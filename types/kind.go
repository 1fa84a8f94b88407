//nolint:revive // types is a common Go package naming convention
package types

import (
	"fmt"
	"sort"
)

// FaultKind is a named fault category tagged with its canonical exception code.
// The set is closed: only the constants below are valid kinds.
type FaultKind uint32

// Fault kinds, valued by their NTSTATUS exception code.
const (
	FaultAccessViolation            FaultKind = 0xC0000005
	FaultArrayBoundsExceeded        FaultKind = 0xC000008C
	FaultBreakpoint                 FaultKind = 0x80000003
	FaultDatatypeMisalignment       FaultKind = 0x80000002
	FaultFltDenormalOperand         FaultKind = 0xC000008D
	FaultFltDivideByZero            FaultKind = 0xC000008E
	FaultFltInexactResult           FaultKind = 0xC000008F
	FaultFltInvalidOperation        FaultKind = 0xC0000090
	FaultFltOverflow                FaultKind = 0xC0000091
	FaultFltStackCheck              FaultKind = 0xC0000092
	FaultFltUnderflow               FaultKind = 0xC0000093
	FaultGuardPage                  FaultKind = 0x80000001
	FaultIllegalInstruction         FaultKind = 0xC000001D
	FaultIntDivideByZero            FaultKind = 0xC0000094
	FaultIntOverflow                FaultKind = 0xC0000095
	FaultInvalidDisposition         FaultKind = 0xC0000026
	FaultInvalidHandle              FaultKind = 0xC0000008
	FaultInPageError                FaultKind = 0xC0000006
	FaultNoncontinuableException    FaultKind = 0xC0000025
	FaultPossibleDeadlock           FaultKind = 0xC0000194
	FaultPrivInstruction            FaultKind = 0xC0000096
	FaultSingleStep                 FaultKind = 0x80000004
	FaultUnrecoverableStackOverflow FaultKind = 0xE0000300
	FaultStackOverflow              FaultKind = 0xC00000FD
)

// faultNames maps every known kind to its canonical name.
var faultNames = map[FaultKind]string{
	FaultAccessViolation:            "EXCEPTION_ACCESS_VIOLATION",
	FaultArrayBoundsExceeded:        "EXCEPTION_ARRAY_BOUNDS_EXCEEDED",
	FaultBreakpoint:                 "EXCEPTION_BREAKPOINT",
	FaultDatatypeMisalignment:       "EXCEPTION_DATATYPE_MISALIGNMENT",
	FaultFltDenormalOperand:         "EXCEPTION_FLT_DENORMAL_OPERAND",
	FaultFltDivideByZero:            "EXCEPTION_FLT_DIVIDE_BY_ZERO",
	FaultFltInexactResult:           "EXCEPTION_FLT_INEXACT_RESULT",
	FaultFltInvalidOperation:        "EXCEPTION_FLT_INVALID_OPERATION",
	FaultFltOverflow:                "EXCEPTION_FLT_OVERFLOW",
	FaultFltStackCheck:              "EXCEPTION_FLT_STACK_CHECK",
	FaultFltUnderflow:               "EXCEPTION_FLT_UNDERFLOW",
	FaultGuardPage:                  "EXCEPTION_GUARD_PAGE",
	FaultIllegalInstruction:         "EXCEPTION_ILLEGAL_INSTRUCTION",
	FaultIntDivideByZero:            "EXCEPTION_INT_DIVIDE_BY_ZERO",
	FaultIntOverflow:                "EXCEPTION_INT_OVERFLOW",
	FaultInvalidDisposition:         "EXCEPTION_INVALID_DISPOSITION",
	FaultInvalidHandle:              "EXCEPTION_INVALID_HANDLE",
	FaultInPageError:                "EXCEPTION_IN_PAGE_ERROR",
	FaultNoncontinuableException:    "EXCEPTION_NONCONTINUABLE_EXCEPTION",
	FaultPossibleDeadlock:           "EXCEPTION_POSSIBLE_DEADLOCK",
	FaultPrivInstruction:            "EXCEPTION_PRIV_INSTRUCTION",
	FaultSingleStep:                 "EXCEPTION_SINGLE_STEP",
	FaultUnrecoverableStackOverflow: "EXCEPTION_SPAPI_UNRECOVERABLE_STACK_OVERFLOW",
	FaultStackOverflow:              "EXCEPTION_STACK_OVERFLOW",
}

// faultsByName is the reverse index of faultNames, built once at init.
var faultsByName = func() map[string]FaultKind {
	m := make(map[string]FaultKind, len(faultNames))
	for k, name := range faultNames {
		m[name] = k
	}
	return m
}()

// Classify resolves a raw exception code to its fault kind.
// Returns false for any code outside the table.
func Classify(code uint32) (FaultKind, bool) {
	k := FaultKind(code)
	if _, ok := faultNames[k]; !ok {
		return 0, false
	}
	return k, true
}

// ParseFaultKind resolves a canonical name (e.g. "EXCEPTION_STACK_OVERFLOW")
// back to its kind.
func ParseFaultKind(name string) (FaultKind, bool) {
	k, ok := faultsByName[name]
	return k, ok
}

// FaultKinds returns every known kind ordered by code.
func FaultKinds() []FaultKind {
	kinds := make([]FaultKind, 0, len(faultNames))
	for k := range faultNames {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Code returns the raw exception code.
func (k FaultKind) Code() uint32 {
	return uint32(k)
}

// String returns the canonical name, or a hex placeholder for values
// outside the table.
func (k FaultKind) String() string {
	if name, ok := faultNames[k]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_EXCEPTION(0x%08X)", uint32(k))
}

// IsMemoryAccess reports whether the first two auxiliary words of the
// fault carry an access type and target address.
func (k FaultKind) IsMemoryAccess() bool {
	return k == FaultAccessViolation || k == FaultInPageError
}
