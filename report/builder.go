// Package report turns a decoded fault into the human-readable crash report.
//
// Build is pure: identical inputs always give byte-identical text, so saved
// crash files can be compared against golden output. The text layout is a
// compatibility surface (see ParseText); section order never changes:
//
//	header, fault identification, access detail, registers, stack trace
package report

import (
	"fmt"
	"strings"

	"github.com/pithecene-io/ezcrash/config"
	"github.com/pithecene-io/ezcrash/types"
)

// Header is the first line of every report.
const Header = "Crash :("

// Title is the caption used by the dialog sink.
const Title = "Crash"

// SectionKind identifies a report section.
type SectionKind string

// Report sections in output order.
const (
	SectionHeader    SectionKind = "header"
	SectionFault     SectionKind = "fault"
	SectionAccess    SectionKind = "access"
	SectionRegisters SectionKind = "registers"
	SectionStack     SectionKind = "stack"
)

// Section is one block of report text, newline-terminated.
type Section struct {
	Kind SectionKind
	Text string
}

// Report is the per-fault output handed to the sinks.
type Report struct {
	Sections []Section
	// Record is the structured form of the same report.
	Record Record
}

// String returns the concatenated report text.
func (r *Report) String() string {
	var b strings.Builder
	for _, s := range r.Sections {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Bytes returns the report text as bytes.
func (r *Report) Bytes() []byte {
	return []byte(r.String())
}

// Section returns the section of the given kind, if present.
func (r *Report) Section(kind SectionKind) (Section, bool) {
	for _, s := range r.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// Build assembles the report for a classified fault.
// regs may be nil when the fault source cannot supply a register snapshot;
// the register section is then omitted even if enabled. stack is rendered
// only when cfg.IncludeStackTrace is set.
func Build(rec types.FaultRecord, regs *types.RegisterSnapshot, stack Stack, cfg config.Configuration) *Report {
	kind := types.FaultKind(rec.Code)
	r := &Report{
		Record: Record{
			Version: types.RecordVersion,
			Kind:    kind.String(),
			Fault:   rec,
		},
	}

	r.add(SectionHeader, Header+"\n")
	r.add(SectionFault, fmt.Sprintf("An exception occurred at %s\n\n0x%08X: %s\n\n", hex64(rec.Address), rec.Code, kind))

	if kind.IsMemoryAccess() {
		access := accessOf(rec)
		r.Record.Access = &access
		r.add(SectionAccess, accessLine(access)+"\n")
	}

	if cfg.IncludeThreadContext && regs != nil {
		snapshot := *regs
		r.Record.Registers = &snapshot
		r.add(SectionRegisters, formatRegisters(snapshot))
	}

	if cfg.IncludeStackTrace {
		if limit := cfg.FrameLimit(); len(stack) > limit {
			stack = stack[:limit]
		}
		r.Record.Frames = append(Stack(nil), stack...)
		r.add(SectionStack, formatStack(stack))
	}

	r.Record.Text = r.String()
	return r
}

func (r *Report) add(kind SectionKind, text string) {
	r.Sections = append(r.Sections, Section{Kind: kind, Text: text})
}

// Access is the decoded target of a memory-access fault.
type Access struct {
	Type    string `msgpack:"type" json:"type"`
	Address uint64 `msgpack:"address" json:"address"`
}

// Access types as they appear in Record.Access.Type.
const (
	AccessRead    = "read"
	AccessWrite   = "write"
	AccessExecute = "execute"
	AccessUnknown = "unknown"
)

func accessOf(rec types.FaultRecord) Access {
	a := Access{Address: rec.Info[1]}
	switch rec.Info[0] {
	case types.AccessRead:
		a.Type = AccessRead
	case types.AccessWrite:
		a.Type = AccessWrite
	case types.AccessExecute:
		a.Type = AccessExecute
	default:
		a.Type = AccessUnknown
	}
	return a
}

func accessLine(a Access) string {
	switch a.Type {
	case AccessRead:
		return "Invalid Read from " + hex64(a.Address)
	case AccessWrite:
		return "Invalid Write to " + hex64(a.Address)
	case AccessExecute:
		return "Tripped DEP at " + hex64(a.Address)
	default:
		return "Unknown access violation at " + hex64(a.Address)
	}
}

// registerPairs is the register block layout, two registers per line.
var registerPairs = [][2]string{
	{"RAX", "RSI"},
	{"RBX", "RDI"},
	{"RCX", "RBP"},
	{"RDX", "RSP"},
	{"R8", "R9"},
	{"R10", "R11"},
	{"R12", "R13"},
	{"R14", "R15"},
}

func registerValue(regs types.RegisterSnapshot, name string) uint64 {
	switch name {
	case "RAX":
		return regs.Rax
	case "RBX":
		return regs.Rbx
	case "RCX":
		return regs.Rcx
	case "RDX":
		return regs.Rdx
	case "RSI":
		return regs.Rsi
	case "RDI":
		return regs.Rdi
	case "RBP":
		return regs.Rbp
	case "RSP":
		return regs.Rsp
	case "R8":
		return regs.R8
	case "R9":
		return regs.R9
	case "R10":
		return regs.R10
	case "R11":
		return regs.R11
	case "R12":
		return regs.R12
	case "R13":
		return regs.R13
	case "R14":
		return regs.R14
	case "R15":
		return regs.R15
	case "RIP":
		return regs.Rip
	}
	return 0
}

func formatRegisters(regs types.RegisterSnapshot) string {
	var b strings.Builder
	b.WriteString("\nThread Context\n")
	for _, p := range registerPairs {
		fmt.Fprintf(&b, "%s: %s | %s: %s\n",
			p[0], hex64(registerValue(regs, p[0])),
			p[1], hex64(registerValue(regs, p[1])))
	}
	fmt.Fprintf(&b, "\nRIP: %s\n", hex64(regs.Rip))
	return b.String()
}

func formatStack(stack Stack) string {
	var b strings.Builder
	b.WriteString("\nStack Trace\n")
	for i, fr := range stack {
		fn := fr.Function
		if fn == "" {
			fn = "<unknown>"
		}
		fmt.Fprintf(&b, "%4d: %s %s\n", i, hex64(fr.PC), fn)
		if fr.File != "" {
			fmt.Fprintf(&b, "             at %s:%d\n", fr.File, fr.Line)
		}
	}
	return b.String()
}

// hex64 formats a pointer-width value as 0x followed by 16 uppercase digits.
func hex64(v uint64) string {
	return fmt.Sprintf("0x%016X", v)
}
