package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pithecene-io/ezcrash/types"
)

const (
	faultAddressPrefix = "An exception occurred at "
	registersHeading   = "Thread Context"
	stackHeading       = "Stack Trace"
	ripPrefix          = "RIP: "
	frameFilePrefix    = "at "
)

// accessPrefixes maps access-detail line prefixes to access types.
var accessPrefixes = []struct {
	prefix string
	typ    string
	info   uint64
}{
	{"Invalid Read from ", AccessRead, types.AccessRead},
	{"Invalid Write to ", AccessWrite, types.AccessWrite},
	{"Tripped DEP at ", AccessExecute, types.AccessExecute},
	{"Unknown access violation at ", AccessUnknown, types.AccessUnknown},
}

// ParseText reads a saved crash report back into a Record.
// Sections that were disabled when the report was written are simply absent
// from the result. The parsed Record carries the input as Text.
func ParseText(text string) (*Record, error) {
	p := &textParser{lines: strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")}
	rec, err := p.parse()
	if err != nil {
		return nil, err
	}
	rec.Text = text
	return rec, nil
}

type textParser struct {
	lines []string
	pos   int
}

func (p *textParser) fail(kind error, format string, args ...any) error {
	return &FormatError{Kind: kind, Line: p.pos + 1, Err: fmt.Errorf(format, args...)}
}

func (p *textParser) next() (string, bool) {
	if p.pos >= len(p.lines) {
		return "", false
	}
	line := p.lines[p.pos]
	p.pos++
	return line, true
}

func (p *textParser) expect(want string) error {
	line, ok := p.next()
	if !ok {
		return p.fail(ErrMalformedReport, "unexpected end of report, want %q", want)
	}
	if line != want {
		p.pos--
		return p.fail(ErrMalformedReport, "got %q, want %q", line, want)
	}
	return nil
}

func (p *textParser) parse() (*Record, error) {
	if line, _ := p.next(); line != Header {
		p.pos = 0
		return nil, p.fail(ErrNotCrashReport, "first line %q", line)
	}

	rec := &Record{Version: types.RecordVersion}

	line, _ := p.next()
	if !strings.HasPrefix(line, faultAddressPrefix) {
		p.pos--
		return nil, p.fail(ErrMalformedReport, "missing fault address line")
	}
	addr, err := parseHex64(strings.TrimPrefix(line, faultAddressPrefix))
	if err != nil {
		p.pos--
		return nil, p.fail(ErrMalformedReport, "fault address: %v", err)
	}
	rec.Fault.Address = addr

	if err := p.expect(""); err != nil {
		return nil, err
	}
	if err := p.parseKind(rec); err != nil {
		return nil, err
	}
	if err := p.expect(""); err != nil {
		return nil, err
	}

	for {
		line, ok := p.next()
		if !ok {
			return rec, nil
		}
		switch {
		case line == "":
			continue
		case line == registersHeading:
			if err := p.parseRegisters(rec); err != nil {
				return nil, err
			}
		case line == stackHeading:
			if err := p.parseStack(rec); err != nil {
				return nil, err
			}
		default:
			if !p.parseAccess(rec, line) {
				p.pos--
				return nil, p.fail(ErrMalformedReport, "unexpected line %q", line)
			}
		}
	}
}

func (p *textParser) parseKind(rec *Record) error {
	line, _ := p.next()
	code, name, found := strings.Cut(line, ": ")
	if !found {
		p.pos--
		return p.fail(ErrMalformedReport, "missing fault kind line")
	}
	v, err := parseHex64(code)
	if err != nil || v > 0xFFFFFFFF {
		p.pos--
		return p.fail(ErrMalformedReport, "fault code %q", code)
	}
	rec.Fault.Code = uint32(v)
	rec.Kind = name
	return nil
}

func (p *textParser) parseAccess(rec *Record, line string) bool {
	for _, ap := range accessPrefixes {
		if !strings.HasPrefix(line, ap.prefix) {
			continue
		}
		addr, err := parseHex64(strings.TrimPrefix(line, ap.prefix))
		if err != nil {
			return false
		}
		rec.Access = &Access{Type: ap.typ, Address: addr}
		rec.Fault.Info[0] = ap.info
		rec.Fault.Info[1] = addr
		rec.Fault.NumInfo = 2
		return true
	}
	return false
}

func (p *textParser) parseRegisters(rec *Record) error {
	var regs types.RegisterSnapshot
	for range registerPairs {
		line, ok := p.next()
		if !ok {
			return p.fail(ErrMalformedReport, "register block truncated")
		}
		for _, half := range strings.Split(line, " | ") {
			name, value, found := strings.Cut(half, ": ")
			if !found {
				p.pos--
				return p.fail(ErrMalformedReport, "register entry %q", half)
			}
			v, err := parseHex64(value)
			if err != nil {
				p.pos--
				return p.fail(ErrMalformedReport, "register %s: %v", name, err)
			}
			if !setRegister(&regs, name, v) {
				p.pos--
				return p.fail(ErrMalformedReport, "unknown register %q", name)
			}
		}
	}

	if err := p.expect(""); err != nil {
		return err
	}
	line, _ := p.next()
	if !strings.HasPrefix(line, ripPrefix) {
		p.pos--
		return p.fail(ErrMalformedReport, "missing RIP line")
	}
	rip, err := parseHex64(strings.TrimPrefix(line, ripPrefix))
	if err != nil {
		p.pos--
		return p.fail(ErrMalformedReport, "RIP: %v", err)
	}
	regs.Rip = rip
	rec.Registers = &regs
	return nil
}

func (p *textParser) parseStack(rec *Record) error {
	rec.Frames = Stack{}
	for {
		line, ok := p.next()
		if !ok || line == "" {
			return nil
		}
		trimmed := strings.TrimLeft(line, " ")

		if strings.HasPrefix(trimmed, frameFilePrefix) && len(rec.Frames) > 0 {
			loc := strings.TrimPrefix(trimmed, frameFilePrefix)
			i := strings.LastIndex(loc, ":")
			if i < 0 {
				p.pos--
				return p.fail(ErrMalformedReport, "frame location %q", loc)
			}
			n, err := strconv.Atoi(loc[i+1:])
			if err != nil {
				p.pos--
				return p.fail(ErrMalformedReport, "frame line %q", loc[i+1:])
			}
			last := &rec.Frames[len(rec.Frames)-1]
			last.File, last.Line = loc[:i], n
			continue
		}

		_, rest, found := strings.Cut(trimmed, ": ")
		if !found {
			p.pos--
			return p.fail(ErrMalformedReport, "stack frame %q", line)
		}
		pcText, fn, _ := strings.Cut(rest, " ")
		pc, err := parseHex64(pcText)
		if err != nil {
			p.pos--
			return p.fail(ErrMalformedReport, "frame address: %v", err)
		}
		if fn == "<unknown>" {
			fn = ""
		}
		rec.Frames = append(rec.Frames, Frame{PC: pc, Function: fn})
	}
}

func setRegister(regs *types.RegisterSnapshot, name string, v uint64) bool {
	switch name {
	case "RAX":
		regs.Rax = v
	case "RBX":
		regs.Rbx = v
	case "RCX":
		regs.Rcx = v
	case "RDX":
		regs.Rdx = v
	case "RSI":
		regs.Rsi = v
	case "RDI":
		regs.Rdi = v
	case "RBP":
		regs.Rbp = v
	case "RSP":
		regs.Rsp = v
	case "R8":
		regs.R8 = v
	case "R9":
		regs.R9 = v
	case "R10":
		regs.R10 = v
	case "R11":
		regs.R11 = v
	case "R12":
		regs.R12 = v
	case "R13":
		regs.R13 = v
	case "R14":
		regs.R14 = v
	case "R15":
		regs.R15 = v
	default:
		return false
	}
	return true
}

func parseHex64(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return 0, fmt.Errorf("%q lacks 0x prefix", s)
	}
	return strconv.ParseUint(s[2:], 16, 64)
}
