package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pithecene-io/ezcrash/types"
)

// Classify resolves a fault code or name to its table entry.
// Accepted forms: "0xC0000005", "3221225477", "EXCEPTION_ACCESS_VIOLATION"
// and "access_violation".
func Classify(arg string) (*KindInfo, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, fmt.Errorf("empty fault code")
	}

	if code, err := strconv.ParseUint(arg, 0, 32); err == nil {
		kind, ok := types.Classify(uint32(code))
		if !ok {
			return nil, fmt.Errorf("unknown fault code 0x%08X", code)
		}
		return kindInfo(kind), nil
	}

	name := strings.ToUpper(arg)
	if !strings.HasPrefix(name, "EXCEPTION_") {
		name = "EXCEPTION_" + name
	}
	kind, ok := types.ParseFaultKind(name)
	if !ok {
		return nil, fmt.Errorf("unknown fault kind %q", arg)
	}
	return kindInfo(kind), nil
}

// Codes returns the whole classification table in code order.
func Codes() []KindInfo {
	kinds := types.FaultKinds()
	out := make([]KindInfo, len(kinds))
	for i, k := range kinds {
		out[i] = *kindInfo(k)
	}
	return out
}

func kindInfo(k types.FaultKind) *KindInfo {
	return &KindInfo{
		Name:         k.String(),
		Code:         fmt.Sprintf("0x%08X", k.Code()),
		MemoryAccess: k.IsMemoryAccess(),
	}
}
