package reader

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		arg      string
		wantName string
		wantErr  bool
	}{
		{"0xC0000005", "EXCEPTION_ACCESS_VIOLATION", false},
		{"0xc0000094", "EXCEPTION_INT_DIVIDE_BY_ZERO", false},
		{"3221225477", "EXCEPTION_ACCESS_VIOLATION", false},
		{"EXCEPTION_STACK_OVERFLOW", "EXCEPTION_STACK_OVERFLOW", false},
		{"breakpoint", "EXCEPTION_BREAKPOINT", false},
		{" single_step ", "EXCEPTION_SINGLE_STEP", false},
		{"0xDEADBEEF", "", true},
		{"0x1FFFFFFFF", "", true},
		{"NOT_A_FAULT", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := Classify(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Classify(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if err == nil && got.Name != tt.wantName {
				t.Errorf("Classify(%q) = %q, want %q", tt.arg, got.Name, tt.wantName)
			}
		})
	}
}

func TestClassify_MemoryAccess(t *testing.T) {
	got, err := Classify("in_page_error")
	if err != nil {
		t.Fatal(err)
	}
	if !got.MemoryAccess || got.Code != "0xC0000006" {
		t.Errorf("got %+v", got)
	}
}

func TestCodes(t *testing.T) {
	codes := Codes()
	if len(codes) != 24 {
		t.Fatalf("got %d codes, want 24", len(codes))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1].Code >= codes[i].Code {
			t.Errorf("codes not in order: %s before %s", codes[i-1].Code, codes[i].Code)
		}
	}
}
