package errors

import (
	"strings"
	"testing"
)

func TestValidateEntityName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "counter", false},
		{"valid with underscore", "fifo_sync", false},
		{"escaped verilog identifier", `\bus[0]`, true},
		{"valid digits", "adder32", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"path traversal ..", "foo..bar", true},
		{"slash", "foo/bar", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntityName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEntityName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateEntityName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	valid := map[string]bool{"svg": true, "png": true}

	if err := ValidateFormat("svg", valid); err != nil {
		t.Errorf("ValidateFormat(svg) error = %v", err)
	}

	err := ValidateFormat("bmp", valid)
	if err == nil {
		t.Fatal("ValidateFormat(bmp) should fail")
	}
	if !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidFormat)
	}
	if !strings.Contains(err.Error(), "png, svg") {
		t.Errorf("error %q should list formats in sorted order", err.Error())
	}
}
