package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "button", false},
		{"valid with dash", "toggle-button", false},
		{"valid with underscore", "toggle_button", false},
		{"valid unicode", "größe", false},
		{"valid inner space", "push button", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"leading space", " button", true},
		{"trailing space", "button ", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"comma", "rect,shape", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidNode) {
				t.Errorf("ValidateNodeName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidNode)
			}
		})
	}
}

func TestValidateMethodName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "to_string", false},
		{"dotted", "widget.embed", false},
		{"dashed", "swim-fast", false},

		{"empty", "", true},
		{"leading digit", "1st", true},
		{"space", "to string", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMethodName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMethodName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "widgets.toml", false},
		{"nested", "defs/widgets.toml", false},
		{"absolute", "/etc/hierarchy/widgets.toml", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 600), true},
		{"null byte", "defs\x00.toml", true},
		{"newline", "defs\n.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
