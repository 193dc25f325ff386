package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidNode, "bad node: %s", "x")

	if err.Code != ErrCodeInvalidNode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidNode)
	}

	if err.Message != "bad node: x" {
		t.Errorf("Message = %v, want %v", err.Message, "bad node: x")
	}

	expected := "INVALID_NODE: bad node: x"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("would create a cycle")
	err := Wrap(ErrCodeCircularRelationship, cause, "derive %s -> %s", "shape", "square")

	if err.Code != ErrCodeCircularRelationship {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeCircularRelationship)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "CIRCULAR_RELATIONSHIP: derive shape -> square: would create a cycle"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

type codedError struct{}

func (codedError) Error() string { return "coded" }
func (codedError) Code() Code    { return ErrCodeArgumentConflict }

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeNoMethod, "test"),
			code:     ErrCodeNoMethod,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeNoMethod, "test"),
			code:     ErrCodePreferenceConflict,
			expected: false,
		},
		{
			name:     "outermost code wins",
			err:      Wrap(ErrCodeInvalidFormat, New(ErrCodeInvalidNode, "inner"), "outer"),
			code:     ErrCodeInvalidFormat,
			expected: true,
		},
		{
			name:     "coder type",
			err:      codedError{},
			code:     ErrCodeArgumentConflict,
			expected: true,
		},
		{
			name:     "coder behind fmt wrap",
			err:      fmt.Errorf("dispatch: %w", codedError{}),
			code:     ErrCodeArgumentConflict,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "empty code never matches",
			err:      errors.New("plain error"),
			code:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeUnknownDispatchValue, "test"), ErrCodeUnknownDispatchValue},
		{"coder", codedError{}, ErrCodeArgumentConflict},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
