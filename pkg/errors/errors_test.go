package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "WithoutCause",
			err:  New(ErrCodeDiagramNotFound, "diagram %q not found", "d1"),
			want: `DIAGRAM_NOT_FOUND: diagram "d1" not found`,
		},
		{
			name: "WithCause",
			err:  Wrap(ErrCodeNetwork, fmt.Errorf("dial tcp: refused"), "share request failed"),
			want: "NETWORK_ERROR: share request failed: dial tcp: refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeDiagramTooLarge, "too big")

	if !Is(err, ErrCodeDiagramTooLarge) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNetwork) {
		t.Error("Is should not match plain errors")
	}

	// Wrapped errors are found through the chain.
	wrapped := fmt.Errorf("context: %w", err)
	if !Is(wrapped, ErrCodeDiagramTooLarge) {
		t.Error("Is should unwrap to find the code")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(ErrCodeInternal, cause, "wrapper")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnavailable, "down")); got != ErrCodeUnavailable {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeUnavailable)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "code is required")); got != "code is required" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
