package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeBoardNotFound, "board %s does not exist", "b1"),
			want: "BOARD_NOT_FOUND: board b1 does not exist",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeStorage, fmt.Errorf("disk full"), "save board %s", "b1"),
			want: "STORAGE_ERROR: save board b1: disk full",
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
	err := New(ErrCodeInvalidCard, "bad card")

	if !Is(err, ErrCodeInvalidCard) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeStorage) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeInvalidCard) {
		t.Error("Is() = true for non-structured error")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeCardNotFound, "card gone")
	outer := fmt.Errorf("handling request: %w", inner)

	if !Is(outer, ErrCodeCardNotFound) {
		t.Error("Is() did not find code through wrapped chain")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ErrCodeInternal, cause, "wrapped")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is() did not reach the cause")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"structured error", New(ErrCodeInvalidBoard, "x"), ErrCodeInvalidBoard},
		{"plain error", fmt.Errorf("x"), ""},
		{"wrapped structured error", fmt.Errorf("w: %w", New(ErrCodeStorage, "x")), ErrCodeStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	if !NotFound(New(ErrCodeBoardNotFound, "x")) {
		t.Error("NotFound() = false for BOARD_NOT_FOUND")
	}
	if !NotFound(New(ErrCodeCardNotFound, "x")) {
		t.Error("NotFound() = false for CARD_NOT_FOUND")
	}
	if NotFound(New(ErrCodeStorage, "x")) {
		t.Error("NotFound() = true for STORAGE_ERROR")
	}
}
