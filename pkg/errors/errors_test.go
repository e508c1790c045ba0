package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidObject, "object %s has no name", "obj-1")

	if err.Code != ErrCodeInvalidObject {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidObject)
	}
	if !strings.Contains(err.Error(), "INVALID_OBJECT") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
	if !strings.Contains(err.Error(), "obj-1") {
		t.Errorf("Error() = %q, want formatted message", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeStore, cause, "load object %s", "obj-1")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error does not match cause with errors.Is")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeObjectNotFound, "no such object")

	if !Is(err, ErrCodeObjectNotFound) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeStore) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeStore) {
		t.Error("Is() = true for non-structured error")
	}

	// Code survives further wrapping with %w.
	wrapped := fmt.Errorf("handler: %w", err)
	if !Is(wrapped, ErrCodeObjectNotFound) {
		t.Error("Is() = false for code behind fmt.Errorf wrap")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidMode, "bad mode")); got != ErrCodeInvalidMode {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeInvalidMode)
	}
	if got := GetCode(stderrors.New("plain")); got != ErrCodeInternal {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeInternal)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidCSV, "row 3: missing name")
	if got := UserMessage(err); got != "row 3: missing name" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage = %q", got)
	}
}
