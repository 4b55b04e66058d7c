package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeDuplicateModule, "duplicate module id: %s", "app.a")

	if err.Code != ErrCodeDuplicateModule {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeDuplicateModule)
	}
	if want := "DUPLICATE_MODULE: duplicate module id: app.a"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidScan, cause, "read scan %s", "scan.json")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error does not match its cause with errors.Is")
	}
	if want := "INVALID_SCAN: read scan scan.json: unexpected EOF"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidRisk, "bad risk")

	if !Is(err, ErrCodeInvalidRisk) {
		t.Error("Is() did not match the error's own code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is() matched a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidRisk) {
		t.Error("Is() matched a plain error")
	}

	// The code survives wrapping in a plain fmt chain.
	wrapped := fmt.Errorf("loading input: %w", err)
	if !Is(wrapped, ErrCodeInvalidRisk) {
		t.Error("Is() did not unwrap a fmt-wrapped error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidConfig, "bad config")); got != ErrCodeInvalidConfig {
		t.Errorf("GetCode() = %s, want %s", got, ErrCodeInvalidConfig)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeMissingModuleID, "module record 3 has no module_id")
	if got := UserMessage(err); got != "module record 3 has no module_id" {
		t.Errorf("UserMessage() = %q, want message without code prefix", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage() on plain error = %q, want %q", got, "plain failure")
	}
}
