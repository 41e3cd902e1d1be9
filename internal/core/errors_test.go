package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorForReplyCode(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"NOT_FOUND", ExitNotFound},
		{"INVALID", ExitUsage},
		{"UNKNOWN", ExitRuntime},
	}

	for _, test := range tests {
		err := ErrorForReplyCode(test.code, "message")
		if err.Code != test.expected {
			t.Fatalf("code %s expected %d got %d", test.code, test.expected, err.Code)
		}
	}
}

func TestExitCodeUnwraps(t *testing.T) {
	err := fmt.Errorf("browse: %w", &CLIError{Code: ExitNotFound, Msg: "gone"})
	if got := ExitCode(err); got != ExitNotFound {
		t.Fatalf("expected %d, got %d", ExitNotFound, got)
	}
	if got := ExitCode(errors.New("plain")); got != ExitRuntime {
		t.Fatalf("expected runtime exit, got %d", got)
	}
	if got := ExitCode(nil); got != ExitOK {
		t.Fatalf("expected ok, got %d", got)
	}
}
