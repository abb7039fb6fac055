package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDriveError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *DriveError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitFilesystem, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestDriveError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	errNoCause := New(ExitGeneralError, "no cause")
	if unwrapped := errNoCause.Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *DriveError
		wantCode int
	}{
		{"missing field", MissingField("investigation_work_package"), ExitMissingField},
		{"invalid level", InvalidLevel("SECRET"), ExitInvalidLevel},
		{"filesystem", Filesystem("/bad/path", fmt.Errorf("permission denied")), ExitFilesystem},
		{"config parse", ConfigParse("study.json", fmt.Errorf("unexpected end of input")), ExitConfigParse},
		{"ssh", SSHError("key write failed", fmt.Errorf("read-only fs")), ExitSSHError},
		{"validation", ValidationError("bad input"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.ExitCode() != tt.wantCode {
				t.Errorf("ExitCode() = %d, want %d", tt.err.ExitCode(), tt.wantCode)
			}
		})
	}
}

func TestMissingField_Message(t *testing.T) {
	err := MissingField("slug")
	want := "required field is missing or empty: slug"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"drive error", MissingField("slug"), ExitMissingField},
		{"wrapped drive error", fmt.Errorf("context: %w", InvalidLevel("x")), ExitInvalidLevel},
		{"plain error", errors.New("plain"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
