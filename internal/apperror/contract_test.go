package apperror

import (
	"errors"
	"testing"
)

func TestClassifyContract(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{
			name: "auth required from simulation",
			err:  errors.New("host invocation failed: Error(Auth, InvalidAction)"),
			want: CodeContractAuthRequired,
		},
		{
			name: "fresh account not initialized",
			err:  errors.New("contract call failed: user not initialized"),
			want: CodeAccountNotInitialized,
		},
		{
			name: "fresh account not found",
			err:  errors.New("account GABC not found"),
			want: CodeAccountNotInitialized,
		},
		{
			name: "sac missing value",
			err:  errors.New("HostError: Error(Storage, MissingValue)"),
			want: CodeTokenNotDeployed,
		},
		{
			name: "sac contract instance missing",
			err:  errors.New("trying to invoke non-existent contract instance"),
			want: CodeTokenNotDeployed,
		},
		{
			name: "anything else",
			err:  errors.New("UnreachableCodeReached"),
			want: CodeContractCallFailed,
		},
		{
			name: "nil",
			err:  nil,
			want: CodeUnknownError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyContract(tt.err); got != tt.want {
				t.Errorf("ClassifyContract(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}

func TestWrapKeepsExistingAppError(t *testing.T) {
	orig := New(CodeSimulationFailed, WithContext("scan"))
	wrapped := Wrap(orig, CodeInternalError, "outer")
	if wrapped.Code != CodeSimulationFailed {
		t.Errorf("Wrap replaced code: got %s, want %s", wrapped.Code, CodeSimulationFailed)
	}
	if wrapped.Context != "scan" {
		t.Errorf("Wrap replaced context: got %q", wrapped.Context)
	}
}

func TestGetCodeFallback(t *testing.T) {
	if got := GetCode(errors.New("plain")); got != CodeUnknownError {
		t.Errorf("GetCode(plain error) = %s, want %s", got, CodeUnknownError)
	}
}
