package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusError_TransientCodes(t *testing.T) {
	for _, code := range []int{502, 503, 504} {
		err := NewStatusError(code, "upstream unavailable")
		if !errors.Is(err, ErrServerTransient) {
			t.Errorf("status %d should unwrap to ErrServerTransient", code)
		}
		if errors.Is(err, ErrServerApplication) {
			t.Errorf("status %d should not be an application error", code)
		}
	}
}

func TestStatusError_ApplicationCodes(t *testing.T) {
	for _, code := range []int{400, 401, 404, 422, 500} {
		err := NewStatusError(code, "")
		if !errors.Is(err, ErrServerApplication) {
			t.Errorf("status %d should unwrap to ErrServerApplication", code)
		}
		if errors.Is(err, ErrServerTransient) {
			t.Errorf("status %d should not be transient", code)
		}
	}
}

func TestStatusError_Message(t *testing.T) {
	var se *StatusError
	err := fmt.Errorf("configure: %w", NewStatusError(400, "bad weight"))
	if !errors.As(err, &se) {
		t.Fatal("expected StatusError in chain")
	}
	if se.Code != 400 {
		t.Errorf("code = %d, want 400", se.Code)
	}
	if se.Error() != "backend returned status 400: bad weight" {
		t.Errorf("unexpected message: %q", se.Error())
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"connectivity", fmt.Errorf("%w: connection refused", ErrConnectivity), true},
		{"transient status", NewStatusError(503, ""), true},
		{"application status", NewStatusError(400, ""), false},
		{"validation", ErrInvalidConfig, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}
