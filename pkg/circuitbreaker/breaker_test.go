package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := New("test", Config{
		FailureThreshold: 3,
		Timeout:          time.Minute,
	})

	for i := 0; i < 3; i++ {
		if err := cb.Execute(context.Background(), func() error { return errBoom }); !errors.Is(err, errBoom) {
			t.Fatalf("attempt %d: err = %v, want errBoom", i, err)
		}
	}

	if cb.State() != StateOpen {
		t.Fatalf("state = %s, want open", cb.State())
	}

	err := cb.Execute(context.Background(), func() error { return nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("err = %v, want ErrCircuitOpen", err)
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := New("test", Config{
		FailureThreshold: 2,
		Timeout:          time.Minute,
	})

	cb.Execute(context.Background(), func() error { return errBoom })
	cb.Execute(context.Background(), func() error { return nil })
	cb.Execute(context.Background(), func() error { return errBoom })

	if cb.State() != StateClosed {
		t.Errorf("state = %s, want closed", cb.State())
	}
}

func TestHalfOpenRecovery(t *testing.T) {
	cb := New("test", Config{
		MaxRequests:      2,
		FailureThreshold: 1,
		SuccessThreshold: 2,
		Timeout:          10 * time.Millisecond,
	})

	cb.Execute(context.Background(), func() error { return errBoom })
	if cb.State() != StateOpen {
		t.Fatalf("state = %s, want open", cb.State())
	}

	time.Sleep(20 * time.Millisecond)
	if cb.State() != StateHalfOpen {
		t.Fatalf("state = %s, want half-open", cb.State())
	}

	for i := 0; i < 2; i++ {
		if err := cb.Execute(context.Background(), func() error { return nil }); err != nil {
			t.Fatalf("probe %d failed: %v", i, err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("state = %s, want closed", cb.State())
	}
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := New("test", Config{
		FailureThreshold: 1,
		Timeout:          10 * time.Millisecond,
	})

	cb.Execute(context.Background(), func() error { return errBoom })
	time.Sleep(20 * time.Millisecond)

	cb.Execute(context.Background(), func() error { return errBoom })
	if cb.State() != StateOpen {
		t.Errorf("state = %s, want open", cb.State())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateClosed, "closed"},
		{StateHalfOpen, "half-open"},
		{StateOpen, "open"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
