package resilience

import (
	"testing"
	"time"
)

func TestCircuitBreakerConfig_Normalized(t *testing.T) {
	got := CircuitBreakerConfig{Enabled: true, OpenTimeout: -time.Second}.Normalized()
	want := DefaultCircuitBreakerConfig()
	if got != want {
		t.Fatalf("Normalized()=%+v want=%+v", got, want)
	}

	custom := CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 3}
	if custom.Normalized() != custom {
		t.Fatalf("expected valid config to be kept, got %+v", custom.Normalized())
	}
}

func TestCircuitBreakerConfig_Validate(t *testing.T) {
	valid := DefaultCircuitBreakerConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	tests := []CircuitBreakerConfig{
		{FailureThreshold: 0, OpenTimeout: time.Second, HalfOpenMaxReq: 1},
		{FailureThreshold: 1, OpenTimeout: 0, HalfOpenMaxReq: 1},
		{FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 0},
	}
	for _, cfg := range tests {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", cfg)
		}
	}
}

func TestNewCircuitBreakerFromConfig_Disabled(t *testing.T) {
	b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: false})
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("nil breaker must allow calls: %v", err)
	}
	if b.State() != CircuitStateClosed {
		t.Fatalf("nil breaker must report closed")
	}
}
