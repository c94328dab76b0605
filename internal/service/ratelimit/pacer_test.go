package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestPacerFirstCallImmediate(t *testing.T) {
	p := NewPacer(time.Second)
	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("first call waited %v, want immediate", elapsed)
	}
}

func TestPacerSpacesCalls(t *testing.T) {
	p := NewPacer(50 * time.Millisecond)
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("second call waited %v, want >= ~50ms", elapsed)
	}
}

func TestPacerContextCancel(t *testing.T) {
	p := NewPacer(time.Minute)
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.Wait(ctx); err == nil {
		t.Fatal("want context error, got nil")
	}
}

func TestPacerZeroInterval(t *testing.T) {
	p := NewPacer(0)
	for i := 0; i < 5; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
}

func TestLimiterAllowAndRefill(t *testing.T) {
	l := New()
	if !l.Allow("a", 2, 100) {
		t.Fatal("first token should be granted")
	}
	if !l.Allow("a", 2, 100) {
		t.Fatal("second token should be granted")
	}
	if l.Allow("a", 2, 0.0001) {
		t.Fatal("bucket should be empty")
	}
	// different key has its own bucket
	if !l.Allow("b", 2, 100) {
		t.Fatal("fresh key should be granted")
	}
}
