package infra

import (
	"context"
	"testing"
	"time"

	"processador-pedidos/orders/domain"
)

func TestLimiterStore_SameKeySameLimiter(t *testing.T) {
	s := NewLimiterStore(10, 1)
	if s.Get("k") != s.Get("k") {
		t.Fatalf("expected same limiter for same key")
	}
	if s.Get("k") == s.Get("outra") {
		t.Fatalf("expected different limiter per key")
	}
}

func TestLimiterStore_LowBurstRejectsSecondAllow(t *testing.T) {
	lim := NewLimiterStore(0.02, 1).Get(domain.Key("k"))
	if !lim.Allow() {
		t.Fatalf("expected first Allow to be true")
	}
	if lim.Allow() {
		t.Fatalf("expected second immediate Allow to be false (burst=1)")
	}
}

func TestLimiterStore_CleanupRemovesIdle(t *testing.T) {
	s := NewLimiterStore(10, 1, WithIdleTTL(2*time.Millisecond), WithCleanupEvery(0))
	before := s.Get("k")
	time.Sleep(4 * time.Millisecond)
	s.Cleanup()
	if before == s.Get("k") {
		t.Fatalf("expected limiter to be recreated after cleanup")
	}
}

func TestChanPool_AcquireRelease(t *testing.T) {
	p := NewChanPool(1)

	release, ok := p.Acquire(context.Background())
	if !ok {
		t.Fatalf("expected first acquire to succeed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, ok := p.Acquire(ctx); ok {
		t.Fatalf("expected second acquire to time out")
	}

	release()
	release() // segunda chamada não deve liberar vaga extra

	r2, ok := p.Acquire(context.Background())
	if !ok {
		t.Fatalf("expected acquire after release")
	}
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel2()
	if _, ok := p.Acquire(ctx2); ok {
		t.Fatalf("expected pool to still have capacity 1")
	}
	r2()
}
