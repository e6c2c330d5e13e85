package latency

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDefaultProfile(t *testing.T) {
	p := Default()
	if got := p.Delay(OpAddUserToGroup); got != 300*time.Millisecond {
		t.Errorf("add_user_to_group: expected 300ms, got %v", got)
	}
	for _, op := range []string{OpFetchUsers, OpFetchGroups, OpCreateGroup, OpDeleteGroup} {
		if got := p.Delay(op); got != 500*time.Millisecond {
			t.Errorf("%s: expected 500ms, got %v", op, got)
		}
	}
}

func TestScale(t *testing.T) {
	p := Default().Scale(0.1)
	if got := p.Delay(OpFetchGroups); got != 50*time.Millisecond {
		t.Errorf("expected 50ms, got %v", got)
	}
	if got := p.Delay(OpAddUserToGroup); got != 30*time.Millisecond {
		t.Errorf("expected 30ms, got %v", got)
	}
}

func TestNoneDoesNotBlock(t *testing.T) {
	start := time.Now()
	if err := None().Wait(context.Background(), OpFetchGroups); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Error("None() should not wait")
	}
}

func TestFixedWaits(t *testing.T) {
	start := time.Now()
	if err := Fixed(20*time.Millisecond).Wait(context.Background(), OpCreateGroup); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("expected to wait at least 20ms, waited %v", elapsed)
	}
}

func TestWaitHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Fixed(time.Hour).Wait(ctx, OpFetchUsers)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	err = None().Wait(ctx, OpFetchUsers)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled with no delay, got %v", err)
	}
}
