package ratelimiter

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestRateLimiter_UnderLimit は上限未満の呼び出しが待機しないことを検証します。
func TestRateLimiter_UnderLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(3, time.Hour)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := rl.WaitIfNeeded(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	elapsed := time.Since(start)

	// No call should have slept
	if elapsed > 100*time.Millisecond {
		t.Errorf("expected no waiting under the limit, took %v", elapsed)
	}
}

// TestRateLimiter_WaitsOverLimit は上限超過の呼び出しがウィンドウの残り時間まで待機することを検証します。
func TestRateLimiter_WaitsOverLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 200*time.Millisecond)

	if err := rl.WaitIfNeeded(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Now()
	if err := rl.WaitIfNeeded(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)

	// The second call must sleep roughly until the window expires
	if elapsed < 100*time.Millisecond {
		t.Errorf("expected the call over the limit to wait, took %v", elapsed)
	}
}

// TestRateLimiter_ResetsAfterWindow はウィンドウ経過後にカウントがリセットされ待機しないことを検証します。
func TestRateLimiter_ResetsAfterWindow(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, 50*time.Millisecond)

	if err := rl.WaitIfNeeded(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(80 * time.Millisecond)

	start := time.Now()
	if err := rl.WaitIfNeeded(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed > 30*time.Millisecond {
		t.Errorf("expected no waiting after the window reset, took %v", elapsed)
	}
}

// TestRateLimiter_CanceledContext はキャンセルされたコンテキストが待機を打ち切ることを検証します。
func TestRateLimiter_CanceledContext(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, time.Hour)

	if err := rl.WaitIfNeeded(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := rl.WaitIfNeeded(ctx)
	elapsed := time.Since(start)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	// The hour-long wait must be abandoned immediately
	if elapsed > 100*time.Millisecond {
		t.Errorf("expected the canceled wait to return promptly, took %v", elapsed)
	}
}
