package ratelimiter

import (
	"context"
	"log/slog"
	"time"
)

// RateLimiterInterface は、外部API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded(ctx context.Context) error
}

// RateLimiter は固定ウィンドウ方式で外部API呼び出しの頻度を制限します。
// 単一ゴルーチンからの利用を想定しています（バッチ処理用）。
type RateLimiter struct {
	limit       int           // ウィンドウあたりの呼び出し上限
	window      time.Duration // カウントをリセットする単位
	count       int
	windowStart time.Time
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:       limit,
		window:      window,
		windowStart: time.Now(),
	}
}

// WaitIfNeeded はウィンドウ内の呼び出し上限に達している場合、次のウィンドウの
// 開始まで待機します。待機中にコンテキストがキャンセルされた場合は待機を打ち切り、
// ctx.Err()を返します。
func (rl *RateLimiter) WaitIfNeeded(ctx context.Context) error {
	now := time.Now()
	// ウィンドウを過ぎたらカウントリセット
	if now.Sub(rl.windowStart) >= rl.window {
		rl.count = 0
		rl.windowStart = now
	}

	rl.count++
	if rl.count <= rl.limit {
		return nil
	}

	if wait := rl.window - now.Sub(rl.windowStart); wait > 0 {
		slog.Info("rate limit reached, waiting for the next window", "limit", rl.limit, "wait", wait)
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	// この呼び出しを新しいウィンドウの1回目として数える
	rl.count = 1
	rl.windowStart = time.Now()
	return nil
}
