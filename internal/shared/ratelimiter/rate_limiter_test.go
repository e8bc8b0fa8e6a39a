package ratelimiter

import (
	"sync"
	"testing"
	"time"
)

// TestRateLimiter_UnderLimit は上限未満の呼び出しが待機しないことを検証します。
func TestRateLimiter_UnderLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(5, time.Minute)

	start := time.Now()
	for i := 0; i < 5; i++ {
		rl.WaitIfNeeded()
	}
	elapsed := time.Since(start)

	if elapsed > 100*time.Millisecond {
		t.Errorf("expected no waiting under the limit, took %v", elapsed)
	}
}

// TestRateLimiter_BlocksOverLimit は上限超過時に次のウィンドウまで待機することを検証します。
func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	t.Parallel()

	interval := 200 * time.Millisecond
	rl := NewRateLimiter(2, interval)

	rl.WaitIfNeeded()
	rl.WaitIfNeeded()

	start := time.Now()
	rl.WaitIfNeeded() // 3回目はウィンドウ終了まで待機する
	elapsed := time.Since(start)

	if elapsed < 50*time.Millisecond {
		t.Errorf("expected third call to block, took %v", elapsed)
	}
}

// TestRateLimiter_ConcurrentCallers は複数ゴルーチンからの同時呼び出しが安全であることを検証します。
// -race付きで実行するとミューテックスなしの実装では検出されます。
func TestRateLimiter_ConcurrentCallers(t *testing.T) {
	t.Parallel()

	// 上限を十分大きくして待機を発生させない
	rl := NewRateLimiter(10000, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				rl.WaitIfNeeded()
			}
		}()
	}
	wg.Wait()
}

// TestRateLimiter_ResetsAfterInterval はウィンドウ経過後にカウントがリセットされることを検証します。
func TestRateLimiter_ResetsAfterInterval(t *testing.T) {
	t.Parallel()

	interval := 100 * time.Millisecond
	rl := NewRateLimiter(2, interval)

	rl.WaitIfNeeded()
	rl.WaitIfNeeded()

	time.Sleep(interval + 20*time.Millisecond)

	start := time.Now()
	rl.WaitIfNeeded()
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected no waiting after window reset, took %v", elapsed)
	}
}
