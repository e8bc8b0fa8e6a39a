package cache

import (
	"time"
)

// TimeUntilNextMarketOpen は次の取引開始時刻（パキスタン時間 午前9時30分）までの期間を返します。
func TimeUntilNextMarketOpen() time.Duration {
	loc, _ := time.LoadLocation("Asia/Karachi")
	now := time.Now().In(loc)

	// 次の午前9時30分を計算
	nextOpen := time.Date(now.Year(), now.Month(), now.Day(), 9, 30, 0, 0, loc)

	// 今日の取引開始時刻が既に過ぎている場合は翌日を使用
	if now.After(nextOpen) {
		nextOpen = nextOpen.Add(24 * time.Hour)
	}

	return nextOpen.Sub(now)
}
