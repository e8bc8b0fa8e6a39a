// Package usecase はallocationフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrInvalidCoverage はcoverage_percentが(0, 100]の範囲外の場合に返されます。
	ErrInvalidCoverage = errors.New("coverage_percent must be greater than 0 and at most 100")

	// ErrInvalidAmount はinvestment_amountが正の値でない場合に返されます。
	ErrInvalidAmount = errors.New("investment_amount must be greater than 0")

	// ErrInvalidSecurity は銘柄レコードが不正（シンボル欠落、重みが(0, 1]の範囲外）な場合に返されます。
	ErrInvalidSecurity = errors.New("invalid security record")

	// ErrNoSelectableWeight は選択された銘柄の重み合計がゼロで正規化できない場合に返されます。
	// 呼び出し側は「投資可能な銘柄なし」として扱う必要があります。
	ErrNoSelectableWeight = errors.New("selected securities have zero total weight")

	// ErrFeedUnavailable は価格フィードの取得に失敗した場合に返されます。
	// 配分計算においては致命的ではなく、直近の価格で処理を継続します。
	ErrFeedUnavailable = errors.New("price feed unavailable")
)
