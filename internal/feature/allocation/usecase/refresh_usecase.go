package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"kse_backend/internal/shared/ratelimiter"
)

// MarketRepository は市場データフィードから現在価格を取得するリポジトリの
// インターフェースです。外部APIの実装を抽象化します。
type MarketRepository interface {
	// GetMarketPrices は大文字シンボルから現在価格へのマップを返します。
	GetMarketPrices(ctx context.Context) (map[string]float64, error)
}

// PriceWriter は保存済み銘柄の価格更新を抽象化します。
type PriceWriter interface {
	SecurityRepository
	// UpdatePrices は保存されているシンボルをキーとする価格マップを適用します。
	// マップにないシンボルの価格は変更されません。
	UpdatePrices(ctx context.Context, prices map[string]float64) error
}

// RefreshResult は価格更新の結果サマリです。
type RefreshResult struct {
	Updated int // 価格が更新された銘柄数
	Total   int // ユニバースの銘柄数
}

// Message は結果を人間が読める1行にします。
func (r RefreshResult) Message() string {
	return fmt.Sprintf("Updated prices for %d/%d companies", r.Updated, r.Total)
}

// RefreshUsecase は外部フィードから価格を取得し、銘柄ストアに反映する
// ユースケースを定義します。
type RefreshUsecase struct {
	market      MarketRepository
	securities  PriceWriter
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewRefreshUsecase は新しいRefreshUsecaseを作成します。
func NewRefreshUsecase(market MarketRepository, securities PriceWriter, rateLimiter ratelimiter.RateLimiterInterface) *RefreshUsecase {
	return &RefreshUsecase{market: market, securities: securities, rateLimiter: rateLimiter}
}

// Refresh はフィードの価格スナップショットを保存済み銘柄に適用します。
// シンボルは大文字化・空白除去のうえで照合し、フィードに存在しない銘柄は
// 直近の価格を保持します。フィード障害はErrFeedUnavailableとして返され、
// 呼び出し側は警告付きで処理を継続できます。
func (u *RefreshUsecase) Refresh(ctx context.Context) (RefreshResult, error) {
	u.rateLimiter.WaitIfNeeded()

	quotes, err := u.market.GetMarketPrices(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	universe, err := u.securities.List(ctx)
	if err != nil {
		return RefreshResult{}, err
	}

	matched := make(map[string]float64)
	for _, s := range universe {
		key := strings.ToUpper(strings.TrimSpace(s.Symbol))
		if price, ok := quotes[key]; ok && price > 0 {
			matched[s.Symbol] = price
		}
	}

	if len(matched) > 0 {
		if err := u.securities.UpdatePrices(ctx, matched); err != nil {
			return RefreshResult{}, err
		}
	}

	if len(matched) < len(universe) {
		slog.Warn("some symbols missing from price feed",
			"matched", len(matched), "total", len(universe))
	}

	return RefreshResult{Updated: len(matched), Total: len(universe)}, nil
}
