package psxterminal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"kse_backend/internal/feature/allocation/adapters/psxterminal/dto"
	"kse_backend/internal/feature/allocation/usecase"
)

// PSXTerminalMarket はPSX Terminal外部APIから現在価格を取得する
// MarketRepository実装です。
type PSXTerminalMarket struct {
	cfg    Config
	client *http.Client
}

// PSXTerminalMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*PSXTerminalMarket)(nil)

// NewPSXTerminalMarket は指定された設定とHTTPクライアントでPSXTerminalMarketの
// 新しいインスタンスを生成します。
func NewPSXTerminalMarket(cfg Config, client *http.Client) *PSXTerminalMarket {
	return &PSXTerminalMarket{cfg: cfg, client: client}
}

// GetMarketPrices はPSX Terminal APIから市場全体の現在価格を取得し、
// 大文字シンボルから価格へのマップとして返します。
func (p *PSXTerminalMarket) GetMarketPrices(ctx context.Context) (map[string]float64, error) {
	q := url.Values{}
	q.Set("market", p.cfg.Market)

	u := fmt.Sprintf("%s/api/market-data?%s", p.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("psxterminal http %d", res.StatusCode)
	}

	var body dto.MarketDataResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("psxterminal: %s", body.Message)
	}

	prices := make(map[string]float64, len(body.Data))
	for symbol, stock := range body.Data {
		prices[strings.ToUpper(strings.TrimSpace(symbol))] = stock.Price
	}
	return prices, nil
}
