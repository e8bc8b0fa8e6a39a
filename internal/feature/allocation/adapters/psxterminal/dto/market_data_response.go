// Package dto はPSX Terminal APIレスポンスのデータ転送オブジェクトを定義します。
package dto

// MarketDataResponse はmarket-dataエンドポイントからのJSONレスポンスを表します。
// データ本体はシンボルをキーとするオブジェクトです。
type MarketDataResponse struct {
	Status  string                 `json:"status,omitempty"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]MarketStock `json:"data"`
}

// MarketStock は1銘柄分の市場データです。利用するのは現在価格のみです。
type MarketStock struct {
	Price  float64 `json:"price"`
	Change float64 `json:"change,omitempty"`
	Volume int64   `json:"volume,omitempty"`
}
