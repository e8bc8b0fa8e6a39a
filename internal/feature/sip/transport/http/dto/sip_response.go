// Package dto はsipフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// SipRow は1年分のシミュレーション結果を表すレスポンスDTOです。
type SipRow struct {
	Year             int     `json:"year"`
	YearDeposits     float64 `json:"year_deposits"`
	EarningsThisYear float64 `json:"earnings_this_year"`
	TotalDeposits    float64 `json:"total_deposits"`
	AccruedEarnings  float64 `json:"accrued_earnings"`
	NetBalance       float64 `json:"net_balance"`
}

// SipSummary はシミュレーションのサマリです。crore/lac整形済みの
// 表示用文字列も併せて返します。
type SipSummary struct {
	FinalCorpus            float64 `json:"final_corpus"`
	TotalDeposits          float64 `json:"total_deposits"`
	TotalEarnings          float64 `json:"total_earnings"`
	Profit                 float64 `json:"profit"`
	GrowthPercent          float64 `json:"growth_percent"`
	FinalCorpusFormatted   string  `json:"final_corpus_formatted"`
	TotalDepositsFormatted string  `json:"total_deposits_formatted"`
	TotalEarningsFormatted string  `json:"total_earnings_formatted"`
	ProfitFormatted        string  `json:"profit_formatted"`
}

// SipResponse は/sipエンドポイントのレスポンスです。
type SipResponse struct {
	Success   bool       `json:"success"`
	Rows      []SipRow   `json:"rows"`
	Summary   SipSummary `json:"summary"`
	Timestamp string     `json:"timestamp"`
}
