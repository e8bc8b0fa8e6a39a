// Package dto はallocationフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// StockAllocation は投資計画の1行を表すレスポンスDTOです。
type StockAllocation struct {
	Symbol                string  `json:"symbol"`                  // 銘柄シンボル
	WeightPercent         float64 `json:"weight_percent"`          // 指数内の生の重み（%）
	AdjustedWeightPercent float64 `json:"adjusted_weight_percent"` // 選択内で正規化した重み（%）
	Price                 float64 `json:"price"`                   // 計算に使用した価格
	Shares                int64   `json:"shares"`                  // 購入株数（整数）
	InvestedAmount        float64 `json:"invested_amount"`         // 実投資額
}

// InvestmentSummary は配分計算のサマリです。
type InvestmentSummary struct {
	TotalInvestmentAmount       float64 `json:"total_investment_amount"`
	TotalInvested               float64 `json:"total_invested"`
	RemainingCash               float64 `json:"remaining_cash"`
	InvestmentEfficiencyPercent float64 `json:"investment_efficiency_percent"`
	CompaniesSelected           int     `json:"companies_selected"`
	CompaniesInvested           int     `json:"companies_invested"`
	TargetCoveragePercent       float64 `json:"target_coverage_percent"`
	ActualCoveragePercent       float64 `json:"actual_coverage_percent"`
}

// InvestmentResponse は/calculate-investmentエンドポイントのレスポンスです。
type InvestmentResponse struct {
	Success           bool              `json:"success"`
	Message           string            `json:"message"`
	InvestmentPlan    []StockAllocation `json:"investment_plan"`
	Summary           InvestmentSummary `json:"summary"`
	SelectedCompanies []string          `json:"selected_companies"`
	Timestamp         string            `json:"timestamp"`
}
