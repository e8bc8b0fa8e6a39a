package usecase

import (
	"fmt"

	"kse_backend/internal/feature/sip/domain/entity"
	"kse_backend/internal/shared/format"
)

const (
	// MinYears はシミュレーション期間の下限です。
	MinYears = 1
	// MaxYears はシミュレーション期間の上限です。
	MaxYears = 60
	// monthsPerYear は1年あたりの複利計算回数です。
	monthsPerYear = 12
)

// SipUsecase は月次複利のSIPシミュレーションのユースケースを定義します。
type SipUsecase struct{}

// NewSipUsecase はSipUsecaseの新しいインスタンスを生成します。
func NewSipUsecase() *SipUsecase {
	return &SipUsecase{}
}

// Simulate はSIPの残高推移をシミュレートします。
//
// 各年の12ヶ月について、次の順序を厳守して残高を更新します:
//  1. その月の入金前の残高に利息を適用する（入金は翌月から利息が付く）
//  2. 月末に月次積立額を加算する
//
// 年末に1行を出力し、その後に翌年分の月次積立額をyearly_increment_percent分
// 引き上げます（年ごとに掛け算で累積）。initial_balanceが正の場合のみ
// Year 0行を先頭に出力します。
func (u *SipUsecase) Simulate(params entity.SipParameters) (entity.SipResult, error) {
	if err := validateParams(params); err != nil {
		return entity.SipResult{}, err
	}

	balance := params.InitialBalance
	totalDeposits := params.InitialBalance
	totalEarnings := 0.0
	monthlyInvestment := params.MonthlyInvestment
	monthlyRate := params.AnnualInterestRate / 100 / monthsPerYear

	rows := make([]entity.SipRow, 0, params.Years+1)
	if params.InitialBalance > 0 {
		rows = append(rows, entity.SipRow{
			Year:             0,
			YearDeposits:     format.Round2(params.InitialBalance),
			EarningsThisYear: 0,
			TotalDeposits:    format.Round2(totalDeposits),
			AccruedEarnings:  0,
			NetBalance:       format.Round2(balance),
		})
	}

	for year := 1; year <= params.Years; year++ {
		yearDeposits := 0.0
		yearEarnings := 0.0

		for month := 0; month < monthsPerYear; month++ {
			interest := balance * monthlyRate
			balance += interest
			yearEarnings += interest

			balance += monthlyInvestment
			yearDeposits += monthlyInvestment
		}

		totalDeposits += yearDeposits
		totalEarnings += yearEarnings

		rows = append(rows, entity.SipRow{
			Year:             year,
			YearDeposits:     format.Round2(yearDeposits),
			EarningsThisYear: format.Round2(yearEarnings),
			TotalDeposits:    format.Round2(totalDeposits),
			AccruedEarnings:  format.Round2(totalEarnings),
			NetBalance:       format.Round2(balance),
		})

		// 翌年分の積立額を引き上げる
		monthlyInvestment += monthlyInvestment * (params.YearlyIncrementPercent / 100)
	}

	finalCorpus := balance
	profit := finalCorpus - totalDeposits
	growthPercent := 0.0
	if totalDeposits > 0 {
		growthPercent = profit / totalDeposits * 100
	}

	return entity.SipResult{
		Rows: rows,
		Summary: entity.SipSummary{
			FinalCorpus:   format.Round2(finalCorpus),
			TotalDeposits: format.Round2(totalDeposits),
			TotalEarnings: format.Round2(totalEarnings),
			Profit:        format.Round2(profit),
			GrowthPercent: format.Round2(growthPercent),
		},
	}, nil
}

// validateParams はSIPパラメータを境界で検証します。
func validateParams(p entity.SipParameters) error {
	if p.InitialBalance < 0 {
		return fmt.Errorf("%w: initial_balance must be >= 0", ErrInvalidSipParams)
	}
	if p.Years < MinYears || p.Years > MaxYears {
		return fmt.Errorf("%w: years must be between %d and %d", ErrInvalidSipParams, MinYears, MaxYears)
	}
	if p.AnnualInterestRate <= 0 {
		return fmt.Errorf("%w: annual_interest_rate must be > 0", ErrInvalidSipParams)
	}
	if p.MonthlyInvestment < 0 {
		return fmt.Errorf("%w: monthly_investment must be >= 0", ErrInvalidSipParams)
	}
	if p.YearlyIncrementPercent < 0 {
		return fmt.Errorf("%w: yearly_increment_percent must be >= 0", ErrInvalidSipParams)
	}
	return nil
}
