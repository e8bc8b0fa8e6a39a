package usecase

import (
	"context"
	"fmt"
	"math"

	"kse_backend/internal/feature/allocation/domain/entity"
	"kse_backend/internal/shared/format"
)

// SecurityRepository は銘柄ユニバースの読み取りレイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SecurityRepository interface {
	// List はインデックス順（選択の同順位判定を決める順序）で
	// アクティブな銘柄を返します。
	List(ctx context.Context) ([]entity.Security, error)
}

// PlanUsecase は加重カバレッジ配分計算のユースケースを定義します。
type PlanUsecase struct {
	securities SecurityRepository
}

// NewPlanUsecase はPlanUsecaseの新しいインスタンスを生成します。
func NewPlanUsecase(securities SecurityRepository) *PlanUsecase {
	return &PlanUsecase{securities: securities}
}

// Plan は投資額をカバレッジ目標までの銘柄バスケットに配分します。
//
// アルゴリズム:
//  1. ユニバース順に重みの累積和を取り、累積がcoverage/100に到達する
//     最初の銘柄までのプレフィックスを選択する（到達銘柄も全体を含む）。
//  2. 選択内で重みを正規化する（adjusted weight）。
//  3. 銘柄ごとに adjusted_weight × amount を価格で割り、端数を切り捨てて
//     整数株数を求める。価格のない銘柄はスキップする。
//
// 端数や価格欠落で生じた残金は他の銘柄へ再配分しません。
// 単一パスの決定的な配分であることを優先した仕様です。
func (u *PlanUsecase) Plan(ctx context.Context, coveragePercent, investmentAmount float64) (entity.AllocationResult, error) {
	if coveragePercent <= 0 || coveragePercent > 100 {
		return entity.AllocationResult{}, fmt.Errorf("%w: got %v", ErrInvalidCoverage, coveragePercent)
	}
	if investmentAmount <= 0 {
		return entity.AllocationResult{}, fmt.Errorf("%w: got %v", ErrInvalidAmount, investmentAmount)
	}

	universe, err := u.securities.List(ctx)
	if err != nil {
		return entity.AllocationResult{}, err
	}
	if err := validateUniverse(universe); err != nil {
		return entity.AllocationResult{}, err
	}

	selected := selectByCoverage(universe, coveragePercent)

	result := entity.AllocationResult{
		Lines:            []entity.AllocationLine{},
		SelectedSymbols:  []string{},
		InvestmentAmount: investmentAmount,
		TargetCoverage:   coveragePercent,
	}
	// 空のユニバースは投資ゼロ・全額残金として扱う
	if len(selected) == 0 {
		result.RemainingCash = format.Round2(investmentAmount)
		return result, nil
	}

	totalWeight := 0.0
	for _, s := range selected {
		totalWeight += s.Weight
		result.SelectedSymbols = append(result.SelectedSymbols, s.Symbol)
	}
	if totalWeight == 0 {
		return entity.AllocationResult{}, ErrNoSelectableWeight
	}

	totalInvested := 0.0
	invested := 0
	for _, s := range selected {
		// 価格がない、または不正な価格の銘柄はスキップ（選択数には含める）
		if !s.HasValidPrice() {
			continue
		}
		price := *s.Price
		adjusted := s.Weight / totalWeight

		allocationAmount := adjusted * investmentAmount
		shares := int64(math.Floor(allocationAmount / price))
		investedAmount := float64(shares) * price
		totalInvested += investedAmount

		if shares > 0 {
			invested++
		}

		result.Lines = append(result.Lines, entity.AllocationLine{
			Symbol:                s.Symbol,
			WeightPercent:         format.Round2(s.Weight * 100),
			AdjustedWeightPercent: format.Round2(adjusted * 100),
			Price:                 price,
			Shares:                shares,
			InvestedAmount:        format.Round2(investedAmount),
		})
	}

	// 残金は銘柄ごとではなく合計から一括で求め、丸め誤差の蓄積を避ける
	result.TotalInvested = format.Round2(totalInvested)
	result.RemainingCash = format.Round2(investmentAmount - totalInvested)
	result.EfficiencyPercent = format.Round2(totalInvested / investmentAmount * 100)
	result.ActualCoverage = format.Round2(totalWeight * 100)
	result.CompaniesSelected = len(selected)
	result.CompaniesInvested = invested

	return result, nil
}

// validateUniverse は銘柄レコードを境界で検証します。
// 不正なレコードはアルゴリズム内部ではなくここで拒否します。
func validateUniverse(universe []entity.Security) error {
	for i, s := range universe {
		if s.Symbol == "" {
			return fmt.Errorf("%w: row %d has no symbol", ErrInvalidSecurity, i)
		}
		if s.Weight <= 0 || s.Weight > 1 {
			return fmt.Errorf("%w: %s has weight %v outside (0, 1]", ErrInvalidSecurity, s.Symbol, s.Weight)
		}
	}
	return nil
}

// selectByCoverage は累積重みがcoverage/100に到達する最初の銘柄までの
// プレフィックスを返します。目標がユニバースの重み合計を超える場合は
// 全銘柄を返します。
func selectByCoverage(universe []entity.Security, coveragePercent float64) []entity.Security {
	target := coveragePercent / 100
	cumulative := 0.0
	for i, s := range universe {
		cumulative += s.Weight
		if cumulative >= target {
			return universe[:i+1]
		}
	}
	return universe
}
