// Package handler はallocationフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"kse_backend/internal/api"
	"kse_backend/internal/feature/allocation/domain/entity"
	"kse_backend/internal/feature/allocation/transport/http/dto"
	"kse_backend/internal/feature/allocation/usecase"
)

// MinInvestmentAmount はAPIが受け付ける最低投資額（PKR）です。
const MinInvestmentAmount = 1000

// PlanUsecase は配分計算のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PlanUsecase interface {
	Plan(ctx context.Context, coveragePercent, investmentAmount float64) (entity.AllocationResult, error)
}

// RefreshUsecase は価格更新のユースケースインターフェースを定義します。
type RefreshUsecase interface {
	Refresh(ctx context.Context) (usecase.RefreshResult, error)
}

// AllocationHandler は配分計算のHTTPリクエストを処理します。
type AllocationHandler struct {
	planner   PlanUsecase
	refresher RefreshUsecase
}

// NewAllocationHandler は指定されたusecaseでAllocationHandlerの新しいインスタンスを生成します。
func NewAllocationHandler(planner PlanUsecase, refresher RefreshUsecase) *AllocationHandler {
	return &AllocationHandler{planner: planner, refresher: refresher}
}

// Calculate はKSE-100の投資配分計算APIを処理します。
//
// エンドポイント例:
// GET /calculate-investment?coverage_percent=20&investment_amount=100000
//
// 計算前に価格フィードの更新を試みます。フィード障害は致命的ではなく、
// 直近の価格で計算を継続し、レスポンスメッセージに警告を含めます。
func (h *AllocationHandler) Calculate(c *gin.Context) {
	coverage, err := strconv.ParseFloat(c.Query("coverage_percent"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "coverage_percent must be a number"})
		return
	}
	amount, err := strconv.ParseFloat(c.Query("investment_amount"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "investment_amount must be a number"})
		return
	}
	if amount < MinInvestmentAmount {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "investment_amount must be at least 1000"})
		return
	}

	ctx := c.Request.Context()

	// 価格更新はベストエフォート。失敗しても直近の価格で計算を続ける
	message := "Investment calculation completed successfully"
	if refresh, err := h.refresher.Refresh(ctx); err != nil {
		slog.Warn("price refresh failed, using last known prices", "error", err)
		message += " | Price update warning: " + err.Error()
	} else {
		message += " | " + refresh.Message()
	}

	result, err := h.planner.Plan(ctx, coverage, amount)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCoverage),
			errors.Is(err, usecase.ErrInvalidAmount),
			errors.Is(err, usecase.ErrInvalidSecurity),
			errors.Is(err, usecase.ErrNoSelectableWeight):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("allocation failed", "error", err)
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, toResponse(result, message))
}

// toResponse はドメインの計算結果をレスポンスDTOに変換します。
func toResponse(result entity.AllocationResult, message string) dto.InvestmentResponse {
	plan := make([]dto.StockAllocation, 0, len(result.Lines))
	for _, line := range result.Lines {
		plan = append(plan, dto.StockAllocation{
			Symbol:                line.Symbol,
			WeightPercent:         line.WeightPercent,
			AdjustedWeightPercent: line.AdjustedWeightPercent,
			Price:                 line.Price,
			Shares:                line.Shares,
			InvestedAmount:        line.InvestedAmount,
		})
	}

	return dto.InvestmentResponse{
		Success:        true,
		Message:        message,
		InvestmentPlan: plan,
		Summary: dto.InvestmentSummary{
			TotalInvestmentAmount:       result.InvestmentAmount,
			TotalInvested:               result.TotalInvested,
			RemainingCash:               result.RemainingCash,
			InvestmentEfficiencyPercent: result.EfficiencyPercent,
			CompaniesSelected:           result.CompaniesSelected,
			CompaniesInvested:           result.CompaniesInvested,
			TargetCoveragePercent:       result.TargetCoverage,
			ActualCoveragePercent:       result.ActualCoverage,
		},
		SelectedCompanies: result.SelectedSymbols,
		Timestamp:         time.Now().Format(time.RFC3339),
	}
}
