// Package handler はsipフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"kse_backend/internal/api"
	"kse_backend/internal/feature/sip/domain/entity"
	"kse_backend/internal/feature/sip/transport/http/dto"
	"kse_backend/internal/feature/sip/usecase"
	"kse_backend/internal/shared/format"
)

// SipUsecase はSIPシミュレーションのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SipUsecase interface {
	Simulate(params entity.SipParameters) (entity.SipResult, error)
}

// SipHandler はSIPシミュレーションのHTTPリクエストを処理します。
type SipHandler struct {
	uc SipUsecase
}

// NewSipHandler は指定されたusecaseでSipHandlerの新しいインスタンスを生成します。
func NewSipHandler(uc SipUsecase) *SipHandler {
	return &SipHandler{uc: uc}
}

// Simulate はSIP計算APIを処理します。
//
// エンドポイント例:
// GET /sip?initial_balance=10000&years=20&annual_interest_rate=16&monthly_investment=5000&yearly_increment_percent=10
//
// years・annual_interest_rate・monthly_investmentは必須、
// initial_balanceとyearly_increment_percentは省略時0です。
func (h *SipHandler) Simulate(c *gin.Context) {
	params, err := parseParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.uc.Simulate(params)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidSipParams) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toResponse(result))
}

// parseParams はクエリパラメータをSipParametersに変換します。
func parseParams(c *gin.Context) (entity.SipParameters, error) {
	var params entity.SipParameters
	var err error

	params.InitialBalance, err = strconv.ParseFloat(c.DefaultQuery("initial_balance", "0"), 64)
	if err != nil {
		return params, errors.New("initial_balance must be a number")
	}
	params.Years, err = strconv.Atoi(c.Query("years"))
	if err != nil {
		return params, errors.New("years must be an integer")
	}
	params.AnnualInterestRate, err = strconv.ParseFloat(c.Query("annual_interest_rate"), 64)
	if err != nil {
		return params, errors.New("annual_interest_rate must be a number")
	}
	params.MonthlyInvestment, err = strconv.ParseFloat(c.Query("monthly_investment"), 64)
	if err != nil {
		return params, errors.New("monthly_investment must be a number")
	}
	params.YearlyIncrementPercent, err = strconv.ParseFloat(c.DefaultQuery("yearly_increment_percent", "0"), 64)
	if err != nil {
		return params, errors.New("yearly_increment_percent must be a number")
	}

	return params, nil
}

// toResponse はドメインのシミュレーション結果をレスポンスDTOに変換します。
func toResponse(result entity.SipResult) dto.SipResponse {
	rows := make([]dto.SipRow, 0, len(result.Rows))
	for _, r := range result.Rows {
		rows = append(rows, dto.SipRow{
			Year:             r.Year,
			YearDeposits:     r.YearDeposits,
			EarningsThisYear: r.EarningsThisYear,
			TotalDeposits:    r.TotalDeposits,
			AccruedEarnings:  r.AccruedEarnings,
			NetBalance:       r.NetBalance,
		})
	}

	s := result.Summary
	return dto.SipResponse{
		Success: true,
		Rows:    rows,
		Summary: dto.SipSummary{
			FinalCorpus:            s.FinalCorpus,
			TotalDeposits:          s.TotalDeposits,
			TotalEarnings:          s.TotalEarnings,
			Profit:                 s.Profit,
			GrowthPercent:          s.GrowthPercent,
			FinalCorpusFormatted:   format.CroreLac(s.FinalCorpus),
			TotalDepositsFormatted: format.CroreLac(s.TotalDeposits),
			TotalEarningsFormatted: format.CroreLac(s.TotalEarnings),
			ProfitFormatted:        format.CroreLac(s.Profit),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
