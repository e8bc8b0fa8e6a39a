package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kse_backend/internal/feature/allocation/domain/entity"
	"kse_backend/internal/feature/allocation/transport/handler"
	"kse_backend/internal/feature/allocation/usecase"
)

// mockPlanUsecase はPlanUsecaseインターフェースのモック実装です。
type mockPlanUsecase struct {
	PlanFunc func(ctx context.Context, coverage, amount float64) (entity.AllocationResult, error)
}

func (m *mockPlanUsecase) Plan(ctx context.Context, coverage, amount float64) (entity.AllocationResult, error) {
	return m.PlanFunc(ctx, coverage, amount)
}

// mockRefreshUsecase はRefreshUsecaseインターフェースのモック実装です。
type mockRefreshUsecase struct {
	RefreshFunc func(ctx context.Context) (usecase.RefreshResult, error)
}

func (m *mockRefreshUsecase) Refresh(ctx context.Context) (usecase.RefreshResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return usecase.RefreshResult{Updated: 2, Total: 2}, nil
}

// newTestRouter はテスト用のルータとハンドラを構築します。
func newTestRouter(planner *mockPlanUsecase, refresher *mockRefreshUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewAllocationHandler(planner, refresher)
	router := gin.New()
	router.GET("/calculate-investment", h.Calculate)
	return router
}

// sampleResult はテストで使う計算結果のフィクスチャです。
func sampleResult() entity.AllocationResult {
	return entity.AllocationResult{
		Lines: []entity.AllocationLine{
			{Symbol: "A", WeightPercent: 60, AdjustedWeightPercent: 100, Price: 10, Shares: 100, InvestedAmount: 1000},
		},
		SelectedSymbols:   []string{"A"},
		InvestmentAmount:  1000,
		TotalInvested:     1000,
		RemainingCash:     0,
		EfficiencyPercent: 100,
		TargetCoverage:    50,
		ActualCoverage:    60,
		CompaniesSelected: 1,
		CompaniesInvested: 1,
	}
}

// TestAllocationHandler_Calculate はリクエスト処理とレスポンス構造を検証します。
func TestAllocationHandler_Calculate(t *testing.T) {
	planner := &mockPlanUsecase{
		PlanFunc: func(ctx context.Context, coverage, amount float64) (entity.AllocationResult, error) {
			assert.Equal(t, 50.0, coverage)
			assert.Equal(t, 1000.0, amount)
			return sampleResult(), nil
		},
	}
	router := newTestRouter(planner, &mockRefreshUsecase{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/calculate-investment?coverage_percent=50&investment_amount=1000", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "Updated prices for 2/2 companies")

	plan, ok := body["investment_plan"].([]any)
	require.True(t, ok)
	require.Len(t, plan, 1)
	line := plan[0].(map[string]any)
	assert.Equal(t, "A", line["symbol"])
	assert.Equal(t, float64(100), line["shares"])
	assert.Equal(t, float64(1000), line["invested_amount"])

	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(1000), summary["total_invested"])
	assert.Equal(t, float64(0), summary["remaining_cash"])
	assert.Equal(t, float64(1), summary["companies_invested"])
	assert.NotEmpty(t, body["timestamp"])
}

// TestAllocationHandler_Calculate_RefreshWarning はフィード障害時に
// 警告付きで計算が完了することを検証します。
func TestAllocationHandler_Calculate_RefreshWarning(t *testing.T) {
	planner := &mockPlanUsecase{
		PlanFunc: func(ctx context.Context, coverage, amount float64) (entity.AllocationResult, error) {
			return sampleResult(), nil
		},
	}
	refresher := &mockRefreshUsecase{
		RefreshFunc: func(ctx context.Context) (usecase.RefreshResult, error) {
			return usecase.RefreshResult{}, usecase.ErrFeedUnavailable
		},
	}
	router := newTestRouter(planner, refresher)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/calculate-investment?coverage_percent=50&investment_amount=1000", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "feed failure must not fail the calculation")

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "Price update warning")
}

// TestAllocationHandler_Calculate_BadRequests は入力バリデーションを検証します。
func TestAllocationHandler_Calculate_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		planErr error
	}{
		{name: "missing coverage", url: "/calculate-investment?investment_amount=5000"},
		{name: "non-numeric coverage", url: "/calculate-investment?coverage_percent=abc&investment_amount=5000"},
		{name: "missing amount", url: "/calculate-investment?coverage_percent=20"},
		{name: "amount below minimum", url: "/calculate-investment?coverage_percent=20&investment_amount=999"},
		{
			name:    "coverage out of range",
			url:     "/calculate-investment?coverage_percent=150&investment_amount=5000",
			planErr: usecase.ErrInvalidCoverage,
		},
		{
			name:    "zero selectable weight",
			url:     "/calculate-investment?coverage_percent=20&investment_amount=5000",
			planErr: usecase.ErrNoSelectableWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planner := &mockPlanUsecase{
				PlanFunc: func(ctx context.Context, coverage, amount float64) (entity.AllocationResult, error) {
					if tt.planErr != nil {
						return entity.AllocationResult{}, tt.planErr
					}
					t.Fatal("Plan must not be called for transport-level validation failures")
					return entity.AllocationResult{}, nil
				},
			}
			router := newTestRouter(planner, &mockRefreshUsecase{})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// TestAllocationHandler_Calculate_UpstreamError はストレージ障害が502に
// 変換されることを検証します。
func TestAllocationHandler_Calculate_UpstreamError(t *testing.T) {
	planner := &mockPlanUsecase{
		PlanFunc: func(ctx context.Context, coverage, amount float64) (entity.AllocationResult, error) {
			return entity.AllocationResult{}, errors.New("database unreachable")
		},
	}
	router := newTestRouter(planner, &mockRefreshUsecase{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/calculate-investment?coverage_percent=20&investment_amount=5000", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"database unreachable"}`, w.Body.String())
}
