package psxterminal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMarket はhttptestサーバーを指すクライアントを生成します。
func newTestMarket(t *testing.T, handler http.HandlerFunc) *PSXTerminalMarket {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := Config{BaseURL: srv.URL, Market: "REG", Timeout: 2 * time.Second}
	return NewPSXTerminalMarket(cfg, srv.Client())
}

// TestPSXTerminalMarket_GetMarketPrices は正常レスポンスのパースを検証します。
func TestPSXTerminalMarket_GetMarketPrices(t *testing.T) {
	t.Parallel()

	market := newTestMarket(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/market-data", r.URL.Path)
		assert.Equal(t, "REG", r.URL.Query().Get("market"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"ogdc":{"price":214.37,"volume":120000},"LUCK":{"price":1025.5}," mari ":{"price":512.8}}}`))
	})

	got, err := market.GetMarketPrices(context.Background())
	require.NoError(t, err)

	// キーは大文字化・空白除去される
	assert.Equal(t, map[string]float64{
		"OGDC": 214.37,
		"LUCK": 1025.5,
		"MARI": 512.8,
	}, got)
}

// TestPSXTerminalMarket_GetMarketPrices_Errors は異常系のエラー伝播を検証します。
func TestPSXTerminalMarket_GetMarketPrices_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantMsg string
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantMsg: "psxterminal http 502",
		},
		{
			name: "feed-reported error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":"error","message":"market closed"}`))
			},
			wantMsg: "psxterminal: market closed",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			},
			wantMsg: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			market := newTestMarket(t, tt.handler)

			_, err := market.GetMarketPrices(context.Background())
			require.Error(t, err)
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}

// TestLoadConfig_Defaults は環境変数未設定時のデフォルト値を検証します。
func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PSX_TERMINAL_BASE_URL", "")
	t.Setenv("PSX_TERMINAL_MARKET", "")

	cfg := LoadConfig()
	assert.Equal(t, "https://psxterminal.com", cfg.BaseURL)
	assert.Equal(t, "REG", cfg.Market)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}
