// Package psxterminal はPSX Terminal市場データAPIのクライアントを提供します。
package psxterminal

import (
	"os"
	"time"
)

const defaultBaseURL = "https://psxterminal.com"

// Config はPSX Terminal APIクライアントの設定を保持します。
type Config struct {
	BaseURL string        // APIのベースURL
	Market  string        // 取得対象の市場区分（例: "REG" レギュラー市場）
	Timeout time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からPSX Terminalの設定を読み込みます。
func LoadConfig() Config {
	base := os.Getenv("PSX_TERMINAL_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	market := os.Getenv("PSX_TERMINAL_MARKET")
	if market == "" {
		market = "REG"
	}
	return Config{
		BaseURL: base,
		Market:  market,
		Timeout: 10 * time.Second,
	}
}
