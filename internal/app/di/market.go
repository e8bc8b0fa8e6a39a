// Package di provides dependency injection factories for creating application components.
package di

import (
	"kse_backend/internal/feature/allocation/adapters/psxterminal"
	infrahttp "kse_backend/internal/platform/http"
)

// NewMarket creates a fully configured PSXTerminalMarket with HTTP client.
func NewMarket() *psxterminal.PSXTerminalMarket {
	cfg := psxterminal.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return psxterminal.NewPSXTerminalMarket(cfg, httpClient)
}
