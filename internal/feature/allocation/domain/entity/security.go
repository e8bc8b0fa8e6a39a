// Package entity defines the domain models for the allocation feature.
package entity

// Security represents one entry of the investable index universe.
// The universe is an ordered, immutable sequence for a single allocation
// run; derived values (cumulative and adjusted weights) are computed into
// per-run views and never written back.
type Security struct {
	Symbol string   // Ticker symbol (e.g., "OGDC", "LUCK"); matched case-insensitively against price feeds
	Weight float64  // Fractional index weight, 0 < weight <= 1
	Price  *float64 // Last known quoted price; nil when no valid quote exists
}

// HasValidPrice returns true if the security carries a positive quoted price.
// Securities without a valid price stay in the universe but receive no
// allocation.
func (s Security) HasValidPrice() bool {
	return s.Price != nil && *s.Price > 0
}

// AllocationLine is one security's result within an allocation run.
type AllocationLine struct {
	Symbol                string  // Ticker symbol
	WeightPercent         float64 // Raw index weight in percent
	AdjustedWeightPercent float64 // Weight renormalized over the selection, in percent
	Price                 float64 // Price used for the run
	Shares                int64   // Whole shares bought, never negative
	InvestedAmount        float64 // Shares * price, rounded to 2 decimals
}

// AllocationResult aggregates a full allocation run.
type AllocationResult struct {
	Lines             []AllocationLine // One line per priced selected security, in selection order
	SelectedSymbols   []string         // All selected symbols, including unpriced ones
	InvestmentAmount  float64          // Requested amount
	TotalInvested     float64          // Sum of invested amounts, rounded to 2 decimals
	RemainingCash     float64          // InvestmentAmount - TotalInvested (fractional-share leftover)
	EfficiencyPercent float64          // TotalInvested / InvestmentAmount * 100
	TargetCoverage    float64          // Requested coverage percent
	ActualCoverage    float64          // Sum of selected raw weights, in percent
	CompaniesSelected int              // Count of selected securities
	CompaniesInvested int              // Count with shares > 0
}
