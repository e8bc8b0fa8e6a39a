// Package entity defines the domain models for the sip feature.
package entity

// SipParameters holds the inputs of a systematic-investment-plan projection.
type SipParameters struct {
	InitialBalance         float64 // Lump-sum at Year 0, >= 0
	Years                  int     // Projection horizon in years, 1..60
	AnnualInterestRate     float64 // Expected annual return in percent, > 0
	MonthlyInvestment      float64 // Monthly contribution for Year 1, >= 0
	YearlyIncrementPercent float64 // Annual escalation of the monthly contribution in percent, >= 0
}

// SipRow is one simulated year of the projection. Year 0 carries the
// initial lump-sum and appears only when the initial balance is positive.
type SipRow struct {
	Year             int     // 0..Years
	YearDeposits     float64 // Contributions made during this year
	EarningsThisYear float64 // Interest earned during this year
	TotalDeposits    float64 // Cumulative contributions including the initial balance
	AccruedEarnings  float64 // Cumulative interest
	NetBalance       float64 // Balance at the end of this year
}

// SipSummary aggregates the projection outcome.
type SipSummary struct {
	FinalCorpus   float64 // Last row's net balance
	TotalDeposits float64 // All contributions including the initial balance
	TotalEarnings float64 // All interest earned
	Profit        float64 // FinalCorpus - TotalDeposits
	GrowthPercent float64 // Profit / TotalDeposits * 100, 0 when no deposits
}

// SipResult is the full projection: yearly rows plus the summary.
type SipResult struct {
	Rows    []SipRow
	Summary SipSummary
}
