package model

import "github.com/shopspring/decimal"

// FinanceSettings is the single per-user planning configuration record.
type FinanceSettings struct {
	// SalaryPaymentDay anchors the monthly cycle, 1-31.
	SalaryPaymentDay int

	// FundingTarget is the explicit funding goal. Zero means "derive the
	// target from goals"; any positive value switches to custom mode.
	FundingTarget decimal.Decimal

	// MonthlyAllocation is the user's declared monthly contribution.
	MonthlyAllocation decimal.Decimal

	// AlreadyFunded counts toward the financed amount only when not in
	// custom mode.
	AlreadyFunded decimal.Decimal
}

// CustomMode reports whether an explicit funding target is set.
func (s FinanceSettings) CustomMode() bool {
	return s.FundingTarget.IsPositive()
}

// DefaultSettings returns the settings used before first setup.
func DefaultSettings() FinanceSettings {
	return FinanceSettings{SalaryPaymentDay: 1}
}
