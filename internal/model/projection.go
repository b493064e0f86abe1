package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionPoint is one month of the forward balance series. Actual is
// nil for months without a locked reconciliation — a gap, never zero.
type ProjectionPoint struct {
	Month     time.Time
	Projected decimal.Decimal
	Actual    *decimal.Decimal
}

// TrendDirection classifies the latest reconciled month against its
// straight-line projection.
type TrendDirection string

const (
	TrendNeutral  TrendDirection = "neutral"
	TrendPositive TrendDirection = "positive"
	TrendNegative TrendDirection = "negative"
)

// TrendReport is the outcome of comparing actuals to the projection.
type TrendReport struct {
	Direction TrendDirection

	// HasActuals is false when no month has reconciled data yet.
	HasActuals bool

	// MonthsToStabilize is the estimate reported when the latest actual
	// exactly matches its projection; zero when not applicable or when
	// the net balance is zero (no estimate possible).
	MonthsToStabilize int
}
