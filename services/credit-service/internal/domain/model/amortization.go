package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Amortization holds the payment figures of a fixed-rate, fully amortizing
// loan. Values keep full float64 precision; round only for display.
type Amortization struct {
	MonthlyPayment float64
	TotalPayment   float64
	TotalInterest  float64
}

// MonthlyRate converts a nominal annual percentage into the periodic rate
// used by the annuity formula.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}

// ComputeAmortization returns the fixed monthly payment and derived totals:
//
//	r       = annualRatePercent / 100 / 12
//	payment = P / n                           when r == 0
//	payment = P * r / (1 - (1+r)^-n)         otherwise
//
// (1+r)^-n - 1 is evaluated as expm1(-n*log1p(r)) so tiny rates keep their
// precision and long terms never overflow. Non-positive principal or term,
// negative rates and non-finite results are rejected with an *InvalidInputError.
func ComputeAmortization(principal, annualRatePercent float64, termMonths int) (Amortization, error) {
	switch {
	case math.IsNaN(principal) || principal <= 0:
		return Amortization{}, NewInvalidInput("principal", "must be positive, got %v", principal)
	case termMonths <= 0:
		return Amortization{}, NewInvalidInput("term_months", "must be positive, got %d", termMonths)
	case math.IsNaN(annualRatePercent) || annualRatePercent < 0:
		return Amortization{}, NewInvalidInput("annual_rate_percent", "must not be negative, got %v", annualRatePercent)
	}

	n := float64(termMonths)
	r := MonthlyRate(annualRatePercent)

	monthly := principal / n
	if r > 0 {
		if denom := -math.Expm1(-n * math.Log1p(r)); denom > 0 {
			monthly = principal * r / denom
		}
	}

	total := monthly * n
	if math.IsInf(total, 0) || math.IsNaN(total) || monthly <= 0 {
		return Amortization{}, NewInvalidInput("principal", "payment for %v over %d months is not representable", principal, termMonths)
	}
	return Amortization{
		MonthlyPayment: monthly,
		TotalPayment:   total,
		TotalInterest:  total - principal,
	}, nil
}

// AmortizationEntry is an immutable value object representing one period in an
// amortization schedule.
type AmortizationEntry struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}

// GenerateAmortizationSchedule expands ComputeAmortization into per-period
// rows rounded to cents. The first payment is due one month after start and
// the last period absorbs rounding so the balance closes at exactly zero.
func GenerateAmortizationSchedule(
	principal decimal.Decimal,
	annualRatePercent float64,
	termMonths int,
	start time.Time,
) ([]AmortizationEntry, error) {
	amort, err := ComputeAmortization(principal.InexactFloat64(), annualRatePercent, termMonths)
	if err != nil {
		return nil, err
	}

	payment := decimal.NewFromFloat(amort.MonthlyPayment).Round(2)
	rate := decimal.NewFromFloat(MonthlyRate(annualRatePercent))
	remaining := principal.Round(2)

	schedule := make([]AmortizationEntry, 0, termMonths)
	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(rate).Round(2)
		principalPart := payment.Sub(interest)

		if period == termMonths || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}
		remaining = remaining.Sub(principalPart)

		schedule = append(schedule, AmortizationEntry{
			Period:           period,
			DueDate:          start.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule, nil
}
