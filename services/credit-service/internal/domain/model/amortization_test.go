package model

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func annuity(principal, annualRatePercent float64, n int) float64 {
	r := annualRatePercent / 100 / 12
	f := math.Pow(1+r, float64(n))
	return principal * r * f / (f - 1)
}

func TestComputeAmortization_ZeroRate(t *testing.T) {
	cases := []struct {
		principal float64
		term      int
	}{
		{400_000, 48},
		{1, 1},
		{123_456.78, 7},
		{250_000, 60},
	}
	for _, c := range cases {
		got, err := ComputeAmortization(c.principal, 0, c.term)
		require.NoError(t, err)
		assert.InDelta(t, c.principal/float64(c.term), got.MonthlyPayment, epsilon)
		assert.InDelta(t, 0, got.TotalInterest, 1e-6)
	}
}

func TestComputeAmortization_Positivity(t *testing.T) {
	for _, principal := range []float64{0.01, 1_000, 400_000, 2_500_000} {
		for _, rate := range []float64{0, 0.5, 9.99, 12, 35, 99} {
			for _, term := range []int{1, 6, 12, 48, 84} {
				got, err := ComputeAmortization(principal, rate, term)
				require.NoError(t, err)
				assert.Greater(t, got.MonthlyPayment, 0.0)
				assert.GreaterOrEqual(t, got.TotalPayment, principal-1e-6)
				assert.GreaterOrEqual(t, got.TotalInterest, -1e-6)
			}
		}
	}
}

func TestComputeAmortization_Identity(t *testing.T) {
	got, err := ComputeAmortization(315_000, 14.9, 36)
	require.NoError(t, err)

	assert.Equal(t, got.MonthlyPayment*36, got.TotalPayment)
	assert.Equal(t, got.TotalPayment-315_000, got.TotalInterest)
}

func TestComputeAmortization_ConcreteScenario(t *testing.T) {
	got, err := ComputeAmortization(400_000, 12, 48)
	require.NoError(t, err)

	assert.InDelta(t, 10_533.53, got.MonthlyPayment, 0.01)
	assert.InDelta(t, 505_609.64, got.TotalPayment, 0.01)
	assert.InDelta(t, 105_609.64, got.TotalInterest, 0.01)

	want := annuity(400_000, 12, 48)
	assert.InDelta(t, want, got.MonthlyPayment, 0.01)
	assert.InDelta(t, 0.01, MonthlyRate(12), epsilon)
}

func TestComputeAmortization_TinyRateApproachesZeroRate(t *testing.T) {
	for _, rate := range []float64{1e-14, 1e-10, 1e-6} {
		got, err := ComputeAmortization(1_000, rate, 12)
		require.NoError(t, err, "rate %v", rate)

		assert.False(t, math.IsInf(got.MonthlyPayment, 0), "rate %v", rate)
		assert.InEpsilon(t, 1_000.0/12, got.MonthlyPayment, 1e-6, "rate %v", rate)
		assert.InDelta(t, 0, got.TotalInterest, 1e-3, "rate %v", rate)
	}
}

func TestComputeAmortization_LongTermStaysFinite(t *testing.T) {
	got, err := ComputeAmortization(400_000, 12, 100_000)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(got.MonthlyPayment))
	assert.False(t, math.IsInf(got.TotalPayment, 0))
	// The payment converges to pure interest on the principal.
	assert.InDelta(t, 400_000*MonthlyRate(12), got.MonthlyPayment, 1e-6)
}

func TestComputeAmortization_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		term      int
		field     string
	}{
		{"zero principal", 0, 12, 12, "principal"},
		{"negative principal", -1, 12, 12, "principal"},
		{"NaN principal", math.NaN(), 12, 12, "principal"},
		{"zero term", 1000, 12, 0, "term_months"},
		{"negative term", 1000, 12, -3, "term_months"},
		{"negative rate", 1000, -0.5, 12, "annual_rate_percent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeAmortization(tt.principal, tt.rate, tt.term)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var inv *InvalidInputError
			require.True(t, errors.As(err, &inv))
			assert.Equal(t, tt.field, inv.Field)
			assert.Equal(t, Amortization{}, got)
		})
	}
}

func TestGenerateAmortizationSchedule(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	principal := decimal.NewFromInt(400_000)

	schedule, err := GenerateAmortizationSchedule(principal, 12, 48, start)
	require.NoError(t, err)
	require.Len(t, schedule, 48)

	first := schedule[0]
	assert.Equal(t, 1, first.Period)
	assert.Equal(t, start.AddDate(0, 1, 0), first.DueDate)
	assert.True(t, first.Interest.Equal(decimal.NewFromInt(4_000)), "first interest %s", first.Interest)

	paid := decimal.Zero
	for i, e := range schedule {
		assert.Equal(t, i+1, e.Period)
		assert.True(t, e.Total.Equal(e.Principal.Add(e.Interest)))
		paid = paid.Add(e.Principal)
	}
	assert.True(t, paid.Equal(principal), "principal paid %s", paid)
	assert.True(t, schedule[47].RemainingBalance.IsZero())

	// Every regular row pays the rounded annuity amount.
	want := decimal.NewFromFloat(annuity(400_000, 12, 48)).Round(2)
	assert.True(t, schedule[10].Total.Equal(want), "row total %s, want %s", schedule[10].Total, want)
	assert.True(t, schedule[47].Total.Sub(want).Abs().LessThan(decimal.NewFromInt(1)))
}

func TestGenerateAmortizationSchedule_ZeroRate(t *testing.T) {
	schedule, err := GenerateAmortizationSchedule(decimal.NewFromInt(1_000), 0, 3, time.Now())
	require.NoError(t, err)
	require.Len(t, schedule, 3)

	for _, e := range schedule {
		assert.True(t, e.Interest.IsZero())
	}
	assert.Equal(t, "333.33", schedule[0].Principal.StringFixed(2))
	assert.Equal(t, "333.34", schedule[2].Principal.StringFixed(2))
	assert.True(t, schedule[2].RemainingBalance.IsZero())
}

func TestGenerateAmortizationSchedule_InvalidInput(t *testing.T) {
	_, err := GenerateAmortizationSchedule(decimal.Zero, 12, 12, time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)
}
