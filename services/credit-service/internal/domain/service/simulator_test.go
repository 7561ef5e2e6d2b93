package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func lender(t *testing.T, id string, rate float64, minTerm, maxTerm int, active bool) model.LenderOffer {
	t.Helper()
	l, err := model.NewLenderOffer(id, "Bank "+id, model.LenderTerms{
		AnnualRatePercent:  rate,
		MinTermMonths:      minTerm,
		MaxTermMonths:      maxTerm,
		ProcessingTimeDays: 2,
	}, active, testNow)
	require.NoError(t, err)
	return l
}

func ids(offers []model.LenderOffer) []string {
	out := make([]string, len(offers))
	for i, o := range offers {
		out[i] = o.ID()
	}
	return out
}

func resultIDs(results []model.SimulationResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Lender.ID()
	}
	return out
}

// ---------------------------------------------------------------------------
// FilterEligible
// ---------------------------------------------------------------------------

func TestFilterEligible(t *testing.T) {
	offers := []model.LenderOffer{
		lender(t, "a", 10, 12, 36, true),
		lender(t, "b", 11, 12, 60, false),
		lender(t, "c", 12, 48, 72, true),
		lender(t, "d", 13, 24, 48, true),
	}

	assert.Equal(t, []string{"a", "d"}, ids(FilterEligible(offers, 24)))
	assert.Equal(t, []string{"c", "d"}, ids(FilterEligible(offers, 48)))
	assert.Empty(t, FilterEligible(offers, 100))
	assert.Empty(t, FilterEligible(nil, 12))
	assert.NotNil(t, FilterEligible(nil, 12))
}

func TestFilterEligible_Monotonic(t *testing.T) {
	l := lender(t, "a", 10, 12, 36, true)
	require.Len(t, FilterEligible([]model.LenderOffer{l}, 24), 1)

	for term := l.MinTermMonths(); term <= l.MaxTermMonths(); term++ {
		assert.Len(t, FilterEligible([]model.LenderOffer{l}, term), 1, "term %d", term)
	}
	assert.Empty(t, FilterEligible([]model.LenderOffer{l}, l.MinTermMonths()-1))
	assert.Empty(t, FilterEligible([]model.LenderOffer{l}, l.MaxTermMonths()+1))
}

// ---------------------------------------------------------------------------
// Rank
// ---------------------------------------------------------------------------

func TestRank_AscendingByRate(t *testing.T) {
	offers := []model.LenderOffer{
		lender(t, "a", 14.5, 12, 60, true),
		lender(t, "b", 9.9, 12, 60, true),
		lender(t, "c", 0, 12, 60, true),
		lender(t, "d", 22, 12, 60, true),
		lender(t, "e", 11.25, 12, 60, true),
	}

	ranked := Rank(offers, 0)
	require.Len(t, ranked, 5)
	for i := 0; i+1 < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i].AnnualRatePercent(), ranked[i+1].AnnualRatePercent())
	}
	assert.Equal(t, []string{"c", "b", "e", "a", "d"}, ids(ranked))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(offers), "input order is preserved")
}

func TestRank_StableTieBreak(t *testing.T) {
	offers := []model.LenderOffer{
		lender(t, "z", 12, 12, 60, true),
		lender(t, "m", 10, 12, 60, true),
		lender(t, "a", 12, 12, 60, true),
		lender(t, "k", 12, 12, 60, true),
	}
	assert.Equal(t, []string{"m", "z", "a", "k"}, ids(Rank(offers, 0)))
}

func TestRank_Limit(t *testing.T) {
	offers := []model.LenderOffer{
		lender(t, "a", 3, 12, 60, true),
		lender(t, "b", 2, 12, 60, true),
		lender(t, "c", 1, 12, 60, true),
	}
	tests := []struct {
		limit int
		want  []string
	}{
		{0, []string{"c", "b", "a"}},
		{-1, []string{"c", "b", "a"}},
		{1, []string{"c"}},
		{2, []string{"c", "b"}},
		{10, []string{"c", "b", "a"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit=%d", tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Rank(offers, tt.limit)))
		})
	}
	assert.Empty(t, Rank(nil, 3))
}

// ---------------------------------------------------------------------------
// SimulateForLender
// ---------------------------------------------------------------------------

func TestSimulateForLender_Eligible(t *testing.T) {
	sim := NewCreditSimulator()
	l := lender(t, "banorte", 12, 12, 60, true)
	req := model.SimulationRequest{VehiclePrice: 450_000, DownPayment: 50_000, TermMonths: 48, Lender: model.SpecificLender("banorte")}

	res, err := sim.SimulateForLender(req, l)
	require.NoError(t, err)

	want, err := model.ComputeAmortization(400_000, 12, 48)
	require.NoError(t, err)

	assert.True(t, res.Eligible)
	assert.Equal(t, 400_000.0, res.FinancedAmount)
	assert.Equal(t, 48, res.TermMonths)
	assert.Equal(t, "banorte", res.Lender.ID())
	require.NotNil(t, res.Payment)
	assert.Equal(t, want, *res.Payment)
}

func TestSimulateForLender_Ineligible(t *testing.T) {
	sim := NewCreditSimulator()

	tests := []struct {
		name   string
		lender model.LenderOffer
		req    model.SimulationRequest
	}{
		{
			name:   "term above range",
			lender: lender(t, "a", 12, 12, 36, true),
			req:    model.SimulationRequest{VehiclePrice: 400_000, TermMonths: 48},
		},
		{
			name:   "term above range at zero rate",
			lender: lender(t, "a", 0, 12, 36, true),
			req:    model.SimulationRequest{VehiclePrice: 400_000, TermMonths: 48},
		},
		{
			name:   "term below range",
			lender: lender(t, "a", 12, 12, 36, true),
			req:    model.SimulationRequest{VehiclePrice: 400_000, TermMonths: 6},
		},
		{
			name:   "inactive lender",
			lender: lender(t, "a", 12, 12, 36, false),
			req:    model.SimulationRequest{VehiclePrice: 400_000, TermMonths: 24},
		},
		{
			name:   "down payment covers price",
			lender: lender(t, "a", 12, 12, 36, true),
			req:    model.SimulationRequest{VehiclePrice: 400_000, DownPayment: 400_000, TermMonths: 24},
		},
		{
			name:   "down payment above price",
			lender: lender(t, "a", 12, 12, 36, true),
			req:    model.SimulationRequest{VehiclePrice: 400_000, DownPayment: 500_000, TermMonths: 24},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := sim.SimulateForLender(tt.req, tt.lender)
			require.NoError(t, err)
			assert.False(t, res.Eligible)
			assert.Nil(t, res.Payment)
		})
	}
}

func TestSimulateForLender_NegativeRateFromStorage(t *testing.T) {
	corrupt := model.ReconstructLenderOffer("x", "X", model.LenderTerms{
		AnnualRatePercent: -3, MinTermMonths: 12, MaxTermMonths: 24, ProcessingTimeDays: 1,
	}, true, 1, testNow, testNow)

	_, err := NewCreditSimulator().SimulateForLender(model.SimulationRequest{VehiclePrice: 1000, TermMonths: 12}, corrupt)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

// ---------------------------------------------------------------------------
// FindBestMatches
// ---------------------------------------------------------------------------

func TestFindBestMatches_TopN(t *testing.T) {
	sim := NewCreditSimulator()
	offers := []model.LenderOffer{
		lender(t, "hsbc", 15.9, 12, 60, true),
		lender(t, "bbva", 11.5, 12, 60, true),
		lender(t, "santander", 13.2, 12, 60, true),
		lender(t, "banorte", 10.9, 12, 60, true),
		lender(t, "scotiabank", 17.0, 12, 60, true),
	}
	req := model.SimulationRequest{VehiclePrice: 380_000, DownPayment: 80_000, TermMonths: 36}

	results, err := sim.FindBestMatches(req, offers, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"banorte", "bbva", "santander"}, resultIDs(results))

	for i, r := range results {
		assert.True(t, r.Eligible)
		require.NotNil(t, r.Payment)
		if i > 0 {
			assert.LessOrEqual(t, results[i-1].Lender.AnnualRatePercent(), r.Lender.AnnualRatePercent())
			assert.LessOrEqual(t, results[i-1].Payment.MonthlyPayment, r.Payment.MonthlyPayment)
		}
	}
}

func TestFindBestMatches_DefaultTopN(t *testing.T) {
	sim := NewCreditSimulator()
	var offers []model.LenderOffer
	for i := 0; i < 6; i++ {
		offers = append(offers, lender(t, fmt.Sprintf("l%d", i), float64(20-i), 12, 60, true))
	}
	req := model.SimulationRequest{VehiclePrice: 200_000, TermMonths: 24}

	results, err := sim.FindBestMatches(req, offers, 0)
	require.NoError(t, err)
	assert.Len(t, results, DefaultTopN)
	assert.Equal(t, []string{"l5", "l4", "l3"}, resultIDs(results))
}

func TestFindBestMatches_NoMatch(t *testing.T) {
	sim := NewCreditSimulator()
	req := model.SimulationRequest{VehiclePrice: 300_000, DownPayment: 30_000, TermMonths: 84}

	t.Run("no lenders", func(t *testing.T) {
		results, err := sim.FindBestMatches(req, nil, 3)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("none active", func(t *testing.T) {
		results, err := sim.FindBestMatches(req, []model.LenderOffer{lender(t, "a", 9, 12, 96, false)}, 3)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("none covers term", func(t *testing.T) {
		offers := []model.LenderOffer{lender(t, "a", 9, 12, 60, true), lender(t, "b", 8, 6, 72, true)}
		results, err := sim.FindBestMatches(req, offers, 3)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("nothing financed", func(t *testing.T) {
		full := model.SimulationRequest{VehiclePrice: 300_000, DownPayment: 300_000, TermMonths: 24}
		results, err := sim.FindBestMatches(full, []model.LenderOffer{lender(t, "a", 9, 12, 60, true)}, 3)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestFindBestMatches_SkipsIneligibleBeforeRanking(t *testing.T) {
	sim := NewCreditSimulator()
	offers := []model.LenderOffer{
		lender(t, "cheap-short", 5, 6, 24, true),
		lender(t, "cheap-off", 6, 12, 60, false),
		lender(t, "mid", 12, 12, 60, true),
		lender(t, "high", 18, 12, 60, true),
	}
	results, err := sim.FindBestMatches(model.SimulationRequest{VehiclePrice: 100_000, TermMonths: 48}, offers, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"mid", "high"}, resultIDs(results))
}

func TestSimulateAll(t *testing.T) {
	sim := NewCreditSimulator()
	offers := []model.LenderOffer{
		lender(t, "a", 14, 12, 60, true),
		lender(t, "b", 9, 12, 60, true),
		lender(t, "c", 11, 12, 60, true),
		lender(t, "d", 10, 12, 60, true),
		lender(t, "e", 12, 12, 24, true),
	}
	results, err := sim.SimulateAll(model.SimulationRequest{VehiclePrice: 100_000, TermMonths: 36}, offers)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d", "c", "a"}, resultIDs(results))
}

func TestCreditSimulator_ConcurrentUse(t *testing.T) {
	sim := NewCreditSimulator()
	offers := []model.LenderOffer{
		lender(t, "a", 14, 12, 60, true),
		lender(t, "b", 9, 12, 60, true),
		lender(t, "c", 11, 12, 60, true),
	}
	req := model.SimulationRequest{VehiclePrice: 250_000, DownPayment: 25_000, TermMonths: 48}
	want, err := sim.FindBestMatches(req, offers, 2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := sim.FindBestMatches(req, offers, 2)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
