package service

import (
	"fmt"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
)

// DefaultTopN is the shortlist length used when callers do not ask for one.
const DefaultTopN = 3

// ---------------------------------------------------------------------------
// CreditSimulator – stateless domain service
// ---------------------------------------------------------------------------

// CreditSimulator combines the amortization math with lender eligibility and
// ranking. It holds no state and is safe for concurrent use.
type CreditSimulator struct{}

// NewCreditSimulator returns a new simulator instance.
func NewCreditSimulator() *CreditSimulator {
	return &CreditSimulator{}
}

// SimulateForLender prices req against a single lender. Non-positive
// financed amounts, uncovered terms and inactive lenders yield an ineligible
// result with no payment figures; only amortization input errors are
// returned as errors.
func (s *CreditSimulator) SimulateForLender(req model.SimulationRequest, lender model.LenderOffer) (model.SimulationResult, error) {
	financed := req.FinancedAmount()
	if financed <= 0 || !lender.EligibleFor(req.TermMonths) {
		return model.IneligibleResult(lender, financed, req.TermMonths), nil
	}

	amort, err := model.ComputeAmortization(financed, lender.AnnualRatePercent(), req.TermMonths)
	if err != nil {
		return model.SimulationResult{}, fmt.Errorf("simulate lender %s: %w", lender.ID(), err)
	}
	return model.EligibleResult(lender, financed, req.TermMonths, amort), nil
}

// FindBestMatches filters offers to those eligible for req.TermMonths, ranks
// them by rate and simulates the first topN. topN <= 0 uses DefaultTopN. An
// empty slice means no lender matches.
func (s *CreditSimulator) FindBestMatches(req model.SimulationRequest, offers []model.LenderOffer, topN int) ([]model.SimulationResult, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if req.FinancedAmount() <= 0 {
		return []model.SimulationResult{}, nil
	}
	return s.simulateRanked(req, Rank(FilterEligible(offers, req.TermMonths), topN))
}

// SimulateAll is FindBestMatches without the shortlist cap.
func (s *CreditSimulator) SimulateAll(req model.SimulationRequest, offers []model.LenderOffer) ([]model.SimulationResult, error) {
	if req.FinancedAmount() <= 0 {
		return []model.SimulationResult{}, nil
	}
	return s.simulateRanked(req, Rank(FilterEligible(offers, req.TermMonths), 0))
}

func (s *CreditSimulator) simulateRanked(req model.SimulationRequest, ranked []model.LenderOffer) ([]model.SimulationResult, error) {
	results := make([]model.SimulationResult, 0, len(ranked))
	for _, lender := range ranked {
		res, err := s.SimulateForLender(req, lender)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
