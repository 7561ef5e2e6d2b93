package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/dto"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/port"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/service"
)

// Simulation modes recorded on metrics and spans.
const (
	modeSingle    = "single"
	modeAll       = "all"
	modeBestMatch = "best_match"
)

// SimulateCreditUseCase prices a vehicle purchase against the lender
// directory. It never persists anything.
type SimulateCreditUseCase struct {
	lenders     port.LenderDirectory
	listings    port.ListingCatalog
	simulator   *service.CreditSimulator
	defaultTopN int
	metrics     *simulationMetrics
}

// NewSimulateCreditUseCase wires dependencies. listings may be nil when
// simulations are only ever requested with an explicit price.
func NewSimulateCreditUseCase(
	lenders port.LenderDirectory,
	listings port.ListingCatalog,
	simulator *service.CreditSimulator,
	defaultTopN int,
) *SimulateCreditUseCase {
	if defaultTopN <= 0 {
		defaultTopN = service.DefaultTopN
	}
	return &SimulateCreditUseCase{
		lenders:     lenders,
		listings:    listings,
		simulator:   simulator,
		defaultTopN: defaultTopN,
		metrics:     newSimulationMetrics(),
	}
}

// Simulate runs a single-lender simulation when req.LenderID is set, and
// otherwise simulates every eligible lender in ranked order.
func (uc *SimulateCreditUseCase) Simulate(ctx context.Context, req dto.SimulationRequest) (resp dto.SimulationResponse, err error) {
	mode := modeAll
	if req.LenderID != "" {
		mode = modeSingle
	}
	ctx, span := startSpan(ctx, "SimulateCredit", attribute.String("mode", mode))
	defer func() { endSpan(span, err) }()

	simReq, err := resolveSimulationRequest(ctx, uc.listings, req.ListingID, req.VehiclePrice, req.DownPayment, req.TermMonths, req.LenderID)
	if err != nil {
		uc.metrics.record(ctx, mode, outcomeFor(err), 0)
		return dto.SimulationResponse{}, err
	}

	var results []model.SimulationResult
	if simReq.Lender.IsAll() {
		results, err = uc.simulateAll(ctx, simReq)
	} else {
		results, err = uc.simulateOne(ctx, simReq)
	}
	if err != nil {
		uc.metrics.record(ctx, mode, outcomeFor(err), 0)
		return dto.SimulationResponse{}, err
	}

	uc.metrics.record(ctx, mode, outcomeOf(results), len(results))
	return uc.buildResponse(req, simReq, results)
}

// FindBestMatches returns the top-N cheapest eligible lenders. req.TopN <= 0
// falls back to the configured default.
func (uc *SimulateCreditUseCase) FindBestMatches(ctx context.Context, req dto.SimulationRequest) (resp dto.SimulationResponse, err error) {
	ctx, span := startSpan(ctx, "FindBestMatches", attribute.Int("top_n", req.TopN))
	defer func() { endSpan(span, err) }()

	simReq, err := resolveSimulationRequest(ctx, uc.listings, req.ListingID, req.VehiclePrice, req.DownPayment, req.TermMonths, "")
	if err != nil {
		uc.metrics.record(ctx, modeBestMatch, outcomeFor(err), 0)
		return dto.SimulationResponse{}, err
	}

	offers, err := uc.lenders.ListActiveLenders(ctx)
	if err != nil {
		uc.metrics.record(ctx, modeBestMatch, outcomeError, 0)
		return dto.SimulationResponse{}, fmt.Errorf("list active lenders: %w", err)
	}

	topN := req.TopN
	if topN <= 0 {
		topN = uc.defaultTopN
	}
	results, err := uc.simulator.FindBestMatches(simReq, offers, topN)
	if err != nil {
		uc.metrics.record(ctx, modeBestMatch, outcomeError, 0)
		return dto.SimulationResponse{}, fmt.Errorf("find best matches: %w", err)
	}

	uc.metrics.record(ctx, modeBestMatch, outcomeOf(results), len(results))
	return uc.buildResponse(req, simReq, results)
}

func (uc *SimulateCreditUseCase) simulateOne(ctx context.Context, req model.SimulationRequest) ([]model.SimulationResult, error) {
	lender, err := uc.lenders.FindByID(ctx, req.Lender.LenderID())
	if err != nil {
		return nil, fmt.Errorf("find lender %s: %w", req.Lender.LenderID(), err)
	}
	res, err := uc.simulator.SimulateForLender(req, lender)
	if err != nil {
		return nil, err
	}
	return []model.SimulationResult{res}, nil
}

func (uc *SimulateCreditUseCase) simulateAll(ctx context.Context, req model.SimulationRequest) ([]model.SimulationResult, error) {
	offers, err := uc.lenders.ListActiveLenders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active lenders: %w", err)
	}
	results, err := uc.simulator.SimulateAll(req, offers)
	if err != nil {
		return nil, fmt.Errorf("simulate lenders: %w", err)
	}
	return results, nil
}

func (uc *SimulateCreditUseCase) buildResponse(
	in dto.SimulationRequest,
	req model.SimulationRequest,
	results []model.SimulationResult,
) (dto.SimulationResponse, error) {
	resp := dto.SimulationResponse{
		ListingID:      in.ListingID,
		VehiclePrice:   cents(req.VehiclePrice),
		DownPayment:    cents(req.DownPayment),
		FinancedAmount: cents(req.FinancedAmount()),
		TermMonths:     req.TermMonths,
		Results:        make([]dto.SimulationResultResponse, 0, len(results)),
	}

	start := nowUTC()
	for _, res := range results {
		var schedule []model.AmortizationEntry
		if in.IncludeSchedule && res.Eligible {
			var err error
			schedule, err = model.GenerateAmortizationSchedule(
				decimal.NewFromFloat(res.FinancedAmount), res.Lender.AnnualRatePercent(), res.TermMonths, start,
			)
			if err != nil {
				return dto.SimulationResponse{}, fmt.Errorf("build schedule for %s: %w", res.Lender.ID(), err)
			}
		}
		resp.Results = append(resp.Results, toResultResponse(res, schedule))
	}
	return resp, nil
}

// resolveSimulationRequest fills the vehicle price from the listing catalog
// when no explicit price is given and validates the result.
func resolveSimulationRequest(
	ctx context.Context,
	listings port.ListingCatalog,
	listingID string,
	vehiclePrice, downPayment float64,
	termMonths int,
	lenderID string,
) (model.SimulationRequest, error) {
	price := vehiclePrice
	if price == 0 && listingID != "" {
		if listings == nil {
			return model.SimulationRequest{}, fmt.Errorf("listing %s: %w", listingID, model.ErrListingNotFound)
		}
		listing, err := listings.FindListing(ctx, listingID)
		if err != nil {
			return model.SimulationRequest{}, fmt.Errorf("find listing %s: %w", listingID, err)
		}
		if !listing.Active {
			return model.SimulationRequest{}, fmt.Errorf("listing %s is not published: %w", listingID, model.ErrListingNotFound)
		}
		price = listing.Price
	}

	req := model.SimulationRequest{
		VehiclePrice: price,
		DownPayment:  downPayment,
		TermMonths:   termMonths,
		Lender:       model.SpecificLender(lenderID),
	}
	if err := req.Validate(); err != nil {
		return model.SimulationRequest{}, err
	}
	return req, nil
}

func outcomeOf(results []model.SimulationResult) string {
	if len(results) == 0 {
		return outcomeNoMatch
	}
	for _, r := range results {
		if r.Eligible {
			return outcomeEligible
		}
	}
	return outcomeIneligible
}

func outcomeFor(err error) string {
	if errors.Is(err, model.ErrInvalidInput) {
		return outcomeInvalid
	}
	return outcomeError
}
