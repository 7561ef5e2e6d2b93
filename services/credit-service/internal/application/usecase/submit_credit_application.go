package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/dto"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/port"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/service"
)

// SubmitCreditApplicationUseCase re-runs the simulation for the chosen lender
// and files a PENDING application carrying a snapshot of the figures.
type SubmitCreditApplicationUseCase struct {
	appRepo   port.CreditApplicationRepository
	lenders   port.LenderDirectory
	listings  port.ListingCatalog
	publisher port.EventPublisher
	simulator *service.CreditSimulator
}

// NewSubmitCreditApplicationUseCase wires dependencies.
func NewSubmitCreditApplicationUseCase(
	appRepo port.CreditApplicationRepository,
	lenders port.LenderDirectory,
	listings port.ListingCatalog,
	publisher port.EventPublisher,
	simulator *service.CreditSimulator,
) *SubmitCreditApplicationUseCase {
	return &SubmitCreditApplicationUseCase{
		appRepo:   appRepo,
		lenders:   lenders,
		listings:  listings,
		publisher: publisher,
		simulator: simulator,
	}
}

// Execute validates, simulates, persists and announces a new application.
func (uc *SubmitCreditApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (resp dto.CreditApplicationResponse, err error) {
	ctx, span := startSpan(ctx, "SubmitCreditApplication", attribute.String("lender_id", req.LenderID))
	defer func() { endSpan(span, err) }()

	if req.LenderID == "" {
		return dto.CreditApplicationResponse{}, model.NewInvalidInput("lender_id", "is required")
	}

	// 1. Resolve and validate the simulation input.
	simReq, err := resolveSimulationRequest(ctx, uc.listings, req.ListingID, req.VehiclePrice, req.DownPayment, req.TermMonths, req.LenderID)
	if err != nil {
		return dto.CreditApplicationResponse{}, err
	}

	// 2. Load the lender and price the loan.
	lender, err := uc.lenders.FindByID(ctx, req.LenderID)
	if err != nil {
		return dto.CreditApplicationResponse{}, fmt.Errorf("find lender %s: %w", req.LenderID, err)
	}
	result, err := uc.simulator.SimulateForLender(simReq, lender)
	if err != nil {
		return dto.CreditApplicationResponse{}, fmt.Errorf("simulate: %w", err)
	}
	snapshot, err := model.SnapshotFromResult(simReq, result)
	if err != nil {
		return dto.CreditApplicationResponse{}, err
	}

	// 3. Create the aggregate.
	app, err := model.NewCreditApplication(req.ApplicantID, req.ListingID, snapshot, nowUTC())
	if err != nil {
		return dto.CreditApplicationResponse{}, fmt.Errorf("create application: %w", err)
	}

	// 4. Persist.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.CreditApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.CreditApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}
