package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/dto"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/event"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/port"
)

// ManageLendersUseCase administers the bank-partner directory.
type ManageLendersUseCase struct {
	lenders   port.LenderDirectory
	publisher port.EventPublisher
}

// NewManageLendersUseCase wires dependencies.
func NewManageLendersUseCase(lenders port.LenderDirectory, publisher port.EventPublisher) *ManageLendersUseCase {
	return &ManageLendersUseCase{lenders: lenders, publisher: publisher}
}

// Create registers a new bank partner.
func (uc *ManageLendersUseCase) Create(ctx context.Context, req dto.CreateLenderRequest) (resp dto.LenderResponse, err error) {
	ctx, span := startSpan(ctx, "CreateLender")
	defer func() { endSpan(span, err) }()

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	} else if _, findErr := uc.lenders.FindByID(ctx, id); findErr == nil {
		return dto.LenderResponse{}, fmt.Errorf("%w: %s", model.ErrLenderExists, id)
	} else if !errors.Is(findErr, model.ErrLenderNotFound) {
		return dto.LenderResponse{}, fmt.Errorf("find lender: %w", findErr)
	}
	lender, err := model.NewLenderOffer(id, req.Name, toDomainTerms(req.LenderTerms), req.Active, nowUTC())
	if err != nil {
		return dto.LenderResponse{}, err
	}

	if err := uc.lenders.Save(ctx, lender); err != nil {
		return dto.LenderResponse{}, fmt.Errorf("save lender: %w", err)
	}
	if err := uc.publisher.Publish(ctx, lenderChanged(event.TypeLenderRegistered, lender)); err != nil {
		return dto.LenderResponse{}, fmt.Errorf("publish events: %w", err)
	}
	return toLenderResponse(lender), nil
}

// Update replaces the rate, term range and processing time of a lender.
func (uc *ManageLendersUseCase) Update(ctx context.Context, req dto.UpdateLenderRequest) (resp dto.LenderResponse, err error) {
	ctx, span := startSpan(ctx, "UpdateLender", attribute.String("lender_id", req.LenderID))
	defer func() { endSpan(span, err) }()

	current, err := uc.lenders.FindByID(ctx, req.LenderID)
	if err != nil {
		return dto.LenderResponse{}, fmt.Errorf("find lender: %w", err)
	}
	updated, err := current.Update(req.Name, toDomainTerms(req.LenderTerms), nowUTC())
	if err != nil {
		return dto.LenderResponse{}, err
	}

	if err := uc.lenders.Save(ctx, updated); err != nil {
		return dto.LenderResponse{}, fmt.Errorf("save lender: %w", err)
	}
	if err := uc.publisher.Publish(ctx, lenderChanged(event.TypeLenderUpdated, updated)); err != nil {
		return dto.LenderResponse{}, fmt.Errorf("publish events: %w", err)
	}
	return toLenderResponse(updated), nil
}

// SetActive toggles whether a lender takes part in simulations. Setting the
// current state again is a no-op that publishes nothing.
func (uc *ManageLendersUseCase) SetActive(ctx context.Context, req dto.SetLenderActiveRequest) (resp dto.LenderResponse, err error) {
	ctx, span := startSpan(ctx, "SetLenderActive",
		attribute.String("lender_id", req.LenderID), attribute.Bool("active", req.Active))
	defer func() { endSpan(span, err) }()

	current, err := uc.lenders.FindByID(ctx, req.LenderID)
	if err != nil {
		return dto.LenderResponse{}, fmt.Errorf("find lender: %w", err)
	}
	if current.IsActive() == req.Active {
		return toLenderResponse(current), nil
	}

	updated := current.SetActive(req.Active, nowUTC())
	if err := uc.lenders.Save(ctx, updated); err != nil {
		return dto.LenderResponse{}, fmt.Errorf("save lender: %w", err)
	}
	if err := uc.publisher.Publish(ctx, event.NewLenderActivationChanged(updated.ID(), updated.IsActive())); err != nil {
		return dto.LenderResponse{}, fmt.Errorf("publish events: %w", err)
	}
	return toLenderResponse(updated), nil
}

// List returns the directory ordered by name. Inactive lenders are only
// included on request.
func (uc *ManageLendersUseCase) List(ctx context.Context, req dto.ListLendersRequest) (dto.ListLendersResponse, error) {
	var (
		lenders []model.LenderOffer
		err     error
	)
	if req.IncludeInactive {
		lenders, err = uc.lenders.ListAll(ctx)
	} else {
		lenders, err = uc.lenders.ListActiveLenders(ctx)
	}
	if err != nil {
		return dto.ListLendersResponse{}, fmt.Errorf("list lenders: %w", err)
	}
	return dto.ListLendersResponse{Lenders: toLenderResponses(lenders)}, nil
}

func lenderChanged(eventType string, l model.LenderOffer) event.LenderChanged {
	return event.NewLenderChanged(
		eventType, l.ID(), l.Name(),
		l.AnnualRatePercent(), l.MinTermMonths(), l.MaxTermMonths(), l.ProcessingTimeDays(),
		l.IsActive(),
	)
}
