package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/dto"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/port"
)

// ReviewCreditApplicationUseCase drives the admin side of the workflow.
// Role checks happen at the transport edge.
type ReviewCreditApplicationUseCase struct {
	appRepo   port.CreditApplicationRepository
	publisher port.EventPublisher
}

// NewReviewCreditApplicationUseCase wires dependencies.
func NewReviewCreditApplicationUseCase(
	appRepo port.CreditApplicationRepository,
	publisher port.EventPublisher,
) *ReviewCreditApplicationUseCase {
	return &ReviewCreditApplicationUseCase{appRepo: appRepo, publisher: publisher}
}

// StartReview moves a PENDING application to UNDER_REVIEW.
func (uc *ReviewCreditApplicationUseCase) StartReview(ctx context.Context, req dto.ReviewRequest) (dto.CreditApplicationResponse, error) {
	return uc.apply(ctx, "StartReview", req.ApplicationID, func(app model.CreditApplication) (model.CreditApplication, error) {
		return app.StartReview(req.ReviewerID, nowUTC())
	})
}

// Approve moves an UNDER_REVIEW application to APPROVED.
func (uc *ReviewCreditApplicationUseCase) Approve(ctx context.Context, req dto.ReviewRequest) (dto.CreditApplicationResponse, error) {
	return uc.apply(ctx, "ApproveApplication", req.ApplicationID, func(app model.CreditApplication) (model.CreditApplication, error) {
		return app.Approve(req.ReviewerID, req.Reason, nowUTC())
	})
}

// Reject moves an UNDER_REVIEW application to REJECTED.
func (uc *ReviewCreditApplicationUseCase) Reject(ctx context.Context, req dto.ReviewRequest) (dto.CreditApplicationResponse, error) {
	return uc.apply(ctx, "RejectApplication", req.ApplicationID, func(app model.CreditApplication) (model.CreditApplication, error) {
		return app.Reject(req.ReviewerID, req.Reason, nowUTC())
	})
}

// Cancel withdraws an application. Applicants may cancel their own; admins
// may cancel any.
func (uc *ReviewCreditApplicationUseCase) Cancel(ctx context.Context, req dto.CancelApplicationRequest) (dto.CreditApplicationResponse, error) {
	return uc.apply(ctx, "CancelApplication", req.ApplicationID, func(app model.CreditApplication) (model.CreditApplication, error) {
		if !req.Caller.IsAdmin && app.ApplicantID() != req.Caller.UserID {
			return app, model.ErrNotApplicant
		}
		return app.Cancel(req.Caller.UserID, req.Reason, nowUTC())
	})
}

func (uc *ReviewCreditApplicationUseCase) apply(
	ctx context.Context,
	op, applicationID string,
	transition func(model.CreditApplication) (model.CreditApplication, error),
) (resp dto.CreditApplicationResponse, err error) {
	ctx, span := startSpan(ctx, op, attribute.String("application_id", applicationID))
	defer func() { endSpan(span, err) }()

	// 1. Load.
	app, err := uc.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return dto.CreditApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	// 2. Transition.
	next, err := transition(app)
	if err != nil {
		return dto.CreditApplicationResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	// 3. Persist.
	if err := uc.appRepo.Save(ctx, next); err != nil {
		return dto.CreditApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	// 4. Publish domain events.
	if err := uc.publisher.Publish(ctx, next.DomainEvents()...); err != nil {
		return dto.CreditApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(next), nil
}
