package usecase

import (
	"context"
	"fmt"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/dto"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/port"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/valueobject"
)

// DefaultListLimit caps admin queue listings when no limit is given.
const DefaultListLimit = 50

// QueryCreditApplicationsUseCase serves read access to applications.
// Applicants only see their own; admins see everything.
type QueryCreditApplicationsUseCase struct {
	appRepo port.CreditApplicationRepository
}

// NewQueryCreditApplicationsUseCase wires dependencies.
func NewQueryCreditApplicationsUseCase(appRepo port.CreditApplicationRepository) *QueryCreditApplicationsUseCase {
	return &QueryCreditApplicationsUseCase{appRepo: appRepo}
}

// Get returns one application visible to the caller.
func (uc *QueryCreditApplicationsUseCase) Get(ctx context.Context, req dto.GetApplicationRequest) (dto.CreditApplicationResponse, error) {
	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.CreditApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	if !req.Caller.IsAdmin && app.ApplicantID() != req.Caller.UserID {
		// Do not reveal that the id exists.
		return dto.CreditApplicationResponse{}, model.ErrApplicationNotFound
	}
	return toApplicationResponse(app), nil
}

// ListMine returns the caller's applications, newest first.
func (uc *QueryCreditApplicationsUseCase) ListMine(ctx context.Context, caller dto.Caller) (dto.ListApplicationsResponse, error) {
	if caller.UserID == "" {
		return dto.ListApplicationsResponse{}, model.NewInvalidInput("applicant_id", "is required")
	}
	apps, err := uc.appRepo.FindByApplicantID(ctx, caller.UserID)
	if err != nil {
		return dto.ListApplicationsResponse{}, fmt.Errorf("list applications: %w", err)
	}
	return toApplicationResponses(apps), nil
}

// ListByStatus returns the admin review queue for one status, oldest first.
func (uc *QueryCreditApplicationsUseCase) ListByStatus(ctx context.Context, req dto.ListApplicationsByStatusRequest) (dto.ListApplicationsResponse, error) {
	status, err := valueobject.NewCreditApplicationStatus(req.Status)
	if err != nil {
		return dto.ListApplicationsResponse{}, model.NewInvalidInput("status", "%v", err)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	apps, err := uc.appRepo.FindByStatus(ctx, status, limit)
	if err != nil {
		return dto.ListApplicationsResponse{}, fmt.Errorf("list applications by status: %w", err)
	}
	return toApplicationResponses(apps), nil
}
