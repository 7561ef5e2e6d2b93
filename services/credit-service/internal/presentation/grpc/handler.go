package grpc

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crisgp1/cliquealo.mx-sub002/pkg/auth"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/dto"
)

// Use-case contracts the handler depends on. The concrete use cases in
// internal/application/usecase satisfy them.

type Simulator interface {
	Simulate(ctx context.Context, req dto.SimulationRequest) (dto.SimulationResponse, error)
	FindBestMatches(ctx context.Context, req dto.SimulationRequest) (dto.SimulationResponse, error)
}

type ApplicationSubmitter interface {
	Execute(ctx context.Context, req dto.SubmitApplicationRequest) (dto.CreditApplicationResponse, error)
}

type ApplicationQueries interface {
	Get(ctx context.Context, req dto.GetApplicationRequest) (dto.CreditApplicationResponse, error)
	ListMine(ctx context.Context, caller dto.Caller) (dto.ListApplicationsResponse, error)
	ListByStatus(ctx context.Context, req dto.ListApplicationsByStatusRequest) (dto.ListApplicationsResponse, error)
}

type ApplicationReviewer interface {
	StartReview(ctx context.Context, req dto.ReviewRequest) (dto.CreditApplicationResponse, error)
	Approve(ctx context.Context, req dto.ReviewRequest) (dto.CreditApplicationResponse, error)
	Reject(ctx context.Context, req dto.ReviewRequest) (dto.CreditApplicationResponse, error)
	Cancel(ctx context.Context, req dto.CancelApplicationRequest) (dto.CreditApplicationResponse, error)
}

type LenderAdmin interface {
	Create(ctx context.Context, req dto.CreateLenderRequest) (dto.LenderResponse, error)
	Update(ctx context.Context, req dto.UpdateLenderRequest) (dto.LenderResponse, error)
	SetActive(ctx context.Context, req dto.SetLenderActiveRequest) (dto.LenderResponse, error)
	List(ctx context.Context, req dto.ListLendersRequest) (dto.ListLendersResponse, error)
}

// CreditHandler implements CreditServiceServer on top of the use cases.
// Identity always comes from the JWT claims, never from the request body.
type CreditHandler struct {
	UnimplementedCreditServiceServer

	simulator Simulator
	submitter ApplicationSubmitter
	queries   ApplicationQueries
	reviewer  ApplicationReviewer
	lenders   LenderAdmin
	logger    *slog.Logger
}

func NewCreditHandler(
	simulator Simulator,
	submitter ApplicationSubmitter,
	queries ApplicationQueries,
	reviewer ApplicationReviewer,
	lenders LenderAdmin,
	logger *slog.Logger,
) *CreditHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreditHandler{
		simulator: simulator,
		submitter: submitter,
		queries:   queries,
		reviewer:  reviewer,
		lenders:   lenders,
		logger:    logger,
	}
}

func callerFrom(ctx context.Context) (dto.Caller, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok || claims.UserID == "" {
		return dto.Caller{}, status.Error(codes.Unauthenticated, "missing caller identity")
	}
	return dto.Caller{UserID: claims.UserID, IsAdmin: claims.IsAdmin()}, nil
}

// respond converts a use-case result into the pointer the generated API
// expects, translating errors on the way.
func respond[T any](ctx context.Context, logger *slog.Logger, method string, v T, err error) (*T, error) {
	if err != nil {
		return nil, toStatus(ctx, logger, method, err)
	}
	return &v, nil
}

func (h *CreditHandler) Simulate(ctx context.Context, req *dto.SimulationRequest) (*dto.SimulationResponse, error) {
	resp, err := h.simulator.Simulate(ctx, *req)
	return respond(ctx, h.logger, MethodSimulate, resp, err)
}

func (h *CreditHandler) FindBestMatches(ctx context.Context, req *dto.SimulationRequest) (*dto.SimulationResponse, error) {
	resp, err := h.simulator.FindBestMatches(ctx, *req)
	return respond(ctx, h.logger, MethodFindBestMatches, resp, err)
}

func (h *CreditHandler) SubmitApplication(ctx context.Context, req *dto.SubmitApplicationRequest) (*dto.CreditApplicationResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	in := *req
	in.ApplicantID = caller.UserID
	resp, err := h.submitter.Execute(ctx, in)
	return respond(ctx, h.logger, MethodSubmitApplication, resp, err)
}

func (h *CreditHandler) GetApplication(ctx context.Context, req *dto.GetApplicationRequest) (*dto.CreditApplicationResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	in := *req
	in.Caller = caller
	resp, err := h.queries.Get(ctx, in)
	return respond(ctx, h.logger, MethodGetApplication, resp, err)
}

func (h *CreditHandler) ListMyApplications(ctx context.Context, _ *ListMyApplicationsRequest) (*dto.ListApplicationsResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := h.queries.ListMine(ctx, caller)
	return respond(ctx, h.logger, MethodListMyApplications, resp, err)
}

func (h *CreditHandler) ListApplicationsByStatus(ctx context.Context, req *dto.ListApplicationsByStatusRequest) (*dto.ListApplicationsResponse, error) {
	resp, err := h.queries.ListByStatus(ctx, *req)
	return respond(ctx, h.logger, MethodListApplicationsByStatus, resp, err)
}

func (h *CreditHandler) StartReview(ctx context.Context, req *dto.ReviewRequest) (*dto.CreditApplicationResponse, error) {
	return h.review(ctx, MethodStartReview, req, h.reviewer.StartReview)
}

func (h *CreditHandler) ApproveApplication(ctx context.Context, req *dto.ReviewRequest) (*dto.CreditApplicationResponse, error) {
	return h.review(ctx, MethodApproveApplication, req, h.reviewer.Approve)
}

func (h *CreditHandler) RejectApplication(ctx context.Context, req *dto.ReviewRequest) (*dto.CreditApplicationResponse, error) {
	return h.review(ctx, MethodRejectApplication, req, h.reviewer.Reject)
}

func (h *CreditHandler) review(
	ctx context.Context,
	method string,
	req *dto.ReviewRequest,
	fn func(context.Context, dto.ReviewRequest) (dto.CreditApplicationResponse, error),
) (*dto.CreditApplicationResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	in := *req
	in.ReviewerID = caller.UserID
	resp, err := fn(ctx, in)
	return respond(ctx, h.logger, method, resp, err)
}

func (h *CreditHandler) CancelApplication(ctx context.Context, req *dto.CancelApplicationRequest) (*dto.CreditApplicationResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	in := *req
	in.Caller = caller
	resp, err := h.reviewer.Cancel(ctx, in)
	return respond(ctx, h.logger, MethodCancelApplication, resp, err)
}

func (h *CreditHandler) CreateLender(ctx context.Context, req *dto.CreateLenderRequest) (*dto.LenderResponse, error) {
	resp, err := h.lenders.Create(ctx, *req)
	return respond(ctx, h.logger, MethodCreateLender, resp, err)
}

func (h *CreditHandler) UpdateLender(ctx context.Context, req *dto.UpdateLenderRequest) (*dto.LenderResponse, error) {
	resp, err := h.lenders.Update(ctx, *req)
	return respond(ctx, h.logger, MethodUpdateLender, resp, err)
}

func (h *CreditHandler) SetLenderActive(ctx context.Context, req *dto.SetLenderActiveRequest) (*dto.LenderResponse, error) {
	resp, err := h.lenders.SetActive(ctx, *req)
	return respond(ctx, h.logger, MethodSetLenderActive, resp, err)
}

func (h *CreditHandler) ListLenders(ctx context.Context, req *dto.ListLendersRequest) (*dto.ListLendersResponse, error) {
	resp, err := h.lenders.List(ctx, *req)
	return respond(ctx, h.logger, MethodListLenders, resp, err)
}
