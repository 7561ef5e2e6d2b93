package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/valueobject"
)

// toStatus maps domain errors onto gRPC codes. Unknown errors are logged and
// reported as Internal without leaking their text.
func toStatus(ctx context.Context, logger *slog.Logger, method string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var invalid *model.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		return status.Error(codes.InvalidArgument, invalid.Error())
	case errors.Is(err, model.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrLenderNotFound),
		errors.Is(err, model.ErrApplicationNotFound),
		errors.Is(err, model.ErrListingNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrLenderExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrNotApplicant):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, model.ErrVersionConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	logger.ErrorContext(ctx, "request failed", "method", method, "error", err)
	return status.Error(codes.Internal, "internal error")
}
