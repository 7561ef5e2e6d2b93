package grpc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
)

func TestToStatus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"nil", nil, codes.OK},
		{"wrapped invalid input", fmt.Errorf("simulate: %w", model.NewInvalidInput("down_payment", "must be below price")), codes.InvalidArgument},
		{"application not found", fmt.Errorf("find: %w", model.ErrApplicationNotFound), codes.NotFound},
		{"lender exists", model.ErrLenderExists, codes.AlreadyExists},
		{"not applicant", model.ErrNotApplicant, codes.PermissionDenied},
		{"version conflict", model.ErrVersionConflict, codes.Aborted},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"already a status", status.Error(codes.Unauthenticated, "no"), codes.Unauthenticated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := toStatus(ctx, logger, MethodSimulate, tc.err)
			assert.Equal(t, tc.code, status.Code(got))
		})
	}
}

func TestToStatus_InvalidInputMessage(t *testing.T) {
	err := toStatus(context.Background(), slog.Default(), MethodSimulate,
		model.NewInvalidInput("term_months", "must be positive, got %d", 0))
	assert.Contains(t, status.Convert(err).Message(), "term_months")
}
