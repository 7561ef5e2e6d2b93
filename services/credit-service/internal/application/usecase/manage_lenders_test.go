package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/dto"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/usecase"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/event"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
)

func TestManageLenders(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		dir := &mockLenderDirectory{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewManageLendersUseCase(dir, publisher)

		resp, err := uc.Create(context.Background(), dto.CreateLenderRequest{
			Name:   "Banregio",
			Active: true,
			LenderTerms: dto.LenderTerms{
				AnnualRatePercent: 13.5, MinTermMonths: 12, MaxTermMonths: 60, ProcessingTimeDays: 4,
			},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Banregio", resp.Name)
		assert.Equal(t, 13.5, resp.AnnualRatePercent)
		require.Len(t, dir.saved, 1)
		assert.Equal(t, []string{event.TypeLenderRegistered}, publisher.types())
	})

	t.Run("create validates terms", func(t *testing.T) {
		uc := usecase.NewManageLendersUseCase(&mockLenderDirectory{}, &mockEventPublisher{})

		_, err := uc.Create(context.Background(), dto.CreateLenderRequest{
			Name:        "Bad",
			LenderTerms: dto.LenderTerms{AnnualRatePercent: 10, MinTermMonths: 48, MaxTermMonths: 12, ProcessingTimeDays: 1},
		})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("create rejects a taken id", func(t *testing.T) {
		dir := defaultDirectory(t)
		publisher := &mockEventPublisher{}
		uc := usecase.NewManageLendersUseCase(dir, publisher)

		_, err := uc.Create(context.Background(), dto.CreateLenderRequest{
			ID:          "banorte",
			Name:        "Banorte",
			LenderTerms: dto.LenderTerms{AnnualRatePercent: 10, MinTermMonths: 12, MaxTermMonths: 48, ProcessingTimeDays: 1},
		})
		assert.ErrorIs(t, err, model.ErrLenderExists)
		assert.Empty(t, dir.saved)
		assert.Empty(t, publisher.types())
	})

	t.Run("update", func(t *testing.T) {
		dir := defaultDirectory(t)
		publisher := &mockEventPublisher{}
		uc := usecase.NewManageLendersUseCase(dir, publisher)

		resp, err := uc.Update(context.Background(), dto.UpdateLenderRequest{
			LenderID:    "banorte",
			LenderTerms: dto.LenderTerms{AnnualRatePercent: 9.75, MinTermMonths: 6, MaxTermMonths: 60, ProcessingTimeDays: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, "BANORTE", resp.Name)
		assert.Equal(t, 9.75, resp.AnnualRatePercent)
		assert.Equal(t, []string{event.TypeLenderUpdated}, publisher.types())

		_, err = uc.Update(context.Background(), dto.UpdateLenderRequest{LenderID: "ghost"})
		assert.ErrorIs(t, err, model.ErrLenderNotFound)
	})

	t.Run("set active", func(t *testing.T) {
		dir := defaultDirectory(t)
		publisher := &mockEventPublisher{}
		uc := usecase.NewManageLendersUseCase(dir, publisher)

		resp, err := uc.SetActive(context.Background(), dto.SetLenderActiveRequest{LenderID: "inbursa", Active: true})
		require.NoError(t, err)
		assert.True(t, resp.Active)
		assert.Equal(t, []string{event.TypeLenderActivationChanged}, publisher.types())

		_, err = uc.SetActive(context.Background(), dto.SetLenderActiveRequest{LenderID: "inbursa", Active: true})
		require.NoError(t, err)
		assert.Len(t, publisher.publishedEvents, 1, "no-op toggle publishes nothing")
	})

	t.Run("list", func(t *testing.T) {
		uc := usecase.NewManageLendersUseCase(defaultDirectory(t), &mockEventPublisher{})

		active, err := uc.List(context.Background(), dto.ListLendersRequest{})
		require.NoError(t, err)
		assert.Len(t, active.Lenders, 4)

		all, err := uc.List(context.Background(), dto.ListLendersRequest{IncludeInactive: true})
		require.NoError(t, err)
		assert.Len(t, all.Lenders, 5)
	})
}
