package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/crisgp1/cliquealo.mx-sub002/pkg/events"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/dto"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/event"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/port"
)

// SyncBankPartnersUseCase applies partner feed entries to the lender
// directory. Invalid entries are skipped and logged; the rest of the batch
// is written in one transaction.
type SyncBankPartnersUseCase struct {
	lenders   port.LenderDirectory
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewSyncBankPartnersUseCase wires dependencies.
func NewSyncBankPartnersUseCase(lenders port.LenderDirectory, publisher port.EventPublisher, logger *slog.Logger) *SyncBankPartnersUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncBankPartnersUseCase{lenders: lenders, publisher: publisher, logger: logger}
}

// Execute upserts records and publishes one event per changed lender.
func (uc *SyncBankPartnersUseCase) Execute(ctx context.Context, records []dto.BankPartnerRecord) (result dto.SyncResult, err error) {
	ctx, span := startSpan(ctx, "SyncBankPartners", attribute.Int("records", len(records)))
	defer func() { endSpan(span, err) }()

	now := nowUTC()
	var (
		batch     []model.LenderOffer
		collector events.EventCollector
	)

	for _, rec := range records {
		terms := toDomainTerms(rec.LenderTerms)

		current, findErr := uc.lenders.FindByID(ctx, rec.ID)
		switch {
		case errors.Is(findErr, model.ErrLenderNotFound):
			lender, err := model.NewLenderOffer(rec.ID, rec.Name, terms, rec.Active, now)
			if err != nil {
				uc.skip(ctx, rec, err)
				result.Skipped++
				continue
			}
			batch = append(batch, lender)
			collector.Record(lenderChanged(event.TypeLenderRegistered, lender))
			result.Created++

		case findErr != nil:
			return dto.SyncResult{}, fmt.Errorf("find lender %s: %w", rec.ID, findErr)

		default:
			updated, err := current.Update(rec.Name, terms, now)
			if err != nil {
				uc.skip(ctx, rec, err)
				result.Skipped++
				continue
			}
			if updated.IsActive() != rec.Active {
				updated = updated.SetActive(rec.Active, now)
				collector.Record(event.NewLenderActivationChanged(updated.ID(), rec.Active))
			}
			if sameOffer(current, updated) {
				result.Skipped++
				continue
			}
			batch = append(batch, updated)
			collector.Record(lenderChanged(event.TypeLenderUpdated, updated))
			result.Updated++
		}
	}

	if len(batch) == 0 {
		return result, nil
	}
	if err := uc.lenders.UpsertBatch(ctx, batch); err != nil {
		return dto.SyncResult{}, fmt.Errorf("upsert lenders: %w", err)
	}
	if err := uc.publisher.Publish(ctx, collector.ClearEvents()...); err != nil {
		return dto.SyncResult{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.InfoContext(ctx, "bank partners synced",
		"created", result.Created, "updated", result.Updated, "skipped", result.Skipped)
	return result, nil
}

func (uc *SyncBankPartnersUseCase) skip(ctx context.Context, rec dto.BankPartnerRecord, err error) {
	uc.logger.WarnContext(ctx, "skipping bank partner record", "lender_id", rec.ID, "error", err)
}

func sameOffer(a, b model.LenderOffer) bool {
	return a.Name() == b.Name() && a.Terms() == b.Terms() && a.IsActive() == b.IsActive()
}
