package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	pkgkafka "github.com/crisgp1/cliquealo.mx-sub002/pkg/kafka"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/application/dto"
)

// PartnerSyncer applies a batch of bank-partner records.
type PartnerSyncer interface {
	Execute(ctx context.Context, records []dto.BankPartnerRecord) (dto.SyncResult, error)
}

// BankPartnerHandler returns a consumer handler for the partner feed. A
// message carries either one record or a JSON array of records. Payloads that
// cannot be decoded are logged and acknowledged so a poison message does not
// stall the partition. Sync failures are returned; the consumer retries them
// and stops without committing when they persist.
func BankPartnerHandler(syncer PartnerSyncer, logger *slog.Logger) pkgkafka.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, msg pkgkafka.Message) error {
		records, err := DecodeBankPartners(msg.Value)
		if err != nil {
			logger.WarnContext(ctx, "dropping undecodable bank partner message",
				"key", string(msg.Key), "error", err)
			return nil
		}
		if len(records) == 0 {
			return nil
		}

		res, err := syncer.Execute(ctx, records)
		if err != nil {
			return fmt.Errorf("sync bank partners: %w", err)
		}
		logger.DebugContext(ctx, "bank partner message applied",
			"key", string(msg.Key),
			"created", res.Created,
			"updated", res.Updated,
			"skipped", res.Skipped,
		)
		return nil
	}
}

// DecodeBankPartners accepts a single JSON object or an array of them.
func DecodeBankPartners(payload []byte) ([]dto.BankPartnerRecord, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty payload")
	}

	if trimmed[0] == '[' {
		var records []dto.BankPartnerRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode record list: %w", err)
		}
		return records, nil
	}

	var rec dto.BankPartnerRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return []dto.BankPartnerRecord{rec}, nil
}
