package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	pgpkg "github.com/crisgp1/cliquealo.mx-sub002/pkg/postgres"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
)

// pool is what the repositories need from *pgxpool.Pool.
type pool interface {
	pgpkg.Querier
	pgpkg.Beginner
}

// LenderRepo implements port.LenderDirectory on the bank_partners table.
type LenderRepo struct {
	db pool
}

func NewLenderRepo(db pool) *LenderRepo {
	return &LenderRepo{db: db}
}

const lenderColumns = `id, name, annual_rate_percent, min_term_months, max_term_months,
	processing_time_days, active, version, created_at, updated_at`

// upsertLender inserts a new lender or updates an existing one when the
// stored version still matches the one the caller loaded.
const upsertLender = `
	INSERT INTO bank_partners (` + lenderColumns + `)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	ON CONFLICT (id) DO UPDATE SET
		name                 = EXCLUDED.name,
		annual_rate_percent  = EXCLUDED.annual_rate_percent,
		min_term_months      = EXCLUDED.min_term_months,
		max_term_months      = EXCLUDED.max_term_months,
		processing_time_days = EXCLUDED.processing_time_days,
		active               = EXCLUDED.active,
		version              = bank_partners.version + 1,
		updated_at           = EXCLUDED.updated_at
	WHERE bank_partners.version = $8
`

// ListActiveLenders runs a single statement, so the result is one consistent
// snapshot of the table.
func (r *LenderRepo) ListActiveLenders(ctx context.Context) ([]model.LenderOffer, error) {
	return r.list(ctx, `SELECT `+lenderColumns+` FROM bank_partners WHERE active ORDER BY annual_rate_percent, name, id`)
}

func (r *LenderRepo) ListAll(ctx context.Context) ([]model.LenderOffer, error) {
	return r.list(ctx, `SELECT `+lenderColumns+` FROM bank_partners ORDER BY name, id`)
}

func (r *LenderRepo) FindByID(ctx context.Context, id string) (model.LenderOffer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+lenderColumns+` FROM bank_partners WHERE id = $1`, id)
	lender, err := scanLender(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.LenderOffer{}, fmt.Errorf("%w: %s", model.ErrLenderNotFound, id)
	}
	return lender, err
}

func (r *LenderRepo) Save(ctx context.Context, lender model.LenderOffer) error {
	return saveLender(ctx, r.db, lender)
}

// UpsertBatch writes every lender in one transaction. A version conflict on
// any row rolls the whole batch back.
func (r *LenderRepo) UpsertBatch(ctx context.Context, lenders []model.LenderOffer) error {
	if len(lenders) == 0 {
		return nil
	}
	return pgpkg.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		for _, l := range lenders {
			if err := saveLender(ctx, tx, l); err != nil {
				return err
			}
		}
		return nil
	})
}

func saveLender(ctx context.Context, q pgpkg.Querier, l model.LenderOffer) error {
	t := l.Terms()
	tag, err := q.Exec(ctx, upsertLender,
		l.ID(), l.Name(),
		t.AnnualRatePercent, t.MinTermMonths, t.MaxTermMonths, t.ProcessingTimeDays,
		l.IsActive(), l.Version(), l.CreatedAt(), l.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save lender %s: %w", l.ID(), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save lender %s: %w", l.ID(), model.ErrVersionConflict)
	}
	return nil
}

func (r *LenderRepo) list(ctx context.Context, query string, args ...any) ([]model.LenderOffer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lenders: %w", err)
	}
	defer rows.Close()

	result := make([]model.LenderOffer, 0)
	for rows.Next() {
		l, err := scanLender(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func scanLender(s scannable) (model.LenderOffer, error) {
	var (
		id, name             string
		terms                model.LenderTerms
		active               bool
		version              int
		createdAt, updatedAt time.Time
	)
	err := s.Scan(
		&id, &name,
		&terms.AnnualRatePercent, &terms.MinTermMonths, &terms.MaxTermMonths, &terms.ProcessingTimeDays,
		&active, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LenderOffer{}, err
		}
		return model.LenderOffer{}, fmt.Errorf("scan lender: %w", err)
	}
	return model.ReconstructLenderOffer(id, name, terms, active, version, createdAt, updatedAt), nil
}
