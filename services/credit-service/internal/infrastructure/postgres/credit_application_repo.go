package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	pgpkg "github.com/crisgp1/cliquealo.mx-sub002/pkg/postgres"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/valueobject"
)

// CreditApplicationRepo implements port.CreditApplicationRepository.
type CreditApplicationRepo struct {
	db pgpkg.Querier
}

func NewCreditApplicationRepo(db pgpkg.Querier) *CreditApplicationRepo {
	return &CreditApplicationRepo{db: db}
}

const applicationColumns = `id, applicant_id, listing_id,
	lender_id, lender_name, annual_rate_percent,
	vehicle_price, down_payment, financed_amount, term_months,
	monthly_payment, total_payment, total_interest,
	status, reviewer_id, decision_reason,
	version, created_at, updated_at`

// Save upserts by ID. The simulation snapshot is written once and never
// updated; only the workflow columns change afterwards.
func (r *CreditApplicationRepo) Save(ctx context.Context, app model.CreditApplication) error {
	query := `
		INSERT INTO credit_applications (` + applicationColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (id) DO UPDATE SET
			status          = EXCLUDED.status,
			reviewer_id     = EXCLUDED.reviewer_id,
			decision_reason = EXCLUDED.decision_reason,
			version         = credit_applications.version + 1,
			updated_at      = EXCLUDED.updated_at
		WHERE credit_applications.version = $17
	`
	s := app.Simulation()
	tag, err := r.db.Exec(ctx, query,
		app.ID(), app.ApplicantID(), app.ListingID(),
		s.LenderID, s.LenderName, s.AnnualRatePercent,
		s.VehiclePrice, s.DownPayment, s.FinancedAmount, s.TermMonths,
		s.MonthlyPayment, s.TotalPayment, s.TotalInterest,
		app.Status().String(), app.ReviewerID(), app.DecisionReason(),
		app.Version(), app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save credit application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save credit application %s: %w", app.ID(), model.ErrVersionConflict)
	}
	return nil
}

func (r *CreditApplicationRepo) FindByID(ctx context.Context, id string) (model.CreditApplication, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM credit_applications WHERE id::text = $1`, id)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.CreditApplication{}, fmt.Errorf("%w: %s", model.ErrApplicationNotFound, id)
	}
	return app, err
}

// FindByApplicantID returns the applicant's applications, newest first.
func (r *CreditApplicationRepo) FindByApplicantID(ctx context.Context, applicantID string) ([]model.CreditApplication, error) {
	return r.scanMany(ctx, `
		SELECT `+applicationColumns+`
		FROM credit_applications
		WHERE applicant_id = $1
		ORDER BY created_at DESC, id`, applicantID)
}

// FindByStatus returns the oldest applications in the given status first, so
// a review queue is worked in arrival order.
func (r *CreditApplicationRepo) FindByStatus(ctx context.Context, status valueobject.CreditApplicationStatus, limit int) ([]model.CreditApplication, error) {
	return r.scanMany(ctx, `
		SELECT `+applicationColumns+`
		FROM credit_applications
		WHERE status = $1
		ORDER BY created_at, id
		LIMIT $2`, status.String(), limit)
}

func (r *CreditApplicationRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.CreditApplication, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query credit applications: %w", err)
	}
	defer rows.Close()

	result := make([]model.CreditApplication, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

func scanApplication(s scannable) (model.CreditApplication, error) {
	var (
		id, applicantID, listingID string
		snap                       model.SimulationSnapshot
		statusStr                  string
		reviewerID, decisionReason string
		version                    int
		createdAt, updatedAt       time.Time
	)

	err := s.Scan(
		&id, &applicantID, &listingID,
		&snap.LenderID, &snap.LenderName, &snap.AnnualRatePercent,
		&snap.VehiclePrice, &snap.DownPayment, &snap.FinancedAmount, &snap.TermMonths,
		&snap.MonthlyPayment, &snap.TotalPayment, &snap.TotalInterest,
		&statusStr, &reviewerID, &decisionReason,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CreditApplication{}, err
		}
		return model.CreditApplication{}, fmt.Errorf("scan credit application: %w", err)
	}

	status, err := valueobject.NewCreditApplicationStatus(statusStr)
	if err != nil {
		return model.CreditApplication{}, fmt.Errorf("parse status: %w", err)
	}

	return model.ReconstructCreditApplication(
		id, applicantID, listingID, snap, status,
		reviewerID, decisionReason, version, createdAt, updatedAt,
	), nil
}
