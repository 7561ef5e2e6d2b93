package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/event"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// SimulationSnapshot value object
// ---------------------------------------------------------------------------

// SimulationSnapshot freezes the figures a borrower accepted when applying.
// Amounts are rounded to cents at this boundary.
type SimulationSnapshot struct {
	LenderID          string
	LenderName        string
	AnnualRatePercent float64
	VehiclePrice      decimal.Decimal
	DownPayment       decimal.Decimal
	FinancedAmount    decimal.Decimal
	MonthlyPayment    decimal.Decimal
	TotalPayment      decimal.Decimal
	TotalInterest     decimal.Decimal
	TermMonths        int
}

// SnapshotFromResult captures an eligible simulation. Ineligible results
// carry no figures and are refused.
func SnapshotFromResult(req SimulationRequest, res SimulationResult) (SimulationSnapshot, error) {
	if !res.Eligible || res.Payment == nil {
		return SimulationSnapshot{}, NewInvalidInput("lender_id",
			"lender %s does not finance a %d month term for this amount", res.Lender.ID(), req.TermMonths)
	}
	return SimulationSnapshot{
		LenderID:          res.Lender.ID(),
		LenderName:        res.Lender.Name(),
		AnnualRatePercent: res.Lender.AnnualRatePercent(),
		VehiclePrice:      cents(req.VehiclePrice),
		DownPayment:       cents(req.DownPayment),
		FinancedAmount:    cents(res.FinancedAmount),
		MonthlyPayment:    cents(res.Payment.MonthlyPayment),
		TotalPayment:      cents(res.Payment.TotalPayment),
		TotalInterest:     cents(res.Payment.TotalInterest),
		TermMonths:        res.TermMonths,
	}, nil
}

func cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// ---------------------------------------------------------------------------
// CreditApplication aggregate root
// ---------------------------------------------------------------------------

// CreditApplication is an immutable aggregate. Every mutation returns a new copy.
type CreditApplication struct {
	id             string
	applicantID    string
	listingID      string
	simulation     SimulationSnapshot
	status         valueobject.CreditApplicationStatus
	reviewerID     string
	decisionReason string
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	domainEvents   []event.DomainEvent
}

// NewCreditApplication creates a PENDING application from an accepted simulation.
func NewCreditApplication(applicantID, listingID string, snapshot SimulationSnapshot, now time.Time) (CreditApplication, error) {
	applicantID = strings.TrimSpace(applicantID)
	if applicantID == "" {
		return CreditApplication{}, NewInvalidInput("applicant_id", "is required")
	}
	if snapshot.LenderID == "" {
		return CreditApplication{}, NewInvalidInput("lender_id", "is required")
	}
	if !snapshot.FinancedAmount.IsPositive() {
		return CreditApplication{}, NewInvalidInput("financed_amount", "must be positive")
	}

	id := uuid.New().String()
	app := CreditApplication{
		id:          id,
		applicantID: applicantID,
		listingID:   strings.TrimSpace(listingID),
		simulation:  snapshot,
		status:      valueobject.StatusPending,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}
	app.domainEvents = append(app.domainEvents, event.NewCreditApplicationSubmitted(
		id, applicantID, snapshot.LenderID, app.listingID,
		snapshot.FinancedAmount.InexactFloat64(), snapshot.TermMonths,
		snapshot.MonthlyPayment.InexactFloat64(),
	))
	return app, nil
}

// ReconstructCreditApplication rebuilds an aggregate from persistence without side-effects.
func ReconstructCreditApplication(
	id, applicantID, listingID string,
	snapshot SimulationSnapshot,
	status valueobject.CreditApplicationStatus,
	reviewerID, decisionReason string,
	version int,
	createdAt, updatedAt time.Time,
) CreditApplication {
	return CreditApplication{
		id:             id,
		applicantID:    applicantID,
		listingID:      listingID,
		simulation:     snapshot,
		status:         status,
		reviewerID:     reviewerID,
		decisionReason: decisionReason,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// StartReview transitions PENDING -> UNDER_REVIEW.
func (a CreditApplication) StartReview(reviewerID string, now time.Time) (CreditApplication, error) {
	if reviewerID == "" {
		return a, NewInvalidInput("reviewer_id", "is required")
	}
	next, err := a.transition(valueobject.StatusUnderReview, now)
	if err != nil {
		return a, err
	}
	next.reviewerID = reviewerID
	next.domainEvents = append(next.domainEvents, event.NewCreditApplicationReviewStarted(a.id, reviewerID))
	return next, nil
}

// Approve transitions UNDER_REVIEW -> APPROVED.
func (a CreditApplication) Approve(reviewerID, reason string, now time.Time) (CreditApplication, error) {
	if reviewerID == "" {
		return a, NewInvalidInput("reviewer_id", "is required")
	}
	next, err := a.transition(valueobject.StatusApproved, now)
	if err != nil {
		return a, err
	}
	next.reviewerID = reviewerID
	next.decisionReason = strings.TrimSpace(reason)
	next.domainEvents = append(next.domainEvents, event.NewCreditApplicationApproved(
		a.id, a.applicantID, reviewerID, next.decisionReason,
	))
	return next, nil
}

// Reject transitions UNDER_REVIEW -> REJECTED. A reason is mandatory.
func (a CreditApplication) Reject(reviewerID, reason string, now time.Time) (CreditApplication, error) {
	if reviewerID == "" {
		return a, NewInvalidInput("reviewer_id", "is required")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return a, NewInvalidInput("reason", "is required when rejecting")
	}
	next, err := a.transition(valueobject.StatusRejected, now)
	if err != nil {
		return a, err
	}
	next.reviewerID = reviewerID
	next.decisionReason = reason
	next.domainEvents = append(next.domainEvents, event.NewCreditApplicationRejected(
		a.id, a.applicantID, reviewerID, reason,
	))
	return next, nil
}

// Cancel moves a PENDING or UNDER_REVIEW application to CANCELLED.
func (a CreditApplication) Cancel(cancelledBy, reason string, now time.Time) (CreditApplication, error) {
	next, err := a.transition(valueobject.StatusCancelled, now)
	if err != nil {
		return a, err
	}
	next.decisionReason = strings.TrimSpace(reason)
	next.domainEvents = append(next.domainEvents, event.NewCreditApplicationCancelled(a.id, cancelledBy, next.decisionReason))
	return next, nil
}

func (a CreditApplication) transition(to valueobject.CreditApplicationStatus, now time.Time) (CreditApplication, error) {
	if !a.status.CanTransitionTo(to) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = to
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a CreditApplication) ID() string                                  { return a.id }
func (a CreditApplication) ApplicantID() string                         { return a.applicantID }
func (a CreditApplication) ListingID() string                           { return a.listingID }
func (a CreditApplication) Simulation() SimulationSnapshot              { return a.simulation }
func (a CreditApplication) Status() valueobject.CreditApplicationStatus { return a.status }
func (a CreditApplication) ReviewerID() string                          { return a.reviewerID }
func (a CreditApplication) DecisionReason() string                      { return a.decisionReason }
func (a CreditApplication) Version() int                                { return a.version }
func (a CreditApplication) CreatedAt() time.Time                        { return a.createdAt }
func (a CreditApplication) UpdatedAt() time.Time                        { return a.updatedAt }
func (a CreditApplication) DomainEvents() []event.DomainEvent           { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a CreditApplication) ClearEvents() CreditApplication {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
