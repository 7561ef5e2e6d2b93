package event

import (
	"github.com/crisgp1/cliquealo.mx-sub002/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// Aggregate type names carried in every event envelope.
const (
	AggregateCreditApplication = "CreditApplication"
	AggregateLender            = "Lender"
)

// Event type names.
const (
	TypeApplicationSubmitted     = "credit.application.submitted"
	TypeApplicationReviewStarted = "credit.application.review_started"
	TypeApplicationApproved      = "credit.application.approved"
	TypeApplicationRejected      = "credit.application.rejected"
	TypeApplicationCancelled     = "credit.application.cancelled"
	TypeLenderRegistered         = "credit.lender.registered"
	TypeLenderUpdated            = "credit.lender.updated"
	TypeLenderActivationChanged  = "credit.lender.activation_changed"
)

// ---------------------------------------------------------------------------
// Credit application events
// ---------------------------------------------------------------------------

// CreditApplicationSubmitted is raised when a borrower files an application.
type CreditApplicationSubmitted struct {
	events.BaseEvent
	ApplicantID    string  `json:"applicant_id"`
	LenderID       string  `json:"lender_id"`
	ListingID      string  `json:"listing_id,omitempty"`
	FinancedAmount float64 `json:"financed_amount"`
	TermMonths     int     `json:"term_months"`
	MonthlyPayment float64 `json:"monthly_payment"`
}

func NewCreditApplicationSubmitted(
	applicationID, applicantID, lenderID, listingID string,
	financed float64, termMonths int, monthlyPayment float64,
) CreditApplicationSubmitted {
	return CreditApplicationSubmitted{
		BaseEvent:      events.NewBaseEvent(TypeApplicationSubmitted, applicationID, AggregateCreditApplication),
		ApplicantID:    applicantID,
		LenderID:       lenderID,
		ListingID:      listingID,
		FinancedAmount: financed,
		TermMonths:     termMonths,
		MonthlyPayment: monthlyPayment,
	}
}

// CreditApplicationReviewStarted is raised when an admin picks up an application.
type CreditApplicationReviewStarted struct {
	events.BaseEvent
	ReviewerID string `json:"reviewer_id"`
}

func NewCreditApplicationReviewStarted(applicationID, reviewerID string) CreditApplicationReviewStarted {
	return CreditApplicationReviewStarted{
		BaseEvent:  events.NewBaseEvent(TypeApplicationReviewStarted, applicationID, AggregateCreditApplication),
		ReviewerID: reviewerID,
	}
}

// CreditApplicationDecided is raised on approval or rejection.
type CreditApplicationDecided struct {
	events.BaseEvent
	ApplicantID string `json:"applicant_id"`
	ReviewerID  string `json:"reviewer_id"`
	Reason      string `json:"reason,omitempty"`
}

func NewCreditApplicationApproved(applicationID, applicantID, reviewerID, reason string) CreditApplicationDecided {
	return CreditApplicationDecided{
		BaseEvent:   events.NewBaseEvent(TypeApplicationApproved, applicationID, AggregateCreditApplication),
		ApplicantID: applicantID,
		ReviewerID:  reviewerID,
		Reason:      reason,
	}
}

func NewCreditApplicationRejected(applicationID, applicantID, reviewerID, reason string) CreditApplicationDecided {
	return CreditApplicationDecided{
		BaseEvent:   events.NewBaseEvent(TypeApplicationRejected, applicationID, AggregateCreditApplication),
		ApplicantID: applicantID,
		ReviewerID:  reviewerID,
		Reason:      reason,
	}
}

// CreditApplicationCancelled is raised when an application is withdrawn.
type CreditApplicationCancelled struct {
	events.BaseEvent
	CancelledBy string `json:"cancelled_by"`
	Reason      string `json:"reason,omitempty"`
}

func NewCreditApplicationCancelled(applicationID, cancelledBy, reason string) CreditApplicationCancelled {
	return CreditApplicationCancelled{
		BaseEvent:   events.NewBaseEvent(TypeApplicationCancelled, applicationID, AggregateCreditApplication),
		CancelledBy: cancelledBy,
		Reason:      reason,
	}
}

// ---------------------------------------------------------------------------
// Lender events
// ---------------------------------------------------------------------------

// LenderChanged is raised whenever a bank-partner offer is created or its
// terms change.
type LenderChanged struct {
	events.BaseEvent
	Name               string  `json:"name"`
	AnnualRatePercent  float64 `json:"annual_rate_percent"`
	MinTermMonths      int     `json:"min_term_months"`
	MaxTermMonths      int     `json:"max_term_months"`
	ProcessingTimeDays int     `json:"processing_time_days"`
	Active             bool    `json:"active"`
}

func NewLenderChanged(
	eventType, lenderID, name string,
	rate float64, minTerm, maxTerm, processingDays int, active bool,
) LenderChanged {
	return LenderChanged{
		BaseEvent:          events.NewBaseEvent(eventType, lenderID, AggregateLender),
		Name:               name,
		AnnualRatePercent:  rate,
		MinTermMonths:      minTerm,
		MaxTermMonths:      maxTerm,
		ProcessingTimeDays: processingDays,
		Active:             active,
	}
}

// LenderActivationChanged is raised when a lender is toggled on or off.
type LenderActivationChanged struct {
	events.BaseEvent
	Active bool `json:"active"`
}

func NewLenderActivationChanged(lenderID string, active bool) LenderActivationChanged {
	return LenderActivationChanged{
		BaseEvent: events.NewBaseEvent(TypeLenderActivationChanged, lenderID, AggregateLender),
		Active:    active,
	}
}
