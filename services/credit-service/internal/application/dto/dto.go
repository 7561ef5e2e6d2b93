package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// SimulationRequest asks for a credit simulation. Either ListingID or
// VehiclePrice must be set; an explicit VehiclePrice wins. An empty LenderID
// simulates every eligible lender.
type SimulationRequest struct {
	ListingID       string  `json:"listing_id,omitempty"`
	VehiclePrice    float64 `json:"vehicle_price,omitempty"`
	DownPayment     float64 `json:"down_payment"`
	TermMonths      int     `json:"term_months"`
	LenderID        string  `json:"lender_id,omitempty"`
	TopN            int     `json:"top_n,omitempty"`
	IncludeSchedule bool    `json:"include_schedule,omitempty"`
}

// SubmitApplicationRequest files a credit application for the caller.
type SubmitApplicationRequest struct {
	ApplicantID  string  `json:"-"`
	ListingID    string  `json:"listing_id,omitempty"`
	VehiclePrice float64 `json:"vehicle_price,omitempty"`
	DownPayment  float64 `json:"down_payment"`
	TermMonths   int     `json:"term_months"`
	LenderID     string  `json:"lender_id"`
}

// Caller identifies who is acting on an application.
type Caller struct {
	UserID  string
	IsAdmin bool
}

// GetApplicationRequest identifies a credit application to retrieve.
type GetApplicationRequest struct {
	Caller        Caller `json:"-"`
	ApplicationID string `json:"application_id"`
}

// ListApplicationsByStatusRequest filters the admin review queue.
type ListApplicationsByStatusRequest struct {
	Status string `json:"status"`
	Limit  int    `json:"limit,omitempty"`
}

// ReviewRequest carries an admin decision on an application.
type ReviewRequest struct {
	ReviewerID    string `json:"-"`
	ApplicationID string `json:"application_id"`
	Reason        string `json:"reason,omitempty"`
}

// CancelApplicationRequest withdraws an application.
type CancelApplicationRequest struct {
	Caller        Caller `json:"-"`
	ApplicationID string `json:"application_id"`
	Reason        string `json:"reason,omitempty"`
}

// LenderTerms is shared by lender create and update requests.
type LenderTerms struct {
	AnnualRatePercent  float64 `json:"annual_rate_percent"`
	MinTermMonths      int     `json:"min_term_months"`
	MaxTermMonths      int     `json:"max_term_months"`
	ProcessingTimeDays int     `json:"processing_time_days"`
}

// CreateLenderRequest registers a bank partner. An empty ID is generated.
type CreateLenderRequest struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	LenderTerms
}

// UpdateLenderRequest replaces a bank partner's terms.
type UpdateLenderRequest struct {
	LenderID string `json:"lender_id"`
	Name     string `json:"name,omitempty"`
	LenderTerms
}

// SetLenderActiveRequest toggles a bank partner.
type SetLenderActiveRequest struct {
	LenderID string `json:"lender_id"`
	Active   bool   `json:"active"`
}

// ListLendersRequest lists bank partners.
type ListLendersRequest struct {
	IncludeInactive bool `json:"include_inactive,omitempty"`
}

// BankPartnerRecord is one entry of the partner sync feed.
type BankPartnerRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	LenderTerms
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LenderResponse is the external representation of a bank partner.
type LenderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
	LenderTerms
}

// PaymentFigures are the amortization results rounded to cents.
type PaymentFigures struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}

// AmortizationEntryResponse represents a single amortization schedule entry.
type AmortizationEntryResponse struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// SimulationResultResponse is one lender's outcome. Payment is nil for an
// ineligible combination.
type SimulationResultResponse struct {
	Lender         LenderResponse              `json:"lender"`
	FinancedAmount decimal.Decimal             `json:"financed_amount"`
	TermMonths     int                         `json:"term_months"`
	Eligible       bool                        `json:"eligible"`
	Payment        *PaymentFigures             `json:"payment,omitempty"`
	Schedule       []AmortizationEntryResponse `json:"schedule,omitempty"`
}

// SimulationResponse wraps the results of a simulation call in ranked order.
type SimulationResponse struct {
	ListingID      string                     `json:"listing_id,omitempty"`
	VehiclePrice   decimal.Decimal            `json:"vehicle_price"`
	DownPayment    decimal.Decimal            `json:"down_payment"`
	FinancedAmount decimal.Decimal            `json:"financed_amount"`
	TermMonths     int                        `json:"term_months"`
	Results        []SimulationResultResponse `json:"results"`
}

// CreditApplicationResponse is the external representation of a credit application.
type CreditApplicationResponse struct {
	ID                string          `json:"id"`
	ApplicantID       string          `json:"applicant_id"`
	ListingID         string          `json:"listing_id,omitempty"`
	LenderID          string          `json:"lender_id"`
	LenderName        string          `json:"lender_name"`
	AnnualRatePercent float64         `json:"annual_rate_percent"`
	VehiclePrice      decimal.Decimal `json:"vehicle_price"`
	DownPayment       decimal.Decimal `json:"down_payment"`
	FinancedAmount    decimal.Decimal `json:"financed_amount"`
	TermMonths        int             `json:"term_months"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment"`
	TotalPayment      decimal.Decimal `json:"total_payment"`
	TotalInterest     decimal.Decimal `json:"total_interest"`
	Status            string          `json:"status"`
	ReviewerID        string          `json:"reviewer_id,omitempty"`
	DecisionReason    string          `json:"decision_reason,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ListApplicationsResponse wraps a page of applications.
type ListApplicationsResponse struct {
	Applications []CreditApplicationResponse `json:"applications"`
}

// ListLendersResponse wraps the bank-partner directory.
type ListLendersResponse struct {
	Lenders []LenderResponse `json:"lenders"`
}

// SyncResult summarises one bank-partner sync batch.
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
