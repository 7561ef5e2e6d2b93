package model

import (
	"math"
	"strings"
)

// LenderSelector chooses between one named lender and every eligible one.
// The zero value selects all lenders.
type LenderSelector struct {
	lenderID string
}

// AllLenders selects every eligible lender.
func AllLenders() LenderSelector { return LenderSelector{} }

// SpecificLender selects a single lender by id.
func SpecificLender(id string) LenderSelector {
	return LenderSelector{lenderID: strings.TrimSpace(id)}
}

// IsAll reports whether no particular lender was requested.
func (s LenderSelector) IsAll() bool { return s.lenderID == "" }

// LenderID returns the requested lender, empty for AllLenders.
func (s LenderSelector) LenderID() string { return s.lenderID }

// SimulationRequest is the borrower input for one simulation call.
type SimulationRequest struct {
	VehiclePrice float64
	DownPayment  float64
	TermMonths   int
	Lender       LenderSelector
}

// FinancedAmount is vehicle price minus down payment.
func (r SimulationRequest) FinancedAmount() float64 {
	return r.VehiclePrice - r.DownPayment
}

// Validate enforces vehiclePrice > 0, 0 <= downPayment < vehiclePrice and
// termMonths > 0.
func (r SimulationRequest) Validate() error {
	switch {
	case math.IsNaN(r.VehiclePrice) || r.VehiclePrice <= 0:
		return NewInvalidInput("vehicle_price", "must be positive, got %v", r.VehiclePrice)
	case math.IsNaN(r.DownPayment) || r.DownPayment < 0:
		return NewInvalidInput("down_payment", "must not be negative, got %v", r.DownPayment)
	case r.DownPayment >= r.VehiclePrice:
		return NewInvalidInput("down_payment", "must be less than vehicle price %v, got %v", r.VehiclePrice, r.DownPayment)
	case r.TermMonths <= 0:
		return NewInvalidInput("term_months", "must be positive, got %d", r.TermMonths)
	}
	return nil
}

// SimulationResult is computed fresh per request and never mutated.
// Payment is nil when the combination is ineligible so that no figures can
// be displayed for it.
type SimulationResult struct {
	Lender         LenderOffer
	FinancedAmount float64
	TermMonths     int
	Eligible       bool
	Payment        *Amortization
}

// IneligibleResult builds a result that withholds every payment figure.
func IneligibleResult(lender LenderOffer, financed float64, termMonths int) SimulationResult {
	return SimulationResult{
		Lender:         lender,
		FinancedAmount: financed,
		TermMonths:     termMonths,
	}
}

// EligibleResult wraps computed figures for lender.
func EligibleResult(lender LenderOffer, financed float64, termMonths int, payment Amortization) SimulationResult {
	return SimulationResult{
		Lender:         lender,
		FinancedAmount: financed,
		TermMonths:     termMonths,
		Eligible:       true,
		Payment:        &payment,
	}
}
