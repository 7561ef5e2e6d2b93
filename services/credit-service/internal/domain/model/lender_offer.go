package model

import (
	"math"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// LenderTerms value object
// ---------------------------------------------------------------------------

// LenderTerms is the part of a bank-partner offer that drives the math.
type LenderTerms struct {
	AnnualRatePercent  float64
	MinTermMonths      int
	MaxTermMonths      int
	ProcessingTimeDays int
}

// MaxLenderTermMonths caps the longest term a bank partner may offer.
const MaxLenderTermMonths = 600

// Validate checks rate >= 0, 0 < min <= max <= MaxLenderTermMonths and
// processing days > 0.
func (t LenderTerms) Validate() error {
	switch {
	case math.IsNaN(t.AnnualRatePercent) || t.AnnualRatePercent < 0:
		return NewInvalidInput("annual_rate_percent", "must not be negative, got %v", t.AnnualRatePercent)
	case t.MinTermMonths <= 0:
		return NewInvalidInput("min_term_months", "must be positive, got %d", t.MinTermMonths)
	case t.MaxTermMonths < t.MinTermMonths:
		return NewInvalidInput("max_term_months", "must be >= min_term_months (%d), got %d", t.MinTermMonths, t.MaxTermMonths)
	case t.MaxTermMonths > MaxLenderTermMonths:
		return NewInvalidInput("max_term_months", "must be at most %d, got %d", MaxLenderTermMonths, t.MaxTermMonths)
	case t.ProcessingTimeDays <= 0:
		return NewInvalidInput("processing_time_days", "must be positive, got %d", t.ProcessingTimeDays)
	}
	return nil
}

// CoversTerm reports whether min <= termMonths <= max.
func (t LenderTerms) CoversTerm(termMonths int) bool {
	return t.MinTermMonths <= termMonths && termMonths <= t.MaxTermMonths
}

// ---------------------------------------------------------------------------
// LenderOffer aggregate root
// ---------------------------------------------------------------------------

// LenderOffer is a bank partner as seen by the simulator. It is immutable;
// every mutation returns a new copy.
type LenderOffer struct {
	id        string
	name      string
	terms     LenderTerms
	active    bool
	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewLenderOffer validates and creates a lender offer at version 1.
func NewLenderOffer(id, name string, terms LenderTerms, active bool, now time.Time) (LenderOffer, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return LenderOffer{}, NewInvalidInput("id", "is required")
	}
	if name == "" {
		return LenderOffer{}, NewInvalidInput("name", "is required")
	}
	if err := terms.Validate(); err != nil {
		return LenderOffer{}, err
	}
	return LenderOffer{
		id:        id,
		name:      name,
		terms:     terms,
		active:    active,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructLenderOffer rebuilds an offer from persistence without validation.
func ReconstructLenderOffer(
	id, name string,
	terms LenderTerms,
	active bool,
	version int,
	createdAt, updatedAt time.Time,
) LenderOffer {
	return LenderOffer{
		id:        id,
		name:      name,
		terms:     terms,
		active:    active,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Update replaces name and terms. An empty name keeps the current one.
func (l LenderOffer) Update(name string, terms LenderTerms, now time.Time) (LenderOffer, error) {
	if err := terms.Validate(); err != nil {
		return l, err
	}
	next := l
	if n := strings.TrimSpace(name); n != "" {
		next.name = n
	}
	next.terms = terms
	next.updatedAt = now
	return next, nil
}

// SetActive toggles availability to borrowers.
func (l LenderOffer) SetActive(active bool, now time.Time) LenderOffer {
	next := l
	next.active = active
	next.updatedAt = now
	return next
}

// EligibleFor reports whether the lender is active and its term range covers
// termMonths.
func (l LenderOffer) EligibleFor(termMonths int) bool {
	return l.active && l.terms.CoversTerm(termMonths)
}

func (l LenderOffer) ID() string                 { return l.id }
func (l LenderOffer) Name() string               { return l.name }
func (l LenderOffer) Terms() LenderTerms         { return l.terms }
func (l LenderOffer) AnnualRatePercent() float64 { return l.terms.AnnualRatePercent }
func (l LenderOffer) MinTermMonths() int         { return l.terms.MinTermMonths }
func (l LenderOffer) MaxTermMonths() int         { return l.terms.MaxTermMonths }
func (l LenderOffer) ProcessingTimeDays() int    { return l.terms.ProcessingTimeDays }
func (l LenderOffer) IsActive() bool             { return l.active }
func (l LenderOffer) Version() int               { return l.version }
func (l LenderOffer) CreatedAt() time.Time       { return l.createdAt }
func (l LenderOffer) UpdatedAt() time.Time       { return l.updatedAt }
