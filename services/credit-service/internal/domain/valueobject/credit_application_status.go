package valueobject

import (
	"errors"
	"fmt"
)

// ErrInvalidStatusTransition is returned when a state transition is not allowed.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// CreditApplicationStatus represents the lifecycle stage of a credit application.
//
//	PENDING -> UNDER_REVIEW -> APPROVED | REJECTED
//	PENDING | UNDER_REVIEW -> CANCELLED
type CreditApplicationStatus struct {
	value string
}

const (
	statusPending     = "PENDING"
	statusUnderReview = "UNDER_REVIEW"
	statusApproved    = "APPROVED"
	statusRejected    = "REJECTED"
	statusCancelled   = "CANCELLED"
)

var (
	StatusPending     = CreditApplicationStatus{value: statusPending}
	StatusUnderReview = CreditApplicationStatus{value: statusUnderReview}
	StatusApproved    = CreditApplicationStatus{value: statusApproved}
	StatusRejected    = CreditApplicationStatus{value: statusRejected}
	StatusCancelled   = CreditApplicationStatus{value: statusCancelled}
)

var validStatuses = map[string]CreditApplicationStatus{
	statusPending:     StatusPending,
	statusUnderReview: StatusUnderReview,
	statusApproved:    StatusApproved,
	statusRejected:    StatusRejected,
	statusCancelled:   StatusCancelled,
}

var allowedTransitions = map[string][]string{
	statusPending:     {statusUnderReview, statusCancelled},
	statusUnderReview: {statusApproved, statusRejected, statusCancelled},
}

// NewCreditApplicationStatus creates a status from a raw string.
func NewCreditApplicationStatus(s string) (CreditApplicationStatus, error) {
	v, ok := validStatuses[s]
	if !ok {
		return CreditApplicationStatus{}, fmt.Errorf("invalid credit application status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s CreditApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s CreditApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s CreditApplicationStatus) Equal(other CreditApplicationStatus) bool {
	return s.value == other.value
}

// IsTerminal reports whether no further transition is possible.
func (s CreditApplicationStatus) IsTerminal() bool {
	return len(allowedTransitions[s.value]) == 0
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s CreditApplicationStatus) CanTransitionTo(next CreditApplicationStatus) bool {
	for _, v := range allowedTransitions[s.value] {
		if v == next.value {
			return true
		}
	}
	return false
}
