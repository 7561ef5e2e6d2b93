package port

import (
	"context"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/event"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LenderDirectory is the bank-partner store. ListActiveLenders must return a
// consistent snapshot for the duration of one simulation.
type LenderDirectory interface {
	ListActiveLenders(ctx context.Context) ([]model.LenderOffer, error)
	ListAll(ctx context.Context) ([]model.LenderOffer, error)
	FindByID(ctx context.Context, id string) (model.LenderOffer, error)
	Save(ctx context.Context, lender model.LenderOffer) error
	UpsertBatch(ctx context.Context, lenders []model.LenderOffer) error
}

// CreditApplicationRepository persists and retrieves credit applications.
type CreditApplicationRepository interface {
	Save(ctx context.Context, app model.CreditApplication) error
	FindByID(ctx context.Context, id string) (model.CreditApplication, error)
	FindByApplicantID(ctx context.Context, applicantID string) ([]model.CreditApplication, error)
	FindByStatus(ctx context.Context, status valueobject.CreditApplicationStatus, limit int) ([]model.CreditApplication, error)
}

// Listing is the subset of a marketplace listing the simulator needs.
type Listing struct {
	ID     string
	Title  string
	Price  float64
	Active bool
}

// ListingCatalog resolves vehicle prices from marketplace listings.
type ListingCatalog interface {
	FindListing(ctx context.Context, id string) (Listing, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
