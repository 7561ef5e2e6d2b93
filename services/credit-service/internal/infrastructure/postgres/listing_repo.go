package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	pgpkg "github.com/crisgp1/cliquealo.mx-sub002/pkg/postgres"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/port"
)

// ListingRepo implements port.ListingCatalog with a read-only view of the
// marketplace listings table.
type ListingRepo struct {
	db pgpkg.Querier
}

func NewListingRepo(db pgpkg.Querier) *ListingRepo {
	return &ListingRepo{db: db}
}

func (r *ListingRepo) FindListing(ctx context.Context, id string) (port.Listing, error) {
	var (
		l     port.Listing
		price decimal.Decimal
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, title, price, active FROM listings WHERE id = $1`, id,
	).Scan(&l.ID, &l.Title, &price, &l.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return port.Listing{}, fmt.Errorf("%w: %s", model.ErrListingNotFound, id)
	}
	if err != nil {
		return port.Listing{}, fmt.Errorf("find listing: %w", err)
	}
	l.Price = price.InexactFloat64()
	return l, nil
}
