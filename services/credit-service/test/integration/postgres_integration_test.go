//go:build integration

package integration

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisgp1/cliquealo.mx-sub002/pkg/testutil"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/valueobject"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/infrastructure/postgres"
)

func migrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "internal", "infrastructure", "postgres", "migrations")
}

func setupTestDB(t *testing.T) *testutil.PostgresContainer {
	t.Helper()
	ctx := context.Background()

	pg := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { pg.Cleanup(t) })

	pg.RunMigrations(t, migrationsDir())
	return pg
}

func newLender(t *testing.T, id string, rate float64, minTerm, maxTerm int, active bool) model.LenderOffer {
	t.Helper()
	l, err := model.NewLenderOffer(id, id, model.LenderTerms{
		AnnualRatePercent: rate, MinTermMonths: minTerm, MaxTermMonths: maxTerm, ProcessingTimeDays: 3,
	}, active, time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, err)
	return l
}

func TestLenderRepo_SeedAndOrdering(t *testing.T) {
	pg := setupTestDB(t)
	repo := postgres.NewLenderRepo(pg.Pool)
	ctx := context.Background()

	seeded, err := repo.ListActiveLenders(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, seeded)
	for i := 1; i < len(seeded); i++ {
		assert.LessOrEqual(t, seeded[i-1].AnnualRatePercent(), seeded[i].AnnualRatePercent())
	}

	pg.Truncate(t, "credit_applications", "bank_partners")

	require.NoError(t, repo.Save(ctx, newLender(t, "b", 12, 12, 60, true)))
	require.NoError(t, repo.Save(ctx, newLender(t, "a", 12, 12, 60, true)))
	require.NoError(t, repo.Save(ctx, newLender(t, "off", 5, 12, 60, false)))

	active, err := repo.ListActiveLenders(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].ID())
	assert.Equal(t, "b", active[1].ID())

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLenderRepo_SaveFindAndVersioning(t *testing.T) {
	pg := setupTestDB(t)
	repo := postgres.NewLenderRepo(pg.Pool)
	ctx := context.Background()

	lender := newLender(t, testutil.TestLenderBanorte+"-it", 10.5, 12, 48, true)
	require.NoError(t, repo.Save(ctx, lender))

	got, err := repo.FindByID(ctx, lender.ID())
	require.NoError(t, err)
	assert.Equal(t, lender.Terms(), got.Terms())
	assert.Equal(t, 1, got.Version())

	updated, err := got.Update("", model.LenderTerms{
		AnnualRatePercent: 9.9, MinTermMonths: 12, MaxTermMonths: 60, ProcessingTimeDays: 2,
	}, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, updated))

	reloaded, err := repo.FindByID(ctx, lender.ID())
	require.NoError(t, err)
	assert.Equal(t, 9.9, reloaded.AnnualRatePercent())
	assert.Equal(t, 2, reloaded.Version())

	// Saving from the stale copy must not overwrite the newer row.
	err = repo.Save(ctx, updated)
	assert.ErrorIs(t, err, model.ErrVersionConflict)

	_, err = repo.FindByID(ctx, "ghost")
	assert.ErrorIs(t, err, model.ErrLenderNotFound)
}

func TestLenderRepo_UpsertBatchIsAtomic(t *testing.T) {
	pg := setupTestDB(t)
	repo := postgres.NewLenderRepo(pg.Pool)
	ctx := context.Background()
	pg.Truncate(t, "credit_applications", "bank_partners")

	existing := newLender(t, "existing", 11, 12, 60, true)
	require.NoError(t, repo.Save(ctx, existing))
	stale, err := existing.Update("", existing.Terms(), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, stale))

	// The stale copy still carries version 1, so the whole batch fails.
	err = repo.UpsertBatch(ctx, []model.LenderOffer{newLender(t, "fresh", 9, 12, 60, true), stale})
	require.ErrorIs(t, err, model.ErrVersionConflict)

	_, err = repo.FindByID(ctx, "fresh")
	assert.ErrorIs(t, err, model.ErrLenderNotFound)

	require.NoError(t, repo.UpsertBatch(ctx, []model.LenderOffer{newLender(t, "fresh", 9, 12, 60, true)}))
	_, err = repo.FindByID(ctx, "fresh")
	assert.NoError(t, err)
}

func TestCreditApplicationRepo_Lifecycle(t *testing.T) {
	pg := setupTestDB(t)
	lenders := postgres.NewLenderRepo(pg.Pool)
	repo := postgres.NewCreditApplicationRepo(pg.Pool)
	ctx := context.Background()

	lender := newLender(t, "app-lender", 12, 12, 60, true)
	require.NoError(t, lenders.Save(ctx, lender))

	snapshot := model.SimulationSnapshot{
		LenderID:          lender.ID(),
		LenderName:        lender.Name(),
		AnnualRatePercent: 12,
		VehiclePrice:      decimal.RequireFromString("500000.00"),
		DownPayment:       decimal.RequireFromString("100000.00"),
		FinancedAmount:    decimal.RequireFromString("400000.00"),
		MonthlyPayment:    decimal.RequireFromString("10533.53"),
		TotalPayment:      decimal.RequireFromString("505609.64"),
		TotalInterest:     decimal.RequireFromString("105609.64"),
		TermMonths:        48,
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	app, err := model.NewCreditApplication(testutil.TestUserID, testutil.TestListingID, snapshot, now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, app.ClearEvents()))

	got, err := repo.FindByID(ctx, app.ID())
	require.NoError(t, err)
	assert.Equal(t, valueobject.StatusPending, got.Status())
	assert.True(t, snapshot.MonthlyPayment.Equal(got.Simulation().MonthlyPayment))
	assert.True(t, snapshot.FinancedAmount.Equal(got.Simulation().FinancedAmount))
	assert.Equal(t, 48, got.Simulation().TermMonths)

	reviewing, err := got.StartReview(testutil.TestAdminID, now.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, reviewing.ClearEvents()))

	queue, err := repo.FindByStatus(ctx, valueobject.StatusUnderReview, 10)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, testutil.TestAdminID, queue[0].ReviewerID())
	assert.Equal(t, 2, queue[0].Version())

	assert.ErrorIs(t, repo.Save(ctx, reviewing.ClearEvents()), model.ErrVersionConflict)

	mine, err := repo.FindByApplicantID(ctx, testutil.TestUserID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	none, err := repo.FindByApplicantID(ctx, testutil.TestUserID2)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = repo.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, model.ErrApplicationNotFound)
}

func TestListingRepo_FindListing(t *testing.T) {
	pg := setupTestDB(t)
	repo := postgres.NewListingRepo(pg.Pool)
	ctx := context.Background()

	_, err := pg.Pool.Exec(ctx,
		`INSERT INTO listings (id, title, price, active) VALUES ($1, 'Jetta 2021', 385000.50, TRUE)`,
		testutil.TestListingID)
	require.NoError(t, err)

	l, err := repo.FindListing(ctx, testutil.TestListingID)
	testutil.RequireNoError(t, err, "find listing")
	assert.Equal(t, "Jetta 2021", l.Title)
	testutil.AssertAmount(t, 385000.50, l.Price)
	assert.True(t, l.Active)

	_, err = repo.FindListing(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrListingNotFound)
}
