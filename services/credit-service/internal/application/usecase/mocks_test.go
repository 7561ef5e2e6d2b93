package usecase_test

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/event"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/port"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockLenderDirectory struct {
	lenders         []model.LenderOffer
	listActiveFunc  func(ctx context.Context) ([]model.LenderOffer, error)
	saveFunc        func(ctx context.Context, l model.LenderOffer) error
	upsertBatchFunc func(ctx context.Context, ls []model.LenderOffer) error
	saved           []model.LenderOffer
	batches         [][]model.LenderOffer
}

func (m *mockLenderDirectory) ListActiveLenders(ctx context.Context) ([]model.LenderOffer, error) {
	if m.listActiveFunc != nil {
		return m.listActiveFunc(ctx)
	}
	var out []model.LenderOffer
	for _, l := range m.lenders {
		if l.IsActive() {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockLenderDirectory) ListAll(_ context.Context) ([]model.LenderOffer, error) {
	return slices.Clone(m.lenders), nil
}

func (m *mockLenderDirectory) FindByID(_ context.Context, id string) (model.LenderOffer, error) {
	for _, l := range m.lenders {
		if l.ID() == id {
			return l, nil
		}
	}
	return model.LenderOffer{}, model.ErrLenderNotFound
}

func (m *mockLenderDirectory) Save(ctx context.Context, l model.LenderOffer) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, l)
	}
	m.saved = append(m.saved, l)
	m.put(l)
	return nil
}

func (m *mockLenderDirectory) UpsertBatch(ctx context.Context, ls []model.LenderOffer) error {
	if m.upsertBatchFunc != nil {
		return m.upsertBatchFunc(ctx, ls)
	}
	m.batches = append(m.batches, ls)
	for _, l := range ls {
		m.put(l)
	}
	return nil
}

func (m *mockLenderDirectory) put(l model.LenderOffer) {
	for i, existing := range m.lenders {
		if existing.ID() == l.ID() {
			m.lenders[i] = l
			return
		}
	}
	m.lenders = append(m.lenders, l)
}

type mockListingCatalog struct {
	listings map[string]port.Listing
}

func (m *mockListingCatalog) FindListing(_ context.Context, id string) (port.Listing, error) {
	l, ok := m.listings[id]
	if !ok {
		return port.Listing{}, model.ErrListingNotFound
	}
	return l, nil
}

type mockCreditApplicationRepository struct {
	saveFunc     func(ctx context.Context, app model.CreditApplication) error
	findByIDFunc func(ctx context.Context, id string) (model.CreditApplication, error)
	apps         map[string]model.CreditApplication
	savedApps    []model.CreditApplication
}

func newMockAppRepo(apps ...model.CreditApplication) *mockCreditApplicationRepository {
	m := &mockCreditApplicationRepository{apps: map[string]model.CreditApplication{}}
	for _, a := range apps {
		m.apps[a.ID()] = a
	}
	return m
}

func (m *mockCreditApplicationRepository) Save(ctx context.Context, app model.CreditApplication) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, app)
	}
	m.savedApps = append(m.savedApps, app)
	m.apps[app.ID()] = app.ClearEvents()
	return nil
}

func (m *mockCreditApplicationRepository) FindByID(ctx context.Context, id string) (model.CreditApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	app, ok := m.apps[id]
	if !ok {
		return model.CreditApplication{}, model.ErrApplicationNotFound
	}
	return app, nil
}

func (m *mockCreditApplicationRepository) FindByApplicantID(_ context.Context, applicantID string) ([]model.CreditApplication, error) {
	var out []model.CreditApplication
	for _, a := range m.apps {
		if a.ApplicantID() == applicantID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b model.CreditApplication) int { return strings.Compare(a.ID(), b.ID()) })
	return out, nil
}

func (m *mockCreditApplicationRepository) FindByStatus(_ context.Context, status valueobject.CreditApplicationStatus, limit int) ([]model.CreditApplication, error) {
	var out []model.CreditApplication
	for _, a := range m.apps {
		if a.Status().Equal(status) {
			out = append(out, a)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func (m *mockEventPublisher) types() []string {
	out := make([]string, 0, len(m.publishedEvents))
	for _, e := range m.publishedEvents {
		out = append(out, e.EventType())
	}
	return out
}

// --- Fixtures ---

var fixtureNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newLender(t *testing.T, id string, rate float64, minTerm, maxTerm int, active bool) model.LenderOffer {
	t.Helper()
	l, err := model.NewLenderOffer(id, strings.ToUpper(id), model.LenderTerms{
		AnnualRatePercent:  rate,
		MinTermMonths:      minTerm,
		MaxTermMonths:      maxTerm,
		ProcessingTimeDays: 3,
	}, active, fixtureNow)
	require.NoError(t, err)
	return l
}

func defaultDirectory(t *testing.T) *mockLenderDirectory {
	t.Helper()
	return &mockLenderDirectory{lenders: []model.LenderOffer{
		newLender(t, "hsbc", 15.9, 12, 60, true),
		newLender(t, "bbva", 11.5, 12, 72, true),
		newLender(t, "santander", 13.2, 12, 48, true),
		newLender(t, "banorte", 10.9, 12, 36, true),
		newLender(t, "inbursa", 8.5, 12, 60, false),
	}}
}

func pendingApplication(t *testing.T, applicantID string) model.CreditApplication {
	t.Helper()
	lender := newLender(t, "bbva", 11.5, 12, 72, true)
	req := model.SimulationRequest{VehiclePrice: 350_000, DownPayment: 70_000, TermMonths: 48}
	amort, err := model.ComputeAmortization(req.FinancedAmount(), lender.AnnualRatePercent(), req.TermMonths)
	require.NoError(t, err)
	snap, err := model.SnapshotFromResult(req, model.EligibleResult(lender, req.FinancedAmount(), req.TermMonths, amort))
	require.NoError(t, err)
	app, err := model.NewCreditApplication(applicantID, "", snap, fixtureNow)
	require.NoError(t, err)
	return app.ClearEvents()
}
