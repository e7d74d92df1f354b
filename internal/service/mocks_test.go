package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mycurrency/internal/provider"
	"mycurrency/internal/repository"
)

// Mock rate repository
type mockRateRepo struct {
	getActiveFunc           func(ctx context.Context, source, target string, date time.Time) (*repository.ExchangeRate, error)
	listBySourceInRangeFunc func(ctx context.Context, source string, from, to time.Time) ([]repository.ExchangeRate, error)
	listByPairSinceFunc     func(ctx context.Context, source, target string, since time.Time) ([]repository.ExchangeRate, error)
	recordRateFunc          func(ctx context.Context, source, target string, rate decimal.Decimal, date time.Time, providerName string) (*repository.ExchangeRate, error)
}

func (m *mockRateRepo) GetActive(ctx context.Context, source, target string, date time.Time) (*repository.ExchangeRate, error) {
	return m.getActiveFunc(ctx, source, target, date)
}

func (m *mockRateRepo) ListBySourceInRange(ctx context.Context, source string, from, to time.Time) ([]repository.ExchangeRate, error) {
	return m.listBySourceInRangeFunc(ctx, source, from, to)
}

func (m *mockRateRepo) ListByPairSince(ctx context.Context, source, target string, since time.Time) ([]repository.ExchangeRate, error) {
	return m.listByPairSinceFunc(ctx, source, target, since)
}

func (m *mockRateRepo) RecordRate(ctx context.Context, source, target string, rate decimal.Decimal, date time.Time, providerName string) (*repository.ExchangeRate, error) {
	return m.recordRateFunc(ctx, source, target, rate, date, providerName)
}

// Mock currency repository
type mockCurrencyRepo struct {
	getByCodeFunc func(ctx context.Context, code string) (*repository.Currency, error)
	listCodesFunc func(ctx context.Context) ([]string, error)
	createFunc    func(ctx context.Context, code, name, symbol string) (*repository.Currency, error)
}

func (m *mockCurrencyRepo) GetByCode(ctx context.Context, code string) (*repository.Currency, error) {
	return m.getByCodeFunc(ctx, code)
}

func (m *mockCurrencyRepo) ListCodes(ctx context.Context) ([]string, error) {
	return m.listCodesFunc(ctx)
}

func (m *mockCurrencyRepo) Create(ctx context.Context, code, name, symbol string) (*repository.Currency, error) {
	return m.createFunc(ctx, code, name, symbol)
}

// Mock provider repository
type mockProviderRepo struct {
	listActiveFunc func(ctx context.Context) ([]repository.Provider, error)
	upsertFunc     func(ctx context.Context, p repository.Provider) (*repository.Provider, error)
}

func (m *mockProviderRepo) ListActive(ctx context.Context) ([]repository.Provider, error) {
	return m.listActiveFunc(ctx)
}

func (m *mockProviderRepo) Upsert(ctx context.Context, p repository.Provider) (*repository.Provider, error) {
	return m.upsertFunc(ctx, p)
}

// Mock adapter and registry
type mockAdapter struct {
	setEndpointFunc func(baseURL, segment string)
	fetchRatesFunc  func(ctx context.Context, source, target, date string) (*provider.RateSnapshot, error)
}

func (m *mockAdapter) SetEndpoint(baseURL, segment string) {
	if m.setEndpointFunc != nil {
		m.setEndpointFunc(baseURL, segment)
	}
}

func (m *mockAdapter) FetchRates(ctx context.Context, source, target, date string) (*provider.RateSnapshot, error) {
	return m.fetchRatesFunc(ctx, source, target, date)
}

type mockRegistry struct {
	adapterFunc func(ctx context.Context, cfg repository.Provider) (provider.Adapter, error)
}

func (m *mockRegistry) Adapter(ctx context.Context, cfg repository.Provider) (provider.Adapter, error) {
	return m.adapterFunc(ctx, cfg)
}

// Mock enqueuer
type mockEnqueuer struct {
	enqueueFunc func(ctx context.Context, payload BackfillPayload) error
}

func (m *mockEnqueuer) EnqueueBackfill(ctx context.Context, payload BackfillPayload) error {
	return m.enqueueFunc(ctx, payload)
}

// fixedNow pins the service clock so "today" is stable across a test.
var fixedNow = time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)

func newTestService(rates *mockRateRepo, currencies *mockCurrencyRepo, providers *mockProviderRepo, registry *mockRegistry, enqueuer *mockEnqueuer) *RateService {
	logger, _ := zap.NewDevelopment()
	var enq BackfillEnqueuer
	if enqueuer != nil {
		enq = enqueuer
	}
	svc := NewRateService(rates, currencies, providers, registry, NewValidator(), enq, logger.Sugar())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

// singleProvider is the common fixture: one active provider at priority 1.
func singleProvider(name string) *mockProviderRepo {
	return &mockProviderRepo{
		listActiveFunc: func(ctx context.Context) ([]repository.Provider, error) {
			return []repository.Provider{{Name: name, Priority: 1, Active: true}}, nil
		},
	}
}

func rd(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
