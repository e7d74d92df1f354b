package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"mycurrency/internal/provider"
	"mycurrency/internal/repository"
)

func TestTWRR_FullyStoredSeries(t *testing.T) {
	rates := &mockRateRepo{
		listByPairSinceFunc: func(ctx context.Context, source, target string, since time.Time) ([]repository.ExchangeRate, error) {
			return []repository.ExchangeRate{
				storedRate("EUR", "2026-08-18", "1.00"),
				storedRate("EUR", "2026-08-19", "1.10"),
				storedRate("EUR", "2026-08-20", "0.99"),
			}, nil
		},
	}
	svc := newTestService(rates, nil, nil, nil, nil)

	series, err := svc.TWRR(context.Background(), "USD", "EUR", decimal.NewFromInt(100), "2026-08-18")
	if err != nil {
		t.Fatalf("TWRR: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}

	if !series[0].TWRR.IsZero() {
		t.Fatalf("expected zero return on first point, got %s", series[0].TWRR)
	}
	if !series[0].Amount.Equal(rd("100")) {
		t.Fatalf("expected amount 100 at rate 1.00, got %s", series[0].Amount)
	}

	// 1.10 / 1.00 - 1 = 0.1
	if !series[1].TWRR.Equal(rd("0.1")) {
		t.Fatalf("expected twrr 0.1, got %s", series[1].TWRR)
	}
	if !series[1].Amount.Equal(rd("110")) {
		t.Fatalf("expected amount 110, got %s", series[1].Amount)
	}

	// 0.99 / 1.10 - 1 = -0.1
	if !series[2].TWRR.Equal(rd("-0.1")) {
		t.Fatalf("expected twrr -0.1, got %s", series[2].TWRR)
	}
	if !series[2].Amount.Equal(rd("99")) {
		t.Fatalf("expected amount 99, got %s", series[2].Amount)
	}
}

func TestTWRR_BackfillDeduplicatesAcrossProviders(t *testing.T) {
	rates := &mockRateRepo{
		listByPairSinceFunc: func(ctx context.Context, source, target string, since time.Time) ([]repository.ExchangeRate, error) {
			return []repository.ExchangeRate{storedRate("EUR", "2026-08-18", "1.00")}, nil
		},
		recordRateFunc: func(ctx context.Context, source, target string, rate decimal.Decimal, date time.Time, providerName string) (*repository.ExchangeRate, error) {
			rec := storedRate(target, dateKey(date), rate.String())
			rec.ProviderName = providerName
			return &rec, nil
		},
	}
	providers := &mockProviderRepo{
		listActiveFunc: func(ctx context.Context) ([]repository.Provider, error) {
			return []repository.Provider{
				{Name: "Fixer", Priority: 1, Active: true},
				{Name: "Mock", Priority: 2, Active: true},
			}, nil
		},
	}
	var mockAsked []string
	registry := &mockRegistry{
		adapterFunc: func(ctx context.Context, cfg repository.Provider) (provider.Adapter, error) {
			if cfg.Name == "Fixer" {
				return &mockAdapter{
					fetchRatesFunc: func(ctx context.Context, source, target, date string) (*provider.RateSnapshot, error) {
						if date != "2026-08-19" {
							return nil, errors.New("no data for date")
						}
						return &provider.RateSnapshot{
							SourceCode:    source,
							Rates:         map[string]decimal.Decimal{"EUR": rd("1.10")},
							ValuationDate: date,
						}, nil
					},
				}, nil
			}
			return &mockAdapter{
				fetchRatesFunc: func(ctx context.Context, source, target, date string) (*provider.RateSnapshot, error) {
					mockAsked = append(mockAsked, date)
					return &provider.RateSnapshot{
						SourceCode:    source,
						Rates:         map[string]decimal.Decimal{"EUR": rd("1.21")},
						ValuationDate: date,
					}, nil
				},
			}, nil
		},
	}
	svc := newTestService(rates, nil, providers, registry, nil)

	series, err := svc.TWRR(context.Background(), "USD", "EUR", decimal.NewFromInt(100), "2026-08-18")
	if err != nil {
		t.Fatalf("TWRR: %v", err)
	}

	// One point per date from start through today, ascending, no duplicates.
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}
	for i, want := range []string{"2026-08-18", "2026-08-19", "2026-08-20"} {
		if series[i].ValuationDate != want {
			t.Fatalf("point %d: expected date %s, got %s", i, want, series[i].ValuationDate)
		}
	}

	// The lower-priority provider is only asked for the date the first one missed.
	if len(mockAsked) != 1 || mockAsked[0] != "2026-08-20" {
		t.Fatalf("expected fallback provider asked only for 2026-08-20, got %v", mockAsked)
	}
}

func TestTWRR_NoData(t *testing.T) {
	rates := &mockRateRepo{
		listByPairSinceFunc: func(ctx context.Context, source, target string, since time.Time) ([]repository.ExchangeRate, error) {
			return nil, nil
		},
	}
	providers := &mockProviderRepo{
		listActiveFunc: func(ctx context.Context) ([]repository.Provider, error) {
			return nil, nil
		},
	}
	svc := newTestService(rates, nil, providers, nil, nil)

	if _, err := svc.TWRR(context.Background(), "USD", "EUR", decimal.NewFromInt(100), "2026-08-18"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTWRR_Validation(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil, nil)

	t.Run("rejects future start date", func(t *testing.T) {
		if _, err := svc.TWRR(context.Background(), "USD", "EUR", decimal.NewFromInt(100), "2026-08-21"); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
	})

	t.Run("rejects malformed start date", func(t *testing.T) {
		if _, err := svc.TWRR(context.Background(), "USD", "EUR", decimal.NewFromInt(100), "18-08-2026"); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		if _, err := svc.TWRR(context.Background(), "USD", "EUR", decimal.Zero, "2026-08-18"); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("rejects unsupported currency", func(t *testing.T) {
		if _, err := svc.TWRR(context.Background(), "USD", "ZZZ", decimal.NewFromInt(100), "2026-08-18"); !errors.Is(err, ErrUnsupportedCurrency) {
			t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
		}
	})
}
