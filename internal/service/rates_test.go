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

func TestResolve_StoreHit(t *testing.T) {
	rates := &mockRateRepo{
		getActiveFunc: func(ctx context.Context, source, target string, date time.Time) (*repository.ExchangeRate, error) {
			if source != "USD" || target != "EUR" {
				t.Fatalf("unexpected pair %s/%s", source, target)
			}
			if dateKey(date) != "2026-08-20" {
				t.Fatalf("expected today's date, got %s", dateKey(date))
			}
			return &repository.ExchangeRate{
				SourceCode: "USD", TargetCode: "EUR",
				ValuationDate: date, RateValue: rd("1.091234"), Active: true,
			}, nil
		},
	}
	providers := &mockProviderRepo{
		listActiveFunc: func(ctx context.Context) ([]repository.Provider, error) {
			t.Fatal("providers must not be consulted on a store hit")
			return nil, nil
		},
	}
	svc := newTestService(rates, nil, providers, nil, nil)

	rate, err := svc.Resolve(context.Background(), "usd", "eur")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !rate.Equal(rd("1.091234")) {
		t.Fatalf("expected stored value 1.091234, got %s", rate)
	}
}

func TestResolve_ProviderFallback(t *testing.T) {
	var recorded bool
	rates := &mockRateRepo{
		getActiveFunc: func(ctx context.Context, source, target string, date time.Time) (*repository.ExchangeRate, error) {
			return nil, nil
		},
		recordRateFunc: func(ctx context.Context, source, target string, rate decimal.Decimal, date time.Time, providerName string) (*repository.ExchangeRate, error) {
			recorded = true
			if providerName != "Mock" {
				t.Fatalf("expected rate recorded for Mock, got %s", providerName)
			}
			if !rate.Equal(rd("1.091587")) {
				t.Fatalf("expected unrounded rate persisted, got %s", rate)
			}
			return &repository.ExchangeRate{RateValue: rate, Active: true}, nil
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
	registry := &mockRegistry{
		adapterFunc: func(ctx context.Context, cfg repository.Provider) (provider.Adapter, error) {
			if cfg.Name == "Fixer" {
				return &mockAdapter{
					fetchRatesFunc: func(ctx context.Context, source, target, date string) (*provider.RateSnapshot, error) {
						return nil, errors.New("connection refused")
					},
				}, nil
			}
			return &mockAdapter{
				fetchRatesFunc: func(ctx context.Context, source, target, date string) (*provider.RateSnapshot, error) {
					return &provider.RateSnapshot{
						SourceCode: source,
						Rates:      map[string]decimal.Decimal{"EUR": rd("1.091587")},
					}, nil
				},
			}, nil
		},
	}
	svc := newTestService(rates, nil, providers, registry, nil)

	rate, err := svc.Resolve(context.Background(), "USD", "EUR")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !rate.Equal(rd("1.092")) {
		t.Fatalf("expected fetched rate rounded to 3 places (1.092), got %s", rate)
	}
	if !recorded {
		t.Fatal("expected fetched rate to be persisted")
	}
}

func TestResolve_AllProvidersFail(t *testing.T) {
	rates := &mockRateRepo{
		getActiveFunc: func(ctx context.Context, source, target string, date time.Time) (*repository.ExchangeRate, error) {
			return nil, nil
		},
	}
	registry := &mockRegistry{
		adapterFunc: func(ctx context.Context, cfg repository.Provider) (provider.Adapter, error) {
			return &mockAdapter{
				fetchRatesFunc: func(ctx context.Context, source, target, date string) (*provider.RateSnapshot, error) {
					return nil, errors.New("boom")
				},
			}, nil
		},
	}
	svc := newTestService(rates, nil, singleProvider("Mock"), registry, nil)

	_, err := svc.Resolve(context.Background(), "USD", "EUR")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolve_SkipsZeroAndMissingRates(t *testing.T) {
	rates := &mockRateRepo{
		getActiveFunc: func(ctx context.Context, source, target string, date time.Time) (*repository.ExchangeRate, error) {
			return nil, nil
		},
	}
	registry := &mockRegistry{
		adapterFunc: func(ctx context.Context, cfg repository.Provider) (provider.Adapter, error) {
			return &mockAdapter{
				fetchRatesFunc: func(ctx context.Context, source, target, date string) (*provider.RateSnapshot, error) {
					// Snapshot without the requested target, and a zero rate elsewhere.
					return &provider.RateSnapshot{
						SourceCode: source,
						Rates:      map[string]decimal.Decimal{"GBP": decimal.Zero},
					}, nil
				},
			}, nil
		},
	}
	svc := newTestService(rates, nil, singleProvider("Mock"), registry, nil)

	if _, err := svc.Resolve(context.Background(), "USD", "EUR"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Resolve(context.Background(), "USD", "GBP"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for zero rate, got %v", err)
	}
}

func TestResolve_Validation(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil, nil)

	tests := []struct {
		source, target string
		errType        error
	}{
		{"US", "EUR", ErrInvalidCodeFormat},
		{"USDA", "EUR", ErrInvalidCodeFormat},
		{"USD", "E1R", ErrInvalidCodeFormat},
		{"", "EUR", ErrInvalidCodeFormat},
		{"ZZZ", "EUR", ErrUnsupportedCurrency},
		{"USD", "ZZZ", ErrUnsupportedCurrency},
	}
	for _, tc := range tests {
		t.Run(tc.source+"/"+tc.target, func(t *testing.T) {
			_, err := svc.Resolve(context.Background(), tc.source, tc.target)
			if !errors.Is(err, tc.errType) {
				t.Fatalf("expected %v, got %v", tc.errType, err)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	t.Run("applies resolved rate", func(t *testing.T) {
		rates := &mockRateRepo{
			getActiveFunc: func(ctx context.Context, source, target string, date time.Time) (*repository.ExchangeRate, error) {
				return &repository.ExchangeRate{RateValue: rd("1.09"), Active: true}, nil
			},
		}
		svc := newTestService(rates, nil, nil, nil, nil)

		conv, err := svc.Convert(context.Background(), "USD", "EUR", decimal.NewFromInt(100))
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if !conv.ConvertedAmount.Equal(rd("109")) {
			t.Fatalf("expected 109, got %s", conv.ConvertedAmount)
		}
		if !conv.Rate.Equal(rd("1.09")) {
			t.Fatalf("expected rate 1.09, got %s", conv.Rate)
		}
	})

	t.Run("identity pair needs no store or provider", func(t *testing.T) {
		// nil collaborators: any access would panic the test.
		svc := newTestService(nil, nil, nil, nil, nil)

		conv, err := svc.Convert(context.Background(), "usd", "USD", rd("42.5"))
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if !conv.ConvertedAmount.Equal(rd("42.5")) {
			t.Fatalf("expected echoed amount, got %s", conv.ConvertedAmount)
		}
		if !conv.Rate.Equal(decimal.NewFromInt(1)) {
			t.Fatalf("expected identity rate 1, got %s", conv.Rate)
		}
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc := newTestService(nil, nil, nil, nil, nil)
		for _, amount := range []decimal.Decimal{decimal.Zero, rd("-5")} {
			if _, err := svc.Convert(context.Background(), "USD", "EUR", amount); !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("expected ErrInvalidAmount for %s, got %v", amount, err)
			}
		}
	})
}

func TestConvertMany(t *testing.T) {
	rates := &mockRateRepo{
		getActiveFunc: func(ctx context.Context, source, target string, date time.Time) (*repository.ExchangeRate, error) {
			if target == "GBP" {
				return nil, nil // force provider path, which will fail below
			}
			return &repository.ExchangeRate{RateValue: rd("1.09"), Active: true}, nil
		},
	}
	providers := &mockProviderRepo{
		listActiveFunc: func(ctx context.Context) ([]repository.Provider, error) {
			return nil, nil // no providers, GBP resolution fails
		},
	}
	svc := newTestService(rates, nil, providers, nil, nil)

	batch, err := svc.ConvertMany(context.Background(), "USD", []string{"EUR", "GBP", "CHF"}, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("ConvertMany: %v", err)
	}
	if len(batch.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(batch.Results))
	}

	byTarget := map[string]TargetConversion{}
	for _, res := range batch.Results {
		byTarget[res.Target] = res
	}
	if !byTarget["GBP"].Failed {
		t.Fatal("expected GBP conversion to be marked failed")
	}
	if byTarget["EUR"].Failed || byTarget["CHF"].Failed {
		t.Fatal("expected EUR and CHF conversions to succeed")
	}
	if !byTarget["EUR"].ConvertedAmount.Equal(rd("109")) {
		t.Fatalf("expected 109 for EUR, got %s", byTarget["EUR"].ConvertedAmount)
	}
}

func TestRequestBackfill(t *testing.T) {
	t.Run("enqueues normalized payload", func(t *testing.T) {
		var got BackfillPayload
		enq := &mockEnqueuer{
			enqueueFunc: func(ctx context.Context, payload BackfillPayload) error {
				got = payload
				return nil
			},
		}
		svc := newTestService(nil, nil, nil, nil, enq)

		if err := svc.RequestBackfill(context.Background(), "usd", "2026-08-01", "2026-08-15"); err != nil {
			t.Fatalf("RequestBackfill: %v", err)
		}
		if got.Source != "USD" || got.DateFrom != "2026-08-01" || got.DateTo != "2026-08-15" {
			t.Fatalf("unexpected payload %+v", got)
		}
	})

	t.Run("rejects bad dates", func(t *testing.T) {
		svc := newTestService(nil, nil, nil, nil, nil)
		if err := svc.RequestBackfill(context.Background(), "USD", "not-a-date", "2026-08-15"); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
		if err := svc.RequestBackfill(context.Background(), "USD", "2026-08-15", "2026-08-01"); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for inverted range, got %v", err)
		}
	})

	t.Run("queue failure maps to internal error", func(t *testing.T) {
		enq := &mockEnqueuer{
			enqueueFunc: func(ctx context.Context, payload BackfillPayload) error {
				return errors.New("redis down")
			},
		}
		svc := newTestService(nil, nil, nil, nil, enq)
		if err := svc.RequestBackfill(context.Background(), "USD", "2026-08-01", "2026-08-15"); !errors.Is(err, ErrInternal) {
			t.Fatalf("expected ErrInternal, got %v", err)
		}
	})
}
