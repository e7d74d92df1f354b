// Package service implements the rate resolution, backfill and TWRR engines.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mycurrency/internal/provider"
	"mycurrency/internal/repository"
)

// resolvedRateScale is the number of decimal places on freshly fetched rates.
const resolvedRateScale = 3

// ErrorFetchingData is the per-target sentinel used by batch conversion when a
// single target cannot be resolved; one failed target never fails the batch.
const ErrorFetchingData = "Error fetching data"

// RateServiceInterface defines the operations available for rate management.
type RateServiceInterface interface {
	Resolve(ctx context.Context, source, target string) (decimal.Decimal, error)
	Convert(ctx context.Context, source, target string, amount decimal.Decimal) (*Conversion, error)
	ConvertMany(ctx context.Context, source string, targets []string, amount decimal.Decimal) (*BatchConversion, error)
	RatesInRange(ctx context.Context, source, dateFrom, dateTo string) (map[string][]RatePoint, error)
	Chart(ctx context.Context, dateFrom, dateTo string) (*ChartData, error)
	TWRR(ctx context.Context, source, target string, amount decimal.Decimal, startDate string) ([]TWRRPoint, error)
	RequestBackfill(ctx context.Context, source, dateFrom, dateTo string) error
}

// AdapterRegistry selects the adapter for a provider configuration.
type AdapterRegistry interface {
	Adapter(ctx context.Context, cfg repository.Provider) (provider.Adapter, error)
}

// BackfillEnqueuer hands a backfill job off to the background queue.
type BackfillEnqueuer interface {
	EnqueueBackfill(ctx context.Context, payload BackfillPayload) error
}

// TaskTypeBackfill is the asynq task type for background date-range backfills.
const TaskTypeBackfill = "rates:backfill"

// BackfillPayload is the payload structure for backfill asynq tasks.
type BackfillPayload struct {
	Source   string `json:"source"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

// Conversion is the outcome of converting an amount between two currencies.
type Conversion struct {
	Source          string
	Target          string
	Rate            decimal.Decimal
	Amount          decimal.Decimal
	ConvertedAmount decimal.Decimal
}

// TargetConversion is one entry of a batch conversion. When Failed is set the
// rate could not be resolved and the numeric fields are zero.
type TargetConversion struct {
	Target          string
	Rate            decimal.Decimal
	ConvertedAmount decimal.Decimal
	Failed          bool
}

// BatchConversion is the outcome of converting one amount into many targets.
type BatchConversion struct {
	Source  string
	Amount  decimal.Decimal
	Results []TargetConversion
}

// RateService implements the engines over the rate store and provider registry.
type RateService struct {
	rates      repository.RateRepository
	currencies repository.CurrencyRepository
	providers  repository.ProviderRepository
	registry   AdapterRegistry
	validator  Validator
	enqueuer   BackfillEnqueuer
	log        *zap.SugaredLogger
	now        func() time.Time
}

// NewRateService creates a new RateService. enqueuer may be nil when the async
// backfill queue is disabled.
func NewRateService(
	rates repository.RateRepository,
	currencies repository.CurrencyRepository,
	providers repository.ProviderRepository,
	registry AdapterRegistry,
	validator Validator,
	enqueuer BackfillEnqueuer,
	logger *zap.SugaredLogger,
) *RateService {
	return &RateService{
		rates:      rates,
		currencies: currencies,
		providers:  providers,
		registry:   registry,
		validator:  validator,
		enqueuer:   enqueuer,
		log:        logger,
		now:        time.Now,
	}
}

// Resolve returns the current rate for source/target: the active today-dated
// store record when present, otherwise the first usable rate from the ranked
// providers, persisted through the activity update before returning.
func (s *RateService) Resolve(ctx context.Context, source, target string) (decimal.Decimal, error) {
	source, target, err := s.normalizePair(source, target)
	if err != nil {
		return decimal.Decimal{}, err
	}

	today := dateOnly(s.now())
	rec, err := s.rates.GetActive(ctx, source, target, today)
	if err != nil {
		s.log.Errorw("DB error fetching active rate", "source", source, "target", target, "error", err)
		return decimal.Decimal{}, ErrInternal
	}
	if rec != nil {
		return rec.RateValue, nil
	}

	providers, err := s.providers.ListActive(ctx)
	if err != nil {
		s.log.Errorw("DB error listing providers", "error", err)
		return decimal.Decimal{}, ErrInternal
	}

	for _, p := range providers {
		adapter, err := s.registry.Adapter(ctx, p)
		if err != nil {
			s.log.Errorw("Provider unusable", "provider", p.Name, "error", err)
			continue
		}
		adapter.SetEndpoint(p.BaseURL, provider.EndpointLatest)

		snap, err := adapter.FetchRates(ctx, source, target, "")
		if err != nil {
			s.log.Errorw("Provider fetch failed", "provider", p.Name, "source", source, "target", target, "error", err)
			continue
		}

		rate, ok := snap.Rates[target]
		if !ok || rate.IsZero() {
			continue
		}

		if _, err := s.rates.RecordRate(ctx, source, target, rate, today, p.Name); err != nil {
			s.log.Errorw("Failed to persist fetched rate", "provider", p.Name, "source", source, "target", target, "error", err)
			continue
		}
		return rate.Round(resolvedRateScale), nil
	}

	return decimal.Decimal{}, ErrNotFound
}

// Convert converts amount from source into target at the resolved current
// rate. An identity pair echoes the amount without any store or provider access.
func (s *RateService) Convert(ctx context.Context, source, target string, amount decimal.Decimal) (*Conversion, error) {
	source, target, err := s.normalizePair(source, target)
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	if source == target {
		return &Conversion{
			Source:          source,
			Target:          target,
			Rate:            decimal.NewFromInt(1),
			Amount:          amount,
			ConvertedAmount: amount,
		}, nil
	}

	rate, err := s.Resolve(ctx, source, target)
	if err != nil {
		return nil, err
	}

	return &Conversion{
		Source:          source,
		Target:          target,
		Rate:            rate,
		Amount:          amount,
		ConvertedAmount: amount.Mul(rate),
	}, nil
}

// ConvertMany converts one amount into many targets. Resolution failures are
// recorded per target and never abort the remaining conversions.
func (s *RateService) ConvertMany(ctx context.Context, source string, targets []string, amount decimal.Decimal) (*BatchConversion, error) {
	if err := s.validator.Validate(source); err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	source = strings.ToUpper(source)

	batch := &BatchConversion{
		Source:  source,
		Amount:  amount,
		Results: make([]TargetConversion, 0, len(targets)),
	}

	for _, target := range targets {
		conv, err := s.Convert(ctx, source, target, amount)
		if err != nil {
			batch.Results = append(batch.Results, TargetConversion{
				Target: strings.ToUpper(target),
				Failed: true,
			})
			continue
		}
		batch.Results = append(batch.Results, TargetConversion{
			Target:          conv.Target,
			Rate:            conv.Rate,
			ConvertedAmount: conv.ConvertedAmount,
		})
	}
	return batch, nil
}

// RequestBackfill validates the parameters and enqueues a background
// date-range backfill job.
func (s *RateService) RequestBackfill(ctx context.Context, source, dateFrom, dateTo string) error {
	if err := s.validator.Validate(source); err != nil {
		return err
	}
	if _, _, err := parseRange(dateFrom, dateTo); err != nil {
		return err
	}
	if s.enqueuer == nil {
		s.log.Errorw("Backfill requested but no queue is configured")
		return ErrInternal
	}

	payload := BackfillPayload{
		Source:   strings.ToUpper(source),
		DateFrom: dateFrom,
		DateTo:   dateTo,
	}
	if err := s.enqueuer.EnqueueBackfill(ctx, payload); err != nil {
		s.log.Errorw("Failed to enqueue backfill task", "source", source, "error", err)
		return ErrInternal
	}

	s.log.Infow("Enqueued backfill task", "source", payload.Source, "date_from", dateFrom, "date_to", dateTo)
	return nil
}

func (s *RateService) normalizePair(source, target string) (string, string, error) {
	if err := s.validator.Validate(source); err != nil {
		return "", "", err
	}
	if err := s.validator.Validate(target); err != nil {
		return "", "", err
	}
	return strings.ToUpper(source), strings.ToUpper(target), nil
}

// parseRange parses and orders an inclusive date range.
func parseRange(dateFrom, dateTo string) (time.Time, time.Time, error) {
	from, err := parseDate(dateFrom)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	to, err := parseDate(dateTo)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return from, to, nil
}
