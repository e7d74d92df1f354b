package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"mycurrency/internal/repository"
)

// TWRRPoint is one entry of a time-weighted-return series: the rate observed
// on a date, the simple period return against the previous observation, and
// the principal marked to market at that date's rate.
type TWRRPoint struct {
	ValuationDate string
	Rate          decimal.Decimal
	TWRR          decimal.Decimal
	Amount        decimal.Decimal
}

// TWRR derives the return series for a principal amount invested from source
// into target on startDate, observed daily through today. Missing dates are
// backfilled from the ranked providers before the walk; the series holds one
// entry per date with a rate, ascending by date.
func (s *RateService) TWRR(ctx context.Context, source, target string, amount decimal.Decimal, startDate string) ([]TWRRPoint, error) {
	source, target, err := s.normalizePair(source, target)
	if err != nil {
		return nil, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	start, err := parseDate(startDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	today := dateOnly(s.now())
	if start.After(today) {
		return nil, ErrInvalidDate
	}
	fullRange := dateRange(start, today)

	records, err := s.rates.ListByPairSince(ctx, source, target, start)
	if err != nil {
		s.log.Errorw("DB error listing pair history", "source", source, "target", target, "error", err)
		return nil, ErrInternal
	}

	existingDates := make(map[string]struct{}, len(records))
	for _, rec := range records {
		existingDates[dateKey(rec.ValuationDate)] = struct{}{}
	}
	var missing []string
	for _, day := range fullRange {
		if _, ok := existingDates[dateKey(day)]; !ok {
			missing = append(missing, dateKey(day))
		}
	}

	if len(missing) > 0 {
		records = append(records, s.backfillPair(ctx, source, target, missing)...)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ValuationDate.Before(records[j].ValuationDate)
	})

	one := decimal.NewFromInt(1)
	series := make([]TWRRPoint, 0, len(records))
	var previousRate decimal.Decimal

	for i, rec := range records {
		twrr := decimal.Zero
		if i > 0 {
			twrr = rec.RateValue.Div(previousRate).Sub(one)
		}
		series = append(series, TWRRPoint{
			ValuationDate: dateKey(rec.ValuationDate),
			Rate:          rec.RateValue,
			TWRR:          twrr,
			Amount:        amount.Mul(rec.RateValue),
		})
		previousRate = rec.RateValue
	}
	return series, nil
}

// backfillPair fetches missing dates for one pair, walking providers by
// ascending priority. Each date is fetched at most once: later providers are
// asked only for dates earlier providers did not cover, so the series never
// gains duplicate dates. Every fetched point goes through the activity update.
func (s *RateService) backfillPair(ctx context.Context, source, target string, missingDates []string) []repository.ExchangeRate {
	providers, err := s.providers.ListActive(ctx)
	if err != nil {
		s.log.Errorw("DB error listing providers", "error", err)
		return nil
	}

	remaining := make(map[string]struct{}, len(missingDates))
	for _, date := range missingDates {
		remaining[date] = struct{}{}
	}

	var fetched []repository.ExchangeRate
	for _, p := range providers {
		if len(remaining) == 0 {
			break
		}
		adapter, err := s.registry.Adapter(ctx, p)
		if err != nil {
			s.log.Errorw("Provider unusable", "provider", p.Name, "error", err)
			continue
		}

		for _, date := range missingDates {
			if _, miss := remaining[date]; !miss {
				continue
			}
			adapter.SetEndpoint(p.BaseURL, date)
			snap, err := adapter.FetchRates(ctx, source, target, date)
			if err != nil {
				s.log.Warnw("Provider fetch failed for date", "provider", p.Name, "source", source, "date", date, "error", err)
				continue
			}
			rate, ok := snap.Rates[target]
			if !ok || rate.IsZero() {
				continue
			}

			day, err := parseDate(date)
			if err != nil {
				continue
			}
			rec, err := s.rates.RecordRate(ctx, source, target, rate, day, p.Name)
			if err != nil {
				s.log.Errorw("Failed to persist fetched rate", "provider", p.Name,
					"source", source, "target", target, "date", date, "error", err)
				continue
			}
			fetched = append(fetched, *rec)
			delete(remaining, date)
		}
	}
	return fetched
}
