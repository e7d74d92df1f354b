package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// RatePoint is one observation in a historical series.
type RatePoint struct {
	ValuationDate string
	Rate          decimal.Decimal
}

// RatesInRange returns the historical series for every target currency against
// source over the inclusive [dateFrom, dateTo] range. Dates missing from the
// store are backfilled from the ranked providers; store entries come first and
// fetched entries are appended in discovery order, so callers needing strict
// date order must sort.
func (s *RateService) RatesInRange(ctx context.Context, source, dateFrom, dateTo string) (map[string][]RatePoint, error) {
	if err := s.validator.Validate(source); err != nil {
		return nil, err
	}
	source = strings.ToUpper(source)

	from, to, err := parseRange(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	fullRange := dateRange(from, to)

	records, err := s.rates.ListBySourceInRange(ctx, source, from, to)
	if err != nil {
		s.log.Errorw("DB error listing rates in range", "source", source, "error", err)
		return nil, ErrInternal
	}

	result := make(map[string][]RatePoint)
	existingDates := make(map[string]struct{})
	for _, rec := range records {
		key := dateKey(rec.ValuationDate)
		result[rec.TargetCode] = append(result[rec.TargetCode], RatePoint{
			ValuationDate: key,
			Rate:          rec.RateValue,
		})
		existingDates[key] = struct{}{}
	}

	var missing []string
	for _, day := range fullRange {
		if _, ok := existingDates[dateKey(day)]; !ok {
			missing = append(missing, dateKey(day))
		}
	}
	if len(missing) == 0 {
		return result, nil
	}

	for target, points := range s.backfillRange(ctx, source, missing) {
		result[target] = append(result[target], points...)
	}
	return result, nil
}

// backfillRange queries providers by ascending priority for every missing
// date, leaving the target open so providers may return a full basket.
// Fallback stops at the first provider that returns any data: its results are
// persisted and later providers are never consulted, even for dates it did not
// cover. Those dates simply stay absent from this call's result.
func (s *RateService) backfillRange(ctx context.Context, source string, missingDates []string) map[string][]RatePoint {
	providers, err := s.providers.ListActive(ctx)
	if err != nil {
		s.log.Errorw("DB error listing providers", "error", err)
		return nil
	}

	for _, p := range providers {
		adapter, err := s.registry.Adapter(ctx, p)
		if err != nil {
			s.log.Errorw("Provider unusable", "provider", p.Name, "error", err)
			continue
		}

		fetched := make(map[string][]RatePoint)
		for _, date := range missingDates {
			adapter.SetEndpoint(p.BaseURL, date)
			snap, err := adapter.FetchRates(ctx, source, "", date)
			if err != nil {
				s.log.Warnw("Provider fetch failed for date", "provider", p.Name, "source", source, "date", date, "error", err)
				continue
			}

			valuationDate := snap.ValuationDate
			if valuationDate == "" {
				valuationDate = date
			}
			for target, rate := range snap.Rates {
				fetched[target] = append(fetched[target], RatePoint{
					ValuationDate: valuationDate,
					Rate:          rate,
				})
			}
		}

		if len(fetched) == 0 {
			continue
		}
		s.persistFetched(ctx, source, p.Name, fetched)
		return fetched
	}
	return nil
}

// persistFetched routes every fetched target/date pair through the activity update.
func (s *RateService) persistFetched(ctx context.Context, source, providerName string, fetched map[string][]RatePoint) {
	for target, points := range fetched {
		for _, point := range points {
			day, err := parseDate(point.ValuationDate)
			if err != nil {
				s.log.Warnw("Skipping fetched point with bad date", "provider", providerName, "date", point.ValuationDate)
				continue
			}
			if _, err := s.rates.RecordRate(ctx, source, target, point.Rate, day, providerName); err != nil {
				s.log.Errorw("Failed to persist fetched rate", "provider", providerName,
					"source", source, "target", target, "date", point.ValuationDate, "error", err)
			}
		}
	}
}
