package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// chartPalette is the fixed set of line colors cycled across currency pairs.
var chartPalette = []string{
	"rgba(75, 192, 192, 1)",
	"rgba(153, 102, 255, 1)",
	"rgba(255, 159, 64, 1)",
	"rgba(255, 99, 132, 1)",
	"rgba(54, 162, 235, 1)",
	"rgba(255, 206, 86, 1)",
	"rgba(201, 203, 207, 1)",
	"rgba(255, 99, 71, 1)",
	"rgba(75, 0, 130, 1)",
}

// ChartDataset is one plottable line: the series of rates for a currency pair.
type ChartDataset struct {
	Label       string
	Data        []decimal.Decimal
	BorderColor string
	Fill        bool
}

// ChartData is a chart-ready projection of rates: shared date labels plus one
// dataset per currency pair.
type ChartData struct {
	Labels   []string
	Datasets []ChartDataset
}

// Chart builds a chart-ready projection of exchange rates for every known
// source currency over the inclusive date range, backfilling gaps the same way
// the history listing does.
func (s *RateService) Chart(ctx context.Context, dateFrom, dateTo string) (*ChartData, error) {
	if _, _, err := parseRange(dateFrom, dateTo); err != nil {
		return nil, err
	}

	codes, err := s.currencies.ListCodes(ctx)
	if err != nil {
		s.log.Errorw("DB error listing currencies", "error", err)
		return nil, ErrInternal
	}

	chart := &ChartData{}
	colorIndex := make(map[string]int)

	for _, source := range codes {
		series, err := s.RatesInRange(ctx, source, dateFrom, dateTo)
		if err != nil {
			s.log.Errorw("Failed to load range for chart", "source", source, "error", err)
			continue
		}

		targets := make([]string, 0, len(series))
		for target := range series {
			targets = append(targets, target)
		}
		sort.Strings(targets)

		for _, target := range targets {
			if target == source {
				continue
			}
			points := series[target]
			pair := source + "_" + target
			if _, ok := colorIndex[pair]; !ok {
				colorIndex[pair] = len(colorIndex) % len(chartPalette)
			}

			dataset := ChartDataset{
				Label:       source + " to " + target,
				BorderColor: chartPalette[colorIndex[pair]],
			}
			for _, point := range points {
				if !containsLabel(chart.Labels, point.ValuationDate) {
					chart.Labels = append(chart.Labels, point.ValuationDate)
				}
				dataset.Data = append(dataset.Data, point.Rate)
			}
			chart.Datasets = append(chart.Datasets, dataset)
		}
	}
	return chart, nil
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
