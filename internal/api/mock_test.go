package api

import (
	"context"

	"github.com/shopspring/decimal"

	"mycurrency/internal/service"
)

// mockRateService implements service.RateServiceInterface for handler tests.
type mockRateService struct {
	resolveFunc         func(ctx context.Context, source, target string) (decimal.Decimal, error)
	convertFunc         func(ctx context.Context, source, target string, amount decimal.Decimal) (*service.Conversion, error)
	convertManyFunc     func(ctx context.Context, source string, targets []string, amount decimal.Decimal) (*service.BatchConversion, error)
	ratesInRangeFunc    func(ctx context.Context, source, dateFrom, dateTo string) (map[string][]service.RatePoint, error)
	chartFunc           func(ctx context.Context, dateFrom, dateTo string) (*service.ChartData, error)
	twrrFunc            func(ctx context.Context, source, target string, amount decimal.Decimal, startDate string) ([]service.TWRRPoint, error)
	requestBackfillFunc func(ctx context.Context, source, dateFrom, dateTo string) error
}

func (m *mockRateService) Resolve(ctx context.Context, source, target string) (decimal.Decimal, error) {
	return m.resolveFunc(ctx, source, target)
}

func (m *mockRateService) Convert(ctx context.Context, source, target string, amount decimal.Decimal) (*service.Conversion, error) {
	return m.convertFunc(ctx, source, target, amount)
}

func (m *mockRateService) ConvertMany(ctx context.Context, source string, targets []string, amount decimal.Decimal) (*service.BatchConversion, error) {
	return m.convertManyFunc(ctx, source, targets, amount)
}

func (m *mockRateService) RatesInRange(ctx context.Context, source, dateFrom, dateTo string) (map[string][]service.RatePoint, error) {
	return m.ratesInRangeFunc(ctx, source, dateFrom, dateTo)
}

func (m *mockRateService) Chart(ctx context.Context, dateFrom, dateTo string) (*service.ChartData, error) {
	return m.chartFunc(ctx, dateFrom, dateTo)
}

func (m *mockRateService) TWRR(ctx context.Context, source, target string, amount decimal.Decimal, startDate string) ([]service.TWRRPoint, error) {
	return m.twrrFunc(ctx, source, target, amount, startDate)
}

func (m *mockRateService) RequestBackfill(ctx context.Context, source, dateFrom, dateTo string) error {
	return m.requestBackfillFunc(ctx, source, dateFrom, dateTo)
}
