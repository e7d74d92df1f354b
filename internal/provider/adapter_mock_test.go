package provider

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func rdec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// MockSourceAdapter is a testify mock of the Adapter interface.
type MockSourceAdapter struct {
	mock.Mock
}

func (m *MockSourceAdapter) SetEndpoint(baseURL, segment string) {
	m.Called(baseURL, segment)
}

func (m *MockSourceAdapter) FetchRates(ctx context.Context, source, target, date string) (*RateSnapshot, error) {
	args := m.Called(ctx, source, target, date)
	snap, _ := args.Get(0).(*RateSnapshot)
	return snap, args.Error(1)
}
