package provider

import (
	"context"
	"hash/fnv"
	"math/rand"

	"github.com/shopspring/decimal"
)

var _ Adapter = (*MockAdapter)(nil)

// Synthetic rates stay within a plausible band around parity.
const (
	mockRateMin  = 0.85
	mockRateSpan = 0.40
)

// MockAdapter is an offline stand-in that synthesizes a rate for every known
// currency except the source. Rates are randomized but deterministic for a
// given (source, date) pair, so repeated backfills agree with each other.
type MockAdapter struct {
	endpoint   string
	knownCodes []string
}

// NewMockAdapter creates a MockAdapter over the given currency list.
func NewMockAdapter(knownCodes []string) *MockAdapter {
	return &MockAdapter{knownCodes: knownCodes}
}

// SetEndpoint is accepted for interface parity; the mock performs no network access.
func (a *MockAdapter) SetEndpoint(baseURL, segment string) {
	a.endpoint = baseURL + "/" + segment
}

// FetchRates returns synthetic rates in [0.85, 1.25) for every known currency
// other than source. The target argument is ignored; callers filter the basket.
func (a *MockAdapter) FetchRates(_ context.Context, source, _, date string) (*RateSnapshot, error) {
	rng := rand.New(rand.NewSource(mockSeed(source, date))) //nolint:gosec // synthetic data, not crypto

	rates := make(map[string]decimal.Decimal, len(a.knownCodes))
	for _, code := range a.knownCodes {
		if code == source {
			continue
		}
		rates[code] = decimal.NewFromFloat(mockRateMin + rng.Float64()*mockRateSpan).Round(6)
	}

	return &RateSnapshot{
		SourceCode:    source,
		Rates:         rates,
		ValuationDate: date,
	}, nil
}

func mockSeed(source, date string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(source))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(date))
	return int64(h.Sum64())
}
