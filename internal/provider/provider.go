// Package provider implements external rate source adapters and their registry.
package provider

import (
	"context"

	"github.com/shopspring/decimal"
)

// EndpointLatest is the path segment for current-rate requests. Historical
// requests use the valuation date itself as the segment.
const EndpointLatest = "latest"

// RateSnapshot is the normalized response shape shared by all adapters: a
// basket of rates against one source currency as of one valuation date.
type RateSnapshot struct {
	SourceCode    string
	Rates         map[string]decimal.Decimal
	ValuationDate string // YYYY-MM-DD; empty when the upstream gave no date.
}

// Adapter normalizes one external rate source. An empty target requests the
// full basket of rates for all known currencies against the source; an empty
// date requests the latest rates.
type Adapter interface {
	SetEndpoint(baseURL, segment string)
	FetchRates(ctx context.Context, source, target, date string) (*RateSnapshot, error)
}
