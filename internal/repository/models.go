package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a tradable currency known to the service.
type Currency struct {
	ID        int64
	Code      string
	Name      string
	Symbol    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Provider is an external rate source configuration. Providers are consulted
// in ascending Priority order among active entries.
type Provider struct {
	ID          int64
	Name        string
	BaseURL     string
	APIKey      string
	Priority    int
	Active      bool
	DefaultBase string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExchangeRate is one stored rate observation for a currency pair on a
// valuation date. At most one record per pair carries Active=true.
type ExchangeRate struct {
	ID            int64
	SourceCode    string
	TargetCode    string
	ValuationDate time.Time
	RateValue     decimal.Decimal
	Active        bool
	ProviderName  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
