package service

import "strings"

// Supported currencies mirror the seeded currency table.
var supportedCurrencies = map[string]struct{}{
	"USD": {},
	"EUR": {},
	"GBP": {},
	"JPY": {},
	"CHF": {},
	"CAD": {},
	"AUD": {},
	"NZD": {},
	"CNY": {},
	"HKD": {},
	"SGD": {},
	"SEK": {},
	"NOK": {},
	"INR": {},
	"MXN": {},
}

// Validator defines the interface for currency validation.
type Validator interface {
	Validate(code string) error
	IsSupported(code string) bool
}

type validator struct{}

// NewValidator creates a new currency validator.
func NewValidator() Validator {
	return &validator{}
}

// Validate checks code format first, then membership in the supported set.
func (v *validator) Validate(code string) error {
	if !IsValidCurrencyCode(code) {
		return ErrInvalidCodeFormat
	}
	if !v.IsSupported(code) {
		return ErrUnsupportedCurrency
	}
	return nil
}

// IsSupported returns true if the currency code is supported (case-insensitive).
func (v *validator) IsSupported(code string) bool {
	_, ok := supportedCurrencies[strings.ToUpper(code)]
	return ok
}

// IsValidCurrencyCode checks whether a string is a well-formed 3-letter currency code.
func IsValidCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range strings.ToUpper(code) {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
