package service

import "errors"

// ErrUnsupportedCurrency indicates a currency code outside the supported set.
var ErrUnsupportedCurrency = errors.New("currencies not supported")

// ErrInvalidCodeFormat indicates a malformed currency code.
var ErrInvalidCodeFormat = errors.New("invalid currency code format")

// ErrInvalidAmount indicates a non-positive or non-numeric amount.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// ErrInvalidDate indicates a malformed date or an inverted date range.
var ErrInvalidDate = errors.New("invalid date format")

// ErrNotFound indicates no rate could be resolved from the store or any provider.
var ErrNotFound = errors.New("not found")

// ErrInternal indicates an internal server error.
var ErrInternal = errors.New("internal error")
