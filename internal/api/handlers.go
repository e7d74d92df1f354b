package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"mycurrency/internal/service"
)

// LatestRateResponse represents the response for a current rate lookup
type LatestRateResponse struct {
	SourceCurrency string          `json:"source_currency" example:"USD"`
	TargetCurrency string          `json:"target_currency" example:"EUR"`
	Rate           decimal.Decimal `json:"rate" example:"1.09"`
}

// ConvertResponse represents the response for a single conversion
type ConvertResponse struct {
	SourceCurrency  string          `json:"source_currency" example:"USD"`
	TargetCurrency  string          `json:"target_currency" example:"EUR"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate" example:"1.09"`
	Amount          decimal.Decimal `json:"amount" example:"100"`
	ConvertedAmount decimal.Decimal `json:"converted_amount" example:"109.00"`
}

// BatchConvertResponse represents the response for a multi-target conversion.
// Conversions maps each target to its converted amount, or to the literal
// "Error fetching data" when that target's rate could not be resolved.
type BatchConvertResponse struct {
	SourceCurrency string            `json:"source_currency" example:"USD"`
	Amount         decimal.Decimal   `json:"amount" example:"100"`
	Conversions    map[string]string `json:"conversions"`
}

// RatePointResponse is one observation of a historical series
type RatePointResponse struct {
	ValuationDate string          `json:"valuation_date" example:"2026-08-01"`
	RateValue     decimal.Decimal `json:"rate_value" example:"1.09"`
}

// TWRRPointResponse is one entry of a TWRR series
type TWRRPointResponse struct {
	ValuationDate string          `json:"valuation_date" example:"2026-08-01"`
	RateValue     decimal.Decimal `json:"rate_value" example:"1.09"`
	TWRR          decimal.Decimal `json:"twrr" example:"0.0091"`
	Amount        decimal.Decimal `json:"amount" example:"109.00"`
}

// TWRRResponse represents the response for a TWRR series request
type TWRRResponse struct {
	SourceCurrency    string              `json:"source_currency" example:"USD"`
	ExchangedCurrency string              `json:"exchanged_currency" example:"EUR"`
	AmountInvested    decimal.Decimal     `json:"amount_invested" example:"100"`
	StartDate         string              `json:"start_date" example:"2026-08-01"`
	TWRRSeries        []TWRRPointResponse `json:"twrr_series"`
}

// ChartDatasetResponse is one plottable line of the chart projection
type ChartDatasetResponse struct {
	Label       string            `json:"label" example:"USD to EUR"`
	Data        []decimal.Decimal `json:"data"`
	BorderColor string            `json:"borderColor" example:"rgba(75, 192, 192, 1)"`
	Fill        bool              `json:"fill" example:"false"`
}

// ChartResponse represents the chart-ready rate projection
type ChartResponse struct {
	Labels   []string               `json:"labels"`
	Datasets []ChartDatasetResponse `json:"datasets"`
}

// BackfillRequest represents the request body for an async backfill job
type BackfillRequest struct {
	SourceCurrency string `json:"source_currency" example:"USD"`
	DateFrom       string `json:"date_from" example:"2026-08-01"`
	DateTo         string `json:"date_to" example:"2026-08-15"`
}

// BackfillAcceptedResponse represents the response for an accepted backfill job
type BackfillAcceptedResponse struct {
	Status string `json:"status" example:"enqueued"`
}

const msgMissingParams = "Missing required parameters"

// HandleGetLatestRate godoc
// @Summary Get the current rate for a currency pair
// @Description Returns the active today-dated rate from the store, or resolves it from ranked providers on a cache miss.
// @Tags rates
// @Produce json
// @Param source_currency query string true "Source currency code (3 letters)"
// @Param target_currency query string true "Target currency code (3 letters)"
// @Success 200 {object} LatestRateResponse "Rate resolved"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "No rate available from store or providers"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /rates/latest [get]
func HandleGetLatestRate(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := r.URL.Query().Get("source_currency")
		target := r.URL.Query().Get("target_currency")
		if source == "" || target == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgMissingParams})
			return
		}

		rate, err := svc.Resolve(r.Context(), source, target)
		if err != nil {
			writeServiceError(w, err, "Exchange rate not available")
			return
		}

		writeJSON(w, http.StatusOK, LatestRateResponse{
			SourceCurrency: strings.ToUpper(source),
			TargetCurrency: strings.ToUpper(target),
			Rate:           rate,
		})
	}
}

// HandleConvert godoc
// @Summary Convert an amount between two currencies
// @Description Converts an amount at the current rate. Converting a currency to itself echoes the amount without touching the store or any provider.
// @Tags rates
// @Produce json
// @Param source_currency query string true "Source currency code (3 letters)"
// @Param target_currency query string true "Target currency code (3 letters)"
// @Param amount query number true "Amount to convert (must be positive)"
// @Success 200 {object} ConvertResponse "Conversion result"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "No rate available from store or providers"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /rates/convert [get]
func HandleConvert(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := r.URL.Query().Get("source_currency")
		target := r.URL.Query().Get("target_currency")
		amountStr := r.URL.Query().Get("amount")
		if source == "" || target == "" || amountStr == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgMissingParams})
			return
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid amount format"})
			return
		}

		conv, err := svc.Convert(r.Context(), source, target, amount)
		if err != nil {
			writeServiceError(w, err, "Exchange rate not available")
			return
		}

		writeJSON(w, http.StatusOK, ConvertResponse{
			SourceCurrency:  conv.Source,
			TargetCurrency:  conv.Target,
			ExchangeRate:    conv.Rate,
			Amount:          conv.Amount,
			ConvertedAmount: conv.ConvertedAmount,
		})
	}
}

// HandleConvertBatch godoc
// @Summary Convert an amount into several target currencies
// @Description Converts one amount into each listed target. A target whose rate cannot be resolved maps to the sentinel "Error fetching data"; one failure never aborts the batch.
// @Tags rates
// @Produce json
// @Param source_currency query string true "Source currency code (3 letters)"
// @Param targets query string true "Comma-separated target currency codes"
// @Param amount query number true "Amount to convert (must be positive)"
// @Success 200 {object} BatchConvertResponse "Per-target conversion results"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /rates/convert/batch [get]
func HandleConvertBatch(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := r.URL.Query().Get("source_currency")
		targetsParam := r.URL.Query().Get("targets")
		amountStr := r.URL.Query().Get("amount")
		if source == "" || targetsParam == "" || amountStr == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgMissingParams})
			return
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid amount format"})
			return
		}

		targets := splitTargets(targetsParam)
		batch, err := svc.ConvertMany(r.Context(), source, targets, amount)
		if err != nil {
			writeServiceError(w, err, "Exchange rate not available")
			return
		}

		conversions := make(map[string]string, len(batch.Results))
		for _, res := range batch.Results {
			if res.Failed {
				conversions[res.Target] = service.ErrorFetchingData
				continue
			}
			conversions[res.Target] = res.ConvertedAmount.String()
		}

		writeJSON(w, http.StatusOK, BatchConvertResponse{
			SourceCurrency: batch.Source,
			Amount:         batch.Amount,
			Conversions:    conversions,
		})
	}
}

// HandleListHistoricalRates godoc
// @Summary List historical rates for a source currency over a date range
// @Description Returns series per target currency; dates missing from the store are backfilled from ranked providers.
// @Tags rates
// @Produce json
// @Param source_currency query string true "Source currency code (3 letters)"
// @Param date_from query string true "Range start (YYYY-MM-DD)"
// @Param date_to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} map[string][]RatePointResponse "Series by target currency"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "No rates found"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /rates/history [get]
func HandleListHistoricalRates(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := r.URL.Query().Get("source_currency")
		dateFrom := r.URL.Query().Get("date_from")
		dateTo := r.URL.Query().Get("date_to")
		if source == "" || dateFrom == "" || dateTo == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgMissingParams})
			return
		}

		series, err := svc.RatesInRange(r.Context(), source, dateFrom, dateTo)
		if err != nil {
			writeServiceError(w, err, "No rates found")
			return
		}
		if len(series) == 0 {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "No rates found"})
			return
		}

		response := make(map[string][]RatePointResponse, len(series))
		for target, points := range series {
			out := make([]RatePointResponse, 0, len(points))
			for _, p := range points {
				out = append(out, RatePointResponse{ValuationDate: p.ValuationDate, RateValue: p.Rate})
			}
			response[target] = out
		}
		writeJSON(w, http.StatusOK, response)
	}
}

// HandleTWRR godoc
// @Summary Calculate a time-weighted return series for an invested amount
// @Description Walks the pair's historical rates from start_date through today, backfilling gaps, and derives simple period returns plus the principal marked to market per date.
// @Tags rates
// @Produce json
// @Param source_currency query string true "Source currency code (3 letters)"
// @Param exchanged_currency query string true "Exchanged currency code (3 letters)"
// @Param amount query number true "Amount invested (must be positive)"
// @Param start_date query string true "Investment start date (YYYY-MM-DD)"
// @Success 200 {object} TWRRResponse "TWRR series"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "No historical rates available"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /rates/twrr [get]
func HandleTWRR(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source := r.URL.Query().Get("source_currency")
		target := r.URL.Query().Get("exchanged_currency")
		amountStr := r.URL.Query().Get("amount")
		startDate := r.URL.Query().Get("start_date")
		if source == "" || target == "" || amountStr == "" || startDate == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgMissingParams})
			return
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid amount format"})
			return
		}

		series, err := svc.TWRR(r.Context(), source, target, amount, startDate)
		if err != nil {
			writeServiceError(w, err, "No historical exchange rates available for the given parameters")
			return
		}

		points := make([]TWRRPointResponse, 0, len(series))
		for _, p := range series {
			points = append(points, TWRRPointResponse{
				ValuationDate: p.ValuationDate,
				RateValue:     p.Rate,
				TWRR:          p.TWRR,
				Amount:        p.Amount,
			})
		}

		writeJSON(w, http.StatusOK, TWRRResponse{
			SourceCurrency:    strings.ToUpper(source),
			ExchangedCurrency: strings.ToUpper(target),
			AmountInvested:    amount,
			StartDate:         startDate,
			TWRRSeries:        points,
		})
	}
}

// HandleChart godoc
// @Summary Chart-ready rate projection for all currencies over a date range
// @Description Returns shared date labels plus one dataset per currency pair, suitable for line charting.
// @Tags rates
// @Produce json
// @Param start_date query string true "Range start (YYYY-MM-DD)"
// @Param end_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} ChartResponse "Chart data"
// @Failure 400 {object} ErrorResponse "Invalid date format"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /rates/chart [get]
func HandleChart(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startDate := r.URL.Query().Get("start_date")
		endDate := r.URL.Query().Get("end_date")
		if startDate == "" || endDate == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgMissingParams})
			return
		}

		chart, err := svc.Chart(r.Context(), startDate, endDate)
		if err != nil {
			writeServiceError(w, err, "No rates found")
			return
		}

		datasets := make([]ChartDatasetResponse, 0, len(chart.Datasets))
		for _, ds := range chart.Datasets {
			datasets = append(datasets, ChartDatasetResponse{
				Label:       ds.Label,
				Data:        ds.Data,
				BorderColor: ds.BorderColor,
				Fill:        ds.Fill,
			})
		}
		writeJSON(w, http.StatusOK, ChartResponse{Labels: chart.Labels, Datasets: datasets})
	}
}

// HandleRequestBackfill godoc
// @Summary Request an asynchronous date-range backfill
// @Description Enqueues a background job running the same backfill engine as the history listing. Returns immediately.
// @Tags rates
// @Accept json
// @Produce json
// @Param request body BackfillRequest true "Backfill parameters"
// @Success 202 {object} BackfillAcceptedResponse "Job accepted"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /rates/backfill [post]
func HandleRequestBackfill(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BackfillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON"})
			return
		}
		if req.SourceCurrency == "" || req.DateFrom == "" || req.DateTo == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgMissingParams})
			return
		}

		if err := svc.RequestBackfill(r.Context(), req.SourceCurrency, req.DateFrom, req.DateTo); err != nil {
			writeServiceError(w, err, "No rates found")
			return
		}
		writeJSON(w, http.StatusAccepted, BackfillAcceptedResponse{Status: "enqueued"})
	}
}

// writeServiceError maps service sentinels onto the error taxonomy: validation
// problems surface as 400, not-found distinctly as 404, everything else as a
// generic 500 whose cause was already logged by the service.
func writeServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, service.ErrInvalidCodeFormat),
		errors.Is(err, service.ErrUnsupportedCurrency),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidDate):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: capitalizeSentinel(err)})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: notFoundMsg})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "An error occurred while processing the request."})
	}
}

func capitalizeSentinel(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func splitTargets(param string) []string {
	parts := strings.Split(param, ",")
	targets := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			targets = append(targets, trimmed)
		}
	}
	return targets
}
