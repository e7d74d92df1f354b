package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var _ Adapter = (*FixerAdapter)(nil)

// Upstream error code meaning the subscription only supports a fixed base
// currency; rates must be rederived from the provider's default base.
const fixerErrCodeRestrictedBase = 105

// FixerAdapter fetches rates from a Fixer-style API (base + symbols +
// access_key query parameters, JSON body with a "rates" mapping).
//
// Some Fixer plans can only quote against one fixed base currency. When the
// upstream rejects the requested base, the adapter re-queries using its
// configured default base and rederives all cross rates relative to the
// desired source by dividing each basket rate by the source's own rate.
type FixerAdapter struct {
	endpoint    string
	apiKey      string
	defaultBase string
	knownCodes  []string
	client      *http.Client
	log         *zap.SugaredLogger
}

// NewFixerAdapter creates a FixerAdapter for the given provider settings.
// knownCodes is the full currency list used for basket (empty-target) requests.
func NewFixerAdapter(baseURL, apiKey, defaultBase string, knownCodes []string, timeout time.Duration, logger *zap.SugaredLogger) *FixerAdapter {
	return &FixerAdapter{
		endpoint:    baseURL,
		apiKey:      apiKey,
		defaultBase: defaultBase,
		knownCodes:  knownCodes,
		client:      &http.Client{Timeout: timeout},
		log:         logger,
	}
}

// SetEndpoint points the adapter at baseURL/segment for subsequent fetches.
func (a *FixerAdapter) SetEndpoint(baseURL, segment string) {
	a.endpoint = baseURL + "/" + segment
}

type fixerError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
}

type fixerResponse struct {
	Success *bool                  `json:"success"`
	Base    string                 `json:"base"`
	Date    string                 `json:"date"`
	Rates   map[string]json.Number `json:"rates"`
	Error   *fixerError            `json:"error"`
}

// FetchRates requests rates for source against target (or the full known
// basket when target is empty) as of date (or latest when date is empty).
func (a *FixerAdapter) FetchRates(ctx context.Context, source, target, date string) (*RateSnapshot, error) {
	symbols := target
	if symbols == "" {
		symbols = strings.Join(a.knownCodes, ",")
	}

	result, err := a.query(ctx, source, symbols)
	if err != nil {
		return nil, err
	}

	if result.failed() && result.Error.Code == fixerErrCodeRestrictedBase {
		a.log.Warnw("Provider only supports a fixed base, rederiving cross rates",
			"default_base", a.defaultBase, "source", source)
		return a.fetchAdjusted(ctx, source, date)
	}
	if result.failed() {
		return nil, fmt.Errorf("fixer API error %d (%s) for base %s", result.Error.Code, result.Error.Type, source)
	}

	rates, err := decodeRates(result.Rates)
	if err != nil {
		return nil, err
	}
	return &RateSnapshot{
		SourceCode:    source,
		Rates:         rates,
		ValuationDate: firstNonEmpty(result.Date, date),
	}, nil
}

// fetchAdjusted re-queries the full basket against the default base and
// rederives rates relative to the desired source currency. A source missing
// from the basket yields an empty rate set, not an error.
func (a *FixerAdapter) fetchAdjusted(ctx context.Context, source, date string) (*RateSnapshot, error) {
	result, err := a.query(ctx, a.defaultBase, strings.Join(a.knownCodes, ","))
	if err != nil {
		return nil, err
	}
	if result.failed() {
		return nil, fmt.Errorf("fixer API error %d (%s) for default base %s", result.Error.Code, result.Error.Type, a.defaultBase)
	}

	rates, err := decodeRates(result.Rates)
	if err != nil {
		return nil, err
	}

	sourceRate, ok := rates[source]
	if !ok || sourceRate.IsZero() {
		a.log.Infow("Desired source currency not present in default-base basket", "source", source)
		return &RateSnapshot{
			SourceCode:    source,
			Rates:         map[string]decimal.Decimal{},
			ValuationDate: firstNonEmpty(result.Date, date),
		}, nil
	}

	adjusted := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		if code == source {
			continue
		}
		adjusted[code] = rate.Div(sourceRate)
	}
	return &RateSnapshot{
		SourceCode:    source,
		Rates:         adjusted,
		ValuationDate: firstNonEmpty(result.Date, date),
	}, nil
}

func (a *FixerAdapter) query(ctx context.Context, base, symbols string) (*fixerResponse, error) {
	params := url.Values{}
	params.Set("base", base)
	params.Set("symbols", symbols)
	params.Set("access_key", a.apiKey)
	reqURL := a.endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("fixer API request creation failed: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fixer API request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fixer API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result fixerResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode fixer API response: %w", err)
	}
	return &result, nil
}

func (r *fixerResponse) failed() bool {
	return r.Success != nil && !*r.Success && r.Error != nil
}

func decodeRates(raw map[string]json.Number) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal, len(raw))
	for code, num := range raw {
		d, err := decimal.NewFromString(num.String())
		if err != nil {
			return nil, fmt.Errorf("invalid rate value %q for %s: %w", num, code, err)
		}
		rates[code] = d
	}
	return rates, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
