package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerview/ledgerview-api/internal/models"
)

// Enricher supplies externally fetched currency rates and stock
// quotes. Symbols the provider does not know are omitted from the
// result, not errors.
type Enricher interface {
	Rates(ctx context.Context, currencies []string) ([]models.ExchangeRate, error)
	Quotes(ctx context.Context, symbols []string) ([]models.StockQuote, error)
}

// ratesResponse mirrors the exchange-rate provider payload:
// {"rates":{"CAD":1.3259},"date":"2019-03-19","base":"USD"}
type ratesResponse struct {
	Date  string             `json:"date"`
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// quotesResponse mirrors the end-of-day stock price provider payload
type quotesResponse struct {
	Data []struct {
		Symbol string  `json:"symbol"`
		Close  float64 `json:"close"`
	} `json:"data"`
}

// HTTPEnricher fetches rates and quotes from JSON price providers
type HTTPEnricher struct {
	client       *http.Client
	ratesURL     string
	quotesURL    string
	quotesAPIKey string
	log          zerolog.Logger
}

// NewHTTPEnricher creates an enrichment client. quotesAPIKey may be
// empty when the quotes provider needs no key.
func NewHTTPEnricher(ratesURL, quotesURL, quotesAPIKey string, timeout time.Duration, log zerolog.Logger) *HTTPEnricher {
	return &HTTPEnricher{
		client:       &http.Client{Timeout: timeout},
		ratesURL:     ratesURL,
		quotesURL:    quotesURL,
		quotesAPIKey: quotesAPIKey,
		log:          log,
	}
}

// Rates fetches current exchange rates for the given currency codes
func (e *HTTPEnricher) Rates(ctx context.Context, currencies []string) ([]models.ExchangeRate, error) {
	if len(currencies) == 0 {
		return []models.ExchangeRate{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.ratesURL, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Add("symbols", strings.Join(currencies, ","))
	req.URL.RawQuery = q.Encode()

	rs, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error getting exchange rates: %w", err)
	}
	defer rs.Body.Close()

	if rs.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rate provider returned %d", rs.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(rs.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("error parsing exchange rate response: %w", err)
	}

	rates := make([]models.ExchangeRate, 0, len(currencies))
	for _, currency := range currencies {
		rate, ok := payload.Rates[strings.ToUpper(currency)]
		if !ok {
			e.log.Warn().Str("currency", currency).Msg("provider returned no rate")
			continue
		}
		rates = append(rates, models.ExchangeRate{
			Currency: strings.ToUpper(currency),
			Rate:     roundAmount(rate),
		})
	}
	return rates, nil
}

// Quotes fetches closing prices for the given stock symbols
func (e *HTTPEnricher) Quotes(ctx context.Context, symbols []string) ([]models.StockQuote, error) {
	if len(symbols) == 0 {
		return []models.StockQuote{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.quotesURL, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Add("symbols", strings.Join(symbols, ","))
	if e.quotesAPIKey != "" {
		q.Add("access_key", e.quotesAPIKey)
	}
	req.URL.RawQuery = q.Encode()

	rs, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error getting stock quotes: %w", err)
	}
	defer rs.Body.Close()

	if rs.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stock quote provider returned %d", rs.StatusCode)
	}

	var payload quotesResponse
	if err := json.NewDecoder(rs.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("error parsing stock quote response: %w", err)
	}

	quotes := make([]models.StockQuote, 0, len(payload.Data))
	for _, entry := range payload.Data {
		quotes = append(quotes, models.StockQuote{
			Symbol: entry.Symbol,
			Price:  entry.Close,
		})
	}
	return quotes, nil
}

// LoadUserSettings reads the currencies and stock symbols to enrich
// reports with from a user settings JSON file.
func LoadUserSettings(path string) (models.UserSettings, error) {
	var settings models.UserSettings

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read user settings: %w", err)
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse user settings: %w", err)
	}

	return settings, nil
}
