package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPEnricher_Rates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "USD,EUR,GBP", r.URL.Query().Get("symbols"))
		w.Write([]byte(`{"rates":{"USD":91.254,"EUR":98.701},"date":"2025-01-28","base":"RUB"}`))
	}))
	defer server.Close()

	enricher := NewHTTPEnricher(server.URL, "", "", 5*time.Second, zerolog.Nop())
	rates, err := enricher.Rates(context.Background(), []string{"USD", "EUR", "GBP"})

	require.NoError(t, err)
	require.Len(t, rates, 2) // GBP omitted, not an error

	assert.Equal(t, "USD", rates[0].Currency)
	assert.Equal(t, 91.25, rates[0].Rate)
	assert.Equal(t, "EUR", rates[1].Currency)
	assert.Equal(t, 98.70, rates[1].Rate)
}

func TestHTTPEnricher_Rates_EmptyInput(t *testing.T) {
	enricher := NewHTTPEnricher("http://unused.invalid", "", "", 5*time.Second, zerolog.Nop())
	rates, err := enricher.Rates(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, rates)
}

func TestHTTPEnricher_Rates_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	enricher := NewHTTPEnricher(server.URL, "", "", 5*time.Second, zerolog.Nop())
	_, err := enricher.Rates(context.Background(), []string{"USD"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPEnricher_Quotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL,GOOGL", r.URL.Query().Get("symbols"))
		assert.Equal(t, "secret", r.URL.Query().Get("access_key"))
		w.Write([]byte(`{"data":[{"symbol":"AAPL","close":233.22},{"symbol":"GOOGL","close":196.98}]}`))
	}))
	defer server.Close()

	enricher := NewHTTPEnricher("", server.URL, "secret", 5*time.Second, zerolog.Nop())
	quotes, err := enricher.Quotes(context.Background(), []string{"AAPL", "GOOGL"})

	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.Equal(t, 233.22, quotes[0].Price)
}

func TestHTTPEnricher_Quotes_EmptyInput(t *testing.T) {
	enricher := NewHTTPEnricher("", "http://unused.invalid", "", 5*time.Second, zerolog.Nop())
	quotes, err := enricher.Quotes(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestLoadUserSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"user_currencies":["USD","EUR"],"user_stocks":["AAPL"]}`), 0o644))

	settings, err := LoadUserSettings(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"USD", "EUR"}, settings.Currencies)
	assert.Equal(t, []string{"AAPL"}, settings.Stocks)
}

func TestLoadUserSettings_MissingFile(t *testing.T) {
	_, err := LoadUserSettings(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadUserSettings_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))

	_, err := LoadUserSettings(path)
	assert.Error(t, err)
}
