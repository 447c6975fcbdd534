package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ledgerview/ledgerview-api/internal/models"
)

// CategoryReportSpanDays is the span of a category report window
const CategoryReportSpanDays = 90

// Source loads transaction records for one report request. Records
// are read fresh per call; the reporter never caches them.
type Source interface {
	LoadFile(path string) ([]models.Transaction, error)
}

// Reporter assembles aggregator output and enrichment data into
// uniform report envelopes. Every method returns a well-formed report;
// internal failures become status "error", never a panic or a bare
// error escaping to the transport layer.
type Reporter struct {
	source         Source
	enricher       Enricher
	operationsPath string
	settingsPath   string
	clock          func() time.Time
	log            zerolog.Logger
}

// NewReporter creates a report assembler over the given collaborators
func NewReporter(source Source, enricher Enricher, operationsPath, settingsPath string, log zerolog.Logger) *Reporter {
	return &Reporter{
		source:         source,
		enricher:       enricher,
		operationsPath: operationsPath,
		settingsPath:   settingsPath,
		clock:          time.Now,
		log:            log,
	}
}

// WithClock overrides the reporter's time source
func (r *Reporter) WithClock(clock func() time.Time) *Reporter {
	r.clock = clock
	return r
}

func (r *Reporter) success(data interface{}) models.Report {
	return models.Report{
		ID:        uuid.New().String(),
		Status:    models.StatusSuccess,
		Data:      data,
		Timestamp: r.clock().Format(time.RFC3339),
	}
}

func (r *Reporter) failure(err error) models.Report {
	r.log.Error().Err(err).Msg("report generation failed")
	return models.Report{
		ID:        uuid.New().String(),
		Status:    models.StatusError,
		Error:     err.Error(),
		ErrorCode: ErrorKind(err),
		Timestamp: r.clock().Format(time.RFC3339),
	}
}

// Dashboard builds the month-to-date dashboard for the reference
// timestamp: greeting, per-card summaries, top transactions, exchange
// rates and stock quotes. Enrichment failures degrade to empty lists
// rather than failing the report.
func (r *Reporter) Dashboard(ctx context.Context, referenceTimestamp string) models.Report {
	window, err := MonthToDate(referenceTimestamp)
	if err != nil {
		return r.failure(err)
	}

	records, err := r.source.LoadFile(r.operationsPath)
	if err != nil {
		return r.failure(err)
	}

	cards := make([]models.CardView, 0)
	for _, summary := range TotalByCard(records, window) {
		cards = append(cards, models.CardView{
			CardEnding:     maskCard(summary.CardID),
			TotalExpense:   summary.TotalExpense,
			CashbackEarned: summary.TotalCashback,
		})
	}

	top := make([]models.TopView, 0, DefaultTopCount)
	for _, txn := range TopN(FilterByWindow(records, window, models.OperationDateField), DefaultTopCount) {
		top = append(top, models.TopView{
			Date:        txn.OperationDate.Format(DateLayout),
			Amount:      txn.Amount,
			Category:    txn.Category,
			Description: txn.Description,
		})
	}

	rates, quotes := r.enrich(ctx)

	return r.success(models.DashboardData{
		Greeting:        greeting(r.clock().Hour()),
		Cards:           cards,
		TopTransactions: top,
		ExchangeRates:   rates,
		StockInfo:       quotes,
	})
}

// enrich fetches rates and quotes for the user's configured symbols.
// Any failure is logged and yields empty lists.
func (r *Reporter) enrich(ctx context.Context) ([]models.ExchangeRate, []models.StockQuote) {
	rates := make([]models.ExchangeRate, 0)
	quotes := make([]models.StockQuote, 0)

	settings, err := LoadUserSettings(r.settingsPath)
	if err != nil {
		r.log.Warn().Err(err).Msg("skipping enrichment")
		return rates, quotes
	}

	if fetched, err := r.enricher.Rates(ctx, settings.Currencies); err != nil {
		r.log.Warn().Err(err).Msg("failed to fetch exchange rates")
	} else {
		rates = fetched
	}

	if fetched, err := r.enricher.Quotes(ctx, settings.Stocks); err != nil {
		r.log.Warn().Err(err).Msg("failed to fetch stock quotes")
	} else {
		quotes = fetched
	}

	return rates, quotes
}

// CategoryReport builds a spending report over a 90-day window from
// the start date. A named category yields its total; an empty category
// yields the day-of-week breakdown. An empty start date means the
// window opens at the current time.
func (r *Reporter) CategoryReport(category, startDate string) models.Report {
	if startDate == "" {
		startDate = r.clock().Format(DateLayout)
	}

	window, err := TrailingFromDate(startDate, CategoryReportSpanDays)
	if err != nil {
		return r.failure(err)
	}

	records, err := r.source.LoadFile(r.operationsPath)
	if err != nil {
		return r.failure(err)
	}

	if category != "" {
		summary, err := TotalByCategory(records, category, window)
		if err != nil {
			return r.failure(err)
		}
		return r.success(summary)
	}

	breakdown, err := WeekdayBreakdown(records, window)
	if err != nil {
		return r.failure(err)
	}
	return r.success(breakdown)
}

// CardsReport builds month-to-date card summaries with full card ids
func (r *Reporter) CardsReport(referenceTimestamp string) models.Report {
	window, err := MonthToDate(referenceTimestamp)
	if err != nil {
		return r.failure(err)
	}

	records, err := r.source.LoadFile(r.operationsPath)
	if err != nil {
		return r.failure(err)
	}

	return r.success(TotalByCard(records, window))
}

// MonthlyReport builds the total for a "2006-01" month with a
// threshold flag
func (r *Reporter) MonthlyReport(yearMonth string, threshold float64) models.Report {
	records, err := r.source.LoadFile(r.operationsPath)
	if err != nil {
		return r.failure(err)
	}

	summary, err := MonthlyTotal(records, yearMonth, threshold)
	if err != nil {
		return r.failure(err)
	}
	return r.success(summary)
}

// TopReport builds the n largest month-to-date transactions
func (r *Reporter) TopReport(referenceTimestamp string, n int) models.Report {
	window, err := MonthToDate(referenceTimestamp)
	if err != nil {
		return r.failure(err)
	}

	records, err := r.source.LoadFile(r.operationsPath)
	if err != nil {
		return r.failure(err)
	}

	return r.success(TopN(FilterByWindow(records, window, models.OperationDateField), n))
}

// SearchReport finds transactions matching the query string
func (r *Reporter) SearchReport(query string) models.Report {
	records, err := r.source.LoadFile(r.operationsPath)
	if err != nil {
		return r.failure(err)
	}

	return r.success(SearchTransactions(records, query))
}

// Persist writes a generated report to the reports directory and
// returns the file path. Generation and persistence are separate
// explicit steps composed by the caller.
func (r *Reporter) Persist(report models.Report, dir, kind string) (string, error) {
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	name := fmt.Sprintf("report_%s_%s.json", kind, r.clock().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	return path, nil
}

// ErrorKind maps a failed report back to its domain error code for
// the transport layer. Returns the empty string for success reports
// and unclassified failures.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDateFormat):
		return "INVALID_DATE_FORMAT"
	case errors.Is(err, ErrMissingColumn):
		return "MISSING_COLUMN"
	case errors.Is(err, ErrNoDataForPeriod):
		return "NO_DATA_FOR_PERIOD"
	case errors.Is(err, ErrEmptySource):
		return "EMPTY_SOURCE"
	default:
		return ""
	}
}

// greeting picks the salutation for the hour of day
func greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good morning"
	case hour >= 12 && hour < 18:
		return "Good afternoon"
	case hour >= 18 && hour < 23:
		return "Good evening"
	default:
		return "Good night"
	}
}

// maskCard keeps the last four digits of a card identifier
func maskCard(cardID string) string {
	if len(cardID) <= 4 {
		return cardID
	}
	return "*" + cardID[len(cardID)-4:]
}
