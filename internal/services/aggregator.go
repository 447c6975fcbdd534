package services

import (
	"math"
	"sort"
	"time"

	"github.com/ledgerview/ledgerview-api/internal/models"
)

// DefaultTopCount is the number of transactions a dashboard highlights
const DefaultTopCount = 5

// weekdays in fixed report order, Monday first
var weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// roundAmount rounds to 2 decimal places, half away from zero. Applied
// only when producing display values; accumulation keeps full
// precision.
func roundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}

// FilterByWindow returns the records whose selected date field falls
// within the window, bounds inclusive. Records with a missing date
// field are dropped individually rather than failing the batch. Input
// order is preserved.
func FilterByWindow(records []models.Transaction, window DateWindow, field models.DateField) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(records))
	for _, txn := range records {
		date, ok := txn.Date(field)
		if !ok {
			continue
		}
		if window.Contains(date) {
			filtered = append(filtered, txn)
		}
	}
	return filtered
}

// TotalByCategory sums spending for one category within the window.
// The match is exact and case-sensitive. An empty filtered window is
// reported as ErrNoDataForPeriod so callers can tell "no data" from
// "zero spending".
func TotalByCategory(records []models.Transaction, category string, window DateWindow) (models.CategoryReport, error) {
	inWindow := FilterByWindow(records, window, models.OperationDateField)
	if len(inWindow) == 0 {
		return models.CategoryReport{}, ErrNoDataForPeriod
	}

	var total float64
	for _, txn := range inWindow {
		if txn.Category == category {
			total += txn.Amount
		}
	}

	return models.CategoryReport{
		Category: category,
		Total:    roundAmount(total),
		Period:   window.String(),
	}, nil
}

// WeekdayBreakdown sums spending per day of week within the window.
// All seven buckets are always present, Monday through Sunday, even
// with no activity on a given day. The weekday comes from the
// transaction's calendar date. An empty filtered window is reported as
// ErrNoDataForPeriod.
func WeekdayBreakdown(records []models.Transaction, window DateWindow) ([]models.WeekdayTotal, error) {
	inWindow := FilterByWindow(records, window, models.OperationDateField)
	if len(inWindow) == 0 {
		return nil, ErrNoDataForPeriod
	}

	totals := make(map[time.Weekday]float64, len(weekdays))
	for _, txn := range inWindow {
		totals[txn.OperationDate.Weekday()] += txn.Amount
	}

	breakdown := make([]models.WeekdayTotal, 0, len(weekdays))
	for _, day := range weekdays {
		breakdown = append(breakdown, models.WeekdayTotal{
			DayOfWeek: day.String(),
			Amount:    roundAmount(totals[day]),
		})
	}
	return breakdown, nil
}

// TotalByCard groups in-window records by card id, summing amount and
// cashback per card. Output is ordered by card id for deterministic
// presentation. Cards are reported with their full identifier.
func TotalByCard(records []models.Transaction, window DateWindow) []models.CardSummary {
	inWindow := FilterByWindow(records, window, models.OperationDateField)

	byCard := make(map[string]*models.CardSummary)
	order := make([]string, 0)
	for _, txn := range inWindow {
		summary, ok := byCard[txn.CardID]
		if !ok {
			summary = &models.CardSummary{CardID: txn.CardID}
			byCard[txn.CardID] = summary
			order = append(order, txn.CardID)
		}
		summary.TotalExpense += txn.Amount
		summary.TotalCashback += txn.Cashback
	}

	sort.Strings(order)

	summaries := make([]models.CardSummary, 0, len(order))
	for _, cardID := range order {
		s := byCard[cardID]
		s.TotalExpense = roundAmount(s.TotalExpense)
		s.TotalCashback = roundAmount(s.TotalCashback)
		summaries = append(summaries, *s)
	}
	return summaries
}

// TopN returns the n records with the largest amounts in descending
// order. The sort is stable, so ties keep their input order. Fewer
// than n records yields all of them; empty input yields empty output.
func TopN(records []models.Transaction, n int) []models.Transaction {
	if n <= 0 {
		return []models.Transaction{}
	}

	top := make([]models.Transaction, len(records))
	copy(top, records)

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Amount > top[j].Amount
	})

	if len(top) > n {
		top = top[:n]
	}
	return top
}

// MonthlyTotal sums record amounts over the full calendar month given
// as "2006-01". The threshold flag compares the absolute value of the
// total, so heavy expense months (negative sums) trip it the same way
// income months do.
func MonthlyTotal(records []models.Transaction, yearMonth string, threshold float64) (models.MonthlySummary, error) {
	window, err := MonthWindow(yearMonth)
	if err != nil {
		return models.MonthlySummary{}, err
	}

	var total float64
	for _, txn := range FilterByWindow(records, window, models.OperationDateField) {
		total += txn.Amount
	}

	total = roundAmount(total)
	return models.MonthlySummary{
		Month:            yearMonth,
		Total:            total,
		Threshold:        threshold,
		ExceedsThreshold: math.Abs(total) > threshold,
	}, nil
}
