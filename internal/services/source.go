package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/ledgerview/ledgerview-api/internal/models"
)

// Loader reads transaction records from an operations spreadsheet.
// Each report request loads the source fresh; no transaction state is
// held between calls.
type Loader struct {
	schema models.SheetSchema
	log    zerolog.Logger
}

// NewLoader creates a loader for the default operations sheet layout
func NewLoader(log zerolog.Logger) *Loader {
	return NewLoaderWithSchema(models.DefaultSheetSchema(), log)
}

// NewLoaderWithSchema creates a loader for a custom column layout
func NewLoaderWithSchema(schema models.SheetSchema, log zerolog.Logger) *Loader {
	return &Loader{schema: schema, log: log}
}

// ParseDate parses spreadsheet date strings in the formats operations
// exports are seen in
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)

	dateFormats := []string{
		"2006-01-02 15:04:05",
		"02.01.2006 15:04:05",
		"2006-01-02",
		"02.01.2006",
		"02/01/2006",
		"02-Jan-2006",
	}

	for _, format := range dateFormats {
		t, err := time.Parse(format, dateStr)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseAmount parses amount strings, stripping currency symbols and
// thousands separators. Empty amounts are zero, not errors.
func ParseAmount(amountStr string) (float64, error) {
	cleaned := strings.ReplaceAll(amountStr, "₽", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, "€", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" || cleaned == "-" {
		return 0, nil
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %s", amountStr)
	}

	return amount, nil
}

// LoadFile reads a transaction spreadsheet from disk, dispatching on
// the file extension.
func (l *Loader) LoadFile(path string) ([]models.Transaction, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xls":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook: %w", err)
		}
		defer f.Close()
		return l.parseWorkbook(f)
	case ".csv":
		return l.loadCSVFile(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// LoadXLSX reads a transaction workbook from a reader
func (l *Loader) LoadXLSX(r io.Reader) ([]models.Transaction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return l.parseWorkbook(f)
}

func (l *Loader) parseWorkbook(f *excelize.File) ([]models.Transaction, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmptySource
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySource
	}

	return l.parseRows(rows[0], rows[1:])
}

func (l *Loader) loadCSVFile(path string) ([]models.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return l.LoadCSV(f)
}

// LoadCSV reads a transaction sheet exported as CSV
func (l *Loader) LoadCSV(r io.Reader) ([]models.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptySource
		}
		return nil, fmt.Errorf("failed to read headers: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, row)
	}

	return l.parseRows(headers, rows)
}

// parseRows maps tabular rows onto transaction records. Required
// columns missing from the header fail the batch; individual rows with
// unparsable dates are skipped.
func (l *Loader) parseRows(headers []string, rows [][]string) ([]models.Transaction, error) {
	headerIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		headerIndex[strings.TrimSpace(h)] = i
	}

	dateIdx, ok := headerIndex[l.schema.OperationDateColumn]
	if !ok {
		return nil, &MissingColumnError{Column: l.schema.OperationDateColumn}
	}
	amountIdx, ok := headerIndex[l.schema.AmountColumn]
	if !ok {
		return nil, &MissingColumnError{Column: l.schema.AmountColumn}
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2 // 1-based, after the header row

		if isEmptyRow(row) {
			continue
		}

		txn, err := l.parseRow(row, headerIndex, dateIdx, amountIdx)
		if err != nil {
			l.log.Warn().Int("row", rowNum).Err(err).Msg("skipping row")
			continue
		}

		transactions = append(transactions, txn)
	}

	if len(transactions) == 0 {
		return nil, ErrEmptySource
	}

	return transactions, nil
}

func (l *Loader) parseRow(row []string, headerIndex map[string]int, dateIdx, amountIdx int) (models.Transaction, error) {
	var txn models.Transaction

	date, err := ParseDate(cell(row, dateIdx))
	if err != nil {
		return txn, fmt.Errorf("failed to parse operation date: %w", err)
	}
	txn.OperationDate = date

	// Missing amount is treated as zero
	amount, err := ParseAmount(cell(row, amountIdx))
	if err != nil {
		return txn, fmt.Errorf("failed to parse amount: %w", err)
	}
	txn.Amount = amount

	if idx, ok := headerIndex[l.schema.PaymentDateColumn]; ok {
		if payDate, err := ParseDate(cell(row, idx)); err == nil {
			txn.PaymentDate = &payDate
		}
	}
	if idx, ok := headerIndex[l.schema.CategoryColumn]; ok {
		txn.Category = strings.TrimSpace(cell(row, idx))
	}
	if idx, ok := headerIndex[l.schema.CardColumn]; ok {
		txn.CardID = strings.TrimSpace(cell(row, idx))
	}
	if idx, ok := headerIndex[l.schema.DescriptionColumn]; ok {
		txn.Description = strings.TrimSpace(cell(row, idx))
	}
	if idx, ok := headerIndex[l.schema.CashbackColumn]; ok {
		cashback, err := ParseAmount(cell(row, idx))
		if err == nil {
			txn.Cashback = cashback
		}
	}

	return txn, nil
}

// cell reads a column that may be absent on short rows
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// isEmptyRow checks if all fields in a row are empty
func isEmptyRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
