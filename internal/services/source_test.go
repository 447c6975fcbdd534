package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, headers []string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func operationsHeaders() []string {
	return []string{"Operation Date", "Payment Date", "Amount", "Category", "Card Number", "Description", "Cashback"}
}

func TestLoadXLSX(t *testing.T) {
	buf := buildWorkbook(t, operationsHeaders(), [][]interface{}{
		{"2025-01-02 09:15:00", "2025-01-03", "-1520.40", "Groceries", "4276000011112222", "FreshMart weekly shop", "15.20"},
		{"2025-01-07 08:30:00", "2025-01-07", "50000", "Salary", "4276000011112222", "January payroll", ""},
	})

	loader := NewLoader(zerolog.Nop())
	transactions, err := loader.LoadXLSX(buf)

	require.NoError(t, err)
	require.Len(t, transactions, 2)

	first := transactions[0]
	assert.Equal(t, time.Date(2025, time.January, 2, 9, 15, 0, 0, time.UTC), first.OperationDate)
	require.NotNil(t, first.PaymentDate)
	assert.Equal(t, time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC), *first.PaymentDate)
	assert.Equal(t, -1520.40, first.Amount)
	assert.Equal(t, "Groceries", first.Category)
	assert.Equal(t, "4276000011112222", first.CardID)
	assert.Equal(t, "FreshMart weekly shop", first.Description)
	assert.Equal(t, 15.20, first.Cashback)

	// Missing cashback defaults to zero
	assert.Equal(t, 0.0, transactions[1].Cashback)
}

func TestLoadXLSX_SkipsUnparsableDates(t *testing.T) {
	buf := buildWorkbook(t, operationsHeaders(), [][]interface{}{
		{"not-a-date", "", "-100", "Groceries", "", "", ""},
		{"2025-01-05 10:00:00", "", "-200", "Transport", "", "", ""},
	})

	loader := NewLoader(zerolog.Nop())
	transactions, err := loader.LoadXLSX(buf)

	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, -200.0, transactions[0].Amount)
}

func TestLoadXLSX_MissingAmountColumn(t *testing.T) {
	buf := buildWorkbook(t, []string{"Operation Date", "Category"}, [][]interface{}{
		{"2025-01-05 10:00:00", "Groceries"},
	})

	loader := NewLoader(zerolog.Nop())
	_, err := loader.LoadXLSX(buf)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))

	var colErr *MissingColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "Amount", colErr.Column)
}

func TestLoadXLSX_MissingDateColumn(t *testing.T) {
	buf := buildWorkbook(t, []string{"Amount", "Category"}, [][]interface{}{
		{"-100", "Groceries"},
	})

	loader := NewLoader(zerolog.Nop())
	_, err := loader.LoadXLSX(buf)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestLoadXLSX_HeadersOnly(t *testing.T) {
	buf := buildWorkbook(t, operationsHeaders(), nil)

	loader := NewLoader(zerolog.Nop())
	_, err := loader.LoadXLSX(buf)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptySource))
}

func TestLoadCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"Operation Date,Payment Date,Amount,Category,Card Number,Description,Cashback",
		"2025-01-02 09:15:00,2025-01-03,-1520.40,Groceries,4276000011112222,FreshMart weekly shop,15.20",
		",,,,,,", // blank row is skipped
		"2025-01-07 08:30:00,,50000,Salary,4276000011112222,January payroll,",
	}, "\n")

	loader := NewLoader(zerolog.Nop())
	transactions, err := loader.LoadCSV(strings.NewReader(csvData))

	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "Groceries", transactions[0].Category)
	assert.Equal(t, 50000.0, transactions[1].Amount)
	assert.Nil(t, transactions[1].PaymentDate)
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	loader := NewLoader(zerolog.Nop())
	_, err := loader.LoadCSV(strings.NewReader(""))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptySource))
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	loader := NewLoader(zerolog.Nop())
	_, err := loader.LoadFile("operations.docx")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestParseDate_Formats(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2025-01-02 09:15:00", time.Date(2025, time.January, 2, 9, 15, 0, 0, time.UTC)},
		{"02.01.2025 09:15:00", time.Date(2025, time.January, 2, 9, 15, 0, 0, time.UTC)},
		{"2025-01-02", time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)},
		{"02.01.2025", time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)},
		{"02/01/2025", time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)},
		{"02-Jan-2025", time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("yesterday")
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"3500.00", 3500.0},
		{"1,500.25", 1500.25},
		{"-980.50", -980.50},
		{"$120", 120.0},
		{"", 0.0},
		{"-", 0.0},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	_, err := ParseAmount("not-a-number")
	assert.Error(t, err)
}
