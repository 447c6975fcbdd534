package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

func main() {
	generateOperationsFixture()
	fmt.Println("\n✅ All XLSX fixtures generated successfully!")
}

func generateOperationsFixture() {
	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Operation Date", "Payment Date", "Amount", "Category", "Card Number", "Description", "Cashback"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	data := [][]interface{}{
		{"2025-01-02 09:15:00", "2025-01-02", -1520.40, "Groceries", "4276000011112222", "FreshMart weekly shop", 15.20},
		{"2025-01-03 12:40:00", "2025-01-04", -640.00, "Restaurants", "4276000011112222", "Lunch at Koriander", 6.40},
		{"2025-01-05 18:05:00", "2025-01-05", -3200.00, "Electronics", "5536910033334444", "Wireless headphones", 32.00},
		{"2025-01-07 08:30:00", "2025-01-07", 50000.00, "Salary", "4276000011112222", "January payroll", 0},
		{"2025-01-09 20:10:00", "2025-01-10", -980.50, "Groceries", "5536910033334444", "FreshMart top-up", 9.80},
		{"2025-01-11 14:00:00", "2025-01-11", -450.00, "Transport", "4276000011112222", "Monthly transit pass", 0},
		{"2025-01-13 10:25:00", "2025-01-14", -2150.00, "Clothing", "5536910033334444", "Winter jacket", 21.50},
		{"2025-01-15 16:45:00", "2025-01-15", -300.00, "Entertainment", "4276000011112222", "Cinema tickets", 3.00},
		{"2025-01-18 11:35:00", "2025-01-19", -1780.90, "Groceries", "4276000011112222", "FreshMart weekly shop", 17.80},
		{"2025-01-21 19:20:00", "2025-01-21", -5400.00, "Travel", "5536910033334444", "Train tickets", 54.00},
		{"2025-01-24 13:55:00", "2025-01-25", 1200.00, "Refunds", "5536910033334444", "Returned blender", 0},
		{"2025-01-27 09:05:00", "2025-01-27", -760.30, "Pharmacy", "4276000011112222", "Cold medicine", 7.60},
	}

	for rowIdx, row := range data {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	path := filepath.Join("testdata", "operations_sample.xlsx")
	if err := f.SaveAs(path); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✓ Generated", path)
}
