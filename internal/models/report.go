package models

// CategoryReport is the result of a category spending query
type CategoryReport struct {
	Category string  `json:"category"`
	Total    float64 `json:"total_spent"`
	Period   string  `json:"period"`
}

// WeekdayTotal is one bucket of a day-of-week spending breakdown
type WeekdayTotal struct {
	DayOfWeek string  `json:"day_of_week"`
	Amount    float64 `json:"amount"`
}

// CardSummary aggregates spend and cashback for a single card.
// CardID carries the full identifier; masking to the last four digits
// is presentation, done by the report assembler.
type CardSummary struct {
	CardID        string  `json:"card_id"`
	TotalExpense  float64 `json:"total_expense"`
	TotalCashback float64 `json:"cashback_earned"`
}

// MonthlySummary is the result of a monthly total query
type MonthlySummary struct {
	Month            string  `json:"month"`
	Total            float64 `json:"total"`
	Threshold        float64 `json:"threshold"`
	ExceedsThreshold bool    `json:"exceeds_threshold"`
}

// ExchangeRate is an externally fetched currency rate
type ExchangeRate struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
}

// StockQuote is an externally fetched instrument price
type StockQuote struct {
	Symbol string  `json:"stock"`
	Price  float64 `json:"price"`
}

// DashboardData is the payload of a dashboard report
type DashboardData struct {
	Greeting        string         `json:"greeting"`
	Cards           []CardView     `json:"cards"`
	TopTransactions []TopView      `json:"top_transactions"`
	ExchangeRates   []ExchangeRate `json:"exchange_rates"`
	StockInfo       []StockQuote   `json:"stock_info"`
}

// CardView is the presentation form of a card summary
type CardView struct {
	CardEnding     string  `json:"card_ending"`
	TotalExpense   float64 `json:"total_expense"`
	CashbackEarned float64 `json:"cashback_earned"`
}

// TopView is the presentation form of a top transaction
type TopView struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// Report statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Report is the uniform response envelope: a status flag, a payload or
// an error message, and a generation timestamp. It is always
// well-formed regardless of internal failure.
type Report struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error_message,omitempty"`
	ErrorCode string      `json:"error_code,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// SearchResult is the payload of a transaction search
type SearchResult struct {
	Query        string        `json:"query"`
	ResultsCount int           `json:"results_count"`
	Results      []Transaction `json:"results"`
}

// UserSettings holds the currencies and stock symbols a user wants on
// the dashboard, loaded from user_settings.json
type UserSettings struct {
	Currencies []string `json:"user_currencies"`
	Stocks     []string `json:"user_stocks"`
}
