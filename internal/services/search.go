package services

import (
	"strconv"
	"strings"

	"github.com/ledgerview/ledgerview-api/internal/models"
)

// SearchTransactions finds records containing the query as a
// case-insensitive substring in their description, category, card id
// or amount. Input order is preserved in the results.
func SearchTransactions(records []models.Transaction, query string) models.SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))

	matched := make([]models.Transaction, 0)
	if query != "" {
		for _, txn := range records {
			if matchesQuery(txn, query) {
				matched = append(matched, txn)
			}
		}
	}

	return models.SearchResult{
		Query:        query,
		ResultsCount: len(matched),
		Results:      matched,
	}
}

func matchesQuery(txn models.Transaction, query string) bool {
	fields := []string{
		txn.Description,
		txn.Category,
		txn.CardID,
		strconv.FormatFloat(txn.Amount, 'f', -1, 64),
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
