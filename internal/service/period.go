package service

import "github.com/karanthegodd/expense-tracker/internal/domain"

// FilterByPeriod returns the transactions dated inside the period.
// Undated records are silently excluded from every period-scoped
// aggregation.
func FilterByPeriod(txs []*domain.Transaction, p domain.Period) []*domain.Transaction {
	filtered := make([]*domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx == nil || tx.Date.IsZero() {
			continue
		}
		if p.Contains(tx.Date) {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}
