package di

import "tourdesk/internal/domains/pricing"

// newCalculator resolves overlapping seasons by taking the first in stored order.
func newCalculator() *pricing.Calculator {
	return pricing.NewCalculator(pricing.FirstMatch{})
}
