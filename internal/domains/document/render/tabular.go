package render

import (
	"strconv"

	"tourdesk/internal/domains/document/model"
	settingsModel "tourdesk/internal/domains/settings/model"
)

// tabular is the financial layout: stay summary, line item table, totals and payment details.
func tabular(s *sheet, doc model.Document, invoice *model.Invoice, branding settingsModel.Branding) {
	s.pdf.Ln(2)
	s.fields(
		field{"Due Date", displayDay(invoice.DueDate)},
		field{"Check-in", displayDatePtr(doc.CheckIn)},
		field{"Check-out", displayDatePtr(doc.CheckOut)},
		field{"Nights", nightsLabel(doc.Nights())},
	)

	s.heading("Items")
	lineItems(s, doc.LineItems)

	if branding.BankDetails != "" {
		s.heading("Payment Details")
		s.paragraph(branding.BankDetails)
	}

	if invoice.Notes != "" {
		s.heading("Notes")
		s.paragraph(invoice.Notes)
	}
}

// lineItems prints the item table followed by subtotal and total.
func lineItems(s *sheet, items model.LineItems) {
	t := newTable(s,
		column{"#", 0.06, "C"},
		column{"Description", 0.49, "L"},
		column{"Qty", 0.1, "R"},
		column{"Unit Price", 0.17, "R"},
		column{"Amount", 0.18, "R"},
	)

	if len(items) == 0 {
		t.row("", "No items", "", "", "")
	}

	for i, item := range items {
		t.row(
			strconv.Itoa(i+1),
			item.Description,
			strconv.Itoa(item.Quantity),
			money("", item.UnitPrice),
			money("", item.Amount()),
		)
	}

	subtotal := items.Subtotal()

	s.pdf.Ln(1)
	t.total("Subtotal", money(s.currency, subtotal), false)
	t.total("Total", money(s.currency, subtotal), true)
}

func nightsLabel(nights int) string {
	if nights == 0 {
		return ""
	}

	return plural(nights, "night", "nights")
}
