package render

import (
	"strconv"

	"tourdesk/internal/domains/document/model"
)

// quotation lists the hotel options on offer with their stay prices, followed by what the
// quote includes. Line items are not printed.
func quotation(s *sheet, doc model.Document, quote *model.Quotation) {
	s.pdf.Ln(2)
	s.fields(
		field{"Valid Until", displayDay(quote.ValidUntil)},
		field{"Check-in", displayDatePtr(doc.CheckIn)},
		field{"Check-out", displayDatePtr(doc.CheckOut)},
		field{"Nights", nightsLabel(doc.Nights())},
	)

	s.heading("Hotel Options")

	t := newTable(s,
		column{"#", 0.05, "C"},
		column{"Property", 0.27, "L"},
		column{"Room", 0.2, "L"},
		column{"Guests", 0.19, "L"},
		column{"Nights", 0.09, "R"},
		column{"Price", 0.2, "R"},
	)

	if len(quote.HotelOptions) == 0 {
		t.row("", "No options", "", "", "", "")
	}

	for i, option := range quote.HotelOptions {
		t.row(
			strconv.Itoa(i+1),
			joinNonEmpty("\n", option.PropertyName, option.Location),
			joinNonEmpty("\n", joinNonEmpty(" ", option.RoomTypeName, bracket(option.OccupancyType)), option.Season, option.Notes),
			guestsLabel(option.Adults, option.Children, option.ChildAges),
			strconv.Itoa(option.Nights),
			money(s.currency, option.Price),
		)
	}

	s.list("Inclusions", quote.Inclusions)
	s.list("Exclusions", quote.Exclusions)

	if quote.Notes != "" {
		s.heading("Notes")
		s.paragraph(quote.Notes)
	}
}

func bracket(value string) string {
	if value == "" {
		return ""
	}

	return "(" + value + ")"
}
