package render

import (
	"strconv"
	"strings"

	"tourdesk/internal/domains/document/model"
)

// voucher is the reservation record layout. It lists what was booked and prints no prices.
func voucher(s *sheet, doc model.Document, reservation *model.Reservation) {
	s.pdf.Ln(2)
	s.fields(
		field{"Confirmation No", reservation.ConfirmationNumber},
		field{"Check-in", displayDatePtr(doc.CheckIn)},
		field{"Check-out", displayDatePtr(doc.CheckOut)},
		field{"Nights", nightsLabel(doc.Nights())},
	)

	guest := reservation.Guest
	if guest.Name == "" {
		guest.Name = doc.ClientName
	}

	s.heading("Guest")
	s.fields(
		field{"Name", guest.Name},
		field{"Email", guest.Email},
		field{"Phone", guest.Phone},
		field{"Nationality", guest.Nationality},
	)

	if len(reservation.Rooms) > 0 {
		s.heading("Accommodation")

		t := newTable(s,
			column{"Property", 0.27, "L"},
			column{"Room Type", 0.2, "L"},
			column{"Occupancy", 0.12, "C"},
			column{"Guests", 0.2, "L"},
			column{"Rooms", 0.08, "R"},
			column{"Season", 0.13, "L"},
		)

		for _, room := range reservation.Rooms {
			t.row(
				room.PropertyName,
				room.RoomTypeName,
				room.OccupancyType,
				guestsLabel(room.Adults, room.Children, room.ChildAges),
				strconv.Itoa(max(1, room.Quantity)),
				room.Season,
			)
		}
	}

	if len(reservation.Transports) > 0 {
		s.heading("Transport")

		t := newTable(s,
			column{"Service", 0.26, "L"},
			column{"Vehicle", 0.16, "L"},
			column{"Date", 0.16, "L"},
			column{"Pick-up", 0.21, "L"},
			column{"Drop-off", 0.21, "L"},
		)

		for _, transport := range reservation.Transports {
			t.row(transport.Name, transport.VehicleType, displayDay(transport.Date), transport.PickUp, transport.DropOff)
		}
	}

	if len(reservation.Activities) > 0 {
		s.heading("Activities")

		t := newTable(s,
			column{"Activity", 0.45, "L"},
			column{"Date", 0.2, "L"},
			column{"Location", 0.35, "L"},
		)

		for _, activity := range reservation.Activities {
			t.row(activity.Name, displayDay(activity.Date), activity.Location)
		}
	}

	s.list("Inclusions", reservation.Inclusions)
	s.list("Exclusions", reservation.Exclusions)
	s.list("Special Requests", reservation.SpecialRequests)
}

// guestsLabel reads like "2 adults, 1 child (age 4)".
func guestsLabel(adults, children int, childAges []int) string {
	label := plural(adults, "adult", "adults")
	if children == 0 {
		return label
	}

	label += ", " + plural(children, "child", "children")
	if len(childAges) == 0 {
		return label
	}

	ages := make([]string, len(childAges))
	for i, age := range childAges {
		ages[i] = strconv.Itoa(age)
	}

	if len(ages) == 1 {
		return label + " (age " + ages[0] + ")"
	}

	return label + " (ages " + strings.Join(ages, ", ") + ")"
}
