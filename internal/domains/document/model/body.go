package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrBodyMismatch = errors.New("document body does not match document type")

// Body is the type-dependent part of a document. It is one of *Quotation, *Invoice or
// *Reservation; Voucher and Booking documents both carry a *Reservation.
type Body interface {
	accepts(t Type) bool
}

type Quotation struct {
	ValidUntil   string        `json:"valid_until,omitempty"`
	HotelOptions []HotelOption `json:"hotel_options"`
	Inclusions   []string      `json:"inclusions"`
	Exclusions   []string      `json:"exclusions"`
	Notes        string        `json:"notes,omitempty"`
}

// HotelOption is one alternative offered in a quotation. Price is the whole-stay price.
type HotelOption struct {
	PropertyID    string  `json:"property_id,omitempty"`
	PropertyName  string  `json:"property_name"`
	Location      string  `json:"location,omitempty"`
	RoomTypeID    string  `json:"room_type_id,omitempty"`
	RoomTypeName  string  `json:"room_type_name,omitempty"`
	OccupancyType string  `json:"occupancy_type,omitempty"`
	Adults        int     `json:"adults"`
	Children      int     `json:"children"`
	ChildAges     []int   `json:"child_ages,omitempty"`
	Nights        int     `json:"nights"`
	Season        string  `json:"season,omitempty"`
	Price         float64 `json:"price"`
	Notes         string  `json:"notes,omitempty"`
}

type Invoice struct {
	DueDate string `json:"due_date,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Reservation is the voucher record shared by Voucher and Booking documents.
type Reservation struct {
	ConfirmationNumber string              `json:"confirmation_number,omitempty"`
	Guest              Guest               `json:"guest"`
	Rooms              []RoomConfiguration `json:"rooms"`
	Transports         []TransportDetail   `json:"transports"`
	Activities         []ActivityDetail    `json:"activities"`
	Inclusions         []string            `json:"inclusions"`
	Exclusions         []string            `json:"exclusions"`
	SpecialRequests    []string            `json:"special_requests"`
}

type Guest struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

// RoomConfiguration is one booked room line. StayTotal covers all Quantity rooms.
type RoomConfiguration struct {
	PropertyID    string  `json:"property_id,omitempty"`
	PropertyName  string  `json:"property_name"`
	RoomTypeID    string  `json:"room_type_id,omitempty"`
	RoomTypeName  string  `json:"room_type_name"`
	OccupancyType string  `json:"occupancy_type,omitempty"`
	Adults        int     `json:"adults"`
	Children      int     `json:"children"`
	ChildAges     []int   `json:"child_ages,omitempty"`
	Quantity      int     `json:"quantity"`
	Season        string  `json:"season,omitempty"`
	StayTotal     float64 `json:"stay_total"`
}

type TransportDetail struct {
	TransportID string `json:"transport_id,omitempty"`
	Name        string `json:"name"`
	VehicleType string `json:"vehicle_type,omitempty"`
	Date        string `json:"date,omitempty"`
	PickUp      string `json:"pick_up,omitempty"`
	DropOff     string `json:"drop_off,omitempty"`
}

type ActivityDetail struct {
	ActivityID string `json:"activity_id,omitempty"`
	Name       string `json:"name"`
	Date       string `json:"date,omitempty"`
	Location   string `json:"location,omitempty"`
}

func (*Quotation) accepts(t Type) bool { return t == TypeQuotation }

func (*Invoice) accepts(t Type) bool { return t == TypeInvoice }

func (*Reservation) accepts(t Type) bool { return t == TypeVoucher || t == TypeBooking }

// Accepts reports whether body is the variant documents of type t carry.
func Accepts(t Type, body Body) bool {
	return body != nil && body.accepts(t)
}

// NewBody returns the empty variant for t, or nil for an unknown type.
func NewBody(t Type) Body {
	switch t {
	case TypeQuotation:
		return &Quotation{}
	case TypeInvoice:
		return &Invoice{}
	case TypeVoucher, TypeBooking:
		return &Reservation{}
	default:
		return nil
	}
}

// DecodeBody reads the metadata column of a document of type t. Empty input gives the empty variant.
func DecodeBody(t Type, raw []byte) (Body, error) {
	body := NewBody(t)
	if body == nil {
		return nil, fmt.Errorf("unknown document type %q", t)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return body, nil
	}

	if err := json.Unmarshal(raw, body); err != nil {
		return nil, fmt.Errorf("failed to decode %s metadata: %w", t, err)
	}

	return body, nil
}

// EncodeBody writes body for a document of type t. A nil body encodes as "{}".
func EncodeBody(t Type, body Body) ([]byte, error) {
	if body == nil {
		return []byte("{}"), nil
	}

	if !body.accepts(t) {
		return nil, fmt.Errorf("%w: %s", ErrBodyMismatch, t)
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s metadata: %w", t, err)
	}

	return data, nil
}
