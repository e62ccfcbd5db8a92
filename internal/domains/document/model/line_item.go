package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
)

// RoundCents rounds v half away from zero to two decimals, the precision amounts are stored at.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// LineItem exists only inside a document. ID is only stable within the document's item list.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Normalized returns the item with its unit price rounded to cents.
func (l LineItem) Normalized() LineItem {
	l.UnitPrice = RoundCents(l.UnitPrice)

	return l
}

func (l LineItem) Amount() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// LineItems keeps insertion order and is stored as a JSONB array.
type LineItems []LineItem

// Subtotal is the sum of every item amount rounded to cents. It does not modify items.
func (l LineItems) Subtotal() float64 {
	var subtotal float64
	for _, item := range l {
		subtotal += item.Amount()
	}

	return RoundCents(subtotal)
}

// FirstDescription returns the first item's description, or "" for an empty list.
func (l LineItems) FirstDescription() string {
	if len(l) == 0 {
		return ""
	}

	return l[0].Description
}

func (l LineItems) Clone() LineItems {
	if l == nil {
		return LineItems{}
	}

	return append(LineItems{}, l...)
}

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}

	data, err := json.Marshal([]LineItem(l))
	if err != nil {
		return nil, fmt.Errorf("failed to encode line items: %w", err)
	}

	return data, nil
}

func (l *LineItems) Scan(src any) error {
	var data []byte

	switch v := src.(type) {
	case nil:
		*l = LineItems{}

		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported line items source %T", src)
	}

	items := LineItems{}
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to decode line items: %w", err)
	}

	*l = items

	return nil
}
