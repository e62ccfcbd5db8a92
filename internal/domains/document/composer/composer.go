// Package composer turns catalog records into priced document line items.
package composer

import (
	"fmt"

	activityModel "tourdesk/internal/domains/activity/model"
	"tourdesk/internal/domains/document/model"
	"tourdesk/internal/domains/pricing"
	propertyModel "tourdesk/internal/domains/property/model"
	transportModel "tourdesk/internal/domains/transport/model"

	"github.com/google/uuid"
)

type Kind string

const (
	KindProperty  Kind = "property"
	KindTransport Kind = "transport"
	KindActivity  Kind = "activity"
)

func (k Kind) Valid() bool {
	return k == KindProperty || k == KindTransport || k == KindActivity
}

// Context carries the per-selection parameters. ID keeps the identity of the line item
// being replaced; an empty ID gets a fresh one.
type Context struct {
	ID     string
	Nights int
}

func (c Context) id() string {
	if c.ID != "" {
		return c.ID
	}

	return uuid.NewString()
}

// Property prices a stay on the flat path: the property's base price per night.
func Property(property propertyModel.Property, c Context) model.LineItem {
	return model.LineItem{
		ID:          c.id(),
		Description: fmt.Sprintf("%s (%d nights)", property.Name, c.Nights),
		Quantity:    max(1, c.Nights),
		UnitPrice:   pricing.FlatRate(property.BasePrice),
	}
}

func Transport(transport transportModel.Transport, c Context) model.LineItem {
	return model.LineItem{
		ID:          c.id(),
		Description: fmt.Sprintf("Transport: %s (%s)", transport.Name, transport.VehicleType),
		Quantity:    1,
		UnitPrice:   transport.PricePerWay,
	}
}

func Activity(activity activityModel.Activity, c Context) model.LineItem {
	return model.LineItem{
		ID:          c.id(),
		Description: "Activity: " + activity.Name,
		Quantity:    1,
		UnitPrice:   activity.Price,
	}
}

// Compose dispatches on the record's type, which must agree with kind.
func Compose(kind Kind, record any, c Context) (model.LineItem, error) {
	switch r := record.(type) {
	case propertyModel.Property:
		if kind == KindProperty {
			return Property(r, c), nil
		}
	case transportModel.Transport:
		if kind == KindTransport {
			return Transport(r, c), nil
		}
	case activityModel.Activity:
		if kind == KindActivity {
			return Activity(r, c), nil
		}
	}

	return model.LineItem{}, fmt.Errorf("cannot compose %s line item from %T", kind, record)
}

// Replace returns a copy of items with the item identified by id swapped for item, which
// takes over that id. The second result is false, and items are returned unchanged, when
// no item has that id.
func Replace(items model.LineItems, id string, item model.LineItem) (model.LineItems, bool) {
	replaced := items.Clone()

	for i := range replaced {
		if replaced[i].ID == id {
			item.ID = id
			replaced[i] = item

			return replaced, true
		}
	}

	return items, false
}
