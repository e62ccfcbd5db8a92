package model

import "tourdesk/shared/model"

const (
	TableName  = "activities"
	EntityName = "activity"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldLocation    = "location"
	FieldPrice       = "price"
	FieldStatus      = "status"
)

// Activity is a flat excursion priced per person.
type Activity struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Location    string  `db:"location"`
	Price       float64 `db:"price"`
	Status      string  `db:"status"`
	model.Metadata
}
