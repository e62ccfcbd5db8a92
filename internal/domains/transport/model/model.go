package model

import "tourdesk/shared/model"

const (
	TableName  = "transports"
	EntityName = "transport"

	FieldID          = "id"
	FieldName        = "name"
	FieldVehicleType = "vehicle_type"
	FieldPricePerWay = "price_per_way"
	FieldCapacity    = "capacity"
	FieldStatus      = "status"
)

// Transport is a one-directional transfer priced per leg.
type Transport struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	VehicleType string  `db:"vehicle_type"`
	PricePerWay float64 `db:"price_per_way"`
	Capacity    int     `db:"capacity"`
	Status      string  `db:"status"`
	model.Metadata
}
