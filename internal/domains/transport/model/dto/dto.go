package dto

import (
	"tourdesk/internal/domains/transport/model"
	"tourdesk/shared"
	"tourdesk/shared/constant"
	gDto "tourdesk/shared/dto"
	gModel "tourdesk/shared/model"
	"tourdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateTransportRequest struct {
	Name        string  `json:"name"          validate:"required,max=150"`
	VehicleType string  `json:"vehicle_type"  validate:"omitempty,max=60"`
	PricePerWay float64 `json:"price_per_way" validate:"gte=0"`
	Capacity    int     `json:"capacity"      validate:"gte=0"`
	Status      string  `json:"status"        validate:"omitempty,oneof=active inactive"`
}

func (c *CreateTransportRequest) ToModel(user string) model.Transport {
	status := c.Status
	if status == constant.Empty {
		status = constant.StatusActive
	}

	return model.Transport{
		ID:          uuid.NewString(),
		Name:        c.Name,
		VehicleType: c.VehicleType,
		PricePerWay: c.PricePerWay,
		Capacity:    c.Capacity,
		Status:      status,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateTransportRequest struct {
	Name        string   `db:"name"          json:"name"          validate:"omitempty,max=150"`
	VehicleType string   `db:"vehicle_type"  json:"vehicle_type"  validate:"omitempty,max=60"`
	PricePerWay *float64 `db:"price_per_way" json:"price_per_way" validate:"omitempty,gte=0"`
	Capacity    *int     `db:"capacity"      json:"capacity"      validate:"omitempty,gte=0"`
	Status      string   `db:"status"        json:"status"        validate:"omitempty,oneof=active inactive"`
}

type TransportResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	VehicleType string  `json:"vehicle_type"`
	PricePerWay float64 `json:"price_per_way"`
	Capacity    int     `json:"capacity"`
	Status      string  `json:"status"`
	gDto.Metadata
}

func (r *TransportResponse) FromModel(model model.Transport) {
	r.ID = model.ID
	r.Name = model.Name
	r.VehicleType = model.VehicleType
	r.PricePerWay = model.PricePerWay
	r.Capacity = model.Capacity
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

// ToModel rebuilds the catalog record, e.g. for line-item composition from a cached response.
func (r *TransportResponse) ToModel() model.Transport {
	return model.Transport{
		ID:          r.ID,
		Name:        r.Name,
		VehicleType: r.VehicleType,
		PricePerWay: r.PricePerWay,
		Capacity:    r.Capacity,
		Status:      r.Status,
	}
}

type GetTransportsResponse struct {
	Transports []TransportResponse `json:"transports"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetTransportsResponse) FromModels(models []model.Transport, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Transports = make([]TransportResponse, len(models))
	for i, mod := range models {
		r.Transports[i].FromModel(mod)
	}
}
