package dto

import (
	"tourdesk/internal/domains/activity/model"
	"tourdesk/shared"
	"tourdesk/shared/constant"
	gDto "tourdesk/shared/dto"
	gModel "tourdesk/shared/model"
	"tourdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateActivityRequest struct {
	Name        string  `json:"name"        validate:"required,max=150"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Location    string  `json:"location"    validate:"omitempty,max=150"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Status      string  `json:"status"      validate:"omitempty,oneof=active inactive"`
}

func (c *CreateActivityRequest) ToModel(user string) model.Activity {
	status := c.Status
	if status == constant.Empty {
		status = constant.StatusActive
	}

	return model.Activity{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Location:    c.Location,
		Price:       c.Price,
		Status:      status,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateActivityRequest struct {
	Name        string   `db:"name"        json:"name"        validate:"omitempty,max=150"`
	Description string   `db:"description" json:"description" validate:"omitempty,max=2000"`
	Location    string   `db:"location"    json:"location"    validate:"omitempty,max=150"`
	Price       *float64 `db:"price"       json:"price"       validate:"omitempty,gte=0"`
	Status      string   `db:"status"      json:"status"      validate:"omitempty,oneof=active inactive"`
}

type ActivityResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	gDto.Metadata
}

func (r *ActivityResponse) FromModel(model model.Activity) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Location = model.Location
	r.Price = model.Price
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

func (r *ActivityResponse) ToModel() model.Activity {
	return model.Activity{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Price:       r.Price,
		Status:      r.Status,
	}
}

type GetActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetActivitiesResponse) FromModels(models []model.Activity, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Activities = make([]ActivityResponse, len(models))
	for i, mod := range models {
		r.Activities[i].FromModel(mod)
	}
}
