package dto

import (
	"time"

	"tourdesk/shared/constant"
	"tourdesk/shared/model"
	"tourdesk/shared/timezone"
)

// Metadata is the audit block returned with every stored record. Timestamps are rendered
// in the agency timezone and left empty when unset.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return constant.Empty
	}

	return timezone.Format(value, constant.DateFormat)
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = formatTimestamp(model.CreatedAt)
	m.ModifiedAt = formatTimestamp(model.ModifiedAt)
	m.CreatedBy = model.CreatedBy
	m.ModifiedBy = model.ModifiedBy
}
