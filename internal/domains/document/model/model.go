package model

import (
	"time"

	"tourdesk/shared/model"
	"tourdesk/shared/timezone"

	"github.com/jmoiron/sqlx/types"
)

const (
	TableName  = "documents"
	EntityName = "document"

	FieldID          = "id"
	FieldReference   = "reference"
	FieldType        = "type"
	FieldClientName  = "client_name"
	FieldClientEmail = "client_email"
	FieldAmount      = "amount"
	FieldStatus      = "status"
	FieldIssueDate   = "issue_date"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldLineItems   = "line_items"
	FieldMetadata    = "metadata"

	ArchiveDirectory = "documents"
)

const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Document is the persisted form. Body holds the type-dependent metadata column as raw JSON;
// use DecodeBody to get the typed variant.
type Document struct {
	ID          string         `db:"id"`
	Reference   string         `db:"reference"`
	Type        Type           `db:"type"`
	ClientName  string         `db:"client_name"`
	ClientEmail string         `db:"client_email"`
	Amount      float64        `db:"amount"`
	Status      string         `db:"status"`
	IssueDate   time.Time      `db:"issue_date"`
	CheckIn     *time.Time     `db:"check_in"`
	CheckOut    *time.Time     `db:"check_out"`
	LineItems   LineItems      `db:"line_items"`
	Body        types.JSONText `db:"metadata"`
	model.Metadata
}

func (d Document) DecodeBody() (Body, error) {
	return DecodeBody(d.Type, d.Body)
}

// Nights is the number of nights between check-in and check-out, 0 when either is unset.
func (d Document) Nights() int {
	if d.CheckIn == nil || d.CheckOut == nil {
		return 0
	}

	return timezone.NightsBetween(*d.CheckIn, *d.CheckOut)
}
