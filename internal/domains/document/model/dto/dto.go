package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tourdesk/internal/domains/document/composer"
	"tourdesk/internal/domains/document/draft"
	"tourdesk/internal/domains/document/model"
	"tourdesk/shared"
	"tourdesk/shared/constant"
	gDto "tourdesk/shared/dto"
	"tourdesk/shared/failure"
	"tourdesk/shared/timezone"

	"github.com/google/uuid"
)

type LineItem struct {
	ID          string  `json:"id"          validate:"omitempty,max=64"`
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    int     `json:"quantity"    validate:"gte=1"`
	UnitPrice   float64 `json:"unit_price"  validate:"gte=0"`
}

func (l LineItem) ToModel() model.LineItem {
	id := l.ID
	if id == constant.Empty {
		id = uuid.NewString()
	}

	return model.LineItem{
		ID:          id,
		Description: strings.TrimSpace(l.Description),
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
	}
}

func (l *LineItem) FromModel(item model.LineItem) {
	l.ID = item.ID
	l.Description = item.Description
	l.Quantity = item.Quantity
	l.UnitPrice = item.UnitPrice
}

func toLineItems(items []LineItem) model.LineItems {
	res := make(model.LineItems, len(items))
	for i, item := range items {
		res[i] = item.ToModel()
	}

	return res
}

func fromLineItems(items model.LineItems) []LineItem {
	res := make([]LineItem, len(items))
	for i, item := range items {
		res[i].FromModel(item)
	}

	return res
}

// DocumentRequest is the full document payload, used for create and update alike.
// Metadata is the type-dependent body: quotation, invoice or reservation fields.
type DocumentRequest struct {
	Type        string          `json:"type"         validate:"required,oneof=Quotation Invoice Voucher Booking"`
	ClientName  string          `json:"client_name"  validate:"required,max=150"`
	ClientEmail string          `json:"client_email" validate:"omitempty,email,max=150"`
	Status      string          `json:"status"       validate:"omitempty,oneof=draft sent paid confirmed cancelled"`
	IssueDate   string          `json:"issue_date"   validate:"omitempty,day"`
	CheckIn     string          `json:"check_in"     validate:"omitempty,day"`
	CheckOut    string          `json:"check_out"    validate:"omitempty,day,dayfrom=CheckIn"`
	LineItems   []LineItem      `json:"line_items"   validate:"max=200,dive"`
	Metadata    json.RawMessage `json:"metadata"     swaggertype:"object"`
}

// Body decodes Metadata into the variant the requested type carries.
func (r DocumentRequest) Body() (model.Body, error) {
	body, err := model.DecodeBody(model.Type(r.Type), r.Metadata)
	if err != nil {
		return nil, failure.BadRequest(err) //nolint:wrapcheck
	}

	return body, nil
}

// Actions translates the payload into draft transitions. Body is the decoded, and possibly
// repriced, metadata.
func (r DocumentRequest) Actions(body model.Body) ([]draft.Action, error) {
	checkIn, err := parseDay(r.CheckIn, "check_in")
	if err != nil {
		return nil, err
	}

	checkOut, err := parseDay(r.CheckOut, "check_out")
	if err != nil {
		return nil, err
	}

	actions := []draft.Action{
		draft.SetType{Type: model.Type(r.Type)},
		draft.SetClient{Name: r.ClientName, Email: r.ClientEmail},
		draft.SetStatus{Status: r.Status},
		draft.SetStay{CheckIn: checkIn, CheckOut: checkOut},
		draft.SetItems{Items: toLineItems(r.LineItems)},
		draft.SetBody{Body: body},
	}

	issueDate, err := parseDay(r.IssueDate, "issue_date")
	if err != nil {
		return nil, err
	}

	if issueDate != nil {
		actions = append(actions, draft.SetIssueDate{Date: *issueDate})
	}

	return actions, nil
}

func parseDay(value, name string) (*time.Time, error) {
	if value == constant.Empty {
		return nil, nil
	}

	day, err := timezone.Parse(constant.DayFormat, value)
	if err != nil {
		return nil, failure.BadRequest(fmt.Errorf("invalid %s: %w", name, err)) //nolint:wrapcheck
	}

	day = timezone.Day(day)

	return &day, nil
}

func formatDay(t *time.Time) *string {
	if t == nil {
		return nil
	}

	day := t.Format(constant.DayFormat)

	return &day
}

type DocumentResponse struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference"`
	Type        string          `json:"type"`
	ClientName  string          `json:"client_name"`
	ClientEmail string          `json:"client_email"`
	Amount      float64         `json:"amount"`
	Status      string          `json:"status"`
	IssueDate   string          `json:"issue_date"`
	CheckIn     *string         `json:"check_in"`
	CheckOut    *string         `json:"check_out"`
	Nights      int             `json:"nights"`
	Layout      string          `json:"layout"`
	LineItems   []LineItem      `json:"line_items"`
	Body        json.RawMessage `json:"metadata"   swaggertype:"object"`
	gDto.Metadata
}

func (r *DocumentResponse) FromModel(doc model.Document) {
	r.ID = doc.ID
	r.Reference = doc.Reference
	r.Type = string(doc.Type)
	r.ClientName = doc.ClientName
	r.ClientEmail = doc.ClientEmail
	r.Amount = doc.Amount
	r.Status = doc.Status
	r.IssueDate = doc.IssueDate.Format(constant.DayFormat)
	r.CheckIn = formatDay(doc.CheckIn)
	r.CheckOut = formatDay(doc.CheckOut)
	r.Nights = doc.Nights()
	r.Layout = string(model.SelectLayout(doc.Type))
	r.LineItems = fromLineItems(doc.LineItems)

	r.Body = json.RawMessage("{}")
	if len(doc.Body) > 0 {
		r.Body = json.RawMessage(doc.Body)
	}

	r.Metadata.FromModel(doc.Metadata)
}

// DocumentSummary is the list view: no line items or metadata.
type DocumentSummary struct {
	ID         string  `json:"id"`
	Reference  string  `json:"reference"`
	Type       string  `json:"type"`
	ClientName string  `json:"client_name"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
	IssueDate  string  `json:"issue_date"`
	gDto.Metadata
}

func (r *DocumentSummary) FromModel(doc model.Document) {
	r.ID = doc.ID
	r.Reference = doc.Reference
	r.Type = string(doc.Type)
	r.ClientName = doc.ClientName
	r.Amount = doc.Amount
	r.Status = doc.Status
	r.IssueDate = doc.IssueDate.Format(constant.DayFormat)
	r.Metadata.FromModel(doc.Metadata)
}

type GetDocumentsResponse struct {
	Documents []DocumentSummary `json:"documents"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetDocumentsResponse) FromModels(models []model.Document, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Documents = make([]DocumentSummary, len(models))
	for i, mod := range models {
		r.Documents[i].FromModel(mod)
	}
}

// ComposeLineItemRequest selects a catalog record for a line item. With ReplaceID set the
// composed item takes the place of that item in LineItems, otherwise it is appended.
// Nights comes from the stay dates when both are given.
type ComposeLineItemRequest struct {
	Kind      string     `json:"kind"       validate:"required,oneof=property transport activity"`
	SourceID  string     `json:"source_id"  validate:"required"`
	Nights    int        `json:"nights"     validate:"gte=0,lte=365"`
	CheckIn   string     `json:"check_in"   validate:"omitempty,day"`
	CheckOut  string     `json:"check_out"  validate:"omitempty,day,dayfrom=CheckIn"`
	ReplaceID string     `json:"replace_id" validate:"omitempty,max=64"`
	LineItems []LineItem `json:"line_items" validate:"max=200,dive"`
}

func (r ComposeLineItemRequest) Context() composer.Context {
	nights := r.Nights

	checkIn, errIn := parseDay(r.CheckIn, "check_in")
	checkOut, errOut := parseDay(r.CheckOut, "check_out")

	if errIn == nil && errOut == nil && checkIn != nil && checkOut != nil {
		nights = timezone.NightsBetween(*checkIn, *checkOut)
	}

	return composer.Context{ID: r.ReplaceID, Nights: nights}
}

func (r ComposeLineItemRequest) Items() model.LineItems {
	return toLineItems(r.LineItems)
}

type ComposeLineItemResponse struct {
	Item      LineItem   `json:"item"`
	LineItems []LineItem `json:"line_items"`
	Subtotal  float64    `json:"subtotal"`
	Total     float64    `json:"total"`
}

func (r *ComposeLineItemResponse) FromModels(item model.LineItem, items model.LineItems) {
	r.Item.FromModel(item)
	r.LineItems = fromLineItems(items)
	r.Subtotal = items.Subtotal()
	r.Total = r.Subtotal
}

// RenderedDocument is a rendered PDF with its download name.
type RenderedDocument struct {
	Filename string
	Content  []byte
}

// DocumentSavedEvent is published after every create and update.
type DocumentSavedEvent struct {
	ID        string    `json:"id"`
	Reference string    `json:"reference"`
	Type      string    `json:"type"`
	Action    string    `json:"action"`
	SavedBy   string    `json:"saved_by"`
	SavedAt   time.Time `json:"saved_at"`
}

const (
	EventActionCreated = "created"
	EventActionUpdated = "updated"
)
