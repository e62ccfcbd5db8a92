// Package draft holds a document being edited as an immutable value. Every edit is an Action
// applied through Apply, which returns a new Draft and leaves the receiver untouched.
package draft

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tourdesk/internal/domains/document/model"
	"tourdesk/shared/failure"
	gModel "tourdesk/shared/model"
	"tourdesk/shared/timezone"
)

var ErrItemNotFound = errors.New("line item not found")

type Draft struct {
	docType     model.Type
	reference   string
	clientName  string
	clientEmail string
	status      string
	issueDate   time.Time
	checkIn     *time.Time
	checkOut    *time.Time
	items       model.LineItems
	body        model.Body
}

// New starts an empty draft of type t issued today.
func New(t model.Type) Draft {
	return Draft{
		docType:   t,
		status:    model.StatusDraft,
		issueDate: timezone.Day(timezone.Now()),
		items:     model.LineItems{},
		body:      model.NewBody(t),
	}
}

// FromDocument loads a stored document for editing.
func FromDocument(doc model.Document) (Draft, error) {
	body, err := doc.DecodeBody()
	if err != nil {
		return Draft{}, err
	}

	return Draft{
		docType:     doc.Type,
		reference:   doc.Reference,
		clientName:  doc.ClientName,
		clientEmail: doc.ClientEmail,
		status:      doc.Status,
		issueDate:   doc.IssueDate,
		checkIn:     copyTime(doc.CheckIn),
		checkOut:    copyTime(doc.CheckOut),
		items:       doc.LineItems.Clone(),
		body:        body,
	}, nil
}

// Action is one reducer transition.
type Action interface {
	apply(d Draft) (Draft, error)
}

// Apply runs actions in order. The first failing action aborts and the receiver is returned.
func (d Draft) Apply(actions ...Action) (Draft, error) {
	next := d.clone()

	for _, action := range actions {
		var err error

		next, err = action.apply(next)
		if err != nil {
			return d, err
		}
	}

	return next, nil
}

func (d Draft) clone() Draft {
	c := d
	c.items = d.items.Clone()
	c.checkIn = copyTime(d.checkIn)
	c.checkOut = copyTime(d.checkOut)

	return c
}

func (d Draft) Type() model.Type       { return d.docType }
func (d Draft) Reference() string      { return d.reference }
func (d Draft) ClientName() string     { return d.clientName }
func (d Draft) ClientEmail() string    { return d.clientEmail }
func (d Draft) Status() string         { return d.status }
func (d Draft) IssueDate() time.Time   { return d.issueDate }
func (d Draft) CheckIn() *time.Time    { return copyTime(d.checkIn) }
func (d Draft) CheckOut() *time.Time   { return copyTime(d.checkOut) }
func (d Draft) Items() model.LineItems { return d.items.Clone() }
func (d Draft) Subtotal() float64      { return d.items.Subtotal() }

// Body returns a copy of the type-dependent body.
func (d Draft) Body() model.Body {
	body, err := cloneBody(d.docType, d.body)
	if err != nil {
		return model.NewBody(d.docType)
	}

	return body
}

// Nights is 0 until both stay dates are set.
func (d Draft) Nights() int {
	if d.checkIn == nil || d.checkOut == nil {
		return 0
	}

	return timezone.NightsBetween(*d.checkIn, *d.checkOut)
}

// Validate checks the draft as a whole. All problems are reported together as one 400.
func (d Draft) Validate() error {
	var problems []string

	if !d.docType.Valid() {
		problems = append(problems, fmt.Sprintf("unknown document type %q", d.docType))
	}

	if strings.TrimSpace(d.clientName) == "" {
		problems = append(problems, "client name is required")
	}

	if d.issueDate.IsZero() {
		problems = append(problems, "issue date is required")
	}

	if d.checkIn != nil && d.checkOut != nil && timezone.Day(*d.checkOut).Before(timezone.Day(*d.checkIn)) {
		problems = append(problems, "check-out must not be before check-in")
	}

	for i, item := range d.items {
		if strings.TrimSpace(item.Description) == "" {
			problems = append(problems, fmt.Sprintf("line item %d needs a description", i+1))
		}

		if item.Quantity < 1 {
			problems = append(problems, fmt.Sprintf("line item %d needs a quantity of at least 1", i+1))
		}

		if item.UnitPrice < 0 {
			problems = append(problems, fmt.Sprintf("line item %d has a negative unit price", i+1))
		}
	}

	if d.docType.Valid() && !model.Accepts(d.docType, d.body) {
		problems = append(problems, fmt.Sprintf("metadata does not match a %s document", d.docType))
	}

	if len(problems) > 0 {
		return failure.BadRequestFromString(strings.Join(problems, "; ")) //nolint:wrapcheck
	}

	return nil
}

// Document validates the draft and builds the persistence payload. Amount is always the
// line-item subtotal.
func (d Draft) Document(id string, metadata gModel.Metadata) (model.Document, error) {
	if err := d.Validate(); err != nil {
		return model.Document{}, err
	}

	body, err := model.EncodeBody(d.docType, d.body)
	if err != nil {
		return model.Document{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	return model.Document{
		ID:          id,
		Reference:   d.reference,
		Type:        d.docType,
		ClientName:  strings.TrimSpace(d.clientName),
		ClientEmail: strings.TrimSpace(d.clientEmail),
		Amount:      d.items.Subtotal(),
		Status:      d.status,
		IssueDate:   d.issueDate,
		CheckIn:     copyTime(d.checkIn),
		CheckOut:    copyTime(d.checkOut),
		LineItems:   d.items.Clone(),
		Body:        body,
		Metadata:    metadata,
	}, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	c := *t

	return &c
}

func cloneBody(t model.Type, body model.Body) (model.Body, error) {
	if body == nil {
		return model.NewBody(t), nil
	}

	data, err := model.EncodeBody(t, body)
	if err != nil {
		return nil, err
	}

	return model.DecodeBody(t, data)
}
