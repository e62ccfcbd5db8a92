package draft

import (
	"fmt"
	"time"

	"tourdesk/internal/domains/document/model"
	"tourdesk/shared/failure"
)

// SetType changes the document type. A body that does not fit the new type is reset. Once a
// reference is assigned the type is fixed, since the reference prefix is derived from it.
type SetType struct {
	Type model.Type
}

func (a SetType) apply(d Draft) (Draft, error) {
	if d.reference != "" && a.Type != d.docType {
		return d, failure.BadRequestFromString(fmt.Sprintf("document type cannot be changed from %s to %s", d.docType, a.Type)) //nolint:wrapcheck
	}

	d.docType = a.Type
	if !model.Accepts(a.Type, d.body) {
		d.body = model.NewBody(a.Type)
	}

	return d, nil
}

// SetReference is applied once, when the document is first created.
type SetReference struct {
	Reference string
}

func (a SetReference) apply(d Draft) (Draft, error) {
	if d.reference != "" && d.reference != a.Reference {
		return d, failure.BadRequestFromString("document reference cannot be changed") //nolint:wrapcheck
	}

	d.reference = a.Reference

	return d, nil
}

type SetClient struct {
	Name  string
	Email string
}

func (a SetClient) apply(d Draft) (Draft, error) {
	d.clientName = a.Name
	d.clientEmail = a.Email

	return d, nil
}

type SetStatus struct {
	Status string
}

func (a SetStatus) apply(d Draft) (Draft, error) {
	if a.Status != "" {
		d.status = a.Status
	}

	return d, nil
}

type SetIssueDate struct {
	Date time.Time
}

func (a SetIssueDate) apply(d Draft) (Draft, error) {
	d.issueDate = a.Date

	return d, nil
}

// SetStay sets both stay dates; nil clears a date.
type SetStay struct {
	CheckIn  *time.Time
	CheckOut *time.Time
}

func (a SetStay) apply(d Draft) (Draft, error) {
	d.checkIn = copyTime(a.CheckIn)
	d.checkOut = copyTime(a.CheckOut)

	return d, nil
}

type AddItem struct {
	Item model.LineItem
}

func (a AddItem) apply(d Draft) (Draft, error) {
	d.items = append(d.items, a.Item.Normalized())

	return d, nil
}

// SetItems replaces the whole list, keeping the given order. Unit prices are rounded to cents.
type SetItems struct {
	Items model.LineItems
}

func (a SetItems) apply(d Draft) (Draft, error) {
	d.items = make(model.LineItems, len(a.Items))
	for i, item := range a.Items {
		d.items[i] = item.Normalized()
	}

	return d, nil
}

// ReplaceItem swaps the item with ID for Item in place. Item takes over ID.
type ReplaceItem struct {
	ID   string
	Item model.LineItem
}

func (a ReplaceItem) apply(d Draft) (Draft, error) {
	for i := range d.items {
		if d.items[i].ID == a.ID {
			a.Item.ID = a.ID
			d.items[i] = a.Item.Normalized()

			return d, nil
		}
	}

	return d, fmt.Errorf("%w: %s", ErrItemNotFound, a.ID)
}

type RemoveItem struct {
	ID string
}

func (a RemoveItem) apply(d Draft) (Draft, error) {
	for i := range d.items {
		if d.items[i].ID == a.ID {
			d.items = append(d.items[:i], d.items[i+1:]...)

			return d, nil
		}
	}

	return d, fmt.Errorf("%w: %s", ErrItemNotFound, a.ID)
}

// SetBody stores a copy of Body, which must be the variant the draft's type carries.
type SetBody struct {
	Body model.Body
}

func (a SetBody) apply(d Draft) (Draft, error) {
	if !model.Accepts(d.docType, a.Body) {
		return d, failure.BadRequestFromString(fmt.Sprintf("metadata does not match a %s document", d.docType)) //nolint:wrapcheck
	}

	body, err := cloneBody(d.docType, a.Body)
	if err != nil {
		return d, failure.BadRequest(err) //nolint:wrapcheck
	}

	d.body = body

	return d, nil
}
