package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourdesk/internal/domains/document/model"
)

func TestSelectLayout(t *testing.T) {
	tests := []struct {
		docType model.Type
		want    model.Layout
	}{
		{docType: model.TypeBooking, want: model.LayoutVoucher},
		{docType: model.TypeVoucher, want: model.LayoutVoucher},
		{docType: model.TypeQuotation, want: model.LayoutQuotation},
		{docType: model.TypeInvoice, want: model.LayoutTabular},
		{docType: model.Type("AnythingElse"), want: model.LayoutTabular},
		{docType: model.Type(""), want: model.LayoutTabular},
	}

	for _, tt := range tests {
		t.Run(string(tt.docType), func(t *testing.T) {
			assert.Equal(t, tt.want, model.SelectLayout(tt.docType))
		})
	}
}

func TestLineItems_Subtotal(t *testing.T) {
	items := model.LineItems{
		{ID: "1", Description: "Villa Simulizi (3 nights)", Quantity: 3, UnitPrice: 20000},
		{ID: "2", Description: "Transport: Airport (Van)", Quantity: 1, UnitPrice: 4500},
		{ID: "3", Description: "Activity: Rafting", Quantity: 2, UnitPrice: 350.5},
	}
	snapshot := items.Clone()

	first := items.Subtotal()
	second := items.Subtotal()

	assert.InDelta(t, 65201.0, first, 1e-9)
	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, items)
	assert.Zero(t, model.LineItems{}.Subtotal())
	assert.Zero(t, model.LineItems(nil).Subtotal())
}

func TestLineItems_SubtotalInCents(t *testing.T) {
	items := model.LineItems{
		{ID: "1", Description: "Tea", Quantity: 1, UnitPrice: 0.1},
		{ID: "2", Description: "Coffee", Quantity: 1, UnitPrice: 0.2},
	}

	assert.Equal(t, 0.3, items.Subtotal())
	assert.Equal(t, 0.33, model.LineItem{UnitPrice: 0.333}.Normalized().UnitPrice)
	assert.Equal(t, 2.68, model.RoundCents(2.675000001))
}

func TestLineItems_ValueScan(t *testing.T) {
	items := model.LineItems{{ID: "1", Description: "Room", Quantity: 2, UnitPrice: 100}}

	value, err := items.Value()
	require.NoError(t, err)

	var scanned model.LineItems
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, items, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name    string
		docType model.Type
		raw     string
		check   func(t *testing.T, body model.Body)
		wantErr bool
	}{
		{
			name:    "reservation for booking",
			docType: model.TypeBooking,
			raw:     `{"confirmation_number":"ABC123","guest":{"name":"Ana"},"rooms":[{"room_type_name":"Deluxe","quantity":1}]}`,
			check: func(t *testing.T, body model.Body) {
				reservation, ok := body.(*model.Reservation)
				require.True(t, ok)
				assert.Equal(t, "Ana", reservation.Guest.Name)
				assert.Len(t, reservation.Rooms, 1)
			},
		},
		{
			name:    "empty quotation bag",
			docType: model.TypeQuotation,
			raw:     `{}`,
			check: func(t *testing.T, body model.Body) {
				_, ok := body.(*model.Quotation)
				assert.True(t, ok)
			},
		},
		{
			name:    "null invoice bag",
			docType: model.TypeInvoice,
			raw:     `null`,
			check: func(t *testing.T, body model.Body) {
				_, ok := body.(*model.Invoice)
				assert.True(t, ok)
			},
		},
		{
			name:    "unknown type",
			docType: model.Type("Receipt"),
			raw:     `{}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			docType: model.TypeVoucher,
			raw:     `{"guest":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := model.DecodeBody(tt.docType, []byte(tt.raw))

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			tt.check(t, body)
		})
	}
}

func TestEncodeBody(t *testing.T) {
	_, err := model.EncodeBody(model.TypeInvoice, &model.Reservation{})
	require.ErrorIs(t, err, model.ErrBodyMismatch)

	data, err := model.EncodeBody(model.TypeInvoice, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	data, err = model.EncodeBody(model.TypeVoucher, &model.Reservation{ConfirmationNumber: "X1"})
	require.NoError(t, err)

	body, err := model.DecodeBody(model.TypeVoucher, data)
	require.NoError(t, err)
	assert.Equal(t, "X1", body.(*model.Reservation).ConfirmationNumber)
}

func TestType(t *testing.T) {
	assert.True(t, model.TypeBooking.Valid())
	assert.False(t, model.Type("Receipt").Valid())
	assert.Equal(t, "QTN", model.TypeQuotation.ReferencePrefix())
	assert.Equal(t, "INV", model.TypeInvoice.ReferencePrefix())
	assert.Equal(t, "VCH", model.TypeVoucher.ReferencePrefix())
	assert.Equal(t, "BKG", model.TypeBooking.ReferencePrefix())
}

func TestDocument_Nights(t *testing.T) {
	in := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 3)

	assert.Equal(t, 3, model.Document{CheckIn: &in, CheckOut: &out}.Nights())
	assert.Equal(t, 0, model.Document{CheckIn: &out, CheckOut: &in}.Nights())
	assert.Equal(t, 0, model.Document{CheckIn: &in}.Nights())
}
