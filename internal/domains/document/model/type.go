package model

type Type string

const (
	TypeQuotation Type = "Quotation"
	TypeInvoice   Type = "Invoice"
	TypeVoucher   Type = "Voucher"
	TypeBooking   Type = "Booking"
)

func (t Type) Valid() bool {
	switch t {
	case TypeQuotation, TypeInvoice, TypeVoucher, TypeBooking:
		return true
	default:
		return false
	}
}

// ReferencePrefix is the leading segment of a document reference.
func (t Type) ReferencePrefix() string {
	switch t {
	case TypeQuotation:
		return "QTN"
	case TypeInvoice:
		return "INV"
	case TypeVoucher:
		return "VCH"
	case TypeBooking:
		return "BKG"
	default:
		return "DOC"
	}
}

// Title is the heading printed on the rendered document.
func (t Type) Title() string {
	switch t {
	case TypeQuotation:
		return "QUOTATION"
	case TypeInvoice:
		return "INVOICE"
	case TypeVoucher:
		return "CONFIRMATION VOUCHER"
	case TypeBooking:
		return "BOOKING VOUCHER"
	default:
		return "DOCUMENT"
	}
}

type Layout string

const (
	LayoutTabular   Layout = "tabular"
	LayoutVoucher   Layout = "voucher"
	LayoutQuotation Layout = "quotation"
)

// SelectLayout routes a document type to its template. Unknown types get the tabular layout.
func SelectLayout(t Type) Layout {
	switch t {
	case TypeVoucher, TypeBooking:
		return LayoutVoucher
	case TypeQuotation:
		return LayoutQuotation
	default:
		return LayoutTabular
	}
}
