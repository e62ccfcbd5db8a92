// Package render turns a document and the agency branding into a PDF. Rendering is a pure
// function of its Input: it performs no I/O besides writing the output.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"tourdesk/internal/domains/document/model"
	settingsModel "tourdesk/internal/domains/settings/model"
	"tourdesk/shared/failure"
)

type Input struct {
	Document model.Document
	// Body is the decoded document metadata. When nil it is decoded from Document.
	Body     model.Body
	Branding settingsModel.Branding
}

// Render writes the PDF for in to w. A document that cannot be rendered completely returns an
// Unprocessable failure and nothing is written.
func Render(w io.Writer, in Input) error {
	body, err := resolve(in)
	if err != nil {
		return err
	}

	doc := in.Document
	s := newSheet(in.Branding, fmt.Sprintf("%s %s", doc.Type.Title(), doc.Reference))

	header(s, doc, in.Branding)

	switch model.SelectLayout(doc.Type) {
	case model.LayoutQuotation:
		quote, _ := body.(*model.Quotation)
		quotation(s, doc, quote)
	case model.LayoutVoucher:
		reservation, _ := body.(*model.Reservation)
		voucher(s, doc, reservation)
	default:
		invoice, _ := body.(*model.Invoice)
		tabular(s, doc, invoice, in.Branding)
	}

	terms(s, in.Branding)

	if err = s.pdf.Error(); err != nil {
		return failure.Unprocessable("failed to render document: " + err.Error()) // nolint:wrapcheck
	}

	var buf bytes.Buffer
	if err = s.pdf.Output(&buf); err != nil {
		return failure.Unprocessable("failed to render document: " + err.Error()) // nolint:wrapcheck
	}

	if _, err = buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return nil
}

// Bytes renders in into memory.
func Bytes(in Input) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, in); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// bodyType is the type whose body variant the layout of t prints. Types without a layout of
// their own fall back to the tabular one and read an invoice body.
func bodyType(t model.Type) model.Type {
	if t.Valid() {
		return t
	}

	return model.TypeInvoice
}

// resolve checks the fields every template prints and returns the body matching the layout
// selected for the document type.
func resolve(in Input) (model.Body, error) {
	doc := in.Document
	variant := bodyType(doc.Type)

	var missing []string
	if strings.TrimSpace(doc.Reference) == "" {
		missing = append(missing, "reference is required")
	}

	if strings.TrimSpace(doc.ClientName) == "" {
		missing = append(missing, "client name is required")
	}

	if doc.IssueDate.IsZero() {
		missing = append(missing, "issue date is required")
	}

	if len(missing) > 0 {
		return nil, failure.Unprocessable(strings.Join(missing, "; ")) // nolint:wrapcheck
	}

	body := in.Body
	if body == nil {
		decoded, err := model.DecodeBody(variant, doc.Body)
		if err != nil {
			return nil, failure.Unprocessable(err.Error()) // nolint:wrapcheck
		}

		body = decoded
	}

	if !model.Accepts(variant, body) {
		return nil, failure.Unprocessable(fmt.Sprintf("%s: %s", model.ErrBodyMismatch, doc.Type)) // nolint:wrapcheck
	}

	return body, nil
}

// header draws the logo or agency name, the document title and reference block, the agency
// contact lines and the recipient.
func header(s *sheet, doc model.Document, branding settingsModel.Branding) {
	pdf := s.pdf
	top := pdf.GetY()

	if !s.logo(branding) {
		s.font("B", 16, s.brand)
		pdf.SetXY(pageMargin, top)
		pdf.MultiCell(s.width*0.55, 7, s.text(branding.AgencyName), "", "L", false)
	}

	right := s.width * 0.45
	pdf.SetXY(pageMargin+s.width-right, top)
	s.font("B", 16, s.brand)
	pdf.CellFormat(right, 9, s.text(doc.Type.Title()), "", 2, "R", false, 0, "")

	s.font("", 9, textColor)

	for _, line := range []string{
		"Ref: " + doc.Reference,
		"Date: " + displayDate(doc.IssueDate),
		"Status: " + capitalize(doc.Status),
	} {
		pdf.CellFormat(right, lineHeight, s.text(line), "", 2, "R", false, 0, "")
	}

	pdf.SetXY(pageMargin, max(pdf.GetY(), top+logoHeight)+2)

	s.font("", 8, mutedColor)

	for _, line := range contactLines(branding) {
		pdf.CellFormat(s.width, 4, s.text(line), "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	s.draw(s.brand)
	pdf.SetLineWidth(0.6)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+s.width, pdf.GetY())
	pdf.Ln(4)

	s.font("B", 8, mutedColor)
	pdf.CellFormat(s.width, 4, s.text(recipientLabel(doc.Type)), "", 1, "L", false, 0, "")
	s.font("B", 11, textColor)
	pdf.CellFormat(s.width, 6, s.text(doc.ClientName), "", 1, "L", false, 0, "")

	if doc.ClientEmail != "" {
		s.font("", 9, textColor)
		pdf.CellFormat(s.width, lineHeight, s.text(doc.ClientEmail), "", 1, "L", false, 0, "")
	}
}

func contactLines(branding settingsModel.Branding) []string {
	var lines []string

	if branding.Address != "" {
		lines = append(lines, strings.ReplaceAll(branding.Address, "\n", ", "))
	}

	reach := joinNonEmpty(" | ", branding.Phone, branding.Email, branding.Website)
	if reach != "" {
		lines = append(lines, reach)
	}

	if branding.TaxNumber != "" {
		lines = append(lines, "Tax No: "+branding.TaxNumber)
	}

	return lines
}

func recipientLabel(t model.Type) string {
	switch t {
	case model.TypeInvoice:
		return "BILL TO"
	case model.TypeQuotation:
		return "PREPARED FOR"
	default:
		return "ISSUED TO"
	}
}

// terms prints the agency terms at the end of every document.
func terms(s *sheet, branding settingsModel.Branding) {
	if strings.TrimSpace(branding.Terms) == "" {
		return
	}

	s.heading("Terms & Conditions")
	s.font("", 8, mutedColor)

	for _, line := range s.split(branding.Terms, s.width) {
		s.ensureSpace(4)
		s.pdf.CellFormat(s.width, 4, s.tr(line), "", 1, "L", false, 0, "")
	}
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))

	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			parts = append(parts, strings.TrimSpace(value))
		}
	}

	return strings.Join(parts, sep)
}

func capitalize(value string) string {
	if value == "" {
		return value
	}

	return strings.ToUpper(value[:1]) + value[1:]
}
