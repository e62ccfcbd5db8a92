package render

import (
	"bytes"
	"fmt"
	"strings"

	settingsModel "tourdesk/internal/domains/settings/model"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"
)

const (
	fontFamily = "Helvetica"

	pageMargin   = 15.0
	bottomMargin = 20.0
	lineHeight   = 5.0
	cellPadding  = 1.5
	sectionGap   = 6.0
	logoHeight   = 18.0
	logoMaxWidth = 60.0
	logoName     = "agency-logo"
)

// sheet wraps one fpdf document with the branding every template draws with.
type sheet struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	brand    rgb
	currency string
	width    float64
	height   float64
}

func newSheet(branding settingsModel.Branding, title string) *sheet {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.AliasNbPages("")

	pageWidth, pageHeight := pdf.GetPageSize()

	s := &sheet{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		brand:    parseColor(branding.PrimaryColor),
		currency: branding.CurrencyLabel,
		width:    pageWidth - 2*pageMargin,
		height:   pageHeight,
	}

	pdf.SetTitle(title, true)
	pdf.SetAuthor(branding.AgencyName, true)
	pdf.SetCreator(branding.AgencyName, true)

	pdf.SetHeaderFunc(func() {
		s.fill(s.brand)
		pdf.Rect(0, 0, pageWidth, 4, "F")
		pdf.SetY(pageMargin)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-bottomMargin + 6)
		s.draw(ruleColor)
		pdf.SetLineWidth(0.2)
		pdf.Line(pageMargin, pdf.GetY(), pageMargin+s.width, pdf.GetY())
		pdf.Ln(1.5)

		s.font("", 8, mutedColor)
		pdf.CellFormat(s.width*0.75, 4, s.text(branding.FooterNote), "", 0, "L", false, 0, "")
		pdf.CellFormat(s.width*0.25, 4, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	return s
}

func (s *sheet) text(value string) string {
	return s.tr(latin1(value))
}

func (s *sheet) font(style string, size float64, color rgb) {
	s.pdf.SetFont(fontFamily, style, size)
	s.pdf.SetTextColor(color.r, color.g, color.b)
}

func (s *sheet) fill(color rgb) {
	s.pdf.SetFillColor(color.r, color.g, color.b)
}

func (s *sheet) draw(color rgb) {
	s.pdf.SetDrawColor(color.r, color.g, color.b)
}

// split wraps value to width with the current font. It always returns at least one line.
func (s *sheet) split(value string, width float64) []string {
	lines := make([]string, 0, 1)

	for _, paragraph := range strings.Split(latin1(value), "\n") {
		wrapped := s.pdf.SplitText(paragraph, width)
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}

		lines = append(lines, wrapped...)
	}

	return lines
}

// ensureSpace starts a new page when h does not fit above the bottom margin and
// reports whether it did.
func (s *sheet) ensureSpace(h float64) bool {
	if s.pdf.GetY()+h <= s.height-bottomMargin {
		return false
	}

	s.pdf.AddPage()

	return true
}

// logo places the agency logo at the current position. It returns false when there is no
// logo or the image cannot be decoded, leaving the document without an error.
func (s *sheet) logo(branding settingsModel.Branding) bool {
	if !branding.HasLogo() {
		return false
	}

	options := fpdf.ImageOptions{ImageType: branding.LogoType, ReadDpi: true}

	info := s.pdf.RegisterImageOptionsReader(logoName, options, bytes.NewReader(branding.Logo))
	if s.pdf.Err() || info == nil || info.Height() == 0 {
		log.Warn().Err(s.pdf.Error()).Msg("failed to load agency logo, using agency name")
		s.pdf.ClearError()

		return false
	}

	w, h := info.Width()*logoHeight/info.Height(), logoHeight
	if w > logoMaxWidth {
		w, h = logoMaxWidth, info.Height()*logoMaxWidth/info.Width()
	}

	s.pdf.ImageOptions(logoName, pageMargin, s.pdf.GetY(), w, h, false, options, 0, "")

	return true
}

// heading prints a section title in the brand color with a rule under it.
func (s *sheet) heading(title string) {
	s.ensureSpace(lineHeight*3 + sectionGap)
	s.pdf.Ln(sectionGap / 2)

	s.font("B", 10, s.brand)
	s.pdf.CellFormat(s.width, lineHeight+1, s.text(strings.ToUpper(title)), "", 1, "L", false, 0, "")

	s.draw(s.brand)
	s.pdf.SetLineWidth(0.4)
	s.pdf.Line(pageMargin, s.pdf.GetY(), pageMargin+s.width, s.pdf.GetY())
	s.pdf.Ln(1.5)
}

// paragraph prints wrapped body text.
func (s *sheet) paragraph(value string) {
	if strings.TrimSpace(value) == "" {
		return
	}

	s.font("", 9, textColor)

	for _, line := range s.split(value, s.width) {
		s.ensureSpace(lineHeight)
		s.pdf.CellFormat(s.width, lineHeight, s.tr(line), "", 1, "L", false, 0, "")
	}
}

// bullets prints a bulleted list. Blank entries are skipped.
func (s *sheet) bullets(items []string) {
	s.font("", 9, textColor)

	indent := 5.0

	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}

		for i, line := range s.split(item, s.width-indent) {
			s.ensureSpace(lineHeight)

			marker := ""
			if i == 0 {
				marker = "-"
			}

			s.pdf.CellFormat(indent, lineHeight, marker, "", 0, "L", false, 0, "")
			s.pdf.CellFormat(s.width-indent, lineHeight, s.tr(line), "", 1, "L", false, 0, "")
		}
	}
}

// list prints a titled bullet list, or nothing when every entry is blank.
func (s *sheet) list(title string, items []string) {
	if !hasText(items) {
		return
	}

	s.heading(title)
	s.bullets(items)
}

type field struct {
	label string
	value string
}

// fields prints label/value pairs in two columns. Empty values are skipped.
func (s *sheet) fields(pairs ...field) {
	labelWidth := 38.0

	for _, pair := range pairs {
		if strings.TrimSpace(pair.value) == "" {
			continue
		}

		s.font("", 9, textColor)
		lines := s.split(pair.value, s.width-labelWidth)
		s.ensureSpace(float64(len(lines)) * lineHeight)

		for i, line := range lines {
			label := ""
			if i == 0 {
				label = pair.label
			}

			s.font("B", 9, mutedColor)
			s.pdf.CellFormat(labelWidth, lineHeight, s.text(label), "", 0, "L", false, 0, "")
			s.font("", 9, textColor)
			s.pdf.CellFormat(s.width-labelWidth, lineHeight, s.tr(line), "", 1, "L", false, 0, "")
		}
	}
}

func hasText(items []string) bool {
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			return true
		}
	}

	return false
}
