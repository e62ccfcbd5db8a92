package render

type column struct {
	title string
	share float64
	align string
}

// table draws rows whose cells wrap. The header row is repeated after every page break.
type table struct {
	s       *sheet
	columns []column
}

func newTable(s *sheet, columns ...column) table {
	t := table{s: s, columns: columns}
	t.s.ensureSpace(lineHeight*2 + 2*cellPadding)
	t.header()

	return t
}

func (t table) widths() []float64 {
	widths := make([]float64, len(t.columns))
	for i, col := range t.columns {
		widths[i] = col.share * t.s.width
	}

	return widths
}

func (t table) header() {
	pdf := t.s.pdf

	t.s.font("B", 9, rgb{255, 255, 255})
	t.s.fill(t.s.brand)

	for i, w := range t.widths() {
		pdf.CellFormat(w, lineHeight+2, t.s.text(t.columns[i].title), "", 0, t.columns[i].align, true, 0, "")
	}

	pdf.Ln(-1)
}

// row prints one row. It needs one value per column.
func (t table) row(values ...string) {
	pdf := t.s.pdf
	widths := t.widths()

	t.s.font("", 9, textColor)

	cells := make([][]string, len(t.columns))
	lines := 1

	for i := range t.columns {
		value := ""
		if i < len(values) {
			value = values[i]
		}

		cells[i] = t.s.split(value, widths[i])
		lines = max(lines, len(cells[i]))
	}

	height := float64(lines)*lineHeight + 2*cellPadding
	if t.s.ensureSpace(height) {
		t.header()
		t.s.font("", 9, textColor)
	}

	left, top := pdf.GetX(), pdf.GetY()
	x := left

	for i, cell := range cells {
		for n, line := range cell {
			pdf.SetXY(x, top+cellPadding+float64(n)*lineHeight)
			pdf.CellFormat(widths[i], lineHeight, t.s.tr(line), "", 0, t.columns[i].align, false, 0, "")
		}

		x += widths[i]
	}

	t.s.draw(ruleColor)
	pdf.SetLineWidth(0.2)
	pdf.Line(left, top+height, left+t.s.width, top+height)
	pdf.SetXY(left, top+height)
}

// total prints a right-aligned label/amount line under the table.
func (t table) total(label, amount string, strong bool) {
	pdf := t.s.pdf
	t.s.ensureSpace(lineHeight + 2)

	labelWidth := t.s.width * 0.75

	style, color := "", textColor
	if strong {
		style, color = "B", t.s.brand
		t.s.fill(shadeColor)
	}

	t.s.font(style, 10, color)
	pdf.CellFormat(labelWidth, lineHeight+2, t.s.text(label), "", 0, "R", strong, 0, "")
	pdf.CellFormat(t.s.width-labelWidth, lineHeight+2, t.s.text(amount), "", 1, "R", strong, 0, "")
}
