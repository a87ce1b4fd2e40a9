package document

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tagihan-api/internal/domain/entity"
	"github.com/jhoicas/Tagihan-api/internal/domain/invoice"
	"github.com/jhoicas/Tagihan-api/pkg/locale"
	"github.com/jhoicas/Tagihan-api/pkg/terbilang"
)

// Compose posiciona todos los bloques de la tagihan en páginas.
// Nunca falla: los assets ausentes se omiten y una factura sin líneas conserva
// encabezado, introducción, terbilang y firmas.
func Compose(inv entity.Invoice, company entity.Company, g invoice.Grouping, assets Assets, m TextMeasurer, geo Geometry) *Document {
	if m == nil {
		m = ApproxMeasurer{}
	}
	opts := inv.Options.WithDefaults()
	grand := invoice.GrandTotalFor(inv, g)

	c := newComposer(geo, m, assets.Letterhead)
	c.doc.Title = strings.TrimSpace("Tagihan " + inv.Number)
	c.doc.Author = company.Name

	// ── 1. Encabezado ─────────────────────────────────────────────
	c.headerBlock(inv, company)
	if email := strings.TrimSpace(inv.RecipientEmail); email != "" {
		c.paragraph(labelEmail+": "+email, geo.FontSize, false, AlignLeft)
	}

	// ── 2. Introducción ───────────────────────────────────────────
	c.gap(geo.BlockGap)
	c.paragraph(introText(inv, opts), geo.FontSize, false, AlignLeft)

	// ── 3. Tablas por grupo ───────────────────────────────────────
	groups := g.Ordered()
	multi := len(groups) >= 2
	if len(groups) == 0 {
		c.gap(geo.BlockGap)
		c.groupTable(&invoice.GroupAggregate{}, opts, false)
	}
	for _, agg := range groups {
		c.gap(geo.BlockGap)
		c.groupTable(agg, opts, multi)
	}
	if multi {
		c.gap(geo.BlockGap)
		c.summaryTable(groups, opts)
	}

	// ── 4. Notas y terbilang ──────────────────────────────────────
	c.gap(geo.BlockGap)
	if opts.FuelIncludedNote {
		c.paragraph(fuelIncluded, geo.SmallFontSize, false, AlignLeft)
	}
	words := strings.TrimSpace(opts.Terbilang)
	if words == "" {
		words = terbilang.Rupiah(grand)
	}
	c.paragraph(terbilangLine(words), geo.FontSize, true, AlignLeft)
	if bank := firstNonEmpty(opts.BankAccount, company.BankAccount); bank != "" {
		c.paragraph(bankLine(bank), geo.FontSize, false, AlignLeft)
	}
	if notes := strings.TrimSpace(inv.Notes); notes != "" {
		c.gap(geo.BlockGap)
		c.paragraph(notesHeading+"\n"+notes, geo.SmallFontSize, false, AlignLeft)
	}
	c.gap(geo.BlockGap)
	c.paragraph(closingText, geo.FontSize, false, AlignLeft)

	// ── 5. Firmas ─────────────────────────────────────────────────
	c.gap(geo.BlockGap * 2)
	c.signature(inv, company, assets.Signature)

	return c.doc
}

func introText(inv entity.Invoice, opts entity.InvoiceOptions) string {
	if custom := strings.TrimSpace(opts.IntroText); custom != "" {
		return custom
	}
	equipment := strings.TrimSpace(inv.EquipmentDescription)
	location := strings.TrimSpace(inv.Location)
	if equipment != "" && location != "" {
		return greeting + "\n" + introWithEquipment(equipment, location)
	}
	return greeting + "\n" + introGeneric()
}

// composer mantiene el cursor vertical de la página en curso.
type composer struct {
	geo        Geometry
	m          TextMeasurer
	doc        *Document
	letterhead *ImageElement
	page       *Page
	y          float64
	fresh      bool // la página solo tiene el membrete

	header  *TableRowElement // se repite al partir una tabla
	headerH float64
}

func newComposer(geo Geometry, m TextMeasurer, letterhead *Asset) *composer {
	c := &composer{geo: geo, m: m, doc: &Document{Geometry: geo}}
	if h := letterhead.HeightFor(geo.ContentWidth()); h > 0 {
		w := geo.ContentWidth()
		if geo.MaxLetterheadHeight > 0 && h > geo.MaxLetterheadHeight {
			h = geo.MaxLetterheadHeight
			w = letterhead.WidthFor(h)
		}
		c.letterhead = &ImageElement{Asset: letterhead, X: (geo.ContentWidth() - w) / 2, Width: w, Height: h}
	}
	c.newPage()
	return c
}

func (c *composer) contentTop() float64 {
	if c.letterhead != nil {
		return c.geo.TopMargin + c.letterhead.Height + c.geo.LetterheadGap
	}
	return c.geo.TopMargin
}

func (c *composer) newPage() {
	c.page = &Page{Number: len(c.doc.Pages) + 1}
	c.doc.Pages = append(c.doc.Pages, c.page)
	if c.letterhead != nil {
		c.page.Elements = append(c.page.Elements, Placed{Y: c.geo.TopMargin, Height: c.letterhead.Height, Element: *c.letterhead})
	}
	c.y = c.contentTop()
	c.fresh = true
}

func (c *composer) fits(h float64) bool { return c.y+h <= c.geo.Limit() }

func (c *composer) room() float64 { return c.geo.Limit() - c.y }

func (c *composer) capacity() float64 { return c.geo.Limit() - c.contentTop() }

// ensure abre página nueva si h no cabe. En una página recién abierta no hace nada.
func (c *composer) ensure(h float64) {
	if !c.fits(h) && !c.fresh {
		c.newPage()
	}
}

func (c *composer) place(el Element, h float64) {
	c.page.Elements = append(c.page.Elements, Placed{Y: c.y, Height: h, Element: el})
	c.y += h
	c.fresh = false
}

func (c *composer) gap(h float64) {
	if !c.fresh {
		c.y += h
	}
}

func (c *composer) paragraph(text string, size float64, bold bool, align Align) {
	lines := c.m.SplitText(text, size, bold, c.geo.ContentWidth())
	c.lines(lines, "", size, bold, align)
}

// lines coloca un bloque de texto. Si cabe entero en una página nueva se mueve
// completo; si no, se parte línea a línea.
func (c *composer) lines(lines []string, right string, size float64, bold bool, align Align) {
	lh := c.geo.LineHeight
	if h := float64(len(lines)) * lh; h <= c.capacity() {
		c.ensure(h)
	}
	for len(lines) > 0 {
		n := int(c.room()/lh + 1e-9)
		if n < 1 {
			if !c.fresh {
				c.newPage()
				continue
			}
			n = 1
		}
		if n > len(lines) {
			n = len(lines)
		}
		c.place(TextElement{Lines: lines[:n], Right: right, Size: size, Bold: bold, Align: align}, float64(n)*lh)
		right = ""
		lines = lines[n:]
	}
}

// ── Encabezado ─────────────────────────────────────────────────

func (c *composer) headerBlock(inv entity.Invoice, company entity.Company) {
	size := c.geo.FontSize
	date := ""
	if !inv.Date.IsZero() {
		date = locale.FormatDate(inv.Date)
	}
	right := firstNonEmpty(inv.Location, company.City)
	if right != "" && date != "" {
		right += ", "
	}
	right += date

	c.lines([]string{labelNumber + " : " + inv.Number}, right, size, false, AlignLeft)
	c.lines([]string{labelSubject + " : " + inv.Subject}, "", size, false, AlignLeft)
	if inv.DueDate != nil && !inv.DueDate.IsZero() {
		c.lines([]string{labelDueDate + " : " + locale.FormatDate(*inv.DueDate)}, "", size, false, AlignLeft)
	}
	c.gap(c.geo.BlockGap)
	c.lines([]string{labelTo}, "", size, false, AlignLeft)
	if name := strings.TrimSpace(inv.RecipientName); name != "" {
		c.paragraph(name, size, true, AlignLeft)
	}
	if addr := strings.TrimSpace(inv.RecipientAddress); addr != "" {
		c.paragraph(addr, size, false, AlignLeft)
	}
}

// ── Tablas ─────────────────────────────────────────────────────

var (
	fuelColumns  = []int{5, 14, 12, 17, 11, 16, 25}
	plainColumns = []int{5, 14, 31, 12, 16, 22}
	fuelSummary  = []int{6, 44, 16, 14, 20}
	plainSummary = []int{6, 50, 20, 24}
)

// Columnas que ocupa la etiqueta "Total".
const (
	fuelLabelSpan  = 2
	plainLabelSpan = 3
)

func (c *composer) groupTable(agg *invoice.GroupAggregate, opts entity.InvoiceOptions, withTitle bool) {
	header := headerRow(opts, c.geo.SmallFontSize)
	c.prepare(&header)

	rows := make([]TableRowElement, 0, len(agg.Items)+1)
	for i, it := range agg.Items {
		r := itemRow(i, it, opts, c.geo.SmallFontSize)
		c.prepare(&r)
		rows = append(rows, r)
	}
	total := totalRow(agg, opts, c.geo.SmallFontSize)
	c.prepare(&total)
	rows = append(rows, total)

	keep := c.rowHeight(header) + c.rowHeight(rows[0])
	var title []string
	if withTitle {
		title = c.m.SplitText(agg.Label, c.geo.FontSize, true, c.geo.ContentWidth())
		keep += float64(len(title)) * c.geo.LineHeight
	}
	c.ensure(keep)
	if withTitle {
		c.lines(title, "", c.geo.FontSize, true, AlignLeft)
	}
	c.table(header, rows)
}

// summaryTable rekapitulasi por grupo; el Grand Total es siempre la suma de los grupos.
func (c *composer) summaryTable(groups []*invoice.GroupAggregate, opts entity.InvoiceOptions) {
	cols := plainSummary
	cells := []string{"No", "Unit", "Volume (" + opts.QuantityUnit + ")", "Jumlah"}
	if opts.ShowFuelColumns {
		cols = fuelSummary
		cells = []string{"No", "Unit", "Volume (" + opts.QuantityUnit + ")", "Solar (L)", "Jumlah"}
	}
	header := TableRowElement{Columns: cols, Header: true, Size: c.geo.SmallFontSize}
	for _, h := range cells {
		header.Cells = append(header.Cells, Cell{Text: h, Align: AlignCenter})
	}
	c.prepare(&header)

	qty := decimal.Zero
	fuel := decimal.Zero
	amount := decimal.Zero
	rows := make([]TableRowElement, 0, len(groups)+1)
	for i, agg := range groups {
		qty = qty.Add(agg.TotalQuantityUnits)
		fuel = fuel.Add(agg.TotalFuelUnits)
		amount = amount.Add(agg.TotalAmount)
		r := TableRowElement{Columns: cols, Size: c.geo.SmallFontSize, Cells: []Cell{
			{Text: strconv.Itoa(i + 1), Align: AlignCenter},
			{Text: agg.Label},
			{Text: locale.FormatNumber(agg.TotalQuantityUnits), Align: AlignRight},
		}}
		if opts.ShowFuelColumns {
			r.Cells = append(r.Cells, Cell{Text: locale.FormatQuantityOrPlaceholder(agg.TotalFuelUnits), Align: AlignRight})
		}
		r.Cells = append(r.Cells, Cell{Text: locale.FormatRupiah(agg.TotalAmount), Align: AlignRight})
		c.prepare(&r)
		rows = append(rows, r)
	}
	last := TableRowElement{Columns: cols, Total: true, Size: c.geo.SmallFontSize, Cells: []Cell{
		{Text: grandTotalText, Align: AlignCenter, Span: 2},
		{Text: locale.FormatNumber(qty), Align: AlignRight},
	}}
	if opts.ShowFuelColumns {
		last.Cells = append(last.Cells, Cell{Text: locale.FormatQuantityOrPlaceholder(fuel), Align: AlignRight})
	}
	last.Cells = append(last.Cells, Cell{Text: locale.FormatRupiah(amount), Align: AlignRight})
	c.prepare(&last)
	rows = append(rows, last)

	title := []string{summaryTitle}
	c.ensure(c.geo.LineHeight + c.rowHeight(header) + c.rowHeight(rows[0]))
	c.lines(title, "", c.geo.FontSize, true, AlignLeft)
	c.table(header, rows)
}

// table coloca el encabezado y las filas; al cambiar de página repite el encabezado.
func (c *composer) table(header TableRowElement, rows []TableRowElement) {
	c.headerH = c.rowHeight(header)
	c.ensure(c.headerH)
	c.place(header, c.headerH)
	c.header = &header
	defer func() { c.header = nil }()

	for _, r := range rows {
		h := c.rowHeight(r)
		if !c.fits(h) && !c.fresh {
			c.newPage()
			c.place(*c.header, c.headerH)
		}
		c.place(r, h)
	}
}

// prepare parte el texto de cada celda a su ancho.
func (c *composer) prepare(r *TableRowElement) {
	widths := ColumnWidths(r.SpanUnits(), c.geo.ContentWidth())
	for i := range r.Cells {
		w := widths[i] - 2
		if w < 1 {
			w = 1
		}
		r.Cells[i].Lines = c.m.SplitText(r.Cells[i].Text, r.Size, r.Header || r.Total, w)
	}
}

func (c *composer) rowHeight(r TableRowElement) float64 {
	n := 1
	for _, cell := range r.Cells {
		if len(cell.Lines) > n {
			n = len(cell.Lines)
		}
	}
	return float64(n)*c.geo.LineHeight + c.geo.RowPadding
}

func headerRow(opts entity.InvoiceOptions, size float64) TableRowElement {
	volume := "Volume (" + opts.QuantityUnit + ")"
	price := "Harga / " + opts.PriceUnit
	var cols []int
	var labels []string
	if opts.ShowFuelColumns {
		cols = fuelColumns
		labels = []string{"No", "Tanggal", volume, price, "Solar (L)", "Harga Solar", "Jumlah"}
	} else {
		cols = plainColumns
		labels = []string{"No", "Tanggal", opts.ItemLabel, volume, price, "Jumlah"}
	}
	r := TableRowElement{Columns: cols, Header: true, Size: size}
	for _, l := range labels {
		r.Cells = append(r.Cells, Cell{Text: l, Align: AlignCenter})
	}
	return r
}

func itemRow(i int, it entity.LineItem, opts entity.InvoiceOptions, size float64) TableRowElement {
	no := Cell{Text: strconv.Itoa(i + 1), Align: AlignCenter}
	date := Cell{Text: locale.FormatDatePtr(it.Date), Align: AlignCenter}
	volume := Cell{Text: locale.FormatNumber(it.Measure()), Align: AlignRight}
	price := Cell{Text: locale.FormatRupiah(it.UnitPrice), Align: AlignRight}
	amount := Cell{Text: locale.FormatRupiah(it.EffectiveTotal()), Align: AlignRight}

	if opts.ShowFuelColumns {
		fuelPrice := locale.Placeholder
		if !it.FuelQuantity.IsZero() {
			fuelPrice = locale.FormatRupiah(it.FuelUnitPrice)
		}
		return TableRowElement{Columns: fuelColumns, Size: size, Cells: []Cell{
			no, date, volume, price,
			{Text: locale.FormatQuantityOrPlaceholder(it.FuelQuantity), Align: AlignRight},
			{Text: fuelPrice, Align: AlignRight},
			amount,
		}}
	}
	label := strings.TrimSpace(it.Name)
	if desc := strings.TrimSpace(it.Description); desc != "" {
		label = strings.TrimSpace(label + " - " + desc)
	}
	return TableRowElement{Columns: plainColumns, Size: size, Cells: []Cell{
		no, date, {Text: label}, volume, price, amount,
	}}
}

func totalRow(agg *invoice.GroupAggregate, opts entity.InvoiceOptions, size float64) TableRowElement {
	if opts.ShowFuelColumns {
		return TableRowElement{Columns: fuelColumns, Total: true, Size: size, Cells: []Cell{
			{Text: totalLabel, Align: AlignCenter, Span: fuelLabelSpan},
			{Text: locale.FormatNumber(agg.TotalQuantityUnits), Align: AlignRight},
			{},
			{Text: locale.FormatQuantityOrPlaceholder(agg.TotalFuelUnits), Align: AlignRight},
			{},
			{Text: locale.FormatRupiah(agg.TotalAmount), Align: AlignRight},
		}}
	}
	return TableRowElement{Columns: plainColumns, Total: true, Size: size, Cells: []Cell{
		{Text: totalLabel, Align: AlignCenter, Span: plainLabelSpan},
		{Text: locale.FormatNumber(agg.TotalQuantityUnits), Align: AlignRight},
		{},
		{Text: locale.FormatRupiah(agg.TotalAmount), Align: AlignRight},
	}}
}

// ── Firmas ─────────────────────────────────────────────────────

func (c *composer) signature(inv entity.Invoice, company entity.Company, sig *Asset) {
	el := SignatureElement{
		Size:       c.geo.FontSize,
		ImageSpace: c.geo.SignatureArea,
		Left: SignatureParty{
			Heading: senderHeading,
			Company: company.Name,
			Name:    company.SignerName,
			Title:   company.SignerTitle,
			Image:   sig,
		},
		Right: SignatureParty{
			Heading: receiverHead,
			Company: strings.TrimSpace(inv.RecipientName),
			Name:    blankSignature,
		},
	}
	h := 4*c.geo.LineHeight + c.geo.SignatureArea
	c.ensure(h)
	c.place(el, h)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
