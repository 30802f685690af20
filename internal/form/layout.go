package form

import (
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/font"

	"github.com/bomtools/dd1750/internal/bom"
)

const helveticaName = "Helvetica"

// TextOp is one positioned text run on an output page.
type TextOp struct {
	X    float64
	Y    float64
	Size int
	Text string
}

// PageLayout holds every text run of one output page.
type PageLayout struct {
	Number int
	Ops    []TextOp
}

// Paginate lays items out across the fixed grid in line-number order:
// item i lands on page i/18, row i%18. Every page carries its own page
// stamps, derived from the pagination alone.
func Paginate(items []bom.Item) []PageLayout {
	total := PageCount(len(items))
	layouts := make([]PageLayout, 0, total)
	for p := 0; p < total; p++ {
		start := p * rowsPerPage
		end := start + rowsPerPage
		if end > len(items) {
			end = len(items)
		}
		layouts = append(layouts, layoutPage(items[start:end], p+1, total))
	}
	return layouts
}

// layoutPage renders up to 18 items plus the page stamps.
func layoutPage(items []bom.Item, number, total int) PageLayout {
	ops := make([]TextOp, 0, len(items)*6+2)
	for i, item := range items {
		line1, line2 := rowLines(i)
		qty := strconv.Itoa(item.Quantity)

		ops = append(ops,
			centered(strconv.Itoa(item.LineNo), boxCenterX, line1, boxFontSize),
			TextOp{X: descX, Y: line1, Size: descFontSize, Text: clip(item.Description, maxDescChars)},
		)
		if item.StockNumber != "" {
			ops = append(ops, TextOp{X: descX, Y: line2, Size: nsnFontSize, Text: "NSN: " + item.StockNumber})
		}

		unit := item.UnitOfIssue
		if unit == "" {
			unit = bom.DefaultUnitOfIssue
		}
		ops = append(ops,
			centered(unit, unitCenterX, line1, unitFontSize),
			centered(qty, initialOpCenterX, line1, qtyFontSize),
			centered("0", sparesCenterX, line1, qtyFontSize),
			centered(qty, totalCenterX, line1, qtyFontSize),
		)
	}

	ops = append(ops,
		centered(strconv.Itoa(number), stampCurrentX, stampY, stampFontSize),
		centered(strconv.Itoa(total), stampTotalX, stampY, stampFontSize),
	)
	return PageLayout{Number: number, Ops: ops}
}

// centered balances the text's real Helvetica advance around x.
func centered(text string, x, y float64, size int) TextOp {
	w := font.TextWidth(text, helveticaName, size)
	return TextOp{X: x - w/2, Y: y, Size: size, Text: text}
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
