// Package form renders extracted packing-list items onto copies of the
// official DD Form 1750 template: a fixed 18-row grid of positioned overlay
// text per page, plus editable header fields on the first page.
package form

// The grid geometry of the printed form, in PDF points on a 612x792 page
// with the origin at the bottom left. Column bands are transcribed from the
// official form; text is placed relative to these edges, never measured off
// the template at run time.
const (
	rowsPerPage = 18

	tableTopY    = 616.0
	tableBottomY = 89.1
	rowHeight    = (tableTopY - tableBottomY) / rowsPerPage

	boxBandLeft     = 45.0
	contentBandLeft = 88.2
	unitBandLeft    = 365.4
	initialOpLeft   = 408.6
	sparesBandLeft  = 453.6
	totalBandLeft   = 514.8
	totalBandRight  = 567.0

	boxCenterX       = 66.6
	unitCenterX      = 387.0
	initialOpCenterX = 431.1
	sparesCenterX    = 484.2
	totalCenterX     = 540.9

	// descX indents item descriptions slightly into the content band.
	descX = contentBandLeft + 3.0

	// Baselines hang below the top edge of each grid row.
	firstLineOffset  = 10.0
	secondLineOffset = 20.0

	stampCurrentX = 472.0
	stampTotalX   = 520.0
	stampY        = 660.0
)

const (
	boxFontSize   = 9
	descFontSize  = 8
	nsnFontSize   = 7
	unitFontSize  = 9
	qtyFontSize   = 9
	stampFontSize = 10
)

// maxDescChars is the widest description the content band holds at 8pt.
const maxDescChars = 55

// PageCount returns how many form pages n items occupy. An empty list still
// produces one blank page.
func PageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + rowsPerPage - 1) / rowsPerPage
}

// rowLines returns the two text baselines of the 0-based grid row r.
func rowLines(r int) (float64, float64) {
	top := tableTopY - float64(r)*rowHeight
	return top - firstLineOffset, top - secondLineOffset
}
