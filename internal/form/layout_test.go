package form

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/font"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bomtools/dd1750/internal/bom"
)

func testItems(n int) []bom.Item {
	items := make([]bom.Item, n)
	for i := range items {
		items[i] = bom.Item{
			LineNo:      i + 1,
			Description: fmt.Sprintf("ITEM %d", i+1),
			Quantity:    2,
			UnitOfIssue: "EA",
		}
	}
	return items
}

func TestPaginateSplitsAtEighteen(t *testing.T) {
	layouts := Paginate(testItems(20))

	require.Len(t, layouts, 2)
	assert.Equal(t, 1, layouts[0].Number)
	assert.Equal(t, 2, layouts[1].Number)

	// Six runs per item without a stock number, plus two page stamps.
	assert.Len(t, layouts[0].Ops, 18*6+2)
	assert.Len(t, layouts[1].Ops, 2*6+2)
}

func TestPaginateStampsEveryPage(t *testing.T) {
	layouts := Paginate(testItems(20))
	first := layouts[0].Ops
	second := layouts[1].Ops

	assert.Equal(t, "1", first[len(first)-2].Text)
	assert.Equal(t, "2", first[len(first)-1].Text)
	assert.Equal(t, "2", second[len(second)-2].Text)
	assert.Equal(t, "2", second[len(second)-1].Text)
	assert.InDelta(t, stampY, first[len(first)-2].Y, 0.001)
	assert.Equal(t, stampFontSize, first[len(first)-1].Size)
}

func TestPaginateRestartsRowsOnEachPage(t *testing.T) {
	layouts := Paginate(testItems(19))

	require.Len(t, layouts, 2)
	second := layouts[1].Ops
	require.NotEmpty(t, second)
	assert.Equal(t, "19", second[0].Text)
	assert.InDelta(t, 606.0, second[0].Y, 0.001)
}

func TestLayoutPageRendersItemRuns(t *testing.T) {
	items := []bom.Item{{
		LineNo:      1,
		Description: "RADIO SET",
		StockNumber: "011234567",
		Quantity:    3,
		UnitOfIssue: "EA",
	}}

	pl := layoutPage(items, 1, 1)
	require.Len(t, pl.Ops, 7+2)

	box := pl.Ops[0]
	assert.Equal(t, "1", box.Text)
	assert.Equal(t, boxFontSize, box.Size)
	w := font.TextWidth("1", helveticaName, boxFontSize)
	assert.InDelta(t, boxCenterX-w/2, box.X, 0.001)

	desc := pl.Ops[1]
	assert.Equal(t, "RADIO SET", desc.Text)
	assert.Equal(t, descFontSize, desc.Size)
	assert.InDelta(t, 91.2, desc.X, 0.001)
	assert.InDelta(t, 606.0, desc.Y, 0.001)

	nsn := pl.Ops[2]
	assert.Equal(t, "NSN: 011234567", nsn.Text)
	assert.Equal(t, nsnFontSize, nsn.Size)
	assert.InDelta(t, 596.0, nsn.Y, 0.001)

	unit := pl.Ops[3]
	assert.Equal(t, "EA", unit.Text)
	w = font.TextWidth("EA", helveticaName, unitFontSize)
	assert.InDelta(t, unitCenterX-w/2, unit.X, 0.001)

	assert.Equal(t, "3", pl.Ops[4].Text)
	assert.Equal(t, "0", pl.Ops[5].Text)
	assert.Equal(t, "3", pl.Ops[6].Text)
}

func TestLayoutPageTruncatesAndDefaults(t *testing.T) {
	items := []bom.Item{{
		LineNo:      1,
		Description: strings.Repeat("X", 80),
		Quantity:    1,
	}}

	pl := layoutPage(items, 1, 1)
	desc := pl.Ops[1]
	assert.Len(t, desc.Text, maxDescChars)

	// No stock number, so the unit run follows the description directly
	// and the empty unit falls back to EA.
	unit := pl.Ops[2]
	assert.Equal(t, "EA", unit.Text)
}
