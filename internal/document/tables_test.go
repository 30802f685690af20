package document

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, FontSize: 9}
}

func TestMergeWords(t *testing.T) {
	t.Run("glues kerned fragments of one word", func(t *testing.T) {
		spans := mergeWords([]pdf.Text{
			run("002643", 100, 700, 30),
			run("796", 130.5, 700, 15),
			run("EA", 160, 700, 10),
		})
		require.Len(t, spans, 2)
		assert.Equal(t, "002643796", spans[0].text)
		assert.Equal(t, "EA", spans[1].text)
	})

	t.Run("falls back to fixed glue without a font size", func(t *testing.T) {
		spans := mergeWords([]pdf.Text{
			{S: "A", X: 100, Y: 700, W: 10},
			{S: "B", X: 112.9, Y: 700, W: 10},
		})
		require.Len(t, spans, 1)
		assert.Equal(t, "AB", spans[0].text)
	})
}

func TestGroupLines(t *testing.T) {
	lines := groupLines([]pdf.Text{
		run("C", 50, 694, 10),
		run("B", 120, 698.5, 10),
		run("   ", 10, 698.5, 5),
		run("A", 50, 700, 10),
	})

	require.Len(t, lines, 2)
	require.Len(t, lines[0].spans, 2)
	assert.Equal(t, "A", lines[0].spans[0].text)
	assert.Equal(t, "B", lines[0].spans[1].text)
	require.Len(t, lines[1].spans, 1)
	assert.Equal(t, "C", lines[1].spans[0].text)
}

func TestSplitBlocks(t *testing.T) {
	lines := groupLines([]pdf.Text{
		run("TOP", 50, 780, 15),
		run("MID", 50, 700, 15),
		run("LOW", 50, 685, 15),
	})

	blocks := splitBlocks(lines)
	require.Len(t, blocks, 2)
	assert.Len(t, blocks[0], 1)
	assert.Len(t, blocks[1], 2)
}

func TestBuildTables(t *testing.T) {
	tests := []struct {
		name  string
		texts []pdf.Text
		want  [][][]string
	}{
		{
			name: "two column listing",
			texts: []pdf.Text{
				run("LV", 50, 700, 10),
				run("DESCRIPTION", 150, 700, 55),
				run("B", 50, 685, 10),
				run("RADIO", 150, 685, 25),
				run("SET", 180, 685, 15),
				run("B", 50, 675, 10),
				run("ANTENNA", 150, 675, 35),
			},
			want: [][][]string{{
				{"LV", "DESCRIPTION"},
				{"B", "RADIO SET"},
				{"B", "ANTENNA"},
			}},
		},
		{
			name: "wrapped header and wrapped description merge upward",
			texts: []pdf.Text{
				run("LV", 50, 700, 10),
				run("DESCRIPTION", 100, 700, 55),
				run("AUTH", 300, 700, 20),
				run("UI", 380, 700, 10),
				run("QTY", 300, 690, 20),
				run("B", 50, 670, 10),
				run("RADIO", 100, 670, 25),
				run("SET,", 130, 670, 20),
				run("2", 300, 670, 5),
				run("EA", 380, 670, 10),
				run("MANPACK", 100, 660, 35),
			},
			want: [][][]string{{
				{"LV", "DESCRIPTION", "AUTH\nQTY", "UI"},
				{"B", "RADIO SET,\nMANPACK", "2", "EA"},
			}},
		},
		{
			name: "adjacent dense rows with leading cells stay separate",
			texts: []pdf.Text{
				run("LV", 50, 700, 10),
				run("DESCRIPTION", 150, 700, 55),
				run("B", 50, 685, 10),
				run("ALPHA", 150, 685, 25),
				run("B", 50, 675, 10),
				run("BRAVO", 150, 675, 25),
			},
			want: [][][]string{{
				{"LV", "DESCRIPTION"},
				{"B", "ALPHA"},
				{"B", "BRAVO"},
			}},
		},
		{
			name: "prose block above the listing is not a table",
			texts: []pdf.Text{
				run("COMPONENT", 50, 780, 45),
				run("LISTING", 120, 780, 35),
				run("LV", 50, 700, 10),
				run("DESCRIPTION", 150, 700, 55),
				run("B", 50, 685, 10),
				run("ALPHA", 150, 685, 25),
				run("B", 50, 675, 10),
				run("BRAVO", 150, 675, 25),
			},
			want: [][][]string{{
				{"LV", "DESCRIPTION"},
				{"B", "ALPHA"},
				{"B", "BRAVO"},
			}},
		},
		{
			name: "prose only yields no tables",
			texts: []pdf.Text{
				run("NSN:", 50, 780, 20),
				run("016453467", 80, 780, 45),
			},
			want: nil,
		},
		{
			name:  "empty input",
			texts: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildTables(tt.texts))
		})
	}
}
