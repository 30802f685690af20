package document

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Geometry tolerances for rebuilding tables from positioned text. Tuned for
// GCSS-Army listing exports: dense rows, narrow column gutters, and
// description cells that wrap onto continuation lines.
const (
	// rowTolerance is the maximum baseline spread within one physical line.
	rowTolerance = 3.0

	// glueFallback glues fragments of one word when the font size is unknown.
	glueFallback = 3.0

	// glueMultiplier scales the font size into the intra-word glue distance.
	glueMultiplier = 0.3

	// columnGapMin is the narrowest horizontal gutter that can separate two
	// columns. Smaller gaps are ordinary word spacing.
	columnGapMin = 12.0

	// gapBucketSize buckets gutter centers so slightly ragged column edges
	// still vote for the same boundary.
	gapBucketSize = 20.0

	// boundaryMinLines and boundaryLinePct set how many lines must share a
	// gutter before it becomes a column boundary, whichever is larger.
	boundaryMinLines = 2
	boundaryLinePct  = 25

	// wrapMergeGap is the largest baseline step that can still be a wrapped
	// continuation of the row above rather than a new row.
	wrapMergeGap = 12.0

	// tableBreakGap is the vertical whitespace that splits two tables.
	tableBreakGap = 30.0
)

// span is one word-level run of text on a physical line.
type span struct {
	x0, x1 float64
	text   string
}

// line is one physical line of a page, top-down by baseline.
type line struct {
	y     float64
	spans []span
}

// buildTables reconstructs every table on a page from its positioned text.
// Blocks of lines separated by large vertical whitespace are handled
// independently, so prose above or below a listing never bleeds into it.
func buildTables(texts []pdf.Text) [][][]string {
	lines := groupLines(texts)
	if len(lines) == 0 {
		return nil
	}

	var tables [][][]string
	for _, block := range splitBlocks(lines) {
		boundaries := detectBoundaries(block)
		if len(boundaries) == 0 {
			continue
		}
		rows := buildRows(block, boundaries)
		if len(rows) < 2 {
			continue
		}
		tables = append(tables, rows)
	}
	return tables
}

// groupLines clusters positioned text into physical lines. A run joins a
// line when its baseline falls within rowTolerance of the line's current
// extent; the extent grows as runs join, which absorbs slightly ragged
// baselines. Lines come back top-down, their runs left to right.
func groupLines(texts []pdf.Text) []line {
	type bucket struct {
		yMin, yMax float64
		texts      []pdf.Text
	}

	var buckets []*bucket
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		var home *bucket
		for _, b := range buckets {
			if t.Y >= b.yMin-rowTolerance && t.Y <= b.yMax+rowTolerance {
				home = b
				break
			}
		}
		if home == nil {
			buckets = append(buckets, &bucket{yMin: t.Y, yMax: t.Y, texts: []pdf.Text{t}})
			continue
		}
		home.texts = append(home.texts, t)
		home.yMin = math.Min(home.yMin, t.Y)
		home.yMax = math.Max(home.yMax, t.Y)
	}

	// PDF Y grows upward, so descending yMax reads the page top-down.
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].yMax > buckets[j].yMax })

	lines := make([]line, 0, len(buckets))
	for _, b := range buckets {
		sort.Slice(b.texts, func(i, j int) bool { return b.texts[i].X < b.texts[j].X })
		lines = append(lines, line{y: b.yMax, spans: mergeWords(b.texts)})
	}
	return lines
}

// mergeWords concatenates runs that are fragments of one word. Runs closer
// than a fraction of the font size (kerned pieces, ligature splits) glue
// together; anything wider starts a new span.
func mergeWords(texts []pdf.Text) []span {
	var spans []span
	for _, t := range texts {
		glue := glueFallback
		if t.FontSize > 0 {
			glue = glueMultiplier * t.FontSize
		}
		if n := len(spans); n > 0 && t.X-spans[n-1].x1 <= glue {
			spans[n-1].text += t.S
			spans[n-1].x1 = math.Max(spans[n-1].x1, t.X+t.W)
			continue
		}
		spans = append(spans, span{x0: t.X, x1: t.X + t.W, text: t.S})
	}
	for i := range spans {
		spans[i].text = strings.TrimSpace(spans[i].text)
	}
	return spans
}

// splitBlocks cuts the page's lines wherever the vertical whitespace exceeds
// tableBreakGap, so each table (and each prose block) stands alone.
func splitBlocks(lines []line) [][]line {
	var blocks [][]line
	start := 0
	for i := 1; i < len(lines); i++ {
		if lines[i-1].y-lines[i].y > tableBreakGap {
			blocks = append(blocks, lines[start:i])
			start = i
		}
	}
	return append(blocks, lines[start:])
}

// detectBoundaries finds the X positions of column gutters within a block.
// Every horizontal gap of at least columnGapMin votes for a boundary at the
// gap's center; centers are bucketed so ragged edges agree, and a bucket
// becomes a boundary once enough of the block's lines voted for it.
func detectBoundaries(block []line) []float64 {
	type vote struct {
		sum   float64
		count int
	}
	votes := make(map[int]*vote)
	for _, ln := range block {
		for i := 1; i < len(ln.spans); i++ {
			gap := ln.spans[i].x0 - ln.spans[i-1].x1
			if gap < columnGapMin {
				continue
			}
			center := (ln.spans[i-1].x1 + ln.spans[i].x0) / 2
			key := int(math.Floor(center / gapBucketSize))
			if votes[key] == nil {
				votes[key] = &vote{}
			}
			votes[key].sum += center
			votes[key].count++
		}
	}

	need := len(block) * boundaryLinePct / 100
	if need < boundaryMinLines {
		need = boundaryMinLines
	}

	var boundaries []float64
	for _, v := range votes {
		if v.count >= need {
			boundaries = append(boundaries, v.sum/float64(v.count))
		}
	}
	sort.Float64s(boundaries)

	// Adjacent buckets can both clear the threshold for one wide gutter.
	var merged []float64
	for _, b := range boundaries {
		if n := len(merged); n > 0 && b-merged[n-1] < gapBucketSize {
			merged[n-1] = (merged[n-1] + b) / 2
			continue
		}
		merged = append(merged, b)
	}
	return merged
}

// buildRows assigns each span to the column its center falls in, then folds
// wrapped continuation lines into the row above. A line is a continuation
// when it sits within wrapMergeGap of the previous line and its leading
// column is empty; only the wrapped columns carry text on such lines.
func buildRows(block []line, boundaries []float64) [][]string {
	cols := len(boundaries) + 1

	type row struct {
		y     float64
		cells []string
	}
	var rows []row
	for _, ln := range block {
		cells := make([]string, cols)
		for _, sp := range ln.spans {
			center := (sp.x0 + sp.x1) / 2
			col := sort.SearchFloat64s(boundaries, center)
			if cells[col] == "" {
				cells[col] = sp.text
			} else {
				cells[col] += " " + sp.text
			}
		}

		if n := len(rows); n > 0 && cells[0] == "" && rows[n-1].y-ln.y <= wrapMergeGap {
			prev := rows[n-1].cells
			for i, c := range cells {
				switch {
				case c == "":
				case prev[i] == "":
					prev[i] = c
				default:
					prev[i] += "\n" + c
				}
			}
			rows[n-1].y = ln.y
			continue
		}

		rows = append(rows, row{y: ln.y, cells: cells})
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		empty := true
		for _, c := range r.cells {
			if c != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, r.cells)
		}
	}
	return out
}
