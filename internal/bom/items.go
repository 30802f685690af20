package bom

import "strings"

// minTableRows is the smallest table worth walking: a header plus at least
// one data row.
const minTableRows = 2

// strategy parameterizes the shared row-walk for one source format. The two
// known formats differ only in these knobs, so the walk itself cannot
// silently drift between them.
type strategy struct {
	format Format

	// keepRow applies the level filter. hasColumn reports whether the level
	// role resolved at all; inRange whether the row is wide enough to carry
	// it; level is the trimmed upper-cased cell value when inRange.
	keepRow func(hasColumn, inRange bool, level string) bool

	// description extracts the clean description from the raw cell.
	description func(raw string) string

	// minDescLen is the shortest description emitted as an item.
	minDescLen int

	// isCategory filters descriptions that name category sections.
	isCategory func(desc string) bool

	// findDescription is the secondary header scan for the description
	// column when the primary rules left it unresolved.
	findDescription func(cell string) bool
}

// standardStrategy walks GCSS-Army standard listings and hand receipts.
// Rows must be explicitly marked component-level ("B") whenever a level
// column exists; a row too short to carry its level cell is skipped.
var standardStrategy = strategy{
	format: FormatStandardListing,
	keepRow: func(hasColumn, _ bool, level string) bool {
		if !hasColumn {
			return true
		}
		return level == componentLevel
	},
	description: ExtractDescription,
	minDescLen:  3,
	isCategory:  isCategoryHeader,
	findDescription: func(cell string) bool {
		return strings.Contains(cell, "DESC")
	},
}

// propertyRecordStrategy walks equipment property records. Only rows
// explicitly marked as category level ("A") are dropped; a missing level
// column or a short row is tolerated, unlike the standard path. The
// asymmetry is deliberate: unifying it changes accepted-row counts on real
// documents.
var propertyRecordStrategy = strategy{
	format: FormatEquipmentPropertyRecord,
	keepRow: func(hasColumn, inRange bool, level string) bool {
		if !hasColumn || !inRange {
			return true
		}
		return level != categoryLevel
	},
	description: CleanDescription,
	minDescLen:  1,
	isCategory:  isCategoryLabel,
	findDescription: func(cell string) bool {
		return strings.Contains(cell, "DESCR") || cell == "DESC"
	},
}

// ExtractStandardItems walks every table of one page with the standard
// listing strategy. Line numbers ascend from startLine and are provisional;
// Extract renumbers globally.
func ExtractStandardItems(tables [][][]string, startLine int) []Item {
	return extractItems(tables, standardStrategy, startLine)
}

// ExtractPropertyRecordItems walks every table of one page with the
// equipment-property-record strategy.
func ExtractPropertyRecordItems(tables [][][]string, startLine int) []Item {
	return extractItems(tables, propertyRecordStrategy, startLine)
}

// extractItems is the shared pipeline: resolve columns, filter rows,
// extract fields, filter categories. Tables without a resolvable
// description column are skipped entirely.
func extractItems(tables [][][]string, strat strategy, startLine int) []Item {
	var items []Item
	lineNo := startLine

	for _, table := range tables {
		if len(table) < minTableRows {
			continue
		}
		header := table[0]
		cols := MapColumns(header)

		descCol, ok := cols.Index(RoleDescription)
		if !ok {
			descCol, ok = rescanHeader(header, strat.findDescription)
		}
		if !ok {
			continue
		}

		levelCol, hasLevel := cols.Index(RoleLevel)

		for _, row := range table[1:] {
			if allEmpty(row) {
				continue
			}

			inRange := hasLevel && levelCol < len(row)
			level := ""
			if inRange {
				level = strings.ToUpper(strings.TrimSpace(row[levelCol]))
			}
			if !strat.keepRow(hasLevel, inRange, level) {
				continue
			}

			desc := strat.description(cellAt(row, descCol))
			if len(desc) < strat.minDescLen {
				continue
			}
			if strat.isCategory(desc) {
				continue
			}

			material := ""
			stockNumber := ""
			if mc, ok := cols.Index(RoleMaterial); ok && mc < len(row) {
				material = strings.TrimSpace(row[mc])
				stockNumber, _ = ExtractStockNumber(row[mc])
			}

			// Both formats take quantities from the authorized column; the
			// on-hand column is resolved but unused for packing lists.
			quantity := 1
			if qc, ok := cols.Index(RoleAuthQty); ok && qc < len(row) {
				quantity, _ = ExtractQuantity(row[qc])
			}

			if len(desc) > maxDescriptionLen {
				desc = desc[:maxDescriptionLen]
			}

			items = append(items, Item{
				LineNo:              lineNo,
				Description:         desc,
				StockNumber:         stockNumber,
				Quantity:            quantity,
				UnitOfIssue:         DefaultUnitOfIssue,
				MaterialNumber:      material,
				OriginalDescription: desc,
				Editable:            true,
			})
			lineNo++
		}
	}
	return items
}

func allEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
