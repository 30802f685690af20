package bom

import "strings"

// formatRule is one priority-ordered detection rule: the first rule whose
// predicate matches decides the format. No rule matching yields
// FormatUnknown, never an error.
type formatRule struct {
	name    string
	format  Format
	matches func(tables [][][]string, text string) bool
}

// formatRules are evaluated against the first considered page, in order.
// Listing markers outrank equipment-property markers, which outrank the
// structural material/description header fallback. The predicate receives
// the page text already upper-cased.
var formatRules = []formatRule{
	{
		name:   "listing marker with level column",
		format: FormatStandardListing,
		matches: func(tables [][][]string, text string) bool {
			return hasListingMarker(text) && anyHeaderCell(tables, isLevelHeader)
		},
	},
	{
		name:   "listing marker with quantity text",
		format: FormatStandardListing,
		matches: func(_ [][][]string, text string) bool {
			return hasListingMarker(text) &&
				strings.Contains(text, "AUTH") && strings.Contains(text, "QTY")
		},
	},
	{
		name:   "equipment property marker",
		format: FormatEquipmentPropertyRecord,
		matches: func(_ [][][]string, text string) bool {
			return strings.Contains(text, "PWR PLANT") ||
				strings.Contains(text, "OPERATIONAL SUPPORT")
		},
	},
	{
		name:   "material and description header",
		format: FormatStandardListing,
		matches: func(tables [][][]string, _ string) bool {
			for _, table := range tables {
				if len(table) == 0 {
					continue
				}
				if headerContains(table[0], "MATERIAL") && headerContains(table[0], "DESC") {
					return true
				}
			}
			return false
		},
	},
}

// DetectFormat classifies one page of a BOM document using the layered
// heuristics above. Detection never fails; a page matching no rule comes
// back FormatUnknown and the orchestrator falls back to trying every
// extraction strategy in sequence.
func DetectFormat(tables [][][]string, text string) Format {
	up := strings.ToUpper(text)
	for _, rule := range formatRules {
		if rule.matches(tables, up) {
			return rule.format
		}
	}
	return FormatUnknown
}

func hasListingMarker(text string) bool {
	return strings.Contains(text, "COMPONENT LISTING") || strings.Contains(text, "HAND RECEIPT")
}

// anyHeaderCell reports whether any table's header row has a cell matching
// the predicate. Cells are trimmed and upper-cased before matching.
func anyHeaderCell(tables [][][]string, match func(string) bool) bool {
	for _, table := range tables {
		if len(table) == 0 {
			continue
		}
		for _, raw := range table[0] {
			if match(strings.ToUpper(strings.TrimSpace(raw))) {
				return true
			}
		}
	}
	return false
}

func headerContains(header []string, substr string) bool {
	for _, raw := range header {
		if strings.Contains(strings.ToUpper(raw), substr) {
			return true
		}
	}
	return false
}
