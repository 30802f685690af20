package bom

import (
	"regexp"
	"strconv"
	"strings"
)

// StockNumberRule reports which pattern resolved a stock number, so callers
// and tests can tell an extracted value from an unresolved one.
type StockNumberRule string

const (
	// StockNumberNone means no pattern matched and the value is empty.
	StockNumberNone StockNumberRule = "none"
	// StockNumberLeadingLine matched a 9-digit token at the start of a line.
	StockNumberLeadingLine StockNumberRule = "leading_line"
	// StockNumberStandalone matched a standalone 9-digit token anywhere.
	StockNumberStandalone StockNumberRule = "standalone"
	// StockNumberHyphenated matched a 4-2-3-4 hyphenated identifier and
	// reduced it to its last nine digits.
	StockNumberHyphenated StockNumberRule = "hyphenated"
)

var (
	leadingNIINRe    = regexp.MustCompile(`^(\d{9})\b`)
	standaloneNIINRe = regexp.MustCompile(`\b(\d{9})\b`)
	hyphenatedNSNRe  = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{3})-(\d{4})\b`)

	trailingCodeRe  = regexp.MustCompile(`(?i)\s+(WTY|ARC|CIIC|UI|SCMC|EA|AY|9K|9G|9B|9T|2B|2E|2W|2T|85|7K|7B)\s*$`)
	trailingSlashRe = regexp.MustCompile(`[/\\]+\s*$`)
	digitRunRe      = regexp.MustCompile(`(\d+)`)
)

// ExtractStockNumber pulls a 9-digit stock number out of raw material-cell
// text. Patterns are tried in order: a 9-digit token leading any line, a
// standalone 9-digit token anywhere, then a 4-2-3-4 hyphenated identifier
// whose last three groups concatenate to nine digits. The result is either
// empty or exactly nine ASCII digits; the function never fails.
//
// The hyphenated reduction (drop the first group, keep the rest) is a fixed
// contract: real stock numbers that break the assumed segment widths simply
// do not match and resolve to empty.
func ExtractStockNumber(text string) (string, StockNumberRule) {
	if strings.TrimSpace(text) == "" {
		return "", StockNumberNone
	}

	for _, line := range strings.Split(text, "\n") {
		if m := leadingNIINRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return m[1], StockNumberLeadingLine
		}
	}

	if m := standaloneNIINRe.FindStringSubmatch(text); m != nil {
		return m[1], StockNumberStandalone
	}

	if m := hyphenatedNSNRe.FindStringSubmatch(text); m != nil {
		return m[2] + m[3] + m[4], StockNumberHyphenated
	}

	return "", StockNumberNone
}

// ExtractQuantity parses the first run of digits anywhere in the cell. The
// bool reports whether a value was actually parsed; when false the
// documented default of 1 is returned.
func ExtractQuantity(text string) (int, bool) {
	if strings.TrimSpace(text) == "" {
		return 1, false
	}
	m := digitRunRe.FindStringSubmatch(text)
	if m == nil {
		return 1, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 1, false
	}
	return n, true
}

// ExtractDescription picks the nomenclature line from a standard-listing
// description cell: the first line of at least three characters, with
// whitespace collapsed and trailing slash runs removed. Standard listings
// put the authoritative nomenclature on the first populated line.
func ExtractDescription(raw string) string {
	if raw == "" {
		return ""
	}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 3 {
			continue
		}
		line = strings.Join(strings.Fields(line), " ")
		line = trailingSlashRe.ReplaceAllString(line, "")
		return strings.TrimSpace(line)
	}
	return ""
}

// CleanDescription normalizes an equipment-property-record description
// cell. Those cells carry the part number on the first line and the
// nomenclature on the second, followed by parenthesized remarks and short
// trailing codes (unit, warranty, classification), all of which are
// stripped.
func CleanDescription(raw string) string {
	if raw == "" {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	desc := lines[0]
	if len(lines) >= 2 {
		desc = lines[1]
	}
	if i := strings.Index(desc, "("); i >= 0 {
		desc = desc[:i]
	}
	desc = trailingCodeRe.ReplaceAllString(desc, "")
	return strings.Join(strings.Fields(desc), " ")
}

// categoryMarkers flag category rows in standard listings; a description
// merely containing one is discarded.
var categoryMarkers = []string{
	"COMPONENT OF END ITEM",
	"BASIC ISSUE ITEMS",
	"COEI-",
	"BII-",
	"OPERATIONAL SUPPORT",
}

// categoryLabels flag category rows in equipment property records; only a
// description exactly equal to one is discarded. The contains/equals
// asymmetry between the two formats is deliberate and changes accepted-row
// counts on real documents if unified.
var categoryLabels = map[string]struct{}{
	"COMPONENT OF END ITEM": {},
	"BASIC ISSUE ITEMS":     {},
	"OPERATIONAL SUPPORT":   {},
	"COEI":                  {},
	"BII":                   {},
}

// isCategoryHeader reports whether a standard-listing description names a
// category section rather than a component.
func isCategoryHeader(desc string) bool {
	up := strings.ToUpper(desc)
	for _, marker := range categoryMarkers {
		if strings.Contains(up, marker) {
			return true
		}
	}
	return false
}

// isCategoryLabel reports whether an equipment-property description is
// exactly a category label.
func isCategoryLabel(desc string) bool {
	_, ok := categoryLabels[strings.ToUpper(strings.TrimSpace(desc))]
	return ok
}
