package bom

import (
	"regexp"
	"strings"
)

// metadataPattern anchors one Metadata field to a labeled token in the page
// text. Patterns are applied independently; a miss leaves the field empty.
type metadataPattern struct {
	re     *regexp.Regexp
	maxLen int
	assign func(m *Metadata, value string)
}

var metadataPatterns = []metadataPattern{
	{
		re:     regexp.MustCompile(`(?i)END\s*ITEM\s*NIIN[:\s]*(\d{9})`),
		assign: func(m *Metadata, v string) { m.EndItemNSN = v },
	},
	{
		re:     regexp.MustCompile(`(?i)LIN[:\s]*([A-Z0-9]+)`),
		assign: func(m *Metadata, v string) { m.LIN = v },
	},
	{
		re:     regexp.MustCompile(`(?i)DESC[:\s]*([A-Z0-9\s/\-]+)`),
		maxLen: 50,
		assign: func(m *Metadata, v string) { m.EndItemDescription = v },
	},
	{
		re:     regexp.MustCompile(`(?i)SER/EQUIP\s*NO[:\s]*([A-Z0-9]+)`),
		assign: func(m *Metadata, v string) { m.SerialNumber = v },
	},
	{
		re:     regexp.MustCompile(`(?i)UIC[:\s]*([A-Z0-9]+)`),
		assign: func(m *Metadata, v string) { m.UIC = v },
	},
	{
		re:     regexp.MustCompile(`(?i)FE[:\s]*(\d+)`),
		assign: func(m *Metadata, v string) { m.ForceElement = v },
	},
}

// ExtractMetadata populates header-level fields from free page text. Every
// pattern is tried once; partial metadata is expected and not an error.
func ExtractMetadata(text string) Metadata {
	var md Metadata
	for _, p := range metadataPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := strings.TrimSpace(m[1])
		if p.maxLen > 0 && len(v) > p.maxLen {
			v = v[:p.maxLen]
		}
		p.assign(&md, v)
	}
	return md
}
