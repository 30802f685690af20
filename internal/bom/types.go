// Package bom extracts packing-list items from GCSS-Army Bill of Materials
// exports. It classifies the source layout, resolves column roles from
// header rows, walks data rows with a format-specific strategy, and
// aggregates everything into a single result the caller owns.
package bom

// Format identifies the source layout of a BOM document.
type Format string

const (
	// FormatStandardListing covers GCSS-Army component listings and hand
	// receipts: explicit LV column, AUTH/OH quantity columns.
	FormatStandardListing Format = "gcss_standard"

	// FormatEquipmentPropertyRecord covers equipment property pages such as
	// power-plant and operational-support records.
	FormatEquipmentPropertyRecord Format = "epp_format"

	// FormatUnknown triggers the fallback extraction chain. It is never an
	// error by itself.
	FormatUnknown Format = "unknown"
)

// DefaultUnitOfIssue is the unit code stamped on every packing-list line.
const DefaultUnitOfIssue = "EA"

// maxDescriptionLen caps stored item descriptions.
const maxDescriptionLen = 100

// componentLevel marks individual component rows in standard listings;
// categoryLevel marks category/header rows in equipment property records.
const (
	componentLevel = "B"
	categoryLevel  = "A"
)

// Item is one packing-list line extracted from a BOM table row. Items are
// value objects: extraction never mutates them after creation, and an
// edited copy is treated as brand-new input to the layout engine.
type Item struct {
	LineNo              int    `json:"line_no"`
	Description         string `json:"description"`
	StockNumber         string `json:"nsn"`
	Quantity            int    `json:"qty"`
	UnitOfIssue         string `json:"unit"`
	MaterialNumber      string `json:"material_number,omitempty"`
	OriginalDescription string `json:"original_description,omitempty"`
	Editable            bool   `json:"editable"`
}

// Metadata carries header-level facts read from the first considered page.
// Every field defaults to empty; a partial match set is expected and is
// never an error.
type Metadata struct {
	EndItemNSN         string `json:"end_item_nsn"`
	EndItemDescription string `json:"end_item_desc"`
	LIN                string `json:"lin"`
	SerialNumber       string `json:"serial_number"`
	UIC                string `json:"uic"`
	ForceElement       string `json:"fe"`
	Format             string `json:"format"`
}

// ExtractionResult aggregates everything one extraction pass produced. It
// is created fresh per call and owned solely by the caller afterwards.
type ExtractionResult struct {
	Items          []Item   `json:"items"`
	Metadata       Metadata `json:"metadata"`
	Warnings       []string `json:"warnings"`
	Errors         []string `json:"errors"`
	PagesProcessed int      `json:"pages_processed"`
	Format         Format   `json:"format"`
}

// ItemCount returns the number of extracted items.
func (r *ExtractionResult) ItemCount() int {
	return len(r.Items)
}

// HasErrors reports whether any page- or document-level error was recorded.
func (r *ExtractionResult) HasErrors() bool {
	return len(r.Errors) > 0
}
