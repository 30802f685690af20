package bom

import (
	"fmt"

	"github.com/bomtools/dd1750/internal/document"
)

// zeroItemsWarning is appended when a whole document yields no items.
const zeroItemsWarning = "no items extracted; ensure the document is a GCSS-Army BOM export"

// Extract runs format detection, metadata extraction, and per-page item
// extraction over src, starting at the 1-based startPage (values below 1
// select the first page). It never returns a Go error: out-of-range starts,
// unreadable pages, and per-page failures are accumulated in the result so
// one bad page cannot sink the rest of the document.
func Extract(src document.Source, startPage int) *ExtractionResult {
	result := &ExtractionResult{Format: FormatUnknown}

	if startPage < 1 {
		startPage = 1
	}
	total := src.PageCount()
	if startPage > total {
		result.Errors = append(result.Errors,
			fmt.Sprintf("start page %d out of range: document has %d pages", startPage, total))
		result.Metadata.Format = string(result.Format)
		return result
	}

	// Format and metadata both come from the first considered page.
	first, firstErr := src.Page(startPage)
	if firstErr != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("page %d: %v", startPage, firstErr))
	} else {
		result.Format = DetectFormat(first.Tables, first.Text)
		result.Metadata = ExtractMetadata(first.Text)
	}
	result.Metadata.Format = string(result.Format)

	for n := startPage; n <= total; n++ {
		var page document.Page
		switch {
		case n == startPage && firstErr != nil:
			continue
		case n == startPage:
			page = first
		default:
			p, err := src.Page(n)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("page %d: %v", n, err))
				continue
			}
			page = p
		}

		items, err := extractPage(page, result.Format, len(result.Items)+1)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Items = append(result.Items, items...)
		result.PagesProcessed++
	}

	// Per-page numbering is provisional; the document-wide order is final.
	for i := range result.Items {
		result.Items[i].LineNo = i + 1
	}
	if len(result.Items) == 0 {
		result.Warnings = append(result.Warnings, zeroItemsWarning)
	}
	return result
}

// ExtractFile opens the document at path and extracts it from startPage,
// reporting open failures through the result's error list like everything
// else in the pipeline.
func ExtractFile(path string, startPage int) *ExtractionResult {
	src, err := document.Open(path)
	if err != nil {
		return &ExtractionResult{
			Format:   FormatUnknown,
			Metadata: Metadata{Format: string(FormatUnknown)},
			Errors:   []string{fmt.Sprintf("failed to process document: %v", err)},
		}
	}
	defer src.Close()
	return Extract(src, startPage)
}

// extractPage applies the detected format's strategy to one page. The
// heuristics run over arbitrary reconstructed input, so a panic here is
// contained and reported as a page error. An unknown format tries the
// standard strategy first and falls back to the equipment-property one.
func extractPage(page document.Page, format Format, startLine int) (items []Item, err error) {
	defer func() {
		if r := recover(); r != nil {
			items = nil
			err = fmt.Errorf("page %d: extraction failed: %v", page.Number, r)
		}
	}()

	switch format {
	case FormatStandardListing:
		items = ExtractStandardItems(page.Tables, startLine)
	case FormatEquipmentPropertyRecord:
		items = ExtractPropertyRecordItems(page.Tables, startLine)
	default:
		items = ExtractStandardItems(page.Tables, startLine)
		if len(items) == 0 {
			items = ExtractPropertyRecordItems(page.Tables, startLine)
		}
	}
	return items, nil
}
