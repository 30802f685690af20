// Package document reads pages of table-based PDF exports. Each page is
// exposed as reconstructed tables (rows of cells, where a cell may contain
// newlines from wrapped source lines) plus the page's plain text, which is
// all the extraction heuristics consume.
package document

// Page is the per-page input to extraction.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Tables holds every reconstructed table on the page: table → row →
	// cell. The first row of a table is its header.
	Tables [][][]string

	// Text is the page's plain extracted text.
	Text string
}

// Source yields pages of an open document. A single handle is not safe for
// concurrent use; open one Source per goroutine instead.
type Source interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// Page reads the 1-based page n.
	Page(n int) (Page, error)

	// Close releases the underlying file handle.
	Close() error
}
