package document

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// fileSource reads pages from a PDF file on disk.
type fileSource struct {
	file   *os.File
	reader *pdf.Reader
}

// Open opens a PDF document for page-by-page reading. The caller owns the
// returned Source and must Close it.
func Open(path string) (Source, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF file: %w", err)
	}
	return &fileSource{file: file, reader: reader}, nil
}

func (s *fileSource) PageCount() int {
	return s.reader.NumPage()
}

// Page reads the 1-based page n, reconstructs its tables, and assembles its
// plain text. The pdf library panics on malformed content streams, so the
// whole read is fenced and surfaces as an error instead.
func (s *fileSource) Page(n int) (page Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read page %d: %v", n, r)
		}
	}()

	total := s.reader.NumPage()
	if n < 1 || n > total {
		return Page{}, fmt.Errorf("page %d out of range: document has %d pages", n, total)
	}

	p := s.reader.Page(n)
	if p.V.IsNull() {
		return Page{Number: n}, nil
	}

	texts := p.Content().Text
	for i := range texts {
		texts[i].S = norm.NFKC.String(texts[i].S)
	}

	return Page{
		Number: n,
		Tables: buildTables(texts),
		Text:   pageText(p, texts),
	}, nil
}

func (s *fileSource) Close() error {
	return s.file.Close()
}

// pageText renders the page's text with one line per physical line, which
// keeps label/value pairs adjacent for the metadata patterns. Pages without
// positioned runs fall back to the library's own text assembly.
func pageText(p pdf.Page, texts []pdf.Text) string {
	lines := groupLines(texts)
	if len(lines) == 0 {
		text, err := p.GetPlainText(nil)
		if err != nil {
			return ""
		}
		return norm.NFKC.String(text)
	}

	var b strings.Builder
	for i, ln := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, sp := range ln.spans {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(sp.text)
		}
	}
	return b.String()
}
