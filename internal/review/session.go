// Package review carries extraction results across the human editing gap.
//
// A Session is the JSON envelope a reviewer edits between the extract and
// generate steps: fix descriptions, drop rows, adjust quantities. Import
// re-normalizes whatever comes back so the layout engine only ever sees
// positive quantities and contiguous line numbers.
package review

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/bomtools/dd1750/internal/bom"
)

// Session is the editable envelope around one extraction result.
type Session struct {
	ID             string       `json:"session_id"`
	Items          []bom.Item   `json:"items"`
	Metadata       bom.Metadata `json:"metadata"`
	ItemCount      int          `json:"item_count"`
	PagesProcessed int          `json:"pages_processed"`
	Warnings       []string     `json:"warnings,omitempty"`
	Errors         []string     `json:"errors,omitempty"`
}

// NewSession wraps an extraction result in a fresh envelope. Items are
// copied so later edits to the session never reach back into the result.
func NewSession(result *bom.ExtractionResult) *Session {
	items := make([]bom.Item, len(result.Items))
	copy(items, result.Items)
	return &Session{
		ID:             uuid.NewString(),
		Items:          items,
		Metadata:       result.Metadata,
		ItemCount:      len(items),
		PagesProcessed: result.PagesProcessed,
		Warnings:       result.Warnings,
		Errors:         result.Errors,
	}
}

// Normalize repairs fields a reviewer commonly breaks while editing: line
// numbers become contiguous again, quantities are forced positive, and a
// blank unit of issue falls back to the default.
func (s *Session) Normalize() {
	for i := range s.Items {
		s.Items[i].LineNo = i + 1
		if s.Items[i].Quantity < 1 {
			s.Items[i].Quantity = 1
		}
		if s.Items[i].UnitOfIssue == "" {
			s.Items[i].UnitOfIssue = bom.DefaultUnitOfIssue
		}
	}
	s.ItemCount = len(s.Items)
}

// Export writes the session as indented JSON for hand editing.
func (s *Session) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return nil
}

// Import reads an edited session back and normalizes it. Envelopes written
// from scratch may omit the identifier; one is assigned so the run can
// still be correlated in logs.
func Import(r io.Reader) (*Session, error) {
	var s Session
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.Normalize()
	return &s, nil
}
