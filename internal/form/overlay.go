package form

import (
	"bytes"
	"fmt"
	"strings"
)

// overlayFont is the resource name the overlay text and the header fields
// resolve their font through.
const overlayFont = "Helv"

// defaultAppearance styles the editable header fields.
const defaultAppearance = "/Helv 9 Tf 0 g"

// contentStream renders ops as a PDF text-drawing stream. Coordinates are
// absolute page positions, so each run sets the text matrix directly.
func contentStream(ops []TextOp) []byte {
	var b bytes.Buffer
	b.WriteString("BT\n0 g\n")
	for _, op := range ops {
		fmt.Fprintf(&b, "/%s %d Tf\n", overlayFont, op.Size)
		fmt.Fprintf(&b, "1 0 0 1 %.2f %.2f Tm\n", op.X, op.Y)
		fmt.Fprintf(&b, "(%s) Tj\n", escapeString(op.Text))
	}
	b.WriteString("ET\n")
	return b.Bytes()
}

// escapeString makes s safe inside a PDF string literal: the delimiters are
// escaped, control characters become spaces, and anything beyond the WinAnsi
// range becomes '?'.
func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '(':
			b.WriteString(`\(`)
		case r == ')':
			b.WriteString(`\)`)
		case r < 32:
			b.WriteByte(' ')
		case r > 255:
			b.WriteByte('?')
		default:
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}
