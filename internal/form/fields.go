package form

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// HeaderInfo carries the caller-supplied values for the form's header
// fields. It is layout-only input and unrelated to extracted metadata.
type HeaderInfo struct {
	PackedBy      string `json:"packed_by"`
	NumBoxes      string `json:"num_boxes"`
	RequisitionNo string `json:"requisition_no"`
	OrderNo       string `json:"order_no"`
	EndItem       string `json:"end_item"`
	Date          string `json:"date"`
}

// headerField describes one editable text field on the first page. Rects
// are fixed form coordinates, lower-left to upper-right.
type headerField struct {
	name    string
	tooltip string
	rect    [4]float64
	value   func(HeaderInfo) string
}

var headerFields = []headerField{
	{"packed_by", "Packed By", [4]float64{92, 732, 230, 746}, func(h HeaderInfo) string { return h.PackedBy }},
	{"no_boxes", "Number of Boxes", [4]float64{282, 732, 332, 746}, func(h HeaderInfo) string { return h.NumBoxes }},
	{"req_no", "Requisition Number", [4]float64{405, 732, 566, 746}, func(h HeaderInfo) string { return h.RequisitionNo }},
	{"order_no", "Order Number", [4]float64{405, 712, 566, 726}, func(h HeaderInfo) string { return h.OrderNo }},
	{"end_item", "End Item", [4]float64{92, 689, 370, 703}, func(h HeaderInfo) string { return h.EndItem }},
	{"date", "Date", [4]float64{447, 689, 566, 703}, func(h HeaderInfo) string { return h.Date }},
	{"typed_name", "Typed Name and Title", [4]float64{92, 46, 290, 60}, func(HeaderInfo) string { return "" }},
}

// buildHeaderFields registers the seven merged field/widget dictionaries and
// returns their references, ready to serve as both the AcroForm field list
// and the first page's annotation array. Values come pre-populated from
// header where present; every field stays editable.
func buildHeaderFields(ctx *model.Context, header HeaderInfo) (types.Array, error) {
	fields := make(types.Array, 0, len(headerFields))
	for _, f := range headerFields {
		dict := types.Dict{
			"Type":    types.Name("Annot"),
			"Subtype": types.Name("Widget"),
			"FT":      types.Name("Tx"),
			"T":       types.StringLiteral(f.name),
			"TU":      types.StringLiteral(escapeString(f.tooltip)),
			"Rect":    types.NewNumberArray(f.rect[0], f.rect[1], f.rect[2], f.rect[3]),
			"F":       types.Integer(4),
			"Ff":      types.Integer(0),
			"DA":      types.StringLiteral(defaultAppearance),
			"DV":      types.StringLiteral(""),
		}
		if v := f.value(header); v != "" {
			dict["V"] = types.StringLiteral(escapeString(v))
		}
		ref, err := ctx.IndRefForNewObject(dict)
		if err != nil {
			return nil, fmt.Errorf("failed to register field %s: %w", f.name, err)
		}
		fields = append(fields, *ref)
	}
	return fields, nil
}

// newHelveticaRef registers the non-embedded Helvetica shared by the
// overlay text and the field appearances.
func newHelveticaRef(ctx *model.Context) (*types.IndirectRef, error) {
	return ctx.IndRefForNewObject(types.Dict{
		"Type":     types.Name("Font"),
		"Subtype":  types.Name("Type1"),
		"BaseFont": types.Name(helveticaName),
		"Encoding": types.Name("WinAnsiEncoding"),
	})
}

// acroFormDict builds the document-level form dictionary. NeedAppearances
// leaves appearance generation to the viewer, which keeps the fields live.
func acroFormDict(fields types.Array, helvRef types.IndirectRef) types.Dict {
	return types.Dict{
		"Fields":          fields,
		"NeedAppearances": types.Boolean(true),
		"DA":              types.StringLiteral(defaultAppearance),
		"DR":              types.Dict{"Font": types.Dict{overlayFont: helvRef}},
	}
}
