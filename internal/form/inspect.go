package form

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// FieldInfo describes one fillable field found on a generated packing list.
type FieldInfo struct {
	Name    string     `json:"name"`
	Tooltip string     `json:"tooltip,omitempty"`
	Value   string     `json:"value"`
	Default string     `json:"default,omitempty"`
	Rect    [4]float64 `json:"rect"`
}

// FieldReport summarizes the fillable state of a PDF. A blank form or an
// untouched template reports zero fields.
type FieldReport struct {
	Path       string      `json:"file_path"`
	Pages      int         `json:"page_count"`
	FieldCount int         `json:"field_count"`
	Fields     []FieldInfo `json:"fields,omitempty"`
}

// InspectFile reads a PDF and reports the fillable fields it carries, so
// values edited in a viewer can be checked against what the generator wrote.
func InspectFile(path string) (*FieldReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	fields, err := collectFields(ctx)
	if err != nil {
		return nil, err
	}

	return &FieldReport{
		Path:       path,
		Pages:      ctx.PageCount,
		FieldCount: len(fields),
		Fields:     fields,
	}, nil
}

// collectFields walks the document-level field list. The generator writes
// merged field/widget dictionaries, so each entry carries its own Rect and
// there is no hierarchy to descend.
func collectFields(ctx *model.Context) ([]FieldInfo, error) {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, nil
	}
	acroForm, err := ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	if acroForm == nil {
		return nil, nil
	}

	fieldsObj, found := acroForm.Find("Fields")
	if !found {
		return nil, nil
	}
	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	fields := make([]FieldInfo, 0, len(fieldsArray))
	for _, fieldRef := range fieldsArray {
		dict, err := ctx.DereferenceDict(fieldRef)
		if err != nil || dict == nil {
			continue
		}
		info := FieldInfo{
			Name:    stringEntry(ctx, dict, "T"),
			Tooltip: stringEntry(ctx, dict, "TU"),
			Value:   stringEntry(ctx, dict, "V"),
			Default: stringEntry(ctx, dict, "DV"),
		}
		if rectObj, found := dict.Find("Rect"); found {
			if coords, err := ctx.DereferenceArray(rectObj); err == nil && len(coords) == 4 {
				for i, coord := range coords {
					if f, err := ctx.DereferenceNumber(coord); err == nil {
						info.Rect[i] = f
					}
				}
			}
		}
		fields = append(fields, info)
	}
	return fields, nil
}

func stringEntry(ctx *model.Context, dict types.Dict, key string) string {
	obj, found := dict.Find(key)
	if !found {
		return ""
	}
	s, err := ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil)
	if err != nil {
		return ""
	}
	return s
}
