package form

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/bomtools/dd1750/internal/bom"
)

// templatePage is the template's first page plus the tree nodes the
// generator rewrites around it.
type templatePage struct {
	root     types.Dict
	page     types.Dict
	pageRef  types.IndirectRef
	pages    types.Dict
	pagesRef types.IndirectRef
}

// Generate writes a filled DD Form 1750 to w: one copy of the template page
// per 18 items with the overlay text drawn on top, and editable header
// fields on the first page. Zero items produce a single untouched copy of
// the template page.
func Generate(templatePath string, items []bom.Item, header HeaderInfo, w io.Writer) error {
	file, err := os.Open(templatePath)
	if err != nil {
		return fmt.Errorf("failed to open form template: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return fmt.Errorf("failed to read form template: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("failed to read form template: %w", err)
	}

	tpl, err := findTemplatePage(ctx)
	if err != nil {
		return fmt.Errorf("unusable form template: %w", err)
	}

	if len(items) == 0 {
		tpl.pages["Kids"] = types.Array{tpl.pageRef}
		tpl.pages["Count"] = types.Integer(1)
		return writeContext(ctx, w)
	}

	helvRef, err := newHelveticaRef(ctx)
	if err != nil {
		return fmt.Errorf("failed to register overlay font: %w", err)
	}
	if err := ensureOverlayFont(ctx, tpl.page, *helvRef); err != nil {
		return err
	}

	pushRef, err := newContentStream(ctx, []byte("q\n"))
	if err != nil {
		return fmt.Errorf("failed to build overlay: %w", err)
	}
	popRef, err := newContentStream(ctx, []byte("Q\n"))
	if err != nil {
		return fmt.Errorf("failed to build overlay: %w", err)
	}

	layouts := Paginate(items)
	kids := make(types.Array, 0, len(layouts))
	var firstPage types.Dict
	for _, pl := range layouts {
		overlayRef, err := newContentStream(ctx, contentStream(pl.Ops))
		if err != nil {
			return fmt.Errorf("failed to build overlay for page %d: %w", pl.Number, err)
		}

		page := clonePage(tpl.page, tpl.pagesRef)
		page["Contents"] = wrappedContents(ctx, tpl.page, *pushRef, *popRef, *overlayRef)

		ref, err := ctx.IndRefForNewObject(page)
		if err != nil {
			return fmt.Errorf("failed to register page %d: %w", pl.Number, err)
		}
		kids = append(kids, *ref)
		if firstPage == nil {
			firstPage = page
		}
	}

	fields, err := buildHeaderFields(ctx, header)
	if err != nil {
		return err
	}
	firstPage["Annots"] = fields
	tpl.root["AcroForm"] = acroFormDict(fields, *helvRef)

	tpl.pages["Kids"] = kids
	tpl.pages["Count"] = types.Integer(len(kids))

	return writeContext(ctx, w)
}

// GenerateFile renders the form to outPath, removing the partial file when
// generation fails midway.
func GenerateFile(templatePath string, items []bom.Item, header HeaderInfo, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Generate(templatePath, items, header, out); err != nil {
		out.Close()
		os.Remove(outPath)
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

func writeContext(ctx *model.Context, w io.Writer) error {
	if err := api.ValidateContext(ctx); err != nil {
		return fmt.Errorf("generated form failed validation: %w", err)
	}
	if err := api.WriteContext(ctx, w); err != nil {
		return fmt.Errorf("failed to write form: %w", err)
	}
	return nil
}

// findTemplatePage walks the template's page tree to its first page,
// materializing inherited page attributes onto the page dictionary so
// copies of it can live directly under the root node.
func findTemplatePage(ctx *model.Context) (*templatePage, error) {
	root, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	pagesObj, found := root.Find("Pages")
	if !found {
		return nil, errors.New("no page tree")
	}
	pagesRef, ok := pagesObj.(types.IndirectRef)
	if !ok {
		return nil, errors.New("page tree is not an indirect reference")
	}
	pagesDict, err := ctx.DereferenceDict(pagesObj)
	if err != nil || pagesDict == nil {
		return nil, fmt.Errorf("failed to dereference page tree: %v", err)
	}

	inherited := types.Dict{}
	node := pagesDict
	for depth := 0; depth < 32; depth++ {
		for _, key := range []string{"Resources", "MediaBox", "CropBox", "Rotate"} {
			if v, found := node.Find(key); found {
				inherited[key] = v
			}
		}

		kidsObj, found := node.Find("Kids")
		if !found {
			return nil, errors.New("page tree node has no kids")
		}
		kids, err := ctx.DereferenceArray(kidsObj)
		if err != nil || len(kids) == 0 {
			return nil, fmt.Errorf("failed to dereference kids: %v", err)
		}
		kidRef, ok := kids[0].(types.IndirectRef)
		if !ok {
			return nil, errors.New("page tree entry is not an indirect reference")
		}
		kid, err := ctx.DereferenceDict(kidRef)
		if err != nil || kid == nil {
			return nil, fmt.Errorf("failed to dereference page: %v", err)
		}

		if typ := kid.Type(); typ != nil && *typ == "Pages" {
			node = kid
			continue
		}

		for k, v := range inherited {
			if _, found := kid.Find(k); !found {
				kid[k] = v
			}
		}
		return &templatePage{
			root:     root,
			page:     kid,
			pageRef:  kidRef,
			pages:    pagesDict,
			pagesRef: pagesRef,
		}, nil
	}
	return nil, errors.New("page tree too deep")
}

// clonePage shallow-copies the template page. Streams and resources stay
// shared between copies; annotations do not carry over because the
// generator attaches its own field widgets.
func clonePage(base types.Dict, parent types.IndirectRef) types.Dict {
	page := types.Dict{}
	for k, v := range base {
		if k == "Annots" {
			continue
		}
		page[k] = v
	}
	page["Parent"] = parent
	return page
}

// wrappedContents keeps the template's own drawing inside a saved graphics
// state so leftover transforms cannot shift the overlay coordinates.
func wrappedContents(ctx *model.Context, page types.Dict, push, pop, overlay types.IndirectRef) types.Array {
	arr := types.Array{push}
	if obj, found := page.Find("Contents"); found {
		if elems, err := ctx.DereferenceArray(obj); err == nil && elems != nil {
			arr = append(arr, elems...)
		} else {
			arr = append(arr, obj)
		}
	}
	return append(arr, pop, overlay)
}

// ensureOverlayFont makes /Helv resolvable through the template page's
// resources so the overlay streams can select it.
func ensureOverlayFont(ctx *model.Context, page types.Dict, helvRef types.IndirectRef) error {
	resObj, found := page.Find("Resources")
	if !found {
		page["Resources"] = types.Dict{"Font": types.Dict{overlayFont: helvRef}}
		return nil
	}
	resources, err := ctx.DereferenceDict(resObj)
	if err != nil {
		return fmt.Errorf("failed to resolve template resources: %w", err)
	}
	if resources == nil {
		page["Resources"] = types.Dict{"Font": types.Dict{overlayFont: helvRef}}
		return nil
	}

	fontObj, found := resources.Find("Font")
	if !found {
		resources["Font"] = types.Dict{overlayFont: helvRef}
		return nil
	}
	fonts, err := ctx.DereferenceDict(fontObj)
	if err != nil {
		return fmt.Errorf("failed to resolve template fonts: %w", err)
	}
	if fonts == nil {
		resources["Font"] = types.Dict{overlayFont: helvRef}
		return nil
	}
	fonts[overlayFont] = helvRef
	return nil
}

// newContentStream registers content as a flate-encoded stream object.
func newContentStream(ctx *model.Context, content []byte) (*types.IndirectRef, error) {
	sd, err := ctx.NewStreamDictForBuf(content)
	if err != nil {
		return nil, err
	}
	if err := sd.Encode(); err != nil {
		return nil, err
	}
	return ctx.IndRefForNewObject(*sd)
}
