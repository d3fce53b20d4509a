// Package pdfsource adapts a PDF document to the pipeline's page-source
// contract. It walks the page tree and converts each page's positioned
// text runs into raw fragments, leaving all interpretation (clustering,
// marker detection, title blocks) to the downstream stages.
package pdfsource

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/drawingx/model"
)

// Letter-size fallback in PDF points, used when a page carries no
// resolvable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Document is an open PDF ready to yield per-page fragments.
type Document struct {
	reader *pdf.Reader
	file   *os.File // non-nil when opened from disk
}

// Open opens a PDF file from disk. The returned Document must be closed.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Document{reader: r, file: f}, nil
}

// FromBytes opens an in-memory PDF document.
func FromBytes(data []byte) (*Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}
	return &Document{reader: r}, nil
}

// Close releases the underlying file, if any. It is safe to call Close
// multiple times.
func (d *Document) Close() error {
	if d.file != nil {
		err := d.file.Close()
		d.file = nil
		return err
	}
	return nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// Pages extracts the fragment streams for every page, in ascending page
// order. Pages whose content streams cannot be decoded contribute an
// empty fragment list rather than failing the document; image-only sheets
// look the same way.
func (d *Document) Pages() ([]model.PageFragments, error) {
	n := d.reader.NumPage()
	pages := make([]model.PageFragments, 0, n)

	for i := 1; i <= n; i++ {
		page := d.reader.Page(i)

		pf := model.PageFragments{
			Page:   i,
			Width:  defaultPageWidth,
			Height: defaultPageHeight,
		}

		if !page.V.IsNull() {
			if w, h, ok := pageSize(page); ok {
				pf.Width, pf.Height = w, h
			}
			pf.Rotation = pageRotation(page)
			pf.Fragments = pageFragments(page, i, pf.Rotation)
		}

		pages = append(pages, pf)
	}

	return pages, nil
}

// pageFragments converts one page's text runs. The underlying parser
// panics on some malformed content streams; such pages yield no
// fragments instead of aborting the whole document.
func pageFragments(page pdf.Page, pageNum, rotation int) (frags []model.Fragment) {
	defer func() {
		if recover() != nil {
			frags = nil
		}
	}()
	return fragmentsFromTexts(page.Content().Text, pageNum, rotation)
}

// fragmentsFromTexts maps raw text runs to fragments. Runs with no
// visible text are dropped here; they carry no geometry worth keeping.
func fragmentsFromTexts(texts []pdf.Text, pageNum, rotation int) []model.Fragment {
	frags := make([]model.Fragment, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		frags = append(frags, model.Fragment{
			Text:     t.S,
			Origin:   model.Point{X: t.X, Y: t.Y},
			BBox:     model.NewBBoxFromCorners(t.X, t.Y, t.X+t.W, t.Y+t.FontSize),
			Font:     t.Font,
			Size:     t.FontSize,
			Page:     pageNum,
			Rotation: rotation,
		})
	}
	return frags
}

// pageSize resolves the page's MediaBox, following Parent links for
// inherited attributes per the PDF page-tree rules.
func pageSize(page pdf.Page) (width, height float64, ok bool) {
	mb := inherited(page.V, "MediaBox")
	if mb.IsNull() || mb.Len() < 4 {
		return 0, 0, false
	}

	x0 := mb.Index(0).Float64()
	y0 := mb.Index(1).Float64()
	x1 := mb.Index(2).Float64()
	y1 := mb.Index(3).Float64()

	width = absFloat(x1 - x0)
	height = absFloat(y1 - y0)
	if width == 0 || height == 0 {
		return 0, 0, false
	}
	return width, height, true
}

// pageRotation resolves the inherited Rotate attribute, normalized to
// one of 0/90/180/270.
func pageRotation(page pdf.Page) int {
	r := inherited(page.V, "Rotate")
	if r.IsNull() {
		return 0
	}
	return normalizeRotation(int(r.Int64()))
}

// inherited looks up key on the page dictionary, walking Parent links
// until found or the tree root is passed.
func inherited(v pdf.Value, key string) pdf.Value {
	for !v.IsNull() {
		if attr := v.Key(key); !attr.IsNull() {
			return attr
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

// normalizeRotation folds any multiple-of-90 value into 0/90/180/270.
// Values that are not multiples of 90 are treated as unrotated.
func normalizeRotation(deg int) int {
	if deg%90 != 0 {
		return 0
	}
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
