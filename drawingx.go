// Package drawingx provides a fluent API for extracting structured content
// from construction-drawing PDFs: reconstructed text elements, detected
// construction markers, and title-block metadata.
//
// Basic usage:
//
//	result, err := drawingx.Open("foundation-plan.pdf").Extract()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(result.Summary.TotalMarkers)
//
// With options:
//
//	result, err := drawingx.Open("site-plan.pdf").
//	    Workers(4).
//	    TitleBlocksPerPage().
//	    Extract()
//
// Input can also come from memory or from pre-parsed page fragments, which
// is how the HTTP service and the tests drive the pipeline:
//
//	result, err := drawingx.FromDocument(doc).Extract()
package drawingx

import (
	"github.com/tsawler/drawingx/model"
	"github.com/tsawler/drawingx/pdfsource"
)

// PageSource supplies the per-page fragment streams for one document.
// [pdfsource.Document] is the standard implementation; tests and callers
// with their own PDF tooling can provide any other.
type PageSource interface {
	Pages() ([]model.PageFragments, error)
}

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The file is not read until a terminal operation such as [Extractor.Extract]
// runs; the terminal operation also releases the underlying reader.
//
// Example:
//
//	result, err := drawingx.Open("plan.pdf").Extract()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes creates an Extractor over an in-memory PDF document.
//
// Example:
//
//	result, err := drawingx.FromBytes(data).Extract()
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		options: defaultOptions(),
	}
}

// FromSource creates an Extractor from an already-opened page source.
// The caller keeps ownership of the source and is responsible for closing
// it if it needs closing.
//
// Example:
//
//	src, err := pdfsource.Open("plan.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer src.Close()
//	result, err := drawingx.FromSource(src).Extract()
func FromSource(src PageSource) *Extractor {
	return &Extractor{
		source:       src,
		sourceOpened: true,
		options:      defaultOptions(),
	}
}

// FromDocument creates an Extractor over pre-parsed page fragments,
// bypassing PDF reading entirely.
func FromDocument(doc model.DocumentFragments) *Extractor {
	return &Extractor{
		doc:          &doc,
		sourceOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	result := drawingx.Must(drawingx.Open("plan.pdf").Extract())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

var _ PageSource = (*pdfsource.Document)(nil)
