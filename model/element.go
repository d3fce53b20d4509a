package model

import "encoding/json"

// ElementKind classifies a reconstructed text element
type ElementKind int

const (
	KindText ElementKind = iota
	KindMarker
)

func (k ElementKind) String() string {
	switch k {
	case KindMarker:
		return "marker"
	default:
		return "text"
	}
}

// MarshalJSON encodes the kind as its string form
func (k ElementKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// TextElement is a logical text unit reconstructed by merging adjacent
// fragments. It is owned by the pipeline run that created it and is not
// mutated after clustering, except to attach the element kind.
type TextElement struct {
	Text   string
	Origin Point
	BBox   BBox
	Font   string
	Size   float64
	Page   int // 1-indexed page number
	Kind   ElementKind

	// Fragments are the constituents merged into this element, kept for
	// traceability. Every non-whitespace input fragment belongs to
	// exactly one element.
	Fragments []Fragment
}

// MarshalJSON produces the wire shape:
// {text, x, y, bbox, font, size, page, type}
func (e TextElement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Text string      `json:"text"`
		X    float64     `json:"x"`
		Y    float64     `json:"y"`
		BBox BBox        `json:"bbox"`
		Font string      `json:"font"`
		Size float64     `json:"size"`
		Page int         `json:"page"`
		Type ElementKind `json:"type"`
	}{e.Text, e.Origin.X, e.Origin.Y, e.BBox, e.Font, e.Size, e.Page, e.Kind})
}

// MarkerOccurrence is one detected instance of a marker code. Coordinates
// equal the origin of the originating text element on the stated page.
type MarkerOccurrence struct {
	Code    string       `json:"-"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	Page    int          `json:"page"`
	Element *TextElement `json:"-"`
}

// DrawingInfo holds title-block fields recovered from a sheet. Every field
// is optional; absence is encoded by omission, never by a fabricated value.
type DrawingInfo struct {
	DrawingNumber string `json:"drawing_number,omitempty"`
	Revision      string `json:"revision,omitempty"`
	Scale         string `json:"scale,omitempty"`
	Date          string `json:"date,omitempty"`
	Sheet         string `json:"sheet,omitempty"`
}

// Empty reports whether no field was recovered
func (d DrawingInfo) Empty() bool {
	return d == DrawingInfo{}
}

// PageMetadata describes one page of the processed document
type PageMetadata struct {
	Page     int     `json:"page"` // 1-indexed
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation int     `json:"rotation"` // degrees, one of 0/90/180/270
	Elements int     `json:"elements"`
	Failed   bool    `json:"failed,omitempty"`
	Error    string  `json:"error,omitempty"`
}
