package model

import "strings"

// Fragment is one raw positioned text run as emitted by a PDF content
// reader, often a sub-word piece. Fragments are immutable once produced
// by the reader.
type Fragment struct {
	Text     string
	Origin   Point
	BBox     BBox
	Font     string
	Size     float64
	Page     int // 1-indexed page number
	Rotation int // rotation of the containing page, degrees
}

// IsWhitespace reports whether the fragment carries no visible text.
// Such fragments contribute no information and are excluded from clustering.
func (f Fragment) IsWhitespace() bool {
	return strings.TrimSpace(f.Text) == ""
}

// Validate checks the fragment's required geometry. A fragment whose
// bounding box is degenerate or non-finite cannot participate in gap
// calculations and poisons its whole page.
func (f Fragment) Validate() error {
	if !f.BBox.IsValid() {
		return &MalformedFragmentError{Page: f.Page, Reason: "invalid bounding box"}
	}
	if f.BBox.Width == 0 && f.BBox.Height == 0 {
		return &MalformedFragmentError{Page: f.Page, Reason: "missing bounding box"}
	}
	return nil
}

// PageFragments is the per-page input unit produced by the external PDF
// content reader: page geometry plus the ordered fragment sequence.
type PageFragments struct {
	Page      int // 1-indexed page number
	Width     float64
	Height    float64
	Rotation  int
	Fragments []Fragment
}

// DocumentFragments is the full input for one extraction request,
// pages in ascending order.
type DocumentFragments struct {
	Pages []PageFragments
}
