package model

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

// ============================================================================
// Point Tests
// ============================================================================

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
	}{
		{"same point", Point{0, 0}, Point{0, 0}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"vertical", Point{0, 0}, Point{0, 4}, 4},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p1.Distance(tt.p2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Distance() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// ============================================================================
// BBox Tests
// ============================================================================

func TestBBoxUnion(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(5, 5, 10, 10)

	union := a.Union(b)
	if union.X != 0 || union.Y != 0 || union.Width != 15 || union.Height != 15 {
		t.Errorf("Union() = %+v, want {0 0 15 15}", union)
	}

	// Union must contain both inputs
	if !union.ContainsBox(a) || !union.ContainsBox(b) {
		t.Error("Union() does not contain its inputs")
	}
}

func TestBBoxContainsBox(t *testing.T) {
	outer := NewBBox(0, 0, 100, 100)

	tests := []struct {
		name  string
		inner BBox
		want  bool
	}{
		{"fully inside", NewBBox(10, 10, 20, 20), true},
		{"identical", NewBBox(0, 0, 100, 100), true},
		{"straddles edge", NewBBox(90, 10, 20, 20), false},
		{"fully outside", NewBBox(200, 200, 10, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.ContainsBox(tt.inner); got != tt.want {
				t.Errorf("ContainsBox() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBBoxFromCorners(t *testing.T) {
	b := NewBBoxFromCorners(5, 10, 25, 22)
	if b.X != 5 || b.Y != 10 || b.Width != 20 || b.Height != 12 {
		t.Errorf("NewBBoxFromCorners() = %+v", b)
	}

	// Swapped corners normalize
	s := NewBBoxFromCorners(25, 22, 5, 10)
	if s != b {
		t.Errorf("swapped corners: got %+v, want %+v", s, b)
	}
}

func TestBBoxIsValid(t *testing.T) {
	if !NewBBox(0, 0, 10, 10).IsValid() {
		t.Error("positive box reported invalid")
	}
	if (BBox{Width: -1, Height: 5}).IsValid() {
		t.Error("negative width reported valid")
	}
	if (BBox{X: math.NaN(), Width: 1, Height: 1}).IsValid() {
		t.Error("NaN coordinate reported valid")
	}
}

func TestBBoxJSONRoundTrip(t *testing.T) {
	b := NewBBoxFromCorners(1.5, 2.5, 10, 20)

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "[1.5,2.5,10,20]" {
		t.Errorf("Marshal() = %s, want [1.5,2.5,10,20]", data)
	}

	var back BBox
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != b {
		t.Errorf("round trip: got %+v, want %+v", back, b)
	}
}

// ============================================================================
// Fragment Tests
// ============================================================================

func TestFragmentValidate(t *testing.T) {
	good := Fragment{
		Text:   "BP1",
		Origin: Point{10, 20},
		BBox:   NewBBox(10, 20, 15, 8),
		Page:   1,
	}
	if err := good.Validate(); err != nil {
		t.Errorf("valid fragment rejected: %v", err)
	}

	bad := Fragment{Text: "BP1", Page: 3}
	err := bad.Validate()
	if err == nil {
		t.Fatal("fragment without geometry accepted")
	}
	var mfe *MalformedFragmentError
	if !errors.As(err, &mfe) {
		t.Fatalf("error type = %T, want *MalformedFragmentError", err)
	}
	if mfe.Page != 3 {
		t.Errorf("error page = %d, want 3", mfe.Page)
	}
}

func TestFragmentIsWhitespace(t *testing.T) {
	if (Fragment{Text: "  \t "}).IsWhitespace() == false {
		t.Error("whitespace fragment not detected")
	}
	if (Fragment{Text: " C-1 "}).IsWhitespace() {
		t.Error("text fragment treated as whitespace")
	}
}

// ============================================================================
// Element Tests
// ============================================================================

func TestTextElementJSON(t *testing.T) {
	el := TextElement{
		Text:   "BP1",
		Origin: Point{300, 400},
		BBox:   NewBBoxFromCorners(300, 400, 315, 408),
		Font:   "Arial",
		Size:   8,
		Page:   1,
		Kind:   KindMarker,
	}

	data, err := json.Marshal(el)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if m["text"] != "BP1" || m["type"] != "marker" {
		t.Errorf("wire shape wrong: %s", data)
	}
	if m["x"].(float64) != 300 || m["y"].(float64) != 400 {
		t.Errorf("origin not flattened: %s", data)
	}
	if _, ok := m["bbox"].([]any); !ok {
		t.Errorf("bbox not an array: %s", data)
	}
}

func TestDrawingInfoEmpty(t *testing.T) {
	var d DrawingInfo
	if !d.Empty() {
		t.Error("zero DrawingInfo not empty")
	}
	d.Scale = "1:100"
	if d.Empty() {
		t.Error("populated DrawingInfo reported empty")
	}

	data, _ := json.Marshal(d)
	if strings.Contains(string(data), "drawing_number") {
		t.Errorf("absent field serialized: %s", data)
	}
}
