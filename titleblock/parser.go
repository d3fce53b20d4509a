package titleblock

import (
	"github.com/tsawler/drawingx/model"
)

// Field names a title-block field a rule can recover
type Field string

const (
	FieldDrawingNumber Field = "drawing_number"
	FieldRevision      Field = "revision"
	FieldScale         Field = "scale"
	FieldDate          Field = "date"
	FieldSheet         Field = "sheet"
)

// Region is the page area scanned for title-block content, expressed as
// fractions of the page dimensions (0..1, measured from the bottom-left
// corner of PDF user space). The default is the bottom band of the sheet,
// where drawing templates conventionally place the title block.
type Region struct {
	Left   float64
	Bottom float64
	Right  float64
	Top    float64
}

// DefaultRegion returns the bottom 30% of the page, full width
func DefaultRegion() Region {
	return Region{Left: 0, Bottom: 0, Right: 1, Top: 0.3}
}

// BBox resolves the region against concrete page dimensions
func (r Region) BBox(pageWidth, pageHeight float64) model.BBox {
	return model.NewBBoxFromCorners(
		r.Left*pageWidth,
		r.Bottom*pageHeight,
		r.Right*pageWidth,
		r.Top*pageHeight,
	)
}

// Config holds the tunable parameters for title-block parsing
type Config struct {
	// Region restricts the candidate elements
	Region Region

	// AdjacencyRadius is the maximum distance (in points) between a
	// label element ("REV", "SCALE") and the value token it describes.
	AdjacencyRadius float64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Region:          DefaultRegion(),
		AdjacencyRadius: 60.0,
	}
}

// Match is one candidate value produced by a rule
type Match struct {
	Field      Field
	Value      string
	Confidence float64
	Element    *model.TextElement
}

// rule is one independent, tagged extraction heuristic. Rules never see
// each other's results; the parser keeps the highest-confidence match per
// field, so new template heuristics can be added without touching
// existing ones.
type rule struct {
	tag     string
	extract func(rc *ruleContext) []Match
}

// ruleContext is the per-page input shared by all rules
type ruleContext struct {
	candidates []model.TextElement // elements inside the title-block region
	region     model.BBox
	config     Config
}

// Parser recovers drawing metadata from a sheet's text elements using
// positional and lexical heuristics.
type Parser struct {
	config Config
	rules  []rule
}

// New creates a parser with default configuration
func New() *Parser {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a parser with custom configuration
func NewWithConfig(config Config) *Parser {
	return &Parser{
		config: config,
		rules:  defaultRules(),
	}
}

// Parse scans one page's clustered elements and returns whatever fields
// the rules could recover. Absent fields stay unset; the parser never
// fabricates values, and an empty result is not an error.
func (p *Parser) Parse(elements []model.TextElement, page model.PageMetadata) model.DrawingInfo {
	region := p.config.Region.BBox(page.Width, page.Height)

	rc := &ruleContext{
		region: region,
		config: p.config,
	}
	for _, el := range elements {
		if region.ContainsBox(el.BBox) {
			rc.candidates = append(rc.candidates, el)
		}
	}

	best := make(map[Field]Match)
	for _, r := range p.rules {
		for _, m := range r.extract(rc) {
			if cur, ok := best[m.Field]; !ok || m.Confidence > cur.Confidence {
				best[m.Field] = m
			}
		}
	}

	var info model.DrawingInfo
	if m, ok := best[FieldDrawingNumber]; ok {
		info.DrawingNumber = m.Value
	}
	if m, ok := best[FieldRevision]; ok {
		info.Revision = m.Value
	}
	if m, ok := best[FieldScale]; ok {
		info.Scale = m.Value
	}
	if m, ok := best[FieldDate]; ok {
		info.Date = m.Value
	}
	if m, ok := best[FieldSheet]; ok {
		info.Sheet = m.Value
	}
	return info
}
